package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"docsorter/internal/ports"
)

// LineConsole implements ports.Console over plain streams, for pipes and
// terminals that cannot run a full-screen program.
type LineConsole struct {
	printer
	in io.Reader

	start sync.Once
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// Ensure LineConsole implements ports.Console
var _ ports.Console = (*LineConsole)(nil)

// NewLineConsole creates a console reading lines from in
func NewLineConsole(in io.Reader, out io.Writer) *LineConsole {
	return &LineConsole{printer: printer{out: out}, in: in, lines: make(chan lineResult)}
}

// Ask prints prompt and waits for the next line. The end of input yields
// ports.ErrInputClosed.
func (c *LineConsole) Ask(ctx context.Context, prompt string) (string, error) {
	c.start.Do(func() { go c.readLines() })

	c.mu.Lock()
	fmt.Fprint(c.out, prompt+" ")
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-c.lines:
		if !ok {
			return "", ports.ErrInputClosed
		}
		if r.err != nil {
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return r.text, nil
	}
}

// Confirm asks a yes/no question; anything but y or yes declines.
func (c *LineConsole) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.Ask(ctx, question+" [y/N]")
	if err != nil {
		if errors.Is(err, ports.ErrInputClosed) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLines feeds c.lines until the input ends
func (c *LineConsole) readLines() {
	defer close(c.lines)
	reader := bufio.NewReader(c.in)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			c.lines <- lineResult{text: strings.TrimRight(text, "\r\n")}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			c.lines <- lineResult{err: err}
			return
		}
	}
}
