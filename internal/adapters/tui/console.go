package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"docsorter/internal/adapters/tui/views"
	"docsorter/internal/ports"
)

// TermConsole implements ports.Console on a terminal. Every question runs a
// short-lived bubbletea program; everything else is printed in place.
type TermConsole struct {
	printer
	in io.Reader
}

// Ensure TermConsole implements ports.Console
var _ ports.Console = (*TermConsole)(nil)

// NewTermConsole creates a console reading keys from in and drawing on out
func NewTermConsole(in io.Reader, out io.Writer) *TermConsole {
	return &TermConsole{printer: printer{out: out}, in: in}
}

// Ask shows prompt and returns the submitted line. Esc and Ctrl+C end the
// session with ports.ErrInputClosed.
func (c *TermConsole) Ask(ctx context.Context, prompt string) (string, error) {
	final, err := c.run(ctx, views.NewPromptModel(prompt))
	if err != nil {
		return "", err
	}
	m := final.(views.PromptModel)
	if m.Cancelled || !m.Submitted {
		return "", ports.ErrInputClosed
	}
	c.println(prompt + " " + m.Value())
	return m.Value(), nil
}

// Confirm asks a yes/no question
func (c *TermConsole) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := c.run(ctx, views.NewConfirmModel(question))
	if err != nil {
		return false, err
	}
	return final.(views.ConfirmModel).Confirmed, nil
}

func (c *TermConsole) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, ports.ErrInputClosed
		}
		return nil, fmt.Errorf("terminal prompt failed: %w", err)
	}
	return final, nil
}
