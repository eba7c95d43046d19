package tui

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"docsorter/internal/adapters/tui/styles"
)

// printer renders the output half of ports.Console
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

// Heading prints a section title preceded by a blank line
func (p *printer) Heading(text string) {
	p.println("\n" + styles.Title.Render(text))
}

// Info prints plain text
func (p *printer) Info(text string) {
	p.println(text)
}

// Success prints a confirmation line
func (p *printer) Success(text string) {
	p.println(styles.Success.Render("✓ " + text))
}

// Warn prints a warning line
func (p *printer) Warn(text string) {
	p.println(styles.WarningMsg.Render("! " + text))
}

// Options prints items numbered from 1
func (p *printer) Options(items []string) {
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		index := fmt.Sprintf("%*d.", width, i+1)
		p.println("  " + styles.OptionIndex.Render(index) + " " + item)
	}
}
