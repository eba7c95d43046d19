package ports

import (
	"context"
	"errors"
)

// ErrInputClosed is returned by Console.Ask when the operator ends input
// (end of stream, Esc or Ctrl+C).
var ErrInputClosed = errors.New("input closed")

// Console is the operator's side of an interactive session
type Console interface {
	// Ask shows prompt and blocks until the operator submits a line.
	Ask(ctx context.Context, prompt string) (string, error)

	Heading(text string)
	Info(text string)
	Success(text string)
	Warn(text string)

	// Options renders a numbered list; numbering starts at 1.
	Options(items []string)
}

// Clipboard receives text picked by the operator
type Clipboard interface {
	WriteAll(text string) error
}
