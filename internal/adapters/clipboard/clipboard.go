package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"docsorter/internal/ports"
)

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not available on this system")

// System implements ports.Clipboard with the desktop clipboard
type System struct{}

var _ ports.Clipboard = System{}

// WriteAll replaces the clipboard content with text
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
