package ports

import "context"

// EditorOpener opens a file in the operator's editor and waits for it to close
type EditorOpener interface {
	OpenFile(ctx context.Context, path string) error
}
