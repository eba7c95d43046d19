package ports

import (
	"context"
	"iter"

	"docsorter/internal/domain"
)

// ContentExtractor turns a document into searchable text lines.
//
// The sequence is lazy: consumers may stop early and the remaining pages or
// rows are never read. A failure is yielded as the error of the last pair
// and ends the sequence.
type ContentExtractor interface {
	Extract(ctx context.Context, path string, format domain.Format) iter.Seq2[string, error]
}

// TextCache stores extracted lines by document fingerprint
type TextCache interface {
	Lookup(ctx context.Context, fingerprint string) ([]string, bool, error)
	Store(ctx context.Context, fingerprint string, lines []string) error
	Close() error
}
