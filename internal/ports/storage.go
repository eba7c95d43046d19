package ports

import (
	"context"

	"docsorter/internal/domain"
)

// RuleStore defines the persistence of the search rule registry
type RuleStore interface {
	// Load returns every valid rule in file order. A missing or unreadable
	// store is an error; a store with no valid lines is not.
	Load(ctx context.Context) ([]domain.SearchRule, error)

	// Save replaces the stored rules with rules, in order.
	Save(ctx context.Context, rules []domain.SearchRule) error

	// Location names the store for messages and reports.
	Location() string
}

// Mover defines the physical relocation of sorted files
type Mover interface {
	// Move relocates req.Source into the destination folder under a
	// generated name and returns the final path. Implementations must be
	// safe for concurrent use.
	Move(ctx context.Context, req domain.MoveRequest) (string, error)

	// EnsureFolder creates a destination folder and returns its sanitized name.
	EnsureFolder(folder string) (string, error)
}

// TreeScanner defines discovery of candidate documents under a root
type TreeScanner interface {
	Scan(ctx context.Context, root string) ([]domain.FileEntry, error)
}

// Housekeeper removes leftovers from the source tree before a run
type Housekeeper interface {
	// Clean returns the names of the directories it removed.
	Clean(ctx context.Context, root string) ([]string, error)
}

// ReportWriter persists the end-of-run summary
type ReportWriter interface {
	Write(ctx context.Context, summary domain.Summary) error
}
