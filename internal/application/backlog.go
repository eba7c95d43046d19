package application

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"docsorter/internal/domain"
)

// Backlog holds the files that no rule claimed, in the order they were
// found. Rescans work on a snapshot so entries may leave the backlog while a
// rescan is running.
type Backlog struct {
	mu      sync.Mutex
	entries *orderedmap.OrderedMap[string, domain.FileEntry]

	classifier *Classifier
	relocator  *Relocator
	stats      *domain.RunStats
	logger     *slog.Logger

	// exists reports whether a file is still on disk.
	exists func(path string) bool
}

// NewBacklog creates an empty backlog whose rescans use classifier and relocator.
func NewBacklog(classifier *Classifier, relocator *Relocator, stats *domain.RunStats, logger *slog.Logger) *Backlog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backlog{
		entries:    orderedmap.New[string, domain.FileEntry](),
		classifier: classifier,
		relocator:  relocator,
		stats:      stats,
		logger:     logger,
		exists:     fileExists,
	}
}

// Add appends entry; an entry with the same path is replaced in place.
func (b *Backlog) Add(entry domain.FileEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries.Set(entry.Path, entry)
}

// Remove drops the entry for path and reports whether it was present.
func (b *Backlog) Remove(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries.Delete(path)
	return ok
}

// Contains reports whether path is still waiting to be sorted.
func (b *Backlog) Contains(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries.Get(path)
	return ok
}

// Len is the number of waiting entries.
func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries.Len()
}

// Entries returns a snapshot of the waiting entries in insertion order.
func (b *Backlog) Entries() []domain.FileEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.FileEntry, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Exists reports whether the entry's file is still on disk.
func (b *Backlog) Exists(entry domain.FileEntry) bool {
	return b.exists(entry.Path)
}

// RescanForRule tests every waiting entry against rule alone and moves the
// ones it matches. Entries whose file disappeared are dropped without being
// counted as errors. It returns the number of entries sorted.
func (b *Backlog) RescanForRule(ctx context.Context, rule domain.SearchRule) int {
	return b.rescan(ctx, "rule", func(entry domain.FileEntry) (domain.Match, bool) {
		if b.classifier.MatchRule(ctx, entry.Path, rule) {
			return domain.MatchOf(rule), true
		}
		return domain.Match{}, false
	})
}

// ScanForFilenameRules tests every waiting entry against all filename rules.
func (b *Backlog) ScanForFilenameRules(ctx context.Context) int {
	return b.rescan(ctx, "filename-rules", func(entry domain.FileEntry) (domain.Match, bool) {
		return b.classifier.MatchFilename(entry.Path)
	})
}

func (b *Backlog) rescan(ctx context.Context, kind string, match func(domain.FileEntry) (domain.Match, bool)) int {
	sorted := 0
	for _, entry := range b.Entries() {
		if ctx.Err() != nil {
			break
		}
		if !b.Contains(entry.Path) {
			continue
		}
		if !b.exists(entry.Path) {
			if b.Remove(entry.Path) {
				b.logger.Info("backlog entry vanished", "path", entry.Path)
			}
			continue
		}

		m, ok := match(entry)
		if !ok {
			continue
		}
		if _, err := b.relocator.Relocate(ctx, entry, m.Folder); err != nil {
			continue
		}
		if b.Remove(entry.Path) {
			b.stats.ResolvedFromBacklog()
		}
		if m.Mode == domain.ModeFilename {
			b.stats.FilenameMatches.Add(1)
		}
		sorted++
	}
	if sorted > 0 {
		b.logger.Info("backlog rescan sorted files", "scan", kind, "sorted", sorted, "remaining", b.Len())
	}
	return sorted
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
