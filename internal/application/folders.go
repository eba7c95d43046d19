package application

import (
	"slices"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"docsorter/internal/domain"
)

// FoundFolders is the set of destination folders seen during a run.
// It only grows.
type FoundFolders struct {
	mu      sync.Mutex
	folders map[string]struct{}
}

// NewFoundFolders creates a set seeded with initial.
func NewFoundFolders(initial ...string) *FoundFolders {
	f := &FoundFolders{folders: make(map[string]struct{})}
	for _, name := range initial {
		f.Add(name)
	}
	return f
}

// Add records a folder name. Empty names are ignored.
func (f *FoundFolders) Add(name string) {
	if name == "" {
		return
	}
	f.mu.Lock()
	f.folders[name] = struct{}{}
	f.mu.Unlock()
}

// Contains reports whether name has been seen.
func (f *FoundFolders) Contains(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.folders[name]
	return ok
}

// Sorted returns the folder names in menu order.
func (f *FoundFolders) Sorted() []string {
	f.mu.Lock()
	out := make([]string, 0, len(f.folders))
	for name := range f.folders {
		out = append(out, name)
	}
	f.mu.Unlock()
	slices.Sort(out)
	return out
}

// Ledger tracks the outcome of every scanned file, keyed by source path.
type Ledger struct {
	mu       sync.Mutex
	outcomes *orderedmap.OrderedMap[string, domain.Outcome]
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{outcomes: orderedmap.New[string, domain.Outcome]()}
}

// Pending records a file that has not been moved (yet).
func (l *Ledger) Pending(entry domain.FileEntry, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes.Set(entry.Path, domain.Outcome{
		Source:       entry.Path,
		Organization: entry.Organization,
		Reason:       reason,
	})
}

// Moved records a file that reached its destination.
func (l *Ledger) Moved(entry domain.FileEntry, folder, destination string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes.Set(entry.Path, domain.Outcome{
		Source:       entry.Path,
		Folder:       folder,
		Destination:  destination,
		Organization: entry.Organization,
	})
}

// Outcomes returns every recorded outcome in scan order.
func (l *Ledger) Outcomes() []domain.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Outcome, 0, l.outcomes.Len())
	for pair := l.outcomes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
