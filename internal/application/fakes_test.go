package application

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore is an in-memory ports.RuleStore.
type memoryStore struct {
	mu      sync.Mutex
	rules   []domain.SearchRule
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load(context.Context) ([]domain.SearchRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.SearchRule(nil), m.rules...), nil
}

func (m *memoryStore) Save(_ context.Context, rules []domain.SearchRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.rules = append([]domain.SearchRule(nil), rules...)
	return nil
}

func (m *memoryStore) Location() string { return "memory" }

// stubExtractor serves fixed lines per base name.
type stubExtractor struct {
	mu    sync.Mutex
	lines map[string][]string
	fail  map[string]bool
	calls map[string]int
}

func newStubExtractor() *stubExtractor {
	return &stubExtractor{lines: map[string][]string{}, fail: map[string]bool{}, calls: map[string]int{}}
}

func (s *stubExtractor) Extract(_ context.Context, path string, _ domain.Format) iter.Seq2[string, error] {
	name := filepath.Base(path)
	s.mu.Lock()
	s.calls[name]++
	lines, fail := s.lines[name], s.fail[name]
	s.mu.Unlock()

	return func(yield func(string, error) bool) {
		if fail {
			yield("", &ExtractionError{Path: path, Err: errors.New("corrupt file")})
			return
		}
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// dirMover moves files into out/<folder>/<name> without renaming them.
type dirMover struct {
	out string
	mu  sync.Mutex
	err error
}

func (d *dirMover) Move(_ context.Context, req domain.MoveRequest) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return "", d.err
	}
	if _, err := os.Stat(req.Source); err != nil {
		return "", &MoveError{Source: req.Source, Folder: req.Folder, Reason: "source file is missing", Err: err}
	}
	dir := filepath.Join(d.out, req.Folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, filepath.Base(req.Source))
	return dest, os.Rename(req.Source, dest)
}

func (d *dirMover) EnsureFolder(folder string) (string, error) {
	return folder, os.MkdirAll(filepath.Join(d.out, folder), 0755)
}

// scriptedConsole answers prompts from a fixed script and records output.
type scriptedConsole struct {
	answers []string
	prompts []string
	out     []string
}

func (c *scriptedConsole) Ask(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.answers) == 0 {
		return "", ports.ErrInputClosed
	}
	a := c.answers[0]
	c.answers = c.answers[1:]
	return a, nil
}

func (c *scriptedConsole) Heading(text string) { c.out = append(c.out, "# "+text) }
func (c *scriptedConsole) Info(text string)    { c.out = append(c.out, text) }
func (c *scriptedConsole) Success(text string) { c.out = append(c.out, "ok: "+text) }
func (c *scriptedConsole) Warn(text string)    { c.out = append(c.out, "warn: "+text) }
func (c *scriptedConsole) Options(items []string) {
	for _, it := range items {
		c.out = append(c.out, "- "+it)
	}
}

func (c *scriptedConsole) saw(substr string) bool {
	for _, line := range c.out {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type recordingClipboard struct{ text string }

func (r *recordingClipboard) WriteAll(text string) error {
	r.text = text
	return nil
}

// fixture wires the application services over a temp source tree.
type fixture struct {
	t          *testing.T
	src        string
	out        string
	store      *memoryStore
	extractor  *stubExtractor
	mover      *dirMover
	stats      *domain.RunStats
	registry   *KeyRegistry
	classifier *Classifier
	relocator  *Relocator
	backlog    *Backlog
}

func newFixture(t *testing.T, rules ...domain.SearchRule) *fixture {
	t.Helper()
	f := &fixture{
		t:         t,
		src:       t.TempDir(),
		out:       t.TempDir(),
		store:     &memoryStore{rules: rules},
		extractor: newStubExtractor(),
		stats:     &domain.RunStats{},
	}
	f.mover = &dirMover{out: f.out}
	logger := discardLogger()
	f.registry = NewKeyRegistry(f.store, logger)
	require.NoError(t, f.registry.Load(context.Background()))
	f.classifier = NewClassifier(f.registry, f.extractor, logger)
	f.relocator = NewRelocator(f.mover, NewFoundFolders("UNSORTED"), f.stats, nil, logger)
	f.backlog = NewBacklog(f.classifier, f.relocator, f.stats, logger)
	return f
}

// file creates a document in the source tree with the given text lines.
func (f *fixture) file(name string, lines ...string) domain.FileEntry {
	f.t.Helper()
	path := filepath.Join(f.src, name)
	require.NoError(f.t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	f.extractor.lines[name] = lines
	return domain.NewFileEntry(path, ".")
}

// waiting adds entries to the backlog the way the first pass does.
func (f *fixture) waiting(entries ...domain.FileEntry) {
	for _, e := range entries {
		f.backlog.Add(e)
		f.stats.NotFound.Add(1)
	}
}

func (f *fixture) session(console *scriptedConsole) *Session {
	return NewSession(SessionDeps{
		Registry:   f.registry,
		Classifier: f.classifier,
		Backlog:    f.backlog,
		Relocator:  f.relocator,
		Previewer:  NewPreviewer(f.extractor),
		Console:    console,
		Stats:      f.stats,
		Logger:     discardLogger(),
	}, "UNSORTED")
}

func (f *fixture) movedTo(folder, name string) bool {
	_, err := os.Stat(filepath.Join(f.out, folder, name))
	return err == nil
}
