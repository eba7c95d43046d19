package commands

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

// textExtractor serves fixed lines per base name.
type textExtractor struct {
	mu    sync.Mutex
	lines map[string][]string
	fail  map[string]bool
}

func newTextExtractor() *textExtractor {
	return &textExtractor{lines: map[string][]string{}, fail: map[string]bool{}}
}

func (x *textExtractor) Extract(_ context.Context, path string, _ domain.Format) iter.Seq2[string, error] {
	name := filepath.Base(path)
	x.mu.Lock()
	lines, fail := x.lines[name], x.fail[name]
	x.mu.Unlock()

	return func(yield func(string, error) bool) {
		if fail {
			yield("", errors.New("corrupt file"))
			return
		}
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// scriptedConsole answers prompts from a fixed script; an exhausted
// script closes the input.
type scriptedConsole struct {
	answers []string
	out     []string
}

func (c *scriptedConsole) Ask(_ context.Context, prompt string) (string, error) {
	if len(c.answers) == 0 {
		return "", ports.ErrInputClosed
	}
	a := c.answers[0]
	c.answers = c.answers[1:]
	return a, nil
}

func (c *scriptedConsole) Heading(text string)    { c.out = append(c.out, text) }
func (c *scriptedConsole) Info(text string)       { c.out = append(c.out, text) }
func (c *scriptedConsole) Success(text string)    { c.out = append(c.out, text) }
func (c *scriptedConsole) Warn(text string)       { c.out = append(c.out, text) }
func (c *scriptedConsole) Options(items []string) { c.out = append(c.out, items...) }

// tree is a source and output directory pair with a rule file.
type tree struct {
	t         *testing.T
	src       string
	out       string
	rules     string
	extractor *textExtractor
}

func newTree(t *testing.T, ruleLines ...string) *tree {
	t.Helper()
	tr := &tree{
		t:         t,
		src:       t.TempDir(),
		out:       t.TempDir(),
		rules:     filepath.Join(t.TempDir(), "rules.txt"),
		extractor: newTextExtractor(),
	}
	if len(ruleLines) > 0 {
		content := strings.Join(ruleLines, "\n") + "\n"
		require.NoError(t, os.WriteFile(tr.rules, []byte(content), 0644))
	}
	return tr
}

// doc writes a document under src and registers its text
func (tr *tree) doc(rel string, lines ...string) string {
	tr.t.Helper()
	path := filepath.Join(tr.src, rel)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tr.t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	tr.extractor.lines[filepath.Base(rel)] = lines
	return path
}

// filesIn counts the regular files of an output folder
func (tr *tree) filesIn(folder string) int {
	tr.t.Helper()
	entries, err := os.ReadDir(filepath.Join(tr.out, folder))
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	require.NoError(tr.t, err)
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			n++
		}
	}
	return n
}
