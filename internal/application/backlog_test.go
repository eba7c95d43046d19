package application

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsorter/internal/domain"
)

func TestBacklogAddRemoveContains(t *testing.T) {
	f := newFixture(t)
	a := f.file("a.pdf")
	b := f.file("b.pdf")

	f.backlog.Add(a)
	f.backlog.Add(b)
	f.backlog.Add(a)

	assert.Equal(t, 2, f.backlog.Len())
	assert.Equal(t, []domain.FileEntry{a, b}, f.backlog.Entries())
	assert.True(t, f.backlog.Remove(a.Path))
	assert.False(t, f.backlog.Remove(a.Path))
	assert.False(t, f.backlog.Contains(a.Path))
	assert.True(t, f.backlog.Contains(b.Path))
}

func TestRescanForRuleMovesOnlyMatches(t *testing.T) {
	f := newFixture(t)
	paid1 := f.file("r1.pdf", "Amount PAID")
	paid2 := f.file("r2.xlsx", "x", "PAID 2024")
	other := f.file("o.pdf", "INV-1 also paid lowercase")
	f.waiting(paid1, paid2, other)

	rule := domain.SearchRule{Key: "PAID", Folder: "Receipts", Mode: domain.ModeContent}
	n := f.backlog.RescanForRule(context.Background(), rule)

	assert.Equal(t, 2, n)
	assert.Equal(t, []domain.FileEntry{other}, f.backlog.Entries())
	assert.True(t, f.movedTo("Receipts", "r1.pdf"))
	assert.True(t, f.movedTo("Receipts", "r2.xlsx"))

	snap := f.stats.Snapshot()
	assert.EqualValues(t, 2, snap.Sorted)
	assert.EqualValues(t, 1, snap.NotFound)
	assert.EqualValues(t, 2, snap.Moved)
	assert.Zero(t, snap.FilenameMatches)
}

func TestRescanForRuleIgnoresOtherRules(t *testing.T) {
	f := newFixture(t, domain.SearchRule{Key: "INV", Folder: "Invoices", Mode: domain.ModeContent})
	inv := f.file("inv.pdf", "INV-1")
	f.waiting(inv)

	n := f.backlog.RescanForRule(context.Background(),
		domain.SearchRule{Key: "PAID", Folder: "Receipts", Mode: domain.ModeContent})

	assert.Zero(t, n)
	assert.True(t, f.backlog.Contains(inv.Path), "registry rules other than the supplied one are not consulted")
}

func TestRescanForRuleEmptyBacklog(t *testing.T) {
	f := newFixture(t)
	n := f.backlog.RescanForRule(context.Background(),
		domain.SearchRule{Key: "PAID", Folder: "Receipts", Mode: domain.ModeContent})

	assert.Zero(t, n)
	assert.Equal(t, domain.StatsSnapshot{}, f.stats.Snapshot())
}

func TestRescanDropsVanishedFilesOnce(t *testing.T) {
	f := newFixture(t)
	gone := f.file("gone.pdf", "PAID")
	f.waiting(gone)
	require.NoError(t, os.Remove(gone.Path))

	rule := domain.SearchRule{Key: "PAID", Folder: "Receipts", Mode: domain.ModeContent}
	assert.Zero(t, f.backlog.RescanForRule(context.Background(), rule))
	assert.Zero(t, f.backlog.RescanForRule(context.Background(), rule))

	assert.Zero(t, f.backlog.Len())
	assert.Zero(t, f.stats.Errors.Load(), "a vanished file is not an error")
}

func TestRescanKeepsEntryWhenMoveFails(t *testing.T) {
	f := newFixture(t)
	e := f.file("r.pdf", "PAID")
	f.waiting(e)
	f.mover.err = errors.New("read-only destination")

	n := f.backlog.RescanForRule(context.Background(),
		domain.SearchRule{Key: "PAID", Folder: "Receipts", Mode: domain.ModeContent})

	assert.Zero(t, n)
	assert.True(t, f.backlog.Contains(e.Path))
	assert.EqualValues(t, 1, f.stats.Errors.Load())
	assert.EqualValues(t, 1, f.stats.NotFound.Load())
}

func TestScanForFilenameRules(t *testing.T) {
	f := newFixture(t,
		domain.SearchRule{Key: "invoice", Folder: "Invoices", Mode: domain.ModeFilename},
		domain.SearchRule{Key: "act", Folder: "Acts", Mode: domain.ModeFilename},
	)
	inv := f.file("Invoice_March-2024.pdf")
	act := f.file("ACT-17.xlsx")
	none := f.file("scan0001.pdf")
	f.waiting(inv, act, none)

	n := f.backlog.ScanForFilenameRules(context.Background())

	assert.Equal(t, 2, n)
	assert.Equal(t, []domain.FileEntry{none}, f.backlog.Entries())
	assert.True(t, f.movedTo("Invoices", "Invoice_March-2024.pdf"))
	assert.True(t, f.movedTo("Acts", "ACT-17.xlsx"))
	assert.EqualValues(t, 2, f.stats.FilenameMatches.Load())
}
