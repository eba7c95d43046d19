package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsorter/internal/adapters/filesystem"
	"docsorter/internal/adapters/report"
	"docsorter/internal/application"
	"docsorter/internal/domain"
)

func (tr *tree) sortCommand(console *scriptedConsole) *SortCommand {
	logger := discardLogger()
	deps := SortDeps{
		Store:       filesystem.NewRuleFile(tr.rules),
		Extractor:   tr.extractor,
		Mover:       filesystem.NewMover(tr.out),
		Scanner:     filesystem.NewScanner(logger, tr.out),
		Housekeeper: filesystem.NewHousekeeper(filesystem.DefaultMarkerExt, logger),
		Reports:     report.NewWriter(tr.out),
		Logger:      logger,
		Now:         func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) },
	}
	cmd := NewSortCommand(deps, "test-run", tr.src, tr.out)
	if console != nil {
		cmd.deps.Console = console
		cmd.Interactive = true
	}
	return cmd
}

func TestSortCommandAutoMode(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices", "ACME Corp | Suppliers")
	tr.doc("a.pdf", "Invoice 1")
	tr.doc("b.xlsx", "nothing to see")
	tr.doc("sub/c.pdf", "ACME Corp invoice")
	tr.doc("broken.pdf")
	tr.extractor.fail["broken.pdf"] = true
	tr.doc("letter.docx")
	tr.doc("stray/readme.txt")

	result, err := tr.sortCommand(nil).Execute(context.Background())
	require.NoError(t, err)

	s := result.Summary.Stats
	assert.Equal(t, int64(5), s.Scanned)
	assert.Equal(t, int64(5), s.Processed)
	assert.Equal(t, int64(2), s.Sorted)
	assert.Equal(t, int64(2), s.ContentMatches)
	assert.Equal(t, int64(3), s.NotFound)
	assert.Equal(t, int64(3), s.Quarantined)
	assert.Equal(t, int64(5), s.Moved)
	assert.Zero(t, s.Errors)

	assert.Equal(t, 1, tr.filesIn("Invoices"))
	assert.Equal(t, 1, tr.filesIn("Suppliers"))
	assert.Equal(t, 3, tr.filesIn("UNSORTED"))
	assert.Equal(t, domain.FolderCount{Folder: "UNSORTED", Files: 3}, result.Summary.Folders[0])
	assert.Empty(t, result.Summary.LeftInSource)
	assert.Equal(t, []string{"stray"}, result.Summary.CleanedDirs)
	assert.NoDirExists(t, filepath.Join(tr.src, "stray"))
	assert.NoFileExists(t, filepath.Join(tr.src, "a.pdf"))

	assert.Equal(t, "auto", result.Summary.Mode)
	assert.Equal(t, "test-run", result.Summary.RunID)
	assert.Equal(t, []string{"Invoice | Invoices | content", "ACME Corp | Suppliers | content"}, result.Summary.ActiveRules)
	assert.FileExists(t, filepath.Join(tr.out, report.TextReportName))
	assert.FileExists(t, filepath.Join(tr.out, report.YAMLReportName))
}

func TestSortCommandIgnoresFilenameRulesInAutoMode(t *testing.T) {
	tr := newTree(t, "invoice | Invoices | filename")
	tr.doc("Invoice_March.pdf", "no keys inside")

	result, err := tr.sortCommand(nil).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Summary.Stats.Quarantined)
	assert.Equal(t, 0, tr.filesIn("Invoices"))
	assert.Equal(t, 1, tr.filesIn("UNSORTED"))
}

func TestSortCommandRuleFileProblems(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		tr := newTree(t)
		path := tr.doc("a.pdf", "Invoice")

		_, err := tr.sortCommand(nil).Execute(context.Background())
		assert.ErrorIs(t, err, application.ErrConfig)
		assert.FileExists(t, path)
	})

	t.Run("no valid rules", func(t *testing.T) {
		tr := newTree(t, "", "  |  ", "KEY | FOLDER | regex")
		path := tr.doc("a.pdf", "Invoice")

		_, err := tr.sortCommand(nil).Execute(context.Background())
		assert.ErrorIs(t, err, application.ErrConfig)
		assert.ErrorIs(t, err, application.ErrNoRules)
		assert.FileExists(t, path)
		assert.NoDirExists(t, filepath.Join(tr.out, "UNSORTED"))
	})
}

func TestSortCommandInteractiveTeachesAndRescans(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices")
	tr.doc("a.pdf", "Invoice 1")
	tr.doc("w1.pdf", "Widget order")
	tr.doc("w2.pdf", "Widget order 2")
	tr.doc("z.pdf", "nothing")

	console := &scriptedConsole{answers: []string{
		"5",       // teach a content key while looking at w1.pdf
		"1",       // type it
		"Widget",  // key
		"1",       // new folder
		"Widgets", // folder name
		"3",       // z.pdf goes to quarantine
	}}

	result, err := tr.sortCommand(console).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.SessionResult{Resolved: 1, Elsewhere: 2}, result.Session)
	s := result.Summary.Stats
	assert.Equal(t, int64(4), s.Sorted)
	assert.Equal(t, int64(0), s.NotFound)
	assert.Equal(t, int64(1), s.RulesAdded)
	assert.Equal(t, int64(1), s.InteractiveChoices)
	assert.Equal(t, int64(4), s.Moved)
	assert.Zero(t, result.Summary.BacklogRemaining)
	assert.False(t, result.Summary.Interrupted)

	assert.Equal(t, 1, tr.filesIn("Invoices"))
	assert.Equal(t, 2, tr.filesIn("Widgets"))
	assert.Equal(t, 1, tr.filesIn("UNSORTED"))

	data, err := os.ReadFile(tr.rules)
	require.NoError(t, err)
	assert.Equal(t, "Invoice | Invoices | content\nWidget | Widgets | content\n", string(data))
}

func TestSortCommandInteractiveAbortKeepsProgress(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices")
	tr.doc("a.pdf", "Invoice 1")
	left := tr.doc("z.pdf", "nothing")

	result, err := tr.sortCommand(&scriptedConsole{}).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Summary.Interrupted)
	assert.Equal(t, 1, result.Summary.BacklogRemaining)
	assert.Equal(t, []string{left}, result.Summary.LeftInSource)
	assert.FileExists(t, left)
	assert.Equal(t, 1, tr.filesIn("Invoices"))
	assert.FileExists(t, filepath.Join(tr.out, report.TextReportName))
}

func TestSortCommandCancelledContext(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices")
	tr.doc("a.pdf", "Invoice 1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.sortCommand(nil).Execute(ctx)
	assert.Error(t, err)
}

func TestSortCommandValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SortCommand)
		field  string
	}{
		{"no source", func(c *SortCommand) { c.SourceDir = "" }, "sourceDir"},
		{"no workers", func(c *SortCommand) { c.Workers = 0 }, "workers"},
		{"interactive without console", func(c *SortCommand) { c.Interactive = true }, "console"},
		{"blank quarantine", func(c *SortCommand) { c.QuarantineFolder = " " }, "quarantine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewSortCommand(SortDeps{}, "id", "/in", "/out")
			tt.modify(cmd)
			var verr *application.ValidationError
			require.ErrorAs(t, cmd.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
