package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsorter/internal/adapters/filesystem"
	"docsorter/internal/application"
	"docsorter/internal/domain"
)

func TestCheckFilesCommand(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices", "march | Monthly | filename")
	byContent := tr.doc("scan.pdf", "Invoice 7")
	byName := tr.doc("Report_March.xlsx", "Invoice 8")
	none := tr.doc("notes.docx")

	check := NewCheckFilesCommand(filesystem.NewRuleFile(tr.rules), tr.extractor, discardLogger(), []string{byContent, byName, none})
	results, err := check.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Matched)
	assert.Equal(t, "Invoices", results[0].Match.Folder)

	assert.Equal(t, domain.Match{Key: "march", Folder: "Monthly", Mode: domain.ModeFilename}, results[1].Match)

	assert.False(t, results[2].Matched)
	assert.Equal(t, domain.FormatWordProcessor, results[2].Format)

	assert.FileExists(t, byContent)
	assert.FileExists(t, byName)
}

func TestCheckFilesCommandContentOnly(t *testing.T) {
	tr := newTree(t, "Invoice | Invoices", "march | Monthly | filename")
	path := tr.doc("Report_March.xlsx", "Invoice 8")

	check := NewCheckFilesCommand(filesystem.NewRuleFile(tr.rules), tr.extractor, nil, []string{path})
	check.Mode = application.ClassifyContentOnly
	results, err := check.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Invoices", results[0].Match.Folder)
}

func TestCheckFilesCommandValidate(t *testing.T) {
	err := NewCheckFilesCommand(nil, nil, nil, nil).Validate()
	var verr *application.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "paths", verr.Field)
}
