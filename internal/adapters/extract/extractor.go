package extract

import (
	"context"
	"fmt"
	"iter"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// Limits caps how much of a spreadsheet is read.
type Limits struct {
	MaxRows int // rows per sheet
	MaxCols int // cells per row
}

// DefaultLimits reads the first 500 rows and 20 columns of every sheet.
func DefaultLimits() Limits {
	return Limits{MaxRows: 500, MaxCols: 20}
}

// Extractor implements ports.ContentExtractor for spreadsheets and PDFs
type Extractor struct {
	limits Limits
}

// Ensure Extractor implements ports.ContentExtractor
var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor creates an extractor. Zero limits fall back to DefaultLimits.
func NewExtractor(limits Limits) *Extractor {
	def := DefaultLimits()
	if limits.MaxRows <= 0 {
		limits.MaxRows = def.MaxRows
	}
	if limits.MaxCols <= 0 {
		limits.MaxCols = def.MaxCols
	}
	return &Extractor{limits: limits}
}

// Limits returns the effective spreadsheet limits.
func (e *Extractor) Limits() Limits {
	return e.limits
}

// Extract yields the text lines of the document at path.
func (e *Extractor) Extract(ctx context.Context, path string, format domain.Format) iter.Seq2[string, error] {
	switch format {
	case domain.FormatSpreadsheet:
		return e.spreadsheetLines(ctx, path)
	case domain.FormatPDF:
		return pdfLines(ctx, path)
	default:
		return func(yield func(string, error) bool) {}
	}
}

// Signature identifies the extraction settings, so cached text produced
// under other limits is not reused.
func (e *Extractor) Signature() string {
	return fmt.Sprintf("rows=%d;cols=%d", e.limits.MaxRows, e.limits.MaxCols)
}
