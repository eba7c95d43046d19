package extract

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/xuri/excelize/v2"
)

// spreadsheetLines yields one line per non-empty row: the row's non-empty
// cells, trimmed and joined by a space. Legacy binary .xls workbooks are not
// readable by excelize and surface as an error.
func (e *Extractor) spreadsheetLines(ctx context.Context, path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			yield("", fmt.Errorf("failed to open workbook: %w", err))
			return
		}
		defer f.Close()

		for _, sheet := range f.GetSheetList() {
			if !e.sheetLines(ctx, f, sheet, yield) {
				return
			}
		}
	}
}

// sheetLines streams one sheet and reports whether iteration should go on.
func (e *Extractor) sheetLines(ctx context.Context, f *excelize.File, sheet string, yield func(string, error) bool) bool {
	rows, err := f.Rows(sheet)
	if err != nil {
		yield("", fmt.Errorf("failed to read sheet %q: %w", sheet, err))
		return false
	}
	defer rows.Close()

	for n := 0; n < e.limits.MaxRows && rows.Next(); n++ {
		if err := ctx.Err(); err != nil {
			yield("", err)
			return false
		}
		cells, err := rows.Columns()
		if err != nil {
			yield("", fmt.Errorf("failed to read row in sheet %q: %w", sheet, err))
			return false
		}
		line := joinCells(cells, e.limits.MaxCols)
		if line == "" {
			continue
		}
		if !yield(line, nil) {
			return false
		}
	}
	if err := rows.Error(); err != nil {
		yield("", fmt.Errorf("failed to read sheet %q: %w", sheet, err))
		return false
	}
	return true
}

func joinCells(cells []string, maxCols int) string {
	if len(cells) > maxCols {
		cells = cells[:maxCols]
	}
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
