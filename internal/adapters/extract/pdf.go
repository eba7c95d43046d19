package extract

import (
	"context"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfLines yields the trimmed, non-empty lines of every page in order.
func pdfLines(ctx context.Context, path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, r, err := openPDF(path)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close()

		pages := r.NumPage()
		for i := 1; i <= pages; i++ {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			text, err := pageText(r, i)
			if err != nil {
				yield("", err)
				return
			}
			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if !yield(line, nil) {
					return
				}
			}
		}
	}
}

// The parser panics on some malformed documents; both helpers turn that
// into an error.

func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	f, r, err = pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return f, r, nil
}

func pageText(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("malformed pdf page %d: %v", num, p)
		}
	}()
	page := r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to read page %d: %w", num, err)
	}
	return text, nil
}
