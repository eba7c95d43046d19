package application

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

const (
	snippetChars     = 200
	pickPreviewChars = 1000
	pickPreviewLines = 20
	previewLines     = 15
	previewWidth     = 80
)

// Previewer renders short text previews of documents for the operator.
type Previewer struct {
	extractor ports.ContentExtractor
}

// NewPreviewer creates a previewer reading through extractor.
func NewPreviewer(extractor ports.ContentExtractor) *Previewer {
	return &Previewer{extractor: extractor}
}

// Text returns the document's lines joined by newlines, cut to maxChars runes.
func (p *Previewer) Text(ctx context.Context, path string, maxChars int) (string, error) {
	format := domain.DetectFormat(path)
	if !format.HasExtractableText() {
		return "", fmt.Errorf("preview is not available for %s files", format)
	}

	var b strings.Builder
	n := 0
	for line, err := range p.extractor.Extract(ctx, path, format) {
		if err != nil {
			return "", err
		}
		if n > 0 {
			b.WriteByte('\n')
			n++
		}
		b.WriteString(line)
		n += domain.RuneLen(line)
		if n >= maxChars {
			break
		}
	}
	return domain.TruncateRunes(b.String(), maxChars), nil
}

// Lines returns at most maxLines non-empty lines of the first maxChars runes.
func (p *Previewer) Lines(ctx context.Context, path string, maxChars, maxLines int) ([]string, error) {
	text, err := p.Text(ctx, path, maxChars)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxLines {
			break
		}
	}
	return out, nil
}

// Snippet is a one-paragraph preview used when teaching a key.
func (p *Previewer) Snippet(ctx context.Context, path string) string {
	text, err := p.Text(ctx, path, snippetChars)
	if err != nil {
		return err.Error()
	}
	if text == "" {
		return "(no text found)"
	}
	return strings.ReplaceAll(text, "\n", " / ")
}

// Describe renders the full preview block shown from the action menu.
func (p *Previewer) Describe(ctx context.Context, entry domain.FileEntry) []string {
	format := domain.DetectFormat(entry.Path)
	header := fmt.Sprintf("%s (%s)", entry.Name(), format)
	if info, err := os.Stat(entry.Path); err == nil {
		header = fmt.Sprintf("%s (%s, %s)", entry.Name(), format, humanize.Bytes(uint64(info.Size())))
	}

	out := []string{header}
	lines, err := p.Lines(ctx, entry.Path, previewLines*previewWidth*2, previewLines)
	if err != nil {
		return append(out, err.Error())
	}
	if len(lines) == 0 {
		return append(out, "(no text found)")
	}
	for _, line := range lines {
		out = append(out, truncate.StringWithTail(line, previewWidth, "..."))
	}
	return out
}
