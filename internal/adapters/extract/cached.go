package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// CachingExtractor serves text from a cache keyed by the file's content
// hash. Text is stored only after the inner extractor was read to the end
// without error. Cache failures are logged and never fail an extraction.
type CachingExtractor struct {
	inner     ports.ContentExtractor
	cache     ports.TextCache
	signature string
	logger    *slog.Logger
}

var _ ports.ContentExtractor = (*CachingExtractor)(nil)

// NewCachingExtractor wraps inner. signature distinguishes extraction
// settings that change the produced text.
func NewCachingExtractor(inner ports.ContentExtractor, cache ports.TextCache, signature string, logger *slog.Logger) *CachingExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingExtractor{inner: inner, cache: cache, signature: signature, logger: logger}
}

// Extract yields cached lines when present, otherwise the inner lines.
func (c *CachingExtractor) Extract(ctx context.Context, path string, format domain.Format) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		fp, err := Fingerprint(path, format, c.signature)
		if err != nil {
			yield("", err)
			return
		}

		lines, ok, err := c.cache.Lookup(ctx, fp)
		if err != nil {
			c.logger.Warn("text cache lookup failed", "path", path, "error", err)
		}
		if ok {
			for _, line := range lines {
				if !yield(line, nil) {
					return
				}
			}
			return
		}

		var collected []string
		for line, err := range c.inner.Extract(ctx, path, format) {
			if err != nil {
				yield("", err)
				return
			}
			collected = append(collected, line)
			if !yield(line, nil) {
				return
			}
		}

		if err := c.cache.Store(ctx, fp, collected); err != nil {
			c.logger.Warn("text cache store failed", "path", path, "error", err)
		}
	}
}

// Fingerprint hashes the file content together with the format and the
// extraction signature.
func Fingerprint(path string, format domain.Format, signature string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|", format, signature)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
