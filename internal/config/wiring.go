package config

import (
	"log/slog"

	"docsorter/internal/adapters/extract"
	"docsorter/internal/adapters/sqlite"
	"docsorter/internal/ports"
)

// NewExtractor builds the document text extractor for c. With the cache
// enabled the extractor is backed by the SQLite text cache; a cache that
// cannot be opened is logged and skipped. The returned function releases
// the cache.
func (c Config) NewExtractor(logger *slog.Logger) (ports.ContentExtractor, func() error) {
	base := extract.NewExtractor(extract.Limits{MaxRows: c.MaxRows, MaxCols: c.MaxCols})
	if !c.CacheEnabled {
		return base, func() error { return nil }
	}

	cache, err := sqlite.Open(c.CachePath)
	if err != nil {
		logger.Warn("text cache unavailable, extracting without it", "path", c.CachePath, "error", err)
		return base, func() error { return nil }
	}
	logger.Debug("text cache opened", "path", cache.Path())
	return extract.NewCachingExtractor(base, cache, base.Signature(), logger), cache.Close
}
