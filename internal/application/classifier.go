package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// ClassifyMode selects which rule kinds Classify consults
type ClassifyMode int

const (
	ClassifyContentOnly         ClassifyMode = iota // content rules only
	ClassifyContentThenFilename                     // filename rules first, then content rules
)

// Classifier decides the destination folder of a file from the registry.
// It never mutates the registry and is safe for concurrent use.
type Classifier struct {
	registry  *KeyRegistry
	extractor ports.ContentExtractor
	logger    *slog.Logger
}

// NewClassifier creates a classifier over registry.
func NewClassifier(registry *KeyRegistry, extractor ports.ContentExtractor, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{registry: registry, extractor: extractor, logger: logger}
}

// Classify returns the first matching rule for path. Content rules are
// tried in registry order; for each rule the document lines are scanned in
// order and the first line containing the key wins. Extraction failures are
// logged and reported as no match.
func (c *Classifier) Classify(ctx context.Context, path string, mode ClassifyMode) (domain.Match, bool) {
	if mode == ClassifyContentThenFilename {
		if m, ok := c.MatchFilename(path); ok {
			return m, true
		}
	}
	return c.matchContent(ctx, path)
}

// MatchFilename tests the normalized file name against every filename rule.
func (c *Classifier) MatchFilename(path string) (domain.Match, bool) {
	normalized := domain.NormalizeFilename(path)
	for _, rule := range c.registry.RulesByMode(domain.ModeFilename) {
		if domain.MatchesFilenameKey(normalized, rule.Key) {
			return domain.MatchOf(rule), true
		}
	}
	return domain.Match{}, false
}

// MatchRule tests path against a single rule.
func (c *Classifier) MatchRule(ctx context.Context, path string, rule domain.SearchRule) bool {
	if rule.Mode == domain.ModeFilename {
		return domain.MatchesFilenameKey(domain.NormalizeFilename(path), rule.Key)
	}

	format := domain.DetectFormat(path)
	if !format.HasExtractableText() {
		return false
	}
	for line, err := range c.extractor.Extract(ctx, path, format) {
		if err != nil {
			c.logExtraction(path, err)
			return false
		}
		if strings.Contains(line, rule.Key) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchContent(ctx context.Context, path string) (domain.Match, bool) {
	format := domain.DetectFormat(path)
	if !format.HasExtractableText() {
		return domain.Match{}, false
	}
	rules := c.registry.RulesByMode(domain.ModeContent)
	if len(rules) == 0 {
		return domain.Match{}, false
	}

	var lines []string
	for line, err := range c.extractor.Extract(ctx, path, format) {
		if err != nil {
			c.logExtraction(path, err)
			return domain.Match{}, false
		}
		lines = append(lines, line)
	}

	for _, rule := range rules {
		for _, line := range lines {
			if strings.Contains(line, rule.Key) {
				c.logger.Debug("content match", "path", path, "key", rule.Key, "folder", rule.Folder)
				return domain.MatchOf(rule), true
			}
		}
	}
	return domain.Match{}, false
}

func (c *Classifier) logExtraction(path string, err error) {
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		err = &ExtractionError{Path: path, Err: err}
	}
	c.logger.Warn("text extraction failed", "path", path, "error", err)
}
