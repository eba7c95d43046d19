package commands

import (
	"context"
	"log/slog"

	"docsorter/internal/application"
	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// CheckResult is the dry-run classification of one file
type CheckResult struct {
	Path    string
	Format  domain.Format
	Matched bool
	Match   domain.Match
}

// CheckFilesCommand classifies files against the rules without moving them
type CheckFilesCommand struct {
	store     ports.RuleStore
	extractor ports.ContentExtractor
	logger    *slog.Logger
	Paths     []string
	Mode      application.ClassifyMode
}

// NewCheckFilesCommand creates a new CheckFilesCommand
func NewCheckFilesCommand(store ports.RuleStore, extractor ports.ContentExtractor, logger *slog.Logger, paths []string) *CheckFilesCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckFilesCommand{
		store:     store,
		extractor: extractor,
		logger:    logger,
		Paths:     paths,
		Mode:      application.ClassifyContentThenFilename,
	}
}

// Validate checks if the check operation is valid
func (c *CheckFilesCommand) Validate() error {
	if len(c.Paths) == 0 {
		return &application.ValidationError{Field: "paths", Message: "at least one file is required"}
	}
	return nil
}

// Execute runs the check command
func (c *CheckFilesCommand) Execute(ctx context.Context) ([]CheckResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	registry := application.NewKeyRegistry(c.store, c.logger)
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	classifier := application.NewClassifier(registry, c.extractor, c.logger)

	results := make([]CheckResult, 0, len(c.Paths))
	for _, path := range c.Paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		m, ok := classifier.Classify(ctx, path, c.Mode)
		results = append(results, CheckResult{
			Path:    path,
			Format:  domain.DetectFormat(path),
			Matched: ok,
			Match:   m,
		})
	}
	return results, nil
}
