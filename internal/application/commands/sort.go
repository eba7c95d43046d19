package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"docsorter/internal/application"
	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

const (
	// DefaultWorkers is the auto-mode pool width.
	DefaultWorkers = 4
	// DefaultQuarantineFolder receives files no rule claims in auto mode.
	DefaultQuarantineFolder = "UNSORTED"

	autoProgressEvery        = 50
	interactiveProgressEvery = 10
)

// SortDeps are the collaborators of a sorting run.
type SortDeps struct {
	Store       ports.RuleStore
	Extractor   ports.ContentExtractor
	Mover       ports.Mover
	Scanner     ports.TreeScanner
	Housekeeper ports.Housekeeper  // optional
	Reports     ports.ReportWriter // optional
	Console     ports.Console      // required in interactive mode
	Clipboard   ports.Clipboard    // optional
	Logger      *slog.Logger
	Now         func() time.Time
}

// SortResult contains the result of a sorting run
type SortResult struct {
	Summary domain.Summary
	Session application.SessionResult
	Message string
}

// SortCommand sorts every document under SourceDir into OutputDir
type SortCommand struct {
	deps             SortDeps
	RunID            string
	SourceDir        string
	OutputDir        string
	Interactive      bool
	Workers          int
	QuarantineFolder string
}

// NewSortCommand creates a new SortCommand
func NewSortCommand(deps SortDeps, runID, sourceDir, outputDir string) *SortCommand {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &SortCommand{
		deps:             deps,
		RunID:            runID,
		SourceDir:        sourceDir,
		OutputDir:        outputDir,
		Workers:          DefaultWorkers,
		QuarantineFolder: DefaultQuarantineFolder,
	}
}

// Validate checks if the sort run can start
func (c *SortCommand) Validate() error {
	if err := application.ValidateRequired("sourceDir", c.SourceDir); err != nil {
		return err
	}
	if err := application.ValidateRequired("outputDir", c.OutputDir); err != nil {
		return err
	}
	if c.Workers < 1 {
		return &application.ValidationError{Field: "workers", Message: "at least one worker is required"}
	}
	if c.Interactive && c.deps.Console == nil {
		return &application.ValidationError{Field: "console", Message: "interactive mode needs a console"}
	}
	return application.ValidateRequired("quarantine", c.QuarantineFolder)
}

// run holds the state owned by one execution.
type run struct {
	stats      *domain.RunStats
	registry   *application.KeyRegistry
	classifier *application.Classifier
	relocator  *application.Relocator
	backlog    *application.Backlog
	quarantine string
	logger     *slog.Logger
}

// Execute runs the sort. A missing or empty rule file fails before anything
// is touched. Per-file problems are logged and counted; the summary is
// written even when the operator aborts or the context is cancelled, in
// which case the result comes back together with the cause.
func (c *SortCommand) Execute(ctx context.Context) (*SortResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := c.deps.Logger.With("run_id", c.RunID)

	registry := application.NewKeyRegistry(c.deps.Store, logger)
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	if registry.Len() == 0 {
		return nil, &application.ConfigError{
			Path:   c.deps.Store.Location(),
			Reason: "rule file has no valid rules",
			Err:    application.ErrNoRules,
		}
	}

	var cleaned []string
	if c.deps.Housekeeper != nil {
		var err error
		cleaned, err = c.deps.Housekeeper.Clean(ctx, c.SourceDir)
		if err != nil {
			logger.Warn("housekeeping failed", "source", c.SourceDir, "error", err)
		}
	}

	entries, err := c.deps.Scanner.Scan(ctx, c.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.SourceDir, err)
	}

	quarantine, err := c.deps.Mover.EnsureFolder(c.QuarantineFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to create quarantine folder: %w", err)
	}

	r := &run{stats: &domain.RunStats{}, registry: registry, quarantine: quarantine, logger: logger}
	r.stats.Scanned.Store(int64(len(entries)))
	r.classifier = application.NewClassifier(registry, c.deps.Extractor, logger)
	r.relocator = application.NewRelocator(c.deps.Mover, application.NewFoundFolders(quarantine), r.stats, application.NewLedger(), logger)
	r.backlog = application.NewBacklog(r.classifier, r.relocator, r.stats, logger)

	logger.Info("sort started",
		"source", c.SourceDir, "output", c.OutputDir, "files", len(entries),
		"rules", registry.Len(), "interactive", c.Interactive, "workers", c.Workers)

	result := &SortResult{}
	var runErr error
	if c.Interactive {
		result.Session, runErr = c.runInteractive(ctx, r, entries)
	} else {
		runErr = c.runAuto(ctx, r, entries)
	}

	interrupted := runErr != nil
	if errors.Is(runErr, application.ErrAborted) {
		logger.Warn("interactive session ended by operator", "waiting", r.backlog.Len())
		runErr = nil
	}

	result.Summary = c.summarize(r, cleaned, interrupted)
	if c.deps.Reports != nil {
		if err := c.deps.Reports.Write(ctx, result.Summary); err != nil {
			logger.Error("writing report failed", "error", err)
		}
	}

	s := result.Summary.Stats
	result.Message = fmt.Sprintf("Sorted %d of %d files (%d moved, %d errors)", s.Sorted, s.Scanned, s.Moved, s.Errors)
	logger.Info("sort finished", "sorted", s.Sorted, "moved", s.Moved, "not_found", s.NotFound, "errors", s.Errors)
	return result, runErr
}

// runAuto classifies entries on a bounded pool. Files no rule claims go to
// the quarantine folder.
func (c *SortCommand) runAuto(ctx context.Context, r *run, entries []domain.FileEntry) error {
	var g errgroup.Group
	g.SetLimit(c.Workers)

	total := len(entries)
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			c.sortOne(ctx, r, entry)
			if n := r.stats.Processed.Add(1); n%autoProgressEvery == 0 {
				r.logger.Info("progress", "processed", n, "total", total)
			}
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

func (c *SortCommand) sortOne(ctx context.Context, r *run, entry domain.FileEntry) {
	ledger := r.relocator.Ledger()
	ledger.Pending(entry, "no rule matched")

	if m, ok := r.classifier.Classify(ctx, entry.Path, application.ClassifyContentOnly); ok {
		if _, err := r.relocator.Relocate(ctx, entry, m.Folder); err == nil {
			r.stats.ContentMatches.Add(1)
			r.stats.Sorted.Add(1)
		}
		return
	}

	r.stats.NotFound.Add(1)
	if _, err := r.relocator.Relocate(ctx, entry, r.quarantine); err == nil {
		r.stats.Quarantined.Add(1)
	}
}

// runInteractive classifies on the calling goroutine, queues what no rule
// claims and hands the queue to the operator.
func (c *SortCommand) runInteractive(ctx context.Context, r *run, entries []domain.FileEntry) (application.SessionResult, error) {
	ledger := r.relocator.Ledger()
	total := len(entries)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return application.SessionResult{}, err
		}
		ledger.Pending(entry, "waiting for a decision")

		if m, ok := r.classifier.Classify(ctx, entry.Path, application.ClassifyContentOnly); ok {
			if _, err := r.relocator.Relocate(ctx, entry, m.Folder); err == nil {
				r.stats.ContentMatches.Add(1)
				r.stats.Sorted.Add(1)
			}
		} else {
			r.backlog.Add(entry)
			r.stats.NotFound.Add(1)
		}

		r.stats.Processed.Add(1)
		if (i+1)%interactiveProgressEvery == 0 {
			r.logger.Info("progress", "processed", i+1, "total", total, "waiting", r.backlog.Len())
		}
	}

	session := application.NewSession(application.SessionDeps{
		Registry:   r.registry,
		Classifier: r.classifier,
		Backlog:    r.backlog,
		Relocator:  r.relocator,
		Previewer:  application.NewPreviewer(c.deps.Extractor),
		Console:    c.deps.Console,
		Clipboard:  c.deps.Clipboard,
		Stats:      r.stats,
		Logger:     r.logger,
	}, r.quarantine)
	return session.Run(ctx)
}

func (c *SortCommand) summarize(r *run, cleaned []string, interrupted bool) domain.Summary {
	folders, orgs, left := domain.TallyOutcomes(r.relocator.Ledger().Outcomes())

	mode := "auto"
	if c.Interactive {
		mode = "interactive"
	}

	rules := r.registry.Rules()
	lines := make([]string, len(rules))
	for i, rule := range rules {
		lines[i] = domain.FormatRuleLine(rule)
	}

	return domain.Summary{
		RunID:            c.RunID,
		GeneratedAt:      c.deps.Now(),
		Mode:             mode,
		Source:           c.SourceDir,
		Output:           c.OutputDir,
		RulesPath:        r.registry.Location(),
		Rules:            len(rules),
		QuarantineFolder: r.quarantine,
		Stats:            r.stats.Snapshot(),
		Folders:          folders,
		Organizations:    orgs,
		LeftInSource:     left,
		BacklogRemaining: r.backlog.Len(),
		CleanedDirs:      cleaned,
		ActiveRules:      lines,
		Interrupted:      interrupted,
	}
}
