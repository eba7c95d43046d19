package application

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// Relocator moves entries through a Mover and keeps the run bookkeeping
// (counters, found folders, outcomes) in step with what happened on disk.
type Relocator struct {
	mover   ports.Mover
	folders *FoundFolders
	stats   *domain.RunStats
	ledger  *Ledger
	logger  *slog.Logger
}

// NewRelocator wires a relocator. ledger may be nil.
func NewRelocator(mover ports.Mover, folders *FoundFolders, stats *domain.RunStats, ledger *Ledger, logger *slog.Logger) *Relocator {
	if logger == nil {
		logger = slog.Default()
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Relocator{mover: mover, folders: folders, stats: stats, ledger: ledger, logger: logger}
}

// Relocate moves entry into folder and returns the final path. Failures are
// counted, logged and returned as *MoveError; the file stays where it was.
func (r *Relocator) Relocate(ctx context.Context, entry domain.FileEntry, folder string) (string, error) {
	dest, err := r.mover.Move(ctx, entry.RequestFor(folder))
	if err != nil {
		r.stats.Errors.Add(1)
		r.ledger.Pending(entry, err.Error())
		r.logger.Error("move failed", "path", entry.Path, "folder", folder, "error", err)

		var moveErr *MoveError
		if errors.As(err, &moveErr) {
			return "", err
		}
		return "", &MoveError{Source: entry.Path, Folder: folder, Reason: "move failed", Err: err}
	}

	placed := filepath.Base(filepath.Dir(dest))
	r.stats.Moved.Add(1)
	if !r.folders.Contains(placed) {
		r.logger.Info("new destination folder", "folder", placed)
		r.folders.Add(placed)
	}
	r.ledger.Moved(entry, placed, dest)
	r.logger.Info("file moved", "path", entry.Path, "folder", placed, "destination", dest)
	return dest, nil
}

// Folders exposes the found-folder set the relocator maintains.
func (r *Relocator) Folders() *FoundFolders {
	return r.folders
}

// Ledger exposes the outcome ledger.
func (r *Relocator) Ledger() *Ledger {
	return r.ledger
}
