package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// Scanner implements ports.TreeScanner with a recursive directory walk
type Scanner struct {
	exclude []string
	logger  *slog.Logger
}

// Ensure Scanner implements ports.TreeScanner
var _ ports.TreeScanner = (*Scanner)(nil)

// NewScanner creates a scanner that never descends into the exclude
// directories (typically the output directory when it lives under the source).
func NewScanner(logger *slog.Logger, exclude ...string) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scanner{logger: logger}
	for _, dir := range exclude {
		if abs, err := filepath.Abs(ExpandHome(dir)); err == nil {
			s.exclude = append(s.exclude, abs)
		}
	}
	return s
}

// Scan returns every supported document under root in walk order. Hidden
// files and directories are skipped, as are unreadable subdirectories,
// which are logged.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.FileEntry, error) {
	root, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", root)
	}

	var entries []domain.FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && (isHidden(d.Name()) || s.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) {
			return nil
		}
		if !d.Type().IsRegular() || isOfficeLockFile(d.Name()) || !domain.IsSupportedDocument(d.Name()) {
			return nil
		}

		relDir, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		entries = append(entries, domain.NewFileEntry(path, relDir))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	s.logger.Info("source scanned", "root", root, "documents", len(entries))
	return entries, nil
}

func (s *Scanner) excluded(path string) bool {
	for _, dir := range s.exclude {
		if path == dir {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isOfficeLockFile matches the `~$name.xlsx` owner files Office leaves next
// to open documents.
func isOfficeLockFile(name string) bool {
	return strings.HasPrefix(name, "~$")
}
