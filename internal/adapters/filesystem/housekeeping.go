package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docsorter/internal/ports"
)

// DefaultMarkerExt is the extension of the stray marker files removed before a run.
const DefaultMarkerExt = ".txt"

// Housekeeper removes first-level directories of the source root that hold
// nothing but a single marker file, as left behind by mail exports.
type Housekeeper struct {
	markerExt string
	logger    *slog.Logger
}

// Ensure Housekeeper implements ports.Housekeeper
var _ ports.Housekeeper = (*Housekeeper)(nil)

// NewHousekeeper creates a housekeeper for marker files with markerExt
func NewHousekeeper(markerExt string, logger *slog.Logger) *Housekeeper {
	if markerExt == "" {
		markerExt = DefaultMarkerExt
	}
	if !strings.HasPrefix(markerExt, ".") {
		markerExt = "." + markerExt
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Housekeeper{markerExt: strings.ToLower(markerExt), logger: logger}
}

// Clean removes the marker-only directories directly under root and returns
// their names. Problems with single directories are logged and skipped.
func (h *Housekeeper) Clean(ctx context.Context, root string) ([]string, error) {
	root = ExpandHome(root)
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	var removed []string
	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !d.IsDir() {
			continue
		}

		dirPath := filepath.Join(root, d.Name())
		marker, ok := h.soleMarker(dirPath)
		if !ok {
			continue
		}
		if err := os.Remove(marker); err != nil {
			h.logger.Warn("cannot remove marker file", "path", marker, "error", err)
			continue
		}
		if err := os.Remove(dirPath); err != nil {
			h.logger.Warn("cannot remove directory", "path", dirPath, "error", err)
			continue
		}
		h.logger.Info("removed marker-only directory", "dir", d.Name())
		removed = append(removed, d.Name())
	}
	return removed, nil
}

// soleMarker returns the marker file path when dir contains exactly one
// regular file with the marker extension and nothing else.
func (h *Housekeeper) soleMarker(dir string) (string, bool) {
	children, err := os.ReadDir(dir)
	if err != nil {
		h.logger.Warn("cannot read directory", "path", dir, "error", err)
		return "", false
	}
	if len(children) != 1 {
		return "", false
	}
	only := children[0]
	if !only.Type().IsRegular() || strings.ToLower(filepath.Ext(only.Name())) != h.markerExt {
		return "", false
	}
	return filepath.Join(dir, only.Name()), true
}
