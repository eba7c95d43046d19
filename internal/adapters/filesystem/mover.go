package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

const (
	// MaxFolderRunes bounds destination folder names.
	MaxFolderRunes = 100
	// MaxFolderBytes keeps folder names inside the 255-byte component limit.
	MaxFolderBytes = 200
)

// ErrSourceMissing is returned when the file to move no longer exists.
var ErrSourceMissing = errors.New("source file is missing")

// Mover implements ports.Mover on the local filesystem
type Mover struct {
	outputDir string

	// mu serializes picking a free destination name and renaming into it.
	mu sync.Mutex
}

// Ensure Mover implements ports.Mover
var _ ports.Mover = (*Mover)(nil)

// NewMover creates a mover delivering into outputDir
func NewMover(outputDir string) *Mover {
	return &Mover{outputDir: ExpandHome(outputDir)}
}

// SanitizeFolder makes a folder name safe to create: illegal characters
// become `_` and the name is cut to MaxFolderRunes and MaxFolderBytes.
func SanitizeFolder(name string) string {
	name = domain.SanitizeName(strings.TrimSpace(name))
	name = domain.TruncateRunes(name, MaxFolderRunes)
	for len(name) > MaxFolderBytes {
		name = domain.TruncateRunes(name, domain.RuneLen(name)-1)
	}
	return strings.TrimSpace(name)
}

// EnsureFolder creates the destination folder and returns its sanitized name
func (m *Mover) EnsureFolder(folder string) (string, error) {
	name := SanitizeFolder(folder)
	if name == "" {
		return "", fmt.Errorf("invalid folder name: %q", folder)
	}
	if err := os.MkdirAll(filepath.Join(m.outputDir, name), 0755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return name, nil
}

// Move relocates req.Source into its destination folder as
// `<org>_<date>_<folder><ext>`, adding `_1`, `_2`, ... when the name is taken.
func (m *Mover) Move(ctx context.Context, req domain.MoveRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	info, err := os.Stat(req.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, req.Source)
		}
		return "", fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source is a directory: %s", req.Source)
	}

	folder, err := m.EnsureFolder(req.Folder)
	if err != nil {
		return "", err
	}

	name := domain.BuildFinalName(filepath.Base(req.Source), req.Organization, folder, req.DateToken)
	dest, err := freePath(filepath.Join(m.outputDir, folder), name)
	if err != nil {
		return "", err
	}

	if err := moveFile(req.Source, dest); err != nil {
		return "", fmt.Errorf("failed to move file: %w", err)
	}
	return dest, nil
}

// freePath returns dir/name, or the first dir/name_N that does not exist.
func freePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	for n := 1; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check destination: %w", err)
		}
		candidate = filepath.Join(dir, domain.DisambiguatedName(name, n))
	}
}

// moveFile renames src to dst, copying across filesystems when needed.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
