package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// RuleFile implements ports.RuleStore on a plain text file, one rule per line
type RuleFile struct {
	path string
}

// Ensure RuleFile implements ports.RuleStore
var _ ports.RuleStore = (*RuleFile)(nil)

// NewRuleFile creates a rule store at path
func NewRuleFile(path string) *RuleFile {
	return &RuleFile{path: ExpandHome(path)}
}

// Location returns the file path
func (f *RuleFile) Location() string {
	return f.path
}

// Load reads every valid rule; malformed lines are skipped.
func (f *RuleFile) Load(ctx context.Context) ([]domain.SearchRule, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rules []domain.SearchRule
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if rule, ok := domain.ParseRuleLine(line); ok {
			rules = append(rules, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return rules, nil
}

// Save rewrites the file atomically: temp file, fsync, rename.
func (f *RuleFile) Save(_ context.Context, rules []domain.SearchRule) error {
	var b strings.Builder
	for _, r := range rules {
		b.WriteString(domain.FormatRuleLine(r))
		b.WriteByte('\n')
	}
	return writeFileAtomic(f.path, []byte(b.String()))
}

// writeFileAtomic replaces path with data so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
