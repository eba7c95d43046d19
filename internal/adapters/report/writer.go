package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

const (
	TextReportName    = "REPORT.txt"
	YAMLReportName    = "report.yaml"
	RulesSnapshotName = "search-settings.txt"

	// maxListedLeftovers caps the files-left-in-source listing of the text report.
	maxListedLeftovers = 50
)

// Writer implements ports.ReportWriter into the output directory
type Writer struct {
	outputDir string
}

// Ensure Writer implements ReportWriter
var _ ports.ReportWriter = (*Writer)(nil)

// NewWriter creates a report writer for outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write produces the text report, the YAML report and the rules snapshot.
// Every file is attempted; the first failure is returned.
func (w *Writer) Write(ctx context.Context, s domain.Summary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var firstErr error
	for _, out := range []struct {
		name   string
		render func(io.Writer, domain.Summary) error
	}{
		{TextReportName, renderText},
		{YAMLReportName, renderYAML},
		{RulesSnapshotName, renderRules},
	} {
		if err := ctx.Err(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := w.writeFile(out.name, s, out.render); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (w *Writer) writeFile(name string, s domain.Summary, render func(io.Writer, domain.Summary) error) error {
	path := filepath.Join(w.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f, s); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func renderText(out io.Writer, s domain.Summary) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("DOCUMENT SORTING REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run:       %s (%s)\n", s.RunID, s.Mode)
	fmt.Fprintf(&b, "Source:    %s\n", s.Source)
	fmt.Fprintf(&b, "Output:    %s\n", s.Output)
	fmt.Fprintf(&b, "Rules:     %s (%d)\n", s.RulesPath, s.Rules)
	if s.Interrupted {
		b.WriteString("\nThe run was interrupted before every file was processed.\n")
	}

	st := s.Stats
	b.WriteString("\nSTATISTICS\n")
	for _, row := range []struct {
		label string
		value int64
	}{
		{"Files found", st.Scanned},
		{"Processed", st.Processed},
		{"Sorted by rules", st.Sorted},
		{"  content matches", st.ContentMatches},
		{"  filename matches", st.FilenameMatches},
		{"  operator choices", st.InteractiveChoices},
		{"No rule matched", st.NotFound},
		{"Sent to " + s.QuarantineFolder, st.Quarantined},
		{"Files moved", st.Moved},
		{"Rules added", st.RulesAdded},
		{"Errors", st.Errors},
	} {
		fmt.Fprintf(&b, "  %-22s %s\n", row.label+":", humanize.Comma(row.value))
	}

	if len(s.Folders) > 0 {
		b.WriteString("\nFOLDERS\n")
		for _, f := range s.Folders {
			fmt.Fprintf(&b, "  %s: %s\n", f.Folder, humanize.Comma(int64(f.Files)))
		}
	}

	if len(s.Organizations) > 0 {
		b.WriteString("\nORGANIZATIONS\n")
		for _, org := range s.Organizations {
			fmt.Fprintf(&b, "  %s\n", org)
		}
	}

	if len(s.LeftInSource) > 0 {
		fmt.Fprintf(&b, "\nLEFT IN SOURCE (%d)\n", len(s.LeftInSource))
		shown := s.LeftInSource
		if len(shown) > maxListedLeftovers {
			shown = shown[:maxListedLeftovers]
		}
		for _, path := range shown {
			fmt.Fprintf(&b, "  %s\n", path)
		}
		if rest := len(s.LeftInSource) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", rest)
		}
	}
	if s.BacklogRemaining > 0 {
		fmt.Fprintf(&b, "\n%d files were still waiting for a decision.\n", s.BacklogRemaining)
	}

	if len(s.CleanedDirs) > 0 {
		b.WriteString("\nREMOVED MARKER DIRECTORIES\n")
		for _, dir := range s.CleanedDirs {
			fmt.Fprintf(&b, "  %s\n", dir)
		}
	}

	b.WriteString("\nNOTES\n")
	b.WriteString("  Files were MOVED, not copied: they are no longer in the source directory.\n")
	b.WriteString("  Check the " + s.QuarantineFolder + " folder for files no rule claimed.\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func renderYAML(out io.Writer, s domain.Summary) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func renderRules(out io.Writer, s domain.Summary) error {
	var b strings.Builder
	b.WriteString("# Rules active during run " + s.RunID + "\n")
	b.WriteString("# Source: " + s.RulesPath + "\n")
	for _, line := range s.ActiveRules {
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
