package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"docsorter/internal/adapters/report"
	"docsorter/internal/adapters/tui/styles"
	"docsorter/internal/application/commands"
)

// printSummary renders the end-of-run statistics
func printSummary(w io.Writer, res *commands.SortResult, logFile string) {
	s := res.Summary
	st := s.Stats

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("Sorting finished"))
	if s.Interrupted {
		fmt.Fprintln(w, styles.WarningMsg.Render("The run was interrupted; not every document was processed."))
	}

	label := lipgloss.NewStyle().Width(24).Foreground(styles.Muted)
	row := func(name string, n int64) {
		fmt.Fprintln(w, label.Render(name)+humanize.Comma(n))
	}
	row("Documents found", st.Scanned)
	row("Sorted by rules", st.Sorted)
	row("  by content", st.ContentMatches)
	row("  by file name", st.FilenameMatches)
	row("  by you", st.InteractiveChoices)
	row("Quarantined", st.Quarantined)
	row("Moved", st.Moved)
	row("Rules taught", st.RulesAdded)
	if st.Errors > 0 {
		fmt.Fprintln(w, label.Render("Errors")+styles.ErrorMsg.Render(humanize.Comma(st.Errors)))
	}
	if s.BacklogRemaining > 0 {
		fmt.Fprintln(w, styles.WarningMsg.Render(fmt.Sprintf("%d documents are still waiting in the source directory.", s.BacklogRemaining)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.MutedText.Render("Report: "+s.Output+"/"+report.TextReportName))
	if logFile != "" {
		fmt.Fprintln(w, styles.MutedText.Render("Log:    "+logFile))
	}
	fmt.Fprintln(w, styles.Success.Render(res.Message))
}
