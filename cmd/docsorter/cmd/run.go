package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"docsorter/internal/adapters/clipboard"
	"docsorter/internal/adapters/filesystem"
	"docsorter/internal/adapters/report"
	"docsorter/internal/adapters/tui"
	"docsorter/internal/application/commands"
	"docsorter/internal/config"
	"docsorter/internal/ports"
)

// console is an operator console that can also ask yes/no questions
type console interface {
	ports.Console
	Confirm(ctx context.Context, question string) (bool, error)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sort the source directory into the output directory",
	Long: `Scan the source directory and move every document into the folder of
the first matching rule.

Automatic mode sorts with a pool of workers and sends documents no rule
claims to the quarantine folder. Interactive mode queues them instead and
asks what to do with each one; keys taught there are added to the rule file
and immediately applied to the rest of the queue.

Files are moved, not copied. Reports are written to the output directory.

Examples:
  docsorter run -s ~/Inbox -o ~/Sorted
  docsorter run -s ~/Inbox -o ~/Sorted --interactive
  docsorter run -s ~/Inbox -o ~/Sorted --workers 8 --quarantine REVIEW`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		if err := cfg.ValidateRun(); err != nil {
			return err
		}

		logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		extractor, closeCache := cfg.NewExtractor(logger)
		defer closeCache()

		operator := newConsole()
		if cfg.Interactive && !cfg.AssumeYes {
			ok, err := operator.Confirm(ctx, fmt.Sprintf("Move documents from %s into %s?", cfg.SourceDir, cfg.OutputDir))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		deps := commands.SortDeps{
			Store:     filesystem.NewRuleFile(cfg.RulesPath),
			Extractor: extractor,
			Mover:     filesystem.NewMover(cfg.OutputDir),
			Scanner:   filesystem.NewScanner(logger, cfg.OutputDir),
			Reports:   report.NewWriter(cfg.OutputDir),
			Logger:    logger,
		}
		if cfg.CleanupEnabled {
			deps.Housekeeper = filesystem.NewHousekeeper(cfg.MarkerExt, logger)
		}
		if cfg.Interactive {
			deps.Console = operator
			deps.Clipboard = clipboard.System{}
		}

		sortCmd := commands.NewSortCommand(deps, uuid.NewString(), cfg.SourceDir, cfg.OutputDir)
		sortCmd.Interactive = cfg.Interactive
		sortCmd.Workers = cfg.Workers
		sortCmd.QuarantineFolder = cfg.Quarantine

		result, err := sortCmd.Execute(ctx)
		if result != nil {
			printSummary(cmd.OutOrStdout(), result, cfg.LogFile)
		}
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted, partial report written to %s", cfg.OutputDir)
		}
		return err
	},
}

// newConsole picks the full terminal prompt when both ends are a terminal
func newConsole() console {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.NewTermConsole(os.Stdin, os.Stdout)
	}
	return tui.NewLineConsole(os.Stdin, os.Stdout)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("source", "s", "", "directory to sort")
	runCmd.Flags().StringP("output", "o", "", "directory receiving the folders")
	runCmd.Flags().BoolP("interactive", "i", false, "ask about documents no rule matches")
	runCmd.Flags().IntP("workers", "w", config.DefaultWorkers, "parallel workers in automatic mode")
	runCmd.Flags().String("quarantine", config.DefaultQuarantine, "folder for unmatched documents in automatic mode")
	runCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	runCmd.Flags().Bool("cleanup", true, "remove source subfolders holding only a stray marker file")
	runCmd.Flags().Bool("cache", true, "reuse extracted text from earlier runs")
}
