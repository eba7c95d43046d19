package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/application"
	"docsorter/internal/application/commands"
	"docsorter/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Show where documents would be sorted, without moving them",
	Long: `Classify documents against the rules and print the destination folder.
Filename rules are tried first, then content rules. Nothing is moved.

Examples:
  docsorter check ~/Inbox/scan.pdf
  docsorter check --content-only ~/Inbox/*.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		logger, closeLog := config.SetupLogger("", cfg.LogLevel)
		defer closeLog()

		extractor, closeCache := cfg.NewExtractor(logger)
		defer closeCache()

		ctx := context.Background()
		check := commands.NewCheckFilesCommand(ruleStore(), extractor, logger, args)
		if contentOnly, _ := cmd.Flags().GetBool("content-only"); contentOnly {
			check.Mode = application.ClassifyContentOnly
		}

		results, err := check.Execute(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			if !r.Matched {
				fmt.Printf("%s: no match (%s)\n", r.Path, r.Format)
				continue
			}
			fmt.Printf("%s -> %s [%s key %q]\n", r.Path, r.Match.Folder, r.Match.Mode, r.Match.Key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("content-only", false, "ignore filename rules, as automatic mode does")
}
