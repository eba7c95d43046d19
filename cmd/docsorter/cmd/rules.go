package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/adapters/editor"
	"docsorter/internal/application/commands"
	"docsorter/internal/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and change the search rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules in the order they are tried",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		listCmd := commands.NewListRulesCommand(ruleStore())
		if raw, _ := cmd.Flags().GetString("mode"); raw != "" {
			mode, err := domain.ParseSearchMode(raw)
			if err != nil {
				return err
			}
			listCmd.Mode = &mode
		}

		rules, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Println("No rules found")
			return nil
		}
		for _, r := range rules {
			fmt.Println(domain.FormatRuleLine(r))
		}
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <key> [folder]",
	Short: "Add a rule, or replace the rule with the same key",
	Long: `Add a rule to the rule file. Without a folder the key names its own
folder. Re-adding an existing key replaces its folder and mode but keeps its
position.

Examples:
  docsorter rules add Invoice
  docsorter rules add "ACME Corp" Suppliers
  docsorter rules add "tax report" Taxes --mode filename`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("mode")
		mode, err := domain.ParseSearchMode(raw)
		if err != nil {
			return err
		}

		folder := ""
		if len(args) == 2 {
			folder = args[1]
		}

		ctx := context.Background()
		addCmd := commands.NewAddRuleCommand(ruleStore(), nil, args[0], folder, mode)
		result, err := addCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var rulesEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the rule file in your editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		editCmd := commands.NewEditRulesCommand(ruleStore(), editor.NewOpener(currentConfig().Editor))
		result, err := editCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd, rulesAddCmd, rulesEditCmd)
	rulesListCmd.Flags().String("mode", "", "only list content or filename rules")
	rulesAddCmd.Flags().String("mode", "content", "match against the document content or its file name")
	rulesEditCmd.Flags().String("editor", "", "editor command (default $EDITOR)")
}
