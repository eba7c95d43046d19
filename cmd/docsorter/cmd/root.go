package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docsorter/internal/adapters/filesystem"
	"docsorter/internal/config"
)

var (
	configFile string
	v          *viper.Viper
)

// flagKeys maps command-line flags onto configuration keys
var flagKeys = map[string]string{
	"rules":       config.KeyRules,
	"log-level":   config.KeyLogLevel,
	"source":      config.KeySource,
	"output":      config.KeyOutput,
	"interactive": config.KeyInteractive,
	"workers":     config.KeyWorkers,
	"quarantine":  config.KeyQuarantine,
	"yes":         config.KeyAssumeYes,
	"cleanup":     config.KeyCleanup,
	"cache":       config.KeyCache,
	"editor":      config.KeyEditor,
}

var rootCmd = &cobra.Command{
	Use:   "docsorter",
	Short: "Sort documents into folders by search keys",
	Long: `docsorter moves spreadsheets, PDFs and Word documents from a source
directory into named folders of an output directory.

A document goes to the folder of the first search rule whose key appears in
its text, or in its file name for filename rules. Rules live in a plain text
file, one per line:

  KEY
  KEY | FOLDER
  KEY | FOLDER | filename

In interactive mode unmatched documents are presented one by one, and new
rules taught along the way are saved to the rule file immediately.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		var err error
		if v, err = config.New(configFile); err != nil {
			return err
		}
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
		return config.FromViper(v).Validate()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./docsorter.yaml or $XDG_CONFIG_HOME/docsorter/docsorter.yaml)")
	rootCmd.PersistentFlags().StringP("rules", "r", "", "path to the rule file (default "+config.DefaultRulesPath+")")
	rootCmd.PersistentFlags().String("log-level", "", "stderr log level: debug, info, warn, error")
}

// currentConfig returns the resolved configuration
func currentConfig() config.Config {
	return config.FromViper(v)
}

// ruleStore opens the configured rule file
func ruleStore() *filesystem.RuleFile {
	return filesystem.NewRuleFile(currentConfig().RulesPath)
}
