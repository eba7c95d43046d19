package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/adapters/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the extracted-text cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the cache location and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(currentConfig().CachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		n, err := cache.Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d documents\n", cache.Path(), n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all cached document text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(currentConfig().CachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		n, err := cache.Clear(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached documents\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd)
}
