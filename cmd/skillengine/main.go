// Package main implements the skillengine CLI: a thin JSON-emitting wrapper
// around the indexing engine, for manual reindex/search/repo operations
// against the local on-disk store.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "skillengine",
	Short:   "Local hybrid skill-document indexing and retrieval engine",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ~/.config/skillengine/config.yaml)")
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(repoCmd)
}
