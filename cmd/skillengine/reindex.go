package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reindexForce bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the vector and graph indices from the skill corpus",
	RunE:  runReindex,
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexForce, "force", false, "clear existing indices before rebuilding")
}

func runReindex(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.engine.ReindexAll(context.Background(), reindexForce)
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(stats)
}
