package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report current index size without triggering a reindex",
	RunE:  runStats,
}

// currentStats is the live snapshot stats reports: unlike IndexStats from a
// reindex pass, it carries no total_skills/indexed/failed counts since no
// pass has necessarily run this invocation.
type currentStats struct {
	GraphNodes   int `json:"graph_nodes"`
	GraphEdges   int `json:"graph_edges"`
	Repositories int `json:"repositories"`
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repos, err := a.repos.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}

	stats := currentStats{
		GraphNodes:   a.graph.NodeCount(),
		GraphEdges:   a.graph.EdgeCount(),
		Repositories: len(repos),
	}
	return json.NewEncoder(os.Stdout).Encode(stats)
}
