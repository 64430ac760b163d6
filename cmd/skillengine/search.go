package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zeeeepa/mcp-skillset/internal/indexing"
)

var (
	searchTopK     int
	searchMode     string
	searchTags     string
	searchCategory string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a hybrid, vector-only, or graph-only search against the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 10, "number of results to return")
	searchCmd.Flags().StringVar(&searchMode, "mode", "hybrid", "search mode: hybrid, vector_only, graph_only")
	searchCmd.Flags().StringVar(&searchTags, "tags", "", "comma-separated tag hints")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "category filter")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filters := indexing.Filters{Category: searchCategory}
	if searchTags != "" {
		filters.TagHints = strings.Split(searchTags, ",")
	}

	results, err := a.engine.Search(context.Background(), args[0], searchTopK, filters, indexing.Mode(searchMode), 0, 0)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(results)
}
