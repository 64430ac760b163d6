package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	repoPriority int
	repoLicense  string
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage cloned source repositories",
}

var repoAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Clone a new source repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoAdd,
}

var repoUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Fetch and hard-reset a repository to its upstream branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoUpdate,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known repositories",
	RunE:  runRepoList,
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a repository record and its on-disk clone",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoRemove,
}

func init() {
	repoAddCmd.Flags().IntVar(&repoPriority, "priority", 50, "ranking priority, 0-100")
	repoAddCmd.Flags().StringVar(&repoLicense, "license", "", "repository license identifier")

	repoCmd.AddCommand(repoAddCmd, repoUpdateCmd, repoListCmd, repoRemoveCmd)
}

func runRepoAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo, err := a.repos.Add(context.Background(), args[0], repoPriority, repoLicense)
	if err != nil {
		return fmt.Errorf("adding repository: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(repo)
}

func runRepoUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo, err := a.repos.Update(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("updating repository: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(repo)
}

func runRepoList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repos, err := a.repos.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(repos)
}

func runRepoRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.repos.Remove(context.Background(), args[0]); err != nil {
		return fmt.Errorf("removing repository: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "removed", "id": args[0]})
}
