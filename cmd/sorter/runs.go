package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/complaint-sorter/internal/cli"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded training runs",
		RunE:  runRuns,
	}
	cmd.Flags().Int("limit", storage.DefaultRunLimit, "number of runs to show, newest first")
	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListTrainingRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRuns(runs))
	return nil
}
