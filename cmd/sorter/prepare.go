package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/complaint-sorter/internal/cli"
	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/config"
	"github.com/Veraticus/complaint-sorter/internal/dataset"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

func prepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Label, clean and split the raw complaint data",
		Long: `Read the complaint file, map each product to one of the four categories,
normalize the narratives and store a stratified train/test split.

The data file is taken from --data-file, or discovered in --data-dir as
complaint.csv, complaints.csv, complaint.json or complaints.json.`,
		RunE: runPrepare,
	}

	cmd.Flags().String("data-dir", ".", "directory searched for the complaint file")
	cmd.Flags().String("data-file", "", "complaint file (CSV or JSON)")
	cmd.Flags().Int("max-rows", config.DefaultMaxRows, "maximum number of CSV rows to read (0 for all)")
	cmd.Flags().String("text-column", config.DefaultTextColumn, "column holding the narrative")
	cmd.Flags().String("category-column", config.DefaultCategoryColumn, "column holding the product")
	cmd.Flags().Uint64("seed", config.DefaultSeed, "random seed of the split")
	cmd.Flags().Float64("test-fraction", config.DefaultTestFraction, "share of examples held out for evaluation")

	_ = viper.BindPFlag(config.KeyDataDir, cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag(config.KeyDataFile, cmd.Flags().Lookup("data-file"))
	_ = viper.BindPFlag(config.KeyMaxRows, cmd.Flags().Lookup("max-rows"))
	_ = viper.BindPFlag(config.KeyTextColumn, cmd.Flags().Lookup("text-column"))
	_ = viper.BindPFlag(config.KeyCategoryColumn, cmd.Flags().Lookup("category-column"))
	_ = viper.BindPFlag(config.KeySplitSeed, cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag(config.KeySplitTestFraction, cmd.Flags().Lookup("test-fraction"))

	return cmd
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.DataFile
	if path == "" {
		if path, err = dataset.FindDataFile(cfg.DataDir); err != nil {
			return err
		}
	}
	slog.Info("Loading complaints", "file", path, "max_rows", cfg.MaxRows)

	table, err := dataset.Load(path, cfg.MaxRows)
	if err != nil {
		return err
	}
	records, err := table.Records(cfg.TextColumn, cfg.CategoryColumn)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(records), "Preparing complaints")
	preparer := dataset.NewPreparer(
		dataset.WithSplitter(dataset.StratifiedSplitter{TestFraction: cfg.TestFraction, Seed: cfg.Seed}),
		dataset.WithProgress(cli.Step(bar)),
	)

	summary, err := preparer.PrepareAndSave(ctx, records, store)
	if err != nil {
		return err
	}
	if err := storage.WriteJSON(cfg.SummaryPath, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	common.LogInfo("Wrote dataset summary", common.Fields{
		"path":  cfg.SummaryPath,
		"kept":  summary.TotalKept,
		"train": summary.Train,
		"test":  summary.Test,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderSummary(summary))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Split saved to %s, summary written to %s", cfg.DatabasePath, cfg.SummaryPath)))
	return nil
}
