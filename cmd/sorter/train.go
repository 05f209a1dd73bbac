package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/complaint-sorter/internal/cli"
	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/engine"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train every candidate model and keep the best one",
		Long: `Fit each candidate (` + fmt.Sprint(pipeline.Names()) + `) on the prepared training split,
evaluate it on the test split and keep the one with the highest macro-F1.

The best model so far is saved as soon as it is found, so an interrupted run
still leaves a usable model behind.`,
		RunE: runTrain,
	}
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	split, err := store.LoadSplit(cmd.Context())
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "The best model found so far is kept at "+cfg.ModelPath)
	defer interrupts.Stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Training on %d examples, evaluating on %d", len(split.Train), len(split.Test))))

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(pipeline.Candidates()), "Training candidates")
	step := cli.Step(bar)
	var lines []string
	trainer := engine.NewTrainer(storage.NewFileModelStore(cfg.ModelPath),
		engine.WithRunStore(store),
		engine.WithReportPath(cfg.ReportPath),
		engine.WithProgress(func(name string, result model.CandidateResult) {
			step()
			lines = append(lines, fmt.Sprintf("%-12s accuracy %.4f  f1_macro %.4f", name, result.Metrics.Accuracy, result.Metrics.MacroF1))
		}),
	)

	run, err := trainer.Run(ctx, split)
	if err != nil {
		common.LogError(err, "Training failed", common.Fields{
			"model_path":  cfg.ModelPath,
			"interrupted": interrupts.WasInterrupted(),
		})
		return err
	}

	for _, line := range lines {
		fmt.Fprintln(out, cli.FormatInfo(line))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Best model: %s (f1_macro=%.4f) saved to %s", run.BestName, run.BestMacroF1, cfg.ModelPath)))
	fmt.Fprintln(out, cli.FormatInfo("Report written to "+cfg.ReportPath))
	return nil
}
