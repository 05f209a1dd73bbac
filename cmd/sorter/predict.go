package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/complaint-sorter/internal/cli"
	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/config"
	"github.com/Veraticus/complaint-sorter/internal/engine"
	"github.com/Veraticus/complaint-sorter/internal/storage"
	"github.com/Veraticus/complaint-sorter/internal/tui"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify complaint narratives with the trained model",
		Long: `Classify one narrative (--text), a file with one narrative per line (--file),
or both. Each prediction is printed as

  [predict] <code> :: <category> :: <narrative, first 80 characters>

Use --interactive to type narratives into a console instead.`,
		RunE: runPredict,
	}

	cmd.Flags().String("text", "", "narrative to classify")
	cmd.Flags().String("file", "", "file with one narrative per line")
	cmd.Flags().Bool("interactive", false, "open the interactive prediction console")
	cmd.Flags().Bool("normalize", true, "clean each narrative the same way the training data was cleaned")
	cmd.Flags().String("theme", "default", "console theme (default, catppuccin)")

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")
	interactive, _ := cmd.Flags().GetBool("interactive")
	normalize, _ := cmd.Flags().GetBool("normalize")
	theme, _ := cmd.Flags().GetString("theme")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	predictor, err := engine.LoadPredictor(storage.NewFileModelStore(cfg.ModelPath), engine.WithNormalization(normalize))
	if err != nil {
		return err
	}

	if interactive {
		return tui.Run(cmd.Context(), predictor, tui.RunConfig{
			Input:  cmd.InOrStdin(),
			Output: cmd.OutOrStdout(),
			Theme:  theme,
		})
	}

	texts, err := collectTexts(text, file)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return common.NewUserError("no text supplied, pass --text or --file", common.ErrEmptyInput)
	}

	predictions, err := predictor.Predict(texts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range predictions {
		fmt.Fprintln(out, cli.FormatPrediction(p))
	}
	return nil
}

// collectTexts returns --text first, then the non-blank lines of --file.
func collectTexts(text, file string) ([]string, error) {
	var texts []string
	if strings.TrimSpace(text) != "" {
		texts = append(texts, text)
	}
	if file == "" {
		return texts, nil
	}

	f, err := os.Open(config.ExpandPath(file))
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	lines, err := cli.ReadTexts(f)
	if err != nil {
		return nil, err
	}
	return append(texts, lines...), nil
}
