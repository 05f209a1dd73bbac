package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/complaint-sorter/internal/tui/themes"
)

// RunConfig holds the terminal streams of the console.
type RunConfig struct {
	Input  io.Reader
	Output io.Writer
	Theme  string
}

// Run starts the console and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, predictor Predictor, cfg RunConfig) error {
	if predictor == nil {
		return fmt.Errorf("predictor is required")
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	program := tea.NewProgram(New(predictor, WithTheme(themes.ByName(cfg.Theme))), opts...)
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("prediction console failed: %w", err)
	}
	return nil
}
