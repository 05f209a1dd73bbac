// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// DatasetStore persists prepared splits for reuse by training.
type DatasetStore interface {
	// SaveSplit replaces any previously stored split and summary.
	SaveSplit(ctx context.Context, split model.Split, summary model.Summary) error
	LoadSplit(ctx context.Context) (model.Split, error)
	LoadSummary(ctx context.Context) (*model.Summary, error)
}

// RunStore records the history of training runs.
type RunStore interface {
	SaveTrainingRun(ctx context.Context, run *model.TrainingRun) error
	ListTrainingRuns(ctx context.Context, limit int) ([]model.TrainingRun, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	DatasetStore
	RunStore

	Migrate(ctx context.Context) error
	Close() error
}
