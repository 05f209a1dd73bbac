// Package engine trains the candidate pipelines, selects the best one and
// serves predictions from the persisted artifact.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/evaluation"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
	"github.com/Veraticus/complaint-sorter/internal/service"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

// Trainer fits every candidate, evaluates it on the test split and keeps the
// best-so-far pipeline persisted while it goes.
type Trainer struct {
	sink       ModelSink
	runs       service.RunStore
	progress   func(candidate string, result model.CandidateResult)
	now        func() time.Time
	newID      func() string
	reportPath string
	candidates []pipeline.Candidate
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithRunStore records every run in store.
func WithRunStore(store service.RunStore) TrainerOption {
	return func(t *Trainer) { t.runs = store }
}

// WithReportPath writes the text report to path after all candidates are evaluated.
func WithReportPath(path string) TrainerOption {
	return func(t *Trainer) { t.reportPath = path }
}

// WithCandidates replaces the candidate list.
func WithCandidates(candidates []pipeline.Candidate) TrainerOption {
	return func(t *Trainer) { t.candidates = candidates }
}

// WithProgress is called after each candidate is evaluated.
func WithProgress(fn func(candidate string, result model.CandidateResult)) TrainerOption {
	return func(t *Trainer) { t.progress = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TrainerOption {
	return func(t *Trainer) { t.now = now }
}

// NewTrainer creates a trainer persisting the best pipeline to sink.
func NewTrainer(sink ModelSink, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		sink:       sink,
		candidates: pipeline.Candidates(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run trains and evaluates every candidate in order and returns the run record.
func (t *Trainer) Run(ctx context.Context, split model.Split) (*model.TrainingRun, error) {
	if len(split.Train) == 0 || len(split.Test) == 0 {
		return nil, fmt.Errorf("%w: train %d, test %d", common.ErrEmptyDataset, len(split.Train), len(split.Test))
	}
	if len(t.candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates configured", common.ErrUnknownCandidate)
	}

	run := &model.TrainingRun{
		ID:        t.newID(),
		StartedAt: t.now(),
	}
	if t.sink != nil {
		run.ModelPath = t.sink.Path()
	}

	trainTexts, trainLabels := model.Texts(split.Train), model.Labels(split.Train)
	testTexts, testLabels := model.Texts(split.Test), model.Labels(split.Test)

	var best BestTracker
	for _, candidate := range t.candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training interrupted before %s: %w", candidate.Name, err)
		}

		result, fitted, err := t.evaluate(candidate, trainTexts, trainLabels, testTexts, testLabels)
		if err != nil {
			return nil, err
		}
		run.Candidates = append(run.Candidates, result)

		slog.Info("Evaluated candidate",
			"candidate", candidate.Name,
			"accuracy", result.Metrics.Accuracy,
			"f1_macro", result.Metrics.MacroF1,
			"duration", result.Duration)

		if best.Offer(candidate.Name, result.Metrics.MacroF1) && t.sink != nil {
			if err := t.sink.Save(fitted); err != nil {
				return nil, fmt.Errorf("failed to save best model %s: %w", candidate.Name, err)
			}
			slog.Debug("Saved best-so-far model", "candidate", candidate.Name, "path", t.sink.Path())
		}

		if t.progress != nil {
			t.progress(candidate.Name, result)
		}
	}

	run.BestName, run.BestMacroF1, _ = best.Best()

	if t.reportPath != "" {
		err := storage.WriteFileAtomic(t.reportPath, func(w io.Writer) error {
			return evaluation.WriteReport(w, run.Candidates, run.BestName, run.BestMacroF1)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	if t.runs != nil {
		if err := t.runs.SaveTrainingRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record training run: %w", err)
		}
	}

	slog.Info("Selected best model", "candidate", run.BestName, "f1_macro", run.BestMacroF1)
	return run, nil
}

func (t *Trainer) evaluate(candidate pipeline.Candidate, trainTexts []string, trainLabels []model.Label,
	testTexts []string, testLabels []model.Label) (model.CandidateResult, *pipeline.Pipeline, error) {
	start := t.now()

	p := candidate.Build()
	if err := p.Fit(trainTexts, trainLabels); err != nil {
		return model.CandidateResult{}, nil, err
	}
	predicted, err := p.Predict(testTexts)
	if err != nil {
		return model.CandidateResult{}, nil, fmt.Errorf("failed to predict with %s: %w", candidate.Name, err)
	}
	metrics, err := evaluation.Evaluate(testLabels, predicted)
	if err != nil {
		return model.CandidateResult{}, nil, fmt.Errorf("failed to evaluate %s: %w", candidate.Name, err)
	}

	return model.CandidateResult{
		Name:     candidate.Name,
		Metrics:  metrics,
		Duration: t.now().Sub(start),
	}, p, nil
}
