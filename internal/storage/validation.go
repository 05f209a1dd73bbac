// Package storage provides the persistence layer for prepared datasets,
// training history and model artifacts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidExample = errors.New("invalid example")
	ErrInvalidSummary = errors.New("invalid summary")
	ErrInvalidRun     = errors.New("invalid training run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExamples checks every example carries text and a known label.
func validateExamples(examples []model.Example, side string) error {
	for i, ex := range examples {
		if ex.Text == "" {
			return fmt.Errorf("%w: %s[%d] has no text", ErrInvalidExample, side, i)
		}
		if !ex.Label.Valid() {
			return fmt.Errorf("%w: %s[%d] has label %d", ErrInvalidExample, side, i, int(ex.Label))
		}
	}
	return nil
}

// validateSummary checks the summary agrees with the split it describes.
func validateSummary(split model.Split, summary model.Summary) error {
	if summary.Train != len(split.Train) || summary.Test != len(split.Test) {
		return fmt.Errorf("%w: counts %d/%d do not match split %d/%d", ErrInvalidSummary,
			summary.Train, summary.Test, len(split.Train), len(split.Test))
	}
	if summary.TotalKept != summary.Train+summary.Test {
		return fmt.Errorf("%w: kept %d != train %d + test %d", ErrInvalidSummary,
			summary.TotalKept, summary.Train, summary.Test)
	}
	return nil
}

// validateRun checks a training run before it is recorded.
func validateRun(run *model.TrainingRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if err := validateString(run.ID, "run.ID"); err != nil {
		return err
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	for i, c := range run.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: candidate %d has no name", ErrInvalidRun, i)
		}
	}
	return nil
}
