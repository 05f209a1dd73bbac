package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
)

// DefaultRunLimit is used when ListTrainingRuns is asked for a non-positive limit.
const DefaultRunLimit = 20

// SaveTrainingRun records a run and its candidate results.
func (s *SQLiteStorage) SaveTrainingRun(ctx context.Context, run *model.TrainingRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO training_runs (id, started_at, best_name, best_f1, model_path)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.BestName, run.BestMacroF1, run.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to save training run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidate_results (run_id, position, name, accuracy, f1_macro, confusion, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range run.Candidates {
		confusion, marshalErr := json.Marshal(c.Metrics.Confusion)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal confusion matrix: %w", marshalErr)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, c.Name, c.Metrics.Accuracy,
			c.Metrics.MacroF1, string(confusion), c.Duration.Milliseconds()); err != nil {
			return fmt.Errorf("failed to save candidate %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// ListTrainingRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListTrainingRuns(ctx context.Context, limit int) ([]model.TrainingRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, best_name, best_f1, COALESCE(model_path, '')
		FROM training_runs
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query training runs: %w", err)
	}

	var runs []model.TrainingRun
	for rows.Next() {
		var run model.TrainingRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.BestName, &run.BestMacroF1, &run.ModelPath); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan training run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// Candidates are loaded after the outer cursor is closed; the pool holds one connection.
	for i := range runs {
		candidates, err := s.candidateResults(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Candidates = candidates
	}
	return runs, nil
}

func (s *SQLiteStorage) candidateResults(ctx context.Context, runID string) ([]model.CandidateResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, accuracy, f1_macro, confusion, duration_ms
		FROM candidate_results
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.CandidateResult
	for rows.Next() {
		var (
			c          model.CandidateResult
			confusion  string
			durationMS int64
		)
		if err := rows.Scan(&c.Name, &c.Metrics.Accuracy, &c.Metrics.MacroF1, &confusion, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan candidate result: %w", err)
		}
		if err := json.Unmarshal([]byte(confusion), &c.Metrics.Confusion); err != nil {
			return nil, fmt.Errorf("%w: confusion matrix for %s: %v", common.ErrDatabaseCorrupted, c.Name, err)
		}
		for _, row := range c.Metrics.Confusion {
			for _, n := range row {
				c.Metrics.Samples += n
			}
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, c)
	}
	return results, rows.Err()
}
