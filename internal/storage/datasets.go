package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
)

const missingDatasetHint = "no prepared dataset found, run `sorter prepare` first"

// SaveSplit replaces the stored split and summary in a single transaction.
func (s *SQLiteStorage) SaveSplit(ctx context.Context, split model.Split, summary model.Summary) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExamples(split.Train, "train"); err != nil {
		return err
	}
	if err := validateExamples(split.Test, "test"); err != nil {
		return err
	}
	if err := validateSummary(split, summary); err != nil {
		return err
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"train_examples", "test_examples", "dataset_summary"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertExamples(ctx, tx, "train_examples", split.Train); err != nil {
		return err
	}
	if err := insertExamples(ctx, tx, "test_examples", split.Test); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dataset_summary (id, summary) VALUES (1, ?)`, string(summaryJSON)); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	slog.Debug("Saved prepared dataset",
		"train", len(split.Train),
		"test", len(split.Test))
	return nil
}

func insertExamples(ctx context.Context, tx *sql.Tx, table string, examples []model.Example) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO "+table+" (position, text, label) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, ex := range examples {
		if _, err := stmt.ExecContext(ctx, i, ex.Text, int(ex.Label)); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

// LoadSplit returns the stored split in its original order.
func (s *SQLiteStorage) LoadSplit(ctx context.Context) (model.Split, error) {
	if err := validateContext(ctx); err != nil {
		return model.Split{}, err
	}

	// The summary row is written last, so its presence marks a complete dataset.
	if _, err := s.LoadSummary(ctx); err != nil {
		return model.Split{}, err
	}

	train, err := s.queryExamples(ctx, "train_examples")
	if err != nil {
		return model.Split{}, err
	}
	test, err := s.queryExamples(ctx, "test_examples")
	if err != nil {
		return model.Split{}, err
	}
	return model.Split{Train: train, Test: test}, nil
}

func (s *SQLiteStorage) queryExamples(ctx context.Context, table string) ([]model.Example, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, label FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.Example
	for rows.Next() {
		var text string
		var label int
		if err := rows.Scan(&text, &label); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		parsed, err := model.ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %s holds %v", common.ErrDatabaseCorrupted, table, err)
		}
		examples = append(examples, model.Example{Text: text, Label: parsed})
	}
	return examples, rows.Err()
}

// LoadSummary returns the summary of the last prepared dataset.
func (s *SQLiteStorage) LoadSummary(ctx context.Context) (*model.Summary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM dataset_summary WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewUserError(missingDatasetHint, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	var summary model.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("%w: summary is not valid JSON: %v", common.ErrDatabaseCorrupted, err)
	}
	return &summary, nil
}
