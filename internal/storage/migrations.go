package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Prepared dataset partitions and summary",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS train_examples (
					position INTEGER PRIMARY KEY,
					text TEXT NOT NULL,
					label INTEGER NOT NULL CHECK (label BETWEEN 0 AND 3)
				)`,
				`CREATE TABLE IF NOT EXISTS test_examples (
					position INTEGER PRIMARY KEY,
					text TEXT NOT NULL,
					label INTEGER NOT NULL CHECK (label BETWEEN 0 AND 3)
				)`,
				`CREATE TABLE IF NOT EXISTS dataset_summary (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					summary TEXT NOT NULL,
					prepared_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Training run history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS training_runs (
					id TEXT PRIMARY KEY,
					started_at DATETIME NOT NULL,
					best_name TEXT NOT NULL,
					best_f1 REAL NOT NULL,
					model_path TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_training_runs_started_at ON training_runs(started_at)`,
				`CREATE TABLE IF NOT EXISTS candidate_results (
					run_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					accuracy REAL NOT NULL,
					f1_macro REAL NOT NULL,
					confusion TEXT NOT NULL,
					duration_ms INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (run_id, position),
					FOREIGN KEY (run_id) REFERENCES training_runs(id) ON DELETE CASCADE
				)`,
			}
			return execAll(tx, queries)
		},
	},
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
