// Package testutil provides test utilities shared across the complaint-sorter packages.
package testutil

import (
	"context"
	"strconv"
	"testing"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/service"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedSplit(split)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedSplit stores split with a summary derived from its contents.
func (db *TestDB) SeedSplit(split model.Split) model.Summary {
	db.t.Helper()

	counts := make(map[string]int, model.NumLabels)
	for _, l := range model.AllLabels() {
		counts[strconv.Itoa(int(l))] = 0
	}
	for _, side := range [][]model.Example{split.Train, split.Test} {
		for _, ex := range side {
			counts[strconv.Itoa(int(ex.Label))]++
		}
	}

	total := len(split.Train) + len(split.Test)
	summary := model.Summary{
		ClassCounts:  counts,
		LabelMapping: model.LabelMapping(),
		TotalRead:    total,
		TotalKept:    total,
		Train:        len(split.Train),
		Test:         len(split.Test),
	}
	if err := db.Storage.SaveSplit(context.Background(), split, summary); err != nil {
		db.t.Fatalf("failed to seed split: %v", err)
	}
	return summary
}
