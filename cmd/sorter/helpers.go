package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/complaint-sorter/internal/config"
	"github.com/Veraticus/complaint-sorter/internal/storage"
)

// envKeyReplacer maps data.max_rows to SORTER_DATA_MAX_ROWS.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// loadConfig resolves the typed configuration from viper.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the SQLite store and brings its schema up to date.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
