package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Veraticus/complaint-sorter/internal/common"
)

// Configuration keys.
const (
	KeyDataDir           = "data.dir"
	KeyDataFile          = "data.file"
	KeyMaxRows           = "data.max_rows"
	KeyTextColumn        = "data.text_column"
	KeyCategoryColumn    = "data.category_column"
	KeyArtifactsDir      = "artifacts.dir"
	KeySummaryFile       = "artifacts.summary"
	KeyReportFile        = "artifacts.report"
	KeyModelFile         = "artifacts.model"
	KeyDatabasePath      = "database.path"
	KeySplitSeed         = "split.seed"
	KeySplitTestFraction = "split.test_fraction"
)

// Defaults.
const (
	DefaultMaxRows        = 200000
	DefaultTextColumn     = "Consumer complaint narrative"
	DefaultCategoryColumn = "Product"
	DefaultArtifactsDir   = "artifacts"
	DefaultSummaryFile    = "X_y_summary.json"
	DefaultReportFile     = "train_report.txt"
	DefaultModelFile      = "best_model.json"
	DefaultDatabaseFile   = "sorter.db"
	DefaultSeed           = 42
	DefaultTestFraction   = 0.2
)

// Config is the resolved application configuration.
type Config struct {
	DataDir        string
	DataFile       string
	TextColumn     string
	CategoryColumn string
	ArtifactsDir   string
	DatabasePath   string
	SummaryPath    string
	ReportPath     string
	ModelPath      string
	TestFraction   float64
	Seed           uint64
	MaxRows        int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, ".")
	v.SetDefault(KeyDataFile, "")
	v.SetDefault(KeyMaxRows, DefaultMaxRows)
	v.SetDefault(KeyTextColumn, DefaultTextColumn)
	v.SetDefault(KeyCategoryColumn, DefaultCategoryColumn)
	v.SetDefault(KeyArtifactsDir, DefaultArtifactsDir)
	v.SetDefault(KeySummaryFile, DefaultSummaryFile)
	v.SetDefault(KeyReportFile, DefaultReportFile)
	v.SetDefault(KeyModelFile, DefaultModelFile)
	v.SetDefault(KeyDatabasePath, "")
	v.SetDefault(KeySplitSeed, DefaultSeed)
	v.SetDefault(KeySplitTestFraction, DefaultTestFraction)
}

// Load resolves a Config from v. Artifact file names are placed under the
// artifacts directory unless they are absolute.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	artifacts := ExpandPath(v.GetString(KeyArtifactsDir))
	cfg := Config{
		DataDir:        ExpandPath(v.GetString(KeyDataDir)),
		DataFile:       ExpandPath(v.GetString(KeyDataFile)),
		MaxRows:        v.GetInt(KeyMaxRows),
		TextColumn:     v.GetString(KeyTextColumn),
		CategoryColumn: v.GetString(KeyCategoryColumn),
		ArtifactsDir:   artifacts,
		SummaryPath:    underDir(artifacts, v.GetString(KeySummaryFile)),
		ReportPath:     underDir(artifacts, v.GetString(KeyReportFile)),
		ModelPath:      underDir(artifacts, v.GetString(KeyModelFile)),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		Seed:           v.GetUint64(KeySplitSeed),
		TestFraction:   v.GetFloat64(KeySplitTestFraction),
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(artifacts, DefaultDatabaseFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1, got %g", common.ErrInvalidConfig, KeySplitTestFraction, c.TestFraction)
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, KeyMaxRows)
	}
	if c.TextColumn == "" || c.CategoryColumn == "" {
		return fmt.Errorf("%w: column names cannot be empty", common.ErrInvalidConfig)
	}
	if c.ArtifactsDir == "" {
		return fmt.Errorf("%w: %s cannot be empty", common.ErrInvalidConfig, KeyArtifactsDir)
	}
	return nil
}

func underDir(dir, name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
