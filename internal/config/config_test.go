package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/complaint-sorter/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Empty(t, cfg.DataFile)
	assert.Equal(t, DefaultMaxRows, cfg.MaxRows)
	assert.Equal(t, "Consumer complaint narrative", cfg.TextColumn)
	assert.Equal(t, "Product", cfg.CategoryColumn)
	assert.Equal(t, "artifacts", cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join("artifacts", "X_y_summary.json"), cfg.SummaryPath)
	assert.Equal(t, filepath.Join("artifacts", "train_report.txt"), cfg.ReportPath)
	assert.Equal(t, filepath.Join("artifacts", "best_model.json"), cfg.ModelPath)
	assert.Equal(t, filepath.Join("artifacts", "sorter.db"), cfg.DatabasePath)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.InDelta(t, 0.2, cfg.TestFraction, 1e-12)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set(KeyArtifactsDir, "/tmp/out")
	v.Set(KeyModelFile, "/models/m.json")
	v.Set(KeyReportFile, "r.txt")
	v.Set(KeyDatabasePath, "/var/sorter.db")
	v.Set(KeySplitSeed, 7)
	v.Set(KeyMaxRows, 10)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/models/m.json", cfg.ModelPath)
	assert.Equal(t, filepath.Join("/tmp/out", "r.txt"), cfg.ReportPath)
	assert.Equal(t, "/var/sorter.db", cfg.DatabasePath)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 10, cfg.MaxRows)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "zero test fraction", key: KeySplitTestFraction, value: 0.0},
		{name: "whole test fraction", key: KeySplitTestFraction, value: 1.0},
		{name: "negative max rows", key: KeyMaxRows, value: -1},
		{name: "empty text column", key: KeyTextColumn, value: ""},
		{name: "empty artifacts dir", key: KeyArtifactsDir, value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SORTER_TEST_DIR", "/data/complaints")
	t.Setenv("SORTER_TEST_HOME_REL", "~/nested")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "artifacts", want: "artifacts"},
		{name: "tilde", in: "~", want: home},
		{name: "tilde path", in: "~/sorter/config.yaml", want: filepath.Join(home, "sorter", "config.yaml")},
		{name: "env var", in: "$SORTER_TEST_DIR/raw.csv", want: "/data/complaints/raw.csv"},
		{name: "env var holding tilde", in: "$SORTER_TEST_HOME_REL", want: filepath.Join(home, "nested")},
		{name: "tilde user form untouched", in: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.Contains(got, "$"))
		})
	}
}
