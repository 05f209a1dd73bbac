package storage

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
	"github.com/Veraticus/complaint-sorter/internal/testutil/complaints"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.txt")

	require.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	}))
	require.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "second")
		return err
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicFailureKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	boom := errors.New("boom")
	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	original := renameFunc
	renameFunc = func(string, string) error { return boom }
	t.Cleanup(func() { renameFunc = original })
	err = WriteFileAtomic(path, func(w io.Writer) error {
		_, werr := io.WriteString(w, "new")
		return werr
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X_y_summary.json")
	summary := model.Summary{TotalKept: 3, Train: 2, Test: 1, LabelMapping: model.LabelMapping()}

	require.NoError(t, WriteJSON(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got model.Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, summary, got)
	assert.Contains(t, string(data), "\n  \"n_total_kept\": 3")
}

func TestFileModelStore(t *testing.T) {
	store := NewFileModelStore(filepath.Join(t.TempDir(), "artifacts", "best_model.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, common.ErrModelNotFound)

	p, err := pipeline.Build(pipeline.LogReg)
	require.NoError(t, err)
	examples := complaints.Examples(6)
	require.NoError(t, p.Fit(model.Texts(examples), model.Labels(examples)))
	require.NoError(t, store.Save(p))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, pipeline.LogReg, loaded.Name)

	texts := model.Texts(examples)
	want, err := p.Predict(texts)
	require.NoError(t, err)
	got, err := loaded.Predict(texts)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.ErrorIs(t, store.Save(nil), ErrNilParameter)
}

func TestFileModelStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best_model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileModelStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrModelNotFound)
}
