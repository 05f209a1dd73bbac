package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
)

const artifactPerm = 0o644

// renameFunc is replaceable so tests can simulate a failed publish.
var renameFunc = os.Rename

// WriteFileAtomic writes through a temporary file in the target directory and
// renames it into place, so readers never observe a partial artifact.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	if err := validateString(path, "path"); err != nil {
		return err
	}
	if write == nil {
		return fmt.Errorf("%w: write", ErrNilParameter)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Chmod(artifactPerm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = renameFunc(tmpName, path); err != nil {
		return fmt.Errorf("failed to publish %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to path atomically.
func WriteJSON(path string, v any) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// FileModelStore keeps the selected pipeline as a single file.
type FileModelStore struct {
	path string
}

// NewFileModelStore returns a store rooted at path.
func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

// Path returns the artifact location.
func (f *FileModelStore) Path() string {
	return f.path
}

// Save replaces the stored pipeline.
func (f *FileModelStore) Save(p *pipeline.Pipeline) error {
	if p == nil {
		return fmt.Errorf("%w: pipeline", ErrNilParameter)
	}
	return WriteFileAtomic(f.path, p.Encode)
}

// Load reads the stored pipeline. A missing artifact wraps common.ErrModelNotFound.
func (f *FileModelStore) Load() (*pipeline.Pipeline, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", common.ErrModelNotFound, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer func() { _ = file.Close() }()

	return pipeline.Decode(file)
}
