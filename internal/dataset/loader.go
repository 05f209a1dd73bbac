// Package dataset loads raw complaint files and prepares labeled train/test splits.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Format identifies a supported dataset file type.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DefaultCandidateFiles are searched, in order, when no data file is configured.
var DefaultCandidateFiles = []string{
	"complaint.csv", "complaints.csv",
	"complaint.json", "complaints.json",
}

// SchemaError reports required columns missing from a dataset.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s (existing columns: %s)",
		common.ErrSchema, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func (e *SchemaError) Unwrap() error {
	return common.ErrSchema
}

// Table is a column-oriented dataset held as rows keyed by column name.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// FormatFromPath infers the dataset format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (only CSV or JSON allowed)", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FindDataFile returns the first of DefaultCandidateFiles present in dir.
func FindDataFile(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: data folder not found at %s", common.ErrDataFileNotFound, dir)
	}

	for _, name := range DefaultCandidateFiles {
		path := filepath.Join(dir, name)
		if fi, statErr := os.Stat(path); statErr == nil && fi.Mode().IsRegular() {
			slog.Info("Found data file", "path", path)
			return path, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list data folder: %w", err)
	}
	present := make([]string, 0, len(entries))
	for _, e := range entries {
		present = append(present, e.Name())
	}
	return "", fmt.Errorf("%w: none of %s in %s (present: %s)", common.ErrDataFileNotFound,
		strings.Join(DefaultCandidateFiles, ", "), dir, strings.Join(present, ", "))
}

// Load reads the dataset at path. maxRows caps CSV rows; zero means no cap.
func Load(path string, maxRows int) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close dataset", "path", path, "error", closeErr)
		}
	}()

	return LoadReader(f, format, maxRows)
}

// LoadReader reads a dataset of the given format from r.
func LoadReader(r io.Reader, format Format, maxRows int) (*Table, error) {
	switch format {
	case FormatCSV:
		slog.Info("Loading CSV dataset", "max_rows", maxRows)
		return readCSV(r, maxRows)
	case FormatJSON:
		slog.Info("Loading JSON dataset")
		return readJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}
}

func readCSV(r io.Reader, maxRows int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Columns: header}
	for maxRows <= 0 || len(t.Rows) < maxRows {
		rec, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(t.Rows)+1, readErr)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// readJSON accepts JSON lines and falls back to a single JSON array of objects.
func readJSON(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON dataset: %w", err)
	}

	rows, err := decodeJSONLines(data)
	if err != nil {
		var arr []map[string]any
		if arrErr := json.Unmarshal(data, &arr); arrErr != nil {
			return nil, fmt.Errorf("failed to decode JSON dataset: %w", err)
		}
		rows = arr
	}
	return &Table{Columns: collectColumns(rows), Rows: rows}, nil
}

func decodeJSONLines(data []byte) ([]map[string]any, error) {
	var rows []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var row map[string]any
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// collectColumns returns the union of row keys, sorted.
func collectColumns(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Records extracts raw records, failing with a *SchemaError when either
// column is absent.
func (t *Table) Records(textColumn, categoryColumn string) ([]model.RawRecord, error) {
	var missing []string
	for _, col := range []string{textColumn, categoryColumn} {
		if !t.hasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Found: t.Columns}
	}

	records := make([]model.RawRecord, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = model.RawRecord{
			Narrative: row[textColumn],
			Category:  row[categoryColumn],
		}
	}
	return records, nil
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
