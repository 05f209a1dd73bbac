package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	err     error
	summary *model.Summary
	split   model.Split
	saves   int
}

func (m *memoryStore) SaveSplit(_ context.Context, split model.Split, summary model.Summary) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.split = split
	m.summary = &summary
	return nil
}

func (m *memoryStore) LoadSplit(_ context.Context) (model.Split, error) {
	return m.split, nil
}

func (m *memoryStore) LoadSummary(_ context.Context) (*model.Summary, error) {
	return m.summary, nil
}

func rawRecords() []model.RawRecord {
	categories := []string{
		"Credit reporting, credit repair services, or other personal consumer reports",
		"Debt collection",
		"Consumer Loan",
		"Mortgage",
	}
	var records []model.RawRecord
	for i := 0; i < 40; i++ {
		records = append(records, model.RawRecord{
			Narrative: fmt.Sprintf("complaint number %d about my account\nsee http://x.example/%d", i, i),
			Category:  categories[i%4],
		})
	}
	records = append(records,
		model.RawRecord{Narrative: "I have a student loan issue", Category: "Student loan"},
		model.RawRecord{Narrative: "no category at all", Category: nil},
		model.RawRecord{Narrative: "ok", Category: "Mortgage"},
		model.RawRecord{Narrative: "abc ", Category: "Mortgage"},
		model.RawRecord{Narrative: 12345, Category: "Debt collection"},
		model.RawRecord{Narrative: "abcd", Category: "Mortgage"},
	)
	return records
}

func TestPrepare(t *testing.T) {
	var progress int
	p := NewPreparer(WithProgress(func() { progress++ }))

	records := rawRecords()
	split, summary, err := p.Prepare(records)
	require.NoError(t, err)

	assert.Equal(t, len(records), progress)
	assert.Equal(t, len(records), summary.TotalRead)
	assert.Equal(t, 2, summary.Unmapped)
	assert.Equal(t, 3, summary.TooShort)
	assert.Equal(t, 41, summary.TotalKept)
	assert.Equal(t, summary.TotalKept, summary.Train+summary.Test)
	assert.Equal(t, len(split.Train), summary.Train)
	assert.Equal(t, len(split.Test), summary.Test)
	assert.Equal(t, map[string]int{"0": 10, "1": 10, "2": 10, "3": 11}, summary.ClassCounts)
	assert.Equal(t, "Mortgage", summary.LabelMapping["3"])

	for _, ex := range append(split.Train, split.Test...) {
		assert.NotContains(t, ex.Text, "http")
		assert.NotContains(t, ex.Text, "\n")
		assert.Greater(t, len([]rune(ex.Text)), MinTextLength)
	}
}

func TestPrepareDeterministic(t *testing.T) {
	records := rawRecords()

	split1, summary1, err := NewPreparer().Prepare(records)
	require.NoError(t, err)
	split2, summary2, err := NewPreparer().Prepare(records)
	require.NoError(t, err)

	assert.Equal(t, split1, split2)
	b1, err := json.Marshal(summary1)
	require.NoError(t, err)
	b2, err := json.Marshal(summary2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestPrepareEmpty(t *testing.T) {
	_, summary, err := NewPreparer().Prepare([]model.RawRecord{
		{Narrative: "long enough text", Category: "Credit card"},
		{Narrative: "no", Category: "Mortgage"},
	})
	assert.ErrorIs(t, err, common.ErrEmptyDataset)
	assert.Equal(t, 1, summary.Unmapped)
	assert.Equal(t, 1, summary.TooShort)
}

func TestPrepareAndSave(t *testing.T) {
	store := &memoryStore{}
	summary, err := NewPreparer().PrepareAndSave(context.Background(), rawRecords(), store)
	require.NoError(t, err)

	assert.Equal(t, 1, store.saves)
	require.NotNil(t, store.summary)
	assert.Equal(t, summary, *store.summary)
	assert.Len(t, store.split.Train, summary.Train)
}

func TestPrepareAndSaveStoreError(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	_, err := NewPreparer().PrepareAndSave(context.Background(), rawRecords(), store)
	assert.ErrorContains(t, err, "disk full")
}
