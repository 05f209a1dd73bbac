package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/Veraticus/complaint-sorter/internal/classification"
	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/normalize"
	"github.com/Veraticus/complaint-sorter/internal/service"
)

// MinTextLength is the exclusive lower bound on normalized text length.
const MinTextLength = 3

// Preparer turns raw records into a stratified train/test split.
type Preparer struct {
	resolver *classification.Resolver
	onRecord func()
	splitter StratifiedSplitter
}

// Option configures a Preparer.
type Option func(*Preparer)

// WithSplitter overrides the default stratified splitter.
func WithSplitter(s StratifiedSplitter) Option {
	return func(p *Preparer) { p.splitter = s }
}

// WithResolver overrides the default label resolver.
func WithResolver(r *classification.Resolver) Option {
	return func(p *Preparer) { p.resolver = r }
}

// WithProgress registers a callback invoked once per record processed.
func WithProgress(fn func()) Option {
	return func(p *Preparer) { p.onRecord = fn }
}

// NewPreparer creates a preparer with default rules and an 80/20 seeded split.
func NewPreparer(opts ...Option) *Preparer {
	p := &Preparer{
		resolver: classification.DefaultResolver(),
		splitter: NewStratifiedSplitter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Label resolves and normalizes records, dropping those with no label or
// with text of MinTextLength characters or fewer.
func (p *Preparer) Label(records []model.RawRecord) ([]model.Example, model.Summary) {
	summary := model.Summary{TotalRead: len(records)}

	resolved := make([]model.Example, 0, len(records))
	narratives := make([]any, 0, len(records))
	for _, rec := range records {
		if p.onRecord != nil {
			p.onRecord()
		}
		label, ok := p.resolver.Resolve(rec.Category)
		if !ok {
			summary.Unmapped++
			continue
		}
		resolved = append(resolved, model.Example{Label: label})
		narratives = append(narratives, rec.Narrative)
	}
	slog.Info(fmt.Sprintf("kept %d/%d rows for the %d classes", len(resolved), len(records), model.NumLabels))

	examples := resolved[:0]
	for i, ex := range resolved {
		ex.Text = normalize.Text(narratives[i])
		if utf8.RuneCountInString(ex.Text) <= MinTextLength {
			summary.TooShort++
			continue
		}
		examples = append(examples, ex)
	}
	return examples, summary
}

// Prepare labels records and splits the survivors.
func (p *Preparer) Prepare(records []model.RawRecord) (model.Split, model.Summary, error) {
	examples, summary := p.Label(records)
	if len(examples) == 0 {
		return model.Split{}, summary, fmt.Errorf("%w: %d records read", common.ErrEmptyDataset, len(records))
	}

	split := p.splitter.Split(examples)

	summary.TotalKept = len(examples)
	summary.Train = len(split.Train)
	summary.Test = len(split.Test)
	summary.ClassCounts = classCounts(examples)
	summary.LabelMapping = model.LabelMapping()

	slog.Info("Prepared dataset",
		"kept", summary.TotalKept,
		"train", summary.Train,
		"test", summary.Test,
		"dropped_unmapped", summary.Unmapped,
		"dropped_short", summary.TooShort)

	return split, summary, nil
}

// PrepareAndSave prepares records and persists the split and summary.
func (p *Preparer) PrepareAndSave(ctx context.Context, records []model.RawRecord, store service.DatasetStore) (model.Summary, error) {
	split, summary, err := p.Prepare(records)
	if err != nil {
		return summary, err
	}
	if err := store.SaveSplit(ctx, split, summary); err != nil {
		return summary, fmt.Errorf("failed to save split: %w", err)
	}
	return summary, nil
}

func classCounts(examples []model.Example) map[string]int {
	counts := make(map[string]int, model.NumLabels)
	for _, l := range model.AllLabels() {
		counts[strconv.Itoa(int(l))] = 0
	}
	for _, ex := range examples {
		counts[strconv.Itoa(int(ex.Label))]++
	}
	return counts
}
