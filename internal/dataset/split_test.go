package dataset

import (
	"fmt"
	"math"
	"testing"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExamples(counts [model.NumLabels]int) []model.Example {
	var out []model.Example
	for label, c := range counts {
		for i := 0; i < c; i++ {
			out = append(out, model.Example{
				Text:  fmt.Sprintf("example %d of class %d", i, label),
				Label: model.Label(label),
			})
		}
	}
	return out
}

func fractions(examples []model.Example) [model.NumLabels]float64 {
	var f [model.NumLabels]float64
	if len(examples) == 0 {
		return f
	}
	for _, ex := range examples {
		f[ex.Label]++
	}
	for i := range f {
		f[i] /= float64(len(examples))
	}
	return f
}

func TestStratifiedSplitProportions(t *testing.T) {
	tests := []struct {
		name   string
		counts [model.NumLabels]int
	}{
		{name: "balanced", counts: [model.NumLabels]int{25, 25, 25, 25}},
		{name: "mild skew", counts: [model.NumLabels]int{400, 250, 100, 250}},
		{name: "heavy skew", counts: [model.NumLabels]int{900, 50, 30, 20}},
		{name: "tiny minority", counts: [model.NumLabels]int{97, 1, 1, 1}},
		{name: "odd sizes", counts: [model.NumLabels]int{33, 17, 11, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			examples := makeExamples(tt.counts)
			split := NewStratifiedSplitter().Split(examples)

			n := len(examples)
			assert.Equal(t, n, len(split.Train)+len(split.Test))
			assert.Equal(t, int(math.Ceil(0.2*float64(n))), len(split.Test))

			full := fractions(examples)
			train := fractions(split.Train)
			test := fractions(split.Test)
			for label := range full {
				assert.InDelta(t, full[label], train[label], 0.03, "train label %d", label)
				if tt.name != "tiny minority" {
					assert.InDelta(t, full[label], test[label], 0.05, "test label %d", label)
				}
			}
		})
	}
}

func TestStratifiedSplitTotalityAndExclusivity(t *testing.T) {
	examples := makeExamples([model.NumLabels]int{40, 30, 20, 10})
	split := NewStratifiedSplitter().Split(examples)

	seen := make(map[string]int)
	for _, ex := range split.Train {
		seen[ex.Text]++
	}
	for _, ex := range split.Test {
		seen[ex.Text]++
	}

	require.Len(t, seen, len(examples))
	for _, ex := range examples {
		assert.Equal(t, 1, seen[ex.Text], "example %q", ex.Text)
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	examples := makeExamples([model.NumLabels]int{50, 20, 20, 10})

	first := NewStratifiedSplitter().Split(examples)
	second := NewStratifiedSplitter().Split(examples)
	assert.Equal(t, first, second)

	other := StratifiedSplitter{TestFraction: 0.2, Seed: 7}.Split(examples)
	assert.NotEqual(t, first.Test, other.Test)
}

func TestStratifiedSplitEdgeCases(t *testing.T) {
	empty := NewStratifiedSplitter().Split(nil)
	assert.Empty(t, empty.Train)
	assert.Empty(t, empty.Test)

	one := NewStratifiedSplitter().Split(makeExamples([model.NumLabels]int{1, 0, 0, 0}))
	assert.Len(t, one.Test, 1)
	assert.Empty(t, one.Train)

	two := NewStratifiedSplitter().Split(makeExamples([model.NumLabels]int{1, 1, 0, 0}))
	assert.Len(t, two.Test, 1)
	assert.Len(t, two.Train, 1)
}

func TestStratifiedSplitInvalidFractionFallsBack(t *testing.T) {
	examples := makeExamples([model.NumLabels]int{10, 10, 0, 0})
	split := StratifiedSplitter{TestFraction: 1.5, Seed: 1}.Split(examples)
	assert.Len(t, split.Test, 4)
}

func TestAllocate(t *testing.T) {
	byClass := [][]int{make([]int, 90), make([]int, 5), make([]int, 3), make([]int, 2)}
	quota := allocate(byClass, 20, 100)
	assert.Equal(t, []int{18, 1, 1, 0}, quota)
}
