package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Default split parameters.
const (
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
)

// StratifiedSplitter partitions examples so each class keeps its share of the
// whole in both train and test. The same seed and input give the same split.
type StratifiedSplitter struct {
	TestFraction float64
	Seed         uint64
}

// NewStratifiedSplitter returns a splitter with the default 80/20 ratio and seed.
func NewStratifiedSplitter() StratifiedSplitter {
	return StratifiedSplitter{TestFraction: DefaultTestFraction, Seed: DefaultSeed}
}

// Split partitions examples into train and test. Every example lands in
// exactly one side.
func (s StratifiedSplitter) Split(examples []model.Example) model.Split {
	n := len(examples)
	if n == 0 {
		return model.Split{Train: []model.Example{}, Test: []model.Example{}}
	}

	nTest := s.testSize(n)
	byClass := make([][]int, model.NumLabels)
	for i, ex := range examples {
		byClass[ex.Label] = append(byClass[ex.Label], i)
	}
	quota := allocate(byClass, nTest, n)

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	train := make([]model.Example, 0, n-nTest)
	test := make([]model.Example, 0, nTest)
	for label, idx := range byClass {
		perm := append([]int(nil), idx...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		for k, i := range perm {
			if k < quota[label] {
				test = append(test, examples[i])
			} else {
				train = append(train, examples[i])
			}
		}
	}

	// Interleave classes so neither side is grouped by label.
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })

	return model.Split{Train: train, Test: test}
}

func (s StratifiedSplitter) testSize(n int) int {
	frac := s.TestFraction
	if frac <= 0 || frac >= 1 {
		frac = DefaultTestFraction
	}
	nTest := int(math.Ceil(frac * float64(n)))
	if nTest >= n && n > 1 {
		nTest = n - 1
	}
	return nTest
}

// allocate distributes nTest slots across classes in proportion to their
// size using largest remainders. Ties go to the lower label code.
func allocate(byClass [][]int, nTest, n int) []int {
	quota := make([]int, len(byClass))
	type rem struct {
		frac  float64
		label int
	}
	rems := make([]rem, 0, len(byClass))
	assigned := 0
	for label, idx := range byClass {
		exact := float64(len(idx)) * float64(nTest) / float64(n)
		quota[label] = int(math.Floor(exact))
		assigned += quota[label]
		rems = append(rems, rem{label: label, frac: exact - math.Floor(exact)})
	}

	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < nTest && i < len(rems); i++ {
		label := rems[i].label
		if quota[label] < len(byClass[label]) {
			quota[label]++
			assigned++
		}
	}
	return quota
}
