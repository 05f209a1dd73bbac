package linear

import (
	"errors"
	"fmt"
	"slices"
)

// Errors returned by classifiers.
var (
	ErrNoSamples      = errors.New("no training samples")
	ErrLengthMismatch = errors.New("samples and labels differ in length")
)

// Classifier fits a linear model to sparse samples.
type Classifier interface {
	Fit(x []Vector, y []int, nFeatures int) (*Model, error)
}

// Model is a fitted linear multi-class model. Row k of Weights scores Classes[k].
type Model struct {
	Classes    []int       `json:"classes"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// Scores returns the decision value of x for every class.
func (m *Model) Scores(x Vector) []float64 {
	scores := make([]float64, len(m.Classes))
	for k := range m.Classes {
		scores[k] = x.Dot(m.Weights[k]) + m.Intercepts[k]
	}
	return scores
}

// Predict returns the class with the highest decision value.
func (m *Model) Predict(x Vector) int {
	if len(m.Classes) == 1 {
		return m.Classes[0]
	}
	return m.Classes[argmax(m.Scores(x))]
}

// Validate checks the model's shape for nFeatures inputs.
func (m *Model) Validate(nFeatures int) error {
	if len(m.Classes) == 0 {
		return fmt.Errorf("model has no classes")
	}
	if len(m.Weights) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return fmt.Errorf("model has %d classes but %d weight rows and %d intercepts",
			len(m.Classes), len(m.Weights), len(m.Intercepts))
	}
	for k, row := range m.Weights {
		if len(row) != nFeatures {
			return fmt.Errorf("weight row %d has %d features, want %d", k, len(row), nFeatures)
		}
	}
	return nil
}

// classIndex maps labels onto dense indices ordered by label value.
func classIndex(y []int) (classes []int, index map[int]int) {
	index = make(map[int]int)
	for _, label := range y {
		if _, ok := index[label]; !ok {
			index[label] = 0
			classes = append(classes, label)
		}
	}
	slices.Sort(classes)
	for k, c := range classes {
		index[c] = k
	}
	return classes, index
}

func checkInput(x []Vector, y []int) error {
	if len(x) == 0 {
		return ErrNoSamples
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d samples, %d labels", ErrLengthMismatch, len(x), len(y))
	}
	return nil
}

func newModel(classes []int, nFeatures int) *Model {
	m := &Model{
		Classes:    classes,
		Weights:    make([][]float64, len(classes)),
		Intercepts: make([]float64, len(classes)),
	}
	for k := range m.Weights {
		m.Weights[k] = make([]float64, nFeatures)
	}
	return m
}
