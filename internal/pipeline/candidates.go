package pipeline

import (
	"fmt"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/linear"
)

// Candidate names.
const (
	LogReg    = "logreg"
	LinearSVM = "linear_svm"
)

// Candidate describes one classifier family offered for training.
type Candidate struct {
	New  func() linear.Classifier
	Name string
}

var candidates = []Candidate{
	{Name: LogReg, New: func() linear.Classifier { return linear.NewLogisticRegression() }},
	{Name: LinearSVM, New: func() linear.Classifier { return linear.NewLinearSVM() }},
}

// Candidates returns the candidate families in declaration order.
func Candidates() []Candidate {
	return append([]Candidate(nil), candidates...)
}

// Names returns the candidate names in declaration order.
func Names() []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// Build returns an unfitted pipeline for the named candidate.
func Build(name string) (*Pipeline, error) {
	for _, c := range candidates {
		if c.Name == name {
			return c.Build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownCandidate, name)
}

// Build returns an unfitted pipeline for c.
func (c Candidate) Build() *Pipeline {
	return &Pipeline{Name: c.Name, classifier: c.New()}
}
