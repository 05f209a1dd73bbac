package model

import "time"

// Prediction is the label assigned to one input text.
type Prediction struct {
	Text  string
	Label Label
}

// Name returns the display name of the predicted label.
func (p Prediction) Name() string {
	return p.Label.Name()
}

// ClassMetrics holds precision, recall and F1 for one label.
type ClassMetrics struct {
	Label     Label
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ConfusionMatrix is indexed [true label][predicted label].
type ConfusionMatrix [NumLabels][NumLabels]int

// Metrics summarizes the evaluation of one candidate on the test split.
type Metrics struct {
	PerClass  []ClassMetrics
	Confusion ConfusionMatrix
	Accuracy  float64
	MacroF1   float64
	Samples   int
}

// CandidateResult is the evaluation of one trained candidate.
type CandidateResult struct {
	Name     string
	Metrics  Metrics
	Duration time.Duration
}

// TrainingRun records the outcome of one training invocation.
type TrainingRun struct {
	StartedAt   time.Time
	ID          string
	BestName    string
	ModelPath   string
	Candidates  []CandidateResult
	BestMacroF1 float64
}
