// Package pipeline composes the TF-IDF vectorizer with a linear classifier
// into a single unit that is fitted, persisted and applied as a whole.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/features"
	"github.com/Veraticus/complaint-sorter/internal/linear"
	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Pipeline is a vectorizer feeding a classifier.
type Pipeline struct {
	classifier linear.Classifier
	Vectorizer *features.TFIDF `json:"vectorizer"`
	Model      *linear.Model   `json:"model"`
	Name       string          `json:"name"`
}

// Fitted reports whether both stages have been trained.
func (p *Pipeline) Fitted() bool {
	return p.Model != nil && p.Vectorizer != nil && p.Vectorizer.Fitted()
}

// Fit learns the vocabulary and the classifier together. A pipeline can be
// fitted once; build a new one to retrain.
func (p *Pipeline) Fit(texts []string, labels []model.Label) error {
	if p.Fitted() {
		return fmt.Errorf("pipeline %s is already fitted", p.Name)
	}
	if p.classifier == nil {
		return fmt.Errorf("%w: %s has no classifier", common.ErrUnknownCandidate, p.Name)
	}
	if len(texts) != len(labels) {
		return fmt.Errorf("%w: %d texts, %d labels", linear.ErrLengthMismatch, len(texts), len(labels))
	}

	vectorizer := features.NewTFIDF()
	x, err := vectorizer.FitTransform(texts)
	if err != nil {
		return fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = int(l)
	}
	m, err := p.classifier.Fit(x, y, vectorizer.Size())
	if err != nil {
		return fmt.Errorf("failed to fit %s: %w", p.Name, err)
	}

	p.Vectorizer = vectorizer
	p.Model = m
	return nil
}

// PredictOne classifies a single text.
func (p *Pipeline) PredictOne(text string) (model.Label, error) {
	if !p.Fitted() {
		return 0, common.ErrNotFitted
	}
	return model.Label(p.Model.Predict(p.Vectorizer.Transform(text))), nil
}

// Predict classifies every text.
func (p *Pipeline) Predict(texts []string) ([]model.Label, error) {
	if !p.Fitted() {
		return nil, common.ErrNotFitted
	}
	out := make([]model.Label, len(texts))
	for i, text := range texts {
		out[i] = model.Label(p.Model.Predict(p.Vectorizer.Transform(text)))
	}
	return out, nil
}

// Encode writes the fitted pipeline as JSON.
func (p *Pipeline) Encode(w io.Writer) error {
	if !p.Fitted() {
		return common.ErrNotFitted
	}
	return json.NewEncoder(w).Encode(p)
}

// Decode reads a pipeline written by Encode and checks its consistency.
func Decode(r io.Reader) (*Pipeline, error) {
	var p Pipeline
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if p.Vectorizer == nil || p.Model == nil {
		return nil, fmt.Errorf("model artifact is incomplete: %w", common.ErrNotFitted)
	}
	if err := p.Vectorizer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vectorizer: %w", err)
	}
	if err := p.Model.Validate(p.Vectorizer.Size()); err != nil {
		return nil, fmt.Errorf("invalid classifier: %w", err)
	}
	for _, c := range p.Model.Classes {
		if !model.Label(c).Valid() {
			return nil, fmt.Errorf("invalid classifier: unknown label %d", c)
		}
	}
	return &p, nil
}
