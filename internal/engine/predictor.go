package engine

import (
	"errors"
	"fmt"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/normalize"
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
)

const missingModelHint = "no trained model found, run `sorter train` first"

// Predictor applies a loaded pipeline to new texts. The pipeline is never refitted.
type Predictor struct {
	pipeline  *pipeline.Pipeline
	normalize bool
}

// PredictorOption configures a Predictor.
type PredictorOption func(*Predictor)

// WithNormalization normalizes each text before classifying it.
// The echoed text in the prediction stays as supplied.
func WithNormalization(enabled bool) PredictorOption {
	return func(p *Predictor) { p.normalize = enabled }
}

// NewPredictor wraps an already fitted pipeline.
func NewPredictor(p *pipeline.Pipeline, opts ...PredictorOption) (*Predictor, error) {
	if p == nil || !p.Fitted() {
		return nil, common.ErrNotFitted
	}
	pred := &Predictor{pipeline: p}
	for _, opt := range opts {
		opt(pred)
	}
	return pred, nil
}

// LoadPredictor loads the persisted best model once.
func LoadPredictor(source ModelSource, opts ...PredictorOption) (*Predictor, error) {
	p, err := source.Load()
	if errors.Is(err, common.ErrModelNotFound) {
		return nil, common.NewUserError(missingModelHint, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return NewPredictor(p, opts...)
}

// Name returns the candidate name of the loaded model.
func (p *Predictor) Name() string {
	return p.pipeline.Name
}

// Predict classifies every text.
func (p *Predictor) Predict(texts []string) ([]model.Prediction, error) {
	if len(texts) == 0 {
		return nil, common.NewUserError("no text supplied, pass --text or --file", common.ErrEmptyInput)
	}

	inputs := texts
	if p.normalize {
		inputs = normalize.All(texts)
	}
	labels, err := p.pipeline.Predict(inputs)
	if err != nil {
		return nil, err
	}

	out := make([]model.Prediction, len(texts))
	for i, text := range texts {
		out[i] = model.Prediction{Text: text, Label: labels[i]}
	}
	return out, nil
}

// PredictOne classifies a single text.
func (p *Predictor) PredictOne(text string) (model.Prediction, error) {
	preds, err := p.Predict([]string{text})
	if err != nil {
		return model.Prediction{}, err
	}
	return preds[0], nil
}
