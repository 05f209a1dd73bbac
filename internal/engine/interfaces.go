package engine

import (
	"github.com/Veraticus/complaint-sorter/internal/pipeline"
)

// ModelSink persists the current best pipeline.
type ModelSink interface {
	Save(p *pipeline.Pipeline) error
	Path() string
}

// ModelSource loads a previously persisted pipeline.
type ModelSource interface {
	Load() (*pipeline.Pipeline, error)
}
