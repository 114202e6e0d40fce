package summarizer

import (
	"context"

	"docdigest/internal/domain/entity"
)

// NoOp is the model used when no provider is configured.
// Every call returns ErrModelUnavailable so the pipeline falls back.
type NoOp struct{}

// NewNoOp creates a new NoOp model.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize always returns ErrModelUnavailable.
func (n *NoOp) Summarize(_ context.Context, _ string, _ entity.LengthBounds) (string, error) {
	return "", ErrModelUnavailable
}
