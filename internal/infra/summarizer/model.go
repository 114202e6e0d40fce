// Package summarizer provides the primary abstractive summarization model.
// It includes adapters for Claude (Anthropic) and OpenAI with circuit breaking
// and call-rate limiting, a NoOp model for deployments without a provider, and
// the process-wide Handle that loads the configured model exactly once.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docdigest/internal/domain/entity"
)

// ErrModelUnavailable is returned when no model is loaded or the model refuses work.
// Callers substitute the extractive fallback when they see it.
var ErrModelUnavailable = errors.New("summarization model unavailable")

// Model produces an abstractive summary of one chunk of text.
// Implementations must be safe for concurrent use.
type Model interface {
	Summarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error)
}

// Prober is implemented by models that can check their backing model exists.
type Prober interface {
	Probe(ctx context.Context) error
}

// buildPrompt asks for a plain summary whose length follows the tier bounds.
//
// Example output:
//
//	"Summarize the following text in 40 to 120 words. ..."
func buildPrompt(text string, bounds entity.LengthBounds) string {
	return fmt.Sprintf("Summarize the following text in %d to %d words. "+
		"Reply with the summary only, without a title or preamble.\n\n%s",
		bounds.MinTokens, bounds.MaxTokens, text)
}

// withinBounds reports whether summary respects the upper word bound.
func withinBounds(summary string, bounds entity.LengthBounds) (int, bool) {
	words := len(strings.Fields(summary))
	return words, words <= bounds.MaxTokens
}
