package digest

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"docdigest/internal/domain/entity"
	"docdigest/internal/observability/metrics"
)

// TextTooShort is the summary of any text shorter than minSummarizableLength.
const TextTooShort = "Text too short for meaningful summarization."

// minSummarizableLength is the trimmed length below which no summary is attempted.
const minSummarizableLength = 50

// Model produces an abstractive summary of one chunk.
// summarizer.Handle is the production implementation.
type Model interface {
	Summarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error)
}

// Summarizer summarizes text chunk by chunk, substituting the extractive
// fallback for any chunk the model cannot handle.
type Summarizer struct {
	model     Model
	chunkSize int
	tiers     Tiers
}

// SummarizerOption configures a Summarizer.
type SummarizerOption func(*Summarizer)

// WithChunkSize overrides DefaultChunkSize.
func WithChunkSize(size int) SummarizerOption {
	return func(s *Summarizer) { s.chunkSize = size }
}

// WithTiers overrides the built-in tier settings.
func WithTiers(tiers Tiers) SummarizerOption {
	return func(s *Summarizer) { s.tiers = tiers }
}

// NewSummarizer creates a Summarizer backed by model. A nil model means every
// chunk is summarized by the fallback.
func NewSummarizer(model Model, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{
		model:     model,
		chunkSize: DefaultChunkSize,
		tiers:     DefaultTiers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the summary of text for tier. It never fails: model
// errors are recovered per chunk.
func (s *Summarizer) Summarize(ctx context.Context, text string, tier entity.LengthTier) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSummarizableLength {
		return TextTooShort
	}

	settings := s.tiers.For(tier)
	chunks := Chunk(text, s.chunkSize)
	summaries := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		summary, err := s.summarizeChunk(ctx, chunk, settings.Bounds)
		if err != nil {
			slog.WarnContext(ctx, "chunk summarization failed, using fallback",
				slog.Int("chunk", i),
				slog.Int("chunks", len(chunks)),
				slog.String("tier", string(tier)),
				slog.Any("error", err))
			metrics.RecordChunkSummary(true)
			summaries = append(summaries, extractive(chunk, settings.FallbackSentences))
			continue
		}
		metrics.RecordChunkSummary(false)
		summaries = append(summaries, summary)
	}

	return strings.Join(summaries, " ")
}

func (s *Summarizer) summarizeChunk(ctx context.Context, chunk string, bounds entity.LengthBounds) (string, error) {
	if s.model == nil {
		return "", errNoModel
	}
	summary, err := s.model.Summarize(ctx, chunk, bounds)
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", errEmptyModelOutput
	}
	return summary, nil
}
