package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docdigest/internal/domain/entity"
	"docdigest/internal/observability/metrics"
	"docdigest/internal/observability/tracing"
	"docdigest/internal/utils/text"
)

// Defaults for Options.
const (
	DefaultSummaryKeywords  = 5
	DefaultOriginalKeywords = 10
	DefaultDisplayLimit     = 2000
)

// Extractor reads the text out of a document's bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte, kind entity.SourceKind) (string, error)
}

// Options tunes the presentation side of a digest.
type Options struct {
	// SummaryKeywords is how many keywords are highlighted in the summary.
	SummaryKeywords int
	// OriginalKeywords is how many keywords are highlighted in the original text.
	OriginalKeywords int
	// DisplayLimit is the number of characters of the original kept in ExtractedText.
	DisplayLimit int
}

// DefaultOptions returns the built-in presentation settings.
func DefaultOptions() Options {
	return Options{
		SummaryKeywords:  DefaultSummaryKeywords,
		OriginalKeywords: DefaultOriginalKeywords,
		DisplayLimit:     DefaultDisplayLimit,
	}
}

// Service runs the digest pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	extractor  Extractor
	summarizer *Summarizer
	ranker     Ranker
	opts       Options
}

// NewService creates a Service. Zero-valued options take their defaults.
func NewService(extractor Extractor, summarizer *Summarizer, ranker Ranker, opts Options) *Service {
	def := DefaultOptions()
	if opts.SummaryKeywords <= 0 {
		opts.SummaryKeywords = def.SummaryKeywords
	}
	if opts.OriginalKeywords <= 0 {
		opts.OriginalKeywords = def.OriginalKeywords
	}
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = def.DisplayLimit
	}
	return &Service{
		extractor:  extractor,
		summarizer: summarizer,
		ranker:     ranker,
		opts:       opts,
	}
}

// Process extracts the text of doc and digests it.
// Extraction failures are returned as *entity.ExtractionError and a document
// without readable text as entity.ErrEmptyText; nothing else is fatal.
func (s *Service) Process(ctx context.Context, doc entity.Document, tier entity.LengthTier) (result *entity.Result, err error) {
	start := time.Now()
	kind := doc.Kind.String()

	ctx, span := tracing.GetTracer().Start(ctx, "digest.process")
	span.SetAttributes(
		attribute.String("digest.kind", kind),
		attribute.String("digest.tier", string(tier)),
		attribute.Int("digest.bytes", len(doc.Data)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		metrics.RecordDocumentProcessed(kind, metrics.StatusFor(err), time.Since(start))
	}()

	extracted, err := s.extract(ctx, doc)
	if err != nil {
		slog.WarnContext(ctx, "document extraction failed",
			slog.String("name", doc.Name),
			slog.String("kind", kind),
			slog.Any("error", err))
		return nil, err
	}

	result, err = s.digest(ctx, extracted, tier)
	if err != nil {
		return nil, err
	}
	result.Kind = kind
	return result, nil
}

// ProcessText digests text that was extracted elsewhere.
func (s *Service) ProcessText(ctx context.Context, extracted string, tier entity.LengthTier) (*entity.Result, error) {
	return s.digest(ctx, strings.TrimSpace(extracted), tier)
}

func (s *Service) extract(ctx context.Context, doc entity.Document) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "digest.extract")
	defer span.End()

	extracted, err := s.extractor.Extract(ctx, doc.Data, doc.Kind)
	if err != nil {
		if !errors.Is(err, entity.ErrExtraction) {
			err = entity.NewExtractionError(doc.Kind, err)
		}
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.Int("digest.text_chars", utf8.RuneCountInString(extracted)))
	return extracted, nil
}

func (s *Service) digest(ctx context.Context, extracted string, tier entity.LengthTier) (*entity.Result, error) {
	if strings.TrimSpace(extracted) == "" {
		return nil, entity.ErrEmptyText
	}

	summary := s.summarize(ctx, extracted, tier)

	highlightedSummary := s.highlight(ctx, "summary", summary, s.opts.SummaryKeywords)
	suggestions := s.assess(ctx, summary)
	originalHighlighted := s.highlight(ctx, "original", extracted, s.opts.OriginalKeywords)

	return &entity.Result{
		ExtractedText:       text.TruncateRunes(extracted, s.opts.DisplayLimit),
		OriginalHighlighted: originalHighlighted,
		Summary:             summary,
		HighlightedSummary:  highlightedSummary,
		Suggestions:         suggestions,
		Stats:               ComputeStats(extracted, summary),
		Length:              tier,
	}, nil
}

func (s *Service) summarize(ctx context.Context, extracted string, tier entity.LengthTier) string {
	ctx, span := tracing.GetTracer().Start(ctx, "digest.summarize")
	defer span.End()

	summary := s.summarizer.Summarize(ctx, extracted, tier)
	span.SetAttributes(attribute.Int("digest.summary_words", text.CountWords(summary)))
	return summary
}

// highlight ranks keywords of body and marks them. A ranking failure leaves
// body unmarked.
func (s *Service) highlight(ctx context.Context, target, body string, n int) string {
	ctx, span := tracing.GetTracer().Start(ctx, "digest.keywords")
	defer span.End()
	span.SetAttributes(attribute.String("digest.target", target))

	keywords, err := s.rank(body, n)
	if err != nil {
		span.RecordError(err)
		metrics.RecordKeywordFailure()
		slog.WarnContext(ctx, "keyword ranking failed, skipping highlights",
			slog.String("target", target),
			slog.Any("error", err))
		return body
	}
	span.SetAttributes(attribute.StringSlice("digest.keywords", keywords))
	return Highlight(body, keywords)
}

// rank calls the ranker, converting a panic into an error.
func (s *Service) rank(body string, n int) (keywords []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("keyword ranker panicked: %v", r)
		}
	}()
	return s.ranker.Rank(body, n)
}

func (s *Service) assess(ctx context.Context, summary string) []string {
	_, span := tracing.GetTracer().Start(ctx, "digest.assess")
	defer span.End()
	return Assess(summary)
}

// ComputeStats derives the size figures of a digest. The percentage is
// rounded to two decimals, halves to even, and is 0 for a text without words.
func ComputeStats(original, summary string) entity.Stats {
	stats := entity.Stats{
		TotalWords:   text.CountWords(original),
		TotalChars:   text.CountRunes(original),
		SummaryWords: text.CountWords(summary),
	}
	if stats.TotalWords > 0 {
		pct := 100 * float64(stats.SummaryWords) / float64(stats.TotalWords)
		stats.SummaryPercentage = math.RoundToEven(pct*100) / 100
	}
	return stats
}
