// Package extractor turns raw document bytes into plain text.
// PDFs are read through MuPDF (go-fitz); images are binarized and passed to an
// OCR engine. The package never touches the filesystem.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docdigest/internal/domain/entity"
	"docdigest/internal/observability/metrics"
)

// DefaultThreshold is the fixed gray level used to binarize images before OCR.
// Pixels brighter than it become white, everything else black.
const DefaultThreshold uint8 = 150

// PDFReader returns the concatenated page text of a PDF held in memory.
type PDFReader interface {
	ReadText(data []byte) (string, error)
}

// OCR recognizes text in an encoded image.
type OCR interface {
	Recognize(image []byte) (string, error)
}

// Extractor selects an extraction strategy by SourceKind.
type Extractor struct {
	pdf       PDFReader
	ocr       OCR
	threshold uint8
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithThreshold overrides the binarization threshold.
func WithThreshold(t uint8) Option {
	return func(e *Extractor) { e.threshold = t }
}

// New creates an Extractor backed by the given PDF reader and OCR engine.
func New(pdf PDFReader, ocr OCR, opts ...Option) *Extractor {
	e := &Extractor{
		pdf:       pdf,
		ocr:       ocr,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the trimmed text contained in data.
// Any failure is reported as an *entity.ExtractionError.
// An empty result is not an error here; the pipeline decides what it means.
func (e *Extractor) Extract(ctx context.Context, data []byte, kind entity.SourceKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", entity.NewExtractionError(kind, err)
	}

	start := time.Now()
	var (
		raw string
		err error
	)

	switch kind {
	case entity.SourceKindPDF:
		raw, err = e.extractPDF(data)
	case entity.SourceKindImage:
		raw, err = e.extractImage(data)
	default:
		err = entity.ErrUnsupportedKind
	}

	duration := time.Since(start)
	if err != nil {
		metrics.RecordExtraction(kind.String(), false, duration, 0)
		slog.WarnContext(ctx, "text extraction failed",
			slog.String("kind", kind.String()),
			slog.Int("bytes", len(data)),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", entity.NewExtractionError(kind, err)
	}

	text := strings.TrimSpace(raw)
	metrics.RecordExtraction(kind.String(), true, duration, len(text))
	slog.DebugContext(ctx, "text extracted",
		slog.String("kind", kind.String()),
		slog.Int("bytes", len(data)),
		slog.Int("text_length", len(text)),
		slog.Duration("duration", duration))

	return text, nil
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	if e.pdf == nil {
		return "", fmt.Errorf("pdf reader not configured")
	}
	return e.pdf.ReadText(data)
}

func (e *Extractor) extractImage(data []byte) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("ocr engine not configured")
	}
	img, format, err := DecodeImage(data)
	if err != nil {
		return "", err
	}
	encoded, err := EncodePNG(Binarize(img, e.threshold))
	if err != nil {
		return "", fmt.Errorf("encode binarized %s: %w", format, err)
	}
	return e.ocr.Recognize(encoded)
}
