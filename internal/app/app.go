// Package app assembles the digest pipeline from loaded configuration.
// The API server and the CLI share it so both run the same stack.
package app

import (
	"context"
	"log/slog"
	"time"

	"docdigest/internal/config"
	"docdigest/internal/domain/entity"
	"docdigest/internal/infra/extractor"
	"docdigest/internal/infra/summarizer"
	"docdigest/internal/usecase/digest"
)

// Pipeline is the wired digest service together with the model handle it
// summarizes through.
type Pipeline struct {
	Service  *digest.Service
	Model    *summarizer.Handle
	Provider string
}

// New wires the extractor, the model handle and the digest service.
// The model is not loaded; call Pipeline.Load or let the first summary load it.
func New(pcfg *config.PipelineConfig, mcfg *summarizer.ModelConfig, logger *slog.Logger) *Pipeline {
	handle := summarizer.NewHandle(summarizer.NewLoader(mcfg))

	summ := digest.NewSummarizer(handle,
		digest.WithChunkSize(pcfg.ChunkSize),
		digest.WithTiers(Tiers(pcfg)),
	)
	svc := digest.NewService(
		NewExtractor(pcfg.OCRLanguage, logger),
		summ,
		digest.NewRAKE(pcfg.ExtraStopwords...),
		Options(pcfg),
	)

	return &Pipeline{Service: svc, Model: handle, Provider: mcfg.Provider}
}

// Load loads the model within timeout. A failure leaves the handle failed and
// every chunk on the extractive fallback; it is logged, not returned.
func (p *Pipeline) Load(ctx context.Context, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := p.Model.Load(ctx); err != nil {
		logger.Error("summarization model unavailable, using extractive summaries",
			slog.String("provider", p.Provider),
			slog.Any("error", err))
		return
	}
	logger.Info("summarization model loaded",
		slog.String("provider", p.Provider),
		slog.String("state", p.Model.State().String()),
		slog.Duration("duration", time.Since(start)))
}

// NewExtractor builds the MuPDF and Tesseract backed extractor. When the OCR
// engine cannot start, PDFs still work and images fail extraction.
func NewExtractor(ocrLanguage string, logger *slog.Logger) *extractor.Extractor {
	var ocr extractor.OCR
	tess, err := extractor.NewTesseract(ocrLanguage)
	if err != nil {
		logger.Warn("OCR disabled, image uploads will fail extraction",
			slog.String("language", ocrLanguage),
			slog.Any("error", err))
		ocr = extractor.DisabledOCR(err)
	} else {
		ocr = tess
	}
	return extractor.New(extractor.NewMuPDF(), ocr)
}

// Tiers converts the configured tiers to summarizer settings.
func Tiers(cfg *config.PipelineConfig) digest.Tiers {
	tiers := make(digest.Tiers, len(cfg.Tiers))
	for tier, tc := range cfg.Tiers {
		tiers[tier] = digest.TierSettings{
			Bounds:            entity.LengthBounds{MinTokens: tc.MinWords, MaxTokens: tc.MaxWords},
			FallbackSentences: tc.FallbackSentences,
		}
	}
	return tiers
}

// Options converts the configured presentation settings.
func Options(cfg *config.PipelineConfig) digest.Options {
	return digest.Options{
		SummaryKeywords:  cfg.SummaryKeywords,
		OriginalKeywords: cfg.OriginalKeywords,
		DisplayLimit:     cfg.DisplayLimit,
	}
}
