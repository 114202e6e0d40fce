package metrics

import (
	"errors"
	"time"

	"docdigest/internal/domain/entity"
)

// Status labels used by DocumentsProcessedTotal.
const (
	StatusSuccess         = "success"
	StatusExtractionError = "extraction_error"
	StatusEmptyText       = "empty_text"
	StatusError           = "error"
)

// StatusFor maps a pipeline error to its status label.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, entity.ErrExtraction):
		return StatusExtractionError
	case errors.Is(err, entity.ErrEmptyText):
		return StatusEmptyText
	default:
		return StatusError
	}
}

// RecordDocumentProcessed records the outcome and duration of one digest run.
func RecordDocumentProcessed(kind, status string, duration time.Duration) {
	DocumentsProcessedTotal.WithLabelValues(kind, status).Inc()
	PipelineDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordExtraction records one extraction attempt.
// size is only observed for successful extractions.
func RecordExtraction(kind string, success bool, duration time.Duration, size int) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	ExtractionDuration.WithLabelValues(kind, outcome).Observe(duration.Seconds())
	if success {
		ExtractedTextSize.Observe(float64(size))
	}
}

// RecordChunkSummary records which path summarized a chunk.
func RecordChunkSummary(fallback bool) {
	path := "primary"
	if fallback {
		path = "fallback"
	}
	ChunkSummariesTotal.WithLabelValues(path).Inc()
}

// RecordKeywordFailure records a keyword ranking that degraded to no keywords.
func RecordKeywordFailure() {
	KeywordFailuresTotal.Inc()
}
