package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics track documents flowing through the digest pipeline
var (
	// DocumentsProcessedTotal counts digest runs by source kind and status
	DocumentsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_documents_processed_total",
			Help: "Total number of documents run through the digest pipeline",
		},
		[]string{"kind", "status"},
	)

	// PipelineDuration measures a full digest run in seconds
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digest_pipeline_duration_seconds",
			Help:    "Time taken to digest one document",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"kind"},
	)

	// ExtractionDuration measures text extraction in seconds
	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digest_extraction_duration_seconds",
			Help:    "Time taken to extract text from a document",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"kind", "outcome"},
	)

	// ExtractedTextSize measures the size of extracted text
	ExtractedTextSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_extracted_text_bytes",
			Help:    "Size of extracted text in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	// ChunkSummariesTotal counts chunk summaries by the path that produced them
	ChunkSummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_chunk_summaries_total",
			Help: "Total number of chunk summaries by producing path (primary or fallback)",
		},
		[]string{"path"},
	)

	// KeywordFailuresTotal counts keyword rankings that degraded to an empty set
	KeywordFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digest_keyword_failures_total",
			Help: "Total number of keyword ranking failures",
		},
	)
)
