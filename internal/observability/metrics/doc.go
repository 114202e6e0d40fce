// Package metrics provides the Prometheus metrics of the digest pipeline.
//
// This package centralizes the pipeline's business metrics:
//   - documents processed, by source kind and outcome
//   - extraction duration and extracted text size
//   - chunk summaries, split by primary model and extractive fallback
//   - keyword ranking failures
//
// All metrics are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	result, err := svc.Process(ctx, doc, tier)
//	metrics.RecordDocumentProcessed(doc.Kind.String(), metrics.StatusFor(err), time.Since(start))
package metrics
