// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global provider, so the service emits nothing
// until main (or a test) installs one with otel.SetTracerProvider.
//
//   - Middleware wraps HTTP handlers in a server span and returns X-Trace-Id
//   - GetTracer is used by the digest pipeline for its stage spans
package tracing
