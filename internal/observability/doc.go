// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors for the digest pipeline and HTTP layer
//   - tracing: OpenTelemetry spans for HTTP requests and pipeline stages
package observability
