package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by this service.
const TracerName = "docdigest"

// GetTracer returns the tracer for pipeline and HTTP spans.
// It resolves the global provider on every call so a provider installed
// after package init (tests, main) is honoured.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "digest.extract")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
