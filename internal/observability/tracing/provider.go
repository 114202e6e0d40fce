package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewProvider installs a global tracer provider sampling sampleRatio of new
// traces (parent decisions are honoured) and the W3C trace context
// propagator. No exporter is attached: spans give every request a trace ID
// that appears in logs and in X-Trace-Id. Callers Shutdown the provider on exit.
func NewProvider(sampleRatio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	if sampleRatio < 0 {
		sampleRatio = 0
	}
	if sampleRatio > 1 {
		sampleRatio = 1
	}
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}, opts...)

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp
}
