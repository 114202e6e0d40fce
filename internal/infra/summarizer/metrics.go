package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SummaryMetricsRecorder records per-call metrics for the abstractive model.
// Providers take it as a dependency so tests can inject a recorder and
// inspect what was observed.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in words.
	RecordLength(words int)

	// RecordLimitExceeded increments the counter when a summary exceeds the tier's upper bound.
	RecordLimitExceeded()

	// RecordCompliance records whether the last summary stayed within the tier's upper bound.
	RecordCompliance(withinLimit bool)

	// RecordDuration records the time taken by one model call.
	RecordDuration(duration time.Duration)

	// RecordCall counts model calls by provider and outcome (success, error, rejected).
	RecordCall(provider, outcome string)
}

// Call outcomes passed to RecordCall.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus metrics.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
	callsCounter      *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// register adds c to the default registry, or returns the collector already
// registered under the same descriptor.
func register[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// NewPrometheusSummaryMetrics returns the process-wide Prometheus recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "digest_model_summary_length_words",
				Help:    "Distribution of model summary lengths in words",
				Buckets: []float64{10, 20, 40, 60, 80, 120, 160, 200, 300},
			})),
			exceededCounter: register(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "digest_model_summary_limit_exceeded_total",
				Help: "Total number of model summaries longer than the tier's upper bound",
			})),
			complianceGauge: register(prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "digest_model_summary_limit_compliance",
				Help: "1 if the last model summary stayed within the tier's upper bound, else 0",
			})),
			durationHistogram: register(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "digest_model_call_duration_seconds",
				Help:    "Time taken by one summarization model call",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			})),
			callsCounter: register(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "digest_model_calls_total",
				Help: "Total number of summarization model calls by provider and outcome",
			}, []string{"provider", "outcome"})),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(words int) {
	p.lengthHistogram.Observe(float64(words))
}

// RecordLimitExceeded implements SummaryMetricsRecorder.RecordLimitExceeded
func (p *PrometheusSummaryMetrics) RecordLimitExceeded() {
	p.exceededCounter.Inc()
}

// RecordCompliance implements SummaryMetricsRecorder.RecordCompliance
func (p *PrometheusSummaryMetrics) RecordCompliance(withinLimit bool) {
	if withinLimit {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordCall implements SummaryMetricsRecorder.RecordCall
func (p *PrometheusSummaryMetrics) RecordCall(provider, outcome string) {
	p.callsCounter.WithLabelValues(provider, outcome).Inc()
}
