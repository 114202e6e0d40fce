package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"docdigest/internal/domain/entity"
	"docdigest/internal/resilience/circuitbreaker"
	"docdigest/internal/resilience/retry"
)

// callFunc performs one provider request and returns the raw summary text.
type callFunc func(ctx context.Context) (string, error)

// guard applies the call policy shared by all providers: a process-wide rate
// limit, a per-call timeout and a circuit breaker. Calls are never retried.
type guard struct {
	provider        string
	breaker         *circuitbreaker.CircuitBreaker
	limiter         *rate.Limiter
	timeout         time.Duration
	metricsRecorder SummaryMetricsRecorder
}

func newGuard(provider string, cbCfg circuitbreaker.Config, cfg *ModelConfig, limiter *rate.Limiter) guard {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)
	}
	return guard{
		provider:        provider,
		breaker:         circuitbreaker.New(cbCfg),
		limiter:         limiter,
		timeout:         cfg.Timeout,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

func (g *guard) run(ctx context.Context, inputText string, bounds entity.LengthBounds, call callFunc) (string, error) {
	requestID := uuid.New().String()

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%s rate limiter: %w", g.provider, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	slog.DebugContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", g.provider),
		slog.Int("input_length", len([]rune(inputText))),
		slog.Int("min_words", bounds.MinTokens),
		slog.Int("max_words", bounds.MaxTokens))

	start := time.Now()
	res, err := circuitbreaker.Do(g.breaker, func() (string, error) {
		return call(ctx)
	})
	duration := time.Since(start)

	if err != nil {
		if circuitbreaker.IsRejection(err) {
			g.metricsRecorder.RecordCall(g.provider, OutcomeRejected)
			slog.WarnContext(ctx, "model circuit breaker open, request rejected",
				slog.String("request_id", requestID),
				slog.String("service", g.breaker.Name()),
				slog.String("state", g.breaker.State().String()))
			return "", fmt.Errorf("%w: %s circuit breaker open", ErrModelUnavailable, g.provider)
		}
		g.metricsRecorder.RecordCall(g.provider, OutcomeError)
		slog.WarnContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.String("provider", g.provider),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%s api error: %w", g.provider, err)
	}

	summary := strings.TrimSpace(res)
	words, withinLimit := withinBounds(summary, bounds)

	g.metricsRecorder.RecordCall(g.provider, OutcomeSuccess)
	g.metricsRecorder.RecordLength(words)
	g.metricsRecorder.RecordDuration(duration)
	g.metricsRecorder.RecordCompliance(withinLimit)
	if !withinLimit {
		g.metricsRecorder.RecordLimitExceeded()
		slog.WarnContext(ctx, "Summary exceeds word bound",
			slog.String("request_id", requestID),
			slog.Int("summary_words", words),
			slog.Int("max_words", bounds.MaxTokens))
	}

	slog.DebugContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_words", words),
		slog.Duration("duration", duration))

	return summary, nil
}

// responseTokenBudget converts the tier's word bound into a completion token cap.
func responseTokenBudget(bounds entity.LengthBounds) int {
	const floor = 256
	if n := bounds.MaxTokens * 2; n > floor {
		return n
	}
	return floor
}

// asHTTPError maps provider SDK errors onto retry.HTTPError so the retry
// policy can classify them by status code.
func asHTTPError(err error) error {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &retry.HTTPError{StatusCode: anthropicErr.StatusCode, Message: err.Error()}
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: err.Error()}
	}
	return err
}

// isNotFound reports whether a probe failed because the model does not exist.
func isNotFound(err error) bool {
	var httpErr *retry.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
