// Package retry repeats an operation with exponential backoff and jitter.
// The service only retries the startup model probe; per-chunk summary calls
// degrade to the extractive fallback instead.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config controls how often and how patiently an operation is retried.
type Config struct {
	// MaxAttempts counts the first call. Values below 1 mean a single call.
	MaxAttempts int
	// InitialDelay is the wait after the first failure.
	InitialDelay time.Duration
	// MaxDelay caps the wait before jitter is added.
	MaxDelay time.Duration
	// Multiplier grows the wait after each failure.
	Multiplier float64
	// JitterFraction adds up to this fraction of the wait at random, clamped to [0,1].
	JitterFraction float64
	// Logger receives retry progress. Nil uses slog.Default().
	Logger *slog.Logger
}

// ModelProbeConfig returns the policy for checking that the configured
// summarization model is reachable.
func ModelProbeConfig() Config {
	return Config{
		MaxAttempts:    4,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error, the
// attempts run out or ctx ends. Exhaustion wraps the last error.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	delay := cfg.InitialDelay
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, err)
		}

		wait := addJitter(delay, cfg.JitterFraction)
		logger.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		if werr := sleep(ctx, wait); werr != nil {
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt, werr)
		}
		delay = nextDelay(delay, cfg)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func nextDelay(prev time.Duration, cfg Config) time.Duration {
	next := time.Duration(float64(prev) * cfg.Multiplier)
	if cfg.MaxDelay > 0 && next > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return next
}

// IsRetryable reports whether err is transient: network timeouts, refused or
// reset connections, and HTTP 408, 429 or 5xx. Context errors never are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests,
			httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH)
}

// HTTPError is a provider response with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need cryptographic randomness.
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
