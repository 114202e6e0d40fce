package retry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		Logger:       slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
}

// flakyProbe fails with err for the first failures calls, then succeeds.
type flakyProbe struct {
	failures int
	err      error
	calls    int
}

func (p *flakyProbe) call() error {
	p.calls++
	if p.calls <= p.failures {
		return p.err
	}
	return nil
}

func TestWithBackoff(t *testing.T) {
	unavailable := &HTTPError{StatusCode: 503, Message: "overloaded"}
	notFound := &HTTPError{StatusCode: 404, Message: "model not found"}

	tests := []struct {
		name      string
		attempts  int
		probe     *flakyProbe
		wantCalls int
		wantErr   error
	}{
		{name: "first call succeeds", attempts: 3, probe: &flakyProbe{}, wantCalls: 1},
		{name: "recovers after transient errors", attempts: 4, probe: &flakyProbe{failures: 2, err: unavailable}, wantCalls: 3},
		{name: "gives up after max attempts", attempts: 3, probe: &flakyProbe{failures: 10, err: unavailable}, wantCalls: 3, wantErr: unavailable},
		{name: "missing model is not retried", attempts: 3, probe: &flakyProbe{failures: 10, err: notFound}, wantCalls: 1, wantErr: notFound},
		{name: "zero attempts still calls once", attempts: 0, probe: &flakyProbe{failures: 10, err: unavailable}, wantCalls: 1, wantErr: unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WithBackoff(context.Background(), fastConfig(tt.attempts), tt.probe.call)

			assert.Equal(t, tt.wantCalls, tt.probe.calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithBackoff_ExhaustionWrapsLastError(t *testing.T) {
	probe := &flakyProbe{failures: 10, err: syscall.ECONNREFUSED}

	err := WithBackoff(context.Background(), fastConfig(2), probe.call)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
}

func TestWithBackoff_ContextCanceledDuringWait(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Minute
	cfg.MaxDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return &HTTPError{StatusCode: 500, Message: "boom"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_LogsRetries(t *testing.T) {
	var buf bytes.Buffer
	cfg := fastConfig(3)
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	probe := &flakyProbe{failures: 1, err: &HTTPError{StatusCode: 429, Message: "slow down"}}

	require.NoError(t, WithBackoff(context.Background(), cfg, probe.call))

	assert.Contains(t, buf.String(), "operation failed, retrying")
	assert.Contains(t, buf.String(), "operation succeeded after retry")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("probe: %w", context.DeadlineExceeded), false},
		{"500", &HTTPError{StatusCode: 500}, true},
		{"529 overloaded", &HTTPError{StatusCode: 529}, true},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"408", &HTTPError{StatusCode: 408}, true},
		{"401", &HTTPError{StatusCode: 401}, false},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"wrapped 502", fmt.Errorf("probe: %w", &HTTPError{StatusCode: 502}), true},
		{"net timeout", timeoutErr{}, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"plain error", errors.New("bad api key"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestModelProbeConfig(t *testing.T) {
	cfg := ModelProbeConfig()

	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.GreaterOrEqual(t, cfg.MaxDelay, cfg.InitialDelay)
	assert.Nil(t, cfg.Logger)
}

func TestNextDelay(t *testing.T) {
	cfg := Config{Multiplier: 2, MaxDelay: 300 * time.Millisecond}

	assert.Equal(t, 200*time.Millisecond, nextDelay(100*time.Millisecond, cfg))
	assert.Equal(t, 300*time.Millisecond, nextDelay(200*time.Millisecond, cfg))

	cfg.MaxDelay = 0
	assert.Equal(t, 800*time.Millisecond, nextDelay(400*time.Millisecond, cfg))
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 503, Message: "overloaded"}
	assert.Equal(t, "HTTP 503: overloaded", err.Error())
}

func TestAddJitter(t *testing.T) {
	d := 100 * time.Millisecond

	for range 20 {
		got := addJitter(d, 0.2)
		assert.GreaterOrEqual(t, got, d)
		assert.LessOrEqual(t, got, 120*time.Millisecond)
	}
	assert.Equal(t, d, addJitter(d, 0))
	assert.Equal(t, time.Duration(0), addJitter(0, 0.5))
	assert.LessOrEqual(t, addJitter(d, 5), 2*d)
}
