// Package circuitbreaker stops calling a summarization model that keeps
// failing, so chunks go straight to the extractive fallback until it recovers.
// It wraps github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config tunes when a breaker opens and how it probes for recovery.
type Config struct {
	// Name labels the breaker in logs.
	Name string
	// HalfOpenRequests is how many trial calls pass while half-open.
	HalfOpenRequests uint32
	// Window clears the closed-state counts periodically. Zero keeps them.
	Window time.Duration
	// OpenFor is how long the breaker rejects calls before going half-open.
	OpenFor time.Duration
	// TripRatio is the failure ratio that opens the breaker.
	TripRatio float64
	// MinRequests is the sample size needed before TripRatio applies.
	MinRequests uint32
}

// ForModel returns the breaker settings for one summarization provider.
// A document of ten chunks is enough to trip a dead endpoint within one request.
func ForModel(provider string) Config {
	return Config{
		Name:             "summarizer-" + provider,
		HalfOpenRequests: 1,
		Window:           time.Minute,
		OpenFor:          30 * time.Second,
		TripRatio:        0.6,
		MinRequests:      5,
	}
}

// CircuitBreaker guards calls to one dependency.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New creates a breaker. Caller cancellation counts as success so that
// abandoned uploads do not open it.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Window,
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})}
}

// Do runs fn through cb. A rejected call returns the zero T and an error
// for which IsRejection is true.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.breaker.Name()
}

// IsOpen reports whether calls are currently being rejected outright.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejection reports whether err came from the breaker refusing the call
// rather than from the wrapped function.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
