// Package resilience provides fault tolerance patterns for calls to the
// summarization model.
//
// The package supports:
//   - Circuit breakers around each model call (Claude, OpenAI)
//   - Retry logic with exponential backoff and jitter for the startup model probe
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ForModel("claude"))
//	summary, err := circuitbreaker.Do(cb, func() (string, error) {
//	    return callModel(ctx)
//	})
//
//	err := retry.WithBackoff(ctx, retry.ModelProbeConfig(), func() error {
//	    return probe(ctx)
//	})
package resilience
