package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"docdigest/internal/resilience/retry"
)

// NewLoader returns a LoadFunc that builds the provider selected by cfg and,
// when the provider supports it, probes the model with retry and backoff.
func NewLoader(cfg *ModelConfig) LoadFunc {
	return func(ctx context.Context) (Model, error) {
		limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)

		var model Model
		switch cfg.Provider {
		case ProviderNone, "":
			return NewNoOp(), nil
		case ProviderClaude:
			model = NewClaude(cfg, limiter)
		case ProviderOpenAI:
			model = NewOpenAI(cfg, limiter)
		default:
			return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
		}

		if p, ok := model.(Prober); ok {
			if err := probe(ctx, p); err != nil {
				return nil, fmt.Errorf("probe %s model %q: %w", cfg.Provider, cfg.Model, err)
			}
		}
		return model, nil
	}
}

func probe(ctx context.Context, p Prober) error {
	cfg := retry.ModelProbeConfig()
	cfg.Logger = slog.Default().With(slog.String("component", "model_probe"))
	err := retry.WithBackoff(ctx, cfg, func() error {
		return p.Probe(ctx)
	})
	if isNotFound(err) {
		slog.Error("configured summarization model does not exist", slog.Any("error", err))
	}
	return err
}
