package summarizer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"docdigest/internal/domain/entity"
	"docdigest/internal/resilience/circuitbreaker"
)

// Claude implements Model using Anthropic's Claude API.
// Each call passes through the shared rate limiter and a circuit breaker.
type Claude struct {
	client anthropic.Client
	model  string
	guard  guard
}

// NewClaude creates a Claude model from cfg. A nil limiter gets one built from cfg.
// SDK-level retries are disabled; a failed chunk falls back instead.
func NewClaude(cfg *ModelConfig, limiter *rate.Limiter) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("Initialized Claude summarizer",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
		guard:  newGuard(ProviderClaude, circuitbreaker.ForModel(ProviderClaude), cfg, limiter),
	}
}

// Summarize generates a summary of one chunk with temperature 0.
func (c *Claude) Summarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error) {
	return c.guard.run(ctx, text, bounds, func(ctx context.Context) (string, error) {
		return c.doSummarize(ctx, text, bounds)
	})
}

func (c *Claude) doSummarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(responseTokenBudget(bounds)),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(text, bounds)),
			),
		},
	})
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			return tb.Text, nil
		}
	}
	return "", errors.New("claude api returned no text content")
}

// Probe checks that the configured model exists and the key is accepted.
func (c *Claude) Probe(ctx context.Context) error {
	_, err := c.client.Models.Get(ctx, c.model, anthropic.ModelGetParams{})
	return asHTTPError(err)
}
