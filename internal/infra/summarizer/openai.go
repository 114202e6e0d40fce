package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"docdigest/internal/domain/entity"
	"docdigest/internal/resilience/circuitbreaker"
)

// OpenAI implements Model using OpenAI's chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
	guard  guard
}

// NewOpenAI creates an OpenAI model from cfg. A nil limiter gets one built from cfg.
func NewOpenAI(cfg *ModelConfig, limiter *rate.Limiter) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("Initialized OpenAI summarizer",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		guard:  newGuard(ProviderOpenAI, circuitbreaker.ForModel(ProviderOpenAI), cfg, limiter),
	}
}

// Summarize generates a summary of one chunk with temperature 0.
func (o *OpenAI) Summarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error) {
	return o.guard.run(ctx, text, bounds, func(ctx context.Context) (string, error) {
		return o.doSummarize(ctx, text, bounds)
	})
}

func (o *OpenAI) doSummarize(ctx context.Context, text string, bounds entity.LengthBounds) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(text, bounds),
		}},
		// go-openai drops a zero temperature from the request body.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   responseTokenBudget(bounds),
	})
	if err != nil {
		return "", err
	}

	// Validate response structure (safety check to prevent panic on array access)
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Probe checks that the configured model exists and the key is accepted.
func (o *OpenAI) Probe(ctx context.Context) error {
	_, err := o.client.GetModel(ctx, o.model)
	return asHTTPError(err)
}
