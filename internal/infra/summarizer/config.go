package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"docdigest/pkg/config"
)

// Provider names accepted in SUMMARIZER_PROVIDER.
const (
	ProviderNone   = "none"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

const (
	// minTimeout and maxTimeout bound a single model call.
	minTimeout = 1 * time.Second
	maxTimeout = 5 * time.Minute
)

// ModelConfig holds configuration parameters for the primary summarization model.
type ModelConfig struct {
	// Provider selects the backend: none, claude or openai.
	// With none the pipeline always uses the extractive fallback.
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// Model is the provider's model identifier.
	Model string

	// BaseURL overrides the provider endpoint (proxies, tests). Empty means the SDK default.
	BaseURL string

	// Timeout is the maximum duration for a single summarization call.
	Timeout time.Duration

	// RatePerSecond and Burst bound outgoing model calls across all requests.
	RatePerSecond float64
	Burst         int
}

// DefaultModel returns the model used when SUMMARIZER_MODEL is not set.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderClaude:
		return string(anthropic.ModelClaudeSonnet4_5_20250929)
	case ProviderOpenAI:
		return openai.GPT4oMini
	default:
		return ""
	}
}

// LoadModelConfig loads configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_PROVIDER: none | claude | openai (default: none)
//   - ANTHROPIC_API_KEY / OPENAI_API_KEY: key for the selected provider
//   - SUMMARIZER_MODEL: model identifier (default depends on provider)
//   - SUMMARIZER_BASE_URL: endpoint override
//   - SUMMARIZER_TIMEOUT: per-call timeout (default: 60s)
//   - SUMMARIZER_RATE_PER_SEC: outgoing call rate (default: 2)
//   - SUMMARIZER_BURST: limiter burst (default: 4)
//
// Returns an error if the configuration is invalid (fail-closed behavior).
func LoadModelConfig() (*ModelConfig, error) {
	provider := strings.ToLower(config.GetEnvString("SUMMARIZER_PROVIDER", ProviderNone))

	cfg := &ModelConfig{
		Provider:      provider,
		Model:         config.GetEnvString("SUMMARIZER_MODEL", DefaultModel(provider)),
		BaseURL:       config.GetEnvString("SUMMARIZER_BASE_URL", ""),
		Timeout:       config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		RatePerSecond: config.GetEnvFloat("SUMMARIZER_RATE_PER_SEC", 2),
		Burst:         config.GetEnvInt("SUMMARIZER_BURST", 4),
	}

	switch provider {
	case ProviderClaude:
		cfg.APIKey = config.GetEnvString("ANTHROPIC_API_KEY", "")
	case ProviderOpenAI:
		cfg.APIKey = config.GetEnvString("OPENAI_API_KEY", "")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *ModelConfig) Validate() error {
	switch c.Provider {
	case ProviderNone:
		return nil
	case ProviderClaude, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (must be none, claude or openai)", c.Provider)
	}

	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty for provider %s", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if err := config.ValidateDurationRange(c.Timeout, minTimeout, maxTimeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("rate per second must be positive, got %v", c.RatePerSecond)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	return nil
}
