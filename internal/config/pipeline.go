// Package config loads the service configuration from environment variables
// and an optional YAML file. Every loader validates what it read and fails
// closed on invalid values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"docdigest/internal/domain/entity"
	pkgconfig "docdigest/pkg/config"
)

// TierConfig overrides the meaning of one length tier.
type TierConfig struct {
	MinWords          int `yaml:"min_words"`
	MaxWords          int `yaml:"max_words"`
	FallbackSentences int `yaml:"fallback_sentences"`
}

// PipelineConfig holds the digest pipeline settings.
type PipelineConfig struct {
	// ChunkSize is the model input window in characters. Default: 1000
	ChunkSize int

	// MaxUploadBytes caps an uploaded document. Default: 10 MiB
	MaxUploadBytes int64

	// MaxConcurrent bounds pipelines running at once. Default: 4
	MaxConcurrent int

	// RequestTimeout bounds one pipeline run started over HTTP. Default: 120s
	RequestTimeout time.Duration

	// OCRLanguage is the Tesseract language code. Default: "eng"
	OCRLanguage string

	// SummaryKeywords and OriginalKeywords are the highlight counts. Default: 5 and 10
	SummaryKeywords  int
	OriginalKeywords int

	// DisplayLimit truncates the displayed original. Default: 2000
	DisplayLimit int

	// ExtraStopwords are added to the English list used for keyword ranking.
	ExtraStopwords []string

	// Tiers holds the per-tier settings, always complete after loading.
	Tiers map[entity.LengthTier]TierConfig
}

// pipelineFile is the layout of DIGEST_CONFIG_FILE.
type pipelineFile struct {
	ChunkSize    int                              `yaml:"chunk_size"`
	DisplayLimit int                              `yaml:"display_limit"`
	Tiers        map[entity.LengthTier]TierConfig `yaml:"tiers"`
	Keywords     struct {
		Summary  int `yaml:"summary"`
		Original int `yaml:"original"`
	} `yaml:"keywords"`
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

// DefaultTiers returns the built-in tier settings.
func DefaultTiers() map[entity.LengthTier]TierConfig {
	tiers := make(map[entity.LengthTier]TierConfig, 3)
	for _, t := range []entity.LengthTier{entity.LengthShort, entity.LengthMedium, entity.LengthLong} {
		b := t.Bounds()
		tiers[t] = TierConfig{MinWords: b.MinTokens, MaxWords: b.MaxTokens, FallbackSentences: t.FallbackSentences()}
	}
	return tiers
}

// LoadPipelineConfig loads pipeline configuration.
//
// Environment variables:
//   - DIGEST_CHUNK_SIZE (default: 1000)
//   - DIGEST_MAX_UPLOAD_BYTES (default: 10485760)
//   - DIGEST_MAX_CONCURRENT (default: 4)
//   - DIGEST_REQUEST_TIMEOUT (default: 120s)
//   - DIGEST_EXTRA_STOPWORDS (comma separated)
//   - OCR_LANGUAGE (default: eng)
//   - DIGEST_CONFIG_FILE: YAML file overriding tiers, keyword counts, stop words,
//     chunk size and display limit
//
// Environment values win over the file for settings that both can set.
func LoadPipelineConfig() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		ChunkSize:        1000,
		MaxUploadBytes:   10 << 20,
		MaxConcurrent:    4,
		RequestTimeout:   120 * time.Second,
		OCRLanguage:      "eng",
		SummaryKeywords:  5,
		OriginalKeywords: 10,
		DisplayLimit:     2000,
		Tiers:            DefaultTiers(),
	}

	if path := pkgconfig.GetEnvString("DIGEST_CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ChunkSize = pkgconfig.GetEnvInt("DIGEST_CHUNK_SIZE", cfg.ChunkSize)
	cfg.MaxUploadBytes = pkgconfig.GetEnvInt64("DIGEST_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxConcurrent = pkgconfig.GetEnvInt("DIGEST_MAX_CONCURRENT", cfg.MaxConcurrent)
	cfg.RequestTimeout = pkgconfig.GetEnvDuration("DIGEST_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.OCRLanguage = pkgconfig.GetEnvString("OCR_LANGUAGE", cfg.OCRLanguage)
	cfg.ExtraStopwords = append(cfg.ExtraStopwords, pkgconfig.GetEnvStringList("DIGEST_EXTRA_STOPWORDS", nil)...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return cfg, nil
}

// applyFile overlays the non-zero values of a YAML file.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func (c *PipelineConfig) applyFile(path string) error {
	// #nosec G304 -- path is provided by the operator, not by request input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file pipelineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if file.ChunkSize != 0 {
		c.ChunkSize = file.ChunkSize
	}
	if file.DisplayLimit != 0 {
		c.DisplayLimit = file.DisplayLimit
	}
	if file.Keywords.Summary != 0 {
		c.SummaryKeywords = file.Keywords.Summary
	}
	if file.Keywords.Original != 0 {
		c.OriginalKeywords = file.Keywords.Original
	}
	c.ExtraStopwords = append(c.ExtraStopwords, file.ExtraStopwords...)

	for name, override := range file.Tiers {
		parsed, ok := entity.ParseLengthTier(string(name))
		if !ok {
			return fmt.Errorf("config file: unknown tier %q", name)
		}
		tier := c.Tiers[parsed]
		if override.MinWords != 0 {
			tier.MinWords = override.MinWords
		}
		if override.MaxWords != 0 {
			tier.MaxWords = override.MaxWords
		}
		if override.FallbackSentences != 0 {
			tier.FallbackSentences = override.FallbackSentences
		}
		c.Tiers[parsed] = tier
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *PipelineConfig) Validate() error {
	if err := pkgconfig.ValidateIntRange("chunk size", c.ChunkSize, 1, 100000); err != nil {
		return err
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if err := pkgconfig.ValidateIntRange("max concurrent", c.MaxConcurrent, 1, 1024); err != nil {
		return err
	}
	if err := pkgconfig.ValidateDurationRange(c.RequestTimeout, time.Second, 30*time.Minute); err != nil {
		return fmt.Errorf("invalid request timeout: %w", err)
	}
	if c.OCRLanguage == "" {
		return fmt.Errorf("ocr language cannot be empty")
	}
	if err := pkgconfig.ValidateIntRange("summary keywords", c.SummaryKeywords, 1, 100); err != nil {
		return err
	}
	if err := pkgconfig.ValidateIntRange("original keywords", c.OriginalKeywords, 1, 100); err != nil {
		return err
	}
	if c.DisplayLimit <= 0 {
		return fmt.Errorf("display limit must be positive, got %d", c.DisplayLimit)
	}

	for name, tier := range c.Tiers {
		if tier.MinWords <= 0 || tier.MaxWords < tier.MinWords {
			return fmt.Errorf("tier %s: need 0 < min_words <= max_words, got %d and %d",
				name, tier.MinWords, tier.MaxWords)
		}
		if tier.FallbackSentences <= 0 {
			return fmt.Errorf("tier %s: fallback_sentences must be positive, got %d", name, tier.FallbackSentences)
		}
	}
	return c.validateTierOrder()
}

// validateTierOrder requires that no setting shrinks from short to medium to long.
func (c *PipelineConfig) validateTierOrder() error {
	order := []entity.LengthTier{entity.LengthShort, entity.LengthMedium, entity.LengthLong}
	for i := 1; i < len(order); i++ {
		lo, okLo := c.Tiers[order[i-1]]
		hi, okHi := c.Tiers[order[i]]
		if !okLo || !okHi {
			return fmt.Errorf("tiers %s and %s must both be configured", order[i-1], order[i])
		}
		switch {
		case lo.MinWords > hi.MinWords:
			return fmt.Errorf("tier %s min_words (%d) exceeds tier %s (%d)", order[i-1], lo.MinWords, order[i], hi.MinWords)
		case lo.MaxWords > hi.MaxWords:
			return fmt.Errorf("tier %s max_words (%d) exceeds tier %s (%d)", order[i-1], lo.MaxWords, order[i], hi.MaxWords)
		case lo.FallbackSentences > hi.FallbackSentences:
			return fmt.Errorf("tier %s fallback_sentences (%d) exceeds tier %s (%d)",
				order[i-1], lo.FallbackSentences, order[i], hi.FallbackSentences)
		}
	}
	return nil
}
