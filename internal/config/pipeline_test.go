package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdigest/internal/domain/entity"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "digest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPipelineConfig_Defaults(t *testing.T) {
	t.Setenv("DIGEST_CONFIG_FILE", "")

	cfg, err := LoadPipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, int64(10485760), cfg.MaxUploadBytes)
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, 5, cfg.SummaryKeywords)
	assert.Equal(t, 10, cfg.OriginalKeywords)
	assert.Equal(t, 2000, cfg.DisplayLimit)
	assert.Empty(t, cfg.ExtraStopwords)

	assert.Equal(t, TierConfig{MinWords: 20, MaxWords: 60, FallbackSentences: 2}, cfg.Tiers[entity.LengthShort])
	assert.Equal(t, TierConfig{MinWords: 40, MaxWords: 120, FallbackSentences: 4}, cfg.Tiers[entity.LengthMedium])
	assert.Equal(t, TierConfig{MinWords: 80, MaxWords: 200, FallbackSentences: 6}, cfg.Tiers[entity.LengthLong])
}

func TestLoadPipelineConfig_Env(t *testing.T) {
	t.Setenv("DIGEST_CHUNK_SIZE", "500")
	t.Setenv("DIGEST_MAX_UPLOAD_BYTES", "2048")
	t.Setenv("DIGEST_MAX_CONCURRENT", "8")
	t.Setenv("DIGEST_REQUEST_TIMEOUT", "30s")
	t.Setenv("OCR_LANGUAGE", "deu")
	t.Setenv("DIGEST_EXTRA_STOPWORDS", "figure, table")

	cfg, err := LoadPipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "deu", cfg.OCRLanguage)
	assert.Equal(t, []string{"figure", "table"}, cfg.ExtraStopwords)
}

func TestLoadPipelineConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
chunk_size: 800
display_limit: 1500
keywords:
  summary: 3
  original: 12
extra_stopwords: [abstract]
tiers:
  short:
    max_words: 50
  Long:
    fallback_sentences: 8
`)
	t.Setenv("DIGEST_CONFIG_FILE", path)
	t.Setenv("DIGEST_EXTRA_STOPWORDS", "figure")

	cfg, err := LoadPipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, 1500, cfg.DisplayLimit)
	assert.Equal(t, 3, cfg.SummaryKeywords)
	assert.Equal(t, 12, cfg.OriginalKeywords)
	assert.Equal(t, []string{"abstract", "figure"}, cfg.ExtraStopwords)
	assert.Equal(t, TierConfig{MinWords: 20, MaxWords: 50, FallbackSentences: 2}, cfg.Tiers[entity.LengthShort])
	assert.Equal(t, TierConfig{MinWords: 80, MaxWords: 200, FallbackSentences: 8}, cfg.Tiers[entity.LengthLong])
}

func TestLoadPipelineConfig_EnvWinsOverFile(t *testing.T) {
	t.Setenv("DIGEST_CONFIG_FILE", writeConfigFile(t, "chunk_size: 800\n"))
	t.Setenv("DIGEST_CHUNK_SIZE", "900")

	cfg, err := LoadPipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.ChunkSize)
}

func TestLoadPipelineConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "zero chunk size", env: map[string]string{"DIGEST_CHUNK_SIZE": "0"}},
		{name: "negative upload limit", env: map[string]string{"DIGEST_MAX_UPLOAD_BYTES": "-1"}},
		{name: "too many workers", env: map[string]string{"DIGEST_MAX_CONCURRENT": "5000"}},
		{name: "timeout too short", env: map[string]string{"DIGEST_REQUEST_TIMEOUT": "10ms"}},
		{name: "unknown tier", file: "tiers:\n  huge:\n    max_words: 500\n"},
		{name: "inverted bounds", file: "tiers:\n  short:\n    min_words: 100\n"},
		{name: "malformed yaml", file: "tiers: [\n"},
		{name: "short falls back to more sentences than medium", file: "tiers:\n  short:\n    fallback_sentences: 5\n"},
		{name: "long falls back to fewer sentences than medium", file: "tiers:\n  long:\n    fallback_sentences: 3\n"},
		{name: "medium longer than long", file: "tiers:\n  medium:\n    max_words: 300\n"},
		{name: "medium minimum above long", file: "tiers:\n  medium:\n    min_words: 90\n    max_words: 150\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv("DIGEST_CONFIG_FILE", writeConfigFile(t, tt.file))
			}

			cfg, err := LoadPipelineConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadPipelineConfig_MissingFile(t *testing.T) {
	t.Setenv("DIGEST_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadPipelineConfig()
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DIGEST_RATE_LIMIT_PER_MIN", "")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)

	t.Setenv("DIGEST_RATE_LIMIT_PER_MIN", "0")
	_, err = LoadServerConfig()
	assert.Error(t, err)
}
