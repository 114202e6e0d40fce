// Package config provides helpers for reading typed settings from environment
// variables and validating them. Malformed values fall back to the default
// with a warning so a typo never prevents startup; range checks are left to
// the caller's Validate method, which fails closed.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// Example:
//
//	chunkSize := GetEnvInt("DIGEST_CHUNK_SIZE", 1000)
func GetEnvInt(key string, defaultValue int) int {
	return getEnvParsed(key, defaultValue, strconv.Atoi)
}

// GetEnvInt64 returns the value of an environment variable as an int64.
// Used for byte sizes.
func GetEnvInt64(key string, defaultValue int64) int64 {
	return getEnvParsed(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvFloat returns the value of an environment variable as a float64.
//
// Example:
//
//	rps := GetEnvFloat("SUMMARIZER_RATE_PER_SEC", 2)
func GetEnvFloat(key string, defaultValue float64) float64 {
	return getEnvParsed(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool returns the value of an environment variable as a boolean.
// Accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnvParsed(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
//
// Example:
//
//	timeout := GetEnvDuration("DIGEST_REQUEST_TIMEOUT", 120*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnvParsed(key, defaultValue, time.ParseDuration)
}

// GetEnvStringList returns a comma-separated list of strings from an environment variable.
// Values are trimmed and empty values dropped.
//
// Example:
//
//	// DIGEST_EXTRA_STOPWORDS="figure, table"
//	extra := GetEnvStringList("DIGEST_EXTRA_STOPWORDS", nil) // ["figure", "table"]
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func getEnvParsed[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := parse(valueStr)
	if err != nil {
		slog.Warn("invalid value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
