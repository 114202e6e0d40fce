package config

import (
	"fmt"
	"time"

	pkgconfig "docdigest/pkg/config"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// RateLimitPerMinute is the number of uploads one client IP may start per minute. Default: 30
	RateLimitPerMinute int

	// ShutdownTimeout bounds graceful shutdown. Default: 30s
	ShutdownTimeout time.Duration
}

// LoadServerConfig loads server configuration from HTTP_ADDR,
// DIGEST_RATE_LIMIT_PER_MIN and HTTP_SHUTDOWN_TIMEOUT.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:               pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		RateLimitPerMinute: pkgconfig.GetEnvInt("DIGEST_RATE_LIMIT_PER_MIN", 30),
		ShutdownTimeout:    pkgconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("invalid server configuration: HTTP_ADDR cannot be empty")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("invalid server configuration: DIGEST_RATE_LIMIT_PER_MIN must be positive, got %d", cfg.RateLimitPerMinute)
	}
	if err := pkgconfig.ValidatePositiveDuration(cfg.ShutdownTimeout); err != nil {
		return nil, fmt.Errorf("invalid server configuration: HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}
