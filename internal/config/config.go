package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config aggregates everything the portal client needs from the environment.
type Config struct {
	ServerURL   string
	HTTPTimeout time.Duration
	TokenPath   string
	Logging     LoggingConfig
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// Load reads configuration from environment variables, applying defaults.
// SERVER_URL is the only required value.
func Load() (Config, error) {
	cfg := Config{
		ServerURL:   os.Getenv("SERVER_URL"),
		HTTPTimeout: defaultHTTPTimeout,
		TokenPath:   os.Getenv("TOKEN_PATH"),
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLogLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLogFormat),
		},
	}

	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("SERVER_URL environment variable is required")
	}
	if _, err := url.ParseRequestURI(cfg.ServerURL); err != nil {
		return Config{}, fmt.Errorf("invalid SERVER_URL %q: %w", cfg.ServerURL, err)
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve home directory for token storage: %w", err)
		}
		cfg.TokenPath = filepath.Join(home, ".dealerportal")
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
