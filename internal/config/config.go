// ABOUTME: Environment configuration for the ryze CLI
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Hardcoded base URL fallbacks used when no override or env URL is set.
const (
	ProductionAPIURL = "https://api.ryze.ai"
	LocalAPIURL      = "http://localhost:8000"
)

type Config struct {
	// APIURL overrides the hardcoded base URL fallbacks when set.
	APIURL string `env:"RYZE_API_URL"`

	// Dev selects the local-development base URL fallback.
	Dev bool `env:"RYZE_DEV" envDefault:"false"`

	// RequestTimeout is the per-call HTTP timeout (default 30s).
	RequestTimeout time.Duration `env:"RYZE_REQUEST_TIMEOUT" envDefault:"30s"`

	// RetryDelay is the fixed wait between server-error retries.
	RetryDelay time.Duration `env:"RYZE_RETRY_DELAY" envDefault:"1s"`

	// MaxRetries caps automatic retries of 5xx responses.
	MaxRetries int `env:"RYZE_MAX_RETRIES" envDefault:"3"`

	// PollDebounce is the minimum spacing between two poll executions.
	PollDebounce time.Duration `env:"RYZE_POLL_DEBOUNCE" envDefault:"300ms"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Sanitize()

	return cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		c.MaxRetries = 3
	}
	if c.PollDebounce < 0 {
		c.PollDebounce = 300 * time.Millisecond
	}
	c.APIURL = normalizeURL(c.APIURL)
}

// ResolveAPIURL returns the base URL from override, env, or fallback (in priority order).
func (c *Config) ResolveAPIURL(override string) string {
	if override != "" {
		return normalizeURL(override)
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	if c.Dev {
		return LocalAPIURL
	}
	return ProductionAPIURL
}

// normalizeURL strips trailing slashes and adds an https scheme if missing.
func normalizeURL(url string) string {
	url = strings.TrimRight(url, "/")
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
