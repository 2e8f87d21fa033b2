package config

import (
	"fmt"
	"net/url"

	"github.com/ainative/zerodb-go/logger"
)

// Validate checks the assembled configuration and returns the first problem found.
func Validate(cfg *Config) error {
	if err := validateClient(&cfg.Client); err != nil {
		return err
	}
	if err := validateLog(&cfg.Log); err != nil {
		return err
	}
	if err := cfg.Observability.Validate(); err != nil {
		return fmt.Errorf("observability config: %w", err)
	}
	return nil
}

func validateClient(cfg *ClientConfig) error {
	if cfg.APIKey == "" && cfg.JWTToken == "" {
		return NewMissingFieldError("client.apikey", "ZERODB_API_KEY (or ZERODB_JWT_TOKEN)", "client.apikey")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewInvalidFieldError("client.baseurl", fmt.Sprintf("%q is not an absolute http(s) url", cfg.BaseURL), nil)
	}

	if cfg.Timeout < 0 {
		return NewInvalidFieldError("client.timeout", "must not be negative", nil)
	}
	if cfg.Retry.Attempts < 0 {
		return NewInvalidFieldError("client.retry.attempts", "must not be negative", nil)
	}
	if cfg.Retry.Delay < 0 {
		return NewInvalidFieldError("client.retry.delay", "must not be negative", nil)
	}
	if cfg.RateLimit.RPS < 0 {
		return NewInvalidFieldError("client.ratelimit.rps", "must not be negative", nil)
	}
	if cfg.RateLimit.Burst < 0 {
		return NewInvalidFieldError("client.ratelimit.burst", "must not be negative", nil)
	}
	if cfg.Embedding.Dimensions < 0 {
		return NewInvalidFieldError("client.embedding.dimensions", "must not be negative", nil)
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	if cfg.Level != "" && !logger.ValidLevel(cfg.Level) {
		return NewInvalidFieldError("log.level", fmt.Sprintf("unknown level %q", cfg.Level),
			[]string{"trace", "debug", "info", "warn", "error", "disabled"})
	}
	return nil
}
