package config

import (
	"time"

	"github.com/knadh/koanf/v2"

	"github.com/ainative/zerodb-go/observability"
)

// Config is the full client configuration assembled from defaults, YAML and environment.
type Config struct {
	Client        ClientConfig         `koanf:"client"`
	Log           LogConfig            `koanf:"log"`
	Observability observability.Config `koanf:"observability"`

	k *koanf.Koanf
}

// ClientConfig holds the connection, credential and request policy settings.
type ClientConfig struct {
	APIKey    string          `koanf:"apikey"`
	JWTToken  string          `koanf:"jwttoken"`
	BaseURL   string          `koanf:"baseurl"`
	Timeout   time.Duration   `koanf:"timeout"`
	UserAgent string          `koanf:"useragent"`
	Retry     RetryConfig     `koanf:"retry"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Embedding EmbeddingConfig `koanf:"embedding"`
}

// RetryConfig drives the exponential backoff helper.
type RetryConfig struct {
	Attempts int           `koanf:"attempts"`
	Delay    time.Duration `koanf:"delay"`
}

// RateLimitConfig enables client-side throttling when RPS is positive.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// EmbeddingConfig sets the vector dimension enforced before vectors are sent.
type EmbeddingConfig struct {
	Dimensions int `koanf:"dimensions"`
}

// LogConfig configures the zerolog-backed logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}
