package zerodb

import (
	nethttp "net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/logger"
	"github.com/ainative/zerodb-go/observability"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	cfg        http.Config
	httpOpts   []http.Option
	dimensions int
	provider   observability.Provider
}

// WithAPIKey authenticates with X-API-Key.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.cfg.APIKey = key
	}
}

// WithJWT authenticates with a bearer token. It takes precedence over an API key.
func WithJWT(token string) Option {
	return func(o *options) {
		o.cfg.JWTToken = token
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.cfg.BaseURL = url
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.Timeout = d
	}
}

// WithRetryAttempts sets the attempt budget used by WithRetry.
func WithRetryAttempts(n int) Option {
	return func(o *options) {
		o.cfg.RetryAttempts = n
	}
}

// WithRetryDelay sets the initial backoff delay.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		o.cfg.RetryDelay = d
	}
}

// WithLogger replaces the default zerolog-backed logger.
func WithLogger(log logger.Logger) Option {
	return withHTTP(http.WithLogger(log))
}

// WithHTTPClient swaps the underlying net/http client.
func WithHTTPClient(hc *nethttp.Client) Option {
	return withHTTP(http.WithHTTPClient(hc))
}

// WithRateLimit throttles outbound requests client-side.
func WithRateLimit(rps float64, burst int) Option {
	return withHTTP(http.WithRateLimit(rps, burst))
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return withHTTP(http.WithTracerProvider(tp))
}

// WithMeterProvider overrides the global OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return withHTTP(http.WithMeterProvider(mp))
}

// WithEmbeddingDimensions sets the vector length validated before sending.
// Non-positive values select the 1536 default.
func WithEmbeddingDimensions(n int) Option {
	return func(o *options) {
		o.dimensions = n
	}
}

// WithTransportOption passes a transport option straight through.
func WithTransportOption(opt http.Option) Option {
	return withHTTP(opt)
}

func withHTTP(opt http.Option) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, opt)
	}
}
