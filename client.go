// Package zerodb is the entry point of the ZeroDB Go client. A Client wires
// one transport into every resource service:
//
//	c, err := zerodb.New(zerodb.WithAPIKey(os.Getenv("ZERODB_API_KEY")))
//	if err != nil {
//		return err
//	}
//	res, err := c.Vectors.Search(ctx, vectors.SearchRequest{ProjectID: pid, QueryVector: q})
//
// NewFromConfig builds the same client from a koanf-loaded config.Config,
// including logging and OpenTelemetry export.
package zerodb

import (
	"context"
	"fmt"

	"github.com/ainative/zerodb-go/admin"
	"github.com/ainative/zerodb-go/agents"
	"github.com/ainative/zerodb-go/config"
	"github.com/ainative/zerodb-go/events"
	"github.com/ainative/zerodb-go/files"
	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/logger"
	"github.com/ainative/zerodb-go/observability"
	"github.com/ainative/zerodb-go/projects"
	"github.com/ainative/zerodb-go/quantum"
	"github.com/ainative/zerodb-go/rlhf"
	"github.com/ainative/zerodb-go/tables"
	"github.com/ainative/zerodb-go/validation"
	"github.com/ainative/zerodb-go/vectors"
)

// Client groups the ZeroDB resource services over a shared transport.
type Client struct {
	Vectors  *vectors.Service
	Quantum  *quantum.Service
	Tables   *tables.Service
	Files    *files.Service
	Events   *events.Service
	Projects *projects.Service
	RLHF     *rlhf.Service
	Admin    *admin.Service
	Agents   *agents.Services

	transport *http.Client
	validator *validation.Validator
	provider  observability.Provider
}

// New builds a client from options. It fails with an http AuthConfigError
// when no credential is supplied.
func New(opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return build(o)
}

// NewFromConfig builds a client from cfg. Options are applied after the
// config and win over it. When observability is enabled the client owns the
// provider and Close shuts it down.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}

	cc := cfg.Client
	o := &options{
		cfg: http.Config{
			APIKey:        cc.APIKey,
			JWTToken:      cc.JWTToken,
			BaseURL:       cc.BaseURL,
			Timeout:       cc.Timeout,
			RetryAttempts: cc.Retry.Attempts,
			RetryDelay:    cc.Retry.Delay,
		},
		dimensions: cc.Embedding.Dimensions,
		httpOpts: []http.Option{
			http.WithLogger(logger.New(cfg.Log.Level, cfg.Log.Pretty)),
			http.WithUserAgent(cc.UserAgent),
			http.WithRateLimit(cc.RateLimit.RPS, cc.RateLimit.Burst),
		},
	}

	if cfg.Observability.Enabled {
		provider, err := observability.NewProvider(&cfg.Observability)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize observability: %w", err)
		}
		o.provider = provider
		o.httpOpts = append(o.httpOpts,
			http.WithTracerProvider(provider.TracerProvider()),
			http.WithMeterProvider(provider.MeterProvider()),
		)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	c, err := build(o)
	if err != nil && o.provider != nil {
		_ = o.provider.Shutdown(context.Background())
	}
	return c, err
}

func build(o *options) (*Client, error) {
	transport, err := http.New(o.cfg, o.httpOpts...)
	if err != nil {
		return nil, err
	}
	v := validation.New(o.dimensions)
	return &Client{
		Vectors:   vectors.NewService(transport, v),
		Quantum:   quantum.NewService(transport, v),
		Tables:    tables.NewService(transport, v),
		Files:     files.NewService(transport, v),
		Events:    events.NewService(transport, v),
		Projects:  projects.NewService(transport, v),
		RLHF:      rlhf.NewService(transport, v),
		Admin:     admin.NewService(transport, v),
		Agents:    agents.NewServices(transport, v),
		transport: transport,
		validator: v,
		provider:  o.provider,
	}, nil
}

// Transport exposes the underlying client for raw calls.
func (c *Client) Transport() *http.Client {
	return c.transport
}

// SetAuthToken rotates the credential used by every service.
func (c *Client) SetAuthToken(token string, mode http.AuthMode) error {
	return c.transport.SetAuthToken(token, mode)
}

// Config returns a copy of the resolved transport configuration.
func (c *Client) Config() http.Config {
	return c.transport.Config()
}

// EmbeddingDimensions is the vector length enforced before vectors are sent.
func (c *Client) EmbeddingDimensions() int {
	return c.validator.Dimensions()
}

// WithRetry runs op under the configured retry policy.
func (c *Client) WithRetry(ctx context.Context, op func(context.Context) error) error {
	return c.transport.WithRetry(ctx, op)
}

// Close flushes and shuts down the observability provider created by
// NewFromConfig. It is a no-op otherwise.
func (c *Client) Close(ctx context.Context) error {
	if c.provider == nil {
		return nil
	}
	return c.provider.Shutdown(ctx)
}
