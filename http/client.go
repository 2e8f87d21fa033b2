package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/ainative/zerodb-go/logger"
)

const (
	// DefaultBaseURL is the hosted ZeroDB API endpoint
	DefaultBaseURL = "https://api.ainative.studio"

	// DefaultTimeout is the default request timeout duration
	DefaultTimeout = 30 * time.Second

	// DefaultRetryAttempts is the default attempt budget for WithRetry
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the base delay for exponential backoff
	DefaultRetryDelay = 1 * time.Second

	// DefaultUserAgent identifies the client on every request
	DefaultUserAgent = "zerodb-go"
)

// Config holds the connection settings. Zero or negative values are replaced
// by defaults at construction.
type Config struct {
	APIKey        string
	JWTToken      string
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}

// Option customizes a Client beyond its Config.
type Option func(*settings)

type settings struct {
	logger         logger.Logger
	httpClient     *nethttp.Client
	interceptors   []RequestInterceptor
	headers        map[string]string
	userAgent      string
	limiter        *rate.Limiter
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithLogger sets the logger; the default discards output.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to supply a custom transport.
func WithHTTPClient(hc *nethttp.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// WithRequestInterceptor appends an interceptor run after the built-in headers.
// Credential headers it sets are overwritten by the client's active credential.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(s *settings) {
		if interceptor != nil {
			s.interceptors = append(s.interceptors, interceptor)
		}
	}
}

// WithDefaultHeader adds a header sent with every request.
func WithDefaultHeader(key, value string) Option {
	return func(s *settings) {
		s.headers[key] = value
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// A non-positive rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTracerProvider sets the tracer provider; defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) {
		if tp != nil {
			s.tracerProvider = tp
		}
	}
}

// WithMeterProvider sets the meter provider; defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *settings) {
		if mp != nil {
			s.meterProvider = mp
		}
	}
}

// Client is the ZeroDB transport core. It is safe for concurrent use.
type Client struct {
	httpClient     *nethttp.Client
	logger         logger.Logger
	config         Config
	creds          *credentials
	interceptors   []RequestInterceptor
	defaultHeaders map[string]string
	userAgent      string
	limiter        *rate.Limiter
	inst           *instruments
	sleep          func(context.Context, time.Duration) error
	callCount      int64
}

var _ Requester = (*Client)(nil)

// New resolves cfg against the defaults and builds a Client. It fails with an
// AuthConfigError when neither an API key nor a JWT is supplied. No network I/O
// happens here.
func New(cfg Config, opts ...Option) (*Client, error) {
	creds, err := newCredentials(cfg.APIKey, cfg.JWTToken)
	if err != nil {
		return nil, err
	}

	s := &settings{
		logger:    logger.Nop(),
		headers:   make(map[string]string),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		// Deadlines come from the per-call context so overrides can exceed the default.
		s.httpClient = &nethttp.Client{}
	}
	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}
	if s.meterProvider == nil {
		s.meterProvider = otel.GetMeterProvider()
	}

	resolved := cfg.withDefaults()
	c := &Client{
		httpClient:     s.httpClient,
		logger:         s.logger,
		config:         resolved,
		creds:          creds,
		interceptors:   s.interceptors,
		defaultHeaders: s.headers,
		userAgent:      s.userAgent,
		limiter:        s.limiter,
		inst:           newInstruments(s.tracerProvider, s.meterProvider, s.logger),
		sleep:          sleepContext,
	}

	c.logger.Debug().
		Str("base_url", resolved.BaseURL).
		Str("auth_mode", string(creds.current())).
		Dur("timeout", resolved.Timeout).
		Int("retry_attempts", resolved.RetryAttempts).
		Dur("retry_delay", resolved.RetryDelay).
		Msg("ZeroDB client configured")
	return c, nil
}

// Builder provides a fluent interface for configuring the client
type Builder struct {
	config Config
	opts   []Option
}

// NewBuilder starts from cfg; unset fields still receive defaults on Build.
func NewBuilder(cfg Config) *Builder {
	return &Builder{config: cfg}
}

// WithTimeout sets the request timeout
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithRetries sets the retry policy used by Client.WithRetry
func (b *Builder) WithRetries(attempts int, delay time.Duration) *Builder {
	b.config.RetryAttempts = attempts
	b.config.RetryDelay = delay
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(log))
	return b
}

// WithDefaultHeader adds a default header that will be sent with all requests
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.opts = append(b.opts, WithDefaultHeader(key, value))
	return b
}

// WithRequestInterceptor adds a request interceptor
func (b *Builder) WithRequestInterceptor(interceptor RequestInterceptor) *Builder {
	b.opts = append(b.opts, WithRequestInterceptor(interceptor))
	return b
}

// WithOption appends any other client option
func (b *Builder) WithOption(opt Option) *Builder {
	b.opts = append(b.opts, opt)
	return b
}

// Build creates the client with the configured options
func (b *Builder) Build() (*Client, error) {
	return New(b.config, b.opts...)
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	return c.config
}

// AuthMode reports which credential header is currently sent.
func (c *Client) AuthMode() AuthMode {
	return c.creds.current()
}

// SetAuthToken switches the active credential. Requests built after it returns
// carry only the header for mode.
func (c *Client) SetAuthToken(token string, mode AuthMode) error {
	if err := c.creds.set(token, mode); err != nil {
		return err
	}
	c.logger.Info().Str("auth_mode", string(mode)).Msg("ZeroDB credentials rotated")
	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, NewRequest(nethttp.MethodGet, path, nil, opts...), out)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, NewRequest(nethttp.MethodPost, path, body, opts...), out)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, NewRequest(nethttp.MethodPut, path, body, opts...), out)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, NewRequest(nethttp.MethodPatch, path, body, opts...), out)
}

// Delete performs a DELETE request; use WithBody for endpoints that take one.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, NewRequest(nethttp.MethodDelete, path, nil, opts...), out)
}

// Do sends req and decodes a successful JSON body into out. A *[]byte out
// receives the raw body.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	return decodeInto(resp, out)
}

// Send runs the full pipeline and returns the raw response. Non-2xx responses
// are returned alongside their classified *Error.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	timeout := c.config.Timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	// a caller deadline shorter than the timeout is the one that fires
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining < timeout {
			timeout = max(remaining, 0).Round(time.Millisecond)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := c.inst.startSpan(ctx, req)
	defer span.End()

	start := time.Now()
	callCount := atomic.AddInt64(&c.callCount, 1)

	resp, err := c.send(ctx, req, timeout)
	elapsed := time.Since(start)
	if resp != nil {
		resp.Stats = Stats{ElapsedTime: elapsed, CallCount: callCount}
	}

	c.inst.record(ctx, span, req.Method, resp, err, elapsed)
	c.logResult(req, resp, err, elapsed, callCount)
	return resp, err
}

func (c *Client) send(ctx context.Context, req *Request, timeout time.Duration) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, classifyTransportError(ctx.Err(), timeout)
			}
			// the limiter refuses waits that would outlive the deadline
			return nil, classifyTransportError(context.DeadlineExceeded, timeout)
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	c.logRequest(httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err, timeout)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyTransportError(err, timeout)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}
	if classified := classifyResponse(resp); classified != nil {
		return resp, classified
	}
	return resp, nil
}

func decodeInto(resp *Response, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = append((*raw)[:0], resp.Body...)
		return nil
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		e := newError(DecodeError, "failed to decode response body", err)
		e.StatusCode = resp.StatusCode
		e.Body = resp.Body
		return e
	}
	return nil
}

// logRequest logs the outgoing request; credential headers are masked by the logger filter.
func (c *Client) logRequest(httpReq *nethttp.Request) {
	c.logger.Debug().
		Str("direction", "outbound").
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String()).
		Interface("headers", httpReq.Header).
		Msg("ZeroDB request")
}

func (c *Client) logResult(req *Request, resp *Response, err error, elapsed time.Duration, callCount int64) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Str("error_type", errorTypeLabel(err)).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("ZeroDB request failed")
		return
	}
	c.logger.Debug().
		Str("direction", "inbound").
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Int64("call_count", callCount).
		Msg("ZeroDB response")
}
