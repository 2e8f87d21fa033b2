package http

import (
	"context"
	nethttp "net/http"
	"net/url"
	"time"
)

// Requester is the verb surface resource services depend on. Every method
// decodes a successful JSON body into out (when out is non-nil) and returns
// an *Error on failure.
type Requester interface {
	Get(ctx context.Context, path string, out any, opts ...RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...RequestOption) error
	Do(ctx context.Context, req *Request, out any) error
}

// Request describes a single call relative to the configured base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
	// Timeout overrides the configured timeout for this call when positive.
	Timeout time.Duration
}

// RequestOption adjusts a Request before it is sent.
type RequestOption func(*Request)

// Response represents an HTTP response with tracking information
type Response struct {
	StatusCode int
	Body       []byte
	Headers    nethttp.Header
	Stats      Stats
}

// Stats contains request execution statistics
type Stats struct {
	ElapsedTime time.Duration
	CallCount   int64
}

// RequestInterceptor runs after the built-in headers are applied and before
// the request is sent. Returning an error aborts the call with a RequestError.
type RequestInterceptor func(ctx context.Context, req *nethttp.Request) error

// NewRequest resolves opts into a Request. Verbs use it internally and test
// doubles use it to inspect what a service asked for.
func NewRequest(method, path string, body any, opts ...RequestOption) *Request {
	req := &Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		if opt != nil {
			opt(req)
		}
	}
	return req
}

// WithQuery merges values into the request query string.
func WithQuery(values url.Values) RequestOption {
	return func(r *Request) {
		if len(values) == 0 {
			return
		}
		if r.Query == nil {
			r.Query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				r.Query.Add(k, v)
			}
		}
	}
}

// WithQueryParam sets a single query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = url.Values{}
		}
		r.Query.Set(key, value)
	}
}

// WithHeader sets a per-call header. Credential headers set this way are
// replaced by the client's active credential.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithBody attaches a JSON body, typically to a DELETE.
func WithBody(body any) RequestOption {
	return func(r *Request) {
		r.Body = body
	}
}

// WithTimeout overrides the configured timeout for one call.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = timeout
	}
}
