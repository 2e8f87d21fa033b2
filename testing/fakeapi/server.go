// Package fakeapi runs an in-process ZeroDB API built on echo for client
// integration tests. Routes are registered per test and every request is
// recorded for later assertions.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName labels server spans emitted by the otelecho middleware.
const ServiceName = "zerodb-fakeapi"

// Recorded is a request as the server received it.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded JSON body into out.
func (r Recorded) Decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

// Option configures a Server.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider enables otelecho server spans recorded on tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// Server is a running fake API.
type Server struct {
	Echo *echo.Echo

	srv      *httptest.Server
	mu       sync.Mutex
	requests []Recorded
}

// New starts a server that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := &Server{Echo: e}

	e.Use(middleware.Recover())
	if o.tracerProvider != nil {
		e.Use(otelecho.Middleware(ServiceName,
			otelecho.WithTracerProvider(o.tracerProvider),
			otelecho.WithPropagators(propagation.NewCompositeTextMapPropagator(
				propagation.TraceContext{}, propagation.Baggage{},
			)),
		))
	}
	e.Use(s.record)

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the base URL to hand to the client.
func (s *Server) URL() string {
	return s.srv.URL
}

// Handle registers h for method and an echo route pattern such as
// /api/v1/zerodb/:project/database/vectors/:id.
func (s *Server) Handle(method, path string, h echo.HandlerFunc) {
	s.Echo.Add(method, path, h)
}

// JSON responds to method and path with status and body encoded as JSON.
func (s *Server) JSON(method, path string, status int, body any) {
	s.Handle(method, path, Respond(status, body))
}

// Fail responds with the API's error envelope.
func (s *Server) Fail(method, path string, status int, message string) {
	s.Handle(method, path, Respond(status, map[string]any{"message": message}))
}

// Sequence serves the handlers in order, repeating the last one once the
// sequence is exhausted.
func (s *Server) Sequence(method, path string, handlers ...echo.HandlerFunc) {
	var (
		mu   sync.Mutex
		next int
	)
	s.Handle(method, path, func(c echo.Context) error {
		mu.Lock()
		h := handlers[min(next, len(handlers)-1)]
		next++
		mu.Unlock()
		return h(c)
	})
}

// Respond returns a handler writing body as JSON with status.
func Respond(status int, body any) echo.HandlerFunc {
	return func(c echo.Context) error {
		if body == nil {
			return c.NoContent(status)
		}
		return c.JSON(status, body)
	}
}

// RespondWithHeader is Respond plus a response header, e.g. Retry-After.
func RespondWithHeader(status int, body any, key, value string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(key, value)
		return Respond(status, body)(c)
	}
}

// Requests returns every request received so far, in order.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails the test when none arrived.
func (s *Server) Last(t testing.TB) Recorded {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("fakeapi: no requests recorded")
	}
	return reqs[len(reqs)-1]
}

// Count reports how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: req.Method,
			Path:   req.URL.Path,
			Query:  req.URL.Query(),
			Header: req.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		return next(c)
	}
}
