package fakeapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func send(t *testing.T, method, url, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, vs := range header {
		req.Header[k] = vs
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServerRecordsRequests(t *testing.T) {
	s := New(t)
	s.JSON(http.MethodPost, "/api/v1/things/:id", http.StatusCreated, map[string]string{"id": "t1"})

	resp := send(t, http.MethodPost, s.URL()+"/api/v1/things/t1?dry_run=true", `{"name":"x"}`,
		http.Header{"X-Api-Key": {"k"}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1"}`, string(raw))

	last := s.Last(t)
	assert.Equal(t, "/api/v1/things/t1", last.Path)
	assert.Equal(t, "true", last.Query.Get("dry_run"))
	assert.Equal(t, "k", last.Header.Get("X-API-Key"))
	var body map[string]string
	require.NoError(t, last.Decode(&body))
	assert.Equal(t, "x", body["name"])
	assert.Equal(t, 1, s.Count(http.MethodPost, "/api/v1/things/t1"))
}

func TestServerSequence(t *testing.T) {
	s := New(t)
	s.Sequence(http.MethodGet, "/flaky",
		RespondWithHeader(http.StatusTooManyRequests, map[string]string{"message": "slow down"}, "Retry-After", "1"),
		Respond(http.StatusOK, map[string]bool{"ok": true}),
	)

	first := send(t, http.MethodGet, s.URL()+"/flaky", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, first.StatusCode)
	assert.Equal(t, "1", first.Header.Get("Retry-After"))
	for range 2 {
		assert.Equal(t, http.StatusOK, send(t, http.MethodGet, s.URL()+"/flaky", "", nil).StatusCode)
	}
	assert.Len(t, s.Requests(), 3)
}

func TestServerUnknownRouteIsRecorded(t *testing.T) {
	s := New(t)
	resp := send(t, http.MethodGet, s.URL()+"/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, s.Count(http.MethodGet, "/missing"))
}

func TestServerSpansContinueInboundTrace(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s := New(t, WithTracerProvider(tp))
	s.Handle(http.MethodGet, "/traced", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	ctx, parent := tp.Tracer("test").Start(context.Background(), "client")
	header := http.Header{}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(header))
	send(t, http.MethodGet, s.URL()+"/traced", "", header)
	parent.End()

	var server *tracetest.SpanStub
	spans := exporter.GetSpans()
	for i := range spans {
		if spans[i].Name == "/traced" || strings.Contains(spans[i].Name, "/traced") {
			server = &spans[i]
		}
	}
	require.NotNil(t, server)
	assert.Equal(t, parent.SpanContext().TraceID(), server.SpanContext.TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), server.Parent.SpanID())
}
