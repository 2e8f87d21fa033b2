package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func newTelemetry(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider, *sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})
	return exporter, tp, reader, mp
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return metricdata.Metrics{}
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRequestSpans(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(nethttp.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	exporter, tp, _, mp := newTelemetry(t)
	c := newTestClient(t, srv.URL, Config{}, WithTracerProvider(tp), WithMeterProvider(mp))

	require.NoError(t, c.Get(context.Background(), "/ok", nil))
	require.Error(t, c.Get(context.Background(), "/missing", nil))

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "zerodb.http GET", ok.Name())
	assert.Equal(t, oteltrace.SpanKindClient, ok.SpanKind())
	assert.Equal(t, codes.Ok, ok.Status().Code)
	status, found := spanAttr(ok, attrStatusCode)
	require.True(t, found)
	assert.Equal(t, int64(200), status.AsInt64())

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	errType, found := spanAttr(failed, attrErrorType)
	require.True(t, found)
	assert.Equal(t, string(NotFoundError), errType.AsString())
	assert.NotEmpty(t, failed.Events(), "error event recorded")
}

func TestRequestMetrics(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, tp, reader, mp := newTelemetry(t)
	c := newTestClient(t, srv.URL, Config{}, WithTracerProvider(tp), WithMeterProvider(mp))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Post(context.Background(), "/x", map[string]any{"i": i}, nil))
	}

	requests := findMetric(t, reader, metricRequests)
	sum, ok := requests.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	method, found := sum.DataPoints[0].Attributes.Value(attrMethod)
	require.True(t, found)
	assert.Equal(t, nethttp.MethodPost, method.AsString())

	duration := findMetric(t, reader, metricDuration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
}

func TestRetryMetric(t *testing.T) {
	_, tp, reader, mp := newTelemetry(t)
	c := newTestClient(t, "http://zerodb.invalid", Config{RetryAttempts: 3}, WithTracerProvider(tp), WithMeterProvider(mp))
	c.sleep = (&sleepRecorder{}).sleep

	err := c.WithRetry(context.Background(), func(context.Context) error {
		return &Error{Type: RateLimitError, StatusCode: 429}
	})
	require.Error(t, err)

	retries := findMetric(t, reader, metricRetries)
	sum, ok := retries.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
		errType, _ := dp.Attributes.Value(attrErrorType)
		assert.Equal(t, string(RateLimitError), errType.AsString())
	}
	assert.Equal(t, int64(2), total)
}
