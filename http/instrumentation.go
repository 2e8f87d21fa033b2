package http

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/ainative/zerodb-go/logger"
)

const (
	instrumentationName = "github.com/ainative/zerodb-go/http"

	metricRequests = "zerodb.client.requests"
	metricDuration = "zerodb.client.request.duration"
	metricRetries  = "zerodb.client.retries"

	attrMethod     = "http.request.method"
	attrStatusCode = "http.response.status_code"
	attrPath       = "url.path"
	attrErrorType  = "error.type"
	attrRetry      = "zerodb.retry"
)

type instruments struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
	retries  metric.Int64Counter
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider, log logger.Logger) *instruments {
	meter := mp.Meter(instrumentationName)
	fallback := metricnoop.NewMeterProvider().Meter(instrumentationName)

	requests, err := meter.Int64Counter(metricRequests,
		metric.WithDescription("Outbound ZeroDB API requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		log.Warn().Err(err).Str("metric", metricRequests).Msg("Failed to create metric")
		requests, _ = fallback.Int64Counter(metricRequests)
	}

	duration, err := meter.Float64Histogram(metricDuration,
		metric.WithDescription("Duration of outbound ZeroDB API requests"),
		metric.WithUnit("ms"))
	if err != nil {
		log.Warn().Err(err).Str("metric", metricDuration).Msg("Failed to create metric")
		duration, _ = fallback.Float64Histogram(metricDuration)
	}

	retries, err := meter.Int64Counter(metricRetries,
		metric.WithDescription("Retries scheduled by the backoff helper"),
		metric.WithUnit("{retry}"))
	if err != nil {
		log.Warn().Err(err).Str("metric", metricRetries).Msg("Failed to create metric")
		retries, _ = fallback.Int64Counter(metricRetries)
	}

	return &instruments{
		tracer:   tp.Tracer(instrumentationName),
		requests: requests,
		duration: duration,
		retries:  retries,
	}
}

func (in *instruments) startSpan(ctx context.Context, req *Request) (context.Context, trace.Span) {
	return in.tracer.Start(ctx, "zerodb.http "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(attrMethod, req.Method),
			attribute.String(attrPath, req.Path),
		))
}

// record finishes the span status and emits request metrics.
func (in *instruments) record(ctx context.Context, span trace.Span, method string, resp *Response, err error, elapsed time.Duration) {
	attrs := []attribute.KeyValue{attribute.String(attrMethod, method)}
	if resp != nil {
		attrs = append(attrs, attribute.Int(attrStatusCode, resp.StatusCode))
		span.SetAttributes(attribute.Int(attrStatusCode, resp.StatusCode))
	}
	if err != nil {
		errType := errorTypeLabel(err)
		attrs = append(attrs, attribute.String(attrErrorType, errType))
		span.SetAttributes(attribute.String(attrErrorType, errType))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	set := metric.WithAttributes(attrs...)
	in.requests.Add(ctx, 1, set)
	in.duration.Record(ctx, float64(elapsed.Microseconds())/1000.0, set)
}

func (in *instruments) recordRetry(ctx context.Context, retry int, err error) {
	in.retries.Add(ctx, 1, metric.WithAttributes(
		attribute.Int(attrRetry, retry),
		attribute.String(attrErrorType, errorTypeLabel(err)),
	))
}

func errorTypeLabel(err error) string {
	if t := TypeOf(err); t != "" {
		return string(t)
	}
	return "other"
}
