// Package trace carries per-request correlation metadata for outbound ZeroDB calls.
package trace

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "zerodb_request_id"

	// HeaderXRequestID correlates a client call with server-side logs.
	HeaderXRequestID = "X-Request-ID"
	// HeaderRequestTime carries the client send time of each request.
	HeaderRequestTime = "X-Request-Time"
)

// requestTimeLayout is ISO-8601 UTC with millisecond precision.
const requestTimeLayout = "2006-01-02T15:04:05.000Z"

// WithRequestID stores a request ID that outbound calls made with ctx will reuse.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// EnsureRequestID returns the request ID from ctx or generates a new UUID.
func EnsureRequestID(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}

// FormatRequestTime renders t the way the X-Request-Time header expects.
func FormatRequestTime(t time.Time) string {
	return t.UTC().Format(requestTimeLayout)
}
