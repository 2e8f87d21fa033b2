package trace

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	id, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-123", id)
	assert.Equal(t, "req-123", EnsureRequestID(ctx))
}

func TestRequestIDMissing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(WithRequestID(context.Background(), ""))
	assert.False(t, ok, "empty IDs are treated as absent")
}

func TestEnsureRequestIDGeneratesUUID(t *testing.T) {
	first := EnsureRequestID(context.Background())
	second := EnsureRequestID(context.Background())

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestFormatRequestTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 3, 4, 7, 8, 9, 123_456_789, loc)

	assert.Equal(t, "2025-03-04T05:08:09.123Z", FormatRequestTime(ts))
}
