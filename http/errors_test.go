package http

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	e := &Error{Type: NotFoundError, Message: "vector missing", StatusCode: 404}
	assert.Equal(t, "not_found error: vector missing (status: 404)", e.Error())

	wrapped := &Error{Type: NetworkError, Message: "no response received from server", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "network error: no response received from server: unexpected EOF", wrapped.Error())
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
}

func TestErrorSentinelsMatchOnlyTheirType(t *testing.T) {
	e := &Error{Type: RateLimitError}
	assert.ErrorIs(t, e, ErrRateLimited)
	assert.NotErrorIs(t, e, ErrNotFound)

	// survives wrapping by callers
	outer := fmt.Errorf("upsert: %w", e)
	assert.ErrorIs(t, outer, ErrRateLimited)
	assert.Equal(t, RateLimitError, TypeOf(outer))
	assert.True(t, IsErrorType(outer, RateLimitError))
}

func TestTypeOfForeignErrors(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.False(t, IsErrorType(nil, GenericError))
	assert.False(t, IsHTTPStatusError(errors.New("plain"), 500))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&Error{Type: TimeoutError, StatusCode: 408}, true},
		{&Error{Type: NetworkError}, true},
		{&Error{Type: RateLimitError, StatusCode: 429}, true},
		{&Error{Type: GenericError, StatusCode: 503}, true},
		{&Error{Type: GenericError, StatusCode: 409}, false},
		{&Error{Type: NotFoundError, StatusCode: 404}, false},
		{&Error{Type: ValidationError, StatusCode: 422}, false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryable(tt.err), "%v", tt.err)
	}
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, IsSuccessStatus(200))
	assert.True(t, IsSuccessStatus(204))
	assert.False(t, IsSuccessStatus(199))
	assert.False(t, IsSuccessStatus(301))
}
