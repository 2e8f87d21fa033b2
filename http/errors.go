package http

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"time"
)

// ErrorType is the classification tag carried by every *Error.
type ErrorType string

const (
	AuthConfigError     ErrorType = "auth_configuration"
	TimeoutError        ErrorType = "timeout"
	NetworkError        ErrorType = "network"
	AuthenticationError ErrorType = "authentication"
	AuthorizationError  ErrorType = "authorization"
	NotFoundError       ErrorType = "not_found"
	ValidationError     ErrorType = "validation"
	RateLimitError      ErrorType = "rate_limit"
	GenericError        ErrorType = "generic"
	// RequestError marks failures to build or send a request locally.
	RequestError ErrorType = "request"
	// DecodeError marks a successful response whose body could not be decoded.
	DecodeError ErrorType = "decode"
)

// Sentinel errors matched by (*Error).Is, so callers can use errors.Is(err, ErrNotFound).
var (
	ErrAuthConfiguration = errors.New("zerodb: authentication not configured")
	ErrTimeout           = errors.New("zerodb: request timed out")
	ErrNetwork           = errors.New("zerodb: network failure")
	ErrUnauthorized      = errors.New("zerodb: authentication failed")
	ErrForbidden         = errors.New("zerodb: access denied")
	ErrNotFound          = errors.New("zerodb: resource not found")
	ErrValidation        = errors.New("zerodb: validation failed")
	ErrRateLimited       = errors.New("zerodb: rate limit exceeded")
	ErrServer            = errors.New("zerodb: request failed")
	ErrInvalidRequest    = errors.New("zerodb: invalid request")
	ErrDecode            = errors.New("zerodb: invalid response body")
)

var sentinels = map[ErrorType]error{
	AuthConfigError:     ErrAuthConfiguration,
	TimeoutError:        ErrTimeout,
	NetworkError:        ErrNetwork,
	AuthenticationError: ErrUnauthorized,
	AuthorizationError:  ErrForbidden,
	NotFoundError:       ErrNotFound,
	ValidationError:     ErrValidation,
	RateLimitError:      ErrRateLimited,
	GenericError:        ErrServer,
	RequestError:        ErrInvalidRequest,
	DecodeError:         ErrDecode,
}

// Error is the classified failure returned by every Client call.
type Error struct {
	Type    ErrorType
	Message string
	// StatusCode is the HTTP status, 408 for timeouts, and 0 when no exchange happened.
	StatusCode int
	// Code is the server's machine-readable error code, when supplied.
	Code string
	// Details holds the decoded "details" field, or the whole decoded body.
	Details any
	// Body is the raw response body.
	Body []byte
	// RetryAfterSeconds is parsed from a numeric Retry-After header on 429 responses.
	RetryAfterSeconds int
	// ValidationErrors maps field names to messages on 422 responses.
	ValidationErrors map[string][]string
	// Err is the underlying transport or decoding cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's type.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Type]
	return ok && s == target
}

// RetryAfter returns the server-requested wait, if one was supplied.
func (e *Error) RetryAfter() (time.Duration, bool) {
	if e.RetryAfterSeconds <= 0 {
		return 0, false
	}
	return time.Duration(e.RetryAfterSeconds) * time.Second, true
}

func newError(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Err: cause}
}

// TypeOf returns the classification of err, or "" when err is not an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// IsHTTPStatusError checks if an error carries a specific HTTP status code
func IsHTTPStatusError(err error, statusCode int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == statusCode
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsRetryable reports whether err is usually transient: timeouts, network
// failures, rate limiting and 5xx responses. Retry does not consult it;
// callers can use it to guard their own retry loops.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Type {
	case TimeoutError, NetworkError, RateLimitError:
		return true
	case GenericError:
		return e.StatusCode >= nethttp.StatusInternalServerError
	default:
		return false
	}
}
