// Package http is the transport core of the ZeroDB client.
//
// A Client owns the resolved connection settings, the active credential and
// an explicit request pipeline:
//   - header injection (content type, X-Request-Time, X-Request-ID, trace
//     context, exactly one of X-API-Key or Authorization: Bearer)
//   - error classification into *Error with a single ErrorType
//
// Verbs never retry on their own. Wrap calls with Retry, WithRetry or
// Client.WithRetry to apply exponential backoff: the delay before retry n is
// RetryDelay * 2^(n-1), every error is retried, and the last error is
// returned unchanged once attempts are exhausted.
//
// Credentials can be rotated at runtime with SetAuthToken; the swap is
// atomic with respect to in-flight request construction.
package http
