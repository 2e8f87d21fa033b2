package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ainative/zerodb-go/trace"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	headerUserAgent   = "User-Agent"
	headerRetryAfter  = "Retry-After"
	contentTypeJSON   = "application/json"
)

func validateRequest(req *Request) error {
	switch {
	case req == nil:
		return newError(RequestError, "request cannot be nil", nil)
	case req.Method == "":
		return newError(RequestError, "request method is required", nil)
	case req.Path == "":
		return newError(RequestError, "request path is required", nil)
	}
	return nil
}

// resolveURL joins path onto the base URL unless it is already absolute.
func (c *Client) resolveURL(path string, query url.Values) (string, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		raw = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", newError(RequestError, "invalid request URL", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// buildRequest is the outbound half of the pipeline: URL, body, headers, interceptors.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	target, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, newError(RequestError, "failed to encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, newError(RequestError, "failed to create request", err)
	}

	c.injectHeaders(ctx, httpReq.Header, req.Headers)

	for _, interceptor := range c.interceptors {
		if err := interceptor(ctx, httpReq); err != nil {
			return nil, newError(RequestError, "request interceptor failed", err)
		}
	}
	// Interceptors see the credential but never replace it.
	c.creds.apply(httpReq.Header)
	return httpReq, nil
}

// injectHeaders applies headers in precedence order; the credential is written
// after per-call headers so it cannot be overridden by accident.
func (c *Client) injectHeaders(ctx context.Context, h nethttp.Header, perCall map[string]string) {
	h.Set(headerContentType, contentTypeJSON)
	h.Set(headerAccept, contentTypeJSON)
	h.Set(headerUserAgent, c.userAgent)
	for k, v := range c.defaultHeaders {
		h.Set(k, v)
	}

	h.Set(trace.HeaderRequestTime, trace.FormatRequestTime(time.Now()))
	h.Set(trace.HeaderXRequestID, trace.EnsureRequestID(ctx))
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))

	for k, v := range perCall {
		h.Set(k, v)
	}
	c.creds.apply(h)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyTransportError handles failures where no HTTP response was received.
func classifyTransportError(err error, timeout time.Duration) *Error {
	if isTimeout(err) {
		e := newError(TimeoutError, fmt.Sprintf("request timed out after %v", timeout), err)
		e.StatusCode = nethttp.StatusRequestTimeout
		return e
	}
	if errors.Is(err, context.Canceled) {
		return newError(NetworkError, "request canceled", err)
	}
	return newError(NetworkError, "no response received from server", err)
}

// classifyResponse is the inbound half of the pipeline. It returns nil for 2xx.
func classifyResponse(resp *Response) *Error {
	if IsSuccessStatus(resp.StatusCode) {
		return nil
	}

	payload := parseErrorBody(resp.Body)
	e := &Error{
		Message:    payload.message(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Code:       payload.code(),
		Details:    payload.details(),
		Body:       resp.Body,
	}

	switch resp.StatusCode {
	case nethttp.StatusUnauthorized:
		e.Type = AuthenticationError
	case nethttp.StatusForbidden:
		e.Type = AuthorizationError
	case nethttp.StatusNotFound:
		e.Type = NotFoundError
	case nethttp.StatusUnprocessableEntity:
		e.Type = ValidationError
		e.ValidationErrors = payload.validationErrors()
	case nethttp.StatusTooManyRequests:
		e.Type = RateLimitError
		e.RetryAfterSeconds = parseRetryAfter(resp.Headers.Get(headerRetryAfter))
	default:
		e.Type = GenericError
	}
	return e
}

// parseRetryAfter accepts the delta-seconds form only.
func parseRetryAfter(value string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// errorBody is a decoded failure body; raw holds non-JSON bodies.
type errorBody struct {
	fields map[string]any
	raw    string
}

func parseErrorBody(body []byte) errorBody {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return errorBody{raw: strings.TrimSpace(string(body))}
	}
	return errorBody{fields: fields}
}

func (b errorBody) str(key string) string {
	s, _ := b.fields[key].(string)
	return s
}

// message prefers "message", then a string "detail", then a status default.
func (b errorBody) message(status int) string {
	if msg := b.str("message"); msg != "" {
		return msg
	}
	if detail := b.str("detail"); detail != "" {
		return detail
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

func (b errorBody) code() string {
	return b.str("code")
}

func (b errorBody) details() any {
	if b.fields == nil {
		if b.raw == "" {
			return nil
		}
		return b.raw
	}
	if d, ok := b.fields["details"]; ok && d != nil {
		return d
	}
	return b.fields
}

// validationErrors reads details.errors (or top-level errors) as field -> messages,
// and also understands the detail: [{loc, msg}] list form.
func (b errorBody) validationErrors() map[string][]string {
	out := make(map[string][]string)

	source := b.fields
	if d, ok := b.fields["details"].(map[string]any); ok {
		source = d
	}
	if errs, ok := source["errors"].(map[string]any); ok {
		for field, v := range errs {
			out[field] = append(out[field], toStrings(v)...)
		}
	}

	if items, ok := b.fields["detail"].([]any); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			msg, _ := entry["msg"].(string)
			field := "_"
			if loc, ok := entry["loc"].([]any); ok && len(loc) > 0 {
				field = fmt.Sprint(loc[len(loc)-1])
			}
			out[field] = append(out[field], msg)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(t)}
	}
}
