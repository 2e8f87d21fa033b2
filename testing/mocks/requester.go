// Package mocks provides testify-based test doubles for the ZeroDB transport.
package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ainative/zerodb-go/http"
)

// MockRequester implements http.Requester. Every verb resolves into an
// *http.Request and funnels through Do, so expectations are written once
// against (ctx, *http.Request). The first return value is the response
// payload, which is JSON round-tripped into the caller's out; the second is
// the error.
//
//	m := &mocks.MockRequester{}
//	m.ExpectCall("GET", "/api/v1/zerodb/projects").Return([]map[string]any{{"id": "p1"}}, nil)
//	svc := projects.NewService(m, nil)
type MockRequester struct {
	mock.Mock

	mu       sync.Mutex
	requests []*http.Request
}

var _ http.Requester = (*MockRequester)(nil)

// Get implements http.Requester
func (m *MockRequester) Get(ctx context.Context, path string, out any, opts ...http.RequestOption) error {
	return m.Do(ctx, http.NewRequest(nethttp.MethodGet, path, nil, opts...), out)
}

// Post implements http.Requester
func (m *MockRequester) Post(ctx context.Context, path string, body, out any, opts ...http.RequestOption) error {
	return m.Do(ctx, http.NewRequest(nethttp.MethodPost, path, body, opts...), out)
}

// Put implements http.Requester
func (m *MockRequester) Put(ctx context.Context, path string, body, out any, opts ...http.RequestOption) error {
	return m.Do(ctx, http.NewRequest(nethttp.MethodPut, path, body, opts...), out)
}

// Patch implements http.Requester
func (m *MockRequester) Patch(ctx context.Context, path string, body, out any, opts ...http.RequestOption) error {
	return m.Do(ctx, http.NewRequest(nethttp.MethodPatch, path, body, opts...), out)
}

// Delete implements http.Requester
func (m *MockRequester) Delete(ctx context.Context, path string, out any, opts ...http.RequestOption) error {
	return m.Do(ctx, http.NewRequest(nethttp.MethodDelete, path, nil, opts...), out)
}

// Do implements http.Requester
func (m *MockRequester) Do(ctx context.Context, req *http.Request, out any) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	arguments := m.Called(ctx, req)
	if payload := arguments.Get(0); payload != nil && out != nil {
		if err := fill(out, payload); err != nil {
			return err
		}
	}
	return arguments.Error(1)
}

// ExpectCall registers an expectation for method and path with any context.
func (m *MockRequester) ExpectCall(method, path string) *mock.Call {
	return m.On("Do", mock.Anything, MatchRequest(method, path))
}

// Requests returns every request seen so far, in order.
func (m *MockRequester) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (m *MockRequester) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// MatchRequest matches a *http.Request by method and path.
func MatchRequest(method, path string) any {
	return mock.MatchedBy(func(r *http.Request) bool {
		return r != nil && r.Method == method && r.Path == path
	})
}

// BodyAs re-decodes a request body into a generic map, the shape the
// server would see on the wire.
func BodyAs(req *http.Request) (map[string]any, error) {
	raw, err := json.Marshal(req.Body)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fill(out, payload any) error {
	if raw, ok := out.(*[]byte); ok {
		switch p := payload.(type) {
		case []byte:
			*raw = p
		case string:
			*raw = []byte(p)
		default:
			b, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("mock payload: %w", err)
			}
			*raw = b
		}
		return nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mock payload: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("mock payload into %T: %w", out, err)
	}
	return nil
}
