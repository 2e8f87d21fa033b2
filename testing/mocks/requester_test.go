package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainative/zerodb-go/http"
)

func TestMockRequesterFillsOut(t *testing.T) {
	m := &MockRequester{}
	m.ExpectCall("POST", "/api/v1/things").Return(map[string]any{"id": "t1", "count": 2}, nil)

	var out struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	err := m.Post(context.Background(), "/api/v1/things", map[string]string{"name": "x"}, &out,
		http.WithQueryParam("dry_run", "true"))
	require.NoError(t, err)
	assert.Equal(t, "t1", out.ID)
	assert.Equal(t, 2, out.Count)

	req := m.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "true", req.Query.Get("dry_run"))
	body, err := BodyAs(req)
	require.NoError(t, err)
	assert.Equal(t, "x", body["name"])
	m.AssertExpectations(t)
}

func TestMockRequesterReturnsError(t *testing.T) {
	m := &MockRequester{}
	boom := errors.New("boom")
	m.ExpectCall("DELETE", "/api/v1/things/1").Return(nil, boom)

	err := m.Delete(context.Background(), "/api/v1/things/1", nil)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.Requests(), 1)
}

func TestMockRequesterRawBytes(t *testing.T) {
	m := &MockRequester{}
	m.ExpectCall("GET", "/raw").Return("plain text", nil)

	var raw []byte
	require.NoError(t, m.Get(context.Background(), "/raw", &raw))
	assert.Equal(t, "plain text", string(raw))
}
