package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"prefix only", nil, "/api/v1"},
		{"plain", []string{"admin", "health"}, "/api/v1/admin/health"},
		{"escapes slash", []string{"rlhf", "sessions", "a/b", "interactions"}, "/api/v1/rlhf/sessions/a%2Fb/interactions"},
		{"escapes query chars", []string{"tables", "t?x=1"}, "/api/v1/tables/t%3Fx=1"},
		{"skips empty", []string{"admin", "", "health"}, "/api/v1/admin/health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Path(tt.segments...))
		})
	}
}

func TestProject(t *testing.T) {
	assert.Equal(t,
		"/api/v1/zerodb/p1/database/vectors/upsert",
		Project("p1", "database", "vectors", "upsert"))
}
