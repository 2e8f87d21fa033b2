package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProjectID = "550e8400-e29b-41d4-a716-446655440000"

type sampleRequest struct {
	Name     string         `json:"name" validate:"required"`
	Project  string         `param:"project_id" json:"-" validate:"project_id"`
	Vector   []float64      `json:"vector" validate:"required,embedding"`
	Rating   int            `json:"rating" validate:"gte=1,lte=5"`
	Severity string         `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Ignored  string         `json:"-"`
}

func vec(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.1
	}
	return out
}

func TestIsProjectID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"v4", validProjectID, true},
		{"v1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"uppercase", "550E8400-E29B-41D4-A716-446655440000", true},
		{"empty", "", false},
		{"not a uuid", "project-123", false},
		{"braced", "{550e8400-e29b-41d4-a716-446655440000}", false},
		{"version 7", "01890a5d-ac96-774b-bcce-b302099a8057", false},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", false},
		{"microsoft variant", "550e8400-e29b-41d4-c716-446655440000", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProjectID(tt.id))
		})
	}
}

func TestValidatorProjectID(t *testing.T) {
	v := Default()
	assert.NoError(t, v.ProjectID(validProjectID))

	err := v.ProjectID("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"project_id"}, verr.Fields())
}

func TestValidatorEmbedding(t *testing.T) {
	v := New(4)
	assert.Equal(t, 4, v.Dimensions())
	assert.NoError(t, v.Embedding("query_vector", vec(4)))

	tests := []struct {
		name string
		in   []float64
		msg  string
	}{
		{"too short", vec(3), "expected 4 dimensions, got 3"},
		{"nil", nil, "expected 4 dimensions, got 0"},
		{"nan", []float64{0, math.NaN(), 0, 0}, "index 1 is not finite"},
		{"inf", []float64{0, 0, 0, math.Inf(-1)}, "index 3 is not finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Embedding("query_vector", tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewDefaultsDimensions(t *testing.T) {
	assert.Equal(t, DefaultEmbeddingDimensions, New(0).Dimensions())
	assert.Equal(t, DefaultEmbeddingDimensions, New(-3).Dimensions())
}

func TestValidatorStruct(t *testing.T) {
	v := New(3)

	ok := sampleRequest{Name: "n", Project: validProjectID, Vector: vec(3), Rating: 5}
	assert.NoError(t, v.Struct(ok))
	assert.NoError(t, v.Struct(&ok))

	bad := sampleRequest{Project: "x", Vector: vec(2), Rating: 9, Severity: "urgent"}
	err := v.Struct(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"name", "project_id", "vector", "rating", "severity"}, verr.Fields())
	assert.Contains(t, err.Error(), "5 errors")
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "severity must be one of [low medium high critical]")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, DefaultEmbeddingDimensions, OrDefault(nil).Dimensions())
	v := New(8)
	assert.Same(t, v, OrDefault(v))
}

func TestValidatorStructRejectsNonStruct(t *testing.T) {
	err := Default().Struct("not a struct")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestConfirm(t *testing.T) {
	assert.NoError(t, Confirm(true, "delete table"))
	err := Confirm(false, "delete table")
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Contains(t, err.Error(), "delete table")
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("vector_id", "v1"))
	for _, blank := range []string{"", "  "} {
		err := Required("vector_id", blank)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, []string{"vector_id"}, verr.Fields())
		assert.Equal(t, "required", verr.Errors[0].Rule)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
	one := &Error{Errors: []FieldError{{Field: "a", Message: "a is required"}}}
	assert.Equal(t, "validation failed: a is required", one.Error())
}
