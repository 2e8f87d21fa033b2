// Package testutil provides shared fixtures for ZeroDB package tests.
package testutil

import "github.com/ainative/zerodb-go/validation"

const (
	// ProjectID is a valid version 4 project identifier.
	ProjectID = "550e8400-e29b-41d4-a716-446655440000"

	// InvalidProjectID fails project ID validation.
	InvalidProjectID = "not-a-project"

	// TestError is a generic error message for failure scenarios.
	TestError = "test error"

	// TestDimensions keeps embeddings in tests short.
	TestDimensions = 4
)

// Embedding returns a vector of n copies of value.
func Embedding(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Validator returns a validator expecting TestDimensions-sized embeddings.
func Validator() *validation.Validator {
	return validation.New(TestDimensions)
}
