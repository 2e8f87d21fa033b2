package quantum

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainative/zerodb-go/internal/testutil"
	"github.com/ainative/zerodb-go/testing/mocks"
	"github.com/ainative/zerodb-go/validation"
)

const basePath = "/api/v1/zerodb/" + testutil.ProjectID + "/quantum/"

func newService() (*Service, *mocks.MockRequester) {
	m := &mocks.MockRequester{}
	return NewService(m, testutil.Validator()), m
}

func vec() []float64 {
	return testutil.Embedding(testutil.TestDimensions, 0.5)
}

func TestCompressDefaults(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("POST", basePath+"compress").Return(CompressResponse{CompressedSize: 2, OriginalSize: 4}, nil)

	resp, err := svc.Compress(context.Background(), CompressRequest{ProjectID: testutil.ProjectID, Embedding: vec()})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CompressedSize)

	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.EqualValues(t, DefaultCompressionRatio, body["compression_ratio"])
	assert.Equal(t, true, body["preserve_semantics"])
}

func TestCompressKeepsExplicitValues(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("POST", basePath+"compress").Return(CompressResponse{}, nil)

	off := false
	_, err := svc.Compress(context.Background(), CompressRequest{
		ProjectID: testutil.ProjectID, Embedding: vec(), CompressionRatio: 0.4, PreserveSemantics: &off,
	})
	require.NoError(t, err)
	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.EqualValues(t, 0.4, body["compression_ratio"])
	assert.Equal(t, false, body["preserve_semantics"])
}

func TestCompressRejectsRatioOutOfRange(t *testing.T) {
	svc, m := newService()
	_, err := svc.Compress(context.Background(), CompressRequest{ProjectID: testutil.ProjectID, Embedding: vec(), CompressionRatio: 0.95})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
	assert.Empty(t, m.Requests())
}

func TestSimilarityValidatesBothVectors(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()

	_, err := svc.HybridSimilarity(ctx, HybridSimilarityRequest{
		ProjectID: testutil.ProjectID, QueryVector: vec(), CandidateVector: testutil.Embedding(2, 1),
	})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"candidate_vector"}, verr.Fields())

	_, err = svc.KernelSimilarity(ctx, KernelSimilarityRequest{
		ProjectID: testutil.ProjectID, Vector1: nil, Vector2: vec(),
	})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"vector1"}, verr.Fields())
	assert.Empty(t, m.Requests())
}

func TestEndpoints(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("POST", basePath+"decompress").Return(DecompressResponse{QualityScore: 0.9}, nil)
	m.ExpectCall("POST", basePath+"hybrid-similarity").Return(HybridSimilarityResponse{SimilarityScore: 0.8}, nil)
	m.ExpectCall("POST", basePath+"optimize-space").Return(OptimizeSpaceResponse{OptimizationApplied: true}, nil)
	m.ExpectCall("POST", basePath+"feature-map").Return(FeatureMapResponse{FeatureSpaceDimension: 8}, nil)
	m.ExpectCall("POST", basePath+"kernel-similarity").Return(KernelSimilarityResponse{KernelValue: 0.7}, nil)

	d, err := svc.Decompress(ctx, DecompressRequest{ProjectID: testutil.ProjectID, CompressedEmbedding: []float64{1, 2}})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, d.QualityScore, 1e-9)

	h, err := svc.HybridSimilarity(ctx, HybridSimilarityRequest{ProjectID: testutil.ProjectID, QueryVector: vec(), CandidateVector: vec()})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, h.SimilarityScore, 1e-9)
	assert.Nil(t, h.MetadataComponent)

	o, err := svc.OptimizeSpace(ctx, OptimizeSpaceRequest{ProjectID: testutil.ProjectID})
	require.NoError(t, err)
	assert.True(t, o.OptimizationApplied)
	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.EqualValues(t, DefaultSampleCount, body["sample_count"])

	f, err := svc.FeatureMap(ctx, FeatureMapRequest{ProjectID: testutil.ProjectID, Embedding: vec()})
	require.NoError(t, err)
	assert.Equal(t, 8, f.FeatureSpaceDimension)

	k, err := svc.KernelSimilarity(ctx, KernelSimilarityRequest{ProjectID: testutil.ProjectID, Vector1: vec(), Vector2: vec()})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, k.KernelValue, 1e-9)
	m.AssertExpectations(t)
}
