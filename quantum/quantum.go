// Package quantum calls ZeroDB's quantum-inspired compression and similarity
// endpoints.
package quantum

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

const (
	// DefaultCompressionRatio applies when CompressRequest.CompressionRatio is zero.
	DefaultCompressionRatio = 0.6
	// DefaultSampleCount applies when OptimizeSpaceRequest.SampleCount is zero.
	DefaultSampleCount = 100
)

type CompressRequest struct {
	ProjectID        string    `param:"project_id" json:"-" validate:"project_id"`
	Embedding        []float64 `json:"embedding" validate:"embedding"`
	CompressionRatio float64   `json:"compression_ratio" validate:"omitempty,gte=0.3,lte=0.8"`
	// PreserveSemantics defaults to true when nil.
	PreserveSemantics *bool `json:"preserve_semantics"`
}

type CompressResponse struct {
	CompressedEmbedding []float64 `json:"compressed_embedding"`
	OriginalSize        int       `json:"original_size"`
	CompressedSize      int       `json:"compressed_size"`
	CompressionAchieved float64   `json:"compression_achieved"`
}

type DecompressRequest struct {
	ProjectID           string    `param:"project_id" json:"-" validate:"project_id"`
	CompressedEmbedding []float64 `json:"compressed_embedding" validate:"required"`
}

type DecompressResponse struct {
	Embedding           []float64 `json:"embedding"`
	QualityScore        float64   `json:"quality_score"`
	DecompressionTimeMS float64   `json:"decompression_time_ms"`
}

type HybridSimilarityRequest struct {
	ProjectID       string         `param:"project_id" json:"-" validate:"project_id"`
	QueryVector     []float64      `json:"query_vector" validate:"embedding"`
	CandidateVector []float64      `json:"candidate_vector" validate:"embedding"`
	MetadataBoost   map[string]any `json:"metadata_boost,omitempty"`
}

type HybridSimilarityResponse struct {
	SimilarityScore   float64  `json:"similarity_score"`
	CosineComponent   float64  `json:"cosine_component"`
	QuantumComponent  float64  `json:"quantum_component"`
	MetadataComponent *float64 `json:"metadata_component,omitempty"`
}

type OptimizeSpaceRequest struct {
	ProjectID   string `param:"project_id" json:"-" validate:"project_id"`
	SampleCount int    `json:"sample_count" validate:"gte=0"`
}

type OptimizeSpaceResponse struct {
	OptimizationApplied   bool      `json:"optimization_applied"`
	CompressionEfficiency float64   `json:"compression_efficiency"`
	CircuitDepth          int       `json:"circuit_depth"`
	RotationAngles        []float64 `json:"rotation_angles"`
}

type FeatureMapRequest struct {
	ProjectID string    `param:"project_id" json:"-" validate:"project_id"`
	Embedding []float64 `json:"embedding" validate:"embedding"`
}

type FeatureMapResponse struct {
	MappedEmbedding       []float64 `json:"mapped_embedding"`
	FeatureSpaceDimension int       `json:"feature_space_dimension"`
	MappingTimeMS         float64   `json:"mapping_time_ms"`
}

type KernelSimilarityRequest struct {
	ProjectID string    `param:"project_id" json:"-" validate:"project_id"`
	Vector1   []float64 `json:"vector1" validate:"embedding"`
	Vector2   []float64 `json:"vector2" validate:"embedding"`
}

type KernelSimilarityResponse struct {
	KernelValue       float64 `json:"kernel_value"`
	InterferenceTerm  float64 `json:"interference_term"`
	ComputationTimeMS float64 `json:"computation_time_ms"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

// post validates req and posts it to /zerodb/{project}/quantum/{op}.
func post[T any](ctx context.Context, s *Service, projectID, op string, req any) (*T, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out T
	if err := s.r.Post(ctx, route.Project(projectID, "quantum", op), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compress reduces an embedding's size.
func (s *Service) Compress(ctx context.Context, req CompressRequest) (*CompressResponse, error) {
	if req.CompressionRatio == 0 {
		req.CompressionRatio = DefaultCompressionRatio
	}
	if req.PreserveSemantics == nil {
		preserve := true
		req.PreserveSemantics = &preserve
	}
	return post[CompressResponse](ctx, s, req.ProjectID, "compress", req)
}

func (s *Service) Decompress(ctx context.Context, req DecompressRequest) (*DecompressResponse, error) {
	return post[DecompressResponse](ctx, s, req.ProjectID, "decompress", req)
}

// HybridSimilarity scores a candidate against a query with cosine and quantum terms.
func (s *Service) HybridSimilarity(ctx context.Context, req HybridSimilarityRequest) (*HybridSimilarityResponse, error) {
	return post[HybridSimilarityResponse](ctx, s, req.ProjectID, "hybrid-similarity", req)
}

func (s *Service) OptimizeSpace(ctx context.Context, req OptimizeSpaceRequest) (*OptimizeSpaceResponse, error) {
	if req.SampleCount == 0 {
		req.SampleCount = DefaultSampleCount
	}
	return post[OptimizeSpaceResponse](ctx, s, req.ProjectID, "optimize-space", req)
}

func (s *Service) FeatureMap(ctx context.Context, req FeatureMapRequest) (*FeatureMapResponse, error) {
	return post[FeatureMapResponse](ctx, s, req.ProjectID, "feature-map", req)
}

func (s *Service) KernelSimilarity(ctx context.Context, req KernelSimilarityRequest) (*KernelSimilarityResponse, error) {
	return post[KernelSimilarityResponse](ctx, s, req.ProjectID, "kernel-similarity", req)
}
