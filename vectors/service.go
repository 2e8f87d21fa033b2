// Package vectors stores, searches and manages embeddings in a ZeroDB project.
package vectors

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

const (
	defaultChunkSize   = 100
	defaultConcurrency = 4
)

// Service groups the vector operations.
type Service struct {
	r http.Requester
	v *validation.Validator
}

// NewService creates a vector service. A nil validator selects the default.
func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(projectID string, segments ...string) string {
	return route.Project(projectID, append([]string{"database", "vectors"}, segments...)...)
}

// Upsert stores a single vector. An empty namespace becomes DefaultNamespace.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*UpsertResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.Namespace == "" {
		req.Namespace = DefaultNamespace
	}
	var out UpsertResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "upsert"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchUpsert stores several vectors in one request. Every embedding is
// validated before anything is sent.
func (s *Service) BatchUpsert(ctx context.Context, req BatchUpsertRequest) (*BatchUpsertResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.Namespace == "" {
		req.Namespace = DefaultNamespace
	}
	var out BatchUpsertResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "upsert-batch"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertChunked splits a large batch into chunks and sends them concurrently.
// The first failing chunk cancels the rest and its error is returned.
// Results are merged in chunk order.
func (s *Service) UpsertChunked(ctx context.Context, req BatchUpsertRequest, opts ChunkOptions) (*BatchUpsertResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	size := opts.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	chunks := (len(req.Vectors) + size - 1) / size
	results := make([]*BatchUpsertResponse, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < chunks; i++ {
		end := min((i+1)*size, len(req.Vectors))
		chunk := BatchUpsertRequest{
			ProjectID: req.ProjectID,
			Namespace: req.Namespace,
			Vectors:   req.Vectors[i*size : end],
		}
		g.Go(func() error {
			resp, err := s.BatchUpsert(gctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d of %d: %w", i+1, chunks, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &BatchUpsertResponse{}
	for _, r := range results {
		merged.VectorIDs = append(merged.VectorIDs, r.VectorIDs...)
		merged.SuccessCount += r.SuccessCount
		merged.ErrorCount += r.ErrorCount
		merged.Errors = append(merged.Errors, r.Errors...)
		merged.TotalTimeMS += r.TotalTimeMS
	}
	return merged, nil
}

// Search finds the vectors nearest to the query vector.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.Limit == 0 {
		req.Limit = DefaultSearchLimit
	}
	if req.Namespace == "" {
		req.Namespace = DefaultNamespace
	}
	var out SearchResult
	if err := s.r.Post(ctx, path(req.ProjectID, "search"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a vector. An empty namespace is omitted from the query.
func (s *Service) Get(ctx context.Context, projectID, vectorID, namespace string) (*Vector, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("vector_id", vectorID); err != nil {
		return nil, err
	}
	var out Vector
	if err := s.r.Get(ctx, path(projectID, vectorID), &out, namespaceOption(namespace)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a vector.
func (s *Service) Delete(ctx context.Context, projectID, vectorID, namespace string) (*DeleteResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("vector_id", vectorID); err != nil {
		return nil, err
	}
	var out DeleteResponse
	if err := s.r.Delete(ctx, path(projectID, vectorID), &out, namespaceOption(namespace)); err != nil {
		return nil, err
	}
	return &out, nil
}

// List pages through stored vectors.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Vector, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out []Vector
	if err := s.r.Get(ctx, path(req.ProjectID), &out, http.WithQuery(validation.Query(req))); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats summarizes vector storage for a project.
func (s *Service) Stats(ctx context.Context, projectID string) (*Stats, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out Stats
	if err := s.r.Get(ctx, path(projectID, "stats"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIndex starts building a search index.
func (s *Service) CreateIndex(ctx context.Context, req CreateIndexRequest) (*CreateIndexResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out CreateIndexResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "indexes"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Optimize runs a storage optimization.
func (s *Service) Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out OptimizeResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "optimize"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export writes a namespace to a downloadable file.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*ExportResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out ExportResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "export"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func namespaceOption(namespace string) http.RequestOption {
	if namespace == "" {
		return nil
	}
	return http.WithQueryParam("namespace", namespace)
}
