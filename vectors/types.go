package vectors

// DefaultNamespace is used when a request leaves Namespace empty.
const DefaultNamespace = "default"

// DefaultSearchLimit caps search results when Limit is unset.
const DefaultSearchLimit = 10

// Index types accepted by CreateIndex.
const (
	IndexHNSW = "HNSW"
	IndexIVF  = "IVF"
	IndexFlat = "FLAT"
)

// UpsertRequest stores or replaces a single vector.
type UpsertRequest struct {
	ProjectID string         `param:"project_id" json:"-" validate:"project_id"`
	Embedding []float64      `json:"vector_embedding" validate:"embedding"`
	Document  string         `json:"document" validate:"required"`
	Namespace string         `json:"namespace"`
	Metadata  map[string]any `json:"vector_metadata,omitempty"`
	VectorID  string         `json:"vector_id,omitempty"`
	Source    string         `json:"source,omitempty"`
}

// UpsertResponse acknowledges a stored vector.
type UpsertResponse struct {
	VectorID string `json:"vector_id"`
	Status   string `json:"status"`
}

// BatchVector is one entry of a batch upsert.
type BatchVector struct {
	Embedding []float64      `json:"vector_embedding" validate:"embedding"`
	Document  string         `json:"document" validate:"required"`
	Metadata  map[string]any `json:"vector_metadata,omitempty"`
	VectorID  string         `json:"vector_id,omitempty"`
}

// BatchUpsertRequest stores many vectors in one namespace.
type BatchUpsertRequest struct {
	ProjectID string        `param:"project_id" json:"-" validate:"project_id"`
	Namespace string        `json:"namespace"`
	Vectors   []BatchVector `json:"vectors" validate:"required,min=1,dive"`
}

// BatchUpsertResponse reports per-batch outcomes.
type BatchUpsertResponse struct {
	VectorIDs    []string `json:"vector_ids"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	TotalTimeMS  float64  `json:"total_time_ms"`
}

// SearchRequest runs a similarity search.
type SearchRequest struct {
	ProjectID      string         `param:"project_id" json:"-" validate:"project_id"`
	QueryVector    []float64      `json:"query_vector" validate:"embedding"`
	Limit          int            `json:"limit" validate:"gte=0,lte=1000"`
	Threshold      float64        `json:"threshold,omitempty" validate:"gte=0,lte=1"`
	Namespace      string         `json:"namespace"`
	MetadataFilter map[string]any `json:"metadata_filter,omitempty"`
}

// Vector is a stored embedding with its document.
type Vector struct {
	VectorID  string         `json:"vector_id"`
	ProjectID string         `json:"project_id"`
	Namespace string         `json:"namespace"`
	Embedding []float64      `json:"vector_embedding"`
	Document  string         `json:"document"`
	Metadata  map[string]any `json:"vector_metadata,omitempty"`
	Source    string         `json:"source,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// SearchResult lists matching vectors.
type SearchResult struct {
	Vectors      []Vector `json:"vectors"`
	TotalCount   int      `json:"total_count"`
	SearchTimeMS float64  `json:"search_time_ms"`
}

// DeleteResponse reports whether a vector was removed.
type DeleteResponse struct {
	Status  string `json:"status"`
	Deleted bool   `json:"deleted"`
}

// ListRequest pages through a namespace.
type ListRequest struct {
	ProjectID string `param:"project_id" validate:"project_id"`
	Namespace string `query:"namespace"`
	Limit     int    `query:"limit" validate:"gte=0"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

// NamespaceCount is a per-namespace vector count.
type NamespaceCount struct {
	Namespace string `json:"namespace"`
	Count     int64  `json:"count"`
}

// Stats summarizes a project's vector storage.
type Stats struct {
	TotalVectors  int64            `json:"total_vectors"`
	Namespaces    []NamespaceCount `json:"namespaces"`
	StorageBytes  int64            `json:"storage_bytes"`
	AvgVectorSize float64          `json:"avg_vector_size"`
}

// CreateIndexRequest builds a search index over a namespace.
type CreateIndexRequest struct {
	ProjectID  string         `param:"project_id" json:"-" validate:"project_id"`
	Namespace  string         `json:"namespace,omitempty"`
	IndexType  string         `json:"index_type" validate:"required,oneof=HNSW IVF FLAT"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// CreateIndexResponse describes the index build.
type CreateIndexResponse struct {
	IndexID                   string  `json:"index_id"`
	EstimatedBuildTimeSeconds float64 `json:"estimated_build_time_seconds"`
	Status                    string  `json:"status"`
}

// OptimizeRequest selects a storage optimization strategy.
type OptimizeRequest struct {
	ProjectID string `param:"project_id" json:"-" validate:"project_id"`
	Strategy  string `json:"strategy" validate:"required,oneof=compression deduplication clustering"`
}

// OptimizeResponse reports the effect of an optimization.
type OptimizeResponse struct {
	OptimizedVectors   int64   `json:"optimized_vectors"`
	StorageSavedBytes  int64   `json:"storage_saved_bytes"`
	OptimizationTimeMS float64 `json:"optimization_time_ms"`
}

// ExportRequest exports a namespace to a downloadable file.
type ExportRequest struct {
	ProjectID string `param:"project_id" json:"-" validate:"project_id"`
	Namespace string `json:"namespace,omitempty"`
	Format    string `json:"format" validate:"required,oneof=json csv parquet"`
}

// ExportResponse points at the exported file.
type ExportResponse struct {
	DownloadURL   string `json:"download_url"`
	VectorCount   int64  `json:"vector_count"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	ExpiresAt     string `json:"expires_at"`
}

// ChunkOptions tunes UpsertChunked.
type ChunkOptions struct {
	// ChunkSize is the number of vectors per request; defaults to 100.
	ChunkSize int
	// Concurrency bounds in-flight requests; defaults to 4.
	Concurrency int
}
