// Package admin exposes the ZeroDB administration endpoints. Calls require
// an administrator credential.
package admin

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/projects"
	"github.com/ainative/zerodb-go/validation"
)

// Database maintenance operations.
const (
	OperationVacuum  = "vacuum"
	OperationReindex = "reindex"
	OperationAnalyze = "analyze"
)

type SystemStats struct {
	TotalProjects  int64   `json:"total_projects"`
	TotalUsers     int64   `json:"total_users"`
	TotalVectors   int64   `json:"total_vectors"`
	StorageUsageGB float64 `json:"storage_usage_gb"`
	APICalls24h    int64   `json:"api_calls_24h"`
}

type ListProjectsRequest struct {
	Limit  int `query:"limit" validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

type UserUsage struct {
	User struct {
		UserID    string `json:"user_id"`
		Email     string `json:"email"`
		Tier      string `json:"tier"`
		CreatedAt string `json:"created_at"`
	} `json:"user"`
	Projects int `json:"projects"`
	Usage    struct {
		StorageBytes   int64 `json:"storage_bytes"`
		APICalls       int64 `json:"api_calls"`
		BandwidthBytes int64 `json:"bandwidth_bytes"`
	} `json:"usage"`
	Tier string `json:"tier"`
}

type Health struct {
	Status           string            `json:"status"`
	Services         map[string]string `json:"services"`
	UptimeSeconds    int64             `json:"uptime_seconds"`
	ErrorRatePercent float64           `json:"error_rate_percent"`
}

type OptimizeDatabaseResponse struct {
	Status                   string `json:"status"`
	EstimatedDurationSeconds int64  `json:"estimated_duration_seconds,omitempty"`
	SpaceFreedBytes          int64  `json:"space_freed_bytes,omitempty"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(segments ...string) string {
	return route.Path(append([]string{"admin"}, segments...)...)
}

func (s *Service) SystemStats(ctx context.Context) (*SystemStats, error) {
	var out SystemStats
	if err := s.r.Get(ctx, path("stats", "system"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects lists projects across all users.
func (s *Service) ListProjects(ctx context.Context, req ListProjectsRequest) (*projects.ListResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out projects.ListResponse
	if err := s.r.Get(ctx, path("projects"), &out, http.WithQuery(validation.Query(req))); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) UserUsage(ctx context.Context, userID string) (*UserUsage, error) {
	if err := validation.Required("user_id", userID); err != nil {
		return nil, err
	}
	var out UserUsage
	if err := s.r.Get(ctx, path("users", userID, "usage"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := s.r.Get(ctx, path("health"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptimizeDatabase starts a maintenance operation: vacuum, reindex or analyze.
func (s *Service) OptimizeDatabase(ctx context.Context, operation string) (*OptimizeDatabaseResponse, error) {
	body := struct {
		Operation string `json:"operation" validate:"required,oneof=vacuum reindex analyze"`
	}{Operation: operation}
	if err := s.v.Struct(body); err != nil {
		return nil, err
	}
	var out OptimizeDatabaseResponse
	if err := s.r.Post(ctx, path("database", "optimize"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
