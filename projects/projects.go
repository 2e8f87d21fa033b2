// Package projects creates and manages ZeroDB projects.
package projects

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

// Project tiers.
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierScale      = "scale"
	TierEnterprise = "enterprise"
)

type Project struct {
	ProjectID       string `json:"project_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Tier            string `json:"tier"`
	DatabaseEnabled bool   `json:"database_enabled"`
	Status          string `json:"status,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

type CreateRequest struct {
	Name            string `json:"project_name" validate:"required,max=255"`
	Description     string `json:"description,omitempty"`
	Tier            string `json:"tier" validate:"omitempty,oneof=free pro scale enterprise"`
	DatabaseEnabled bool   `json:"database_enabled,omitempty"`
}

type ListResponse struct {
	Projects   []Project `json:"projects"`
	TotalCount int       `json:"total_count"`
}

type Counts struct {
	Vectors int64 `json:"vector_count"`
	Tables  int64 `json:"table_count"`
	Files   int64 `json:"file_count"`
	Events  int64 `json:"event_count"`
}

type Details struct {
	Project Project `json:"project"`
	Stats   Counts  `json:"stats"`
}

// UpdateRequest changes only the non-empty fields.
type UpdateRequest struct {
	ProjectID   string `param:"project_id" json:"-" validate:"project_id"`
	Name        string `json:"project_name,omitempty" validate:"omitempty,max=255"`
	Description string `json:"description,omitempty"`
	Tier        string `json:"tier,omitempty" validate:"omitempty,oneof=free pro scale enterprise"`
}

type UpdateResponse struct {
	Project Project `json:"project"`
	Status  string  `json:"status"`
}

type DeleteResponse struct {
	Status      string           `json:"status"`
	DataDeleted map[string]int64 `json:"data_deleted"`
}

type Usage struct {
	Storage struct {
		VectorsBytes int64 `json:"vectors_bytes"`
		FilesBytes   int64 `json:"files_bytes"`
		TotalBytes   int64 `json:"total_bytes"`
	} `json:"storage"`
	Counts      map[string]int64 `json:"counts"`
	Usage       map[string]int64 `json:"usage"`
	Performance struct {
		AvgQueryTimeMS float64 `json:"avg_query_time_ms"`
		P95QueryTimeMS float64 `json:"p95_query_time_ms"`
	} `json:"performance"`
}

type EnableDatabaseResponse struct {
	DatabaseEnabled bool   `json:"database_enabled"`
	DatabaseURL     string `json:"database_url"`
	Status          string `json:"status"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(segments ...string) string {
	return route.Path(append([]string{"zerodb", "projects"}, segments...)...)
}

// Create makes a project on the free tier unless Tier says otherwise.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.Tier == "" {
		req.Tier = TierFree
	}
	var out Project
	if err := s.r.Post(ctx, path(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := s.r.Get(ctx, path(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Get(ctx context.Context, projectID string) (*Details, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out Details
	if err := s.r.Get(ctx, path(projectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*UpdateResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out UpdateResponse
	if err := s.r.Patch(ctx, path(req.ProjectID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a project and all of its data. confirm must be true.
func (s *Service) Delete(ctx context.Context, projectID string, confirm bool) (*DeleteResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Confirm(confirm, "delete project "+projectID); err != nil {
		return nil, err
	}
	var out DeleteResponse
	if err := s.r.Delete(ctx, path(projectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Usage(ctx context.Context, projectID string) (*Usage, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out Usage
	if err := s.r.Get(ctx, path(projectID, "usage"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnableDatabase provisions the project's database features.
func (s *Service) EnableDatabase(ctx context.Context, projectID string) (*EnableDatabaseResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out EnableDatabaseResponse
	if err := s.r.Post(ctx, route.Project(projectID, "database"), map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
