// Package tables manages NoSQL tables and their rows in a ZeroDB project.
package tables

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

// DefaultQueryLimit applies when QueryRowsRequest.Limit is zero.
const DefaultQueryLimit = 100

// Column describes one column of a table schema.
type Column struct {
	Type     string `json:"type" validate:"oneof=string number boolean object array"`
	Nullable bool   `json:"nullable,omitempty"`
	Default  any    `json:"default,omitempty"`
}

// Schema maps column names to their definitions.
type Schema map[string]Column

type CreateTableRequest struct {
	ProjectID   string `param:"project_id" json:"-" validate:"project_id"`
	TableName   string `json:"table_name" validate:"required,max=128"`
	Schema      Schema `json:"schema_definition,omitempty" validate:"omitempty,dive"`
	Description string `json:"description,omitempty"`
}

type Table struct {
	TableID     string `json:"table_id"`
	ProjectID   string `json:"project_id"`
	TableName   string `json:"table_name"`
	Schema      Schema `json:"schema_definition,omitempty"`
	Description string `json:"description,omitempty"`
	RowCount    int64  `json:"row_count,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type TableSummary struct {
	TableID   string `json:"table_id"`
	TableName string `json:"table_name"`
	RowCount  int64  `json:"row_count"`
	CreatedAt string `json:"created_at"`
}

type ListTablesResponse struct {
	Tables     []TableSummary `json:"tables"`
	TotalCount int            `json:"total_count"`
}

type TableDetails struct {
	Table struct {
		Table
		StorageBytes int64 `json:"storage_bytes"`
	} `json:"table"`
	Indexes []string `json:"indexes"`
	Status  string   `json:"status"`
}

type DeleteTableRequest struct {
	ProjectID string `param:"project_id" validate:"project_id"`
	TableName string `param:"table_name" validate:"required"`
	Confirm   bool
}

type DeleteTableResponse struct {
	Status      string `json:"status"`
	RowsDeleted int64  `json:"rows_deleted"`
}

// Row is a stored record.
type Row struct {
	RowID     string         `json:"row_id"`
	ProjectID string         `json:"project_id"`
	TableID   string         `json:"table_id"`
	TableName string         `json:"table_name"`
	Data      map[string]any `json:"row_data"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

type InsertRowsRequest struct {
	ProjectID string           `param:"project_id" json:"-" validate:"project_id"`
	TableName string           `param:"table_name" json:"-" validate:"required"`
	Rows      []map[string]any `json:"rows" validate:"required,min=1"`
}

type InsertFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type InsertRowsResponse struct {
	InsertedIDs   []string        `json:"inserted_ids"`
	InsertedCount int             `json:"inserted_count"`
	Failed        []InsertFailure `json:"failed"`
}

type QueryRowsRequest struct {
	ProjectID string         `param:"project_id" json:"-" validate:"project_id"`
	TableName string         `param:"table_name" json:"-" validate:"required"`
	Filters   map[string]any `json:"filters,omitempty"`
	Limit     int            `json:"limit" validate:"gte=0"`
	Offset    int            `json:"offset" validate:"gte=0"`
	OrderBy   string         `json:"order_by,omitempty"`
}

type QueryRowsResponse struct {
	Rows        []Row   `json:"rows"`
	TotalCount  int64   `json:"total_count"`
	HasMore     bool    `json:"has_more"`
	QueryTimeMS float64 `json:"query_time_ms"`
}

type UpdateRowsRequest struct {
	ProjectID string         `param:"project_id" json:"-" validate:"project_id"`
	TableName string         `param:"table_name" json:"-" validate:"required"`
	Filters   map[string]any `json:"filters" validate:"required"`
	Updates   map[string]any `json:"updates" validate:"required,min=1"`
}

type UpdateRowsResponse struct {
	UpdatedCount int64  `json:"updated_count"`
	Status       string `json:"status"`
}

type DeleteRowsRequest struct {
	ProjectID string         `param:"project_id" json:"-" validate:"project_id"`
	TableName string         `param:"table_name" json:"-" validate:"required"`
	Filters   map[string]any `json:"filters" validate:"required"`
	Confirm   bool           `json:"-"`
}

type DeleteRowsResponse struct {
	DeletedCount int64  `json:"deleted_count"`
	Status       string `json:"status"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(projectID string, segments ...string) string {
	return route.Project(projectID, append([]string{"database", "tables"}, segments...)...)
}

func (s *Service) CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out Table
	if err := s.r.Post(ctx, path(req.ProjectID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ListTables(ctx context.Context, projectID string) (*ListTablesResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out ListTablesResponse
	if err := s.r.Get(ctx, path(projectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetTable(ctx context.Context, projectID, tableName string) (*TableDetails, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("table_name", tableName); err != nil {
		return nil, err
	}
	var out TableDetails
	if err := s.r.Get(ctx, path(projectID, tableName), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTable drops a table and all of its rows. It requires Confirm.
func (s *Service) DeleteTable(ctx context.Context, req DeleteTableRequest) (*DeleteTableResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if err := validation.Confirm(req.Confirm, "delete table "+req.TableName); err != nil {
		return nil, err
	}
	var out DeleteTableResponse
	if err := s.r.Delete(ctx, path(req.ProjectID, req.TableName), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) InsertRows(ctx context.Context, req InsertRowsRequest) (*InsertRowsResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out InsertRowsResponse
	if err := s.r.Post(ctx, path(req.ProjectID, req.TableName, "rows"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryRows filters rows. Limit defaults to DefaultQueryLimit.
func (s *Service) QueryRows(ctx context.Context, req QueryRowsRequest) (*QueryRowsResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.Limit == 0 {
		req.Limit = DefaultQueryLimit
	}
	var out QueryRowsResponse
	if err := s.r.Post(ctx, path(req.ProjectID, req.TableName, "rows", "query"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) UpdateRows(ctx context.Context, req UpdateRowsRequest) (*UpdateRowsResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out UpdateRowsResponse
	if err := s.r.Put(ctx, path(req.ProjectID, req.TableName, "rows"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRows removes rows matching Filters. It requires Confirm.
func (s *Service) DeleteRows(ctx context.Context, req DeleteRowsRequest) (*DeleteRowsResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if err := validation.Confirm(req.Confirm, "delete rows from "+req.TableName); err != nil {
		return nil, err
	}
	var out DeleteRowsResponse
	if err := s.r.Delete(ctx, path(req.ProjectID, req.TableName, "rows"), &out, http.WithBody(req)); err != nil {
		return nil, err
	}
	return &out, nil
}
