// Package files uploads, downloads and manages binary objects stored in a
// ZeroDB project. File contents travel base64-encoded.
package files

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

// DefaultPresignExpiration applies when PresignedURLRequest.ExpirationSeconds is zero.
const DefaultPresignExpiration = 3600

// Presigned URL operations.
const (
	OperationUpload   = "upload"
	OperationDownload = "download"
)

type UploadRequest struct {
	ProjectID   string         `param:"project_id" json:"-" validate:"project_id"`
	FileName    string         `json:"file_name" validate:"required"`
	FileData    string         `json:"file_data" validate:"omitempty,base64"`
	ContentType string         `json:"content_type" validate:"required"`
	Metadata    map[string]any `json:"file_metadata,omitempty"`
}

type UploadResponse struct {
	FileID       string  `json:"file_id"`
	StorageURL   string  `json:"storage_url"`
	SizeBytes    int64   `json:"size_bytes"`
	UploadTimeMS float64 `json:"upload_time_ms"`
}

// File is a stored file with its base64 payload.
type File struct {
	FileData    string `json:"file_data"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Metadata describes a stored file without its contents.
type Metadata struct {
	FileID       string         `json:"file_id"`
	ProjectID    string         `json:"project_id"`
	FileName     string         `json:"file_name"`
	FileKey      string         `json:"file_key"`
	ContentType  string         `json:"content_type"`
	SizeBytes    int64          `json:"size_bytes"`
	FileMetadata map[string]any `json:"file_metadata,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

type ListRequest struct {
	ProjectID string `param:"project_id" validate:"project_id"`
	Prefix    string `query:"prefix"`
	Limit     int    `query:"limit" validate:"gte=0"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

type ListResponse struct {
	Files      []Metadata `json:"files"`
	TotalCount int64      `json:"total_count"`
	HasMore    bool       `json:"has_more"`
}

type DeleteResponse struct {
	Status     string `json:"status"`
	FreedBytes int64  `json:"freed_bytes"`
}

type PresignedURLRequest struct {
	ProjectID         string `param:"project_id" json:"-" validate:"project_id"`
	FileID            string `param:"file_id" json:"-" validate:"required"`
	ExpirationSeconds int    `json:"expiration_seconds" validate:"gte=0"`
	Operation         string `json:"operation" validate:"required,oneof=upload download"`
}

type PresignedURLResponse struct {
	PresignedURL string `json:"presigned_url"`
	ExpiresAt    string `json:"expires_at"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(projectID string, segments ...string) string {
	return route.Project(projectID, append([]string{"database", "files"}, segments...)...)
}

// Upload stores a file whose FileData is already base64-encoded.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out UploadResponse
	if err := s.r.Post(ctx, path(req.ProjectID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadBytes encodes data and uploads it.
func (s *Service) UploadBytes(ctx context.Context, projectID, fileName string, data []byte, contentType string, metadata map[string]any) (*UploadResponse, error) {
	return s.Upload(ctx, UploadRequest{
		ProjectID:   projectID,
		FileName:    fileName,
		FileData:    base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Metadata:    metadata,
	})
}

// Get fetches a file with its base64 payload.
func (s *Service) Get(ctx context.Context, projectID, fileID string) (*File, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("file_id", fileID); err != nil {
		return nil, err
	}
	var out File
	if err := s.r.Get(ctx, path(projectID, fileID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches a file and decodes its contents.
func (s *Service) Download(ctx context.Context, projectID, fileID string) ([]byte, *File, error) {
	f, err := s.Get(ctx, projectID, fileID)
	if err != nil {
		return nil, nil, err
	}
	data, err := base64.StdEncoding.DecodeString(f.FileData)
	if err != nil {
		return nil, f, fmt.Errorf("decode file %s: %w", fileID, err)
	}
	return data, f, nil
}

// List pages through files, optionally filtered by name prefix.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out ListResponse
	if err := s.r.Get(ctx, path(req.ProjectID), &out, http.WithQuery(validation.Query(req))); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a file.
func (s *Service) Delete(ctx context.Context, projectID, fileID string) (*DeleteResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("file_id", fileID); err != nil {
		return nil, err
	}
	var out DeleteResponse
	if err := s.r.Delete(ctx, path(projectID, fileID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Metadata fetches a file's descriptive fields without its contents.
func (s *Service) Metadata(ctx context.Context, projectID, fileID string) (*Metadata, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("file_id", fileID); err != nil {
		return nil, err
	}
	var out Metadata
	if err := s.r.Get(ctx, path(projectID, fileID, "metadata"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PresignedURL issues a time-limited URL for direct upload or download.
func (s *Service) PresignedURL(ctx context.Context, req PresignedURLRequest) (*PresignedURLResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	if req.ExpirationSeconds == 0 {
		req.ExpirationSeconds = DefaultPresignExpiration
	}
	var out PresignedURLResponse
	if err := s.r.Post(ctx, path(req.ProjectID, req.FileID, "presigned-url"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
