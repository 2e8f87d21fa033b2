// Package events publishes and queries project events and manages webhook
// subscriptions.
package events

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

type CreateRequest struct {
	ProjectID string         `param:"project_id" json:"-" validate:"project_id"`
	EventType string         `json:"event_type" validate:"required"`
	Topic     string         `json:"topic" validate:"required"`
	Payload   map[string]any `json:"event_payload" validate:"required"`
	Source    string         `json:"source" validate:"required"`
}

type CreateResponse struct {
	EventID   string `json:"event_id"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type Event struct {
	EventID     string         `json:"event_id"`
	ProjectID   string         `json:"project_id"`
	EventType   string         `json:"event_type,omitempty"`
	Topic       string         `json:"topic"`
	Payload     map[string]any `json:"event_payload"`
	PublishedAt string         `json:"published_at"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

// ListRequest filters events. StartTime and EndTime are ISO-8601 strings.
type ListRequest struct {
	ProjectID string `param:"project_id" validate:"project_id"`
	EventType string `query:"event_type"`
	Topic     string `query:"topic"`
	StartTime string `query:"start_time"`
	EndTime   string `query:"end_time"`
	Limit     int    `query:"limit" validate:"gte=0"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

type ListResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
	HasMore    bool    `json:"has_more"`
}

type Details struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
}

type SubscribeRequest struct {
	ProjectID  string         `param:"project_id" json:"-" validate:"project_id"`
	Topic      string         `json:"topic" validate:"required"`
	WebhookURL string         `json:"webhook_url" validate:"required,url"`
	Filters    map[string]any `json:"filters,omitempty"`
}

type SubscribeResponse struct {
	SubscriptionID  string `json:"subscription_id"`
	Status          string `json:"status"`
	WebhookVerified bool   `json:"webhook_verified"`
}

// Stats time ranges.
const (
	RangeHours = "hours"
	RangeDays  = "days"
	RangeWeeks = "weeks"
)

type StatsResponse struct {
	TotalEvents         int64            `json:"total_events"`
	EventsByType        map[string]int64 `json:"events_by_type"`
	EventsByTopic       map[string]int64 `json:"events_by_topic"`
	AvgProcessingTimeMS float64          `json:"avg_processing_time_ms"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(projectID string, segments ...string) string {
	return route.Project(projectID, append([]string{"database", "events"}, segments...)...)
}

// Create publishes an event.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out CreateResponse
	if err := s.r.Post(ctx, path(req.ProjectID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

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

func (s *Service) Get(ctx context.Context, projectID, eventID string) (*Details, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	if err := validation.Required("event_id", eventID); err != nil {
		return nil, err
	}
	var out Details
	if err := s.r.Get(ctx, path(projectID, eventID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscribe registers a webhook for a topic.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscribeResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out SubscribeResponse
	if err := s.r.Post(ctx, path(req.ProjectID, "subscribe"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats aggregates events over timeRange (RangeHours, RangeDays or RangeWeeks).
func (s *Service) Stats(ctx context.Context, projectID, timeRange string) (*StatsResponse, error) {
	if err := s.v.ProjectID(projectID); err != nil {
		return nil, err
	}
	var out StatsResponse
	if err := s.r.Get(ctx, path(projectID, "stats"), &out, http.WithQueryParam("time_range", timeRange)); err != nil {
		return nil, err
	}
	return &out, nil
}
