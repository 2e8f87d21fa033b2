// Package rlhf collects human feedback (interactions, ratings, error reports)
// used to tune ZeroDB agents, and controls the collection pipeline.
package rlhf

import (
	"context"
	"strconv"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

type InteractionRequest struct {
	Type           string         `json:"type" validate:"required"`
	SessionID      string         `json:"session_id" validate:"required"`
	ProjectID      string         `json:"project_id,omitempty" validate:"omitempty,project_id"`
	ElementClicked string         `json:"element_clicked"`
	PageURL        string         `json:"page_url"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

type AgentFeedbackRequest struct {
	ProjectID       string `json:"project_id" validate:"project_id"`
	AgentType       string `json:"agent_type" validate:"required"`
	AgentResponseID string `json:"agent_response_id" validate:"required"`
	UserRating      int    `json:"user_rating" validate:"gte=1,lte=5"`
	FeedbackText    string `json:"feedback_text,omitempty"`
}

type WorkflowFeedbackRequest struct {
	ProjectID           string             `json:"project_id" validate:"project_id"`
	WorkflowExecutionID string             `json:"workflow_execution_id" validate:"required"`
	OverallSatisfaction int                `json:"overall_satisfaction" validate:"gte=1,lte=5"`
	StageRatings        map[string]float64 `json:"stage_ratings"`
	Suggestions         []string           `json:"suggestions,omitempty"`
}

type ErrorReportRequest struct {
	ErrorType        string         `json:"error_type" validate:"required"`
	ErrorMessage     string         `json:"error_message" validate:"required"`
	Context          map[string]any `json:"context"`
	UserDescription  string         `json:"user_description,omitempty"`
	StepsToReproduce []string       `json:"steps_to_reproduce,omitempty"`
}

// FeedbackResponse acknowledges any collected feedback. Only the flag that
// matches the submitted kind is set by the server.
type FeedbackResponse struct {
	FeedbackID        string `json:"feedback_id"`
	Status            string `json:"status"`
	Processed         bool   `json:"processed,omitempty"`
	LearningTriggered bool   `json:"learning_triggered,omitempty"`
	InsightsGenerated bool   `json:"insights_generated,omitempty"`
	BugTrackerCreated bool   `json:"bug_tracker_created,omitempty"`
}

type Status struct {
	CollectionActive    bool   `json:"collection_active"`
	ActiveSessions      int    `json:"active_sessions"`
	PendingInteractions int    `json:"pending_interactions"`
	SystemHealth        string `json:"system_health"`
}

type TrendingIssue struct {
	Issue    string `json:"issue"`
	Count    int    `json:"count"`
	Severity string `json:"severity"`
}

type Summary struct {
	Summary struct {
		TotalInteractions int64   `json:"total_interactions"`
		FeedbackCount     int64   `json:"feedback_count"`
		RatingsAvg        float64 `json:"ratings_avg"`
	} `json:"summary"`
	Insights       []string        `json:"insights"`
	TrendingIssues []TrendingIssue `json:"trending_issues"`
}

type ControlResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Interaction struct {
	InteractionID string         `json:"interaction_id"`
	Type          string         `json:"type"`
	Timestamp     string         `json:"timestamp"`
	Data          map[string]any `json:"data"`
}

type SessionInteractions struct {
	SessionID         string        `json:"session_id"`
	TotalInteractions int           `json:"total_interactions"`
	Interactions      []Interaction `json:"interactions"`
}

type BroadcastRequest struct {
	ProjectID string         `json:"project_id,omitempty" validate:"omitempty,project_id"`
	EventData map[string]any `json:"event_data" validate:"required"`
}

type Service struct {
	r http.Requester
	v *validation.Validator
}

func NewService(r http.Requester, v *validation.Validator) *Service {
	return &Service{r: r, v: validation.OrDefault(v)}
}

func path(segments ...string) string {
	return route.Path(append([]string{"rlhf"}, segments...)...)
}

func (s *Service) collect(ctx context.Context, kind string, req any) (*FeedbackResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out FeedbackResponse
	if err := s.r.Post(ctx, path("collect", kind), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CollectInteraction records a UI interaction.
func (s *Service) CollectInteraction(ctx context.Context, req InteractionRequest) (*FeedbackResponse, error) {
	return s.collect(ctx, "interaction", req)
}

// CollectAgentFeedback records a 1 to 5 rating of an agent response.
func (s *Service) CollectAgentFeedback(ctx context.Context, req AgentFeedbackRequest) (*FeedbackResponse, error) {
	return s.collect(ctx, "agent-feedback", req)
}

func (s *Service) CollectWorkflowFeedback(ctx context.Context, req WorkflowFeedbackRequest) (*FeedbackResponse, error) {
	return s.collect(ctx, "workflow-feedback", req)
}

func (s *Service) ReportError(ctx context.Context, req ErrorReportRequest) (*FeedbackResponse, error) {
	return s.collect(ctx, "error-report", req)
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	var out Status
	if err := s.r.Get(ctx, path("status"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary aggregates feedback over the last hoursBack hours. Zero leaves the
// window to the server, which uses 24.
func (s *Service) Summary(ctx context.Context, hoursBack int) (*Summary, error) {
	var opts []http.RequestOption
	if hoursBack > 0 {
		opts = append(opts, http.WithQueryParam("hours_back", strconv.Itoa(hoursBack)))
	}
	var out Summary
	if err := s.r.Get(ctx, path("summary"), &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) StartCollection(ctx context.Context) (*ControlResponse, error) {
	return s.control(ctx, "start")
}

func (s *Service) StopCollection(ctx context.Context) (*ControlResponse, error) {
	return s.control(ctx, "stop")
}

func (s *Service) control(ctx context.Context, action string) (*ControlResponse, error) {
	var out ControlResponse
	if err := s.r.Post(ctx, path(action), map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) SessionInteractions(ctx context.Context, sessionID string) (*SessionInteractions, error) {
	if err := validation.Required("session_id", sessionID); err != nil {
		return nil, err
	}
	var out SessionInteractions
	if err := s.r.Get(ctx, path("sessions", sessionID, "interactions"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Broadcast pushes an event to connected RLHF listeners.
func (s *Service) Broadcast(ctx context.Context, req BroadcastRequest) (*ControlResponse, error) {
	if err := s.v.Struct(req); err != nil {
		return nil, err
	}
	var out ControlResponse
	if err := s.r.Post(ctx, path("broadcast"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
