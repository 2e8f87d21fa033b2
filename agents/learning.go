package agents

import "context"

const learningBase = "agent-learning"

type Feedback struct {
	ID            string `json:"id"`
	AgentID       string `json:"agent_id"`
	InteractionID string `json:"interaction_id"`
	Rating        int    `json:"rating"`
	Comments      string `json:"comments,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type SubmitFeedbackRequest struct {
	AgentID       string `json:"agent_id" validate:"required"`
	InteractionID string `json:"interaction_id" validate:"required"`
	Rating        int    `json:"rating" validate:"gte=1,lte=5"`
	Comments      string `json:"comments,omitempty"`
}

type SubmitFeedbackResponse struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Feedback Feedback `json:"feedback"`
}

type PerformanceMetrics struct {
	AgentID           string  `json:"agent_id"`
	AvgRating         float64 `json:"avg_rating"`
	TotalInteractions int64   `json:"total_interactions"`
	SuccessRate       float64 `json:"success_rate"`
	ResponseTimeAvg   float64 `json:"response_time_avg"`
	LastUpdated       string  `json:"last_updated"`
}

type MetricsRequest struct {
	AgentID string `query:"agent_id" validate:"required"`
	Period  string `query:"period"`
}

type MetricsResponse struct {
	Metrics PerformanceMetrics `json:"metrics"`
}

type CompareRequest struct {
	Agents []string `json:"agents" validate:"required,min=2"`
	Metric string   `json:"metric,omitempty" validate:"omitempty,oneof=rating success_rate response_time"`
}

type Comparison struct {
	AgentID string             `json:"agent_id"`
	Metrics PerformanceMetrics `json:"metrics"`
	Rank    int                `json:"rank,omitempty"`
}

type CompareResponse struct {
	Agents     []Comparison   `json:"agents"`
	Comparison map[string]any `json:"comparison"`
}

// Learning records agent feedback and reports performance.
type Learning struct{ base }

// SubmitFeedback records a 1 to 5 rating for an agent interaction.
func (l *Learning) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	var out SubmitFeedbackResponse
	if err := l.post(ctx, path(learningBase, "feedback"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *Learning) Metrics(ctx context.Context, req MetricsRequest) (*MetricsResponse, error) {
	var out MetricsResponse
	if err := l.list(ctx, path(learningBase, "metrics"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *Learning) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	var out CompareResponse
	if err := l.post(ctx, path(learningBase, "compare"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
