package rlhf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainative/zerodb-go/internal/testutil"
	"github.com/ainative/zerodb-go/testing/mocks"
	"github.com/ainative/zerodb-go/validation"
)

func newService() (*Service, *mocks.MockRequester) {
	m := &mocks.MockRequester{}
	return NewService(m, nil), m
}

func TestCollectEndpoints(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	ack := FeedbackResponse{FeedbackID: "f1", Status: "collected"}
	for _, kind := range []string{"interaction", "agent-feedback", "workflow-feedback", "error-report"} {
		m.ExpectCall("POST", "/api/v1/rlhf/collect/"+kind).Return(ack, nil).Once()
	}

	_, err := svc.CollectInteraction(ctx, InteractionRequest{Type: "click", SessionID: "s1", PageURL: "/home"})
	require.NoError(t, err)
	_, err = svc.CollectAgentFeedback(ctx, AgentFeedbackRequest{
		ProjectID: testutil.ProjectID, AgentType: "coder", AgentResponseID: "r1", UserRating: 5,
	})
	require.NoError(t, err)
	_, err = svc.CollectWorkflowFeedback(ctx, WorkflowFeedbackRequest{
		ProjectID: testutil.ProjectID, WorkflowExecutionID: "w1", OverallSatisfaction: 3,
		StageRatings: map[string]float64{"plan": 4},
	})
	require.NoError(t, err)
	out, err := svc.ReportError(ctx, ErrorReportRequest{ErrorType: "ui", ErrorMessage: "broken", Context: map[string]any{"page": "/"}})
	require.NoError(t, err)
	assert.Equal(t, "f1", out.FeedbackID)
	m.AssertExpectations(t)
}

func TestRatingBounds(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	for _, rating := range []int{0, 6} {
		_, err := svc.CollectAgentFeedback(ctx, AgentFeedbackRequest{
			ProjectID: testutil.ProjectID, AgentType: "coder", AgentResponseID: "r1", UserRating: rating,
		})
		assert.ErrorIs(t, err, validation.ErrInvalidRequest, "rating %d", rating)
	}
	_, err := svc.CollectInteraction(ctx, InteractionRequest{Type: "click", SessionID: "s1", ProjectID: "bad"})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
	assert.Empty(t, m.Requests())
}

func TestStatusSummaryControl(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("GET", "/api/v1/rlhf/status").Return(Status{CollectionActive: true}, nil)
	m.ExpectCall("GET", "/api/v1/rlhf/summary").Return(map[string]any{
		"summary":  map[string]any{"feedback_count": 8, "ratings_avg": 4.2},
		"insights": []string{"more docs"},
	}, nil)
	m.ExpectCall("POST", "/api/v1/rlhf/start").Return(ControlResponse{Status: "started"}, nil)
	m.ExpectCall("POST", "/api/v1/rlhf/stop").Return(ControlResponse{Status: "stopped"}, nil)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.CollectionActive)

	sum, err := svc.Summary(ctx, 48)
	require.NoError(t, err)
	assert.EqualValues(t, 8, sum.Summary.FeedbackCount)
	assert.Equal(t, "48", m.LastRequest().Query.Get("hours_back"))

	_, err = svc.Summary(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, m.LastRequest().Query)

	start, err := svc.StartCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "started", start.Status)
	stop, err := svc.StopCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stopped", stop.Status)
}

func TestSessionsAndBroadcast(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("GET", "/api/v1/rlhf/sessions/s1/interactions").Return(SessionInteractions{SessionID: "s1", TotalInteractions: 2}, nil)
	m.ExpectCall("POST", "/api/v1/rlhf/broadcast").Return(ControlResponse{Status: "broadcasted"}, nil)

	si, err := svc.SessionInteractions(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, si.TotalInteractions)

	b, err := svc.Broadcast(ctx, BroadcastRequest{EventData: map[string]any{"kind": "refresh"}})
	require.NoError(t, err)
	assert.Equal(t, "broadcasted", b.Status)

	_, err = svc.SessionInteractions(ctx, "")
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
}
