package agents

import "context"

const stateBase = "agent-state"

type GetStateRequest struct {
	AgentID string `query:"agent_id" validate:"required"`
	// Version selects a historical state; zero means latest.
	Version int `query:"version" validate:"gte=0"`
}

type AgentState struct {
	AgentID     string         `json:"agent_id"`
	State       map[string]any `json:"state"`
	Version     int            `json:"version"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

type Checkpoint struct {
	ID          string         `json:"id"`
	AgentID     string         `json:"agent_id"`
	Name        string         `json:"name"`
	Data        map[string]any `json:"data"`
	Description string         `json:"description,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

type CreateCheckpointRequest struct {
	AgentID     string         `json:"agent_id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Data        map[string]any `json:"data" validate:"required"`
	Description string         `json:"description,omitempty"`
}

type CreateCheckpointResponse struct {
	ID         string     `json:"id"`
	Checkpoint Checkpoint `json:"checkpoint"`
}

type ListCheckpointsRequest struct {
	AgentID string `query:"agent_id"`
	Limit   int    `query:"limit" validate:"gte=0"`
	Offset  int    `query:"offset" validate:"gte=0"`
}

type ListCheckpointsResponse struct {
	Checkpoints []Checkpoint `json:"checkpoints"`
	Total       int          `json:"total"`
}

type RestoreRequest struct {
	CheckpointID string `json:"checkpoint_id" validate:"required"`
	AgentID      string `json:"agent_id,omitempty"`
}

type RestoreResponse struct {
	AgentID      string `json:"agent_id"`
	CheckpointID string `json:"checkpoint_id"`
	Status       string `json:"status"`
}

// State reads agent state and manages checkpoints.
type State struct{ base }

func (s *State) Get(ctx context.Context, req GetStateRequest) (*AgentState, error) {
	var out AgentState
	if err := s.list(ctx, path(stateBase, "state"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *State) CreateCheckpoint(ctx context.Context, req CreateCheckpointRequest) (*CreateCheckpointResponse, error) {
	var out CreateCheckpointResponse
	if err := s.post(ctx, path(stateBase, "checkpoints"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *State) ListCheckpoints(ctx context.Context, req ListCheckpointsRequest) (*ListCheckpointsResponse, error) {
	var out ListCheckpointsResponse
	if err := s.list(ctx, path(stateBase, "checkpoints"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restore rolls an agent back to a checkpoint.
func (s *State) Restore(ctx context.Context, req RestoreRequest) (*RestoreResponse, error) {
	var out RestoreResponse
	if err := s.post(ctx, path(stateBase, "restore"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
