package agents

import (
	"context"

	"github.com/ainative/zerodb-go/validation"
)

const swarmBase = "agent-swarm"

type SwarmInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ProjectID  string         `json:"project_id"`
	Status     string         `json:"status"`
	AgentCount int            `json:"agent_count"`
	Config     map[string]any `json:"config,omitempty"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

type CreateSwarmRequest struct {
	Name      string         `json:"name" validate:"required"`
	ProjectID string         `json:"project_id" validate:"project_id"`
	Config    map[string]any `json:"config,omitempty"`
}

type CreateSwarmResponse struct {
	ID    string    `json:"id"`
	Swarm SwarmInfo `json:"swarm"`
}

type ListSwarmsRequest struct {
	ProjectID string `query:"project_id" validate:"omitempty,project_id"`
	Status    string `query:"status" validate:"omitempty,oneof=idle active paused stopped"`
	Limit     int    `query:"limit" validate:"gte=0"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

type ListSwarmsResponse struct {
	Swarms []SwarmInfo `json:"swarms"`
	Total  int         `json:"total"`
}

type DeleteSwarmResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ScaleResponse struct {
	ID         string `json:"id"`
	AgentCount int    `json:"agent_count"`
	Status     string `json:"status"`
}

type AnalyticsRequest struct {
	SwarmID string `query:"swarm_id" validate:"required"`
	Period  string `query:"period"`
}

type AnalyticsResponse struct {
	Analytics struct {
		SwarmID           string  `json:"swarm_id"`
		TotalTasks        int64   `json:"total_tasks"`
		Completed         int64   `json:"completed"`
		Failed            int64   `json:"failed"`
		Pending           int64   `json:"pending"`
		AvgCompletionTime float64 `json:"avg_completion_time"`
		Period            string  `json:"period"`
	} `json:"analytics"`
}

type AgentType struct {
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

type AgentTypesResponse struct {
	Types []AgentType `json:"types"`
}

type SwarmStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AgentCount  int    `json:"agent_count"`
	ActiveTasks int    `json:"active_tasks"`
	LastUpdated string `json:"last_updated"`
}

// LifecycleResponse answers start, stop and config updates.
type LifecycleResponse struct {
	ID      string         `json:"id"`
	Status  string         `json:"status,omitempty"`
	Message string         `json:"message,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// Swarm manages groups of cooperating agents.
type Swarm struct{ base }

func (s *Swarm) Create(ctx context.Context, req CreateSwarmRequest) (*CreateSwarmResponse, error) {
	var out CreateSwarmResponse
	if err := s.post(ctx, path(swarmBase, "swarms"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) List(ctx context.Context, req ListSwarmsRequest) (*ListSwarmsResponse, error) {
	var out ListSwarmsResponse
	if err := s.list(ctx, path(swarmBase, "swarms"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) Delete(ctx context.Context, swarmID string) (*DeleteSwarmResponse, error) {
	if err := validation.Required("swarm_id", swarmID); err != nil {
		return nil, err
	}
	var out DeleteSwarmResponse
	if err := s.r.Delete(ctx, path(swarmBase, "swarms", swarmID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scale sets the number of agents in a swarm.
func (s *Swarm) Scale(ctx context.Context, swarmID string, count int) (*ScaleResponse, error) {
	if err := validation.Required("swarm_id", swarmID); err != nil {
		return nil, err
	}
	body := struct {
		Count int `json:"count" validate:"gte=0"`
	}{count}
	var out ScaleResponse
	if err := s.post(ctx, path(swarmBase, "swarms", swarmID, "scale"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) Analytics(ctx context.Context, req AnalyticsRequest) (*AnalyticsResponse, error) {
	var out AnalyticsResponse
	if err := s.list(ctx, path(swarmBase, "analytics"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) AgentTypes(ctx context.Context) (*AgentTypesResponse, error) {
	var out AgentTypesResponse
	if err := s.r.Get(ctx, path(swarmBase, "types"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) Status(ctx context.Context, swarmID string) (*SwarmStatus, error) {
	if err := validation.Required("swarm_id", swarmID); err != nil {
		return nil, err
	}
	var out SwarmStatus
	if err := s.r.Get(ctx, path(swarmBase, "swarms", swarmID, "status"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Swarm) Start(ctx context.Context, swarmID string) (*LifecycleResponse, error) {
	return s.lifecycle(ctx, swarmID, "start")
}

func (s *Swarm) Stop(ctx context.Context, swarmID string) (*LifecycleResponse, error) {
	return s.lifecycle(ctx, swarmID, "stop")
}

func (s *Swarm) lifecycle(ctx context.Context, swarmID, action string) (*LifecycleResponse, error) {
	if err := validation.Required("swarm_id", swarmID); err != nil {
		return nil, err
	}
	var out LifecycleResponse
	if err := s.r.Post(ctx, path(swarmBase, "swarms", swarmID, action), map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateConfig replaces a swarm's configuration.
func (s *Swarm) UpdateConfig(ctx context.Context, swarmID string, config map[string]any) (*LifecycleResponse, error) {
	if err := validation.Required("swarm_id", swarmID); err != nil {
		return nil, err
	}
	var out LifecycleResponse
	body := map[string]any{"config": config}
	if err := s.r.Put(ctx, path(swarmBase, "swarms", swarmID, "config"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
