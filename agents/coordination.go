package agents

import "context"

const coordinationBase = "agent-coordination"

type Message struct {
	ID          string         `json:"id"`
	FromAgent   string         `json:"from_agent"`
	ToAgent     string         `json:"to_agent"`
	Message     string         `json:"message"`
	MessageType string         `json:"message_type,omitempty"`
	Priority    string         `json:"priority,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

type SendMessageRequest struct {
	FromAgent   string         `json:"from_agent" validate:"required"`
	ToAgent     string         `json:"to_agent" validate:"required"`
	Message     string         `json:"message" validate:"required"`
	MessageType string         `json:"message_type,omitempty"`
	Priority    string         `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type SendMessageResponse struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Message Message `json:"message"`
}

type DistributeTasksRequest struct {
	Tasks    []string `json:"tasks" validate:"required,min=1"`
	Agents   []string `json:"agents" validate:"required,min=1"`
	Strategy string   `json:"strategy,omitempty" validate:"omitempty,oneof=round_robin load_balanced random"`
}

type Assignment struct {
	TaskID  string `json:"task_id"`
	AgentID string `json:"agent_id"`
}

type DistributeTasksResponse struct {
	Distributed int          `json:"distributed"`
	Assignments []Assignment `json:"assignments"`
}

type Workload struct {
	AgentID     string  `json:"agent_id"`
	ActiveTasks int     `json:"active_tasks"`
	Load        float64 `json:"load"`
	Status      string  `json:"status"`
}

type WorkloadStats struct {
	Agents    map[string]Workload `json:"agents"`
	Timestamp string              `json:"timestamp"`
}

// Coordination routes messages and work between agents.
type Coordination struct{ base }

func (c *Coordination) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	var out SendMessageResponse
	if err := c.post(ctx, path(coordinationBase, "messages"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Coordination) DistributeTasks(ctx context.Context, req DistributeTasksRequest) (*DistributeTasksResponse, error) {
	var out DistributeTasksResponse
	if err := c.post(ctx, path(coordinationBase, "distribute"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workload reports per-agent load; an empty agentID covers every agent.
func (c *Coordination) Workload(ctx context.Context, agentID string) (*WorkloadStats, error) {
	q := struct {
		AgentID string `query:"agent_id"`
	}{agentID}
	var out WorkloadStats
	if err := c.list(ctx, path(coordinationBase, "workload"), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
