package agents

import (
	"context"

	"github.com/ainative/zerodb-go/validation"
)

const orchestrationBase = "agent-orchestration"

type Task struct {
	ID          string         `json:"id"`
	AgentID     string         `json:"agent_id"`
	TaskType    string         `json:"task_type"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	Result      any            `json:"result,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	CompletedAt string         `json:"completed_at,omitempty"`
}

type CreateTaskRequest struct {
	AgentID     string         `json:"agent_id" validate:"required"`
	TaskType    string         `json:"task_type" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Priority    string         `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Context     map[string]any `json:"context,omitempty"`
}

type CreateTaskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Task   Task   `json:"task"`
}

type ListTasksRequest struct {
	AgentID string `query:"agent_id"`
	Status  string `query:"status" validate:"omitempty,oneof=pending running completed failed"`
	Limit   int    `query:"limit" validate:"gte=0"`
	Offset  int    `query:"offset" validate:"gte=0"`
}

type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

type TaskStatus struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress,omitempty"`
	Message  string  `json:"message,omitempty"`
	Result   any     `json:"result,omitempty"`
}

type ExecuteTaskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
}

type TaskSequence struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Tasks     []string `json:"tasks"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
}

type CreateSequenceRequest struct {
	Name        string   `json:"name" validate:"required"`
	Tasks       []string `json:"tasks" validate:"required,min=1"`
	Description string   `json:"description,omitempty"`
}

type CreateSequenceResponse struct {
	ID       string       `json:"id"`
	Sequence TaskSequence `json:"sequence"`
}

// Orchestration creates and runs agent tasks.
type Orchestration struct{ base }

func (o *Orchestration) CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error) {
	var out CreateTaskResponse
	if err := o.post(ctx, path(orchestrationBase, "tasks"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Orchestration) ListTasks(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error) {
	var out ListTasksResponse
	if err := o.list(ctx, path(orchestrationBase, "tasks"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Orchestration) TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	if err := validation.Required("task_id", taskID); err != nil {
		return nil, err
	}
	var out TaskStatus
	if err := o.r.Get(ctx, path(orchestrationBase, "tasks", taskID, "status"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteTask runs a task with optional parameters.
func (o *Orchestration) ExecuteTask(ctx context.Context, taskID string, params map[string]any) (*ExecuteTaskResponse, error) {
	if err := validation.Required("task_id", taskID); err != nil {
		return nil, err
	}
	var out ExecuteTaskResponse
	body := map[string]any{"params": params}
	if err := o.r.Post(ctx, path(orchestrationBase, "tasks", taskID, "execute"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSequence chains existing tasks to run in order.
func (o *Orchestration) CreateSequence(ctx context.Context, req CreateSequenceRequest) (*CreateSequenceResponse, error) {
	var out CreateSequenceResponse
	if err := o.post(ctx, path(orchestrationBase, "sequences"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
