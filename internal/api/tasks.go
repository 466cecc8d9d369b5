package api

import (
	"context"
	"net/http"
)

func (c *Client) Tasks(ctx context.Context, teamID string) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/teams/"+teamID+"/tasks", nil, &resp)
	return resp.Tasks, err
}

type TaskCreate struct {
	Scope       TaskScope `json:"scope"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Role        *Role     `json:"role,omitempty"`
	IsCoachOnly bool      `json:"isCoachOnly"`
	Status      string    `json:"status"`
	DueAt       *string   `json:"dueAt,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, teamID string, task TaskCreate) (Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/teams/"+teamID+"/tasks", task, &resp)
	return resp.Task, err
}

type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueAt       *string `json:"dueAt,omitempty"`
}

func (c *Client) UpdateTask(ctx context.Context, teamID, taskID string, updates TaskUpdate) (Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/teams/"+teamID+"/tasks/"+taskID, updates, &resp)
	return resp.Task, err
}

func (c *Client) DeleteTask(ctx context.Context, teamID, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+teamID+"/tasks/"+taskID, nil, nil)
}
