package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tyler-cli/internal/model"
)

// Tasks fetches the full task list (top-level tasks and subtasks, flat).
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, req model.TaskRequest) error {
	return c.do(ctx, http.MethodPost, "/tasks", req, nil)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, req model.TaskRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, nil)
}

// ToggleDone flips the completion flag server-side.
func (c *Client) ToggleDone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/done", id), nil, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) Priorities(ctx context.Context) ([]model.Priority, error) {
	var out []model.Priority
	if err := c.do(ctx, http.MethodGet, "/priorities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddDayOff marks the exact date (YYYY-MM-DD) as non-working. The endpoint
// takes a bare JSON date string, not an object.
func (c *Client) AddDayOff(ctx context.Context, date string) error {
	b, err := json.Marshal(date)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/users/me/day-off", rawBody(b), nil)
}

func (c *Client) RemoveDayOff(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/users/me/day-off?date="+url.QueryEscape(date), nil, nil)
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/login", creds, nil)
}

func (c *Client) Register(ctx context.Context, creds model.Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/register", creds, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Refresh renews the session explicitly. The pipeline also calls it
// implicitly on a 401; this is for callers that want to probe the session.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil)
}
