// ABOUTME: Project request endpoint facade
// ABOUTME: Covers public browsing plus authenticated request management

package api

import (
	"context"
	"fmt"
	"time"
)

// Request is a project request posted by a client.
type Request struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Status          string     `json:"status"`
	EstimatedBudget *float64   `json:"estimated_budget,omitempty"`
	IsPublic        bool       `json:"is_public"`
	OwnerID         int64      `json:"owner_id"`
	OwnerUsername   string     `json:"owner_username,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// RequestInput carries the editable request fields.
type RequestInput struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	EstimatedBudget *float64 `json:"estimated_budget,omitempty"`
	IsPublic        bool     `json:"is_public"`
}

// PublicRequests lists open requests visible without authentication.
func (c *Client) PublicRequests(ctx context.Context) ([]Request, error) {
	var requests []Request
	if err := c.Get(ctx, "/requests/public", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// PublicRequest fetches a single public request.
func (c *Client) PublicRequest(ctx context.Context, id int64) (*Request, error) {
	var request Request
	if err := c.Get(ctx, fmt.Sprintf("/requests/public/%d", id), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// MyRequests lists the caller's own requests.
func (c *Client) MyRequests(ctx context.Context) ([]Request, error) {
	var requests []Request
	if err := c.Get(ctx, "/requests/", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SharedRequests lists requests other users shared with the caller.
func (c *Client) SharedRequests(ctx context.Context) ([]Request, error) {
	var requests []Request
	if err := c.Get(ctx, "/requests/shared-with-me", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateRequest posts a new project request.
func (c *Client) CreateRequest(ctx context.Context, input RequestInput) (*Request, error) {
	var request Request
	if err := c.Post(ctx, "/requests/", input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateRequest replaces the editable fields of an existing request.
func (c *Client) UpdateRequest(ctx context.Context, id int64, input RequestInput) (*Request, error) {
	var request Request
	if err := c.Put(ctx, fmt.Sprintf("/requests/%d", id), input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// DeleteRequest removes a request owned by the caller.
func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/requests/%d", id))
}
