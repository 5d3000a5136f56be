// ABOUTME: Showcase endpoint facade for developer portfolio projects
// ABOUTME: Public browsing plus authenticated showcase management

package api

import (
	"context"
	"fmt"
	"time"
)

// Showcase is a portfolio project published by a developer.
type Showcase struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ProjectURL   string    `json:"project_url,omitempty"`
	RepoURL      string    `json:"repository_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	DeveloperID  int64     `json:"developer_id"`
	Developer    string    `json:"developer_name,omitempty"`
	Technologies []string  `json:"technologies,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShowcaseInput carries the editable showcase fields.
type ShowcaseInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ProjectURL   string   `json:"project_url,omitempty"`
	RepoURL      string   `json:"repository_url,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// PublicShowcases lists portfolio projects visible without authentication.
func (c *Client) PublicShowcases(ctx context.Context) ([]Showcase, error) {
	var showcases []Showcase
	if err := c.Get(ctx, "/showcase/public", &showcases); err != nil {
		return nil, err
	}
	return showcases, nil
}

// ShowcaseDetail fetches one showcase. Returns nil without error when the
// showcase does not exist, so browse views can skip dead links quietly.
func (c *Client) ShowcaseDetail(ctx context.Context, id int64) (*Showcase, error) {
	var showcase *Showcase
	if err := c.Get(ctx, fmt.Sprintf("/showcase/%d", id), &showcase, Optional()); err != nil {
		return nil, err
	}
	return showcase, nil
}

// ShowcaseDeveloperProfile fetches the public developer profile behind a
// showcase. Returns nil without error when the developer keeps their
// profile private or never created one.
func (c *Client) ShowcaseDeveloperProfile(ctx context.Context, developerID int64) (*DeveloperProfile, error) {
	var profile *DeveloperProfile
	path := fmt.Sprintf("/showcase/developers/%d/profile", developerID)
	if err := c.Get(ctx, path, &profile, Optional()); err != nil {
		return nil, err
	}
	return profile, nil
}

// MyShowcases lists the caller's own portfolio projects.
func (c *Client) MyShowcases(ctx context.Context) ([]Showcase, error) {
	var showcases []Showcase
	if err := c.Get(ctx, "/showcase/", &showcases); err != nil {
		return nil, err
	}
	return showcases, nil
}

// CreateShowcase publishes a new portfolio project.
func (c *Client) CreateShowcase(ctx context.Context, input ShowcaseInput) (*Showcase, error) {
	var showcase Showcase
	if err := c.Post(ctx, "/showcase/", input, &showcase); err != nil {
		return nil, err
	}
	return &showcase, nil
}

// UpdateShowcase replaces the editable fields of a showcase.
func (c *Client) UpdateShowcase(ctx context.Context, id int64, input ShowcaseInput) (*Showcase, error) {
	var showcase Showcase
	if err := c.Put(ctx, fmt.Sprintf("/showcase/%d", id), input, &showcase); err != nil {
		return nil, err
	}
	return &showcase, nil
}

// DeleteShowcase removes a showcase owned by the caller.
func (c *Client) DeleteShowcase(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/showcase/%d", id))
}
