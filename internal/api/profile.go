// ABOUTME: Profile endpoint facade for client and developer profiles
// ABOUTME: A missing profile is an expected state, not an error

package api

import (
	"context"
	"time"
)

// ClientProfile is the marketplace profile for a client account.
type ClientProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Industry    string    `json:"industry"`
	CompanySize string    `json:"company_size"`
	Website     string    `json:"website"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeveloperProfile is the marketplace profile for a developer account.
type DeveloperProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Skills          string    `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      *float64  `json:"hourly_rate,omitempty"`
	Bio             string    `json:"bio"`
	IsPublic        bool      `json:"is_public"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ClientProfileInput carries the editable client profile fields.
type ClientProfileInput struct {
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Website     string `json:"website,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// DeveloperProfileInput carries the editable developer profile fields.
type DeveloperProfileInput struct {
	Skills          string   `json:"skills,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	IsPublic        *bool    `json:"is_public,omitempty"`
}

// ClientProfile fetches the caller's client profile. Returns nil without
// error when no profile has been created yet.
func (c *Client) ClientProfile(ctx context.Context) (*ClientProfile, error) {
	var profile *ClientProfile
	if err := c.Get(ctx, "/profile/client", &profile, Optional()); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeveloperProfile fetches the caller's developer profile. Returns nil
// without error when no profile has been created yet.
func (c *Client) DeveloperProfile(ctx context.Context) (*DeveloperProfile, error) {
	var profile *DeveloperProfile
	if err := c.Get(ctx, "/profile/developer", &profile, Optional()); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateClientProfile creates or replaces the caller's client profile.
func (c *Client) UpdateClientProfile(ctx context.Context, input ClientProfileInput) (*ClientProfile, error) {
	var profile ClientProfile
	if err := c.Post(ctx, "/profile/client", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateDeveloperProfile creates or replaces the caller's developer profile.
func (c *Client) UpdateDeveloperProfile(ctx context.Context, input DeveloperProfileInput) (*DeveloperProfile, error) {
	var profile DeveloperProfile
	if err := c.Post(ctx, "/profile/developer", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
