// ABOUTME: Rating endpoint facade for videos and developer profiles
// ABOUTME: Aggregates are read publicly, votes require authentication

package api

import (
	"context"
	"fmt"
)

// RatingSummary aggregates the votes for a video or developer.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
	UserRating    *int    `json:"user_rating,omitempty"`
}

// VideoRating fetches the aggregate rating for a video.
func (c *Client) VideoRating(ctx context.Context, videoID int64) (*RatingSummary, error) {
	var summary RatingSummary
	if err := c.Get(ctx, fmt.Sprintf("/ratings/videos/%d", videoID), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RateVideo records the caller's vote for a video (1-5).
func (c *Client) RateVideo(ctx context.Context, videoID int64, rating int) (*RatingSummary, error) {
	body := struct {
		Rating int `json:"rating"`
	}{Rating: rating}

	var summary RatingSummary
	if err := c.Post(ctx, fmt.Sprintf("/ratings/videos/%d", videoID), body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeveloperRating fetches the aggregate rating for a developer. Returns
// nil without error when the developer has never been rated.
func (c *Client) DeveloperRating(ctx context.Context, developerID int64) (*RatingSummary, error) {
	var summary *RatingSummary
	path := fmt.Sprintf("/ratings/developers/%d", developerID)
	if err := c.Get(ctx, path, &summary, Optional()); err != nil {
		return nil, err
	}
	return summary, nil
}

// RateDeveloper records the caller's vote for a developer (1-5).
func (c *Client) RateDeveloper(ctx context.Context, developerID int64, rating int) (*RatingSummary, error) {
	body := struct {
		Rating int `json:"rating"`
	}{Rating: rating}

	var summary RatingSummary
	if err := c.Post(ctx, fmt.Sprintf("/ratings/developers/%d", developerID), body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
