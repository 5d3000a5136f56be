// ABOUTME: Video gallery endpoint facade
// ABOUTME: Covers the public showcase reel and the caller's own uploads

package api

import (
	"context"
	"fmt"
	"time"
)

// Video is one entry in the showcase gallery.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	UserID       int64     `json:"user_id"`
	Uploader     string    `json:"uploader_name,omitempty"`
	IsPublic     bool      `json:"is_public"`
	ViewCount    int       `json:"view_count"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// VideoInput carries the metadata for a new gallery entry.
type VideoInput struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	IsPublic     bool   `json:"is_public"`
}

// PublicVideos lists gallery videos visible without authentication.
func (c *Client) PublicVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.Get(ctx, "/videos/public", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Videos lists the caller's own uploads.
func (c *Client) Videos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.Get(ctx, "/videos/", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// CreateVideo registers a new gallery entry.
func (c *Client) CreateVideo(ctx context.Context, input VideoInput) (*Video, error) {
	var video Video
	if err := c.Post(ctx, "/videos/", input, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// DeleteVideo removes a gallery entry owned by the caller.
func (c *Client) DeleteVideo(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/videos/%d", id))
}
