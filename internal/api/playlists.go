// ABOUTME: Playlist endpoint facade for organizing gallery videos
// ABOUTME: Playlists group a user's videos into shareable collections

package api

import (
	"context"
	"fmt"
	"time"
)

// Playlist is a named collection of gallery videos.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      int64     `json:"user_id"`
	VideoCount  int       `json:"video_count"`
	Videos      []Video   `json:"videos,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaylistInput carries the editable playlist fields.
type PlaylistInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Playlists lists the caller's playlists.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.Get(ctx, "/playlists/", &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Playlist fetches one playlist including its videos.
func (c *Client) Playlist(ctx context.Context, id int64) (*Playlist, error) {
	var playlist Playlist
	if err := c.Get(ctx, fmt.Sprintf("/playlists/%d", id), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist creates an empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, input PlaylistInput) (*Playlist, error) {
	var playlist Playlist
	if err := c.Post(ctx, "/playlists/", input, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddVideoToPlaylist appends a video to a playlist owned by the caller.
func (c *Client) AddVideoToPlaylist(ctx context.Context, playlistID, videoID int64) error {
	body := struct {
		VideoID int64 `json:"video_id"`
	}{VideoID: videoID}
	return c.Post(ctx, fmt.Sprintf("/playlists/%d/videos", playlistID), body, nil)
}

// RemoveVideoFromPlaylist drops a video from a playlist.
func (c *Client) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID int64) error {
	return c.Delete(ctx, fmt.Sprintf("/playlists/%d/videos/%d", playlistID, videoID))
}
