// ABOUTME: Playlists command group for the ryze CLI
// ABOUTME: Lists playlists and manages their video membership

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Manage your video playlists",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlaylistsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var playlistsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a playlist and its videos",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlaylistsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var playlistsAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <video-id>",
	Short: "Add a video to a playlist",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlaylistsAdd(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var (
	playlistName        string
	playlistDescription string
)

var playlistsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty playlist",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlaylistsCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	playlistsCreateCmd.Flags().StringVar(&playlistName, "name", "", "Playlist name")
	playlistsCreateCmd.Flags().StringVar(&playlistDescription, "description", "", "Playlist description")
	_ = playlistsCreateCmd.MarkFlagRequired("name")

	playlistsCmd.AddCommand(playlistsCreateCmd)
	playlistsCmd.AddCommand(playlistsShowCmd)
	playlistsCmd.AddCommand(playlistsAddCmd)
	rootCmd.AddCommand(playlistsCmd)
}

// runPlaylistsCreate creates an empty playlist
func runPlaylistsCreate(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	playlist, err := client.CreatePlaylist(ctx, api.PlaylistInput{
		Name:        playlistName,
		Description: playlistDescription,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Created playlist #%d: %s\n", playlist.ID, playlist.Name)
	return 0
}

// runPlaylistsList prints the caller's playlists
func runPlaylistsList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	playlists, err := client.Playlists(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, playlists)
		return 0
	}

	if len(playlists) == 0 {
		fmt.Fprintln(w, "No playlists")
		return 0
	}
	fmt.Fprintf(w, "%-6s %-30s %s\n", "ID", "NAME", "VIDEOS")
	for _, p := range playlists {
		fmt.Fprintf(w, "%-6d %-30s %d\n", p.ID, truncate(p.Name, 30), p.VideoCount)
	}
	return 0
}

// runPlaylistsShow prints one playlist with its videos
func runPlaylistsShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid playlist id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	playlist, err := client.Playlist(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, playlist)
		return 0
	}
	fmt.Fprintf(w, "%s (%d videos)\n", playlist.Name, playlist.VideoCount)
	for _, v := range playlist.Videos {
		fmt.Fprintf(w, "  #%-5d %s\n", v.ID, v.Title)
	}
	return 0
}

// runPlaylistsAdd appends a video to a playlist
func runPlaylistsAdd(ctx context.Context, w io.Writer, playlistArg, videoArg string) int {
	playlistID, err := strconv.ParseInt(playlistArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid playlist id %q\n", playlistArg)
		return 2
	}
	videoID, err := strconv.ParseInt(videoArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid video id %q\n", videoArg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := client.AddVideoToPlaylist(ctx, playlistID, videoID); err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Added video #%d to playlist #%d\n", videoID, playlistID)
	return 0
}
