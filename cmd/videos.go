// ABOUTME: Videos command group for the ryze CLI
// ABOUTME: Browses the public gallery and manages the caller's uploads

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

var (
	videosMine bool

	videoTitle       string
	videoDescription string
	videoURL         string
	videoPrivate     bool
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Browse the video gallery",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVideosList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var videosRateCmd = &cobra.Command{
	Use:   "rate <id> <1-5>",
	Short: "Rate a gallery video",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVideosRate(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var videosAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a video in the gallery",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVideosAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	videosCmd.Flags().BoolVar(&videosMine, "mine", false, "List your own uploads instead of the public gallery")

	videosAddCmd.Flags().StringVar(&videoTitle, "title", "", "Video title")
	videosAddCmd.Flags().StringVar(&videoDescription, "description", "", "Video description")
	videosAddCmd.Flags().StringVar(&videoURL, "url", "", "Hosted video URL")
	videosAddCmd.Flags().BoolVar(&videoPrivate, "private", false, "Keep the video out of the public gallery")
	_ = videosAddCmd.MarkFlagRequired("title")
	_ = videosAddCmd.MarkFlagRequired("url")

	videosCmd.AddCommand(videosAddCmd)
	videosCmd.AddCommand(videosRateCmd)
	rootCmd.AddCommand(videosCmd)
}

// runVideosAdd registers a gallery entry
func runVideosAdd(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	video, err := client.CreateVideo(ctx, api.VideoInput{
		Title:       videoTitle,
		Description: videoDescription,
		VideoURL:    videoURL,
		IsPublic:    !videoPrivate,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Added video #%d: %s\n", video.ID, video.Title)
	return 0
}

// runVideosList prints gallery videos
func runVideosList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var videos []api.Video
	if videosMine {
		videos, err = client.Videos(ctx)
	} else {
		videos, err = client.PublicVideos(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, videos)
		return 0
	}

	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos")
		return 0
	}
	fmt.Fprintf(w, "%-6s %-40s %-20s %s\n", "ID", "TITLE", "UPLOADER", "VIEWS")
	for _, v := range videos {
		fmt.Fprintf(w, "%-6d %-40s %-20s %d\n", v.ID, truncate(v.Title, 40), v.Uploader, v.ViewCount)
	}
	return 0
}

// runVideosRate records a vote for a video
func runVideosRate(ctx context.Context, w io.Writer, idArg, ratingArg string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid video id %q\n", idArg)
		return 2
	}
	rating, err := strconv.Atoi(ratingArg)
	if err != nil || rating < 1 || rating > 5 {
		fmt.Fprintf(w, "Error: rating must be 1-5\n")
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	summary, err := client.RateVideo(ctx, id, rating)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Rated video #%d, average now %.1f (%d votes)\n", id, summary.AverageRating, summary.TotalRatings)
	return 0
}
