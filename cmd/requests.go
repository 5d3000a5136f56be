// ABOUTME: Requests command group for the ryze CLI
// ABOUTME: Lists, creates, and watches project requests

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/poll"
)

var (
	requestsPublic bool
	requestsShared bool
	requestsWatch  bool

	requestTitle   string
	requestContent string
	requestBudget  float64
	requestHidden  bool
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Browse and manage project requests",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequestsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new project request",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequestsCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one public request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequestsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var requestsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your requests",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequestsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	requestsCmd.Flags().BoolVar(&requestsPublic, "public", false, "Browse public requests instead of your own")
	requestsCmd.Flags().BoolVar(&requestsShared, "shared", false, "List requests shared with you")
	requestsCmd.Flags().BoolVar(&requestsWatch, "watch", false, "Keep refreshing the list every 60s")

	requestsCreateCmd.Flags().StringVar(&requestTitle, "title", "", "Request title")
	requestsCreateCmd.Flags().StringVar(&requestContent, "content", "", "Request description")
	requestsCreateCmd.Flags().Float64Var(&requestBudget, "budget", 0, "Estimated budget in USD")
	requestsCreateCmd.Flags().BoolVar(&requestHidden, "private", false, "Keep the request off the public board")
	_ = requestsCreateCmd.MarkFlagRequired("title")
	_ = requestsCreateCmd.MarkFlagRequired("content")

	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsShowCmd)
	requestsCmd.AddCommand(requestsDeleteCmd)
	rootCmd.AddCommand(requestsCmd)
}

// runRequestsList lists requests, optionally refreshing on an interval
func runRequestsList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fetch := func(ctx context.Context) ([]api.Request, error) {
		switch {
		case requestsPublic:
			return client.PublicRequests(ctx)
		case requestsShared:
			return client.SharedRequests(ctx)
		default:
			return client.MyRequests(ctx)
		}
	}

	render := func(requests []api.Request) {
		if IsJSONOutput() {
			printJSON(w, requests)
			return
		}
		fmt.Fprintln(w, formatRequests(requests))
	}

	if !requestsWatch {
		requests, err := fetch(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		render(requests)
		return 0
	}

	poller := &poll.Poller{
		Interval: poll.RequestInterval,
		Handle:   poll.NewHandle(poll.DefaultDebounce),
		OnError: func(err error) {
			fmt.Fprintf(w, "Refresh failed: %s\n", formatAPIError(err))
		},
	}
	err = poller.Run(ctx, func(ctx context.Context) error {
		requests, err := fetch(ctx)
		if err != nil {
			return err
		}
		render(requests)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	return 0
}

// runRequestsCreate posts a new request and returns exit code
func runRequestsCreate(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	input := api.RequestInput{
		Title:    requestTitle,
		Content:  requestContent,
		IsPublic: !requestHidden,
	}
	if requestBudget > 0 {
		input.EstimatedBudget = &requestBudget
	}

	request, err := client.CreateRequest(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, request)
		return 0
	}
	fmt.Fprintf(w, "Created request #%d: %s\n", request.ID, request.Title)
	return 0
}

// runRequestsShow prints one public request
func runRequestsShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid request id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	request, err := client.PublicRequest(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, request)
		return 0
	}
	fmt.Fprintf(w, "#%d %s\n", request.ID, request.Title)
	fmt.Fprintf(w, "By %s, status %s\n\n", request.OwnerUsername, request.Status)
	fmt.Fprintln(w, request.Content)
	if request.EstimatedBudget != nil {
		fmt.Fprintf(w, "\nBudget: $%.2f\n", *request.EstimatedBudget)
	}
	return 0
}

// runRequestsDelete removes one of the caller's requests
func runRequestsDelete(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid request id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := client.DeleteRequest(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Deleted request #%d\n", id)
	return 0
}

// formatRequests renders a request list as a table
func formatRequests(requests []api.Request) string {
	if len(requests) == 0 {
		return "No requests"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-40s %-10s %s\n", "ID", "TITLE", "STATUS", "OWNER")
	for _, r := range requests {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(&sb, "%-6d %-40s %-10s %s\n", r.ID, title, r.Status, r.OwnerUsername)
	}
	return strings.TrimRight(sb.String(), "\n")
}
