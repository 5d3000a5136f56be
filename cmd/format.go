// ABOUTME: Shared output helpers for the ryze CLI commands
// ABOUTME: JSON marshalling and friendly rendering of API errors

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ryze-ai/ryze-cli/internal/api"
)

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// formatAPIError turns a pipeline error into a one-line user message
func formatAPIError(err error) string {
	switch {
	case api.IsCancelled(err):
		return "cancelled"
	case api.IsTimeout(err):
		return "the request timed out, try again"
	case api.IsNetwork(err):
		return "network error, check your connection"
	case api.IsServer(err):
		return "RYZE.ai is having trouble right now, try again shortly"
	case api.IsSessionExpired(err):
		return "session expired, please run 'ryze login'"
	case api.IsSubscriptionRequired(err):
		return "this action needs an active subscription, run 'ryze subscription create'"
	case api.IsPermission(err):
		return "you do not have permission to do that"
	case api.IsNotFound(err):
		return "not found"
	case api.IsRateLimited(err):
		return "slow down, too many requests"
	default:
		return err.Error()
	}
}
