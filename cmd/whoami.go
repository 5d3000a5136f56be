// ABOUTME: Whoami command for the ryze CLI
// ABOUTME: Restores the stored session and prints the current profile

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Validate the stored token against the backend and print the current profile. A stale token is cleared quietly.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami validates the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := client.RestoreSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	if user == nil {
		fmt.Fprintln(w, "Not signed in")
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, user)
		return 0
	}

	fmt.Fprintf(w, "User:   %s\n", user.DisplayName())
	fmt.Fprintf(w, "Email:  %s\n", user.Email)
	fmt.Fprintf(w, "Role:   %s\n", user.UserType)
	fmt.Fprintf(w, "API:    %s\n", client.BaseURL())
	if user.NeedsRoleSelection {
		fmt.Fprintln(w, "Note:   no role selected yet, run 'ryze role client' or 'ryze role developer'")
	}
	return 0
}
