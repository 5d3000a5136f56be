// ABOUTME: Role command for the ryze CLI
// ABOUTME: Picks client or developer for accounts created without a role

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/auth"
)

var roleCmd = &cobra.Command{
	Use:       "role [client|developer]",
	Short:     "Select your account role",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"client", "developer"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRole(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
}

// runRole selects the account role and returns exit code
func runRole(ctx context.Context, w io.Writer, role string) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := client.SelectRole(ctx, auth.UserType(role))
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if err := session.Login(session.Token(), user); err != nil {
		fmt.Fprintf(w, "Error: failed to store profile: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Role set to %s\n", user.UserType)
	return 0
}
