// ABOUTME: Health command for the ryze CLI
// ABOUTME: Checks backend connectivity without touching stored credentials

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

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := client.Health(ctx); err != nil {
		fmt.Fprintf(w, "Backend %s unreachable: %s\n", client.BaseURL(), formatAPIError(err))
		return 2
	}

	fmt.Fprintf(w, "Backend %s OK\n", client.BaseURL())
	return 0
}
