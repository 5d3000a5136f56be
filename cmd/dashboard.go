// ABOUTME: Dashboard command launching the interactive TUI
// ABOUTME: Restores the stored session before handing off to bubbletea

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	Long:    `Open a terminal dashboard showing your requests, conversations, and plan status. The view refreshes itself every 30 seconds.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard validates the session and starts the TUI
func runDashboard(ctx context.Context) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Quietly drop a stale token so the TUI opens on the login form
	// instead of failing mid-refresh.
	if _, err := client.RestoreSession(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", formatAPIError(err))
		return 1
	}

	app := tui.New(client)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
