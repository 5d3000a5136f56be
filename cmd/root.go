// ABOUTME: Root command for the ryze CLI
// ABOUTME: Handles global flags and wires config, session, and API client

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
	"github.com/ryze-ai/ryze-cli/internal/config"
	"github.com/ryze-ai/ryze-cli/internal/logger"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "ryze",
	Short: "CLI for the RYZE.ai marketplace",
	Long: `ryze is a command-line interface for the RYZE.ai freelance marketplace.

It lets clients post project requests and developers browse work, message
clients, and manage their showcase, all from the terminal.

Environment Variables:
  RYZE_API_URL  Backend API URL (default: https://api.ryze.ai)
  RYZE_DEV      Set to true to target http://localhost:8000`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides RYZE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the API client backed by the on-disk credential store.
func newClient() (*api.Client, *auth.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store := auth.NewFileStore(auth.DefaultConfigDir())
	session := auth.NewSession(store, slog.Default())
	session.SetOnExpired(func() {
		fmt.Fprintln(os.Stderr, "Session expired, please run 'ryze login'")
	})

	client, err := api.New(api.Options{
		BaseURL:    cfg.ResolveAPIURL(apiURL),
		Session:    session,
		Timeout:    cfg.RequestTimeout,
		RetryDelay: cfg.RetryDelay,
		MaxRetries: cfg.MaxRetries,
		Logger:     slog.Default(),
	})
	if err != nil {
		return nil, nil, err
	}
	return client, session, nil
}
