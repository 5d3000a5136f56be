// ABOUTME: Login command for the ryze CLI
// ABOUTME: Exchanges credentials for a token and persists the session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to RYZE.ai",
	Long:  `Sign in with your RYZE.ai credentials. The token is stored under your user config directory for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Email or username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	username, password := loginUsername, loginPassword
	if username == "" || password == "" {
		if err := promptCredentials(&username, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	token, user, err := client.Login(ctx, api.LoginInput{Username: username, Password: password})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	if err := session.Login(token, user); err != nil {
		fmt.Fprintf(w, "Error: failed to store credentials: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Signed in as %s\n", user.DisplayName())
	if user.NeedsRoleSelection {
		fmt.Fprintln(w, "You have not picked a role yet; run 'ryze role client' or 'ryze role developer'.")
	}
	return 0
}

// promptCredentials fills missing credentials interactively
func promptCredentials(username, password *string) error {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().Title("Email or username").Value(username))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
