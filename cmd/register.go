// ABOUTME: Register command for the ryze CLI
// ABOUTME: Creates an account and signs in with the returned token

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
	"github.com/ryze-ai/ryze-cli/internal/auth"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a RYZE.ai account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role: client or developer")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes account creation and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := promptRegistration(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	input := api.RegisterInput{
		Username: registerUsername,
		Email:    registerEmail,
		Password: registerPassword,
		UserType: auth.UserType(registerRole),
	}

	token, user, err := client.Register(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	if err := session.Login(token, user); err != nil {
		fmt.Fprintf(w, "Error: failed to store credentials: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Welcome to RYZE.ai, %s\n", user.DisplayName())
	return 0
}

// promptRegistration fills missing registration fields interactively
func promptRegistration() error {
	var fields []huh.Field
	if registerUsername == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&registerUsername))
	}
	if registerEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&registerEmail))
	}
	if registerPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&registerPassword))
	}
	if registerRole == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("I am a").
			Options(
				huh.NewOption("Client posting work", "client"),
				huh.NewOption("Developer looking for work", "developer"),
			).
			Value(&registerRole))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
