// ABOUTME: Profile command for the ryze CLI
// ABOUTME: Shows and updates the role-specific client or developer profile

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your role-specific profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var (
	profileBio        string
	profileCompany    string
	profileIndustry   string
	profileSkills     string
	profileExperience int
	profileRate       float64
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Create or update your role-specific profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileUpdate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Short bio")
	profileUpdateCmd.Flags().StringVar(&profileCompany, "company", "", "Company name (clients)")
	profileUpdateCmd.Flags().StringVar(&profileIndustry, "industry", "", "Industry (clients)")
	profileUpdateCmd.Flags().StringVar(&profileSkills, "skills", "", "Comma-separated skills (developers)")
	profileUpdateCmd.Flags().IntVar(&profileExperience, "experience", 0, "Years of experience (developers)")
	profileUpdateCmd.Flags().Float64Var(&profileRate, "rate", 0, "Hourly rate in USD (developers)")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfile fetches the role-specific profile and returns exit code
func runProfile(ctx context.Context, w io.Writer) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := session.User()
	if user == nil {
		fmt.Fprintln(w, "Not signed in, run 'ryze login'")
		return 1
	}

	switch user.UserType {
	case auth.UserTypeDeveloper:
		profile, err := client.DeveloperProfile(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		if profile == nil {
			fmt.Fprintln(w, "No developer profile yet")
			return 0
		}
		if IsJSONOutput() {
			printJSON(w, profile)
			return 0
		}
		fmt.Fprintln(w, formatDeveloperProfile(profile))
		return 0

	default:
		profile, err := client.ClientProfile(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		if profile == nil {
			fmt.Fprintln(w, "No client profile yet")
			return 0
		}
		if IsJSONOutput() {
			printJSON(w, profile)
			return 0
		}
		fmt.Fprintln(w, formatClientProfile(profile))
		return 0
	}
}

// runProfileUpdate writes the role-specific profile
func runProfileUpdate(ctx context.Context, w io.Writer) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := session.User()
	if user == nil {
		fmt.Fprintln(w, "Not signed in, run 'ryze login'")
		return 1
	}

	switch user.UserType {
	case auth.UserTypeDeveloper:
		input := api.DeveloperProfileInput{
			Skills:          profileSkills,
			ExperienceYears: profileExperience,
			Bio:             profileBio,
		}
		if profileRate > 0 {
			input.HourlyRate = &profileRate
		}
		profile, err := client.UpdateDeveloperProfile(ctx, input)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		fmt.Fprintln(w, "Profile updated")
		fmt.Fprintln(w, formatDeveloperProfile(profile))
		return 0

	default:
		profile, err := client.UpdateClientProfile(ctx, api.ClientProfileInput{
			CompanyName: profileCompany,
			Industry:    profileIndustry,
			Bio:         profileBio,
		})
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		fmt.Fprintln(w, "Profile updated")
		fmt.Fprintln(w, formatClientProfile(profile))
		return 0
	}
}

// formatDeveloperProfile renders a developer profile for humans
func formatDeveloperProfile(p *api.DeveloperProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills:       %s\n", p.Skills)
	fmt.Fprintf(&sb, "Experience:   %d years\n", p.ExperienceYears)
	if p.HourlyRate != nil {
		fmt.Fprintf(&sb, "Hourly rate:  $%.2f\n", *p.HourlyRate)
	}
	fmt.Fprintf(&sb, "Public:       %t", p.IsPublic)
	return sb.String()
}

// formatClientProfile renders a client profile for humans
func formatClientProfile(p *api.ClientProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:  %s\n", p.CompanyName)
	fmt.Fprintf(&sb, "Industry: %s", p.Industry)
	return sb.String()
}
