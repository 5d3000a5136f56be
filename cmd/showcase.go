// ABOUTME: Showcase command group for the ryze CLI
// ABOUTME: Browses public portfolios and manages the caller's own

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
)

var showcaseMine bool

var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Browse developer portfolio projects",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runShowcaseList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var showcaseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one portfolio project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runShowcaseShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	showcaseCmd.Flags().BoolVar(&showcaseMine, "mine", false, "List your own projects instead of the public board")
	showcaseCmd.AddCommand(showcaseShowCmd)
	rootCmd.AddCommand(showcaseCmd)
}

// runShowcaseList prints portfolio projects
func runShowcaseList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var showcases []api.Showcase
	if showcaseMine {
		showcases, err = client.MyShowcases(ctx)
	} else {
		showcases, err = client.PublicShowcases(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, showcases)
		return 0
	}

	if len(showcases) == 0 {
		fmt.Fprintln(w, "No showcase projects")
		return 0
	}
	fmt.Fprintf(w, "%-6s %-40s %s\n", "ID", "TITLE", "DEVELOPER")
	for _, s := range showcases {
		fmt.Fprintf(w, "%-6d %-40s %s\n", s.ID, truncate(s.Title, 40), s.Developer)
	}
	return 0
}

// runShowcaseShow prints one project, tolerating dead links
func runShowcaseShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid showcase id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	showcase, err := client.ShowcaseDetail(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	if showcase == nil {
		fmt.Fprintf(w, "Showcase #%d no longer exists\n", id)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, showcase)
		return 0
	}
	fmt.Fprintf(w, "%s by %s\n\n", showcase.Title, showcase.Developer)
	fmt.Fprintln(w, showcase.Description)
	if len(showcase.Technologies) > 0 {
		fmt.Fprintf(w, "\nTech: %s\n", strings.Join(showcase.Technologies, ", "))
	}
	if showcase.ProjectURL != "" {
		fmt.Fprintf(w, "Live: %s\n", showcase.ProjectURL)
	}
	if showcase.RepoURL != "" {
		fmt.Fprintf(w, "Repo: %s\n", showcase.RepoURL)
	}
	return 0
}
