// ABOUTME: Subscription command group for the ryze CLI
// ABOUTME: Shows plan status and drives the checkout and cancel flows

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
)

var subscriptionCmd = &cobra.Command{
	Use:     "subscription",
	Aliases: []string{"sub"},
	Short:   "Show your subscription status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSubscriptionStatus(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var subscriptionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a subscription checkout",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSubscriptionCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var subscriptionCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel your plan at the period end",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSubscriptionCancel(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	subscriptionCmd.AddCommand(subscriptionCreateCmd)
	subscriptionCmd.AddCommand(subscriptionCancelCmd)
	rootCmd.AddCommand(subscriptionCmd)
}

// runSubscriptionStatus prints the caller's plan
func runSubscriptionStatus(ctx context.Context, w io.Writer) int {
	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	status, err := client.Subscription(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, status)
		return 0
	}

	if status == nil {
		fmt.Fprintln(w, "No subscription")
		return 0
	}
	fmt.Fprintf(w, "Status: %s\n", status.Status)
	if status.PlanName != "" {
		fmt.Fprintf(w, "Plan:   %s\n", status.PlanName)
	}
	if status.CurrentPeriodEnd != nil {
		fmt.Fprintf(w, "Renews: %s\n", status.CurrentPeriodEnd.Format("2006-01-02"))
	}
	if status.CancelAtEnd {
		fmt.Fprintln(w, "Cancels at the end of the current period")
	}

	if status.Active() {
		if pending, ok := session.Hint(auth.HintPendingConversation); ok {
			resumePendingConversation(ctx, w, client, session, pending)
		}
	}
	return 0
}

// resumePendingConversation opens the conversation the user was blocked
// from starting before checkout. 'conversations start' records the request
// id as a hint when it hits the subscription wall; once the plan is
// active, the blocked flow completes here.
func resumePendingConversation(ctx context.Context, w io.Writer, client *api.Client, session *auth.Session, pending string) {
	requestID, err := strconv.ParseInt(pending, 10, 64)
	if err != nil {
		session.ClearHint(auth.HintPendingConversation)
		return
	}

	conversation, err := client.CreateConversation(ctx, requestID)
	if err != nil {
		fmt.Fprintf(w, "Could not start the conversation for request #%d: %s\n", requestID, formatAPIError(err))
		return
	}
	session.ClearHint(auth.HintPendingConversation)
	fmt.Fprintf(w, "Started conversation #%d with %s about request #%d\n", conversation.ID, conversation.OtherPartyName, requestID)
}

// runSubscriptionCreate starts a subscription checkout
func runSubscriptionCreate(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	checkout, err := client.CreateSubscription(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	fmt.Fprintln(w, "Open this URL in your browser to subscribe:")
	fmt.Fprintln(w, checkout.CheckoutURL)
	return 0
}

// runSubscriptionCancel cancels the plan at the period end
func runSubscriptionCancel(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := client.CancelSubscription(ctx); err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintln(w, "Subscription will end at the current period")
	return 0
}
