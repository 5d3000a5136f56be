// ABOUTME: Conversations command group for the ryze CLI
// ABOUTME: Lists threads, tails messages, and sends replies

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
	"github.com/ryze-ai/ryze-cli/internal/poll"
)

var (
	conversationsWatch bool
	messageBody        string
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"convos"},
	Short:   "List your conversations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runConversationsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the messages in a conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runConversationsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var conversationsSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Send a message in a conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runConversationsSend(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var conversationsStartCmd = &cobra.Command{
	Use:   "start <request-id>",
	Short: "Start a conversation about a request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runConversationsStart(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	conversationsShowCmd.Flags().BoolVar(&conversationsWatch, "watch", false, "Keep refreshing the thread every 5s")
	conversationsSendCmd.Flags().StringVarP(&messageBody, "message", "m", "", "Message text")
	_ = conversationsSendCmd.MarkFlagRequired("message")

	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsSendCmd)
	conversationsCmd.AddCommand(conversationsStartCmd)
	rootCmd.AddCommand(conversationsCmd)
}

// runConversationsList prints the caller's conversations
func runConversationsList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	conversations, err := client.Conversations(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, conversations)
		return 0
	}

	if len(conversations) == 0 {
		fmt.Fprintln(w, "No conversations")
		return 0
	}
	fmt.Fprintf(w, "%-6s %-30s %-25s %s\n", "ID", "REQUEST", "WITH", "UNREAD")
	for _, conv := range conversations {
		unread := "-"
		if conv.UnreadCount > 0 {
			unread = strconv.Itoa(conv.UnreadCount)
		}
		fmt.Fprintf(w, "%-6d %-30s %-25s %s\n", conv.ID, truncate(conv.RequestTitle, 30), conv.OtherPartyName, unread)
	}
	return 0
}

// runConversationsShow prints a thread, optionally tailing it
func runConversationsShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid conversation id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var lastSeen int64
	show := func(ctx context.Context) error {
		messages, err := client.Messages(ctx, id)
		if err != nil {
			return err
		}
		if IsJSONOutput() {
			printJSON(w, messages)
		} else {
			for _, m := range messages {
				if m.ID <= lastSeen {
					continue
				}
				fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt.Format("15:04"), m.SenderName, m.Content)
				lastSeen = m.ID
			}
		}
		return client.MarkRead(ctx, id)
	}

	if !conversationsWatch {
		if err := show(ctx); err != nil {
			fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
			return 1
		}
		return 0
	}

	poller := &poll.Poller{
		Interval: poll.MessageInterval,
		Handle:   poll.NewHandle(poll.DefaultDebounce),
		OnError: func(err error) {
			fmt.Fprintf(w, "Refresh failed: %s\n", formatAPIError(err))
		},
	}
	if err := poller.Run(ctx, show); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	return 0
}

// runConversationsSend posts one message
func runConversationsSend(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid conversation id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	message, err := client.SendMessage(ctx, id, messageBody)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Sent message #%d\n", message.ID)
	return 0
}

// runConversationsStart opens a thread about a request
func runConversationsStart(ctx context.Context, w io.Writer, arg string) int {
	requestID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid request id %q\n", arg)
		return 2
	}

	client, session, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	conversation, err := client.CreateConversation(ctx, requestID)
	if err != nil {
		if api.IsSubscriptionRequired(err) {
			// Remember where the user was headed so the next session can
			// resume after checkout.
			session.SetHint(auth.HintPendingConversation, arg)
			fmt.Fprintln(w, "Messaging clients needs an active subscription.")
			fmt.Fprintln(w, "Run 'ryze subscription create', then 'ryze subscription status' once you have paid to pick up where you left off.")
			return 1
		}
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}
	fmt.Fprintf(w, "Started conversation #%d with %s\n", conversation.ID, conversation.OtherPartyName)
	return 0
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
