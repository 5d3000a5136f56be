// ABOUTME: Dashboard component displaying the signed-in user's workspace
// ABOUTME: Shows requests, conversations with unread counts, and plan status

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
	"github.com/ryze-ai/ryze-cli/internal/tui/styles"
)

// Snapshot is one refresh worth of dashboard data.
type Snapshot struct {
	Requests      []api.Request
	Conversations []api.Conversation
	Subscription  *api.SubscriptionStatus
}

// Dashboard renders the signed-in user's workspace.
type Dashboard struct {
	user   *auth.UserProfile
	snap   *Snapshot
	width  int
	height int
}

// New creates a dashboard for the given user.
func New(user *auth.UserProfile, width, height int) *Dashboard {
	return &Dashboard{
		user:   user,
		width:  width,
		height: height,
	}
}

// Update replaces the dashboard data after a refresh.
func (d *Dashboard) Update(snap *Snapshot) {
	d.snap = snap
}

// SetSize updates the dashboard dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	if d.snap == nil {
		return styles.Panel.Width(d.width).Render("Loading your workspace...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("RYZE.ai"))
	sb.WriteString("\n")
	if d.user != nil {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s (%s)", d.user.DisplayName(), d.user.UserType)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(styles.ValueStyle.Render("Requests"))
	sb.WriteString(fmt.Sprintf("  %d open\n", len(d.snap.Requests)))
	for i, r := range d.snap.Requests {
		if i >= 5 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.snap.Requests)-5))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s  %s\n", styles.KeyStyle.Render(fmt.Sprintf("#%d", r.ID)), r.Title))
	}
	sb.WriteString("\n")

	sb.WriteString(styles.ValueStyle.Render("Conversations"))
	sb.WriteString(fmt.Sprintf("  %d active\n", len(d.snap.Conversations)))
	for i, conv := range d.snap.Conversations {
		if i >= 5 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.snap.Conversations)-5))
			break
		}
		line := fmt.Sprintf("  %s  %s", styles.KeyStyle.Render(fmt.Sprintf("#%d", conv.ID)), conv.OtherPartyName)
		if conv.UnreadCount > 0 {
			line += " " + styles.Badge.Render(fmt.Sprintf("%d", conv.UnreadCount))
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(styles.ValueStyle.Render("Plan"))
	sb.WriteString("  " + d.planLine() + "\n")

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

func (d *Dashboard) planLine() string {
	sub := d.snap.Subscription
	if sub == nil {
		return styles.Subtitle.Render("no subscription")
	}
	if sub.Active() {
		label := "active"
		if sub.PlanName != "" {
			label = sub.PlanName
		}
		return styles.StatusOK.Render(label)
	}
	return styles.StatusWarning.Render(sub.Status)
}
