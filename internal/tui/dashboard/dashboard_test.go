// ABOUTME: Render tests for the dashboard component
// ABOUTME: Asserts on content, not on styling escape codes

package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
)

func testUser() *auth.UserProfile {
	return &auth.UserProfile{
		ID:       1,
		Username: "devuser",
		FullName: "Dev User",
		UserType: auth.UserTypeDeveloper,
	}
}

func TestView_LoadingState(t *testing.T) {
	d := New(testUser(), 80, 24)
	assert.Contains(t, d.View(), "Loading")
}

func TestView_RendersSnapshot(t *testing.T) {
	d := New(testUser(), 100, 40)
	end := time.Now().Add(30 * 24 * time.Hour)
	d.Update(&Snapshot{
		Requests: []api.Request{
			{ID: 1, Title: "Build a landing page", Status: "open"},
		},
		Conversations: []api.Conversation{
			{ID: 5, OtherPartyName: "acme", UnreadCount: 2},
		},
		Subscription: &api.SubscriptionStatus{Status: "active", PlanName: "Pro", CurrentPeriodEnd: &end},
	})

	view := d.View()
	assert.Contains(t, view, "Dev User")
	assert.Contains(t, view, "Build a landing page")
	assert.Contains(t, view, "acme")
	assert.Contains(t, view, "Pro")
}

func TestView_TruncatesLongLists(t *testing.T) {
	d := New(testUser(), 100, 40)
	snap := &Snapshot{}
	for i := 0; i < 8; i++ {
		snap.Requests = append(snap.Requests, api.Request{ID: int64(i), Title: "Request"})
	}
	d.Update(snap)

	assert.Contains(t, d.View(), "and 3 more")
}

func TestView_NoSubscription(t *testing.T) {
	d := New(testUser(), 100, 40)
	d.Update(&Snapshot{})
	assert.Contains(t, d.View(), "no subscription")
}
