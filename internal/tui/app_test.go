// ABOUTME: Tests for the root TUI model
// ABOUTME: Verifies screen selection and message-driven transitions

package tui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/auth"
	"github.com/ryze-ai/ryze-cli/internal/tui/dashboard"
)

func newAppClient(t *testing.T, authenticated bool) *api.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	session := auth.NewSession(auth.NewMemStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if authenticated {
		require.NoError(t, session.Login("tok", &auth.UserProfile{ID: 1, Username: "dev", UserType: auth.UserTypeDeveloper}))
	}

	client, err := api.New(api.Options{BaseURL: server.URL, Session: session})
	require.NoError(t, err)
	return client
}

func TestNew_AnonymousOpensLogin(t *testing.T) {
	app := New(newAppClient(t, false))
	assert.Equal(t, ScreenLogin, app.screen)

	app.Init()
	assert.Contains(t, app.View(), "Sign in to RYZE.ai")
}

func TestNew_AuthenticatedOpensDashboard(t *testing.T) {
	app := New(newAppClient(t, true))
	assert.Equal(t, ScreenDashboard, app.screen)
	assert.Contains(t, app.View(), "Loading")
}

func TestUpdate_SessionExpiredReturnsToLogin(t *testing.T) {
	app := New(newAppClient(t, true))

	model, _ := app.Update(sessionExpiredMsg{})
	got, ok := model.(*App)
	require.True(t, ok)
	assert.Equal(t, ScreenLogin, got.screen)
	assert.Contains(t, got.View(), "Session expired")
}

func TestUpdate_SnapshotRefreshesDashboard(t *testing.T) {
	app := New(newAppClient(t, true))

	snap := &dashboard.Snapshot{
		Requests: []api.Request{{ID: 1, Title: "Build a landing page"}},
	}
	model, cmd := app.Update(snapshotMsg{snap: snap})
	got := model.(*App)

	assert.Contains(t, got.View(), "Build a landing page")
	// The first settled refresh arms the tick chain
	assert.NotNil(t, cmd)
}

func TestUpdate_ExtraRefreshesShareOneTickChain(t *testing.T) {
	app := New(newAppClient(t, true))

	// The first settled refresh owns the tick chain.
	_, cmd := app.Update(snapshotMsg{snap: &dashboard.Snapshot{}})
	require.NotNil(t, cmd)

	// Manual refreshes settle while a tick is outstanding; arming
	// another would leave a second perpetual 30s loop running.
	_, cmd = app.Update(snapshotMsg{snap: &dashboard.Snapshot{}})
	assert.Nil(t, cmd)
	_, cmd = app.Update(snapshotMsg{})
	assert.Nil(t, cmd)

	// Once the tick fires, the next settled refresh re-arms it.
	_, cmd = app.Update(refreshTickMsg{})
	require.NotNil(t, cmd)
	_, cmd = app.Update(snapshotMsg{snap: &dashboard.Snapshot{}})
	assert.NotNil(t, cmd)
}

func TestUpdate_WindowSizePropagates(t *testing.T) {
	app := New(newAppClient(t, true))
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	got := model.(*App)
	assert.Equal(t, 120, got.width)
	assert.Equal(t, 50, got.height)
}
