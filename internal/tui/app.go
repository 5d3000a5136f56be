// ABOUTME: Root bubbletea model for the interactive TUI
// ABOUTME: Routes between the login form and the live dashboard

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryze-ai/ryze-cli/internal/api"
	"github.com/ryze-ai/ryze-cli/internal/poll"
	"github.com/ryze-ai/ryze-cli/internal/tui/dashboard"
	"github.com/ryze-ai/ryze-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
)

// Layout constants
const (
	minTerminalWidth = 80
	panelPadding     = 4
)

// loginDoneMsg is sent when the login request finishes
type loginDoneMsg struct {
	err error
}

// snapshotMsg is sent when a dashboard refresh settles
type snapshotMsg struct {
	snap *dashboard.Snapshot
	err  error
}

// refreshTickMsg arms the next dashboard refresh
type refreshTickMsg struct{}

// sessionExpiredMsg is sent when the backend rejects the stored token
type sessionExpiredMsg struct{}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	screen  Screen
	width   int
	height  int
	err     error
	expired bool

	// Login form state
	form     *huh.Form
	email    string
	password string

	// Dashboard state
	dash        *dashboard.Dashboard
	handle      *poll.Handle
	spin        spinner.Model
	loading     bool
	tickPending bool
}

// New creates the TUI application. The client's session decides which
// screen shows first.
func New(client *api.Client) *App {
	a := &App{
		client: client,
		handle: poll.NewHandle(poll.DefaultDebounce),
	}
	a.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)))

	if client.Session().IsAuthenticated() {
		a.enterDashboard()
	} else {
		a.enterLogin()
	}
	return a
}

func (a *App) enterLogin() {
	a.screen = ScreenLogin
	a.email = ""
	a.password = ""
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email or username").
				Value(&a.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&a.password),
		),
	).WithTheme(formTheme())
}

func (a *App) enterDashboard() {
	a.screen = ScreenDashboard
	a.expired = false
	a.dash = dashboard.New(a.client.Session().User(), a.dashboardWidth(), a.contentHeight())
	a.loading = true
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenDashboard {
		return tea.Batch(a.spin.Tick, a.fetchSnapshot())
	}
	return a.form.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dash != nil {
			a.dash.SetSize(a.dashboardWidth(), a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.handle.Stop()
			return a, tea.Quit
		}
		if a.screen == ScreenDashboard {
			switch msg.String() {
			case "q":
				a.handle.Stop()
				return a, tea.Quit
			case "r":
				// Manual refresh; debounce drops key mashing.
				return a, a.fetchSnapshot()
			}
		}

	case loginDoneMsg:
		if msg.err != nil {
			a.err = msg.err
			a.enterLogin()
			return a, a.form.Init()
		}
		a.err = nil
		a.enterDashboard()
		return a, tea.Batch(a.spin.Tick, a.fetchSnapshot())

	case snapshotMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
		} else if msg.snap != nil {
			a.err = nil
			a.dash.Update(msg.snap)
		}
		// A single refresh chain drives the dashboard. Manual refreshes
		// and login re-entries produce extra snapshotMsgs; only arm a
		// new tick when none is outstanding, or each trigger would leave
		// a permanent extra 30s loop behind.
		if a.tickPending {
			return a, nil
		}
		a.tickPending = true
		return a, tea.Tick(poll.DashboardInterval, func(time.Time) tea.Msg {
			return refreshTickMsg{}
		})

	case refreshTickMsg:
		a.tickPending = false
		if a.screen != ScreenDashboard {
			return a, nil
		}
		if !a.client.Session().IsAuthenticated() {
			return a, func() tea.Msg { return sessionExpiredMsg{} }
		}
		return a, a.fetchSnapshot()

	case sessionExpiredMsg:
		a.expired = true
		a.handle.Stop()
		a.enterLogin()
		return a, a.form.Init()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	if a.screen == ScreenLogin && a.form != nil {
		form, cmd := a.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			a.form = f
		}
		if a.form.State == huh.StateCompleted {
			return a, a.submitLogin()
		}
		if a.form.State == huh.StateAborted {
			return a, tea.Quit
		}
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	switch a.screen {
	case ScreenLogin:
		var header string
		if a.expired {
			header = styles.StatusWarning.Render("Session expired, please log in again") + "\n\n"
		}
		body := styles.Title.Render("Sign in to RYZE.ai") + "\n" + a.form.View()
		if a.err != nil {
			body += "\n" + styles.StatusCritical.Render(a.err.Error())
		}
		return header + styles.ActivePanel.Render(body)

	case ScreenDashboard:
		body := a.dash.View()
		if a.loading {
			body = a.spin.View() + " refreshing\n\n" + body
		}
		if a.err != nil {
			body += "\n" + styles.StatusWarning.Render(a.err.Error())
		}
		help := styles.Help.Render("r refresh • q quit")
		return styles.Panel.Render(body) + "\n" + help
	}
	return ""
}

// submitLogin exchanges the form credentials for a token.
func (a *App) submitLogin() tea.Cmd {
	email, password := a.email, a.password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()

		token, user, err := a.client.Login(ctx, api.LoginInput{
			Username: email,
			Password: password,
		})
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := a.client.Session().Login(token, user); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{}
	}
}

// fetchSnapshot pulls one refresh of dashboard data. A newer refresh
// supersedes one still in flight.
func (a *App) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		var snap dashboard.Snapshot
		err := a.handle.Do(context.Background(), func(ctx context.Context) error {
			requests, err := a.client.MyRequests(ctx)
			if err != nil {
				return err
			}
			conversations, err := a.client.Conversations(ctx)
			if err != nil {
				return err
			}
			sub, err := a.client.Subscription(ctx)
			if err != nil {
				return err
			}
			snap.Requests = requests
			snap.Conversations = conversations
			snap.Subscription = sub
			return nil
		})
		switch {
		case err == nil:
			return snapshotMsg{snap: &snap}
		case errors.Is(err, poll.ErrSuperseded), errors.Is(err, poll.ErrDebounced):
			return snapshotMsg{}
		case api.IsSessionExpired(err):
			return sessionExpiredMsg{}
		default:
			return snapshotMsg{err: err}
		}
	}
}

func (a *App) dashboardWidth() int {
	if a.width == 0 || a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

func (a *App) contentHeight() int {
	if a.height == 0 {
		return 24
	}
	return a.height - panelPadding
}

// formTheme returns a huh theme matching the dashboard palette.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger)

	return t
}
