// ABOUTME: Auth endpoint facade for login, registration, and profile fetch
// ABOUTME: Shapes credentials to the wire format and normalizes the user payload

package api

import (
	"context"
	"fmt"

	"github.com/ryze-ai/ryze-cli/internal/auth"
)

// LoginInput carries the credentials for a password login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	FullName string        `json:"full_name,omitempty"`
	UserType auth.UserType `json:"user_type,omitempty"`
}

// tokenResponse is the wire shape returned by login and register.
type tokenResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        *auth.UserProfile `json:"user"`
}

// Login exchanges credentials for a bearer token and profile. It does not
// mutate the session; callers pass the result to Session.Login once they
// decide to adopt it.
func (c *Client) Login(ctx context.Context, input LoginInput) (string, *auth.UserProfile, error) {
	var resp tokenResponse
	if err := c.Post(ctx, "/auth/login", input, &resp); err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" {
		return "", nil, &Error{Kind: KindUnknown, Message: "login response carried no token"}
	}
	if resp.User == nil {
		return "", nil, &Error{Kind: KindUnknown, Message: "login response carried no user profile"}
	}
	return resp.AccessToken, resp.User, nil
}

// Register creates an account and returns the initial token and profile.
func (c *Client) Register(ctx context.Context, input RegisterInput) (string, *auth.UserProfile, error) {
	var resp tokenResponse
	if err := c.Post(ctx, "/auth/register", input, &resp); err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" {
		return "", nil, &Error{Kind: KindUnknown, Message: "registration response carried no token"}
	}
	if resp.User == nil {
		return "", nil, &Error{Kind: KindUnknown, Message: "registration response carried no user profile"}
	}
	return resp.AccessToken, resp.User, nil
}

// Me fetches the profile for the current token. Session restore passes
// SilentExpiry so a rejected token degrades to anonymous without firing
// the expiry callback.
func (c *Client) Me(ctx context.Context, opts ...RequestOption) (*auth.UserProfile, error) {
	var user auth.UserProfile
	if err := c.Get(ctx, "/auth/me", &user, opts...); err != nil {
		return nil, err
	}
	return &user, nil
}

// SelectRole records the client/developer choice for accounts that
// registered without one.
func (c *Client) SelectRole(ctx context.Context, userType auth.UserType) (*auth.UserProfile, error) {
	body := struct {
		UserType auth.UserType `json:"user_type"`
	}{UserType: userType}

	var user auth.UserProfile
	if err := c.Post(ctx, "/auth/select-role", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RestoreSession re-validates a persisted token through the session
// manager. The fetch is cancellable: tearing down ctx discards the result
// without touching session state.
func (c *Client) RestoreSession(ctx context.Context) (*auth.UserProfile, error) {
	return c.session.Restore(ctx, func(ctx context.Context) (*auth.UserProfile, error) {
		return c.Me(ctx, SilentExpiry())
	})
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.Get(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "" && status.Status != "ok" && status.Status != "healthy" {
		return fmt.Errorf("backend reported status %q", status.Status)
	}
	return nil
}
