// ABOUTME: Session manager owning login, logout, and restore semantics
// ABOUTME: Keeps the token store and in-memory session state in sync

package auth

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// Session hint keys for ephemeral, session-scoped state.
const (
	HintRedirectTarget      = "redirect_target"
	HintPendingConversation = "pending_conversation_request_id"
	HintPendingSubscription = "pending_subscription_purchase"
)

// staleCredential is implemented by errors that indicate the stored token
// was rejected by the backend, as opposed to transport failures.
type staleCredential interface {
	StaleCredential() bool
}

// RestoreFunc fetches the current user profile using the persisted token.
type RestoreFunc func(ctx context.Context) (*UserProfile, error)

// Session holds the authenticated state for one client instance.
// It is constructor-injected rather than a package-level singleton so tests
// can run isolated sessions in parallel.
//
// Valid transitions: ANONYMOUS -> AUTHENTICATED via Login or a successful
// Restore; AUTHENTICATED -> ANONYMOUS via Logout or ForceExpire. A session
// is authenticated exactly when it holds a token.
type Session struct {
	mu        sync.RWMutex
	store     TokenStore
	token     string
	user      *UserProfile
	hints     map[string]string
	onExpired func()
	expire    singleflight.Group
	logger    *slog.Logger
}

// NewSession creates a session backed by the given token store.
func NewSession(store TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:  store,
		hints:  make(map[string]string),
		logger: logger,
	}
	s.bootstrap()
	return s
}

// bootstrap loads the persisted token and cached user into memory.
// The user may be stale until Restore re-validates it against the backend.
func (s *Session) bootstrap() {
	token, err := s.store.Token()
	if err != nil || token == "" {
		return
	}
	s.token = token
	if user, err := s.store.User(); err == nil {
		s.user = user
	}
	if hints, err := s.store.Hints(); err == nil {
		for k, v := range hints {
			s.hints[k] = v
		}
	}
}

// SetOnExpired registers the callback fired when a 401 forces the session out.
func (s *Session) SetOnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Login stores the token and the normalized profile, marking the session
// authenticated. The caller is responsible for having validated the token
// against the backend first; Login itself is a pure state transition.
// Both arguments are required: a session is never authenticated without a
// profile, so a backend response missing either is rejected upstream.
func (s *Session) Login(token string, user *UserProfile) error {
	if token == "" {
		return errors.New("login requires a token")
	}
	if user == nil {
		return errors.New("login requires a user profile")
	}
	if err := s.store.SetToken(token); err != nil {
		return err
	}
	if err := s.store.SetUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.logger.Debug("session authenticated", "username", user.Username, "user_type", user.UserType)
	return nil
}

// Logout clears the token store, session fields, and session-scoped hints.
// Safe to call when already logged out.
func (s *Session) Logout() error {
	err := s.store.Clear()

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.hints = make(map[string]string)
	s.mu.Unlock()

	s.logger.Debug("session cleared")
	return err
}

// ForceExpire tears the session down after a 401. Concurrent calls collapse
// into a single transition, and the expiry callback fires at most once per
// authenticated period. notify is false for public routes and silent
// restores, which clear state without forcing navigation.
func (s *Session) ForceExpire(notify bool) {
	s.expire.Do("expire", func() (any, error) {
		s.mu.RLock()
		wasAuthenticated := s.token != ""
		onExpired := s.onExpired
		s.mu.RUnlock()

		if !wasAuthenticated {
			return nil, nil
		}

		if err := s.Logout(); err != nil {
			s.logger.Warn("failed to clear credential store on expiry", "error", err)
		}
		if notify && onExpired != nil {
			onExpired()
		}
		return nil, nil
	})
}

// Restore re-validates a persisted token on startup. On success the session
// becomes authenticated with a fresh profile. A rejected token is cleared
// silently so the caller lands on public content; transport failures leave
// the token in place. Cancelling ctx discards the result without mutating
// any state, so a late response cannot revive a session the user already
// abandoned.
func (s *Session) Restore(ctx context.Context, fetch RestoreFunc) (*UserProfile, error) {
	token := s.Token()
	if token == "" {
		return nil, nil
	}

	if tokenExpired(token) {
		s.logger.Debug("persisted token already expired, clearing")
		s.ForceExpire(false)
		return nil, nil
	}

	user, err := fetch(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var stale staleCredential
		if errors.As(err, &stale) && stale.StaleCredential() {
			s.logger.Debug("persisted token rejected, clearing")
			s.ForceExpire(false)
			return nil, nil
		}
		// Transport failure: keep the token for the next boot
		return nil, err
	}

	if err := s.Login(token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAuthenticated reports whether the session holds a token.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, or empty when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, which may be nil right after boot until
// Restore completes.
func (s *Session) User() *UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetHint records a session-scoped value (e.g. a redirect target, or the
// request a user wanted to discuss before hitting the subscription wall).
// Hints persist with the credential so a short-lived CLI process can pick
// the flow back up on its next run.
func (s *Session) SetHint(key, value string) {
	s.mu.Lock()
	s.hints[key] = value
	hints := maps.Clone(s.hints)
	s.mu.Unlock()

	if err := s.store.SetHints(hints); err != nil {
		s.logger.Warn("failed to persist session hints", "error", err)
	}
}

// Hint returns a previously recorded hint.
func (s *Session) Hint(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.hints[key]
	return v, ok
}

// ClearHint removes a single hint.
func (s *Session) ClearHint(key string) {
	s.mu.Lock()
	delete(s.hints, key)
	hints := maps.Clone(s.hints)
	s.mu.Unlock()

	if err := s.store.SetHints(hints); err != nil {
		s.logger.Warn("failed to persist session hints", "error", err)
	}
}

// tokenExpired reports whether a JWT carries an exp claim in the past.
// The signature is not verified; this only short-circuits the restore
// round-trip for tokens the backend would reject anyway. Tokens that do not
// parse as JWTs are left for the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
