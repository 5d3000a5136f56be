// ABOUTME: Cancellation handles and self-rescheduling pollers for live views
// ABOUTME: Each view owns one handle so a new fetch supersedes the one in flight

package poll

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Poll intervals for the live views. Message threads refresh fastest,
// dashboards and request lists can lag further behind.
const (
	MessageInterval   = 5 * time.Second
	DashboardInterval = 30 * time.Second
	RequestInterval   = 60 * time.Second

	// DefaultDebounce is the minimum gap between starts on one handle.
	DefaultDebounce = 300 * time.Millisecond
)

var (
	// ErrSuperseded marks a fetch cancelled because a newer one started.
	ErrSuperseded = errors.New("superseded by newer fetch")

	// ErrDebounced marks a start dropped for arriving inside the
	// debounce window. The previous fetch keeps running.
	ErrDebounced = errors.New("dropped by debounce")
)

// Handle serializes fetches for one view. Starting a new fetch cancels
// the previous one, and starts inside the debounce window are dropped.
type Handle struct {
	mu        sync.Mutex
	cancel    context.CancelCauseFunc
	lastStart time.Time
	debounce  time.Duration
	now       func() time.Time
}

// NewHandle returns a handle with the given debounce window. A zero or
// negative debounce disables dropping.
func NewHandle(debounce time.Duration) *Handle {
	return &Handle{debounce: debounce, now: time.Now}
}

// Do runs fn with a context that is cancelled when a newer fetch starts
// on the same handle. Returns ErrDebounced without running fn when the
// call lands inside the debounce window.
func (h *Handle) Do(ctx context.Context, fn func(context.Context) error) error {
	h.mu.Lock()
	now := h.now()
	if h.debounce > 0 && !h.lastStart.IsZero() && now.Sub(h.lastStart) < h.debounce {
		h.mu.Unlock()
		return ErrDebounced
	}
	if h.cancel != nil {
		h.cancel(ErrSuperseded)
	}
	ctx, cancel := context.WithCancelCause(ctx)
	h.cancel = cancel
	h.lastStart = now
	h.mu.Unlock()

	err := fn(ctx)

	h.mu.Lock()
	// Only clear if no newer fetch replaced us meanwhile.
	if h.lastStart.Equal(now) {
		h.cancel = nil
	}
	h.mu.Unlock()

	cancel(nil)

	if err != nil && errors.Is(context.Cause(ctx), ErrSuperseded) {
		return ErrSuperseded
	}
	return err
}

// Stop cancels any fetch in flight without starting a new one.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel(ErrSuperseded)
		h.cancel = nil
	}
}

// Poller re-runs a fetch on a fixed interval. The next run is armed only
// after the previous fetch settles, so slow responses never stack.
type Poller struct {
	Interval time.Duration
	Handle   *Handle

	// Active gates each cycle. When it returns false the loop exits
	// cleanly, used to stop view polling after logout.
	Active func() bool

	// OnError receives fetch failures. Superseded and debounced runs
	// are not reported. Nil means failures are dropped and the loop
	// keeps going.
	OnError func(error)
}

// Run fetches once immediately and then on every interval until ctx is
// cancelled or Active reports false. Blocks for the life of the loop.
func (p *Poller) Run(ctx context.Context, fetch func(context.Context) error) error {
	handle := p.Handle
	if handle == nil {
		handle = NewHandle(DefaultDebounce)
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			handle.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if p.Active != nil && !p.Active() {
			return nil
		}

		err := handle.Do(ctx, fetch)
		switch {
		case err == nil:
		case errors.Is(err, ErrSuperseded), errors.Is(err, ErrDebounced):
		case errors.Is(err, context.Canceled):
			return err
		default:
			if p.OnError != nil {
				p.OnError(err)
			}
		}

		timer.Reset(p.Interval)
	}
}
