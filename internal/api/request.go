// ABOUTME: Per-call request descriptors and options for the HTTP client
// ABOUTME: Descriptors are immutable; retry attempts rebuild from them

package api

import (
	"net/url"
	"time"
)

// requestSpec describes one logical API call. It is created fresh per call
// by the facade layer and never mutated across retry attempts; the attempt
// counter lives in the retry loop instead.
type requestSpec struct {
	method       string
	path         string
	body         any
	query        url.Values
	timeout      time.Duration
	retries      int
	public       bool
	optional     bool
	silentExpiry bool
}

// RequestOption customizes a single API call.
type RequestOption func(*requestSpec)

// WithTimeout overrides the client's default per-call timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(rs *requestSpec) { rs.timeout = d }
}

// WithRetries overrides the client's retry budget for 5xx responses.
func WithRetries(n int) RequestOption {
	return func(rs *requestSpec) {
		if n >= 0 {
			rs.retries = n
		}
	}
}

// WithQuery adds a query parameter to the request URL.
func WithQuery(key, value string) RequestOption {
	return func(rs *requestSpec) {
		if rs.query == nil {
			rs.query = url.Values{}
		}
		rs.query.Set(key, value)
	}
}

// Public marks the call as unauthenticated regardless of the route set.
func Public() RequestOption {
	return func(rs *requestSpec) { rs.public = true }
}

// Optional makes a 404 resolve successfully with a nil payload instead of
// an error. Used for endpoints where a missing resource is an expected
// state, such as a profile that was never created.
func Optional() RequestOption {
	return func(rs *requestSpec) { rs.optional = true }
}

// SilentExpiry clears the session on 401 without firing the expiry
// callback. Used by session restore, which must degrade to anonymous
// without forcing navigation.
func SilentExpiry() RequestOption {
	return func(rs *requestSpec) { rs.silentExpiry = true }
}
