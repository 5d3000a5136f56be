// ABOUTME: Normalized API error taxonomy shared by all endpoint facades
// ABOUTME: Callers branch on error kind, never on raw transport status codes

package api

import (
	"errors"
	"fmt"
)

// Kind categorizes a normalized API error.
type Kind string

const (
	// KindCancelled marks a request the caller aborted; a silent no-op.
	KindCancelled Kind = "cancelled"
	// KindTimeout marks a request that exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindNetwork marks a transport failure with no response received.
	KindNetwork Kind = "network"
	// KindServer marks a 5xx response that survived the retry budget.
	KindServer Kind = "server"
	// KindSessionExpired marks a 401; the session has already been cleared.
	KindSessionExpired Kind = "session_expired"
	// KindPermission marks a 403 without a subscription requirement.
	KindPermission Kind = "permission"
	// KindSubscriptionRequired marks a 403 caused by an inactive
	// subscription; callers branch into the purchase flow instead of a
	// generic error.
	KindSubscriptionRequired Kind = "subscription_required"
	// KindNotFound marks a 404 on a non-optional route.
	KindNotFound Kind = "not_found"
	// KindValidation marks a 422.
	KindValidation Kind = "validation"
	// KindRateLimited marks a 429.
	KindRateLimited Kind = "rate_limited"
	// KindUnknown marks everything else.
	KindUnknown Kind = "unknown"
)

// Error is the single error shape that crosses out of the API layer.
// Message is short and user-facing; Status is the HTTP status when a
// response was received, zero otherwise.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// StaleCredential reports whether the stored token was rejected by the
// backend. The session manager uses this to clear silently on restore.
func (e *Error) StaleCredential() bool { return e.Kind == KindSessionExpired }

// isKind checks whether an error is an API error of the given kind.
func isKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsCancelled reports a caller-aborted request. Cancelled results must be
// treated as silent no-ops, never surfaced or retried.
func IsCancelled(err error) bool { return isKind(err, KindCancelled) }

// IsTimeout reports a request that exceeded its deadline.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsNetwork reports a transport failure with no response.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsServer reports a surfaced server error.
func IsServer(err error) bool { return isKind(err, KindServer) }

// IsSessionExpired reports a 401-triggered session teardown.
func IsSessionExpired(err error) bool { return isKind(err, KindSessionExpired) }

// IsPermission reports a generic 403.
func IsPermission(err error) bool { return isKind(err, KindPermission) }

// IsSubscriptionRequired reports a 403 caused by an inactive subscription.
func IsSubscriptionRequired(err error) bool { return isKind(err, KindSubscriptionRequired) }

// IsNotFound reports a 404 on a non-optional route.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsValidation reports a 422.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsRateLimited reports a 429.
func IsRateLimited(err error) bool { return isKind(err, KindRateLimited) }

// GetKind returns the Kind from an error, or KindUnknown for foreign errors.
func GetKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
