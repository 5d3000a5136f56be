// ABOUTME: Response classification for the interceptor chain
// ABOUTME: Maps status codes to the normalized error taxonomy in precedence order

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// classify turns a settled HTTP response into either a decoded value or a
// normalized error. Transport failures and 5xx retries have already been
// handled by the caller; this covers the remaining precedence rules.
func (c *Client) classify(spec requestSpec, status int, body []byte, out any) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return c.decode(body, out)

	case status >= http.StatusInternalServerError:
		return &Error{
			Kind:    KindServer,
			Message: detailOr(body, "server error, please try again"),
			Status:  status,
		}

	case status == http.StatusUnauthorized:
		notify := !spec.silentExpiry && !spec.public && !IsPublicRoute(spec.path)
		c.session.ForceExpire(notify)
		return &Error{
			Kind:    KindSessionExpired,
			Message: "session expired, please log in again",
			Status:  status,
		}

	case status == http.StatusForbidden:
		detail := parseDetail(body)
		if subscriptionRequired(detail) {
			return &Error{
				Kind:    KindSubscriptionRequired,
				Message: "an active subscription is required",
				Status:  status,
			}
		}
		return &Error{
			Kind:    KindPermission,
			Message: orDefault(detail, "you do not have permission to do that"),
			Status:  status,
		}

	case status == http.StatusNotFound:
		if spec.optional {
			// A missing optional resource is an expected state; the caller
			// receives a nil payload, not an error.
			return nil
		}
		return &Error{
			Kind:    KindNotFound,
			Message: detailOr(body, "resource not found"),
			Status:  status,
		}

	case status == http.StatusUnprocessableEntity:
		return &Error{
			Kind:    KindValidation,
			Message: detailOr(body, "validation failed, check your input"),
			Status:  status,
		}

	case status == http.StatusTooManyRequests:
		return &Error{
			Kind:    KindRateLimited,
			Message: detailOr(body, "rate limited, try again shortly"),
			Status:  status,
		}

	default:
		return &Error{
			Kind:    KindUnknown,
			Message: detailOr(body, fmt.Sprintf("request failed with status %d", status)),
			Status:  status,
		}
	}
}

// decode unmarshals a successful response body into out.
func (c *Client) decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Kind:    KindUnknown,
			Message: "invalid response from server",
			Cause:   err,
		}
	}
	return nil
}

// errorBody covers the backend's error shapes. detail is usually a string,
// but validation errors carry a list of field problems.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts a human-readable message from an error payload.
// Returns empty when no usable detail is present.
func parseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var fields []fieldError
	if err := json.Unmarshal(eb.Detail, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			name := ""
			if len(f.Loc) > 0 {
				name = fmt.Sprintf("%v", f.Loc[len(f.Loc)-1])
			}
			if name != "" {
				parts = append(parts, name+": "+f.Msg)
			} else {
				parts = append(parts, f.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	return ""
}

// detailOr prefers the payload's embedded message over a generic one.
func detailOr(body []byte, fallback string) string {
	return orDefault(parseDetail(body), fallback)
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// subscriptionRequired detects the backend's inactive-subscription 403s so
// callers can branch into the purchase flow.
func subscriptionRequired(detail string) bool {
	return strings.Contains(strings.ToLower(detail), "subscription")
}
