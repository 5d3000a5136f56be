// ABOUTME: Payment and subscription endpoint facade
// ABOUTME: Checkout sessions redirect to the payment provider, status is polled

package api

import (
	"context"
	"time"
)

// SubscriptionStatus reports the caller's current plan.
type SubscriptionStatus struct {
	Status           string     `json:"status"`
	PlanName         string     `json:"plan_name,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CancelAtEnd      bool       `json:"cancel_at_period_end"`
}

// Active reports whether the subscription grants access right now.
func (s *SubscriptionStatus) Active() bool {
	return s != nil && s.Status == "active"
}

// CheckoutSession is the provider redirect for a pending payment.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// PurchaseRecord is the outcome of a verified payment.
type PurchaseRecord struct {
	SessionID string     `json:"session_id"`
	Status    string     `json:"status"`
	ProductID *int64     `json:"product_id,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// Subscription fetches the caller's subscription status. Returns nil
// without error when the caller has never subscribed.
func (c *Client) Subscription(ctx context.Context) (*SubscriptionStatus, error) {
	var status *SubscriptionStatus
	if err := c.Get(ctx, "/payments/subscription-status", &status, Optional()); err != nil {
		return nil, err
	}
	return status, nil
}

// CreateSubscription starts a subscription checkout. The caller is
// expected to open the returned checkout URL in a browser.
func (c *Client) CreateSubscription(ctx context.Context) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.Post(ctx, "/payments/create-subscription", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CancelSubscription cancels the caller's plan at the period end.
func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.Post(ctx, "/payments/cancel-subscription", nil, nil)
}

// PurchaseProduct starts a checkout for a marketplace product.
func (c *Client) PurchaseProduct(ctx context.Context, productID int64) (*CheckoutSession, error) {
	body := struct {
		ProductID int64 `json:"product_id"`
	}{ProductID: productID}

	var session CheckoutSession
	if err := c.Post(ctx, "/payments/purchase", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyPurchase confirms a checkout session after the provider redirect.
func (c *Client) VerifyPurchase(ctx context.Context, sessionID string) (*PurchaseRecord, error) {
	body := struct {
		SessionID string `json:"session_id"`
	}{SessionID: sessionID}

	var record PurchaseRecord
	if err := c.Post(ctx, "/payments/verify-purchase", body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
