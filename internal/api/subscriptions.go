package api

import (
	"context"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// Plans returns the paywall offer keyed by tier ("premium", "pro").
func (c *Client) Plans(ctx context.Context) (map[string]domain.SubscriptionPlan, error) {
	var out map[string]domain.SubscriptionPlan
	if err := c.get(ctx, "/subscriptions/plans", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentSubscription returns the active plan of the signed-in user.
func (c *Client) CurrentSubscription(ctx context.Context) (*domain.CurrentSubscription, error) {
	var out domain.CurrentSubscription
	if err := c.get(ctx, "/subscriptions/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubscriptionHistory lists past and present subscriptions.
func (c *Client) SubscriptionHistory(ctx context.Context) ([]domain.Subscription, error) {
	var out []domain.Subscription
	if err := c.get(ctx, "/subscriptions/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSubscription buys a tier with an already authorised payment.
func (c *Client) CreateSubscription(ctx context.Context, t domain.SubscriptionType, paymentID string) (*domain.Subscription, error) {
	req := domain.SubscribeRequest{Type: t, PaymentID: paymentID}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out domain.Subscription
	if err := c.post(ctx, "/subscriptions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription stops renewal of the active subscription.
func (c *Client) CancelSubscription(ctx context.Context) (*domain.Ack, error) {
	var out domain.Ack
	if err := c.post(ctx, "/subscriptions/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
