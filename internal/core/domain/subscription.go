package domain

import (
	"fmt"
	"time"
)

// SubscriptionType is a paid plan tier.
type SubscriptionType string

// Subscription tiers.
const (
	SubscriptionPremium SubscriptionType = "premium"
	SubscriptionPro     SubscriptionType = "pro"
)

// Valid reports whether t is a purchasable tier.
func (t SubscriptionType) Valid() bool {
	return t == SubscriptionPremium || t == SubscriptionPro
}

// SubscriptionStatus is the billing state of a subscription.
type SubscriptionStatus string

// Subscription statuses.
const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription is a purchased plan.
type Subscription struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userId"`
	Type      SubscriptionType   `json:"type"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	Amount    float64            `json:"amount"`
	Currency  string             `json:"currency"`
}

// SubscriptionPlan describes a tier offered on the paywall.
type SubscriptionPlan struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Duration int      `json:"duration"`
	Features []string `json:"features"`
}

// CurrentSubscription is the paywall summary for the logged-in user.
// The backend reports the plan name even for free users, in which case
// Subscription is nil.
type CurrentSubscription struct {
	CurrentPlan  string        `json:"currentPlan"`
	Subscription *Subscription `json:"subscription"`
}

// SubscribeRequest is the body of a purchase.
type SubscribeRequest struct {
	Type      SubscriptionType `json:"type"`
	PaymentID string           `json:"paymentId"`
}

// Validate checks the tier and payment reference.
func (r SubscribeRequest) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown subscription type %q", r.Type))
	}
	if r.PaymentID == "" {
		return ErrMissingArgument.WithDetails("paymentId")
	}
	return nil
}
