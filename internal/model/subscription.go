package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus captures the subscription lifecycle.
// A row is created as PENDING at order time and becomes ACTIVE only after
// the gateway signature has been verified. Rows past expires_at are moved
// to EXPIRED by a background worker.
type SubscriptionStatus string

const (
	SubscriptionStatusPending SubscriptionStatus = "PENDING"
	SubscriptionStatusActive  SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired SubscriptionStatus = "EXPIRED"
)

// Subscription links a user to a plan through a gateway order.
type Subscription struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	PlanID            int                `json:"plan_id"`
	Status            SubscriptionStatus `json:"status"`
	RazorpayOrderID   string             `json:"razorpay_order_id"`
	RazorpayPaymentID string             `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string             `json:"-"`
	StartsAt          *time.Time         `json:"starts_at,omitempty"`
	ExpiresAt         *time.Time         `json:"expires_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Joined from plans for read paths.
	PlanName         string `json:"plan_name,omitempty"`
	PlanDurationDays int    `json:"-"`
}

// CreateOrderRequest is the payload for creating a payment order.
type CreateOrderRequest struct {
	PlanID int `json:"plan_id" binding:"required,min=1"`
}

// OrderDetails is returned to the client to initiate gateway checkout.
type OrderDetails struct {
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
	PlanName  string `json:"plan_name"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// VerifyPaymentRequest is the gateway callback payload relayed by the client.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// SubscriptionSummary is the activated-subscription view returned after
// successful verification.
type SubscriptionSummary struct {
	PlanName  string    `json:"plan_name"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
