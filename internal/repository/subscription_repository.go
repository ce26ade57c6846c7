package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepply/prepply-backend/internal/model"
)

// ErrSubscriptionNotFound is returned when no row matches the lookup.
var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// InsertPending creates the PENDING row that verification later activates.
func (r *SubscriptionRepository) InsertPending(ctx context.Context, sub *model.Subscription) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subscriptions (user_id, plan_id, status, razorpay_order_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		sub.UserID, sub.PlanID, model.SubscriptionStatusPending, sub.RazorpayOrderID,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// GetPendingByOrder finds the PENDING subscription for an order id scoped
// to the owning user, joined with its plan for name and duration.
func (r *SubscriptionRepository) GetPendingByOrder(ctx context.Context, orderID string, userID uuid.UUID) (*model.Subscription, error) {
	var s model.Subscription
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.plan_id, s.status, s.razorpay_order_id, s.created_at, s.updated_at,
		        p.name, p.duration_days
		 FROM subscriptions s
		 JOIN plans p ON p.id = s.plan_id
		 WHERE s.razorpay_order_id = $1 AND s.user_id = $2 AND s.status = $3`,
		orderID, userID, model.SubscriptionStatusPending,
	).Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.RazorpayOrderID, &s.CreatedAt, &s.UpdatedAt,
		&s.PlanName, &s.PlanDurationDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Activate flips a PENDING row to ACTIVE and records the payment proof.
// The status guard in the WHERE clause makes racing verifications safe:
// only one update can win.
func (r *SubscriptionRepository) Activate(ctx context.Context, id uuid.UUID, paymentID, signature string, startsAt, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions
		 SET status = $1, razorpay_payment_id = $2, razorpay_signature = $3,
		     starts_at = $4, expires_at = $5, updated_at = NOW()
		 WHERE id = $6 AND status = $7`,
		model.SubscriptionStatusActive, paymentID, signature, startsAt, expiresAt,
		id, model.SubscriptionStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// GetActiveByUser returns the user's current ACTIVE subscription, if any.
func (r *SubscriptionRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	var s model.Subscription
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.plan_id, s.status, s.razorpay_order_id, s.razorpay_payment_id,
		        s.starts_at, s.expires_at, s.created_at, s.updated_at, p.name
		 FROM subscriptions s
		 JOIN plans p ON p.id = s.plan_id
		 WHERE s.user_id = $1 AND s.status = $2 AND s.expires_at > NOW()
		 ORDER BY s.expires_at DESC
		 LIMIT 1`,
		userID, model.SubscriptionStatusActive,
	).Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.RazorpayOrderID, &s.RazorpayPaymentID,
		&s.StartsAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt, &s.PlanName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ExpireOverdue moves ACTIVE rows past their expiry to EXPIRED.
// Returns the number of rows transitioned.
func (r *SubscriptionRepository) ExpireOverdue(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND expires_at <= NOW()`,
		model.SubscriptionStatusExpired, model.SubscriptionStatusActive)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
