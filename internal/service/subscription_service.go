package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/payment"
)

// Subscription flow errors.
var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrVerificationFailed   = errors.New("payment verification failed")
)

// PlanStore is the plan lookup the subscription flow needs.
type PlanStore interface {
	GetActiveByID(ctx context.Context, id int) (*model.Plan, error)
}

// SubscriptionStore is the persistence surface of the subscription flow.
type SubscriptionStore interface {
	InsertPending(ctx context.Context, sub *model.Subscription) error
	GetPendingByOrder(ctx context.Context, orderID string, userID uuid.UUID) (*model.Subscription, error)
	Activate(ctx context.Context, id uuid.UUID, paymentID, signature string, startsAt, expiresAt time.Time) error
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*model.Subscription, error)
}

// SubscriptionService owns the paid subscription lifecycle: gateway
// order creation, payment verification, activation, and lookup.
type SubscriptionService struct {
	cfg     *config.Config
	plans   PlanStore
	subs    SubscriptionStore
	gateway payment.OrderCreator
	log     zerolog.Logger
	now     func() time.Time
}

func NewSubscriptionService(cfg *config.Config, plans PlanStore, subs SubscriptionStore, gateway payment.OrderCreator, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{
		cfg:     cfg,
		plans:   plans,
		subs:    subs,
		gateway: gateway,
		log:     log.With().Str("component", "subscription_service").Logger(),
		now:     time.Now,
	}
}

// CreateOrder creates a gateway order for the given plan and records a
// PENDING subscription tied to it. The returned details are everything
// the frontend checkout widget needs.
func (s *SubscriptionService) CreateOrder(ctx context.Context, user *AuthUser, planID int) (*model.OrderDetails, error) {
	if s.cfg.RazorpayKeyID == "" || s.cfg.RazorpayKeySecret == "" {
		return nil, ErrGatewayNotConfigured
	}

	plan, err := s.plans.GetActiveByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	// Gateway amounts are in minor currency units (paise for INR).
	amountMinor := plan.Price * 100
	receipt := fmt.Sprintf("rcpt_%d_%d", planID, s.now().UnixMilli())
	notes := map[string]string{
		"user_id": user.ID.String(),
		"plan_id": strconv.Itoa(planID),
	}

	orderID, err := s.gateway.CreateOrder(ctx, amountMinor, plan.Currency, receipt, notes)
	if err != nil {
		s.log.Error().Err(err).Int("plan_id", planID).Msg("gateway order creation failed")
		return nil, err
	}

	sub := &model.Subscription{
		UserID:          user.ID,
		PlanID:          planID,
		RazorpayOrderID: orderID,
	}
	if err := s.subs.InsertPending(ctx, sub); err != nil {
		// Without the pending row a later verification can never match,
		// so the order is unusable. Fail loudly rather than hand the
		// client an order it cannot redeem.
		s.log.Error().Err(err).Str("order_id", orderID).Msg("failed to record pending subscription")
		return nil, fmt.Errorf("record pending subscription: %w", err)
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("user_id", user.ID.String()).
		Int("plan_id", planID).
		Msg("gateway order created")

	return &model.OrderDetails{
		OrderID:   orderID,
		Amount:    amountMinor,
		Currency:  plan.Currency,
		KeyID:     s.cfg.RazorpayKeyID,
		PlanName:  plan.Name,
		UserEmail: user.Email,
		UserName:  user.Name,
	}, nil
}

// Verify checks the checkout callback signature and activates the
// matching PENDING subscription. The signature is verified before any
// database lookup so forged callbacks never touch storage.
func (s *SubscriptionService) Verify(ctx context.Context, userID uuid.UUID, req *model.VerifyPaymentRequest) (*model.Subscription, error) {
	if !payment.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.cfg.RazorpayKeySecret) {
		s.log.Warn().
			Str("order_id", req.RazorpayOrderID).
			Str("user_id", userID.String()).
			Msg("payment signature mismatch")
		return nil, ErrVerificationFailed
	}

	sub, err := s.subs.GetPendingByOrder(ctx, req.RazorpayOrderID, userID)
	if err != nil {
		return nil, err
	}

	startsAt := s.now().UTC()
	expiresAt := startsAt.AddDate(0, 0, sub.PlanDurationDays)

	if err := s.subs.Activate(ctx, sub.ID, req.RazorpayPaymentID, req.RazorpaySignature, startsAt, expiresAt); err != nil {
		s.log.Error().Err(err).Str("order_id", req.RazorpayOrderID).Msg("failed to activate subscription")
		return nil, err
	}

	sub.Status = model.SubscriptionStatusActive
	sub.RazorpayPaymentID = req.RazorpayPaymentID
	sub.StartsAt = &startsAt
	sub.ExpiresAt = &expiresAt

	s.log.Info().
		Str("order_id", req.RazorpayOrderID).
		Str("user_id", userID.String()).
		Time("expires_at", expiresAt).
		Msg("subscription activated")

	return sub, nil
}

// Current returns the user's active subscription summary.
func (s *SubscriptionService) Current(ctx context.Context, userID uuid.UUID) (*model.SubscriptionSummary, error) {
	sub, err := s.subs.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &model.SubscriptionSummary{PlanName: sub.PlanName}
	if sub.StartsAt != nil {
		summary.StartsAt = *sub.StartsAt
	}
	if sub.ExpiresAt != nil {
		summary.ExpiresAt = *sub.ExpiresAt
	}
	return summary, nil
}
