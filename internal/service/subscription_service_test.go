package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/payment"
	"github.com/prepply/prepply-backend/internal/repository"
)

// ─── Fakes ──────────────────────────────────────────────────────────

type fakePlanStore struct {
	plans map[int]*model.Plan
}

func (f *fakePlanStore) GetActiveByID(_ context.Context, id int) (*model.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}
	return p, nil
}

type fakeSubStore struct {
	pending       map[string]*model.Subscription // keyed by order id
	insertErr     error
	inserted      []*model.Subscription
	activateCalls int
	activatedID   uuid.UUID
	startsAt      time.Time
	expiresAt     time.Time
}

func newFakeSubStore() *fakeSubStore {
	return &fakeSubStore{pending: make(map[string]*model.Subscription)}
}

func (f *fakeSubStore) InsertPending(_ context.Context, sub *model.Subscription) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	sub.ID = uuid.New()
	sub.Status = model.SubscriptionStatusPending
	f.inserted = append(f.inserted, sub)
	f.pending[sub.RazorpayOrderID] = sub
	return nil
}

func (f *fakeSubStore) GetPendingByOrder(_ context.Context, orderID string, userID uuid.UUID) (*model.Subscription, error) {
	sub, ok := f.pending[orderID]
	if !ok || sub.UserID != userID {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeSubStore) Activate(_ context.Context, id uuid.UUID, _, _ string, startsAt, expiresAt time.Time) error {
	f.activateCalls++
	f.activatedID = id
	f.startsAt = startsAt
	f.expiresAt = expiresAt
	return nil
}

func (f *fakeSubStore) GetActiveByUser(_ context.Context, _ uuid.UUID) (*model.Subscription, error) {
	return nil, repository.ErrSubscriptionNotFound
}

type fakeGateway struct {
	orderID string
	err     error
	calls   int
}

func (f *fakeGateway) CreateOrder(_ context.Context, _ int64, _, _ string, _ map[string]string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.orderID, nil
}

// ─── Helpers ────────────────────────────────────────────────────────

const testKeySecret = "test_key_secret"

func newTestService(plans *fakePlanStore, subs *fakeSubStore, gw payment.OrderCreator) *SubscriptionService {
	cfg := &config.Config{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: testKeySecret,
	}
	svc := NewSubscriptionService(cfg, plans, subs, gw, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func monthlyPlanStore() *fakePlanStore {
	return &fakePlanStore{plans: map[int]*model.Plan{
		1: {ID: 1, Name: "Monthly", Price: 299, Currency: "INR", DurationDays: 30, IsActive: true},
	}}
}

// ─── CreateOrder ────────────────────────────────────────────────────

func TestCreateOrder_Success(t *testing.T) {
	subs := newFakeSubStore()
	gw := &fakeGateway{orderID: "order_test123"}
	svc := newTestService(monthlyPlanStore(), subs, gw)

	user := &AuthUser{ID: uuid.New(), Email: "s@example.com", Name: "Student"}
	order, err := svc.CreateOrder(context.Background(), user, 1)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if order.OrderID != "order_test123" {
		t.Errorf("OrderID = %s, want order_test123", order.OrderID)
	}
	if order.Amount != 29900 {
		t.Errorf("Amount = %d, want 29900 (price in paise)", order.Amount)
	}
	if order.KeyID != "rzp_test_key" {
		t.Errorf("KeyID = %s, want rzp_test_key", order.KeyID)
	}
	if len(subs.inserted) != 1 {
		t.Fatalf("expected 1 pending subscription, got %d", len(subs.inserted))
	}
	if subs.inserted[0].UserID != user.ID {
		t.Error("pending subscription recorded for wrong user")
	}
	if subs.inserted[0].RazorpayOrderID != "order_test123" {
		t.Error("pending subscription not linked to gateway order")
	}
}

func TestCreateOrder_UnknownPlan(t *testing.T) {
	subs := newFakeSubStore()
	gw := &fakeGateway{orderID: "order_test123"}
	svc := newTestService(monthlyPlanStore(), subs, gw)

	user := &AuthUser{ID: uuid.New()}
	_, err := svc.CreateOrder(context.Background(), user, 99)
	if !errors.Is(err, repository.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
	if gw.calls != 0 {
		t.Error("gateway should not be called for an unknown plan")
	}
}

func TestCreateOrder_GatewayNotConfigured(t *testing.T) {
	svc := NewSubscriptionService(&config.Config{}, monthlyPlanStore(), newFakeSubStore(), &fakeGateway{}, zerolog.Nop())

	_, err := svc.CreateOrder(context.Background(), &AuthUser{ID: uuid.New()}, 1)
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestCreateOrder_PendingInsertFailureIsFatal(t *testing.T) {
	subs := newFakeSubStore()
	subs.insertErr = errors.New("db down")
	gw := &fakeGateway{orderID: "order_test123"}
	svc := newTestService(monthlyPlanStore(), subs, gw)

	_, err := svc.CreateOrder(context.Background(), &AuthUser{ID: uuid.New()}, 1)
	if err == nil {
		t.Fatal("expected error when pending row cannot be recorded")
	}
}

// ─── Verify ─────────────────────────────────────────────────────────

func TestVerify_ActivatesPendingSubscription(t *testing.T) {
	subs := newFakeSubStore()
	gw := &fakeGateway{orderID: "order_abc"}
	svc := newTestService(monthlyPlanStore(), subs, gw)

	user := &AuthUser{ID: uuid.New(), Email: "s@example.com"}
	if _, err := svc.CreateOrder(context.Background(), user, 1); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	subs.pending["order_abc"].PlanDurationDays = 30
	subs.pending["order_abc"].PlanName = "Monthly"

	req := &model.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: payment.Signature("order_abc", "pay_xyz", testKeySecret),
	}

	sub, err := svc.Verify(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if sub.Status != model.SubscriptionStatusActive {
		t.Errorf("Status = %s, want ACTIVE", sub.Status)
	}
	if subs.activateCalls != 1 {
		t.Fatalf("Activate called %d times, want 1", subs.activateCalls)
	}

	// 2025-01-01 + 30 days lands on 2025-01-31.
	wantExpiry := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
	if !subs.expiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", subs.expiresAt, wantExpiry)
	}
}

func TestVerify_SignatureMismatchTouchesNoStorage(t *testing.T) {
	subs := newFakeSubStore()
	svc := newTestService(monthlyPlanStore(), subs, &fakeGateway{orderID: "order_abc"})

	userID := uuid.New()
	req := &model.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "deadbeef",
	}

	_, err := svc.Verify(context.Background(), userID, req)
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if subs.activateCalls != 0 {
		t.Error("forged callback must not reach storage")
	}
}

func TestVerify_UnknownOrder(t *testing.T) {
	subs := newFakeSubStore()
	svc := newTestService(monthlyPlanStore(), subs, &fakeGateway{})

	req := &model.VerifyPaymentRequest{
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: payment.Signature("order_missing", "pay_xyz", testKeySecret),
	}

	_, err := svc.Verify(context.Background(), uuid.New(), req)
	if !errors.Is(err, repository.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
	if subs.activateCalls != 0 {
		t.Error("Activate must not be called for an unknown order")
	}
}

func TestVerify_OrderBelongingToAnotherUser(t *testing.T) {
	subs := newFakeSubStore()
	gw := &fakeGateway{orderID: "order_abc"}
	svc := newTestService(monthlyPlanStore(), subs, gw)

	owner := &AuthUser{ID: uuid.New()}
	if _, err := svc.CreateOrder(context.Background(), owner, 1); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	req := &model.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: payment.Signature("order_abc", "pay_xyz", testKeySecret),
	}

	_, err := svc.Verify(context.Background(), uuid.New(), req)
	if !errors.Is(err, repository.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound for foreign order, got %v", err)
	}
}
