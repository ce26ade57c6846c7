package llm

import (
	"context"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientFailureThenSuccess(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Content: "ok"},
	)
	c := WithRetry(mock, fastRetryConfig(2))

	out, err := c.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if out != "ok" {
		t.Errorf("expected %q, got %q", "ok", out)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
	)
	c := WithRetry(mock, fastRetryConfig(2))

	_, err := c.Complete(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitNotRetried(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrRateLimited{}},
		MockResponse{Content: "never reached"},
	)
	c := WithRetry(mock, fastRetryConfig(3))

	_, err := c.Complete(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("rate limit must not be retried, got %d calls", mock.CallCount())
	}
}

func TestRetry_QuotaExhaustedNotRetried(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrQuotaExhausted{}},
	)
	c := WithRetry(mock, fastRetryConfig(3))

	_, err := c.Complete(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected quota error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("quota exhaustion must not be retried, got %d calls", mock.CallCount())
	}
}

func TestRetry_Provider4xxNotRetried(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrUnavailable{Status: 400}},
	)
	c := WithRetry(mock, fastRetryConfig(3))

	_, err := c.Complete(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider 4xx must not be retried, got %d calls", mock.CallCount())
	}
}

func TestRetry_SingleAttemptUnwrapped(t *testing.T) {
	mock := NewMockCompleter(MockResponse{Content: "ok"})
	c := WithRetry(mock, RetryConfig{MaxAttempts: 1})

	if _, ok := c.(*MockCompleter); !ok {
		t.Error("MaxAttempts=1 should return the inner completer unchanged")
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Content: "never reached"},
	)
	c := WithRetry(mock, RetryConfig{
		MaxAttempts: 2,
		InitialWait: time.Minute,
		MaxWait:     time.Minute,
		Multiplier:  1.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, Request{})
	if err == nil {
		t.Fatal("expected context error")
	}
}
