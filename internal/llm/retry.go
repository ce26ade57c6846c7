package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig bounds the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig keeps retries tight: the caller is an interactive
// HTTP request, not a batch job.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 2,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     2 * time.Second,
	Multiplier:  2.0,
}

// retryCompleter decorates a ChatCompleter with bounded retry for
// transient transport failures. Semantic provider errors (429, 402, other
// 4xx) are never retried — they surface to the caller on the first attempt.
type retryCompleter struct {
	inner  ChatCompleter
	config RetryConfig
}

// WithRetry wraps a ChatCompleter with retry logic. maxAttempts <= 1
// returns the inner completer unchanged.
func WithRetry(inner ChatCompleter, cfg RetryConfig) ChatCompleter {
	if cfg.MaxAttempts <= 1 {
		return inner
	}
	return &retryCompleter{inner: inner, config: cfg}
}

func (r *retryCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		out, err := r.inner.Complete(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return "", err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return "", lastErr
}

// shouldRetry reports whether an error is worth another attempt. Only
// transport failures and provider 5xx responses qualify.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var unavail *ErrUnavailable
	if errors.As(err, &unavail) {
		return unavail.Status == 0 || unavail.Status >= 500
	}
	return false
}

// backoff computes the wait before the next attempt with ±20% jitter.
func (r *retryCompleter) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
