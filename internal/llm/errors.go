package llm

import "fmt"

// ErrRateLimited indicates the provider returned HTTP 429.
type ErrRateLimited struct {
	Err error
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("llm rate limited: %v", e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

// ErrQuotaExhausted indicates the provider returned HTTP 402 — the
// account's credit is spent. Not retryable.
type ErrQuotaExhausted struct {
	Err error
}

func (e *ErrQuotaExhausted) Error() string {
	return fmt.Sprintf("llm quota exhausted: %v", e.Err)
}

func (e *ErrQuotaExhausted) Unwrap() error { return e.Err }

// ErrUnavailable indicates a transport failure or a provider 5xx/other
// non-2xx response. Status is zero for transport-level failures.
type ErrUnavailable struct {
	Status int
	Err    error
}

func (e *ErrUnavailable) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm provider unavailable (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
