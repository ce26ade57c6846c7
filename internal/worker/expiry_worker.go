package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/repository"
)

const expiryCheckInterval = time.Hour

// ExpiryWorker periodically moves overdue ACTIVE subscriptions to
// EXPIRED. Read paths already filter on expires_at, so this is
// housekeeping that keeps the status column truthful.
type ExpiryWorker struct {
	subRepo *repository.SubscriptionRepository
	log     zerolog.Logger
}

func NewExpiryWorker(subRepo *repository.SubscriptionRepository, log zerolog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		subRepo: subRepo,
		log:     log.With().Str("component", "expiry_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ExpiryWorker started")

	ticker := time.NewTicker(expiryCheckInterval)
	defer ticker.Stop()

	// Run once at startup to catch anything that expired while down.
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ExpiryWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	n, err := w.subRepo.ExpireOverdue(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("expiry sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int64("count", n).Msg("subscriptions expired")
	}
}
