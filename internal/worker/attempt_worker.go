package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/repository"
)

const (
	AttemptBatchSize    = 50
	AttemptBatchTimeout = 2 * time.Second
	AttemptPollTimeout  = 1 * time.Second
)

// AttemptWorker consumes persist_attempts_queue and batches quiz
// attempts into PostgreSQL so the submit path never waits on the
// database.
type AttemptWorker struct {
	attemptRepo *repository.AttemptRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

func NewAttemptWorker(attemptRepo *repository.AttemptRepository, rdb *redis.Client, log zerolog.Logger) *AttemptWorker {
	return &AttemptWorker{
		attemptRepo: attemptRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "attempt_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *AttemptWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AttemptWorker started")

	batch := make([]model.QuizAttempt, 0, AttemptBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= AttemptBatchSize || time.Since(lastFlush) >= AttemptBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			w.drain(context.Background())
			return

		default:
			item, err := w.rdb.BLPop(ctx, AttemptPollTimeout, config.WorkerKey.PersistAttemptsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var a model.QuizAttempt
			if err := json.Unmarshal([]byte(item[1]), &a); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, a)
		}
	}
}

// flushSafe persists a batch, requeueing items on failure so nothing
// is lost across restarts.
func (w *AttemptWorker) flushSafe(ctx context.Context, batch []model.QuizAttempt) {
	if len(batch) == 0 {
		return
	}

	if err := w.attemptRepo.InsertBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Int("count", len(batch)).Msg("batch insert failed — requeueing")
		for _, a := range batch {
			raw, _ := json.Marshal(a)
			w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, raw)
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("attempt batch persisted")
}

// drain empties whatever is still queued before shutdown.
func (w *AttemptWorker) drain(ctx context.Context) {
	batch := make([]model.QuizAttempt, 0, AttemptBatchSize)
	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.PersistAttemptsQueue).Result()
		if err != nil {
			break
		}

		var a model.QuizAttempt
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}
		batch = append(batch, a)

		if len(batch) >= AttemptBatchSize {
			w.flushSafe(ctx, batch)
			batch = batch[:0]
		}
	}
	w.flushSafe(ctx, batch)
}
