package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/repository"
)

const statsCacheTTL = 5 * time.Minute

// AttemptService records quiz results and serves attempt history.
// Writes go through a Redis queue so a slow database never blocks the
// submit path; a background worker batches them into PostgreSQL.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
	rdb         *redis.Client
	log         zerolog.Logger
	now         func() time.Time
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, rdb *redis.Client, log zerolog.Logger) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "attempt_service").Logger(),
		now:         time.Now,
	}
}

// Record enqueues an attempt for asynchronous persistence.
func (s *AttemptService) Record(ctx context.Context, userID uuid.UUID, req *model.RecordAttemptRequest) error {
	attempt := model.QuizAttempt{
		UserID:         userID,
		Subject:        req.Subject,
		Topic:          req.Topic,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		TakenAt:        s.now().UTC(),
	}

	payload, err := json.Marshal(attempt)
	if err != nil {
		return err
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to enqueue attempt")
		return err
	}

	// The cached stats summary is stale now.
	s.rdb.Del(ctx, config.CacheKey.UserStatsKey(userID.String()))
	return nil
}

// List returns the user's attempt history, newest first.
func (s *AttemptService) List(ctx context.Context, userID uuid.UUID, page, perPage int) ([]model.QuizAttempt, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	attempts, total, err := s.attemptRepo.ListByUser(ctx, userID, perPage, offset)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list attempts")
		return nil, 0, err
	}
	return attempts, total, nil
}

// Stats aggregates per-subject performance for the user, cached for a
// short window since the aggregation scans the user's full history.
func (s *AttemptService) Stats(ctx context.Context, userID uuid.UUID) ([]model.SubjectStats, error) {
	key := config.CacheKey.UserStatsKey(userID.String())

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var stats []model.SubjectStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	stats, err := s.attemptRepo.StatsByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to aggregate stats")
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		s.rdb.Set(ctx, key, data, statsCacheTTL)
	}
	return stats, nil
}
