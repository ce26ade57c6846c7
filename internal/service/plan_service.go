package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/repository"
)

const planCacheTTL = 10 * time.Minute

// PlanService serves the plan catalog with a Redis cache in front of
// PostgreSQL. The catalog changes rarely and is read on every pricing
// page load.
type PlanService struct {
	planRepo *repository.PlanRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

func NewPlanService(planRepo *repository.PlanRepository, rdb *redis.Client, log zerolog.Logger) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "plan_service").Logger(),
	}
}

// ListActive returns purchasable plans, served from cache when warm.
// Cache failures fall through to the database.
func (s *PlanService) ListActive(ctx context.Context) ([]model.Plan, error) {
	key := config.CacheKey.ActivePlansKey()

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var plans []model.Plan
		if err := json.Unmarshal([]byte(cached), &plans); err == nil {
			return plans, nil
		}
		s.log.Warn().Msg("corrupt plan cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("plan cache read failed")
	}

	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list plans")
		return nil, err
	}

	if data, err := json.Marshal(plans); err == nil {
		if err := s.rdb.Set(ctx, key, data, planCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("plan cache write failed")
		}
	}

	return plans, nil
}

// PrewarmCache loads the catalog into Redis at startup so the first
// pricing page hit is already warm.
func (s *PlanService) PrewarmCache(ctx context.Context) error {
	_, err := s.ListActive(ctx)
	return err
}
