package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepply/prepply-backend/internal/model"
)

// ErrPlanNotFound is returned when no active plan matches the id.
var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// GetActiveByID fetches a plan that exists and is currently purchasable.
func (r *PlanRepository) GetActiveByID(ctx context.Context, id int) (*model.Plan, error) {
	var p model.Plan
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, price, currency, duration_days, is_active, created_at, updated_at
		 FROM plans WHERE id = $1 AND is_active = TRUE`,
		id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.DurationDays, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListActive returns the purchasable plan catalog, cheapest first.
func (r *PlanRepository) ListActive(ctx context.Context) ([]model.Plan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, price, currency, duration_days, is_active, created_at, updated_at
		 FROM plans WHERE is_active = TRUE ORDER BY price ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.DurationDays, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
