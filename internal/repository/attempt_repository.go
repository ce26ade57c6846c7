package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepply/prepply-backend/internal/model"
)

type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// InsertBatch persists a drained queue batch in one round trip.
func (r *AttemptRepository) InsertBatch(ctx context.Context, attempts []model.QuizAttempt) error {
	if len(attempts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range attempts {
		batch.Queue(
			`INSERT INTO quiz_attempts (user_id, subject, topic, score, total_questions, taken_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			a.UserID, a.Subject, a.Topic, a.Score, a.TotalQuestions, a.TakenAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range attempts {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser returns the user's attempt history, newest first.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.QuizAttempt, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, subject, topic, score, total_questions, taken_at
		 FROM quiz_attempts
		 WHERE user_id = $1
		 ORDER BY taken_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		var a model.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Subject, &a.Topic, &a.Score, &a.TotalQuestions, &a.TakenAt); err != nil {
			return nil, 0, err
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}

// StatsByUser aggregates per-subject performance across all attempts.
func (r *AttemptRepository) StatsByUser(ctx context.Context, userID uuid.UUID) ([]model.SubjectStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject,
		        COUNT(*) AS attempts,
		        ROUND(AVG(score::NUMERIC / NULLIF(total_questions, 0) * 100), 1)::FLOAT8 AS average_score,
		        MAX(score)::FLOAT8 AS best_score
		 FROM quiz_attempts
		 WHERE user_id = $1
		 GROUP BY subject
		 ORDER BY subject ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.SubjectStats
	for rows.Next() {
		var s model.SubjectStats
		if err := rows.Scan(&s.Subject, &s.Attempts, &s.AverageScore, &s.BestScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
