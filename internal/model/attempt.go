package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is one finished quiz recorded for history and stats.
type QuizAttempt struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Subject        string    `json:"subject"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TakenAt        time.Time `json:"taken_at"`
}

// RecordAttemptRequest is the payload for recording a finished quiz.
type RecordAttemptRequest struct {
	Subject        string `json:"subject" binding:"required,min=1,max=100"`
	Topic          string `json:"topic" binding:"required,min=1,max=150"`
	Score          int    `json:"score" binding:"min=0"`
	TotalQuestions int    `json:"total_questions" binding:"required,min=1"`
}

// SubjectStats aggregates a user's attempts for one subject.
type SubjectStats struct {
	Subject      string  `json:"subject"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
}
