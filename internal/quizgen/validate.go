package quizgen

import (
	"fmt"
	"strings"

	"github.com/prepply/prepply-backend/internal/model"
)

// rawQuestion is the parse target for one LLM-authored question, before
// ids and request metadata are stamped on.
type rawQuestion struct {
	Question      string                 `json:"question"`
	Options       []model.QuestionOption `json:"options"`
	CorrectAnswer string                 `json:"correctAnswer"`
	Explanation   string                 `json:"explanation"`
}

// validLabels is the only accepted option label set.
var validLabels = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// validateBatch enforces the question schema over the whole batch.
// The first violation aborts everything: a batch with one broken question
// returns zero questions to the caller.
func validateBatch(batch []rawQuestion) *ValidationError {
	if len(batch) == 0 {
		return &ValidationError{Reason: "response contains no questions"}
	}

	for i, q := range batch {
		idx := i + 1

		if strings.TrimSpace(q.Question) == "" {
			return &ValidationError{Index: idx, Reason: "question text is empty"}
		}
		if len(q.Options) != optionCount {
			return &ValidationError{Index: idx, Reason: fmt.Sprintf("expected %d options, got %d", optionCount, len(q.Options))}
		}

		seen := make(map[string]bool, optionCount)
		for _, opt := range q.Options {
			if strings.TrimSpace(opt.Label) == "" {
				return &ValidationError{Index: idx, Reason: "option label is empty"}
			}
			if strings.TrimSpace(opt.Text) == "" {
				return &ValidationError{Index: idx, Reason: fmt.Sprintf("option %s has empty text", opt.Label)}
			}
			if !validLabels[opt.Label] {
				return &ValidationError{Index: idx, Reason: fmt.Sprintf("option label %q is not one of A-D", opt.Label)}
			}
			if seen[opt.Label] {
				return &ValidationError{Index: idx, Reason: fmt.Sprintf("duplicate option label %s", opt.Label)}
			}
			seen[opt.Label] = true
		}

		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return &ValidationError{Index: idx, Reason: "correctAnswer is empty"}
		}
		if !seen[q.CorrectAnswer] {
			return &ValidationError{Index: idx, Reason: fmt.Sprintf("correctAnswer %q does not match any option label", q.CorrectAnswer)}
		}
		if strings.TrimSpace(q.Explanation) == "" {
			return &ValidationError{Index: idx, Reason: "explanation is empty"}
		}
	}

	return nil
}
