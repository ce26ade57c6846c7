package quizgen

import (
	"strings"
	"testing"

	"github.com/prepply/prepply-backend/internal/model"
)

func validRawQuestion() rawQuestion {
	return rawQuestion{
		Question: "What is the capital of France?",
		Options: []model.QuestionOption{
			{Label: "A", Text: "Paris"},
			{Label: "B", Text: "Lyon"},
			{Label: "C", Text: "Marseille"},
			{Label: "D", Text: "Nice"},
		},
		CorrectAnswer: "A",
		Explanation:   "Paris is the capital of France.",
	}
}

func validBatch(n int) []rawQuestion {
	batch := make([]rawQuestion, n)
	for i := range batch {
		batch[i] = validRawQuestion()
	}
	return batch
}

func TestValidateBatch_Valid(t *testing.T) {
	if err := validateBatch(validBatch(5)); err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}
}

func TestValidateBatch_Empty(t *testing.T) {
	err := validateBatch(nil)
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	if err.Index != 0 {
		t.Errorf("expected batch-level index 0, got %d", err.Index)
	}
}

func TestValidateBatch_ReportsOneBasedIndex(t *testing.T) {
	batch := validBatch(5)
	batch[2].Options = batch[2].Options[:3] // third question loses an option

	err := validateBatch(batch)
	if err == nil {
		t.Fatal("expected error for 3-option question")
	}
	if err.Index != 3 {
		t.Errorf("expected index 3, got %d", err.Index)
	}
	if !strings.Contains(err.Reason, "options") {
		t.Errorf("reason should mention options: %q", err.Reason)
	}
}

func TestValidateBatch_EmptyQuestionText(t *testing.T) {
	batch := validBatch(2)
	batch[1].Question = "   "

	err := validateBatch(batch)
	if err == nil || err.Index != 2 {
		t.Fatalf("expected error at index 2, got %v", err)
	}
}

func TestValidateBatch_DuplicateLabels(t *testing.T) {
	batch := validBatch(1)
	batch[0].Options[3].Label = "A"

	err := validateBatch(batch)
	if err == nil {
		t.Fatal("expected error for duplicate labels")
	}
	if !strings.Contains(err.Reason, "duplicate") {
		t.Errorf("reason should mention duplicate: %q", err.Reason)
	}
}

func TestValidateBatch_LabelOutsideAlphabet(t *testing.T) {
	batch := validBatch(1)
	batch[0].Options[0].Label = "E"

	if err := validateBatch(batch); err == nil {
		t.Fatal("expected error for label outside A-D")
	}
}

func TestValidateBatch_CorrectAnswerNotAnOption(t *testing.T) {
	batch := validBatch(1)
	batch[0].CorrectAnswer = "E"

	err := validateBatch(batch)
	if err == nil {
		t.Fatal("expected error for correctAnswer not among labels")
	}
	if !strings.Contains(err.Reason, "correctAnswer") {
		t.Errorf("reason should mention correctAnswer: %q", err.Reason)
	}
}

func TestValidateBatch_EmptyExplanation(t *testing.T) {
	batch := validBatch(1)
	batch[0].Explanation = ""

	if err := validateBatch(batch); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}

func TestValidateBatch_EmptyOptionText(t *testing.T) {
	batch := validBatch(1)
	batch[0].Options[1].Text = ""

	if err := validateBatch(batch); err == nil {
		t.Fatal("expected error for empty option text")
	}
}
