package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/llm"
)

// wellFormedBatchJSON renders a clean 5-question array the way a
// cooperative model would.
func wellFormedBatchJSON() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range 5 {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf(`{
			"question": "Question %d?",
			"options": [
				{"label": "A", "text": "first"},
				{"label": "B", "text": "second"},
				{"label": "C", "text": "third"},
				{"label": "D", "text": "fourth"}
			],
			"correctAnswer": "B",
			"explanation": "Because of reason %d."
		}`, i+1, i+1))
	}
	sb.WriteString("]")
	return sb.String()
}

func newTestGenerator(mock *llm.MockCompleter) *Generator {
	return NewGenerator(mock, zerolog.Nop())
}

func TestGenerate_WellFormedResponse(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: wellFormedBatchJSON()})
	g := newTestGenerator(mock)

	questions, err := g.Generate(context.Background(), "Physics", "Optics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, len(questions))
	}

	seenIDs := make(map[string]bool)
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		labels := make(map[string]bool)
		for _, opt := range q.Options {
			if labels[opt.Label] {
				t.Errorf("question %d: duplicate label %s", i+1, opt.Label)
			}
			labels[opt.Label] = true
		}
		if !labels[q.CorrectAnswer] {
			t.Errorf("question %d: correctAnswer %q not among labels", i+1, q.CorrectAnswer)
		}
		if q.Subject != "Physics" || q.Topic != "Optics" {
			t.Errorf("question %d: subject/topic not stamped: %q/%q", i+1, q.Subject, q.Topic)
		}
		if q.ID == "" || seenIDs[q.ID] {
			t.Errorf("question %d: id %q missing or not unique", i+1, q.ID)
		}
		seenIDs[q.ID] = true
	}
}

func TestGenerate_FencedSmartQuotedTrailingComma(t *testing.T) {
	// Regression case: fenced block, smart quotes, and a trailing comma in
	// one response. The repair pipeline must still parse it.
	dirty := "```json\n" + strings.ReplaceAll(wellFormedBatchJSON(), `"first"`, `"Newton’s answer"`)
	dirty = strings.Replace(dirty, `}]`, `},]`, 1)
	dirty += "\n```"

	mock := llm.NewMockCompleter(llm.MockResponse{Content: dirty})
	g := newTestGenerator(mock)

	questions, err := g.Generate(context.Background(), "Physics", "Mechanics")
	if err != nil {
		t.Fatalf("expected repair pipeline to cope, got %v", err)
	}
	if len(questions) != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, len(questions))
	}
	if questions[0].Options[0].Text != "Newton's answer" {
		t.Errorf("smart apostrophe not normalized: %q", questions[0].Options[0].Text)
	}
}

func TestGenerate_ThreeOptionQuestionRejectsBatch(t *testing.T) {
	var batch []map[string]any
	if err := json.Unmarshal([]byte(wellFormedBatchJSON()), &batch); err != nil {
		t.Fatal(err)
	}
	// Second question loses an option.
	opts := batch[1]["options"].([]any)
	batch[1]["options"] = opts[:3]
	payload, _ := json.Marshal(batch)

	mock := llm.NewMockCompleter(llm.MockResponse{Content: string(payload)})
	g := newTestGenerator(mock)

	questions, err := g.Generate(context.Background(), "History", "Rome")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if questions != nil {
		t.Errorf("all-or-nothing violated: got %d questions back", len(questions))
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Index != 2 {
		t.Errorf("expected offending index 2, got %d", verr.Index)
	}
}

func TestGenerate_GarbageResponse(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{
		Content: "[I'm sorry, but { I can't produce that",
	})
	g := newTestGenerator(mock)

	_, err := g.Generate(context.Background(), "Math", "Algebra")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestGenerate_NoArrayInResponse(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: "I cannot generate questions right now."})
	g := newTestGenerator(mock)

	_, err := g.Generate(context.Background(), "Math", "Algebra")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Err: &llm.ErrUnavailable{}})
	g := newTestGenerator(mock)

	_, err := g.Generate(context.Background(), "Math", "Algebra")
	if err == nil {
		t.Fatal("expected provider error")
	}
	var unavail *llm.ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped *llm.ErrUnavailable, got %T: %v", err, err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one provider call, got %d", mock.CallCount())
	}
}

func TestGenerate_PromptForbidsFencing(t *testing.T) {
	mock := llm.NewMockCompleter(llm.MockResponse{Content: wellFormedBatchJSON()})
	g := newTestGenerator(mock)

	if _, err := g.Generate(context.Background(), "Biology", "Cells"); err != nil {
		t.Fatal(err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Biology") || !strings.Contains(prompt, "Cells") {
		t.Error("prompt should embed subject and topic")
	}
	if !strings.Contains(prompt, "Do not wrap it in markdown code fences") {
		t.Error("prompt should forbid markdown fencing")
	}
}
