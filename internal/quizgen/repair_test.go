package quizgen

import "testing"

func TestParseWithRepairs_CleanInput(t *testing.T) {
	span := `[{"question": "q", "options": [], "correctAnswer": "A", "explanation": "e"}]`
	batch, err := parseWithRepairs(span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 1 || batch[0].Question != "q" {
		t.Errorf("unexpected batch: %+v", batch)
	}
}

func TestParseWithRepairs_SmartQuotesAndApostrophes(t *testing.T) {
	span := `[{"question": "What is Earth’s “twin” planet?", "explanation": "e"}]`
	batch, err := parseWithRepairs(span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch[0].Question != "What is Earth's \"twin\" planet?" {
		t.Errorf("unexpected question text: %q", batch[0].Question)
	}
}

func TestParseWithRepairs_TrailingCommas(t *testing.T) {
	span := `[{"question": "q", "explanation": "e",},]`
	batch, err := parseWithRepairs(span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 1 {
		t.Errorf("expected 1 question, got %d", len(batch))
	}
}

func TestParseWithRepairs_EmbeddedNewlines(t *testing.T) {
	span := "[{\"question\": \"line one\n   line two\", \"explanation\": \"e\"}]"
	batch, err := parseWithRepairs(span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch[0].Question != "line one line two" {
		t.Errorf("newline not collapsed: %q", batch[0].Question)
	}
}

func TestParseWithRepairs_StrayBackslash(t *testing.T) {
	span := `[{"question": "path C:\quiz", "explanation": "e"}]`
	batch, err := parseWithRepairs(span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch[0].Question != `path C:\quiz` {
		t.Errorf("unexpected question text: %q", batch[0].Question)
	}
}

func TestParseWithRepairs_GarbageFailsBothPasses(t *testing.T) {
	_, err := parseWithRepairs(`[this is not json at all}`)
	if err == nil {
		t.Fatal("expected parse failure")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.First == nil || perr.Second == nil {
		t.Error("expected both attempts to be recorded")
	}
}
