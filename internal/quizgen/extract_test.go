package quizgen

import "testing"

func TestExtractJSONArray_Bare(t *testing.T) {
	raw := `[{"question": "q"}]`
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != raw {
		t.Errorf("expected %q, got %q", raw, got)
	}
}

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	raw := "Here are your questions:\n[{\"question\": \"q\"}]\nHope this helps!"
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != `[{"question": "q"}]` {
		t.Errorf("unexpected span: %q", got)
	}
}

func TestExtractJSONArray_FencedBlock(t *testing.T) {
	raw := "```json\n[{\"question\": \"q\"}]\n```"
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != `[{"question": "q"}]` {
		t.Errorf("unexpected span: %q", got)
	}
}

func TestExtractJSONArray_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n[1, 2, 3]\n```"
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != `[1, 2, 3]` {
		t.Errorf("unexpected span: %q", got)
	}
}

func TestExtractJSONArray_BracketsInsideStrings(t *testing.T) {
	raw := `[{"question": "Solve [x+1] = 2"}]`
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != raw {
		t.Errorf("bracket inside string terminated span early: %q", got)
	}
}

func TestExtractJSONArray_NestedArrays(t *testing.T) {
	raw := `junk [[1, 2], [3, 4]] trailing`
	got, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected array to be found")
	}
	if got != `[[1, 2], [3, 4]]` {
		t.Errorf("unexpected span: %q", got)
	}
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	if _, ok := ExtractJSONArray("I cannot help with that."); ok {
		t.Error("expected no array in plain refusal text")
	}
}

func TestExtractJSONArray_UnterminatedArray(t *testing.T) {
	if _, ok := ExtractJSONArray(`[{"question": "q"`); ok {
		t.Error("expected unterminated array to be rejected")
	}
}
