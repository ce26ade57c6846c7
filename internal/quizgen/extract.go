package quizgen

import "strings"

// ExtractJSONArray isolates the first JSON array in raw LLM output.
// Models ignore the no-fencing instruction often enough that a fenced code
// block is stripped first; the remainder is scanned with a bracket matcher
// that is string-literal aware, so brackets inside question text do not
// terminate the span early.
func ExtractJSONArray(raw string) (string, bool) {
	content := stripCodeFence(strings.TrimSpace(raw))

	start := strings.Index(content, "[")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		ch := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	return "", false
}

// stripCodeFence removes a leading ```/```json fence and its closing fence.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := 3
	// Skip the language identifier line (e.g. "json").
	if nl := strings.Index(content[start:], "\n"); nl != -1 {
		start += nl + 1
	}

	if end := strings.Index(content[start:], "```"); end != -1 {
		return strings.TrimSpace(content[start : start+end])
	}
	return strings.TrimSpace(content[start:])
}
