package quizgen

import "fmt"

// ParseError means the LLM output could not be coerced into JSON after
// both repair passes. The handler maps it to malformed_ai_response.
type ParseError struct {
	First  error
	Second error
}

func (e *ParseError) Error() string {
	if e.Second == nil {
		return fmt.Sprintf("parse AI response: %v", e.First)
	}
	return fmt.Sprintf("parse AI response after both repair passes: %v (first attempt: %v)", e.Second, e.First)
}

// ValidationError means the parsed batch violates the question schema.
// Index is 1-based; zero refers to the batch as a whole (e.g. empty).
// The whole batch is rejected — no per-question salvage.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("invalid question batch: %s", e.Reason)
	}
	return fmt.Sprintf("question %d: %s", e.Index, e.Reason)
}
