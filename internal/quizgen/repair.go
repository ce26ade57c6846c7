package quizgen

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The repair passes are best-effort text normalization for JSON mistakes
// LLMs actually make. They run in a fixed order, the candidate is parsed
// after each pass, and there are exactly two passes — a batch that still
// fails after the aggressive pass is rejected, never salvaged per question.

var (
	strayBackslashRe  = regexp.MustCompile(`\\([^"\\/bfnrtu])`)
	trailingCommaRe   = regexp.MustCompile(`,\s*([}\]])`)
	embeddedNewlineRe = regexp.MustCompile(`[ \t]*\r?\n[ \t]*`)
	residualFenceRe   = regexp.MustCompile("```[a-zA-Z]*")
	multiSpaceRe      = regexp.MustCompile(`  +`)
)

var smartPunctReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote / apostrophe
	"“", `\"`, // left double quote
	"”", `\"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
)

// repairConservative fixes the common, low-risk mistakes: smart
// punctuation, lone backslashes that do not start a valid escape,
// trailing commas, and raw newlines embedded in string values.
func repairConservative(s string) string {
	s = smartPunctReplacer.Replace(s)
	s = strayBackslashRe.ReplaceAllString(s, `\\$1`)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = embeddedNewlineRe.ReplaceAllString(s, " ")
	return s
}

// repairAggressive is the second, broader pass: every backslash is
// doubled (valid escapes were already normalized by the first pass, so
// anything left is literal text), residual fence markers are dropped,
// and whitespace runs are collapsed.
func repairAggressive(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\`, `\\`)
	// Re-protect escaped quotes broken by the blanket doubling.
	s = strings.ReplaceAll(s, `\\"`, `\"`)
	s = residualFenceRe.ReplaceAllString(s, "")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// parseWithRepairs attempts to decode the extracted span into a question
// batch, applying the conservative pass first and the aggressive pass on
// failure. Exactly two parse attempts are made.
func parseWithRepairs(span string) ([]rawQuestion, error) {
	candidate := repairConservative(span)

	var batch []rawQuestion
	firstErr := json.Unmarshal([]byte(candidate), &batch)
	if firstErr == nil {
		return batch, nil
	}

	candidate = repairAggressive(candidate)

	batch = nil
	if err := json.Unmarshal([]byte(candidate), &batch); err != nil {
		return nil, &ParseError{First: firstErr, Second: err}
	}
	return batch, nil
}
