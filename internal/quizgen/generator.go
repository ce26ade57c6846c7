package quizgen

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/llm"
	"github.com/prepply/prepply-backend/internal/model"
)

const (
	// QuestionCount is the fixed batch size returned per request.
	QuestionCount = 5

	optionCount = 4

	// generationTemperature is kept low to favor parseable output.
	generationTemperature = 0.3

	generationMaxTokens = 4096
)

// Generator turns a subject/topic pair into a validated question batch.
// It is stateless; a single instance serves all requests.
type Generator struct {
	llm llm.ChatCompleter
	log zerolog.Logger
	now func() time.Time
}

// NewGenerator creates a Generator backed by the given completer.
func NewGenerator(completer llm.ChatCompleter, log zerolog.Logger) *Generator {
	return &Generator{
		llm: completer,
		log: log.With().Str("component", "quizgen").Logger(),
		now: time.Now,
	}
}

// Generate produces exactly QuestionCount validated questions, or an error:
//   - a typed llm error when the provider call fails,
//   - *ParseError when the output resists both repair passes,
//   - *ValidationError when the parsed batch violates the schema.
//
// Validation is all-or-nothing; a partially good batch is never returned.
func (g *Generator) Generate(ctx context.Context, subject, topic string) ([]model.GeneratedQuestion, error) {
	raw, err := g.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(subject, topic)},
		},
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	span, ok := ExtractJSONArray(raw)
	if !ok {
		g.log.Warn().Str("subject", subject).Str("topic", topic).Msg("No JSON array in AI response")
		return nil, &ParseError{First: fmt.Errorf("no JSON array found in response")}
	}

	batch, err := parseWithRepairs(span)
	if err != nil {
		g.log.Warn().Err(err).Str("subject", subject).Str("topic", topic).Msg("AI response unparseable after repairs")
		return nil, err
	}

	if verr := validateBatch(batch); verr != nil {
		g.log.Warn().Err(verr).Str("subject", subject).Str("topic", topic).Msg("AI question batch failed validation")
		return nil, verr
	}

	return g.stamp(batch, subject, topic), nil
}

// stamp assigns ids and carries request metadata onto validated questions.
// Ids combine the generation timestamp with the 1-based position, so they
// are unique within a batch and stable for the client session.
func (g *Generator) stamp(batch []rawQuestion, subject, topic string) []model.GeneratedQuestion {
	ts := g.now().UnixMilli()

	questions := make([]model.GeneratedQuestion, len(batch))
	for i, q := range batch {
		questions[i] = model.GeneratedQuestion{
			ID:            fmt.Sprintf("%d-%d", ts, i+1),
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Subject:       subject,
			Topic:         topic,
		}
	}
	return questions
}
