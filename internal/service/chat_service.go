package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/llm"
	"github.com/prepply/prepply-backend/internal/model"
)

const tutorSystemPrompt = "You are a helpful study assistant for exam preparation. " +
	"Help students understand concepts, solve problems, and prepare for tests. " +
	"Keep responses concise and educational."

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1024
)

// ChatService relays tutoring conversations to the AI provider.
type ChatService struct {
	llm llm.ChatCompleter
	log zerolog.Logger
}

func NewChatService(completer llm.ChatCompleter, log zerolog.Logger) *ChatService {
	return &ChatService{
		llm: completer,
		log: log.With().Str("component", "chat_service").Logger(),
	}
}

// Reply forwards the conversation history plus the new message to the
// provider and returns the assistant's reply. History arrives oldest
// first and is passed through verbatim under the tutor persona.
func (s *ChatService) Reply(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	reply, err := s.llm.Complete(ctx, llm.Request{
		System:      tutorSystemPrompt,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Int("history_len", len(history)).Msg("chat completion failed")
		return "", err
	}
	return reply, nil
}
