package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Request describes one chat completion call.
type Request struct {
	// System is the system prompt establishing the assistant persona.
	System string

	// Messages is the conversation in chronological order.
	Messages []Message

	// Temperature controls sampling randomness. Question generation uses a
	// low value to favor deterministic, parseable output.
	Temperature float32

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int
}

// ChatCompleter is the provider abstraction consumed by services.
// Implementations must be safe for concurrent use; a single instance is
// shared across all requests for the process lifetime.
type ChatCompleter interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client wraps an OpenAI-compatible chat completion API.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates an LLM client. baseURL may point at any
// OpenAI-compatible gateway; empty means the default OpenAI endpoint.
// timeout caps each completion call; zero disables the cap.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("LLM API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete issues a single chat completion call and returns the assistant
// message text. Provider failures are mapped to the typed errors in this
// package so callers can translate them to wire codes.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := buildMessages(req)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ErrUnavailable{Err: fmt.Errorf("no choices in completion response")}
	}

	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

// mapError converts SDK errors into this package's typed errors.
// 429 and 402 are distinguished because the chat endpoint surfaces them as
// distinct caller-facing codes; everything else is ErrUnavailable.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimited{Err: err}
		case apiErr.HTTPStatusCode == http.StatusPaymentRequired:
			return &ErrQuotaExhausted{Err: err}
		default:
			return &ErrUnavailable{Status: apiErr.HTTPStatusCode, Err: err}
		}
	}

	// Transport-level failure (DNS, TLS, timeout).
	return &ErrUnavailable{Err: err}
}
