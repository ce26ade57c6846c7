package websocket

import "github.com/prepply/prepply-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionMessage Action = "message"
	ActionReset   Action = "reset"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// MessageRequest is sent by the client to ask the tutor a question.
type MessageRequest struct {
	Action  Action `json:"action"`
	Content string `json:"content"`
}

// ResetRequest clears the server-held conversation history.
type ResetRequest struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReply Event = "reply"
	EventReset Event = "reset"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ResetResponse acknowledges a cleared conversation.
type ResetResponse struct {
	Event Event `json:"event"`
}

type ReplyResponse struct {
	Event   Event  `json:"event"`
	Content string `json:"content"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

// HistoryLimit caps the rolling conversation window kept per connection.
// Matches the HTTP chat endpoint's history cap.
const HistoryLimit = 50

// TrimHistory drops the oldest turns once the window exceeds the cap.
func TrimHistory(history []model.ChatMessage) []model.ChatMessage {
	if len(history) <= HistoryLimit {
		return history
	}
	return history[len(history)-HistoryLimit:]
}
