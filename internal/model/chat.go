package model

// ChatMessage is a single turn in a tutor conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the payload for the tutor chat endpoint.
// ConversationHistory, when present, is forwarded to the model in
// chronological order ahead of Message.
type ChatRequest struct {
	Message             string        `json:"message" binding:"required,min=1,max=4000"`
	ConversationHistory []ChatMessage `json:"conversationHistory" binding:"omitempty,max=50,dive"`
}
