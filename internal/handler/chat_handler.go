package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/llm"
	"github.com/prepply/prepply-backend/internal/middleware"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
	"github.com/prepply/prepply-backend/internal/validator"
)

type ChatHandler struct {
	chatService *service.ChatService
	log         zerolog.Logger
}

func NewChatHandler(chatService *service.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log.With().Str("component", "chat_handler").Logger(),
	}
}

// Chat godoc
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.ChatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), req.ConversationHistory, req.Message)
	if err != nil {
		h.respondChatError(c, err, user.ID.String())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response": reply})
}

// respondChatError maps provider failures onto status codes the client
// distinguishes: 429 means retry later, 402 means the operator's quota
// is gone, everything else is a generic upstream failure.
func (h *ChatHandler) respondChatError(c *gin.Context, err error, userID string) {
	var rateLimited *llm.ErrRateLimited
	var quotaExhausted *llm.ErrQuotaExhausted

	switch {
	case errors.As(err, &rateLimited):
		response.Fail(c, http.StatusTooManyRequests, response.ErrRateLimited)
	case errors.As(err, &quotaExhausted):
		h.log.Error().Err(err).Str("user_id", userID).Msg("AI quota exhausted")
		response.Fail(c, http.StatusPaymentRequired, response.ErrPaymentRequired)
	default:
		h.log.Error().Err(err).Str("user_id", userID).Msg("chat relay failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrUpstream)
	}
}
