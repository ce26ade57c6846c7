package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/llm"
	"github.com/prepply/prepply-backend/internal/middleware"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
	ws "github.com/prepply/prepply-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket tutor chat stream. Unlike the HTTP
// chat endpoint, the conversation history lives server-side for the
// lifetime of the connection.
type WSHandler struct {
	chatService *service.ChatService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(chatService *service.ChatService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		chatService: chatService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ChatStream godoc
// WS /ws/v1/chat
// Upgrades to WebSocket for a stateful tutoring conversation.
func (h *WSHandler) ChatStream(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("user_id", user.ID.String()).Logger()
	wsLog.Info().Msg("Chat session connected")

	var history []model.ChatMessage

	for {
		var msg ws.MessageRequest
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionMessage:
			history = h.handleMessage(c, conn, wsLog, history, msg.Content)
		case ws.ActionReset:
			history = nil
			ws.WriteTyped(conn, ws.ResetResponse{Event: ws.EventReset})
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, string(response.ErrInvalidPayload), "unknown action: "+string(msg.Action))
		}
	}
}

// handleMessage relays one turn to the AI provider and appends both
// sides to the rolling history on success.
func (h *WSHandler) handleMessage(c *gin.Context, conn *websocket.Conn, wsLog zerolog.Logger, history []model.ChatMessage, content string) []model.ChatMessage {
	if strings.TrimSpace(content) == "" {
		ws.WriteError(conn, string(response.ErrValidation), "content is required")
		return history
	}

	reply, err := h.chatService.Reply(c.Request.Context(), history, content)
	if err != nil {
		code := response.ErrUpstream
		var rateLimited *llm.ErrRateLimited
		var quotaExhausted *llm.ErrQuotaExhausted
		switch {
		case errors.As(err, &rateLimited):
			code = response.ErrRateLimited
		case errors.As(err, &quotaExhausted):
			code = response.ErrPaymentRequired
		}
		wsLog.Error().Err(err).Msg("Chat relay failed")
		ws.WriteError(conn, string(code), response.GetMessage(code))
		return history
	}

	history = append(history,
		model.ChatMessage{Role: "user", Content: content},
		model.ChatMessage{Role: "assistant", Content: reply},
	)
	history = ws.TrimHistory(history)

	ws.WriteTyped(conn, ws.ReplyResponse{Event: ws.EventReply, Content: reply})
	return history
}
