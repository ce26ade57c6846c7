package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
)

const (
	// ContextKeyUser is the Gin context key for the authenticated user.
	ContextKeyUser = "auth_user"
)

// RequireUser validates a bearer token from the Authorization header.
// A missing header and an invalid token are distinct failures so
// clients can tell "log in" apart from "re-login".
func RequireUser(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		user, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrInvalidSession)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireUserWSAuth validates a bearer token from the query param ?token=...
// Used for WebSocket upgrade requests, which cannot set headers from
// browser clients.
func RequireUserWSAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		user, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrInvalidSession)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// GetUser retrieves the authenticated user from the Gin context.
func GetUser(c *gin.Context) *service.AuthUser {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*service.AuthUser)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
