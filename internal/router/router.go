package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/handler"
	"github.com/prepply/prepply-backend/internal/middleware"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Question *handler.QuestionHandler
	Chat     *handler.ChatHandler
	Payment  *handler.PaymentHandler
	Plan     *handler.PlanHandler
	Attempt  *handler.AttemptHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the generation endpoint. Each call costs an LLM
	// round trip, so keep anonymous traffic modest.
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/plans", middleware.CacheControl(300), handlers.Plan.GetAll)
		public.POST("/quiz/generate", generateLimiter.Middleware(), handlers.Question.Generate)
	}

	// ─── 2. Authenticated Group (JWT) ──────────────────────────────────
	authed := router.Group("/api/v1")
	authed.Use(middleware.RequireUser(authService))
	{
		authed.POST("/chat", handlers.Chat.Chat)

		authed.POST("/quiz/attempts", handlers.Attempt.Record)
		authed.GET("/quiz/attempts", handlers.Attempt.List)
		authed.GET("/quiz/stats", handlers.Attempt.Stats)

		authed.POST("/payments/orders", handlers.Payment.CreateOrder)
		authed.POST("/payments/verify", handlers.Payment.VerifyPayment)
		authed.GET("/subscriptions/me", handlers.Payment.GetMySubscription)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/chat", handlers.WS.ChatStream)
	}

	return router
}
