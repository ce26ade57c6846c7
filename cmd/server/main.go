package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/database"
	"github.com/prepply/prepply-backend/internal/handler"
	"github.com/prepply/prepply-backend/internal/llm"
	"github.com/prepply/prepply-backend/internal/logger"
	"github.com/prepply/prepply-backend/internal/payment"
	"github.com/prepply/prepply-backend/internal/quizgen"
	"github.com/prepply/prepply-backend/internal/repository"
	"github.com/prepply/prepply-backend/internal/router"
	"github.com/prepply/prepply-backend/internal/service"
	"github.com/prepply/prepply-backend/internal/validator"
	"github.com/prepply/prepply-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Prepply Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize AI Provider ────────────────────────────────────────
	llmClient, err := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.LLMTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI provider")
	}
	retryCfg := llm.DefaultRetryConfig
	retryCfg.MaxAttempts = cfg.LLMMaxAttempts
	completer := llm.WithRetry(llmClient, retryCfg)

	// ─── Initialize Payment Gateway ────────────────────────────────────
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	// ─── Initialize Repositories ───────────────────────────────────────
	planRepo := repository.NewPlanRepository(pool)
	subRepo := repository.NewSubscriptionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	chatService := service.NewChatService(completer, log)
	planService := service.NewPlanService(planRepo, rdb, log)
	subService := service.NewSubscriptionService(cfg, planRepo, subRepo, gateway, log)
	attemptService := service.NewAttemptService(attemptRepo, rdb, log)
	generator := quizgen.NewGenerator(completer, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Question: handler.NewQuestionHandler(generator, log),
		Chat:     handler.NewChatHandler(chatService, log),
		Payment:  handler.NewPaymentHandler(subService, log),
		Plan:     handler.NewPlanHandler(planService),
		Attempt:  handler.NewAttemptHandler(attemptService, log),
		WS:       handler.NewWSHandler(chatService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	attemptWorker := worker.NewAttemptWorker(attemptRepo, rdb, log)
	expiryWorker := worker.NewExpiryWorker(subRepo, log)

	go attemptWorker.Start(workerCtx)
	go expiryWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the plan catalog into Redis before accepting traffic.
	if err := planService.PrewarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
