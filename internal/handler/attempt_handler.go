package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/middleware"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
	"github.com/prepply/prepply-backend/internal/validator"
)

type AttemptHandler struct {
	attemptService *service.AttemptService
	log            zerolog.Logger
}

func NewAttemptHandler(attemptService *service.AttemptService, log zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		log:            log.With().Str("component", "attempt_handler").Logger(),
	}
}

// Record godoc
// POST /api/v1/quiz/attempts
func (h *AttemptHandler) Record(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.RecordAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attemptService.Record(c.Request.Context(), user.ID, &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// 202: persistence happens asynchronously via the worker queue.
	response.Success(c, http.StatusAccepted, gin.H{"message": "attempt recorded"})
}

// List godoc
// GET /api/v1/quiz/attempts
func (h *AttemptHandler) List(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	attempts, total, err := h.attemptService.List(c.Request.Context(), user.ID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if attempts == nil {
		attempts = []model.QuizAttempt{}
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"attempts": attempts}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Stats godoc
// GET /api/v1/quiz/stats
func (h *AttemptHandler) Stats(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	stats, err := h.attemptService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if stats == nil {
		stats = []model.SubjectStats{}
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
