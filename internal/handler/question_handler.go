package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/quizgen"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/validator"
)

type QuestionHandler struct {
	generator *quizgen.Generator
	log       zerolog.Logger
}

func NewQuestionHandler(generator *quizgen.Generator, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		generator: generator,
		log:       log.With().Str("component", "question_handler").Logger(),
	}
}

// Generate godoc
// POST /api/v1/quiz/generate
func (h *QuestionHandler) Generate(c *gin.Context) {
	var req model.GenerateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.generator.Generate(c.Request.Context(), req.Subject, req.Topic)
	if err != nil {
		var parseErr *quizgen.ParseError
		var validationErr *quizgen.ValidationError

		switch {
		case errors.As(err, &parseErr):
			h.log.Error().Err(err).Str("subject", req.Subject).Msg("AI response unparseable")
			response.Fail(c, http.StatusInternalServerError, response.ErrMalformedAIResponse)
		case errors.As(err, &validationErr):
			h.log.Error().Err(err).Str("subject", req.Subject).Msg("AI response failed validation")
			response.FailWithMessage(c, http.StatusInternalServerError, response.ErrValidationFailed, validationErr.Error())
		default:
			h.log.Error().Err(err).Str("subject", req.Subject).Msg("question generation failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrGenerationUnavailable)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
