package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepply/prepply-backend/internal/middleware"
	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/repository"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
	"github.com/prepply/prepply-backend/internal/validator"
)

type PaymentHandler struct {
	subService *service.SubscriptionService
	log        zerolog.Logger
}

func NewPaymentHandler(subService *service.SubscriptionService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		subService: subService,
		log:        log.With().Str("component", "payment_handler").Logger(),
	}
}

// CreateOrder godoc
// POST /api/v1/payments/orders
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.CreateOrderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	order, err := h.subService.CreateOrder(c.Request.Context(), user, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGatewayNotConfigured):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable)
		case errors.Is(err, repository.ErrPlanNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPlan)
		default:
			h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("order creation failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrOrderCreationFailed)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// VerifyPayment godoc
// POST /api/v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	var req model.VerifyPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.subService.Verify(c.Request.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerificationFailed):
			response.Fail(c, http.StatusBadRequest, response.ErrVerificationFailed)
		case errors.Is(err, repository.ErrSubscriptionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSubscriptionNotFound)
		default:
			h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("payment verification failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	summary := model.SubscriptionSummary{PlanName: sub.PlanName}
	if sub.StartsAt != nil {
		summary.StartsAt = *sub.StartsAt
	}
	if sub.ExpiresAt != nil {
		summary.ExpiresAt = *sub.ExpiresAt
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "subscription": summary})
}

// GetMySubscription godoc
// GET /api/v1/subscriptions/me
func (h *PaymentHandler) GetMySubscription(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	summary, err := h.subService.Current(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSubscriptionNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("subscription lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subscription": summary})
}
