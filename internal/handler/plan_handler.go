package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepply/prepply-backend/internal/model"
	"github.com/prepply/prepply-backend/internal/response"
	"github.com/prepply/prepply-backend/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GetAll godoc
// GET /api/v1/plans
func (h *PlanHandler) GetAll(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if plans == nil {
		plans = []model.Plan{}
	}

	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}
