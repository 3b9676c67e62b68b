package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// GetPlan handles GET /api/v1/plan?date=
func (h *PlanHandler) GetPlan(c *gin.Context) {
	items, err := h.planService.ListDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err, "plan item", "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreatePlanItem handles POST /api/v1/plan
func (h *PlanHandler) CreatePlanItem(c *gin.Context) {
	var req models.CreatePlanItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "plan item", "")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdatePlanItem handles PATCH /api/v1/plan/:id
func (h *PlanHandler) UpdatePlanItem(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdatePlanItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.planService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err, "plan item", id)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeletePlanItem handles DELETE /api/v1/plan/:id
func (h *PlanHandler) DeletePlanItem(c *gin.Context) {
	id := c.Param("id")

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "plan item", id)
		return
	}

	c.Status(http.StatusNoContent)
}
