package handlers

import (
	"net/http"
	"strconv"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type ReflectionHandler struct {
	reflectionService service.ReflectionService
}

// NewReflectionHandler creates a new reflection handler
func NewReflectionHandler(reflectionService service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{
		reflectionService: reflectionService,
	}
}

// GetReflections handles GET /api/v1/reflections?limit=
func (h *ReflectionHandler) GetReflections(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "limit", Message: "must be a non-negative integer", Code: "invalid_type"},
			}))
			return
		}
		limit = v
	}

	reflections, err := h.reflectionService.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err, "reflection", "")
		return
	}

	c.JSON(http.StatusOK, reflections)
}

// CreateReflection handles POST /api/v1/reflections
func (h *ReflectionHandler) CreateReflection(c *gin.Context) {
	var req models.CreateReflectionRequest
	if !bindJSON(c, &req) {
		return
	}

	reflection, err := h.reflectionService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "reflection", "")
		return
	}

	c.JSON(http.StatusCreated, reflection)
}

// GetInsights handles GET /api/v1/reflect-insights?date=
func (h *ReflectionHandler) GetInsights(c *gin.Context) {
	insights, err := h.reflectionService.Insights(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err, "reflection", "")
		return
	}

	c.JSON(http.StatusOK, insights)
}
