package handlers

import (
	"errors"
	"net/http"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightService service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GetInsight handles GET /api/v1/insight?date=
// Runs every detector.
func (h *InsightHandler) GetInsight(c *gin.Context) {
	report, err := h.insightService.Report(c.Request.Context(), c.Query("date"), insight.FullFeatures())
	if err != nil {
		h.writeInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHub handles GET /api/v1/hub?date=
func (h *InsightHandler) GetHub(c *gin.Context) {
	hub, err := h.insightService.Hub(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, hub)
}

// writeInsightError reports a malformed stored log as 422 with the
// offending row indexes; anything else goes through writeError.
func (h *InsightHandler) writeInsightError(c *gin.Context, err error) {
	var verrs insight.ValidationErrors
	if errors.As(err, &verrs) {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidLogError(requestID, logFieldErrors(verrs, true)))
		return
	}
	writeError(c, err, "insight", "")
}
