package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	signalService service.SignalService
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signalService service.SignalService) *SignalHandler {
	return &SignalHandler{
		signalService: signalService,
	}
}

// GetSignals handles GET /api/v1/signals?from=&to=
func (h *SignalHandler) GetSignals(c *gin.Context) {
	entries, err := h.signalService.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err, "signal", "")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// LogSignal handles POST /api/v1/signals
func (h *SignalHandler) LogSignal(c *gin.Context) {
	var req models.LogSignalRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.signalService.Log(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "signal", "")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteSignal handles DELETE /api/v1/signals?date=&metric=
func (h *SignalHandler) DeleteSignal(c *gin.Context) {
	date, metric := c.Query("date"), c.Query("metric")
	if err := h.signalService.Delete(c.Request.Context(), date, metric); err != nil {
		writeError(c, err, "signal", date+"/"+metric)
		return
	}

	c.Status(http.StatusNoContent)
}
