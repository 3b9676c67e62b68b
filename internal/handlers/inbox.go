package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type InboxHandler struct {
	inboxService service.InboxService
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(inboxService service.InboxService) *InboxHandler {
	return &InboxHandler{
		inboxService: inboxService,
	}
}

// GetInbox handles GET /api/v1/inbox?status=
func (h *InboxHandler) GetInbox(c *gin.Context) {
	status := c.Query("status")
	switch models.InboxStatus(status) {
	case "", models.InboxStatusPending, models.InboxStatusRouted, models.InboxStatusDismissed:
	default:
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "status", Message: "must be one of: pending routed dismissed", Code: "oneof"},
		}))
		return
	}

	items, err := h.inboxService.List(c.Request.Context(), status)
	if err != nil {
		writeError(c, err, "inbox item", "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// Capture handles POST /api/v1/inbox
func (h *InboxHandler) Capture(c *gin.Context) {
	var req models.CaptureRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inboxService.Capture(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "inbox item", "")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RouteItem handles POST /api/v1/inbox/:id/route
func (h *InboxHandler) RouteItem(c *gin.Context) {
	id := c.Param("id")

	var req models.RouteInboxRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inboxService.Route(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err, "inbox item", id)
		return
	}

	c.JSON(http.StatusOK, item)
}
