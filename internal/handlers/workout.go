package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
	}
}

// GetWorkouts handles GET /api/v1/workouts?from=&to=
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err, "workout", "")
		return
	}

	c.JSON(http.StatusOK, workouts)
}

// CreateWorkout handles POST /api/v1/workouts
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req models.CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "workout", "")
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// DeleteWorkout handles DELETE /api/v1/workouts/:id
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id := c.Param("id")

	if err := h.workoutService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "workout", id)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary handles GET /api/v1/workouts/summary?date=
func (h *WorkoutHandler) GetSummary(c *gin.Context) {
	summary, err := h.workoutService.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err, "workout", "")
		return
	}

	c.JSON(http.StatusOK, summary)
}
