package handlers

import (
	"net/http"
	"strconv"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// GetTodos handles GET /api/v1/todos?include_done=true
func (h *TodoHandler) GetTodos(c *gin.Context) {
	includeDone := false
	if raw := c.Query("include_done"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "include_done", Message: "must be a boolean value", Code: "invalid_type"},
			}))
			return
		}
		includeDone = v
	}

	todos, err := h.todoService.List(c.Request.Context(), includeDone)
	if err != nil {
		writeError(c, err, "todo", "")
		return
	}

	c.JSON(http.StatusOK, todos)
}

// CreateTodo handles POST /api/v1/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "todo", "")
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo handles PATCH /api/v1/todos/:id
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err, "todo", id)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /api/v1/todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id := c.Param("id")

	if err := h.todoService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "todo", id)
		return
	}

	c.Status(http.StatusNoContent)
}
