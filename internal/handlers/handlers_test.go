package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/repository"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires real services over CSV files in dir, with the clock
// fixed at 2025-03-14.
func newTestRouter(t *testing.T, dir string) *gin.Engine {
	t.Helper()

	clock := service.Clock{
		Now:      func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
	signalRepo := repository.NewSignalRepository(dir)
	planRepo := repository.NewPlanRepository(dir)
	todoRepo := repository.NewTodoRepository(dir)
	reflectionRepo := repository.NewReflectionRepository(dir)

	signals := NewSignalHandler(service.NewSignalService(signalRepo, clock))
	plan := NewPlanHandler(service.NewPlanService(planRepo, clock))
	todos := NewTodoHandler(service.NewTodoService(todoRepo, clock))
	workouts := NewWorkoutHandler(service.NewWorkoutService(repository.NewWorkoutRepository(dir), clock))
	reflections := NewReflectionHandler(service.NewReflectionService(reflectionRepo, clock))
	inbox := NewInboxHandler(service.NewInboxService(repository.NewInboxRepository(dir), todoRepo, reflectionRepo, clock))
	insights := NewInsightHandler(service.NewInsightService(signalRepo, planRepo, todoRepo, insight.DefaultSettings(), clock))

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/signals", signals.GetSignals)
	v1.POST("/signals", signals.LogSignal)
	v1.DELETE("/signals", signals.DeleteSignal)
	v1.GET("/plan", plan.GetPlan)
	v1.POST("/plan", plan.CreatePlanItem)
	v1.PATCH("/plan/:id", plan.UpdatePlanItem)
	v1.GET("/todos", todos.GetTodos)
	v1.POST("/todos", todos.CreateTodo)
	v1.PATCH("/todos/:id", todos.UpdateTodo)
	v1.DELETE("/todos/:id", todos.DeleteTodo)
	v1.POST("/workouts", workouts.CreateWorkout)
	v1.GET("/workouts/summary", workouts.GetSummary)
	v1.GET("/reflections", reflections.GetReflections)
	v1.GET("/reflect-insights", reflections.GetInsights)
	v1.POST("/inbox", inbox.Capture)
	v1.GET("/inbox", inbox.GetInbox)
	v1.POST("/inbox/:id/route", inbox.RouteItem)
	v1.GET("/insight", insights.GetInsight)
	v1.GET("/hub", insights.GetHub)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierror.ProblemDetails {
	t.Helper()
	assert.Equal(t, apierror.ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	var p apierror.ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestSignalHandler_LogAndList(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := do(t, r, http.MethodPost, "/api/v1/signals", map[string]string{"metric": "gym", "value": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"date":"2025-03-14","metric":"gym","value":"1","notes":""}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/signals?from=2025-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"date":"2025-03-14","metric":"gym","value":"1","notes":""}]`, w.Body.String())
}

func TestSignalHandler_Errors(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := do(t, r, http.MethodPost, "/api/v1/signals", map[string]string{"date": "2025-03-14", "metric": "weight", "value": "heavy"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, apierror.TypeValidation, p.Type)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "value", p.Errors[0].Field)
	assert.Nil(t, p.Errors[0].Index)

	w = do(t, r, http.MethodPost, "/api/v1/signals", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierror.TypeBadRequest, decodeProblem(t, w).Type)

	w = do(t, r, http.MethodGet, "/api/v1/signals?to=14-03-2025", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	p = decodeProblem(t, w)
	assert.Equal(t, apierror.TypeInvalidDate, p.Type)
	assert.Equal(t, "to", p.Errors[0].Field)

	w = do(t, r, http.MethodDelete, "/api/v1/signals?date=2025-03-14&metric=gym", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoHandler(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := do(t, r, http.MethodPost, "/api/v1/todos", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, apierror.TypeValidation, p.Type)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "text", p.Errors[0].Field)
	assert.Equal(t, "required", p.Errors[0].Code)

	w = do(t, r, http.MethodPost, "/api/v1/todos", map[string]any{"text": "renew passport", "domain": "admin"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID     string  `json:"id"`
		Domain *string `json:"domain"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Domain)

	w = do(t, r, http.MethodPatch, "/api/v1/todos/"+created.ID, map[string]any{"domain": nil, "done": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"domain"`)
	assert.Contains(t, w.Body.String(), `"done":true`)

	w = do(t, r, http.MethodPatch, "/api/v1/todos/not-a-uuid", map[string]any{"done": true})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierror.TypeInvalidID, decodeProblem(t, w).Type)

	w = do(t, r, http.MethodDelete, "/api/v1/todos/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierror.TypeNotFound, decodeProblem(t, w).Type)

	w = do(t, r, http.MethodGet, "/api/v1/todos?include_done=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/todos?include_done=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "renew passport")
}

func TestInboxHandler(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := do(t, r, http.MethodPost, "/api/v1/inbox", map[string]string{"text": "book flights"})
	require.Equal(t, http.StatusCreated, w.Code)
	var item struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "pending", item.Status)

	w = do(t, r, http.MethodPost, "/api/v1/inbox/"+item.ID+"/route", map[string]string{"target": "calendar"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, "target", p.Errors[0].Field)
	assert.Equal(t, "oneof", p.Errors[0].Code)

	w = do(t, r, http.MethodPost, "/api/v1/inbox/"+item.ID+"/route", map[string]string{"target": "todo"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"routed_to":"todo:`)

	w = do(t, r, http.MethodPost, "/api/v1/inbox/"+item.ID+"/route", map[string]string{"target": "todo"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierror.TypeConflict, decodeProblem(t, w).Type)

	w = do(t, r, http.MethodGet, "/api/v1/inbox?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsightHandler(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, dir)

	for _, body := range []map[string]string{
		{"date": "2025-03-13", "metric": "weed", "value": "1"},
		{"date": "2025-03-14", "metric": "weed", "value": "1"},
		{"date": "2025-03-14", "metric": "gym", "value": "1"},
	} {
		w := do(t, r, http.MethodPost, "/api/v1/signals", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/v1/insight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		AsOf    string `json:"as_of"`
		Insight struct {
			Streak      string `json:"streak"`
			Opportunity string `json:"opportunity"`
		} `json:"insight"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "2025-03-14", report.AsOf)
	assert.Equal(t, "Weed-free: 2 days (personal best!)", report.Insight.Streak)
	assert.NotEmpty(t, report.Insight.Opportunity)

	w = do(t, r, http.MethodGet, "/api/v1/hub", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `{"metric":"gym","label":"Gym","done":true}`)
	assert.Contains(t, w.Body.String(), `{"metric":"read","label":"Read","done":null}`)
	assert.NotContains(t, w.Body.String(), `"opportunity"`)

	w = do(t, r, http.MethodGet, "/api/v1/insight?date=2025-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsightHandler_InvalidLog(t *testing.T) {
	dir := t.TempDir()
	csv := "date,metric,value,notes\n2025-03-14,gym,1,\n03/14/2025,gym,1,\n2025-03-13,weight,lots,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, repository.SignalsFile), []byte(csv), 0o644))
	r := newTestRouter(t, dir)

	w := do(t, r, http.MethodGet, "/api/v1/insight", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, apierror.TypeInvalidLog, p.Type)
	assert.Equal(t, "fix_log", p.Action)
	require.Len(t, p.Errors, 2)
	assert.Equal(t, "date", p.Errors[0].Field)
	require.NotNil(t, p.Errors[0].Index)
	assert.Equal(t, 1, *p.Errors[0].Index)
	assert.Equal(t, "value", p.Errors[1].Field)
	assert.Equal(t, 2, *p.Errors[1].Index)

	w = do(t, r, http.MethodGet, "/api/v1/hub", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestWorkoutAndReflectionHandlers(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := do(t, r, http.MethodPost, "/api/v1/workouts", map[string]any{"date": "2025-03-14", "type": "push", "exercise": "Bench", "sets": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sets", decodeProblem(t, w).Errors[0].Field)

	w = do(t, r, http.MethodPost, "/api/v1/workouts", map[string]any{"date": "2025-03-14", "type": "push", "exercise": "Bench", "sets": 3, "reps": 5, "weight": 185})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/workouts/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions_week":1`)

	w = do(t, r, http.MethodGet, "/api/v1/reflections?limit=-2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/reflect-insights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}
