package service

import (
	"context"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/models"
)

// SignalService defines the interface for the daily signal log
type SignalService interface {
	List(ctx context.Context, from, to string) ([]models.MetricEntry, error)
	Log(ctx context.Context, req *models.LogSignalRequest) (*models.MetricEntry, error)
	Delete(ctx context.Context, date, metric string) error
}

// PlanService defines the interface for the day planner
type PlanService interface {
	ListDay(ctx context.Context, date string) ([]models.PlanItem, error)
	Create(ctx context.Context, req *models.CreatePlanItemRequest) (*models.PlanItem, error)
	Update(ctx context.Context, id string, req *models.UpdatePlanItemRequest) (*models.PlanItem, error)
	Delete(ctx context.Context, id string) error
}

// TodoService defines the interface for todos
type TodoService interface {
	List(ctx context.Context, includeDone bool) ([]models.Todo, error)
	Create(ctx context.Context, req *models.CreateTodoRequest) (*models.Todo, error)
	Update(ctx context.Context, id string, req *models.UpdateTodoRequest) (*models.Todo, error)
	Delete(ctx context.Context, id string) error
}

// WorkoutService defines the interface for the workout log
type WorkoutService interface {
	List(ctx context.Context, from, to string) ([]models.Workout, error)
	Create(ctx context.Context, req *models.CreateWorkoutRequest) (*models.Workout, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, date string) (*models.WorkoutSummary, error)
}

// ReflectionService defines the interface for end-of-day reflections
type ReflectionService interface {
	List(ctx context.Context, limit int) ([]models.Reflection, error)
	Create(ctx context.Context, req *models.CreateReflectionRequest) (*models.Reflection, error)
	Insights(ctx context.Context, date string) (*models.ReflectionInsights, error)
}

// InboxService defines the interface for quick captures
type InboxService interface {
	List(ctx context.Context, status string) ([]models.InboxItem, error)
	Capture(ctx context.Context, req *models.CaptureRequest) (*models.InboxItem, error)
	Route(ctx context.Context, id string, req *models.RouteInboxRequest) (*models.InboxItem, error)
}

// InsightService runs the insight engine over the stored log
type InsightService interface {
	Report(ctx context.Context, date string, features insight.Features) (*models.InsightReport, error)
	Hub(ctx context.Context, date string) (*models.HubResponse, error)
	// UpdateSettings swaps the engine settings for subsequent requests
	UpdateSettings(settings insight.Settings)
	Settings() insight.Settings
}
