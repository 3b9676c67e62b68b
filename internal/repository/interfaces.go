package repository

import (
	"context"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// SignalRepository defines data access for the daily signal log.
// Rows are keyed by (date, metric).
type SignalRepository interface {
	List(ctx context.Context) ([]models.MetricEntry, error)
	// Upsert replaces every row with the same date and metric
	Upsert(ctx context.Context, entry models.MetricEntry) error
	Delete(ctx context.Context, date, metric string) error
}

// RecordRepository is the shape shared by the id-keyed tables
type RecordRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, rec *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// PlanRepository defines data access for plan items
type PlanRepository interface {
	RecordRepository[models.PlanItem]
}

// TodoRepository defines data access for todos
type TodoRepository interface {
	RecordRepository[models.Todo]
}

// WorkoutRepository defines data access for workout rows
type WorkoutRepository interface {
	RecordRepository[models.Workout]
}

// ReflectionRepository defines data access for reflections
type ReflectionRepository interface {
	RecordRepository[models.Reflection]
}

// InboxRepository defines data access for inbox captures
type InboxRepository interface {
	RecordRepository[models.InboxItem]
}
