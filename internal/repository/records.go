package repository

import "github.com/JonnyWalker81/lifedash/internal/models"

// NewPlanRepository creates a plan repository over dir/plan.csv
func NewPlanRepository(dir string) PlanRepository {
	return &recordRepository[models.PlanItem]{
		table: planTable(dir),
		idOf:  func(p *models.PlanItem) string { return p.ID },
	}
}

// NewTodoRepository creates a todo repository over dir/todos.csv
func NewTodoRepository(dir string) TodoRepository {
	return &recordRepository[models.Todo]{
		table: todoTable(dir),
		idOf:  func(t *models.Todo) string { return t.ID },
	}
}

// NewWorkoutRepository creates a workout repository over dir/workouts.csv
func NewWorkoutRepository(dir string) WorkoutRepository {
	return &recordRepository[models.Workout]{
		table: workoutTable(dir),
		idOf:  func(w *models.Workout) string { return w.ID },
	}
}

// NewReflectionRepository creates a reflection repository over dir/reflections.csv
func NewReflectionRepository(dir string) ReflectionRepository {
	return &recordRepository[models.Reflection]{
		table: reflectionTable(dir),
		idOf:  func(r *models.Reflection) string { return r.ID },
	}
}

// NewInboxRepository creates an inbox repository over dir/inbox.csv
func NewInboxRepository(dir string) InboxRepository {
	return &recordRepository[models.InboxItem]{
		table: inboxTable(dir),
		idOf:  func(i *models.InboxItem) string { return i.ID },
	}
}
