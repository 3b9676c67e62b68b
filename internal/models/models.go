package models

import "time"

// MetricEntry is one row of the daily signal log
type MetricEntry struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Metric string `json:"metric" validate:"required"`
	Value  string `json:"value" validate:"omitempty,numeric"`
	Notes  string `json:"notes"`
}

// IsTrue reports whether a boolean signal was recorded as done/clean
func (e MetricEntry) IsTrue() bool {
	return e.Value == "1"
}

// PlanItem represents a scheduled block on a given day
type PlanItem struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Item  string `json:"item"`
	Done  string `json:"done"`
	Notes string `json:"notes"`
}

// IsDone reports whether the plan item has been completed
func (p PlanItem) IsDone() bool {
	return p.Done == "1"
}

// Todo represents a single todo entry
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Domain    *string    `json:"domain,omitempty"`
	Done      bool       `json:"done"`
	Created   time.Time  `json:"created"`
	Completed *time.Time `json:"completed,omitempty"`
}

// Workout represents one logged exercise within a session
type Workout struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Notes    string  `json:"notes"`
}

// Reflection represents an end-of-day reflection
type Reflection struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Domain string `json:"domain"`
	Win    string `json:"win"`
	Lesson string `json:"lesson"`
	Change string `json:"change"`
}

// InboxStatus is the lifecycle state of an inbox capture
type InboxStatus string

const (
	InboxStatusPending   InboxStatus = "pending"
	InboxStatusRouted    InboxStatus = "routed"
	InboxStatusDismissed InboxStatus = "dismissed"
)

// InboxItem is a quick capture awaiting triage
type InboxItem struct {
	ID       string      `json:"id"`
	Captured time.Time   `json:"captured"`
	Text     string      `json:"text"`
	Source   string      `json:"source"`
	Status   InboxStatus `json:"status"`
	RoutedTo string      `json:"routed_to,omitempty"`
}

// LogSignalRequest represents the request to record a signal value
type LogSignalRequest struct {
	Date   string `json:"date"`
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Notes  string `json:"notes"`
}

// CreatePlanItemRequest represents the request to add a plan item
type CreatePlanItemRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start"`
	End   string `json:"end"`
	Item  string `json:"item" binding:"required"`
	Notes string `json:"notes"`
}

// UpdatePlanItemRequest represents a partial update of a plan item
type UpdatePlanItemRequest struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
	Item  *string `json:"item"`
	Done  *bool   `json:"done"`
	Notes *string `json:"notes"`
}

// CreateTodoRequest represents the request to create a todo
type CreateTodoRequest struct {
	Text   string  `json:"text" binding:"required"`
	Domain *string `json:"domain"`
}

// UpdateTodoRequest represents a partial update of a todo.
// Domain distinguishes "absent" from "explicitly cleared".
type UpdateTodoRequest struct {
	Text   *string        `json:"text"`
	Domain NullableString `json:"domain"`
	Done   *bool          `json:"done"`
}

// CreateWorkoutRequest represents the request to log a workout row
type CreateWorkoutRequest struct {
	Date     string  `json:"date" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets" binding:"min=0"`
	Reps     int     `json:"reps" binding:"min=0"`
	Weight   float64 `json:"weight" binding:"min=0"`
	Notes    string  `json:"notes"`
}

// CreateReflectionRequest represents the request to record a reflection
type CreateReflectionRequest struct {
	Date   string `json:"date" binding:"required"`
	Domain string `json:"domain"`
	Win    string `json:"win"`
	Lesson string `json:"lesson"`
	Change string `json:"change"`
}

// CaptureRequest represents an inbox capture
type CaptureRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

// RouteInboxRequest represents the request to route a capture
type RouteInboxRequest struct {
	Target string `json:"target" binding:"required,oneof=todo reflection"`
}
