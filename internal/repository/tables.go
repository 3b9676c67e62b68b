package repository

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// File names inside the data directory
const (
	SignalsFile     = "signals.csv"
	PlanFile        = "plan.csv"
	TodosFile       = "todos.csv"
	WorkoutsFile    = "workouts.csv"
	ReflectionsFile = "reflections.csv"
	InboxFile       = "inbox.csv"
)

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func timeField(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(col, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", col, s, err)
	}
	return &t, nil
}

func parseInt(col, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", col, s, err)
	}
	return n, nil
}

func parseFloat(col, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", col, s, err)
	}
	return f, nil
}

// Signal values are kept verbatim; the insight engine validates them.
func signalTable(dir string) *csvTable[models.MetricEntry] {
	return &csvTable[models.MetricEntry]{
		path:   filepath.Join(dir, SignalsFile),
		header: []string{"date", "metric", "value", "notes"},
		decode: func(r row) (models.MetricEntry, error) {
			return models.MetricEntry{
				Date:   r.get("date"),
				Metric: r.get("metric"),
				Value:  r.get("value"),
				Notes:  r.get("notes"),
			}, nil
		},
		encode: func(e models.MetricEntry) []string {
			return []string{e.Date, e.Metric, e.Value, e.Notes}
		},
	}
}

func planTable(dir string) *csvTable[models.PlanItem] {
	return &csvTable[models.PlanItem]{
		path:   filepath.Join(dir, PlanFile),
		header: []string{"id", "date", "start", "end", "item", "done", "notes"},
		decode: func(r row) (models.PlanItem, error) {
			return models.PlanItem{
				ID:    r.get("id"),
				Date:  r.get("date"),
				Start: r.get("start"),
				End:   r.get("end"),
				Item:  r.get("item"),
				Done:  r.get("done"),
				Notes: r.get("notes"),
			}, nil
		},
		encode: func(p models.PlanItem) []string {
			return []string{p.ID, p.Date, p.Start, p.End, p.Item, p.Done, p.Notes}
		},
	}
}

func todoTable(dir string) *csvTable[models.Todo] {
	return &csvTable[models.Todo]{
		path:   filepath.Join(dir, TodosFile),
		header: []string{"id", "text", "domain", "done", "created", "completed"},
		decode: func(r row) (models.Todo, error) {
			created, err := parseTime("created", r.get("created"))
			if err != nil {
				return models.Todo{}, err
			}
			completed, err := parseTime("completed", r.get("completed"))
			if err != nil {
				return models.Todo{}, err
			}
			todo := models.Todo{
				ID:        r.get("id"),
				Text:      r.get("text"),
				Done:      r.get("done") == "1",
				Completed: completed,
			}
			if created != nil {
				todo.Created = *created
			}
			if d := r.get("domain"); d != "" {
				todo.Domain = &d
			}
			return todo, nil
		},
		encode: func(t models.Todo) []string {
			domain := ""
			if t.Domain != nil {
				domain = *t.Domain
			}
			return []string{t.ID, t.Text, domain, boolField(t.Done), timeField(&t.Created), timeField(t.Completed)}
		},
	}
}

func workoutTable(dir string) *csvTable[models.Workout] {
	return &csvTable[models.Workout]{
		path:   filepath.Join(dir, WorkoutsFile),
		header: []string{"id", "date", "type", "exercise", "sets", "reps", "weight", "notes"},
		decode: func(r row) (models.Workout, error) {
			sets, err := parseInt("sets", r.get("sets"))
			if err != nil {
				return models.Workout{}, err
			}
			reps, err := parseInt("reps", r.get("reps"))
			if err != nil {
				return models.Workout{}, err
			}
			weight, err := parseFloat("weight", r.get("weight"))
			if err != nil {
				return models.Workout{}, err
			}
			return models.Workout{
				ID:       r.get("id"),
				Date:     r.get("date"),
				Type:     r.get("type"),
				Exercise: r.get("exercise"),
				Sets:     sets,
				Reps:     reps,
				Weight:   weight,
				Notes:    r.get("notes"),
			}, nil
		},
		encode: func(w models.Workout) []string {
			return []string{
				w.ID, w.Date, w.Type, w.Exercise,
				strconv.Itoa(w.Sets), strconv.Itoa(w.Reps),
				strconv.FormatFloat(w.Weight, 'f', -1, 64),
				w.Notes,
			}
		},
	}
}

func reflectionTable(dir string) *csvTable[models.Reflection] {
	return &csvTable[models.Reflection]{
		path:   filepath.Join(dir, ReflectionsFile),
		header: []string{"id", "date", "domain", "win", "lesson", "change"},
		decode: func(r row) (models.Reflection, error) {
			return models.Reflection{
				ID:     r.get("id"),
				Date:   r.get("date"),
				Domain: r.get("domain"),
				Win:    r.get("win"),
				Lesson: r.get("lesson"),
				Change: r.get("change"),
			}, nil
		},
		encode: func(rf models.Reflection) []string {
			return []string{rf.ID, rf.Date, rf.Domain, rf.Win, rf.Lesson, rf.Change}
		},
	}
}

func inboxTable(dir string) *csvTable[models.InboxItem] {
	return &csvTable[models.InboxItem]{
		path:   filepath.Join(dir, InboxFile),
		header: []string{"id", "captured", "text", "source", "status", "routed_to"},
		decode: func(r row) (models.InboxItem, error) {
			captured, err := parseTime("captured", r.get("captured"))
			if err != nil {
				return models.InboxItem{}, err
			}
			item := models.InboxItem{
				ID:       r.get("id"),
				Text:     r.get("text"),
				Source:   r.get("source"),
				Status:   models.InboxStatus(r.get("status")),
				RoutedTo: r.get("routed_to"),
			}
			if captured != nil {
				item.Captured = *captured
			}
			if item.Status == "" {
				item.Status = models.InboxStatusPending
			}
			return item, nil
		},
		encode: func(i models.InboxItem) []string {
			return []string{i.ID, timeField(&i.Captured), i.Text, i.Source, string(i.Status), i.RoutedTo}
		},
	}
}
