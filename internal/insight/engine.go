// Package insight turns the daily signal log into streaks, a weight trend,
// a habit summary, detected patterns and a short synthesis.
//
// The engine is pure: callers pass the log, today's plan and the as-of
// date, and get back a fresh report. Nothing is cached or persisted, and
// the wall clock is never read.
package insight

import (
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// Engine computes insight reports for a fixed settings and feature set
type Engine struct {
	settings Settings
	features Features
}

// New creates an engine
func New(settings Settings, features Features) *Engine {
	return &Engine{settings: settings, features: features}
}

// Settings returns the engine's settings
func (e *Engine) Settings() Settings {
	return e.settings
}

// Compute validates the log and builds a report as of the given day.
// Rows dated after asOf are ignored.
func (e *Engine) Compute(entries []models.MetricEntry, plan []models.PlanItem, asOf time.Time) (*models.InsightReport, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}

	day := Civil(asOf)
	today := FormatDate(day)

	visible := make([]models.MetricEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Date <= today {
			visible = append(visible, entry)
		}
	}

	dm := BuildDayMap(visible)
	streaks := CalculateStreaks(visible, e.settings.StreakMetrics())
	habits := SummarizeHabits(dm, e.settings.BuildHabits, day)
	patterns := e.DetectPatterns(visible, dm, streaks, day)

	return &models.InsightReport{
		AsOf:       today,
		ResetDay:   ResetDay(e.settings.ResetStart, day),
		Streaks:    streaks,
		Weight:     CalculateWeight(visible, e.settings, day),
		Habits:     habits,
		Patterns:   patterns,
		Insight:    Synthesize(e.settings, e.features, streaks, patterns, habits),
		TodaysPlan: SummarizePlan(plan),
	}, nil
}

// DetectPatterns runs every enabled detector and returns the patterns
// sorted by priority.
func (e *Engine) DetectPatterns(
	entries []models.MetricEntry,
	dm DayMap,
	streaks map[string]models.StreakInfo,
	asOf time.Time,
) []models.Pattern {
	patterns := make([]models.Pattern, 0)
	patterns = append(patterns, detectStreakPatterns(streaks, e.settings)...)
	patterns = append(patterns, detectRecentDanger(dm, e.settings, asOf)...)

	if e.features.Correlations {
		patterns = append(patterns, detectCorrelations(dm, e.settings)...)
	}
	if e.features.DayOfWeek {
		patterns = append(patterns, detectDayOfWeek(dm, e.settings)...)
	}
	if e.features.Cascades {
		patterns = append(patterns, detectCascades(dm, e.settings, asOf)...)
		patterns = append(patterns, detectTriggers(entries, e.settings, asOf)...)
	}

	SortPatterns(patterns)
	return patterns
}

// ResetDay is the 1-indexed day count since start. A zero start yields 0.
func ResetDay(start, asOf time.Time) int {
	if start.IsZero() {
		return 0
	}
	return DaysBetween(start, asOf) + 1
}

// SummarizePlan counts items and completed items
func SummarizePlan(plan []models.PlanItem) models.PlanSummary {
	summary := models.PlanSummary{ItemCount: len(plan)}
	for _, p := range plan {
		if p.IsDone() {
			summary.DoneCount++
		}
	}
	return summary
}
