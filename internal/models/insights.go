package models

// PatternType represents the kind of detected pattern
type PatternType string

const (
	PatternTypeWarning     PatternType = "warning"
	PatternTypePositive    PatternType = "positive"
	PatternTypeCorrelation PatternType = "correlation"
	PatternTypeStreak      PatternType = "streak"
	PatternTypeDayOfWeek   PatternType = "dayofweek"
)

// WeightTrend represents the direction of the weekly weight change
type WeightTrend string

const (
	WeightTrendUp      WeightTrend = "up"
	WeightTrendDown    WeightTrend = "down"
	WeightTrendStable  WeightTrend = "stable"
	WeightTrendUnknown WeightTrend = "unknown"
)

// StreakInfo holds the trailing and longest run of "1" values for a metric
type StreakInfo struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// WeightInsight summarizes recent weight movement against the monthly checkpoint
type WeightInsight struct {
	Current     *float64    `json:"current"`
	WeekAgo     *float64    `json:"week_ago"`
	TwoWeeksAgo *float64    `json:"two_weeks_ago"`
	Trend       WeightTrend `json:"trend"`
	OnTrack     bool        `json:"on_track"`
	MonthTarget *float64    `json:"month_target"`
	MonthLabel  string      `json:"month_label"`
}

// HabitSummary holds the trailing week of build-habit completions
type HabitSummary struct {
	Last7Days map[string]int  `json:"last_7_days"`
	Yesterday map[string]bool `json:"yesterday"`
}

// Pattern is a single detected warning, positive note or correlation
type Pattern struct {
	Type     PatternType `json:"type"`
	Message  string      `json:"message"`
	Priority int         `json:"priority"` // 0-100, higher first
}

// StructuredInsight is the compact human-readable synthesis of a report
type StructuredInsight struct {
	Streak      string  `json:"streak"`
	Opportunity string  `json:"opportunity,omitempty"`
	Warning     *string `json:"warning"`
	Momentum    string  `json:"momentum"`
}

// PlanSummary counts today's plan items
type PlanSummary struct {
	ItemCount int `json:"item_count"`
	DoneCount int `json:"done_count"`
}

// InsightReport is the full output of one insight computation
type InsightReport struct {
	AsOf       string                `json:"as_of"`
	ResetDay   int                   `json:"reset_day"`
	Streaks    map[string]StreakInfo `json:"streaks"`
	Weight     WeightInsight         `json:"weight"`
	Habits     HabitSummary          `json:"habits"`
	Patterns   []Pattern             `json:"patterns"`
	Insight    StructuredInsight     `json:"insight"`
	TodaysPlan PlanSummary           `json:"todays_plan"`
}

// HubSignal is one row of the home checklist. Done is null when nothing
// has been logged for the metric today.
type HubSignal struct {
	Metric string       `json:"metric"`
	Label  string       `json:"label"`
	Done   NullableBool `json:"done"`
}

// HubResponse is the home view payload
type HubResponse struct {
	Date       string                `json:"date"`
	ResetDay   int                   `json:"reset_day"`
	Checklist  []HubSignal           `json:"checklist"`
	Streaks    map[string]StreakInfo `json:"streaks"`
	Weight     WeightInsight         `json:"weight"`
	Patterns   []Pattern             `json:"patterns"`
	Insight    StructuredInsight     `json:"insight"`
	TodaysPlan PlanSummary           `json:"todays_plan"`
	OpenTodos  int                   `json:"open_todos"`
}

// DomainCount is a per-domain tally
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// ReflectionInsights summarizes the reflection journal
type ReflectionInsights struct {
	AsOf          string        `json:"as_of"`
	Total         int           `json:"total"`
	Last7Days     int           `json:"last_7_days"`
	Streak        int           `json:"streak"`
	ByDomain      []DomainCount `json:"by_domain"`
	RecentChanges []string      `json:"recent_changes"`
}

// ExerciseBest tracks the most recent working weight for an exercise
type ExerciseBest struct {
	Exercise   string  `json:"exercise"`
	LastDate   string  `json:"last_date"`
	LastWeight float64 `json:"last_weight"`
	Sessions   int     `json:"sessions"`
}

// WorkoutSummary is the trailing-week workout overview
type WorkoutSummary struct {
	AsOf          string         `json:"as_of"`
	SessionsWeek  int            `json:"sessions_week"`
	TypeCounts    map[string]int `json:"type_counts"`
	ExerciseBests []ExerciseBest `json:"exercise_bests"`
}
