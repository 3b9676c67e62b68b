package insight

import (
	"strings"
	"time"
)

// CorrelationPair asks "when A is done, how often is B done too?"
type CorrelationPair struct {
	A string `mapstructure:"a" yaml:"a"`
	B string `mapstructure:"b" yaml:"b"`
}

// Settings is the static configuration the engine reads. It is supplied by
// the caller's environment and never mutated by the engine.
type Settings struct {
	// ResetStart is day 1 of the dopamine reset
	ResetStart time.Time
	// WeightCheckpoints maps a month short name ("Jan") to a target weight.
	// Lookups are case-insensitive.
	WeightCheckpoints map[string]float64

	BuildHabits   []string
	AvoidMetrics  []string
	DangerMetrics []string

	WeightMetric  string
	GymMetric     string
	TriggerMetric string

	CorrelationPairs []CorrelationPair
	Labels           map[string]string
}

// DefaultSettings returns the metric lists the dashboard ships with
func DefaultSettings() Settings {
	return Settings{
		WeightCheckpoints: map[string]float64{},
		BuildHabits:       []string{"gym", "ate_clean", "meditate", "read", "journal"},
		AvoidMetrics:      []string{"weed", "lol", "doomscroll"},
		DangerMetrics:     []string{"weed", "lol"},
		WeightMetric:      "weight",
		GymMetric:         "gym",
		TriggerMetric:     "trigger",
		CorrelationPairs: []CorrelationPair{
			{A: "gym", B: "ate_clean"},
			{A: "meditate", B: "weed"},
			{A: "read", B: "lol"},
			{A: "gym", B: "meditate"},
		},
		Labels: map[string]string{
			"gym":        "Gym",
			"ate_clean":  "Ate clean",
			"meditate":   "Meditate",
			"read":       "Read",
			"journal":    "Journal",
			"weed":       "Weed-free",
			"lol":        "No LoL",
			"doomscroll": "No doomscrolling",
		},
	}
}

// Label returns the display name for a metric, falling back to its key
func (s Settings) Label(metric string) string {
	if label, ok := s.Labels[metric]; ok && label != "" {
		return label
	}
	return metric
}

// StreakMetrics is the fixed priority order used for streak tie-breaks:
// avoid metrics first, then build habits, without duplicates.
func (s Settings) StreakMetrics() []string {
	seen := make(map[string]bool, len(s.AvoidMetrics)+len(s.BuildHabits))
	metrics := make([]string, 0, len(s.AvoidMetrics)+len(s.BuildHabits))
	for _, list := range [][]string{s.AvoidMetrics, s.BuildHabits} {
		for _, m := range list {
			if !seen[m] {
				seen[m] = true
				metrics = append(metrics, m)
			}
		}
	}
	return metrics
}

// Checkpoint returns the weight target for a month short name
func (s Settings) Checkpoint(month string) (float64, bool) {
	for key, target := range s.WeightCheckpoints {
		if strings.EqualFold(key, month) {
			return target, true
		}
	}
	return 0, false
}

// Features selects which detectors run. The hub view runs the minimal set,
// the standalone insight endpoint runs everything.
type Features struct {
	Correlations bool
	DayOfWeek    bool
	Cascades     bool
	Opportunity  bool
}

// FullFeatures enables every detector and the opportunity line
func FullFeatures() Features {
	return Features{Correlations: true, DayOfWeek: true, Cascades: true, Opportunity: true}
}

// HubFeatures is the minimal detector set used by the home view
func HubFeatures() Features {
	return Features{}
}
