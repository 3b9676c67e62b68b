package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// Pattern priorities, higher sorts first
const (
	PriorityLapseRun       = 100
	PriorityNoBuildHabits  = 95
	PriorityCascade        = 90
	PriorityTriggers       = 85
	PriorityStreakBroken   = 80
	PriorityPersonalBest   = 70
	PriorityHardestWeekday = 55
	PriorityCorrelation    = 50
	PriorityBestGymWeekday = 30
)

const (
	lapseRunThreshold  = 3
	noBuildWindowDays  = 3
	triggerWindowDays  = 14
	triggerThreshold   = 2
	cascadeMinRun      = 2
	cascadeLookahead   = 3
	cascadeMinRuns     = 2
	cascadeRateMin     = 0.5
	correlationMinOn   = 3
	correlationRateMin = 0.60
	correlationUplift  = 0.20
	weekdayMinObserved = 2
	hardestDayMaxRate  = 0.30
	bestGymDayMinRate  = 0.70

	// absorbs float error in rate comparisons like 0.6-0.4 >= 0.2
	rateEpsilon = 1e-9
)

// SortPatterns orders patterns by priority, highest first. Equal priorities
// keep their detection order.
func SortPatterns(patterns []models.Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Priority > patterns[j].Priority
	})
}

func percent(rate float64) int {
	return int(math.Round(rate * 100))
}

// detectStreakPatterns flags personal bests and broken streaks for the
// avoid metrics.
func detectStreakPatterns(streaks map[string]models.StreakInfo, s Settings) []models.Pattern {
	var patterns []models.Pattern
	for _, m := range s.AvoidMetrics {
		st, ok := streaks[m]
		if !ok {
			continue
		}
		switch {
		case st.Current > 0 && st.Current >= st.Best:
			patterns = append(patterns, models.Pattern{
				Type:     models.PatternTypePositive,
				Message:  fmt.Sprintf("%s: %d days, a personal best. Protect it.", s.Label(m), st.Current),
				Priority: PriorityPersonalBest,
			})
		case st.Current == 0 && st.Best > 0:
			patterns = append(patterns, models.Pattern{
				Type:     models.PatternTypeWarning,
				Message:  fmt.Sprintf("%s streak broken (best was %d days). Day one starts today.", s.Label(m), st.Best),
				Priority: PriorityStreakBroken,
			})
		}
	}
	return patterns
}

// detectRecentDanger looks at the most recent logged days: a run of lapses
// on the danger metrics, or three observed days without any build habit.
func detectRecentDanger(dm DayMap, s Settings, asOf time.Time) []models.Pattern {
	var patterns []models.Pattern
	dates := dm.Dates()

	run := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if !dm.anyLapse(dates[i], s.DangerMetrics) {
			break
		}
		run++
	}
	if run >= lapseRunThreshold {
		labels := make([]string, len(s.DangerMetrics))
		for i, m := range s.DangerMetrics {
			labels[i] = s.Label(m)
		}
		patterns = append(patterns, models.Pattern{
			Type:     models.PatternTypeWarning,
			Message:  fmt.Sprintf("%d days in a row with a lapse (%s). Break the chain today.", run, strings.Join(labels, " / ")),
			Priority: PriorityLapseRun,
		})
	}

	day := Civil(asOf)
	from := shiftDate(day, -(noBuildWindowDays - 1))
	observed := 0
	anyBuild := false
	for _, date := range dates {
		if date < from {
			continue
		}
		observed++
		for _, h := range s.BuildHabits {
			if dm.IsTrue(date, h) {
				anyBuild = true
			}
		}
	}
	if observed >= noBuildWindowDays && !anyBuild {
		patterns = append(patterns, models.Pattern{
			Type:     models.PatternTypeWarning,
			Message:  fmt.Sprintf("Zero positive habits in the last %d days. Pick one build habit and do it now.", noBuildWindowDays),
			Priority: PriorityNoBuildHabits,
		})
	}

	return patterns
}
