package insight

import (
	"fmt"
	"math"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

const (
	noStreakMessage    = "No active streaks yet. Today is day one."
	opportunityDefault = "Keep logging every day. Correlations show up after a few weeks of data."
)

// Synthesize condenses streaks, sorted patterns and the habit summary into
// four lines. It is deterministic: ties resolve by Settings order.
func Synthesize(
	s Settings,
	f Features,
	streaks map[string]models.StreakInfo,
	patterns []models.Pattern,
	habits models.HabitSummary,
) models.StructuredInsight {
	out := models.StructuredInsight{
		Streak:   streakHeadline(s, streaks),
		Momentum: momentum(s, habits),
	}

	if f.Opportunity {
		out.Opportunity = opportunity(patterns)
	}

	for _, p := range patterns {
		if p.Type == models.PatternTypeWarning {
			msg := p.Message
			out.Warning = &msg
			break
		}
	}

	return out
}

func streakHeadline(s Settings, streaks map[string]models.StreakInfo) string {
	bestMetric := ""
	var top models.StreakInfo
	for _, m := range s.StreakMetrics() {
		st := streaks[m]
		if st.Current > top.Current {
			bestMetric, top = m, st
		}
	}
	if bestMetric == "" {
		return noStreakMessage
	}

	suffix := fmt.Sprintf("(best: %d)", top.Best)
	if top.Current >= top.Best {
		suffix = "(personal best!)"
	}
	return fmt.Sprintf("%s: %d days %s", s.Label(bestMetric), top.Current, suffix)
}

func opportunity(patterns []models.Pattern) string {
	for _, p := range patterns {
		if p.Type == models.PatternTypeCorrelation {
			return p.Message
		}
	}
	for _, p := range patterns {
		if p.Type == models.PatternTypePositive {
			return p.Message
		}
	}
	return opportunityDefault
}

// momentum compares yesterday's completed build habits with the weekly
// daily average, rounded half up.
func momentum(s Settings, habits models.HabitSummary) string {
	total := 0
	yesterday := 0
	for _, h := range s.BuildHabits {
		total += habits.Last7Days[h]
		if habits.Yesterday[h] {
			yesterday++
		}
	}
	avg := int(math.Floor(float64(total)/7 + 0.5))

	switch {
	case total == 0 && yesterday == 0:
		return "Fresh start: no build habits logged this week yet. One rep today counts."
	case yesterday > avg:
		return fmt.Sprintf("Trending up: %d build habits yesterday vs your %d/day average.", yesterday, avg)
	case yesterday < avg:
		return fmt.Sprintf("Slipping: %d build habits yesterday vs your %d/day average. Win one back today.", yesterday, avg)
	default:
		return fmt.Sprintf("Steady: %d build habits yesterday, right at your %d/day average.", yesterday, avg)
	}
}
