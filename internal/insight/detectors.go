package insight

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// detectCorrelations compares P(B | A done) against P(B | A missed) over
// days where both metrics were recorded.
func detectCorrelations(dm DayMap, s Settings) []models.Pattern {
	var patterns []models.Pattern
	dates := dm.Dates()

	for _, pair := range s.CorrelationPairs {
		var aOn, bWithOn, aOff, bWithOff int
		for _, date := range dates {
			a, okA := dm.Value(date, pair.A)
			b, okB := dm.Value(date, pair.B)
			if !okA || !okB {
				continue
			}
			switch a {
			case "1":
				aOn++
				if b == "1" {
					bWithOn++
				}
			case "0":
				aOff++
				if b == "1" {
					bWithOff++
				}
			}
		}

		if aOn < correlationMinOn {
			continue
		}
		rateOn := float64(bWithOn) / float64(aOn)
		rateOff := 0.0
		if aOff > 0 {
			rateOff = float64(bWithOff) / float64(aOff)
		}
		if rateOn < correlationRateMin-rateEpsilon || rateOn-rateOff < correlationUplift-rateEpsilon {
			continue
		}

		patterns = append(patterns, models.Pattern{
			Type: models.PatternTypeCorrelation,
			Message: fmt.Sprintf("When you hit %s, %s follows %d%% of the time (vs %d%% when you don't).",
				s.Label(pair.A), s.Label(pair.B), percent(rateOn), percent(rateOff)),
			Priority: PriorityCorrelation,
		})
	}

	return patterns
}

type weekdayTally struct {
	observed int
	hits     int
}

func (t weekdayTally) rate() float64 {
	return float64(t.hits) / float64(t.observed)
}

// Monday-first order for deterministic tie-breaks
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// detectDayOfWeek finds the weekday with the worst clean rate across the
// avoid metrics and the weekday with the best gym rate.
func detectDayOfWeek(dm DayMap, s Settings) []models.Pattern {
	var clean, gym [7]weekdayTally

	for date, metrics := range dm {
		t, err := ParseDate(date)
		if err != nil {
			continue
		}
		wd := t.Weekday()

		recorded, lapsed := false, false
		for _, m := range s.AvoidMetrics {
			if v, ok := metrics[m]; ok {
				recorded = true
				if v == "0" {
					lapsed = true
				}
			}
		}
		if recorded {
			clean[wd].observed++
			if !lapsed {
				clean[wd].hits++
			}
		}

		if v, ok := metrics[s.GymMetric]; ok {
			gym[wd].observed++
			if v == "1" {
				gym[wd].hits++
			}
		}
	}

	var patterns []models.Pattern

	worstDay, worstRate, foundWorst := time.Sunday, 0.0, false
	for _, wd := range weekdayOrder {
		tally := clean[wd]
		if tally.observed < weekdayMinObserved {
			continue
		}
		if r := tally.rate(); !foundWorst || r < worstRate {
			worstDay, worstRate, foundWorst = wd, r, true
		}
	}
	if foundWorst && worstRate <= hardestDayMaxRate+rateEpsilon {
		patterns = append(patterns, models.Pattern{
			Type:     models.PatternTypeWarning,
			Message:  fmt.Sprintf("%ss are your hardest day: clean only %d%% of the time.", worstDay, percent(worstRate)),
			Priority: PriorityHardestWeekday,
		})
	}

	bestDay, bestRate, foundBest := time.Sunday, 0.0, false
	for _, wd := range weekdayOrder {
		tally := gym[wd]
		if tally.observed < weekdayMinObserved {
			continue
		}
		if r := tally.rate(); !foundBest || r > bestRate {
			bestDay, bestRate, foundBest = wd, r, true
		}
	}
	if foundBest && bestRate >= bestGymDayMinRate-rateEpsilon {
		patterns = append(patterns, models.Pattern{
			Type:     models.PatternTypePositive,
			Message:  fmt.Sprintf("%ss are your strongest %s day (%d%% hit rate).", bestDay, s.Label(s.GymMetric), percent(bestRate)),
			Priority: PriorityBestGymWeekday,
		})
	}

	return patterns
}

// detectCascades measures how often a run of missed build-habit days is
// followed by a lapse on any avoid metric. Each run is judged on its own.
func detectCascades(dm DayMap, s Settings, asOf time.Time) []models.Pattern {
	dates := dm.Dates()
	if len(dates) == 0 {
		return nil
	}
	first, err := ParseDate(dates[0])
	if err != nil {
		return nil
	}
	day := Civil(asOf)

	var patterns []models.Pattern
	for _, habit := range s.BuildHabits {
		runs, relapses := 0, 0
		runLen := 0
		var runEnd time.Time

		closeRun := func() {
			if runLen >= cascadeMinRun && runEnd.Before(day) {
				runs++
				if relapsedAfter(dm, s.AvoidMetrics, runEnd) {
					relapses++
				}
			}
			runLen = 0
		}

		for d := first; !d.After(day); d = d.AddDate(0, 0, 1) {
			date := FormatDate(d)
			if _, logged := dm[date]; logged && !dm.IsTrue(date, habit) {
				runLen++
				runEnd = d
				continue
			}
			closeRun()
		}
		closeRun()

		if runs < cascadeMinRuns {
			continue
		}
		rate := float64(relapses) / float64(runs)
		if rate < cascadeRateMin-rateEpsilon {
			continue
		}
		patterns = append(patterns, models.Pattern{
			Type: models.PatternTypeWarning,
			Message: fmt.Sprintf("Missing %s %d+ days in a row preceded a relapse %d of %d times (%d%%).",
				s.Label(habit), cascadeMinRun, relapses, runs, percent(rate)),
			Priority: PriorityCascade,
		})
	}

	return patterns
}

// relapsedAfter checks the lookahead window that starts the day after end
func relapsedAfter(dm DayMap, avoid []string, end time.Time) bool {
	for i := 1; i <= cascadeLookahead; i++ {
		if dm.anyLapse(shiftDate(end, i), avoid) {
			return true
		}
	}
	return false
}

// detectTriggers flags repeated trigger rows in the trailing two weeks.
// Rows are distinct by (date, notes).
func detectTriggers(entries []models.MetricEntry, s Settings, asOf time.Time) []models.Pattern {
	day := Civil(asOf)
	from := shiftDate(day, -(triggerWindowDays - 1))
	to := FormatDate(day)

	seen := make(map[[2]string]struct{})
	for _, e := range entries {
		if e.Metric != s.TriggerMetric || e.Date < from || e.Date > to {
			continue
		}
		seen[[2]string{e.Date, e.Notes}] = struct{}{}
	}
	if len(seen) < triggerThreshold {
		return nil
	}

	return []models.Pattern{{
		Type:     models.PatternTypeWarning,
		Message:  fmt.Sprintf("%d triggers logged in the last %d days. Plan around them before they stack up.", len(seen), triggerWindowDays),
		Priority: PriorityTriggers,
	}}
}
