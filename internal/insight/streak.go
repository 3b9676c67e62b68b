package insight

import (
	"sort"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// CalculateStreak walks a metric's rows in date order. The running counter
// resets on any value other than "1"; best is the longest run seen and
// current is the run still open at the latest row. Same-day duplicates are
// not collapsed here: each row counts.
func CalculateStreak(entries []models.MetricEntry, metric string) models.StreakInfo {
	rows := make([]models.MetricEntry, 0)
	for _, e := range entries {
		if e.Metric == metric {
			rows = append(rows, e)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})

	run, best := 0, 0
	for _, r := range rows {
		if !r.IsTrue() {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}

	return models.StreakInfo{Current: run, Best: best}
}

// CalculateStreaks computes streaks for every metric in order
func CalculateStreaks(entries []models.MetricEntry, metrics []string) map[string]models.StreakInfo {
	streaks := make(map[string]models.StreakInfo, len(metrics))
	for _, m := range metrics {
		streaks[m] = CalculateStreak(entries, m)
	}
	return streaks
}
