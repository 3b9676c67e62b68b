package insight

import (
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// SummarizeHabits counts "1" days per build habit in [asOf-7, asOf] and
// captures yesterday's state. A habit missing yesterday reads as false.
func SummarizeHabits(dm DayMap, habits []string, asOf time.Time) models.HabitSummary {
	day := Civil(asOf)
	from := shiftDate(day, -7)
	to := FormatDate(day)
	yesterday := shiftDate(day, -1)

	summary := models.HabitSummary{
		Last7Days: make(map[string]int, len(habits)),
		Yesterday: make(map[string]bool, len(habits)),
	}
	for _, h := range habits {
		summary.Last7Days[h] = 0
		summary.Yesterday[h] = dm.IsTrue(yesterday, h)
	}

	for date, metrics := range dm {
		if date < from || date > to {
			continue
		}
		for _, h := range habits {
			if metrics[h] == "1" {
				summary.Last7Days[h]++
			}
		}
	}

	return summary
}
