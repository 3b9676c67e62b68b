package insight

import (
	"sort"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// DayMap indexes a log as date -> metric -> value. Duplicate (date, metric)
// rows collapse last-write-wins.
type DayMap map[string]map[string]string

// BuildDayMap indexes entries in input order
func BuildDayMap(entries []models.MetricEntry) DayMap {
	dm := make(DayMap)
	for _, e := range entries {
		metrics, ok := dm[e.Date]
		if !ok {
			metrics = make(map[string]string)
			dm[e.Date] = metrics
		}
		metrics[e.Metric] = e.Value
	}
	return dm
}

// Value returns the recorded value for a metric on a date
func (dm DayMap) Value(date, metric string) (string, bool) {
	metrics, ok := dm[date]
	if !ok {
		return "", false
	}
	v, ok := metrics[metric]
	return v, ok
}

// IsTrue reports whether the metric was recorded as "1" on date
func (dm DayMap) IsTrue(date, metric string) bool {
	v, _ := dm.Value(date, metric)
	return v == "1"
}

// Dates returns every logged date in ascending order
func (dm DayMap) Dates() []string {
	dates := make([]string, 0, len(dm))
	for d := range dm {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// anyLapse reports whether any of metrics shows "0" on date
func (dm DayMap) anyLapse(date string, metrics []string) bool {
	for _, m := range metrics {
		if v, ok := dm.Value(date, m); ok && v == "0" {
			return true
		}
	}
	return false
}
