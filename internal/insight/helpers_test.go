package insight

import (
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// asOf is a Friday
var asOf = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

// daysAgo returns the date n days before asOf
func daysAgo(n int) string {
	return shiftDate(asOf, -n)
}

func entry(date, metric, value string) models.MetricEntry {
	return models.MetricEntry{Date: date, Metric: metric, Value: value}
}

// series builds consecutive daily rows for one metric ending at asOf.
// values[0] is the oldest day.
func series(metric string, values ...string) []models.MetricEntry {
	entries := make([]models.MetricEntry, 0, len(values))
	for i, v := range values {
		entries = append(entries, entry(daysAgo(len(values)-1-i), metric, v))
	}
	return entries
}

func floatPtr(v float64) *float64 {
	return &v
}
