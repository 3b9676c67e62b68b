package insight

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// Weight changes within this many units either way count as stable
const weightStableBand = 1.0

type weightPoint struct {
	date  string
	value float64
}

// CalculateWeight summarizes the weight series as of a day. Values that do
// not parse to a finite number are treated as missing.
func CalculateWeight(entries []models.MetricEntry, s Settings, asOf time.Time) models.WeightInsight {
	day := Civil(asOf)
	today := FormatDate(day)

	result := models.WeightInsight{
		Trend:      models.WeightTrendUnknown,
		MonthLabel: day.Format("Jan"),
	}

	points := make([]weightPoint, 0)
	for _, e := range entries {
		if e.Metric != s.WeightMetric || e.Date > today {
			continue
		}
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		points = append(points, weightPoint{date: e.Date, value: v})
	}
	if len(points) == 0 {
		return result
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].date < points[j].date
	})

	current := points[len(points)-1].value
	result.Current = &current
	result.WeekAgo = lastOnOrBefore(points, shiftDate(day, -7))
	result.TwoWeeksAgo = lastOnOrBefore(points, shiftDate(day, -14))

	if result.WeekAgo != nil {
		diff := current - *result.WeekAgo
		switch {
		case diff > weightStableBand:
			result.Trend = models.WeightTrendUp
		case diff < -weightStableBand:
			result.Trend = models.WeightTrendDown
		default:
			result.Trend = models.WeightTrendStable
		}
	}

	if target, ok := s.Checkpoint(result.MonthLabel); ok {
		result.MonthTarget = &target
		result.OnTrack = current <= target
	}

	return result
}

// lastOnOrBefore carries the last known value forward to target. It never
// interpolates and never looks past target.
func lastOnOrBefore(points []weightPoint, target string) *float64 {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].date <= target {
			v := points[i].value
			return &v
		}
	}
	return nil
}
