package chronology

import (
	"sort"
	"time"
)

// CalculateTimeSpan computes the overall extent of a set of instants and
// picks the granularity labels should use. Empty input yields an all-zero
// span with days recommended.
func CalculateTimeSpan(instants []time.Time) TimeSpanInfo {
	if len(instants) == 0 {
		return TimeSpanInfo{RecommendedUnit: UnitDays}
	}

	sorted := make([]time.Time, len(instants))
	copy(sorted, instants)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	totalMs := float64(sorted[len(sorted)-1].Sub(sorted[0])) / float64(time.Millisecond)

	span := TimeSpanInfo{
		TotalMs: totalMs,
		Minutes: totalMs / msPerMinute,
		Hours:   totalMs / msPerHour,
		Days:    totalMs / msPerDay,
		Weeks:   totalMs / msPerWeek,
		Months:  totalMs / msPerMonth,
		Years:   totalMs / msPerYear,
	}
	span.RecommendedUnit = recommendUnit(span)
	return span
}

// recommendUnit walks the threshold ladder in order, first match wins. The
// thresholds are deliberately asymmetric: short action sequences fall to
// minute ticks and multi-year sagas to yearly ones, with no gap between
// rungs.
func recommendUnit(span TimeSpanInfo) TimeUnit {
	switch {
	case span.Hours < 6:
		return UnitMinutes
	case span.Hours < 48:
		return UnitHours
	case span.Days < 14:
		return UnitDays
	case span.Weeks < 12:
		return UnitWeeks
	case span.Months < 24:
		return UnitMonths
	default:
		return UnitYears
	}
}
