package chronology

import (
	"sort"
	"time"
)

// GenerateTimeLabels produces evenly spaced axis labels across the span of
// the given instants for the generic (non-circular) timeline renderer. The
// label text follows the span's recommended unit. A zero or single-point
// span yields no labels.
func GenerateTimeLabels(instants []time.Time, count int) []TimeLabelInfo {
	if len(instants) < 2 || count < 2 {
		return nil
	}

	sorted := make([]time.Time, len(instants))
	copy(sorted, instants)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	start := sorted[0]
	end := sorted[len(sorted)-1]
	if !end.After(start) {
		return nil
	}

	span := CalculateTimeSpan(sorted)
	startMs := float64(start.UnixMilli())
	endMs := float64(end.UnixMilli())

	labels := make([]TimeLabelInfo, 0, count)
	for i := 0; i < count; i++ {
		progress := float64(i) / float64(count-1)
		ms := startMs + progress*(endMs-startMs)
		t := time.UnixMilli(int64(ms)).In(time.Local)
		labels = append(labels, TimeLabelInfo{
			Text:   axisLabelText(t, span.RecommendedUnit),
			Angle:  MapTimeToAngle(ms, startMs, endMs),
			TimeMs: ms,
		})
	}
	return labels
}

func axisLabelText(t time.Time, unit TimeUnit) string {
	switch unit {
	case UnitSeconds, UnitMinutes, UnitHours:
		return formatClock(t)
	case UnitDays, UnitWeeks:
		return t.Format("Jan 2")
	case UnitMonths:
		return t.Format("Jan 2006")
	default:
		return t.Format("2006")
	}
}
