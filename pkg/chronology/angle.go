package chronology

import (
	"math"
	"time"
)

// Angle conventions: zero progress sits at 12 o'clock (-π/2 in standard
// math orientation) and angles grow clockwise. Two ranges are in play and
// conversions between them are always explicit: the canonical range (-π, π]
// is what renderers expecting "shortest rotation from 12 o'clock" consume;
// the positive range [0, 2π) is what every around-the-circle ordering
// comparison must use.

// MapTimeToAngle projects an instant linearly onto the circle spanned by
// [startMs, endMs]. A zero-width span produces NaN; callers guard the
// degenerate case and place a single point instead.
func MapTimeToAngle(timeMs, startMs, endMs float64) float64 {
	progress := (timeMs - startMs) / (endMs - startMs)
	return progress*2*math.Pi - math.Pi/2
}

// DateToAngle maps a single instant's position within its calendar year onto
// the full circle. Used by annual-cycle views, independent of any multi-scene
// span.
func DateToAngle(t time.Time) float64 {
	dayFraction := float64(t.Hour())/24 + float64(t.Minute())/(24*60)
	progress := (float64(t.YearDay()-1) + dayFraction) / float64(daysInYear(t.Year()))
	return progress*2*math.Pi - math.Pi/2
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ToCanonicalAngle folds an angle into (-π, π].
func ToCanonicalAngle(angle float64) float64 {
	a := math.Mod(angle+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// ToPositiveAngle folds an angle into [0, 2π).
func ToPositiveAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
