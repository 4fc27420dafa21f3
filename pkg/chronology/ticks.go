package chronology

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMaxMajorTicks caps how many scene positions may be promoted to
	// labeled ticks on one circle.
	DefaultMaxMajorTicks = 20

	// minorStepAngle is the target angular rhythm of synthesized minor ticks.
	minorStepAngle = math.Pi / 24

	// maxMinorSubdivisions caps subdivisions between two adjacent majors.
	maxMinorSubdivisions = 12

	// tickAngleEpsilon is the tolerance used both for skipping synthetic
	// minors that would sit on a major and for detecting first/last
	// wraparound collision.
	tickAngleEpsilon = 1e-3
)

type validScene struct {
	index   int
	instant time.Time
	angle   float64
}

// GenerateChronologicalTicks converts an ordered-by-chronology scene list
// into the full renderable tick set for the circular timeline: labeled
// ("major") ticks with adaptive text, unlabeled minor ticks, first/last
// flags, wraparound correction and, when every scene ends up labeled,
// synthetic minor ticks for visual rhythm.
//
// Scenes whose "when" string fails to parse are dropped entirely; a single
// malformed scene never aborts the pass.
func GenerateChronologicalTicks(items []TimelineItem, opts *TickLayoutOptions) []ChronologicalTickInfo {
	if opts == nil {
		opts = &TickLayoutOptions{}
	}
	maxMajor := opts.MaxMajorTicks
	if maxMajor <= 0 {
		maxMajor = DefaultMaxMajorTicks
	}
	// Endpoints are always promoted, so the effective ceiling is never
	// below two.
	if maxMajor < 2 {
		maxMajor = 2
	}

	var scenes []validScene
	for i, item := range items {
		instant, err := ParseWhen(item.When)
		if err != nil {
			continue
		}
		scenes = append(scenes, validScene{index: i, instant: instant})
	}

	n := len(scenes)
	if n == 0 {
		return nil
	}
	if n == 1 {
		name := scenes[0].instant.Format("Jan 2, 2006")
		return []ChronologicalTickInfo{{
			Angle:      -math.Pi / 2,
			Name:       name,
			ShortName:  name,
			IsMajor:    true,
			SceneIndex: scenes[0].index,
		}}
	}

	// Slot angles: the renderer's non-uniform allocation when provided (one
	// start angle per input scene), uniform spacing otherwise.
	useExternal := len(opts.StartAngles) == len(items)
	for i := range scenes {
		if useExternal {
			scenes[i].angle = ToCanonicalAngle(opts.StartAngles[scenes[i].index])
		} else {
			scenes[i].angle = ToCanonicalAngle(-math.Pi/2 + float64(i)*2*math.Pi/float64(n))
		}
	}

	step := majorStep(n, maxMajor)

	instants := make([]time.Time, n)
	for i, sc := range scenes {
		instants[i] = sc.instant
	}
	span := CalculateTimeSpan(instants)

	ticks := make([]ChronologicalTickInfo, 0, n)
	// Running accumulator: the instant of the previous *labeled* tick, not
	// the previous scene. Dense same-day clusters collapse to time-only
	// labels while sparse regions keep full dates.
	lastLabeled := scenes[0].instant
	anyMinor := false

	for i, sc := range scenes {
		isFirst := i == 0
		isLast := i == n-1
		promoted := isFirst || isLast || i%step == 0

		tick := ChronologicalTickInfo{
			Angle:      sc.angle,
			IsMajor:    promoted,
			IsFirst:    isFirst,
			IsLast:     isLast,
			SceneIndex: sc.index,
		}
		if promoted {
			gap := sc.instant.Sub(lastLabeled)
			tick.Name = tickLabel(sc.instant, span, gap, isFirst, isLast)
			tick.ShortName = strings.ReplaceAll(tick.Name, "\n", " ")
			lastLabeled = sc.instant
		} else {
			anyMinor = true
		}
		ticks = append(ticks, tick)
	}

	// Wraparound: when the timeline closes into a full loop the last label
	// would sit on top of the first. Shift the last tick forward by one
	// angular slot when the renderer told us how wide a slot is.
	if opts.AngularSize > 0 {
		first := ticks[0]
		last := &ticks[len(ticks)-1]
		if angularDistance(first.Angle, last.Angle) < tickAngleEpsilon {
			last.Angle = ToCanonicalAngle(last.Angle + opts.AngularSize)
		}
	}

	if !anyMinor {
		ticks = append(ticks, synthesizeMinorTicks(ticks)...)
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Angle < ticks[j].Angle
	})
	return ticks
}

// majorStep picks the promotion stride for n valid scenes. Endpoints are
// always promoted; intermediate indices every step-th. A step that evenly
// divides n-1 is preferred over the naive rounding so the unlabeled remainder
// does not pile up on one side of the circle.
func majorStep(n, maxMajor int) int {
	if n <= maxMajor {
		return 1
	}
	// Smallest stride that keeps the promoted count within the ceiling.
	base := ((n - 1) + (maxMajor - 2)) / (maxMajor - 1)
	candidate := int(math.Ceil(math.Sqrt(float64(n))))
	if candidate < base {
		candidate = base
	}
	for s := candidate; s >= base; s-- {
		if (n-1)%s == 0 {
			return s
		}
	}
	return candidate
}

// tickLabel builds the adaptive label for a promoted tick. The first tick
// keys off the whole span, the last off the span, and intermediate ticks off
// the elapsed gap since the previous labeled tick.
func tickLabel(t time.Time, span TimeSpanInfo, gap time.Duration, isFirst, isLast bool) string {
	switch {
	case isFirst:
		if span.Hours < 48 {
			return t.Format("Jan 2") + "\n" + formatClock(t)
		}
		return t.Format("2006") + "\n" + t.Format("Jan 2")
	case isLast:
		switch {
		case span.Hours < 6:
			return formatClock(t)
		case span.Hours < 48:
			return t.Format("Jan 2") + ", " + formatClock(t)
		default:
			return t.Format("Jan 2")
		}
	default:
		gapHours := gap.Hours()
		switch {
		case gapHours < 6:
			return formatClock(t)
		case gapHours < 48:
			return t.Format("Jan 2") + ", " + formatClock(t)
		default:
			return t.Format("Jan 2")
		}
	}
}

// formatClock renders "3:04pm" with a lowercase meridiem.
func formatClock(t time.Time) string {
	return strings.ToLower(t.Format("3:04PM"))
}

// angularDistance is the shortest circular distance between two angles,
// compared in the positive range as all around-the-circle comparisons are.
func angularDistance(a, b float64) float64 {
	d := math.Abs(ToPositiveAngle(a) - ToPositiveAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// synthesizeMinorTicks fills the gaps between consecutive major ticks with
// purely cosmetic unlabeled ticks. Only called when every scene was promoted,
// which would otherwise leave the circle with no baseline rhythm at all.
func synthesizeMinorTicks(majors []ChronologicalTickInfo) []ChronologicalTickInfo {
	if len(majors) < 2 {
		return nil
	}

	positions := make([]float64, len(majors))
	for i, tick := range majors {
		positions[i] = ToPositiveAngle(tick.Angle)
	}
	sort.Float64s(positions)

	var minors []ChronologicalTickInfo
	for i := range positions {
		start := positions[i]
		var gap float64
		if i == len(positions)-1 {
			gap = positions[0] + 2*math.Pi - start
		} else {
			gap = positions[i+1] - start
		}

		steps := int(gap / minorStepAngle)
		if steps > maxMinorSubdivisions {
			steps = maxMinorSubdivisions
		}
		if steps < 2 {
			continue
		}

		stride := gap / float64(steps)
		for k := 1; k < steps; k++ {
			point := start + stride*float64(k)
			if nearAnyAngle(point, positions) {
				continue
			}
			minors = append(minors, ChronologicalTickInfo{
				Angle:      ToCanonicalAngle(point),
				IsMajor:    false,
				SceneIndex: -1,
			})
		}
	}
	return minors
}

func nearAnyAngle(angle float64, positions []float64) bool {
	for _, p := range positions {
		if angularDistance(angle, p) < tickAngleEpsilon {
			return true
		}
	}
	return false
}
