package chronology

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"
)

func dailyItems(n int) []TimelineItem {
	items := make([]TimelineItem, n)
	for i := 0; i < n; i++ {
		day := i + 1
		items[i] = TimelineItem{
			Title: fmt.Sprintf("Scene %d", i+1),
			When:  fmt.Sprintf("2024-1-%d", day),
		}
	}
	return items
}

func countMajor(ticks []ChronologicalTickInfo) int {
	count := 0
	for _, tick := range ticks {
		if tick.IsMajor {
			count++
		}
	}
	return count
}

func TestGenerateTicksEmpty(t *testing.T) {
	if ticks := GenerateChronologicalTicks(nil, nil); len(ticks) != 0 {
		t.Errorf("expected no ticks, got %d", len(ticks))
	}

	undated := []TimelineItem{{Title: "A"}, {Title: "B", When: "someday"}}
	if ticks := GenerateChronologicalTicks(undated, nil); len(ticks) != 0 {
		t.Errorf("undated scenes should produce no ticks, got %d", len(ticks))
	}
}

func TestGenerateTicksSingleScene(t *testing.T) {
	items := []TimelineItem{{Title: "Only", When: "2024-3-15"}}
	ticks := GenerateChronologicalTicks(items, nil)

	if len(ticks) != 1 {
		t.Fatalf("expected exactly one tick, got %d", len(ticks))
	}
	tick := ticks[0]
	if math.Abs(tick.Angle-(-math.Pi/2)) > 1e-9 {
		t.Errorf("single tick should sit at 12 o'clock, got %v", tick.Angle)
	}
	if tick.Name != "Mar 15, 2024" {
		t.Errorf("expected full date label, got %q", tick.Name)
	}
	if !tick.IsMajor {
		t.Error("single tick must be major")
	}
}

func TestGenerateTicksDropsInvalidScenes(t *testing.T) {
	items := []TimelineItem{
		{Title: "A", When: "2024-1-1"},
		{Title: "broken", When: "not a date"},
		{Title: "B", When: "2024-1-2"},
	}

	ticks := GenerateChronologicalTicks(items, nil)

	for _, tick := range ticks {
		if tick.SceneIndex == 1 {
			t.Error("invalid scene should not occupy a tick")
		}
	}
}

func TestGenerateTicksFirstLastFlags(t *testing.T) {
	for _, n := range []int{2, 5, 25} {
		ticks := GenerateChronologicalTicks(dailyItems(n), nil)

		firsts, lasts := 0, 0
		for _, tick := range ticks {
			if tick.IsFirst {
				firsts++
			}
			if tick.IsLast {
				lasts++
			}
		}
		if firsts != 1 || lasts != 1 {
			t.Errorf("n=%d: expected exactly one first and one last, got %d/%d", n, firsts, lasts)
		}
	}
}

func TestGenerateTicksMajorCeiling(t *testing.T) {
	for _, n := range []int{21, 25, 50, 100, 365} {
		ticks := GenerateChronologicalTicks(dailyItems(n), nil)
		if majors := countMajor(ticks); majors > DefaultMaxMajorTicks {
			t.Errorf("n=%d: %d major ticks exceeds ceiling %d", n, majors, DefaultMaxMajorTicks)
		}
	}
}

func TestGenerateTicksCustomMajorCeiling(t *testing.T) {
	tests := []struct {
		n    int
		max  int
		want int
	}{
		// Ceilings below two clamp to two: endpoints are always promoted.
		{5, 1, 2},
		{5, 2, 2},
		{30, 2, 2},
		{30, 5, 5},
	}

	for _, tt := range tests {
		ticks := GenerateChronologicalTicks(dailyItems(tt.n), &TickLayoutOptions{MaxMajorTicks: tt.max})

		if majors := countMajor(ticks); majors != tt.want {
			t.Errorf("n=%d max=%d: got %d major ticks, want %d", tt.n, tt.max, majors, tt.want)
		}

		promoted := map[int]bool{}
		for _, tick := range ticks {
			if tick.IsMajor {
				promoted[tick.SceneIndex] = true
			}
		}
		if !promoted[0] || !promoted[tt.n-1] {
			t.Errorf("n=%d max=%d: endpoints must stay promoted, got %v", tt.n, tt.max, promoted)
		}
	}
}

func TestGenerateTicksLabeledTicksHaveNames(t *testing.T) {
	ticks := GenerateChronologicalTicks(dailyItems(30), nil)

	for _, tick := range ticks {
		if tick.IsMajor && (tick.Name == "" || tick.ShortName == "") {
			t.Errorf("major tick at %v missing label", tick.Angle)
		}
		if !tick.IsMajor && tick.Name != "" {
			t.Errorf("minor tick at %v should be unlabeled, got %q", tick.Angle, tick.Name)
		}
	}
}

func TestGenerateTicksEndToEnd25Daily(t *testing.T) {
	// 25 scenes one day apart: span ≈ 24 days, step 4 divides 24 evenly so
	// 7 majors including both endpoints, the rest natural minors.
	items := dailyItems(25)

	span := CalculateTimeSpan(mustInstants(t, items))
	if math.Abs(span.Days-24) > 1e-9 {
		t.Errorf("expected span of 24 days, got %v", span.Days)
	}
	if span.RecommendedUnit != UnitDays {
		t.Errorf("expected days, got %s", span.RecommendedUnit)
	}

	ticks := GenerateChronologicalTicks(items, nil)

	if len(ticks) != 25 {
		t.Fatalf("expected 25 ticks with no synthesis, got %d", len(ticks))
	}
	if majors := countMajor(ticks); majors != 7 {
		t.Errorf("expected 7 major ticks (step 4), got %d", majors)
	}

	promoted := map[int]bool{}
	for _, tick := range ticks {
		if tick.IsMajor {
			promoted[tick.SceneIndex] = true
		}
	}
	if !promoted[0] || !promoted[24] {
		t.Error("endpoints must always be promoted")
	}
	for idx := range promoted {
		if idx%4 != 0 && idx != 24 {
			t.Errorf("unexpected promoted index %d", idx)
		}
	}
}

func TestGenerateTicksAdaptiveLabels(t *testing.T) {
	// Scenes across a single afternoon: span under 6 hours, so the first
	// label carries date+time and later labels collapse to time only.
	items := []TimelineItem{
		{When: "2024-6-1 1pm"},
		{When: "2024-6-1 2pm"},
		{When: "2024-6-1 4pm"},
	}

	ticks := GenerateChronologicalTicks(items, nil)

	var first, last ChronologicalTickInfo
	for _, tick := range ticks {
		if tick.IsFirst {
			first = tick
		}
		if tick.IsLast {
			last = tick
		}
	}

	if !strings.Contains(first.Name, "Jun 1") || !strings.Contains(first.Name, "1:00pm") {
		t.Errorf("first label should show date and time, got %q", first.Name)
	}
	if !strings.Contains(first.Name, "\n") {
		t.Errorf("first label should be two lines, got %q", first.Name)
	}
	if last.Name != "4:00pm" {
		t.Errorf("last label on a short span should be time only, got %q", last.Name)
	}
}

func TestGenerateTicksDateOnlyLabelsForLongSpans(t *testing.T) {
	items := []TimelineItem{
		{When: "2020-1-1"},
		{When: "2021-1-1"},
		{When: "2022-1-1"},
	}

	ticks := GenerateChronologicalTicks(items, nil)

	for _, tick := range ticks {
		if tick.IsFirst {
			if !strings.HasPrefix(tick.Name, "2020\n") {
				t.Errorf("first label on a long span should lead with the year, got %q", tick.Name)
			}
		} else if tick.IsMajor && tick.SceneIndex >= 0 {
			if strings.Contains(tick.Name, "pm") || strings.Contains(tick.Name, "am") {
				t.Errorf("year-spanning labels should not include times, got %q", tick.Name)
			}
		}
	}
}

func TestGenerateTicksMinorSynthesis(t *testing.T) {
	// With 4 scenes everything is promoted, so cosmetic minors are
	// synthesized between the majors.
	ticks := GenerateChronologicalTicks(dailyItems(4), nil)

	minors := 0
	for _, tick := range ticks {
		if !tick.IsMajor {
			minors++
			if tick.SceneIndex != -1 {
				t.Errorf("synthetic minor should carry scene index -1, got %d", tick.SceneIndex)
			}
			if tick.Name != "" || tick.ShortName != "" {
				t.Errorf("synthetic minor must be unlabeled, got %q", tick.Name)
			}
		}
	}
	if minors == 0 {
		t.Fatal("expected synthesized minor ticks when all scenes are promoted")
	}

	// No synthetic point may coincide with a major tick.
	for _, minor := range ticks {
		if minor.IsMajor {
			continue
		}
		for _, major := range ticks {
			if major.IsMajor && angularDistance(minor.Angle, major.Angle) < tickAngleEpsilon {
				t.Errorf("minor at %v coincides with major at %v", minor.Angle, major.Angle)
			}
		}
	}
}

func TestGenerateTicksSortedByCanonicalAngle(t *testing.T) {
	ticks := GenerateChronologicalTicks(dailyItems(10), nil)

	for i := 1; i < len(ticks); i++ {
		if ticks[i].Angle < ticks[i-1].Angle {
			t.Errorf("ticks out of order at %d: %v after %v", i, ticks[i].Angle, ticks[i-1].Angle)
		}
	}
}

func TestGenerateTicksExternalStartAngles(t *testing.T) {
	items := dailyItems(3)
	angles := []float64{-math.Pi / 2, 0, math.Pi}

	ticks := GenerateChronologicalTicks(items, &TickLayoutOptions{StartAngles: angles})

	seen := map[int]float64{}
	for _, tick := range ticks {
		if tick.SceneIndex >= 0 {
			seen[tick.SceneIndex] = tick.Angle
		}
	}
	for i, want := range angles {
		got, ok := seen[i]
		if !ok {
			t.Fatalf("scene %d missing from ticks", i)
		}
		if math.Abs(got-ToCanonicalAngle(want)) > 1e-9 {
			t.Errorf("scene %d at %v, want %v", i, got, ToCanonicalAngle(want))
		}
	}
}

func TestGenerateTicksWraparoundCorrection(t *testing.T) {
	// First and last scene share an angle: a closed loop. With an angular
	// size hint the last tick must be pushed forward by one slot.
	items := dailyItems(3)
	angles := []float64{-math.Pi / 2, math.Pi / 2, -math.Pi / 2}
	size := math.Pi / 12

	ticks := GenerateChronologicalTicks(items, &TickLayoutOptions{
		StartAngles: angles,
		AngularSize: size,
	})

	var first, last ChronologicalTickInfo
	for _, tick := range ticks {
		if tick.IsFirst {
			first = tick
		}
		if tick.IsLast {
			last = tick
		}
	}

	if angularDistance(first.Angle, last.Angle) < tickAngleEpsilon {
		t.Error("wraparound correction should separate first and last ticks")
	}
	want := ToCanonicalAngle(-math.Pi/2 + size)
	if math.Abs(last.Angle-want) > 1e-9 {
		t.Errorf("last tick should shift by one slot to %v, got %v", want, last.Angle)
	}
}

func mustInstants(t *testing.T, items []TimelineItem) []time.Time {
	t.Helper()
	instants := make([]time.Time, 0, len(items))
	for _, item := range items {
		instant, err := ParseWhen(item.When)
		if err != nil {
			t.Fatalf("ParseWhen(%q): %v", item.When, err)
		}
		instants = append(instants, instant)
	}
	return instants
}
