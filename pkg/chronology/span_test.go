package chronology

import (
	"math"
	"testing"
	"time"
)

func TestCalculateTimeSpanEmpty(t *testing.T) {
	span := CalculateTimeSpan(nil)

	if span.TotalMs != 0 {
		t.Errorf("empty span should have TotalMs 0, got %v", span.TotalMs)
	}
	if span.RecommendedUnit != UnitDays {
		t.Errorf("empty span should recommend days, got %s", span.RecommendedUnit)
	}
}

func TestCalculateTimeSpanUnsortedInput(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	instants := []time.Time{
		base.Add(48 * time.Hour),
		base,
		base.Add(24 * time.Hour),
	}

	span := CalculateTimeSpan(instants)

	if span.Hours != 48 {
		t.Errorf("expected 48 hours, got %v", span.Hours)
	}
	if span.Days != 2 {
		t.Errorf("expected 2 days, got %v", span.Days)
	}
}

func TestRecommendedUnitLadder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		span time.Duration
		want TimeUnit
	}{
		{"5 hours", 5 * time.Hour, UnitMinutes},
		{"just under 6 hours", 6*time.Hour - time.Minute, UnitMinutes},
		{"6 hours", 6 * time.Hour, UnitHours},
		{"47 hours", 47 * time.Hour, UnitHours},
		{"49 hours", 49 * time.Hour, UnitDays},
		{"13 days", 13 * 24 * time.Hour, UnitDays},
		{"3 weeks", 21 * 24 * time.Hour, UnitWeeks},
		{"11 weeks", 77 * 24 * time.Hour, UnitWeeks},
		{"6 months", 183 * 24 * time.Hour, UnitMonths},
		{"23 months avg", time.Duration(23 * 30.44 * 24 * float64(time.Hour)), UnitMonths},
		{"3 years", 3 * 365 * 24 * time.Hour, UnitYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := CalculateTimeSpan([]time.Time{base, base.Add(tt.span)})
			if span.RecommendedUnit != tt.want {
				t.Errorf("span %v: recommended %s, want %s", tt.span, span.RecommendedUnit, tt.want)
			}
		})
	}
}

func TestCalculateTimeSpanDerivedUnits(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	span := CalculateTimeSpan([]time.Time{base, base.Add(14 * 24 * time.Hour)})

	if span.TotalMs != 14*msPerDay {
		t.Errorf("expected %v ms, got %v", 14*msPerDay, span.TotalMs)
	}
	if span.Weeks != 2 {
		t.Errorf("expected 2 weeks, got %v", span.Weeks)
	}
	if math.Abs(span.Months-14/30.44) > 1e-9 {
		t.Errorf("expected %v months, got %v", 14/30.44, span.Months)
	}
	if math.Abs(span.Years-14/365.25) > 1e-9 {
		t.Errorf("expected %v years, got %v", 14/365.25, span.Years)
	}
}
