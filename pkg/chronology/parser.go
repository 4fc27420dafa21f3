package chronology

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidWhen is returned by ParseWhen for any string that does not match
// one of the accepted date/time shapes exactly. There is no fuzzy parsing.
var ErrInvalidWhen = errors.New("invalid when format")

// Millisecond sizes for each duration unit. Months and years are fixed
// averages, not calendar lengths.
const (
	msPerSecond = 1000.0
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
	msPerMonth  = 30.44 * msPerDay
	msPerYear   = 365.25 * msPerDay
)

type unitDef struct {
	key      TimeUnit
	singular string
	plural   string
	millis   float64
}

var unitDefs = map[TimeUnit]unitDef{
	UnitSeconds: {UnitSeconds, "second", "seconds", msPerSecond},
	UnitMinutes: {UnitMinutes, "minute", "minutes", msPerMinute},
	UnitHours:   {UnitHours, "hour", "hours", msPerHour},
	UnitDays:    {UnitDays, "day", "days", msPerDay},
	UnitWeeks:   {UnitWeeks, "week", "weeks", msPerWeek},
	UnitMonths:  {UnitMonths, "month", "months", msPerMonth},
	UnitYears:   {UnitYears, "year", "years", msPerYear},
}

// unitAliases maps every accepted unit spelling to its canonical key. Built
// once at init and never mutated.
var unitAliases = map[string]TimeUnit{
	"s": UnitSeconds, "sec": UnitSeconds, "secs": UnitSeconds, "second": UnitSeconds, "seconds": UnitSeconds,
	"m": UnitMinutes, "min": UnitMinutes, "mins": UnitMinutes, "minute": UnitMinutes, "minutes": UnitMinutes,
	"h": UnitHours, "hr": UnitHours, "hrs": UnitHours, "hour": UnitHours, "hours": UnitHours,
	"d": UnitDays, "day": UnitDays, "days": UnitDays,
	"w": UnitWeeks, "wk": UnitWeeks, "wks": UnitWeeks, "week": UnitWeeks, "weeks": UnitWeeks,
	"mo": UnitMonths, "mon": UnitMonths, "mos": UnitMonths, "month": UnitMonths, "months": UnitMonths,
	"y": UnitYears, "yr": UnitYears, "yrs": UnitYears, "year": UnitYears, "years": UnitYears,
}

var (
	whenDateOnly  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	whenISOTime   = regexp.MustCompile(`(?i)^(\d{4})-(\d{1,2})-(\d{1,2})T(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	whenSpaceTime = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2}) (\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	when12Hour    = regexp.MustCompile(`(?i)^(\d{4})-(\d{1,2})-(\d{1,2}) (\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)

	durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)$`)
)

// ParseWhen parses a free-form "when" string into a naive local wall-clock
// instant. Accepted shapes, in priority order:
//
//	2024-1-15              (date only, defaults to local noon)
//	2024-1-15T9:30[:45]    (ISO-like, T separator)
//	2024-1-15 9:30[:45]    (24-hour)
//	2024-1-15 9[:30]am     (12-hour with am/pm)
//
// Date-only strings resolve to noon rather than midnight so that rounding in
// downstream display code cannot push the date onto an adjacent day. Every
// instant is built in time.Local; nothing in this path may go through UTC.
func ParseWhen(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidWhen)
	}

	if m := whenDateOnly.FindStringSubmatch(s); m != nil {
		return buildInstant(m[1], m[2], m[3], 12, 0, 0)
	}
	if m := whenISOTime.FindStringSubmatch(s); m != nil {
		return buildInstantHM(m[1], m[2], m[3], m[4], m[5], m[6])
	}
	if m := whenSpaceTime.FindStringSubmatch(s); m != nil {
		return buildInstantHM(m[1], m[2], m[3], m[4], m[5], m[6])
	}
	if m := when12Hour.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[4])
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, input)
		}
		// 12am is midnight, 12pm is noon.
		if strings.EqualFold(m[6], "am") {
			if hour == 12 {
				hour = 0
			}
		} else if hour != 12 {
			hour += 12
		}
		minute := 0
		if m[5] != "" {
			minute, _ = strconv.Atoi(m[5])
			if minute > 59 {
				return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, input)
			}
		}
		return buildInstant(m[1], m[2], m[3], hour, minute, 0)
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, input)
}

func buildInstantHM(year, month, day, hour, minute, second string) (time.Time, error) {
	h, _ := strconv.Atoi(hour)
	min, _ := strconv.Atoi(minute)
	sec := 0
	if second != "" {
		sec, _ = strconv.Atoi(second)
	}
	if h > 23 || min > 59 || sec > 59 {
		return time.Time{}, fmt.Errorf("%w: time out of range %s:%s:%s", ErrInvalidWhen, hour, minute, second)
	}
	return buildInstant(year, month, day, h, min, sec)
}

func buildInstant(year, month, day string, hour, minute, second int) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("%w: date out of range %s-%s-%s", ErrInvalidWhen, year, month, day)
	}
	t := time.Date(y, time.Month(mo), d, hour, minute, second, 0, time.Local)
	// time.Date normalizes overflow (e.g. Feb 31 becomes Mar 3); treat any
	// day that does not round-trip as a format error instead.
	if t.Day() != d || t.Month() != time.Month(mo) {
		return time.Time{}, fmt.Errorf("%w: no such date %s-%s-%s", ErrInvalidWhen, year, month, day)
	}
	return t, nil
}

// ParseDurationDetail parses "<number><optional space><unit alias>" into a
// DurationValue. It returns nil for empty input, unknown units, non-finite or
// non-positive magnitudes: in the duration editor "0" means "not set". Use
// ParseDuration where zero is a legitimate value.
func ParseDurationDetail(input string) *DurationValue {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return nil
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	magnitude, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(magnitude, 0) || math.IsNaN(magnitude) || magnitude <= 0 {
		return nil
	}

	key, ok := unitAliases[m[2]]
	if !ok {
		return nil
	}
	def := unitDefs[key]

	return &DurationValue{
		Magnitude:    magnitude,
		ValueText:    m[1],
		UnitKey:      def.key,
		UnitSingular: def.singular,
		UnitPlural:   def.plural,
		Milliseconds: magnitude * def.millis,
	}
}

// ParseDuration parses a duration string into milliseconds. Unlike
// ParseDurationDetail it treats the empty string and a literal "0" as a valid
// zero duration, which callers use to disable time-based behavior entirely.
func ParseDuration(input string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" || s == "0" {
		return 0, true
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	magnitude, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(magnitude, 0) || math.IsNaN(magnitude) {
		return 0, false
	}

	key, ok := unitAliases[m[2]]
	if !ok {
		return 0, false
	}

	return magnitude * unitDefs[key].millis, true
}

// FormatDurationDetail renders a parsed duration back to display text, e.g.
// "1 hour" or "2.5 weeks".
func FormatDurationDetail(d *DurationValue) string {
	if d == nil {
		return ""
	}
	unit := d.UnitPlural
	if d.Magnitude == 1 {
		unit = d.UnitSingular
	}
	return fmt.Sprintf("%s %s", d.ValueText, unit)
}
