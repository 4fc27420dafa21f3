package chronology

// TimelineItem is a single narrative scene as authored in the vault: a title
// plus the raw, free-form "when" and "duration" strings. Parsing happens
// inside the engine; items with unparseable fields are simply skipped by the
// layout pass rather than failing it.
type TimelineItem struct {
	Title    string `json:"title"`
	When     string `json:"when,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// TimeUnit identifies one of the fixed labeling granularities.
type TimeUnit string

const (
	UnitSeconds TimeUnit = "seconds"
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
	UnitDays    TimeUnit = "days"
	UnitWeeks   TimeUnit = "weeks"
	UnitMonths  TimeUnit = "months"
	UnitYears   TimeUnit = "years"
)

// DurationValue is the detailed result of parsing a duration string.
// Months and years use fixed average lengths (30.44 and 365.25 days); the
// engine never does calendar-accurate duration arithmetic.
type DurationValue struct {
	Magnitude    float64  `json:"magnitude"`
	ValueText    string   `json:"value_text"`
	UnitKey      TimeUnit `json:"unit_key"`
	UnitSingular string   `json:"unit_singular"`
	UnitPlural   string   `json:"unit_plural"`
	Milliseconds float64  `json:"milliseconds"`
}

// TimeSpanInfo aggregates the overall extent of a set of instants. All the
// unit fields describe the same TotalMs through fixed divisors, so they are
// fractional, not calendar counts.
type TimeSpanInfo struct {
	TotalMs         float64  `json:"total_ms"`
	Minutes         float64  `json:"minutes"`
	Hours           float64  `json:"hours"`
	Days            float64  `json:"days"`
	Weeks           float64  `json:"weeks"`
	Months          float64  `json:"months"`
	Years           float64  `json:"years"`
	RecommendedUnit TimeUnit `json:"recommended_unit"`
}

// TimeLabelInfo is one axis label for the generic (non-circular) timeline
// renderer.
type TimeLabelInfo struct {
	Text   string  `json:"text"`
	Angle  float64 `json:"angle"`
	TimeMs float64 `json:"time_ms"`
}

// ChronologicalTickInfo is one position on the circular timeline. Synthetic
// minor ticks carry IsMajor=false, empty names and SceneIndex=-1. The whole
// slice is rebuilt on every layout pass; it is never patched in place.
type ChronologicalTickInfo struct {
	Angle      float64 `json:"angle"`
	Name       string  `json:"name"`
	ShortName  string  `json:"shortName"`
	IsMajor    bool    `json:"isMajor"`
	IsFirst    bool    `json:"isFirst,omitempty"`
	IsLast     bool    `json:"isLast,omitempty"`
	SceneIndex int     `json:"sceneIndex"`
}

// TickLayoutOptions tunes a layout pass. The zero value gives uniform slot
// spacing, the default major-tick ceiling and no wraparound correction.
type TickLayoutOptions struct {
	// StartAngles, when it has one entry per input item, replaces uniform
	// spacing with the renderer's own angular allocation. Values are
	// normalized; ordering is still taken from the input sequence.
	StartAngles []float64

	// AngularSize is the uniform per-scene angular width, used only to push
	// the last tick off the first when the timeline closes into a full loop.
	AngularSize float64

	// MaxMajorTicks caps how many positions get labels. Zero means
	// DefaultMaxMajorTicks.
	MaxMajorTicks int
}
