package temporal

import (
	"github.com/leowmjw/go-radial-chronology/pkg/chronology"
)

// SceneInput is one scene as submitted to the layout service: raw strings,
// parsed only inside the engine.
type SceneInput struct {
	Title    string `json:"title"`
	When     string `json:"when,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// LayoutOptions carries the renderer-supplied tuning for a layout pass.
type LayoutOptions struct {
	MaxMajorTicks          int       `json:"max_major_ticks,omitempty"`
	AngularSize            float64   `json:"angular_size,omitempty"`
	DiscontinuityThreshold float64   `json:"discontinuity_threshold,omitempty"`
	StartAngles            []float64 `json:"start_angles,omitempty"`
	LabelCount             int       `json:"label_count,omitempty"`
}

// LayoutRequest asks for a full layout pass over a timeline. When Scenes is
// empty the workflow loads the timeline's scenes from the scene store.
type LayoutRequest struct {
	TimelineID string         `json:"timeline_id"`
	Scenes     []SceneInput   `json:"scenes,omitempty"`
	Options    *LayoutOptions `json:"options,omitempty"`
}

// LayoutResult is everything the renderer needs for one redraw.
type LayoutResult struct {
	TimelineID      string                             `json:"timeline_id"`
	SceneCount      int                                `json:"scene_count"`
	Span            chronology.TimeSpanInfo            `json:"span"`
	Ticks           []chronology.ChronologicalTickInfo `json:"ticks"`
	Labels          []chronology.TimeLabelInfo         `json:"labels,omitempty"`
	Discontinuities []int                              `json:"discontinuities,omitempty"`
	Overlaps        []int                              `json:"overlaps,omitempty"`
}

// AnomalyReport bundles both detector outputs.
type AnomalyReport struct {
	Discontinuities []int `json:"discontinuities,omitempty"`
	Overlaps        []int `json:"overlaps,omitempty"`
}

// Items converts scene inputs to engine timeline items.
func Items(scenes []SceneInput) []chronology.TimelineItem {
	items := make([]chronology.TimelineItem, len(scenes))
	for i, scene := range scenes {
		items[i] = chronology.TimelineItem{
			Title:    scene.Title,
			When:     scene.When,
			Duration: scene.Duration,
		}
	}
	return items
}

// TickOptions converts request options to engine layout options.
func TickOptions(opts *LayoutOptions) *chronology.TickLayoutOptions {
	if opts == nil {
		return nil
	}
	return &chronology.TickLayoutOptions{
		StartAngles:   opts.StartAngles,
		AngularSize:   opts.AngularSize,
		MaxMajorTicks: opts.MaxMajorTicks,
	}
}
