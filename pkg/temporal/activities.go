package temporal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leowmjw/go-radial-chronology/pkg/chronology"
)

// Activities interface defines all the activities used by workflows
type Activities interface {
	LoadScenesActivity(ctx context.Context, timelineID string) ([]SceneInput, error)
	BuildLayoutActivity(ctx context.Context, timelineID string, scenes []SceneInput, opts *LayoutOptions) (*LayoutResult, error)
	DetectAnomaliesActivity(ctx context.Context, scenes []SceneInput, threshold float64) (*AnomalyReport, error)
}

// SceneStore defines the interface to the note-storage collaborator that
// holds each timeline's scenes. The layout service only ever reads.
type SceneStore interface {
	LoadScenes(ctx context.Context, timelineID string) ([]SceneInput, error)
}

// ActivitiesImpl implements the Activities interface
type ActivitiesImpl struct {
	logger *slog.Logger
	store  SceneStore
}

// NewActivitiesImpl creates a new activities implementation
func NewActivitiesImpl(logger *slog.Logger, store SceneStore) *ActivitiesImpl {
	return &ActivitiesImpl{
		logger: logger,
		store:  store,
	}
}

// LoadScenesActivity fetches a timeline's scenes from the scene store.
func (a *ActivitiesImpl) LoadScenesActivity(ctx context.Context, timelineID string) ([]SceneInput, error) {
	a.logger.Info("Loading scenes", "timelineID", timelineID)

	scenes, err := a.store.LoadScenes(ctx, timelineID)
	if err != nil {
		a.logger.Error("Failed to load scenes", "error", err)
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}

	a.logger.Info("Successfully loaded scenes", "timelineID", timelineID, "count", len(scenes))
	return scenes, nil
}

// BuildLayoutActivity runs the layout engine over the scene sequence: span
// analysis, tick generation and axis labels. Undated scenes are skipped by
// the engine, never fatal.
func (a *ActivitiesImpl) BuildLayoutActivity(ctx context.Context, timelineID string, scenes []SceneInput, opts *LayoutOptions) (*LayoutResult, error) {
	a.logger.Info("Building layout", "timelineID", timelineID, "sceneCount", len(scenes))

	items := Items(scenes)

	var instants []time.Time
	for _, item := range items {
		instant, err := chronology.ParseWhen(item.When)
		if err != nil {
			continue
		}
		instants = append(instants, instant)
	}

	labelCount := DefaultLabelCount
	if opts != nil && opts.LabelCount > 0 {
		labelCount = opts.LabelCount
	}

	result := &LayoutResult{
		TimelineID: timelineID,
		SceneCount: len(scenes),
		Span:       chronology.CalculateTimeSpan(instants),
		Ticks:      chronology.GenerateChronologicalTicks(items, TickOptions(opts)),
		Labels:     chronology.GenerateTimeLabels(instants, labelCount),
	}

	a.logger.Info("Layout built",
		"timelineID", timelineID,
		"datedScenes", len(instants),
		"ticks", len(result.Ticks),
		"recommendedUnit", result.Span.RecommendedUnit,
	)
	return result, nil
}

// DetectAnomaliesActivity runs both anomaly detectors over the scene
// sequence.
func (a *ActivitiesImpl) DetectAnomaliesActivity(ctx context.Context, scenes []SceneInput, threshold float64) (*AnomalyReport, error) {
	items := Items(scenes)

	report := &AnomalyReport{
		Discontinuities: chronology.DetectDiscontinuities(items, threshold),
		Overlaps:        chronology.DetectSceneOverlaps(items),
	}

	a.logger.Info("Anomaly detection completed",
		"discontinuities", len(report.Discontinuities),
		"overlaps", len(report.Overlaps),
	)
	return report, nil
}
