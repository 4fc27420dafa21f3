package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// Workflow IDs
	LayoutWorkflowIDPrefix = "layout-"

	// Activity names
	LoadScenesActivityName      = "load-scenes"
	BuildLayoutActivityName     = "build-layout"
	DetectAnomaliesActivityName = "detect-anomalies"

	// DefaultLabelCount is how many axis labels a layout pass emits when the
	// request does not say otherwise.
	DefaultLabelCount = 6
)

// LayoutWorkflow computes a full radial layout for one timeline: load scenes
// if the request carries none, build the tick/label layout, then run the
// anomaly detectors over the same scene sequence.
func LayoutWorkflow(ctx workflow.Context, request LayoutRequest) (*LayoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting layout workflow", "timelineID", request.TimelineID)

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	scenes := request.Scenes
	if len(scenes) == 0 {
		err := workflow.ExecuteActivity(ctx, LoadScenesActivityName, request.TimelineID).Get(ctx, &scenes)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenes: %w", err)
		}
		logger.Info("Loaded scenes from store", "timelineID", request.TimelineID, "count", len(scenes))
	}

	var result *LayoutResult
	err := workflow.ExecuteActivity(ctx, BuildLayoutActivityName, request.TimelineID, scenes, request.Options).Get(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to build layout: %w", err)
	}

	var anomalies *AnomalyReport
	threshold := 0.0
	if request.Options != nil {
		threshold = request.Options.DiscontinuityThreshold
	}
	err = workflow.ExecuteActivity(ctx, DetectAnomaliesActivityName, scenes, threshold).Get(ctx, &anomalies)
	if err != nil {
		return nil, fmt.Errorf("failed to detect anomalies: %w", err)
	}
	result.Discontinuities = anomalies.Discontinuities
	result.Overlaps = anomalies.Overlaps

	logger.Info("Layout completed",
		"timelineID", request.TimelineID,
		"ticks", len(result.Ticks),
		"discontinuities", len(result.Discontinuities),
		"overlaps", len(result.Overlaps),
	)
	return result, nil
}

// GenerateLayoutWorkflowID creates a workflow ID for a layout pass.
func GenerateLayoutWorkflowID(timelineID string) string {
	return fmt.Sprintf("%s%s-%d", LayoutWorkflowIDPrefix, timelineID, time.Now().UnixNano())
}
