package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/leowmjw/go-radial-chronology/pkg/hcl"
	"github.com/leowmjw/go-radial-chronology/pkg/temporal"
)

func main() {
	// Set up logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Define command line flags
	var (
		path        string
		displayJSON bool
	)

	flag.StringVar(&path, "path", "", "Path to HCL timeline file or directory (required)")
	flag.BoolVar(&displayJSON, "json", false, "Display results as JSON")
	flag.Parse()

	if path == "" {
		logger.Error("Path parameter is required")
		flag.Usage()
		os.Exit(1)
	}

	request, err := loadRequest(path)
	if err != nil {
		logger.Error("Failed to load timeline", "path", path, "error", err)
		os.Exit(1)
	}

	logger.Info("Loaded timeline",
		"timeline_id", request.TimelineID,
		"scenes", len(request.Scenes))

	// Run the engine in-process; no Temporal server needed for a one-shot pass.
	activities := temporal.NewActivitiesImpl(logger, temporal.NewMockSceneStore())
	ctx := context.Background()

	result, err := activities.BuildLayoutActivity(ctx, request.TimelineID, request.Scenes, request.Options)
	if err != nil {
		logger.Error("Layout failed", "error", err)
		os.Exit(1)
	}

	threshold := 0.0
	if request.Options != nil {
		threshold = request.Options.DiscontinuityThreshold
	}
	report, err := activities.DetectAnomaliesActivity(ctx, request.Scenes, threshold)
	if err != nil {
		logger.Error("Anomaly detection failed", "error", err)
		os.Exit(1)
	}
	result.Discontinuities = report.Discontinuities
	result.Overlaps = report.Overlaps

	displayResult(result, request, displayJSON, logger)
}

// loadRequest parses a single HCL file or merges a directory of them.
func loadRequest(path string) (*temporal.LayoutRequest, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if fileInfo.IsDir() {
		return hcl.ParseHCLDirectory(path)
	}

	if !hcl.IsHCLBasedOnExtension(path) {
		return nil, fmt.Errorf("file %s does not have an HCL extension", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return hcl.ParseHCLTimeline(string(content))
}

// displayResult shows the layout in human-readable or JSON format
func displayResult(result *temporal.LayoutResult, request *temporal.LayoutRequest, jsonOutput bool, logger *slog.Logger) {
	if jsonOutput {
		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Error("Failed to marshal result to JSON", "error", err)
			fmt.Printf("%+v\n", result)
		} else {
			fmt.Println(string(resultJSON))
		}
		return
	}

	fmt.Printf("Timeline %q: %d scenes over %s\n",
		result.TimelineID, result.SceneCount, describeSpan(result))

	fmt.Println("Ticks:")
	for _, tick := range result.Ticks {
		marker := " "
		if tick.IsMajor {
			marker = "*"
		}
		name := strings.ReplaceAll(tick.Name, "\n", " ")
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %s %7.2f° %s\n", marker, degrees(tick.Angle), name)
	}

	if len(result.Labels) > 0 {
		fmt.Println("Axis labels:")
		for _, label := range result.Labels {
			fmt.Printf("    %7.2f° %s\n", degrees(label.Angle), label.Text)
		}
	}

	for _, idx := range result.Discontinuities {
		fmt.Printf("Discontinuity: unusually long gap before scene %d (%s)\n",
			idx, sceneTitle(request, idx))
	}
	for _, idx := range result.Overlaps {
		fmt.Printf("Overlap: scene %d (%s) runs past the next scene's start\n",
			idx, sceneTitle(request, idx))
	}
}

func describeSpan(result *temporal.LayoutResult) string {
	span := result.Span
	switch span.RecommendedUnit {
	case "minutes":
		return fmt.Sprintf("%.0f minutes", span.Minutes)
	case "hours":
		return fmt.Sprintf("%.1f hours", span.Hours)
	case "days":
		return fmt.Sprintf("%.1f days", span.Days)
	case "weeks":
		return fmt.Sprintf("%.1f weeks", span.Weeks)
	case "months":
		return fmt.Sprintf("%.1f months", span.Months)
	default:
		return fmt.Sprintf("%.1f years", span.Years)
	}
}

func degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

func sceneTitle(request *temporal.LayoutRequest, idx int) string {
	if idx >= 0 && idx < len(request.Scenes) && request.Scenes[idx].Title != "" {
		return request.Scenes[idx].Title
	}
	return "untitled"
}
