package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/leowmjw/go-radial-chronology/pkg/chronology"
	"github.com/leowmjw/go-radial-chronology/pkg/temporal"
)

// HCLTimeline represents a timeline definition file: an ordered set of scene
// blocks plus optional layout tuning.
type HCLTimeline struct {
	TimelineID string     `hcl:"timeline_id"`
	Scenes     []HCLScene `hcl:"scene,block"`
	Layout     *HCLLayout `hcl:"layout,block"`
}

// HCLScene is a single scene block. When and duration stay raw strings; the
// engine parses them and quietly skips what it cannot read.
type HCLScene struct {
	Label    string  `hcl:"label,label"`
	Title    *string `hcl:"title,optional"`
	When     *string `hcl:"when,optional"`
	Duration *string `hcl:"duration,optional"`
}

// HCLLayout tunes the layout pass.
type HCLLayout struct {
	MaxMajorTicks          *int      `hcl:"max_major_ticks,optional"`
	AngularSize            *float64  `hcl:"angular_size,optional"`
	DiscontinuityThreshold *float64  `hcl:"discontinuity_threshold,optional"`
	StartAngles            []float64 `hcl:"start_angles,optional"`
	LabelCount             *int      `hcl:"label_count,optional"`
}

// evalContext exposes helper functions to timeline files. duration() runs
// the engine's own duration grammar and yields milliseconds, so layout files
// can write angular_size math or thresholds in author-friendly units.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"duration": function.New(&function.Spec{
				Params: []function.Parameter{
					{
						Name: "duration",
						Type: cty.String,
					},
				},
				Type: function.StaticReturnType(cty.Number),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					ms, ok := chronology.ParseDuration(args[0].AsString())
					if !ok {
						return cty.NilVal, fmt.Errorf("invalid duration %q", args[0].AsString())
					}
					return cty.NumberFloatVal(ms), nil
				},
			}),
		},
	}
}

// ParseHCLTimeline parses HCL content and converts it to a
// temporal.LayoutRequest.
func ParseHCLTimeline(hclContent string) (*temporal.LayoutRequest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(hclContent), "timeline.hcl")

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return parseTimelineFromFile(file)
}

// parseTimelineFromFile decodes a layout request from an HCL file object.
func parseTimelineFromFile(file *hcl.File) (*temporal.LayoutRequest, error) {
	evalCtx := evalContext()

	var hclTimeline HCLTimeline
	diags := gohcl.DecodeBody(file.Body, evalCtx, &hclTimeline)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}

	return convertHCLTimeline(&hclTimeline)
}

// convertHCLTimeline converts the HCL structures to a temporal.LayoutRequest.
func convertHCLTimeline(hclTimeline *HCLTimeline) (*temporal.LayoutRequest, error) {
	request := &temporal.LayoutRequest{
		TimelineID: hclTimeline.TimelineID,
		Scenes:     make([]temporal.SceneInput, 0, len(hclTimeline.Scenes)),
	}

	for _, hclScene := range hclTimeline.Scenes {
		scene := temporal.SceneInput{
			Title: hclScene.Label,
		}
		if hclScene.Title != nil {
			scene.Title = *hclScene.Title
		}
		if hclScene.When != nil {
			scene.When = *hclScene.When
		}
		if hclScene.Duration != nil {
			scene.Duration = *hclScene.Duration
		}
		request.Scenes = append(request.Scenes, scene)
	}

	if hclTimeline.Layout != nil {
		opts := &temporal.LayoutOptions{}
		if hclTimeline.Layout.MaxMajorTicks != nil {
			opts.MaxMajorTicks = *hclTimeline.Layout.MaxMajorTicks
		}
		if hclTimeline.Layout.AngularSize != nil {
			opts.AngularSize = *hclTimeline.Layout.AngularSize
		}
		if hclTimeline.Layout.DiscontinuityThreshold != nil {
			opts.DiscontinuityThreshold = *hclTimeline.Layout.DiscontinuityThreshold
		}
		if len(hclTimeline.Layout.StartAngles) > 0 {
			if len(hclTimeline.Layout.StartAngles) != len(request.Scenes) {
				return nil, fmt.Errorf("start_angles has %d entries for %d scenes",
					len(hclTimeline.Layout.StartAngles), len(request.Scenes))
			}
			opts.StartAngles = hclTimeline.Layout.StartAngles
		}
		if hclTimeline.Layout.LabelCount != nil {
			opts.LabelCount = *hclTimeline.Layout.LabelCount
		}
		request.Options = opts
	}

	return request, nil
}

// IsHCL attempts to detect if the given content is in HCL format
func IsHCL(content []byte) bool {
	_, err := hclsyntax.ParseConfig(content, "", hcl.Pos{Line: 1, Column: 1})
	return err == nil
}
