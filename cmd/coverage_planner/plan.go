package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallbotics/coverage-planner/internal/planner"
	"github.com/wallbotics/coverage-planner/internal/types"
	"github.com/wallbotics/coverage-planner/internal/viz"
)

var (
	planWidth     float64
	planHeight    float64
	planTool      float64
	planObstacles string
	planChart     string
	planSegments  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a one-shot coverage plan without the server",
	Long: `Compute a coverage path for a wall and print the metrics.
Obstacles are read from a JSON file containing an array of {x, y, width, height} rectangles.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Float64Var(&planWidth, "width", 0, "Wall width in metres (required)")
	planCmd.Flags().Float64Var(&planHeight, "height", 0, "Wall height in metres (required)")
	planCmd.Flags().Float64Var(&planTool, "tool", 0, "Tool width in metres (required)")
	planCmd.Flags().StringVar(&planObstacles, "obstacles", "", "Path to JSON obstacle file")
	planCmd.Flags().StringVar(&planChart, "chart", "", "Write an HTML chart of the trajectory to this path")
	planCmd.Flags().StringVar(&planSegments, "segments", "", "Write the segment list as JSON to this path")
	_ = planCmd.MarkFlagRequired("width")
	_ = planCmd.MarkFlagRequired("height")
	_ = planCmd.MarkFlagRequired("tool")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	req := types.PlanRequest{
		WallWidth:  planWidth,
		WallHeight: planHeight,
		ToolWidth:  planTool,
	}
	if planObstacles != "" {
		data, err := os.ReadFile(planObstacles)
		if err != nil {
			return fmt.Errorf("failed to read obstacle file: %w", err)
		}
		if err := json.Unmarshal(data, &req.Obstacles); err != nil {
			return fmt.Errorf("failed to parse obstacle file: %w", err)
		}
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid plan request: %w", err)
	}

	obstacles := make([]planner.Obstacle, 0, len(req.Obstacles))
	for _, obs := range req.Obstacles {
		obstacles = append(obstacles, planner.Obstacle{X: obs.X, Y: obs.Y, Width: obs.Width, Height: obs.Height})
	}
	res := planner.New(req.WallWidth, req.WallHeight, req.ToolWidth, obstacles).Plan()

	m := res.Metrics
	fmt.Printf("Cells:               %d\n", m.NumCells)
	fmt.Printf("Segments:            %d\n", len(res.Segments))
	fmt.Printf("Total length:        %.3f m\n", m.TotalLength)
	fmt.Printf("Coverage length:     %.3f m\n", m.CoverageLength)
	fmt.Printf("Transition length:   %.3f m\n", m.TransitionLength)
	fmt.Printf("Coverage efficiency: %.1f %%\n", m.CoveragePercentage)
	fmt.Printf("Planning time:       %.2f ms\n", m.ExecutionTimeMs)

	if planSegments != "" {
		data, err := json.MarshalIndent(res.Segments, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		if err := os.WriteFile(planSegments, data, 0o644); err != nil {
			return fmt.Errorf("failed to write segments file: %w", err)
		}
	}

	if planChart != "" {
		f, err := os.Create(planChart)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		defer f.Close()
		if err := viz.Render(f, req.WallWidth, req.WallHeight, obstacles, res.Segments); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
	}

	return nil
}
