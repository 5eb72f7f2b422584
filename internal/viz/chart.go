// Package viz renders a planned trajectory as a standalone HTML chart. It is
// a debugging and review aid, not part of the planning engine.
package viz

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wallbotics/coverage-planner/internal/planner"
)

// Render writes an HTML page with the tool path and obstacle outlines. The
// path series follows the actual tool motion: every segment start in order,
// closed with the final segment end.
func Render(w io.Writer, wallWidth, wallHeight float64, obstacles []planner.Obstacle, segments []planner.Segment) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Coverage trajectory",
			Subtitle: fmt.Sprintf("wall %.2fx%.2fm, %d segments, %d obstacles", wallWidth, wallHeight, len(segments), len(obstacles)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: wallWidth}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: wallHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	path := make([]opts.LineData, 0, len(segments)+1)
	for _, seg := range segments {
		path = append(path, opts.LineData{Value: []interface{}{seg.Start.X, seg.Start.Y}})
	}
	if n := len(segments); n > 0 {
		path = append(path, opts.LineData{Value: []interface{}{segments[n-1].End.X, segments[n-1].End.Y}})
	}
	line.AddSeries("tool path", path,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	for i, obs := range obstacles {
		outline := []opts.LineData{
			{Value: []interface{}{obs.Left(), obs.Bottom()}},
			{Value: []interface{}{obs.Right(), obs.Bottom()}},
			{Value: []interface{}{obs.Right(), obs.Top()}},
			{Value: []interface{}{obs.Left(), obs.Top()}},
			{Value: []interface{}{obs.Left(), obs.Bottom()}},
		}
		line.AddSeries(fmt.Sprintf("obstacle %d", i), outline,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}

	return line.Render(w)
}
