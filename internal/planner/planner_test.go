package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlan_OpenWall covers a 5x5 wall with no obstacles: a single cell filled
// by eleven coverage passes and no transitions.
func TestPlan_OpenWall(t *testing.T) {
	res := New(5, 5, 0.5, nil).Plan()

	assert.Equal(t, 1, res.Metrics.NumCells)
	require.Len(t, res.Segments, 11)
	for i, seg := range res.Segments {
		assert.Equal(t, SegmentCoverage, seg.Type)
		assert.InDelta(t, 0.25+float64(i)*0.475, seg.Start.Y, 1e-9)
	}
	assert.Zero(t, res.Metrics.TransitionLength)
	assert.InDelta(t, 55.0, res.Metrics.CoverageLength, 1e-9) // 11 passes of 5m
	assert.Equal(t, res.Metrics.CoverageLength, res.Metrics.TotalLength)
	assert.Greater(t, res.Metrics.CoveragePercentage, 0.0)
}

// TestPlan_CentredObstacle covers a 5x5 wall with one centred obstacle: four
// cells and at least one transition between them.
func TestPlan_CentredObstacle(t *testing.T) {
	obstacles := []Obstacle{{X: 2, Y: 2, Width: 1, Height: 1}}
	res := New(5, 5, 0.5, obstacles).Plan()

	assert.Equal(t, 4, res.Metrics.NumCells)
	require.Len(t, res.Cells, 4)

	transitions := 0
	for _, seg := range res.Segments {
		if seg.Type == SegmentTransition {
			transitions++
			assert.Nil(t, seg.CellID)
		}
	}
	assert.Equal(t, 3, transitions, "one transition between each pair of consecutive cells")
	assert.Greater(t, res.Metrics.TransitionLength, 0.0)
}

// TestPlan_FullyBlockedWall verifies a wall entirely covered by an obstacle
// yields an empty plan with zeroed metrics and no division by zero.
func TestPlan_FullyBlockedWall(t *testing.T) {
	obstacles := []Obstacle{{X: 0, Y: 0, Width: 1, Height: 1}}
	res := New(1, 1, 0.1, obstacles).Plan()

	assert.Equal(t, 0, res.Metrics.NumCells)
	assert.Empty(t, res.Segments)
	assert.Zero(t, res.Metrics.TotalLength)
	assert.Zero(t, res.Metrics.CoveragePercentage)
}

// TestPlan_SymmetricObstacles bounds the heuristic's inefficiency on a wall
// with four symmetric obstacles: transitions must stay under half the total.
func TestPlan_SymmetricObstacles(t *testing.T) {
	obstacles := []Obstacle{
		{X: 1, Y: 1, Width: 0.5, Height: 0.5},
		{X: 3.5, Y: 1, Width: 0.5, Height: 0.5},
		{X: 1, Y: 3.5, Width: 0.5, Height: 0.5},
		{X: 3.5, Y: 3.5, Width: 0.5, Height: 0.5},
	}
	res := New(5, 5, 0.25, obstacles).Plan()

	require.Greater(t, res.Metrics.TotalLength, 0.0)
	assert.Less(t, res.Metrics.TransitionLength, 0.5*res.Metrics.TotalLength)
}

// TestPlan_TransitionsConnectCells verifies each transition starts at the
// previous cell's exit and ends at the next cell's entry, so the assembled
// path is a continuous tool motion across cells.
func TestPlan_TransitionsConnectCells(t *testing.T) {
	obstacles := []Obstacle{{X: 2, Y: 2, Width: 1, Height: 1}}
	res := New(5, 5, 0.5, obstacles).Plan()

	for i, seg := range res.Segments {
		if seg.Type != SegmentTransition {
			continue
		}
		require.Greater(t, i, 0)
		require.Less(t, i, len(res.Segments)-1)
		assert.Equal(t, res.Segments[i-1].End, seg.Start)
		assert.Equal(t, res.Segments[i+1].Start, seg.End)
	}
}

// TestPlan_MetricsConsistency verifies the total is the sum of its parts and
// the execution time is recorded.
func TestPlan_MetricsConsistency(t *testing.T) {
	obstacles := []Obstacle{{X: 1, Y: 1, Width: 2, Height: 1}}
	res := New(6, 4, 0.3, obstacles).Plan()

	m := res.Metrics
	assert.InDelta(t, m.CoverageLength+m.TransitionLength, m.TotalLength, 1e-9)
	assert.GreaterOrEqual(t, m.ExecutionTimeMs, 0.0)
}
