package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCells_Empty(t *testing.T) {
	p := New(5, 5, 0.5, nil)
	assert.Nil(t, p.orderCells(nil, nil))
}

func TestOrderCells_Single(t *testing.T) {
	p := New(5, 5, 0.5, nil)
	cells := []Cell{{Left: 0, Right: 5, Bottom: 0, Top: 5, ID: 0}}
	patterns := [][]Segment{p.generatePattern(cells[0])}

	assert.Equal(t, []int{0}, p.orderCells(cells, patterns))
}

// TestOrderCells_StartsBottomLeft verifies the greedy construction starts from
// the cell with the lexicographically smallest (left, bottom) corner.
func TestOrderCells_StartsBottomLeft(t *testing.T) {
	p := New(10, 10, 0.5, nil)
	cells := []Cell{
		{Left: 6, Right: 10, Bottom: 0, Top: 10, ID: 0},
		{Left: 0, Right: 3, Bottom: 4, Top: 10, ID: 1},
		{Left: 0, Right: 3, Bottom: 0, Top: 4, ID: 2},
	}
	patterns := make([][]Segment, len(cells))
	for i, c := range cells {
		patterns[i] = p.generatePattern(c)
	}

	order := p.orderCells(cells, patterns)
	require.Len(t, order, 3)
	assert.Equal(t, 2, order[0])
}

// TestEntryExitPoints verifies the pattern endpoints are used when present and
// the cell centre is used for empty patterns.
func TestEntryExitPoints(t *testing.T) {
	cell := Cell{Left: 0, Right: 4, Bottom: 0, Top: 2, ID: 0}
	pattern := []Segment{
		{Start: Point{X: 0, Y: 0.5}, End: Point{X: 4, Y: 0.5}, Type: SegmentCoverage},
		{Start: Point{X: 4, Y: 1.0}, End: Point{X: 0, Y: 1.0}, Type: SegmentCoverage},
	}

	assert.Equal(t, Point{X: 0, Y: 0.5}, entryPoint(cell, pattern))
	assert.Equal(t, Point{X: 0, Y: 1.0}, exitPoint(cell, pattern))

	center := Point{X: 2, Y: 1}
	assert.Equal(t, center, entryPoint(cell, nil))
	assert.Equal(t, center, exitPoint(cell, nil))
}

// TestTwoOpt_NonRegression verifies refinement never increases the transition
// cost, even starting from a deliberately bad order.
func TestTwoOpt_NonRegression(t *testing.T) {
	p := New(20, 2, 0.5, nil)

	// A row of cells; the zig-zag order 0,3,1,4,2 is clearly improvable.
	var cells []Cell
	patterns := make([][]Segment, 5)
	for i := 0; i < 5; i++ {
		c := Cell{Left: float64(i * 4), Right: float64(i*4 + 4), Bottom: 0, Top: 2, ID: i}
		cells = append(cells, c)
		patterns[i] = p.generatePattern(c)
	}
	lookup := make(map[int]Cell, len(cells))
	for _, c := range cells {
		lookup[c.ID] = c
	}

	bad := []int{0, 3, 1, 4, 2}
	badCost := p.orderCost(bad, lookup, patterns)

	improved := p.twoOptImprove(bad, cells, patterns)
	improvedCost := p.orderCost(improved, lookup, patterns)

	assert.LessOrEqual(t, improvedCost, badCost)
	assert.ElementsMatch(t, bad, improved, "2-opt must keep the same cell set")
}

// TestTwoOpt_Deterministic verifies repeated runs on the same input produce
// the same order.
func TestTwoOpt_Deterministic(t *testing.T) {
	obstacles := []Obstacle{
		{X: 1, Y: 1, Width: 1, Height: 1},
		{X: 3, Y: 3, Width: 1, Height: 1},
	}
	p := New(5, 5, 0.25, obstacles)
	cells := p.decomposeCells()
	patterns := make([][]Segment, len(cells))
	for i, c := range cells {
		patterns[i] = p.generatePattern(c)
	}

	first := p.orderCells(cells, patterns)
	second := p.orderCells(cells, patterns)
	assert.Equal(t, first, second)
}
