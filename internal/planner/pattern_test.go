package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPattern_HorizontalAndWithinBounds verifies every generated pass is
// horizontal and stays inside the cell rectangle.
func TestPattern_HorizontalAndWithinBounds(t *testing.T) {
	p := New(10, 10, 0.5, nil)
	cell := Cell{Left: 1, Right: 4, Bottom: 2, Top: 7, ID: 0}

	pattern := p.generatePattern(cell)
	require.NotEmpty(t, pattern)

	for _, seg := range pattern {
		assert.Equal(t, SegmentCoverage, seg.Type)
		assert.Equal(t, seg.Start.Y, seg.End.Y, "coverage pass must be horizontal")
		assert.GreaterOrEqual(t, seg.Start.Y, cell.Bottom)
		assert.LessOrEqual(t, seg.Start.Y, cell.Top+Epsilon)
		for _, x := range []float64{seg.Start.X, seg.End.X} {
			assert.GreaterOrEqual(t, x, cell.Left)
			assert.LessOrEqual(t, x, cell.Right)
		}
		require.NotNil(t, seg.CellID)
		assert.Equal(t, cell.ID, *seg.CellID)
	}
}

// TestPattern_AlternatesDirection verifies the boustrophedon direction flip:
// first pass left-to-right, second right-to-left.
func TestPattern_AlternatesDirection(t *testing.T) {
	p := New(10, 10, 0.5, nil)
	cell := Cell{Left: 0, Right: 3, Bottom: 0, Top: 2, ID: 0}

	pattern := p.generatePattern(cell)
	require.GreaterOrEqual(t, len(pattern), 2)

	assert.Equal(t, 0.0, pattern[0].Start.X)
	assert.Equal(t, 3.0, pattern[0].End.X)
	assert.Equal(t, 3.0, pattern[1].Start.X)
	assert.Equal(t, 0.0, pattern[1].End.X)
}

// TestPattern_LineSpacing checks the exact pass placement for a 5x5 cell with
// a 0.5 tool: 11 lines starting at 0.25, spaced by the effective width 0.475.
func TestPattern_LineSpacing(t *testing.T) {
	p := New(5, 5, 0.5, nil)
	cell := Cell{Left: 0, Right: 5, Bottom: 0, Top: 5, ID: 0}

	pattern := p.generatePattern(cell)
	require.Len(t, pattern, 11)

	for i, seg := range pattern {
		assert.InDelta(t, 0.25+float64(i)*0.475, seg.Start.Y, 1e-9)
	}
}

// TestPattern_ShortCellSinglePass verifies a cell shorter than the tool width
// still gets exactly one centred pass when the centre line fits.
func TestPattern_ShortCellSinglePass(t *testing.T) {
	p := New(10, 10, 0.5, nil)
	cell := Cell{Left: 0, Right: 2, Bottom: 1, Top: 1.3, ID: 0}

	pattern := p.generatePattern(cell)
	require.Len(t, pattern, 1)
	assert.InDelta(t, 1.25, pattern[0].Start.Y, 1e-9)
}

// TestPattern_TooShortCellEmpty verifies a cell too short for even one centred
// pass produces an empty pattern.
func TestPattern_TooShortCellEmpty(t *testing.T) {
	p := New(10, 10, 0.5, nil)
	cell := Cell{Left: 0, Right: 2, Bottom: 1, Top: 1.2, ID: 0}

	assert.Empty(t, p.generatePattern(cell))
}
