package planner

import (
	"math"
	"sort"
)

// span is a vertical interval inside one slice.
type span struct {
	bottom float64
	top    float64
}

// decomposeCells partitions the wall into obstacle-free cells using a vertical
// sweep line. Critical x-coordinates are the wall edges plus every obstacle's
// left and right edge; each pair of consecutive critical coordinates bounds a
// slice, and the free vertical spans within a slice become cells. Ids are
// assigned sequentially in slice-major discovery order.
func (p *Planner) decomposeCells() []Cell {
	critical := make([]float64, 0, 2+2*len(p.obstacles))
	critical = append(critical, 0, p.wallWidth)
	for _, obs := range p.obstacles {
		critical = append(critical, obs.Left(), obs.Right())
	}
	sort.Float64s(critical)

	// Drop exact duplicates from coincident obstacle edges.
	xs := critical[:1]
	for _, x := range critical[1:] {
		if x != xs[len(xs)-1] {
			xs = append(xs, x)
		}
	}

	var cells []Cell
	id := 0
	for i := 0; i < len(xs)-1; i++ {
		xLeft, xRight := xs[i], xs[i+1]
		if xRight-xLeft < Epsilon {
			// Degenerate slice from nearly coincident edges.
			continue
		}
		for _, s := range p.freeVerticalSpans(xLeft, xRight) {
			cells = append(cells, Cell{
				Left:   xLeft,
				Right:  xRight,
				Bottom: s.bottom,
				Top:    s.top,
				ID:     id,
			})
			id++
		}
	}
	return cells
}

// freeVerticalSpans returns the obstacle-free vertical intervals within the
// slice [xLeft, xRight). Obstacles touching the slice only at an edge do not
// block it. Overlapping or nested obstacle intervals are merged by sweeping a
// cursor upward over the bottom-sorted intervals.
func (p *Planner) freeVerticalSpans(xLeft, xRight float64) []span {
	var blocking []span
	for _, obs := range p.obstacles {
		if obs.Right() > xLeft && obs.Left() < xRight {
			blocking = append(blocking, span{bottom: obs.Bottom(), top: obs.Top()})
		}
	}
	sort.Slice(blocking, func(i, j int) bool {
		if blocking[i].bottom != blocking[j].bottom {
			return blocking[i].bottom < blocking[j].bottom
		}
		return blocking[i].top < blocking[j].top
	})

	var free []span
	y := 0.0
	for _, b := range blocking {
		if y < b.bottom-Epsilon {
			free = append(free, span{bottom: y, top: b.bottom})
		}
		y = math.Max(y, b.top)
	}
	if y < p.wallHeight-Epsilon {
		free = append(free, span{bottom: y, top: p.wallHeight})
	}
	return free
}
