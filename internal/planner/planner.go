// Package planner implements boustrophedon coverage path planning for a
// rectangular wall with rectangular obstacles.
//
// Planning runs four phases in sequence: cell decomposition (vertical sweep
// line), per-cell boustrophedon pattern generation, cell visiting-order
// optimization (nearest neighbour + 2-opt), and path assembly with transition
// segments and aggregate metrics.
package planner

import (
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Planner computes a coverage path for one wall. A Planner is cheap to
// construct and intended for a single Plan call; it holds no state across
// calls, but a single instance must not run two plans concurrently.
type Planner struct {
	wallWidth  float64
	wallHeight float64
	toolWidth  float64
	obstacles  []Obstacle
}

// Result is the outcome of a planning run.
type Result struct {
	Segments []Segment `json:"segments"`
	Cells    []Cell    `json:"cells"`
	Metrics  Metrics   `json:"metrics"`
}

// New creates a planner for a wall of the given dimensions. The caller is
// responsible for ensuring dimensions and tool width are positive and that
// obstacles lie within the wall; the planner handles overlapping obstacles
// and fully blocked walls without error.
func New(wallWidth, wallHeight, toolWidth float64, obstacles []Obstacle) *Planner {
	return &Planner{
		wallWidth:  wallWidth,
		wallHeight: wallHeight,
		toolWidth:  toolWidth,
		obstacles:  obstacles,
	}
}

// Plan runs the full four-phase computation and returns the assembled path
// with metrics. It is total: any geometrically valid input produces a result,
// including zero cells when obstacles cover the whole wall.
func (p *Planner) Plan() *Result {
	start := time.Now()

	cells := p.decomposeCells()

	// Patterns are independent given a cell, so this is the one phase that
	// may run concurrently. Cell ids are assigned sequentially in discovery
	// order and index the pattern slice directly.
	patterns := make([][]Segment, len(cells))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range cells {
		g.Go(func() error {
			patterns[cells[i].ID] = p.generatePattern(cells[i])
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	order := p.orderCells(cells, patterns)
	path := p.assemblePath(cells, patterns, order)

	return &Result{
		Segments: path,
		Cells:    cells,
		Metrics:  p.computeMetrics(cells, path, time.Since(start)),
	}
}

// roundTo2 rounds to two decimal places, used for the reported execution time.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
