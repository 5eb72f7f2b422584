package planner

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// assemblePath concatenates per-cell patterns in tour order, inserting exactly
// one transition segment between consecutive cells.
func (p *Planner) assemblePath(cells []Cell, patterns [][]Segment, order []int) []Segment {
	lookup := make(map[int]Cell, len(cells))
	for _, c := range cells {
		lookup[c.ID] = c
	}

	var path []Segment
	for i, id := range order {
		path = append(path, patterns[id]...)
		if i < len(order)-1 {
			nextID := order[i+1]
			path = append(path, Segment{
				Start: exitPoint(lookup[id], patterns[id]),
				End:   entryPoint(lookup[nextID], patterns[nextID]),
				Type:  SegmentTransition,
			})
		}
	}
	return path
}

// computeMetrics derives the aggregate figures for an assembled path. The
// coverage percentage compares the theoretical minimum path length (free area
// divided by tool width) against the actual total. Obstacle areas are summed
// individually, so overlapping obstacles over-count blocked area; the figure
// is an efficiency estimate, kept as-is for compatibility with stored
// trajectories.
func (p *Planner) computeMetrics(cells []Cell, path []Segment, elapsed time.Duration) Metrics {
	coverageLens := make([]float64, 0, len(path))
	transitionLens := make([]float64, 0, len(path))
	for _, s := range path {
		switch s.Type {
		case SegmentCoverage:
			coverageLens = append(coverageLens, s.Length())
		case SegmentTransition:
			transitionLens = append(transitionLens, s.Length())
		}
	}
	coverageLength := floats.Sum(coverageLens)
	transitionLength := floats.Sum(transitionLens)
	totalLength := coverageLength + transitionLength

	wallArea := p.wallWidth * p.wallHeight
	obstacleArea := 0.0
	for _, obs := range p.obstacles {
		obstacleArea += obs.Area()
	}
	coverageArea := wallArea - obstacleArea
	theoreticalMin := coverageArea / p.toolWidth

	coveragePercentage := 0.0
	if totalLength > 0 {
		coveragePercentage = theoreticalMin / totalLength * 100
	}

	return Metrics{
		NumCells:           len(cells),
		TotalLength:        totalLength,
		CoverageLength:     coverageLength,
		TransitionLength:   transitionLength,
		CoveragePercentage: coveragePercentage,
		ExecutionTimeMs:    roundTo2(float64(elapsed.Microseconds()) / 1000),
	}
}
