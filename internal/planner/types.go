package planner

import "math"

// Tunable engine constants. These are fixed defaults of the algorithm; they are
// named here rather than inlined so they can be adjusted without touching the
// phase implementations.
const (
	// Epsilon is the geometric tolerance used when comparing coordinates.
	// Slices or spans thinner than this are dropped as degenerate.
	Epsilon = 1e-6

	// OverlapFraction is the fraction of the tool width reserved as overlap
	// between adjacent passes so floating-point endpoint placement can never
	// leave an uncovered seam.
	OverlapFraction = 0.05

	// MaxTwoOptIterations caps the number of accepted 2-opt improvements
	// during tour refinement.
	MaxTwoOptIterations = 50
)

// Point is a position on the wall plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Obstacle is an axis-aligned rectangular obstruction on the wall, anchored at
// its bottom-left corner.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Left returns the x-coordinate of the obstacle's left edge.
func (o Obstacle) Left() float64 { return o.X }

// Right returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 { return o.X + o.Width }

// Bottom returns the y-coordinate of the obstacle's bottom edge.
func (o Obstacle) Bottom() float64 { return o.Y }

// Top returns the y-coordinate of the obstacle's top edge.
func (o Obstacle) Top() float64 { return o.Y + o.Height }

// Area returns the obstacle's rectangular area.
func (o Obstacle) Area() float64 { return o.Width * o.Height }

// Cell is a maximal obstacle-free rectangle produced by decomposition.
type Cell struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	ID     int     `json:"id"`
}

// Width returns the cell's horizontal extent.
func (c Cell) Width() float64 { return c.Right - c.Left }

// Height returns the cell's vertical extent.
func (c Cell) Height() float64 { return c.Top - c.Bottom }

// Area returns the cell's rectangular area.
func (c Cell) Area() float64 { return c.Width() * c.Height() }

// Center returns the cell's geometric center.
func (c Cell) Center() Point {
	return Point{X: (c.Left + c.Right) / 2, Y: (c.Bottom + c.Top) / 2}
}

// SegmentType distinguishes productive coverage moves from transitions between
// cells.
type SegmentType string

// Segment type values.
const (
	SegmentCoverage   SegmentType = "coverage"
	SegmentTransition SegmentType = "transition"
)

// Segment is a directed straight-line move of the tool.
type Segment struct {
	Start  Point       `json:"start"`
	End    Point       `json:"end"`
	Type   SegmentType `json:"type"`
	CellID *int        `json:"cell_id,omitempty"` // nil for transition segments
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Metrics aggregates the derived figures of a completed plan.
type Metrics struct {
	NumCells           int     `json:"num_cells"`
	TotalLength        float64 `json:"total_length"`
	CoverageLength     float64 `json:"coverage_length"`
	TransitionLength   float64 `json:"transition_length"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	ExecutionTimeMs    float64 `json:"execution_time_ms"`
}
