// Package store persists walls, obstacles and planned trajectories. Two
// backends implement the same interface: SQLite for single-node deployments
// and PostgreSQL for shared ones.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Wall is a stored finishing surface.
type Wall struct {
	ID        uuid.UUID `json:"id"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// Obstacle is a stored rectangular obstruction belonging to a wall.
type Obstacle struct {
	ID     uuid.UUID `json:"id"`
	WallID uuid.UUID `json:"wall_id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Trajectory is the stored metadata of one planning run.
type Trajectory struct {
	ID                 uuid.UUID `json:"id"`
	WallID             uuid.UUID `json:"wall_id"`
	ToolWidth          float64   `json:"tool_width"`
	TotalLength        float64   `json:"total_length"`
	CoverageLength     float64   `json:"coverage_length"`
	TransitionLength   float64   `json:"transition_length"`
	CoveragePercentage float64   `json:"coverage_percentage"`
	ExecutionTimeMs    float64   `json:"execution_time_ms"`
	NumCells           int       `json:"num_cells"`
	CreatedAt          time.Time `json:"created_at"`
}

// SegmentRecord is one stored path segment, ordered by Sequence within its
// trajectory. CellID is nil for transition segments.
type SegmentRecord struct {
	TrajectoryID uuid.UUID `json:"-"`
	Sequence     int       `json:"sequence_order"`
	CellID       *int      `json:"cell_id"`
	StartX       float64   `json:"start_x"`
	StartY       float64   `json:"start_y"`
	EndX         float64   `json:"end_x"`
	EndY         float64   `json:"end_y"`
	SegmentType  string    `json:"segment_type"`
}

// ListTrajectoriesOptions filters trajectory listings.
type ListTrajectoriesOptions struct {
	WallID *uuid.UUID // filter by wall, nil for all walls
	Limit  int        // maximum rows, newest first
}

// Store is the persistence interface consumed by the API layer. Getters
// return (nil, nil) when the record does not exist.
type Store interface {
	CreateWall(ctx context.Context, width, height float64) (*Wall, error)
	GetWall(ctx context.Context, id uuid.UUID) (*Wall, error)

	CreateObstacles(ctx context.Context, wallID uuid.UUID, obstacles []Obstacle) ([]Obstacle, error)
	ListObstacles(ctx context.Context, wallID uuid.UUID) ([]Obstacle, error)

	// CreateTrajectory stores the trajectory metadata and its ordered
	// segments atomically and returns the new trajectory id.
	CreateTrajectory(ctx context.Context, t *Trajectory, segments []SegmentRecord) (uuid.UUID, error)
	GetTrajectory(ctx context.Context, id uuid.UUID) (*Trajectory, error)
	GetSegments(ctx context.Context, trajectoryID uuid.UUID) ([]SegmentRecord, error)
	ListTrajectories(ctx context.Context, opts ListTrajectoriesOptions) ([]Trajectory, error)

	Ping(ctx context.Context) error
	Close() error
}

// Open selects a backend from the database URL: postgres:// and postgresql://
// URLs use the pgx pool, anything else is treated as a SQLite file path.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return OpenPostgres(ctx, databaseURL)
	}
	return OpenSQLite(ctx, databaseURL)
}
