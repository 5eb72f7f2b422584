package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS walls (
	id UUID PRIMARY KEY,
	width DOUBLE PRECISION NOT NULL,
	height DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS obstacles (
	id UUID PRIMARY KEY,
	wall_id UUID NOT NULL REFERENCES walls(id),
	x DOUBLE PRECISION NOT NULL,
	y DOUBLE PRECISION NOT NULL,
	width DOUBLE PRECISION NOT NULL,
	height DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_obstacles_wall ON obstacles(wall_id);
CREATE TABLE IF NOT EXISTS trajectories (
	id UUID PRIMARY KEY,
	wall_id UUID NOT NULL REFERENCES walls(id),
	tool_width DOUBLE PRECISION NOT NULL,
	total_length DOUBLE PRECISION NOT NULL,
	coverage_length DOUBLE PRECISION NOT NULL,
	transition_length DOUBLE PRECISION NOT NULL,
	coverage_percentage DOUBLE PRECISION NOT NULL,
	execution_time_ms DOUBLE PRECISION NOT NULL,
	num_cells INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trajectories_wall ON trajectories(wall_id);
CREATE INDEX IF NOT EXISTS idx_trajectories_created ON trajectories(created_at);
CREATE TABLE IF NOT EXISTS path_segments (
	trajectory_id UUID NOT NULL REFERENCES trajectories(id),
	sequence_order INTEGER NOT NULL,
	cell_id INTEGER,
	start_x DOUBLE PRECISION NOT NULL,
	start_y DOUBLE PRECISION NOT NULL,
	end_x DOUBLE PRECISION NOT NULL,
	end_y DOUBLE PRECISION NOT NULL,
	segment_type TEXT NOT NULL CHECK (segment_type IN ('coverage', 'transition')),
	PRIMARY KEY (trajectory_id, sequence_order)
);
`

// PostgresStore is the pgx-backed implementation of Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and bootstraps the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// CreateWall inserts a wall record.
func (s *PostgresStore) CreateWall(ctx context.Context, width, height float64) (*Wall, error) {
	wall := &Wall{ID: uuid.New(), Width: width, Height: height}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO walls (id, width, height) VALUES ($1, $2, $3) RETURNING created_at`,
		wall.ID, width, height,
	).Scan(&wall.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create wall: %w", err)
	}
	return wall, nil
}

// GetWall retrieves a wall by id, returning nil when absent.
func (s *PostgresStore) GetWall(ctx context.Context, id uuid.UUID) (*Wall, error) {
	var wall Wall
	err := s.pool.QueryRow(ctx,
		`SELECT id, width, height, created_at FROM walls WHERE id = $1`, id,
	).Scan(&wall.ID, &wall.Width, &wall.Height, &wall.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wall: %w", err)
	}
	return &wall, nil
}

// CreateObstacles inserts obstacle records for a wall, assigning ids.
func (s *PostgresStore) CreateObstacles(ctx context.Context, wallID uuid.UUID, obstacles []Obstacle) ([]Obstacle, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]Obstacle, 0, len(obstacles))
	for _, obs := range obstacles {
		obs.ID = uuid.New()
		obs.WallID = wallID
		if _, err := tx.Exec(ctx,
			`INSERT INTO obstacles (id, wall_id, x, y, width, height) VALUES ($1, $2, $3, $4, $5, $6)`,
			obs.ID, wallID, obs.X, obs.Y, obs.Width, obs.Height); err != nil {
			return nil, fmt.Errorf("failed to insert obstacle: %w", err)
		}
		created = append(created, obs)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit obstacles: %w", err)
	}
	return created, nil
}

// ListObstacles returns all obstacles of a wall.
func (s *PostgresStore) ListObstacles(ctx context.Context, wallID uuid.UUID) ([]Obstacle, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, wall_id, x, y, width, height FROM obstacles WHERE wall_id = $1`, wallID)
	if err != nil {
		return nil, fmt.Errorf("failed to list obstacles: %w", err)
	}
	defer rows.Close()

	var obstacles []Obstacle
	for rows.Next() {
		var obs Obstacle
		if err := rows.Scan(&obs.ID, &obs.WallID, &obs.X, &obs.Y, &obs.Width, &obs.Height); err != nil {
			return nil, fmt.Errorf("failed to scan obstacle: %w", err)
		}
		obstacles = append(obstacles, obs)
	}
	return obstacles, rows.Err()
}

// CreateTrajectory stores the trajectory and its segments in one transaction.
func (s *PostgresStore) CreateTrajectory(ctx context.Context, t *Trajectory, segments []SegmentRecord) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New()
	var createdAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO trajectories
		 (id, wall_id, tool_width, total_length, coverage_length, transition_length,
		  coverage_percentage, execution_time_ms, num_cells)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		id, t.WallID, t.ToolWidth, t.TotalLength, t.CoverageLength,
		t.TransitionLength, t.CoveragePercentage, t.ExecutionTimeMs, t.NumCells,
	).Scan(&createdAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert trajectory: %w", err)
	}

	for _, seg := range segments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO path_segments
			 (trajectory_id, sequence_order, cell_id, start_x, start_y, end_x, end_y, segment_type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, seg.Sequence, seg.CellID,
			seg.StartX, seg.StartY, seg.EndX, seg.EndY, seg.SegmentType); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert segment %d: %w", seg.Sequence, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit trajectory: %w", err)
	}
	t.ID = id
	t.CreatedAt = createdAt
	return id, nil
}

// GetTrajectory retrieves trajectory metadata by id, returning nil when absent.
func (s *PostgresStore) GetTrajectory(ctx context.Context, id uuid.UUID) (*Trajectory, error) {
	var t Trajectory
	err := s.pool.QueryRow(ctx,
		`SELECT id, wall_id, tool_width, total_length, coverage_length, transition_length,
		        coverage_percentage, execution_time_ms, num_cells, created_at
		 FROM trajectories WHERE id = $1`, id,
	).Scan(&t.ID, &t.WallID, &t.ToolWidth, &t.TotalLength, &t.CoverageLength,
		&t.TransitionLength, &t.CoveragePercentage, &t.ExecutionTimeMs, &t.NumCells, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trajectory: %w", err)
	}
	return &t, nil
}

// GetSegments returns a trajectory's segments in sequence order.
func (s *PostgresStore) GetSegments(ctx context.Context, trajectoryID uuid.UUID) ([]SegmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sequence_order, cell_id, start_x, start_y, end_x, end_y, segment_type
		 FROM path_segments WHERE trajectory_id = $1 ORDER BY sequence_order`,
		trajectoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	defer rows.Close()

	var segments []SegmentRecord
	for rows.Next() {
		seg := SegmentRecord{TrajectoryID: trajectoryID}
		if err := rows.Scan(&seg.Sequence, &seg.CellID,
			&seg.StartX, &seg.StartY, &seg.EndX, &seg.EndY, &seg.SegmentType); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

// ListTrajectories returns trajectory metadata, newest first.
func (s *PostgresStore) ListTrajectories(ctx context.Context, opts ListTrajectoriesOptions) ([]Trajectory, error) {
	query := `SELECT id, wall_id, tool_width, total_length, coverage_length, transition_length,
	                 coverage_percentage, execution_time_ms, num_cells, created_at
	          FROM trajectories`
	args := []any{}
	if opts.WallID != nil {
		query += ` WHERE wall_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, *opts.WallID, opts.Limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, opts.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trajectories: %w", err)
	}
	defer rows.Close()

	var trajectories []Trajectory
	for rows.Next() {
		var t Trajectory
		if err := rows.Scan(&t.ID, &t.WallID, &t.ToolWidth, &t.TotalLength, &t.CoverageLength,
			&t.TransitionLength, &t.CoveragePercentage, &t.ExecutionTimeMs, &t.NumCells, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trajectory: %w", err)
		}
		trajectories = append(trajectories, t)
	}
	return trajectories, rows.Err()
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
