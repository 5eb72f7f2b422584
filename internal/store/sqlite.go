package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS walls (
	id TEXT PRIMARY KEY,
	width DOUBLE NOT NULL,
	height DOUBLE NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS obstacles (
	id TEXT PRIMARY KEY,
	wall_id TEXT NOT NULL,
	x DOUBLE NOT NULL,
	y DOUBLE NOT NULL,
	width DOUBLE NOT NULL,
	height DOUBLE NOT NULL,
	FOREIGN KEY(wall_id) REFERENCES walls(id)
);
CREATE INDEX IF NOT EXISTS idx_obstacles_wall ON obstacles(wall_id);
CREATE TABLE IF NOT EXISTS trajectories (
	id TEXT PRIMARY KEY,
	wall_id TEXT NOT NULL,
	tool_width DOUBLE NOT NULL,
	total_length DOUBLE NOT NULL,
	coverage_length DOUBLE NOT NULL,
	transition_length DOUBLE NOT NULL,
	coverage_percentage DOUBLE NOT NULL,
	execution_time_ms DOUBLE NOT NULL,
	num_cells INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY(wall_id) REFERENCES walls(id)
);
CREATE INDEX IF NOT EXISTS idx_trajectories_wall ON trajectories(wall_id);
CREATE INDEX IF NOT EXISTS idx_trajectories_created ON trajectories(created_at);
CREATE TABLE IF NOT EXISTS path_segments (
	trajectory_id TEXT NOT NULL,
	sequence_order INTEGER NOT NULL,
	cell_id INTEGER,
	start_x DOUBLE NOT NULL,
	start_y DOUBLE NOT NULL,
	end_x DOUBLE NOT NULL,
	end_y DOUBLE NOT NULL,
	segment_type TEXT NOT NULL CHECK (segment_type IN ('coverage', 'transition')),
	PRIMARY KEY (trajectory_id, sequence_order),
	FOREIGN KEY(trajectory_id) REFERENCES trajectories(id)
);
`

// SQLiteStore is the file-backed SQLite implementation of Store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a SQLite database at path and
// bootstraps the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// CreateWall inserts a wall record.
func (s *SQLiteStore) CreateWall(ctx context.Context, width, height float64) (*Wall, error) {
	wall := &Wall{
		ID:        uuid.New(),
		Width:     width,
		Height:    height,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO walls (id, width, height, created_at) VALUES (?, ?, ?, ?)`,
		wall.ID.String(), wall.Width, wall.Height, wall.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create wall: %w", err)
	}
	return wall, nil
}

// GetWall retrieves a wall by id, returning nil when absent.
func (s *SQLiteStore) GetWall(ctx context.Context, id uuid.UUID) (*Wall, error) {
	var (
		wall  Wall
		rawID string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, width, height, created_at FROM walls WHERE id = ?`, id.String(),
	).Scan(&rawID, &wall.Width, &wall.Height, &wall.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wall: %w", err)
	}
	if wall.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("invalid wall id in database: %w", err)
	}
	return &wall, nil
}

// CreateObstacles inserts obstacle records for a wall, assigning ids.
func (s *SQLiteStore) CreateObstacles(ctx context.Context, wallID uuid.UUID, obstacles []Obstacle) ([]Obstacle, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO obstacles (id, wall_id, x, y, width, height) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare obstacle insert: %w", err)
	}
	defer stmt.Close()

	created := make([]Obstacle, 0, len(obstacles))
	for _, obs := range obstacles {
		obs.ID = uuid.New()
		obs.WallID = wallID
		if _, err := stmt.ExecContext(ctx,
			obs.ID.String(), wallID.String(), obs.X, obs.Y, obs.Width, obs.Height); err != nil {
			return nil, fmt.Errorf("failed to insert obstacle: %w", err)
		}
		created = append(created, obs)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit obstacles: %w", err)
	}
	return created, nil
}

// ListObstacles returns all obstacles of a wall.
func (s *SQLiteStore) ListObstacles(ctx context.Context, wallID uuid.UUID) ([]Obstacle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, wall_id, x, y, width, height FROM obstacles WHERE wall_id = ?`, wallID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list obstacles: %w", err)
	}
	defer rows.Close()

	var obstacles []Obstacle
	for rows.Next() {
		var (
			obs           Obstacle
			rawID, rawWID string
		)
		if err := rows.Scan(&rawID, &rawWID, &obs.X, &obs.Y, &obs.Width, &obs.Height); err != nil {
			return nil, fmt.Errorf("failed to scan obstacle: %w", err)
		}
		if obs.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("invalid obstacle id in database: %w", err)
		}
		if obs.WallID, err = uuid.Parse(rawWID); err != nil {
			return nil, fmt.Errorf("invalid wall id in database: %w", err)
		}
		obstacles = append(obstacles, obs)
	}
	return obstacles, rows.Err()
}

// CreateTrajectory stores the trajectory and its segments in one transaction.
func (s *SQLiteStore) CreateTrajectory(ctx context.Context, t *Trajectory, segments []SegmentRecord) (uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New()
	createdAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO trajectories
		 (id, wall_id, tool_width, total_length, coverage_length, transition_length,
		  coverage_percentage, execution_time_ms, num_cells, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), t.WallID.String(), t.ToolWidth, t.TotalLength, t.CoverageLength,
		t.TransitionLength, t.CoveragePercentage, t.ExecutionTimeMs, t.NumCells, createdAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert trajectory: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO path_segments
		 (trajectory_id, sequence_order, cell_id, start_x, start_y, end_x, end_y, segment_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		if _, err := stmt.ExecContext(ctx,
			id.String(), seg.Sequence, seg.CellID,
			seg.StartX, seg.StartY, seg.EndX, seg.EndY, seg.SegmentType); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert segment %d: %w", seg.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit trajectory: %w", err)
	}
	t.ID = id
	t.CreatedAt = createdAt
	return id, nil
}

// GetTrajectory retrieves trajectory metadata by id, returning nil when absent.
func (s *SQLiteStore) GetTrajectory(ctx context.Context, id uuid.UUID) (*Trajectory, error) {
	var (
		t             Trajectory
		rawID, rawWID string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, wall_id, tool_width, total_length, coverage_length, transition_length,
		        coverage_percentage, execution_time_ms, num_cells, created_at
		 FROM trajectories WHERE id = ?`, id.String(),
	).Scan(&rawID, &rawWID, &t.ToolWidth, &t.TotalLength, &t.CoverageLength,
		&t.TransitionLength, &t.CoveragePercentage, &t.ExecutionTimeMs, &t.NumCells, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trajectory: %w", err)
	}
	if t.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("invalid trajectory id in database: %w", err)
	}
	if t.WallID, err = uuid.Parse(rawWID); err != nil {
		return nil, fmt.Errorf("invalid wall id in database: %w", err)
	}
	return &t, nil
}

// GetSegments returns a trajectory's segments in sequence order.
func (s *SQLiteStore) GetSegments(ctx context.Context, trajectoryID uuid.UUID) ([]SegmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sequence_order, cell_id, start_x, start_y, end_x, end_y, segment_type
		 FROM path_segments WHERE trajectory_id = ? ORDER BY sequence_order`,
		trajectoryID.String())
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
func (s *SQLiteStore) ListTrajectories(ctx context.Context, opts ListTrajectoriesOptions) ([]Trajectory, error) {
	query := `SELECT id, wall_id, tool_width, total_length, coverage_length, transition_length,
	                 coverage_percentage, execution_time_ms, num_cells, created_at
	          FROM trajectories`
	args := []any{}
	if opts.WallID != nil {
		query += ` WHERE wall_id = ?`
		args = append(args, opts.WallID.String())
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trajectories: %w", err)
	}
	defer rows.Close()

	var trajectories []Trajectory
	for rows.Next() {
		var (
			t             Trajectory
			rawID, rawWID string
		)
		if err := rows.Scan(&rawID, &rawWID, &t.ToolWidth, &t.TotalLength, &t.CoverageLength,
			&t.TransitionLength, &t.CoveragePercentage, &t.ExecutionTimeMs, &t.NumCells, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trajectory: %w", err)
		}
		if t.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("invalid trajectory id in database: %w", err)
		}
		if t.WallID, err = uuid.Parse(rawWID); err != nil {
			return nil, fmt.Errorf("invalid wall id in database: %w", err)
		}
		trajectories = append(trajectories, t)
	}
	return trajectories, rows.Err()
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
