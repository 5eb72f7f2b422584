package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/wallbotics/coverage-planner/internal/planner"
	"github.com/wallbotics/coverage-planner/internal/store"
	"github.com/wallbotics/coverage-planner/internal/types"
	"github.com/wallbotics/coverage-planner/internal/viz"
)

// PlanResponse is the response for POST /api/plan.
type PlanResponse struct {
	TrajectoryID       uuid.UUID             `json:"trajectory_id"`
	WallID             uuid.UUID             `json:"wall_id"`
	WallWidth          float64               `json:"wall_width"`
	WallHeight         float64               `json:"wall_height"`
	ToolWidth          float64               `json:"tool_width"`
	Obstacles          []store.Obstacle      `json:"obstacles"`
	TotalLength        float64               `json:"total_length"`
	CoverageLength     float64               `json:"coverage_length"`
	TransitionLength   float64               `json:"transition_length"`
	CoveragePercentage float64               `json:"coverage_percentage"`
	ExecutionTimeMs    float64               `json:"execution_time_ms"`
	NumCells           int                   `json:"num_cells"`
	NumSegments        int                   `json:"num_segments"`
	PathSegments       []store.SegmentRecord `json:"path_segments"`
	Message            string                `json:"message"`
}

// TrajectoryResponse is a stored trajectory with its segments.
type TrajectoryResponse struct {
	store.Trajectory
	PathSegments []store.SegmentRecord `json:"path_segments"`
}

// PlaybackResponse carries everything needed to animate a stored run.
type PlaybackResponse struct {
	TrajectoryID uuid.UUID             `json:"trajectory_id"`
	WallWidth    float64               `json:"wall_width"`
	WallHeight   float64               `json:"wall_height"`
	Obstacles    []store.Obstacle      `json:"obstacles"`
	PathSegments []store.SegmentRecord `json:"path_segments"`
	Metadata     map[string]any        `json:"metadata"`
}

// handlePlan validates the request, runs the planner, persists wall,
// obstacles, trajectory and segments, and returns the complete plan.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid plan request: "+err.Error())
		return
	}

	log.Printf("Planning coverage path for wall %gx%gm, tool %gm, %d obstacles",
		req.WallWidth, req.WallHeight, req.ToolWidth, len(req.Obstacles))

	wall, err := s.store.CreateWall(ctx, req.WallWidth, req.WallHeight)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}

	obstacles := make([]store.Obstacle, 0, len(req.Obstacles))
	plannerObstacles := make([]planner.Obstacle, 0, len(req.Obstacles))
	for _, obs := range req.Obstacles {
		obstacles = append(obstacles, store.Obstacle{X: obs.X, Y: obs.Y, Width: obs.Width, Height: obs.Height})
		plannerObstacles = append(plannerObstacles, planner.Obstacle{X: obs.X, Y: obs.Y, Width: obs.Width, Height: obs.Height})
	}
	obstacles, err = s.store.CreateObstacles(ctx, wall.ID, obstacles)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}

	res := planner.New(req.WallWidth, req.WallHeight, req.ToolWidth, plannerObstacles).Plan()

	log.Printf("Path planning complete: %d segments, %.2fms, %.1f%% efficiency",
		len(res.Segments), res.Metrics.ExecutionTimeMs, res.Metrics.CoveragePercentage)

	trajectory := &store.Trajectory{
		WallID:             wall.ID,
		ToolWidth:          req.ToolWidth,
		TotalLength:        res.Metrics.TotalLength,
		CoverageLength:     res.Metrics.CoverageLength,
		TransitionLength:   res.Metrics.TransitionLength,
		CoveragePercentage: res.Metrics.CoveragePercentage,
		ExecutionTimeMs:    res.Metrics.ExecutionTimeMs,
		NumCells:           res.Metrics.NumCells,
	}
	records := segmentRecords(res.Segments)
	trajectoryID, err := s.store.CreateTrajectory(ctx, trajectory, records)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, PlanResponse{
		TrajectoryID:       trajectoryID,
		WallID:             wall.ID,
		WallWidth:          req.WallWidth,
		WallHeight:         req.WallHeight,
		ToolWidth:          req.ToolWidth,
		Obstacles:          obstacles,
		TotalLength:        res.Metrics.TotalLength,
		CoverageLength:     res.Metrics.CoverageLength,
		TransitionLength:   res.Metrics.TransitionLength,
		CoveragePercentage: res.Metrics.CoveragePercentage,
		ExecutionTimeMs:    res.Metrics.ExecutionTimeMs,
		NumCells:           res.Metrics.NumCells,
		NumSegments:        len(records),
		PathSegments:       records,
		Message:            "Coverage path generated successfully",
	})
}

// handleGetTrajectory retrieves one trajectory with its segments.
func (s *Server) handleGetTrajectory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	trajectory, err := s.store.GetTrajectory(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	if trajectory == nil {
		s.errorResponse(w, http.StatusNotFound, "Trajectory not found")
		return
	}

	segments, err := s.store.GetSegments(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TrajectoryResponse{
		Trajectory:   *trajectory,
		PathSegments: segments,
	})
}

// handleListTrajectories lists trajectories, newest first, optionally
// filtered by wall.
func (s *Server) handleListTrajectories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts := store.ListTrajectoriesOptions{
		Limit: parseQueryInt(r, "limit", 10, 100),
	}
	if raw := r.URL.Query().Get("wall_id"); raw != "" {
		wallID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid wall_id")
			return
		}
		opts.WallID = &wallID
	}

	trajectories, err := s.store.ListTrajectories(ctx, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}

	out := make([]TrajectoryResponse, 0, len(trajectories))
	for _, t := range trajectories {
		segments, err := s.store.GetSegments(ctx, t.ID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
			return
		}
		out = append(out, TrajectoryResponse{Trajectory: t, PathSegments: segments})
	}

	s.jsonResponse(w, http.StatusOK, out)
}

// handlePlayback returns the wall, obstacles and ordered segments for
// animating a stored trajectory.
func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	playback, ok := s.loadPlayback(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, playback)
}

// handlePlaybackChart renders a stored trajectory as a standalone HTML chart.
func (s *Server) handlePlaybackChart(w http.ResponseWriter, r *http.Request) {
	playback, ok := s.loadPlayback(w, r)
	if !ok {
		return
	}

	obstacles := make([]planner.Obstacle, 0, len(playback.Obstacles))
	for _, obs := range playback.Obstacles {
		obstacles = append(obstacles, planner.Obstacle{X: obs.X, Y: obs.Y, Width: obs.Width, Height: obs.Height})
	}
	segments := make([]planner.Segment, 0, len(playback.PathSegments))
	for _, seg := range playback.PathSegments {
		segments = append(segments, planner.Segment{
			Start: planner.Point{X: seg.StartX, Y: seg.StartY},
			End:   planner.Point{X: seg.EndX, Y: seg.EndY},
			Type:  planner.SegmentType(seg.SegmentType),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viz.Render(w, playback.WallWidth, playback.WallHeight, obstacles, segments); err != nil {
		log.Printf("Error rendering trajectory chart: %v", err)
	}
}

// loadPlayback assembles the playback payload for a trajectory id, writing
// the error response itself when loading fails.
func (s *Server) loadPlayback(w http.ResponseWriter, r *http.Request) (*PlaybackResponse, bool) {
	id, ok := s.parseID(w, r)
	if !ok {
		return nil, false
	}
	ctx := r.Context()

	trajectory, err := s.store.GetTrajectory(ctx, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return nil, false
	}
	if trajectory == nil {
		s.errorResponse(w, http.StatusNotFound, "Trajectory not found")
		return nil, false
	}

	wall, err := s.store.GetWall(ctx, trajectory.WallID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return nil, false
	}
	if wall == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Wall record missing for trajectory")
		return nil, false
	}

	obstacles, err := s.store.ListObstacles(ctx, wall.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return nil, false
	}
	segments, err := s.store.GetSegments(ctx, id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return nil, false
	}

	return &PlaybackResponse{
		TrajectoryID: trajectory.ID,
		WallWidth:    wall.Width,
		WallHeight:   wall.Height,
		Obstacles:    obstacles,
		PathSegments: segments,
		Metadata: map[string]any{
			"tool_width":          trajectory.ToolWidth,
			"total_length":        trajectory.TotalLength,
			"coverage_length":     trajectory.CoverageLength,
			"transition_length":   trajectory.TransitionLength,
			"coverage_percentage": trajectory.CoveragePercentage,
			"num_cells":           trajectory.NumCells,
			"num_segments":        len(segments),
			"execution_time_ms":   trajectory.ExecutionTimeMs,
		},
	}, true
}

// parseID reads the {id} path value as a UUID, writing a 400 on failure.
func (s *Server) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid trajectory ID")
		return uuid.Nil, false
	}
	return id, true
}

// segmentRecords converts planner segments to their stored form, assigning
// sequence numbers.
func segmentRecords(segments []planner.Segment) []store.SegmentRecord {
	records := make([]store.SegmentRecord, 0, len(segments))
	for i, seg := range segments {
		records = append(records, store.SegmentRecord{
			Sequence:    i,
			CellID:      seg.CellID,
			StartX:      seg.Start.X,
			StartY:      seg.Start.Y,
			EndX:        seg.End.X,
			EndY:        seg.End.Y,
			SegmentType: string(seg.Type),
		})
	}
	return records
}
