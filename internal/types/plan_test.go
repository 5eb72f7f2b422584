package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() PlanRequest {
	return PlanRequest{
		WallWidth:  5,
		WallHeight: 5,
		ToolWidth:  0.5,
		Obstacles: []ObstacleSpec{
			{X: 2, Y: 2, Width: 1, Height: 1},
		},
	}
}

func TestPlanRequest_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestPlanRequest_NoObstacles(t *testing.T) {
	req := validRequest()
	req.Obstacles = nil
	assert.NoError(t, req.Validate())
}

func TestPlanRequest_NonPositiveDimensions(t *testing.T) {
	for name, mutate := range map[string]func(*PlanRequest){
		"zero width":      func(r *PlanRequest) { r.WallWidth = 0 },
		"negative height": func(r *PlanRequest) { r.WallHeight = -1 },
		"zero tool":       func(r *PlanRequest) { r.ToolWidth = 0 },
		"oversize tool":   func(r *PlanRequest) { r.ToolWidth = 1.5 },
		"zero obs width":  func(r *PlanRequest) { r.Obstacles[0].Width = 0 },
		"negative obs x":  func(r *PlanRequest) { r.Obstacles[0].X = -0.1 },
		"zero obs height": func(r *PlanRequest) { r.Obstacles[0].Height = 0 },
		"negative obs y":  func(r *PlanRequest) { r.Obstacles[0].Y = -2 },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestPlanRequest_ObstacleOutOfBounds(t *testing.T) {
	req := validRequest()
	req.Obstacles[0].X = 4.5 // right edge at 5.5, beyond the 5m wall
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond wall width")

	req = validRequest()
	req.Obstacles[0].Height = 4 // top edge at 6, beyond the 5m wall
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond wall height")
}

func TestPlanRequest_ObstacleTouchingEdgeIsValid(t *testing.T) {
	req := validRequest()
	req.Obstacles[0] = ObstacleSpec{X: 4, Y: 4, Width: 1, Height: 1}
	assert.NoError(t, req.Validate())
}
