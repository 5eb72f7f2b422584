// Package types provides the request types shared by the HTTP API and the CLI.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ObstacleSpec is a rectangular obstacle in a plan request, anchored at its
// bottom-left corner in wall coordinates.
type ObstacleSpec struct {
	X      float64 `json:"x" validate:"gte=0"`
	Y      float64 `json:"y" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// PlanRequest is the input to a planning run. Tool width is in the same unit
// as the wall dimensions (metres) and capped at 1m, the widest finishing tool
// the robots carry.
type PlanRequest struct {
	WallWidth  float64        `json:"wall_width" validate:"gt=0"`
	WallHeight float64        `json:"wall_height" validate:"gt=0"`
	ToolWidth  float64        `json:"tool_width" validate:"gt=0,lte=1"`
	Obstacles  []ObstacleSpec `json:"obstacles" validate:"dive"`
}

// Validate checks field constraints and that every obstacle lies within the
// wall. The planning engine itself is total; all input rejection happens here.
func (r *PlanRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i, obs := range r.Obstacles {
		if obs.X+obs.Width > r.WallWidth {
			return fmt.Errorf("obstacle %d extends beyond wall width: %g > %g",
				i, obs.X+obs.Width, r.WallWidth)
		}
		if obs.Y+obs.Height > r.WallHeight {
			return fmt.Errorf("obstacle %d extends beyond wall height: %g > %g",
				i, obs.Y+obs.Height, r.WallHeight)
		}
	}
	return nil
}
