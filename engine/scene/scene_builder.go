package scene

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera replaces the default camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithController replaces the default camera controller.
//
// Parameters:
//   - cc: the controller to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(cc camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = cc
	}
}

// WithSize sets the initial viewport size and resizes the camera to match.
//
// Parameters:
//   - size: the viewport size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSize(size common.Size) SceneBuilderOption {
	return func(s *scene) {
		s.size = size
	}
}

// WithEquation adds a curve parsed from text. Options are applied in order, so labels
// follow the order of WithEquation options starting at 1.
//
// Parameters:
//   - text: the equation text
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEquation(text string) SceneBuilderOption {
	return func(s *scene) {
		s.pendingEquations = append(s.pendingEquations, text)
	}
}

// WithPoint adds a point marker at world position (x, y).
func WithPoint(x, y float32) SceneBuilderOption {
	return func(s *scene) {
		s.pendingPoints = append(s.pendingPoints, mgl32.Vec2{x, y})
	}
}

// WithClearColor sets the background color. Defaults to white.
func WithClearColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

// WithGridColor sets the base grid line color; alpha is replaced per line. Defaults to black.
func WithGridColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.gridColor = c
	}
}

// WithPointColor sets the point marker color. Defaults to black.
func WithPointColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.pointColor = c
	}
}
