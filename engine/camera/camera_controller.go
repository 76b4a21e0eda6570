package camera

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// ZoomPanModifier scales the scroll delta when re-anchoring after a zoom so the
// zoom pivots around the cursor. Empirical, coupled to ViewSpaceScale.
const ZoomPanModifier = 0.25

// MinZoom is the lowest eye.z a zoom-in can reach. The graph plane sits at z=0.
const MinZoom = 1.0

// DragPanModifier is the pan modifier for click-drag. Negative so the plane follows the cursor.
const DragPanModifier = -1.0

// DragState tracks the left mouse button between input events and frame updates.
type DragState int

const (
	// DragIdle means the button is up and no release is pending.
	DragIdle DragState = iota
	// DragPressed means the button is held.
	DragPressed
	// DragReleased means the button was released since the last update.
	DragReleased
)

// String returns a readable name for the drag state.
func (s DragState) String() string {
	switch s {
	case DragPressed:
		return "pressed"
	case DragReleased:
		return "released"
	default:
		return "idle"
	}
}

// CameraController translates input events into camera motion.
// Events are accumulated by ProcessEvent and applied once per frame by UpdateCamera:
// zoom first (pivoting on the cursor), then drag pan, then keyboard pan.
//
// A CameraController is owned by the frame loop and is not safe for concurrent use.
type CameraController interface {
	input.Handler

	// UpdateCamera applies the accumulated input to cam. Must be called once per frame
	// whether or not input arrived. The scroll accumulator is always reset.
	//
	// Parameters:
	//   - cam: the camera to mutate
	//   - size: the current viewport size in pixels
	UpdateCamera(cam Camera, size common.Size)

	// PanSpeed returns the base pan speed.
	PanSpeed() float32

	// SetPanSpeed sets the base pan speed. Keyboard pans move pan speed times eye.z per frame.
	//
	// Parameters:
	//   - speed: the new pan speed
	SetPanSpeed(speed float32)

	// Cursor returns the last known cursor position in pixels.
	Cursor() mgl32.Vec2

	// Scroll returns the scroll delta waiting to be applied.
	Scroll() float32

	// DragState returns the left button state.
	DragState() DragState

	// Anchor returns the drag anchor and whether one is recorded.
	//
	// Returns:
	//   - mgl32.Vec2: the anchor position in pixels
	//   - bool: true if a drag is in progress
	Anchor() (mgl32.Vec2, bool)
}
