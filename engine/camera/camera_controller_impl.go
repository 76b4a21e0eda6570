package camera

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraControllerImpl struct {
	panSpeed float32

	cursor mgl32.Vec2
	anchor *mgl32.Vec2
	drag   DragState
	scroll float32

	up, down, left, right bool
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller with a pan speed of 0.1.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		panSpeed: 0.1,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessEvent(e input.Event) bool {
	switch ev := e.(type) {
	case input.KeyEvent:
		switch ev.Key {
		case common.KeyW, common.KeyUp:
			cc.up = ev.Pressed
		case common.KeyS, common.KeyDown:
			cc.down = ev.Pressed
		case common.KeyA, common.KeyLeft:
			cc.left = ev.Pressed
		case common.KeyD, common.KeyRight:
			cc.right = ev.Pressed
		default:
			return false
		}
		return true
	case input.MouseWheelEvent:
		// Line and pixel deltas both overwrite any unconsumed value.
		cc.scroll = ev.DeltaY
		return true
	case input.CursorMovedEvent:
		cc.cursor = mgl32.Vec2{ev.X, ev.Y}
		return true
	case input.MouseButtonEvent:
		if ev.Button != common.MouseButtonLeft {
			return false
		}
		if ev.Pressed {
			cc.drag = DragPressed
		} else {
			cc.drag = DragReleased
		}
		return true
	}
	return false
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, size common.Size) {
	cc.applyZoom(cam, size)
	cc.applyDrag(cam, size)
	cc.applyKeys(cam)
}

// applyZoom moves eye and target along the view direction and re-anchors on the cursor.
func (cc *cameraControllerImpl) applyZoom(cam Camera, size common.Size) {
	scroll := cc.scroll
	cc.scroll = 0

	forward := cam.Target().Sub(cam.Eye())
	forwardMag := forward.Len()
	if forwardMag == 0 {
		return
	}
	delta := forward.Normalize().Mul(forwardMag * cc.panSpeed * scroll)

	eyeZ := cam.Eye().Z()
	zoomIn := scroll > 0 && eyeZ > MinZoom
	if zoomIn && eyeZ+delta.Z() < MinZoom && delta.Z() < 0 {
		// Shorten the step so eye.z lands on MinZoom instead of passing it.
		f := (eyeZ - MinZoom) / -delta.Z()
		delta = delta.Mul(f)
		scroll *= f
	}
	zoomOut := false
	if scroll < 0 {
		_, zoomOut = common.NextPowerOfTwoFloat(eyeZ + delta.Z())
	}
	if !zoomIn && !zoomOut {
		if scroll != 0 {
			common.Logger().Debug("zoom refused", "eyeZ", eyeZ, "scroll", scroll)
		}
		return
	}

	cam.Translate(delta)
	origin := cam.WorldToScreen(mgl32.Vec3{}, size)
	cam.AdjustPanWithCursorPosition(cc.cursor, origin, scroll*ZoomPanModifier, size)
}

func (cc *cameraControllerImpl) applyDrag(cam Camera, size common.Size) {
	switch cc.drag {
	case DragPressed:
		if cc.anchor == nil {
			a := cc.cursor
			cc.anchor = &a
			return
		}
		cam.AdjustPanWithCursorPosition(cc.cursor, *cc.anchor, DragPanModifier, size)
		a := cc.cursor
		cc.anchor = &a
	case DragReleased:
		cc.anchor = nil
		cc.drag = DragIdle
	}
}

func (cc *cameraControllerImpl) applyKeys(cam Camera) {
	step := cc.panSpeed * cam.Eye().Z()
	var delta mgl32.Vec3
	if cc.up {
		delta[1] += step
	}
	if cc.down {
		delta[1] -= step
	}
	if cc.right {
		delta[0] += step
	}
	if cc.left {
		delta[0] -= step
	}
	if delta != (mgl32.Vec3{}) {
		cam.Translate(delta)
	}
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

func (cc *cameraControllerImpl) SetPanSpeed(speed float32) {
	cc.panSpeed = speed
}

func (cc *cameraControllerImpl) Cursor() mgl32.Vec2 {
	return cc.cursor
}

func (cc *cameraControllerImpl) Scroll() float32 {
	return cc.scroll
}

func (cc *cameraControllerImpl) DragState() DragState {
	return cc.drag
}

func (cc *cameraControllerImpl) Anchor() (mgl32.Vec2, bool) {
	if cc.anchor == nil {
		return mgl32.Vec2{}, false
	}
	return *cc.anchor, true
}
