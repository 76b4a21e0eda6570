package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

var testSize = common.Size{Width: 800, Height: 800}

func newTestCamera(t *testing.T, opts ...CameraBuilderOption) Camera {
	t.Helper()
	cam, err := NewCamera(opts...)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

func TestProcessEventConsumption(t *testing.T) {
	tests := []struct {
		name  string
		event input.Event
		want  bool
	}{
		{"W", input.KeyEvent{Key: common.KeyW, Pressed: true}, true},
		{"Up arrow", input.KeyEvent{Key: common.KeyUp, Pressed: true}, true},
		{"S release", input.KeyEvent{Key: common.KeyS}, true},
		{"Left arrow", input.KeyEvent{Key: common.KeyLeft, Pressed: true}, true},
		{"D", input.KeyEvent{Key: common.KeyD, Pressed: true}, true},
		{"unrelated key", input.KeyEvent{Key: common.KeySpace, Pressed: true}, false},
		{"wheel lines", input.MouseWheelEvent{Unit: input.ScrollLines, DeltaY: 1}, true},
		{"wheel pixels", input.MouseWheelEvent{Unit: input.ScrollPixels, DeltaY: -3}, true},
		{"cursor", input.CursorMovedEvent{X: 4, Y: 5}, true},
		{"left button", input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true}, true},
		{"right button", input.MouseButtonEvent{Button: common.MouseButtonRight, Pressed: true}, false},
		{"char", input.CharEvent{Char: 'x'}, false},
		{"resize", input.ResizedEvent{Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			if got := cc.ProcessEvent(tt.event); got != tt.want {
				t.Errorf("ProcessEvent(%#v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWheelOverwritesScroll(t *testing.T) {
	cc := NewCameraController()
	cc.ProcessEvent(input.MouseWheelEvent{DeltaY: 2})
	cc.ProcessEvent(input.MouseWheelEvent{Unit: input.ScrollPixels, DeltaY: -0.5})
	if cc.Scroll() != -0.5 {
		t.Errorf("Scroll = %v, want -0.5", cc.Scroll())
	}
}

func TestZoomAtCenter(t *testing.T) {
	tests := []struct {
		name    string
		scroll  float32
		wantEye float32
	}{
		{"zoom in", 1, 3.6},
		{"zoom out", -1, 4.4},
		{"two notches in", 2, 3.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera(t)
			cc := NewCameraController()
			cc.ProcessEvent(input.CursorMovedEvent{X: 400, Y: 400})
			cc.ProcessEvent(input.MouseWheelEvent{DeltaY: tt.scroll})
			cc.UpdateCamera(cam, testSize)

			if !approxEqual(cam.Eye().Z(), tt.wantEye) {
				t.Errorf("eye.z = %v, want %v", cam.Eye().Z(), tt.wantEye)
			}
			// Target moves with the eye so the view direction length is unchanged.
			if got := cam.Eye().Sub(cam.Target()).Len(); !approxEqual(got, 4) {
				t.Errorf("eye-target distance = %v, want 4", got)
			}
			if !approxEqual(cam.Eye().X(), 0) || !approxEqual(cam.Eye().Y(), 0) {
				t.Errorf("zoom at the origin should not pan, eye = %v", cam.Eye())
			}
			if cc.Scroll() != 0 {
				t.Errorf("Scroll = %v after update, want 0", cc.Scroll())
			}
		})
	}
}

func TestZoomPivotsTowardCursor(t *testing.T) {
	cam := newTestCamera(t)
	cc := NewCameraController()
	cc.ProcessEvent(input.CursorMovedEvent{X: 700, Y: 100})
	cc.ProcessEvent(input.MouseWheelEvent{DeltaY: 1})
	cc.UpdateCamera(cam, testSize)

	if cam.Eye().X() <= 0 || cam.Eye().Y() <= 0 {
		t.Errorf("zooming in toward the top-right should pan up and right, eye = %v", cam.Eye())
	}
}

func TestZoomRefused(t *testing.T) {
	tests := []struct {
		name   string
		eye    mgl32.Vec3
		scroll float32
	}{
		{"below unit zoom", mgl32.Vec3{0, 0, 0.9}, 1},
		{"next power of two overflows", mgl32.Vec3{0, 0, 3e9}, -1},
		{"beyond uint32", mgl32.Vec3{0, 0, 5e9}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := mgl32.Vec3{tt.eye.X(), tt.eye.Y(), tt.eye.Z() - 4}
			cam := newTestCamera(t, WithEye(tt.eye), WithTarget(target))
			cc := NewCameraController()
			cc.ProcessEvent(input.CursorMovedEvent{X: 10, Y: 10})
			cc.ProcessEvent(input.MouseWheelEvent{DeltaY: tt.scroll})
			cc.UpdateCamera(cam, testSize)

			if cam.Eye() != tt.eye {
				t.Errorf("eye = %v, want unchanged %v", cam.Eye(), tt.eye)
			}
			if cc.Scroll() != 0 {
				t.Errorf("Scroll = %v after refused zoom, want 0", cc.Scroll())
			}
		})
	}
}

func TestZoomInStopsAtMinZoom(t *testing.T) {
	tests := []struct {
		name   string
		eyeZ   float32
		events []input.MouseWheelEvent
		want   float32
	}{
		{"refused at the bound", 1, []input.MouseWheelEvent{{DeltaY: 1}}, 1},
		{"shortened onto the bound", 1.2, []input.MouseWheelEvent{{DeltaY: 1}}, 1},
		{"large pixel delta", 3, []input.MouseWheelEvent{{Unit: input.ScrollPixels, DeltaY: 25}}, 1},
		{"within range", 2, []input.MouseWheelEvent{{DeltaY: 1}}, 1.6},
		{
			"pixel delta then zoom out",
			1,
			[]input.MouseWheelEvent{{Unit: input.ScrollPixels, DeltaY: 5}, {DeltaY: -1}},
			1.4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera(t, WithEye(mgl32.Vec3{0, 0, tt.eyeZ}), WithTarget(mgl32.Vec3{0, 0, tt.eyeZ - 4}))
			cc := NewCameraController()
			cc.ProcessEvent(input.CursorMovedEvent{X: 400, Y: 400})
			for _, ev := range tt.events {
				cc.ProcessEvent(ev)
				cc.UpdateCamera(cam, testSize)
				if z := cam.Eye().Z(); z < MinZoom-epsilon {
					t.Fatalf("eye.z = %v passed MinZoom", z)
				}
			}
			if z := cam.Eye().Z(); !approxEqual(z, tt.want) {
				t.Errorf("eye.z = %v, want %v", z, tt.want)
			}
		})
	}
}

func TestDragPan(t *testing.T) {
	cam := newTestCamera(t)
	cc := NewCameraController()

	cc.ProcessEvent(input.CursorMovedEvent{X: 100, Y: 100})
	cc.ProcessEvent(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true})
	cc.UpdateCamera(cam, testSize)

	anchor, ok := cc.Anchor()
	if !ok || anchor != (mgl32.Vec2{100, 100}) {
		t.Fatalf("anchor = %v, %v; want (100,100), true", anchor, ok)
	}
	if cam.Eye() != (mgl32.Vec3{0, 0, 4}) {
		t.Fatalf("first pressed frame should not pan, eye = %v", cam.Eye())
	}

	cc.ProcessEvent(input.CursorMovedEvent{X: 140, Y: 100})
	cc.UpdateCamera(cam, testSize)
	if cam.Eye().X() >= 0 {
		t.Errorf("dragging right should move the camera left, eye = %v", cam.Eye())
	}
	if !approxEqual(cam.Eye().Y(), 0) {
		t.Errorf("horizontal drag changed eye.y to %v", cam.Eye().Y())
	}
	if anchor, _ := cc.Anchor(); anchor != (mgl32.Vec2{140, 100}) {
		t.Errorf("anchor = %v, want (140,100)", anchor)
	}

	// No cursor motion means no further pan.
	before := cam.Eye()
	cc.UpdateCamera(cam, testSize)
	if cam.Eye() != before {
		t.Errorf("stationary drag moved eye from %v to %v", before, cam.Eye())
	}

	cc.ProcessEvent(input.MouseButtonEvent{Button: common.MouseButtonLeft})
	if cc.DragState() != DragReleased {
		t.Errorf("DragState = %v, want released", cc.DragState())
	}
	cc.UpdateCamera(cam, testSize)
	if _, ok := cc.Anchor(); ok {
		t.Error("anchor should be cleared after release")
	}
	if cc.DragState() != DragIdle {
		t.Errorf("DragState = %v, want idle", cc.DragState())
	}
}

func TestDragIsIncremental(t *testing.T) {
	single := newTestCamera(t)
	stepped := newTestCamera(t)

	drag := func(cam Camera, path []mgl32.Vec2) {
		cc := NewCameraController()
		cc.ProcessEvent(input.CursorMovedEvent{X: path[0].X(), Y: path[0].Y()})
		cc.ProcessEvent(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true})
		cc.UpdateCamera(cam, testSize)
		for _, p := range path[1:] {
			cc.ProcessEvent(input.CursorMovedEvent{X: p.X(), Y: p.Y()})
			cc.UpdateCamera(cam, testSize)
		}
	}
	drag(single, []mgl32.Vec2{{100, 100}, {300, 100}})
	drag(stepped, []mgl32.Vec2{{100, 100}, {200, 100}, {300, 100}})

	if !approxEqual(single.Eye().X(), stepped.Eye().X()) {
		t.Errorf("single step eye.x = %v, two steps eye.x = %v", single.Eye().X(), stepped.Eye().X())
	}
}

func TestKeyboardPan(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		want mgl32.Vec3
	}{
		{"up", []int{common.KeyW}, mgl32.Vec3{0, 0.4, 4}},
		{"down arrow", []int{common.KeyDown}, mgl32.Vec3{0, -0.4, 4}},
		{"left", []int{common.KeyA}, mgl32.Vec3{-0.4, 0, 4}},
		{"right arrow", []int{common.KeyRight}, mgl32.Vec3{0.4, 0, 4}},
		{"diagonal", []int{common.KeyW, common.KeyD}, mgl32.Vec3{0.4, 0.4, 4}},
		{"opposed", []int{common.KeyA, common.KeyD}, mgl32.Vec3{0, 0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera(t)
			cc := NewCameraController()
			for _, k := range tt.keys {
				cc.ProcessEvent(input.KeyEvent{Key: k, Pressed: true})
			}
			cc.UpdateCamera(cam, testSize)
			eye := cam.Eye()
			if !approxEqual(eye.X(), tt.want.X()) || !approxEqual(eye.Y(), tt.want.Y()) || !approxEqual(eye.Z(), tt.want.Z()) {
				t.Errorf("eye = %v, want %v", eye, tt.want)
			}
			if !approxEqual(cam.Target().X(), tt.want.X()) || !approxEqual(cam.Target().Y(), tt.want.Y()) {
				t.Errorf("target = %v did not follow the eye", cam.Target())
			}
		})
	}
}

func TestKeyboardPanScalesWithZoom(t *testing.T) {
	cam := newTestCamera(t, WithEye(mgl32.Vec3{0, 0, 32}), WithTarget(mgl32.Vec3{0, 0, 28}))
	cc := NewCameraController(WithPanSpeed(0.5))
	cc.ProcessEvent(input.KeyEvent{Key: common.KeyD, Pressed: true})
	cc.UpdateCamera(cam, testSize)
	cc.ProcessEvent(input.KeyEvent{Key: common.KeyD})
	cc.UpdateCamera(cam, testSize)
	if !approxEqual(cam.Eye().X(), 16) {
		t.Errorf("eye.x = %v, want 16", cam.Eye().X())
	}
}
