package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window owns the native window, turns platform input into input.Events and drives the main loop.
type Window interface {
	// SetUpdateCallback sets the function run once per loop iteration, after events are dispatched.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called with the new framebuffer size in pixels.
	SetResizeCallback(callback func(width, height int))

	// SetEventCallback sets the receiver for translated input. A framebuffer resize is delivered
	// both here, as an input.ResizedEvent, and to the resize callback.
	//
	// Parameters:
	//   - callback: the event receiver, or nil to drop events
	SetEventCallback(callback func(e input.Event))

	// RequestClose makes IsRunning report false after the current iteration.
	RequestClose()

	// SurfaceDescriptor returns the platform surface descriptor used to create the WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil before the window exists
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	IsRunning() bool

	// Close destroys the native window and terminates the platform layer.
	Close() error

	// WaitEvents blocks until an event is dispatched or timeout elapses. Callbacks run inside the call.
	WaitEvents(timeout time.Duration)

	// ProcessMessages polls events and invokes the update callback until the window closes.
	ProcessMessages()

	// Size returns the framebuffer size in pixels. It is zero while the window is minimized.
	Size() common.Size
}

// extent is a width/height pair in pixels.
type extent struct {
	w, h int
}

// engineWindow holds configuration and callbacks shared by every platform implementation.
type engineWindow struct {
	title string

	// minSize and maxSize bound interactive resizing; a non-positive max axis is unbounded.
	minSize extent
	maxSize extent

	// width and height track the framebuffer, updated on every resize.
	width  int
	height int

	// internalWindow is the platform state (*glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)
	onEvent  func(e input.Event)
}

var _ Window = &engineWindow{}

// NewWindow opens a 1280x720 window titled "oxy-graph", adjusted by options.
//
// Returns:
//   - Window: the open window
//   - error: the platform error if GLFW or the native window failed to initialize
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:   "oxy-graph",
		minSize: extent{320, 240},
		width:   1280,
		height:  720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetEventCallback(callback func(e input.Event)) {
	w.onEvent = callback
}

func (w *engineWindow) emit(e input.Event) {
	if w.onEvent != nil {
		w.onEvent(e)
	}
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) WaitEvents(timeout time.Duration) {
	if timeout > 0 {
		platformWaitEvents(w, timeout)
	}
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Size() common.Size {
	return common.Size{Width: uint32(max(w.width, 0)), Height: uint32(max(w.height, 0))}
}
