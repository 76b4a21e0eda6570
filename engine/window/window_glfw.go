package window

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotOpen = errors.New("window is not open")

// glfwWindow is the GLFW state behind engineWindow.internalWindow.
type glfwWindow struct {
	parent *engineWindow
	handle *glfw.Window
}

// newPlatformWindow initializes GLFW on the calling thread, opens a window without a GL
// context and routes its callbacks into w.
//
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	// GLFW calls must stay on the thread that initialized it.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	// The surface is driven by WebGPU.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	handle.SetSizeLimits(w.minSize.w, w.minSize.h, sizeLimit(w.maxSize.w), sizeLimit(w.maxSize.h))

	gw := &glfwWindow{parent: w, handle: handle}
	gw.bindCallbacks()
	w.internalWindow = gw

	// The framebuffer can be larger than the requested size on high-DPI displays.
	w.width, w.height = handle.GetFramebufferSize()
	return nil
}

func (gw *glfwWindow) bindCallbacks() {
	w := gw.parent
	gw.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key != glfw.KeyUnknown {
			w.emit(input.KeyEvent{Key: int(key), Pressed: action != glfw.Release})
		}
	})
	gw.handle.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.emit(input.CharEvent{Char: char})
	})
	gw.handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.emit(input.MouseWheelEvent{Unit: input.ScrollLines, DeltaY: float32(yoff)})
	})
	gw.handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.emit(input.MouseButtonEvent{Button: int(button), Pressed: action == glfw.Press})
	})
	gw.handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		sx, sy := gw.contentScale()
		w.emit(input.CursorMovedEvent{X: float32(x * sx), Y: float32(y * sy)})
	})
	gw.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
		w.emit(input.ResizedEvent{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))})
	})
}

// contentScale converts screen coordinates to framebuffer pixels, so cursor positions line
// up with the viewport on high-DPI displays.
func (gw *glfwWindow) contentScale() (float64, float64) {
	ww, wh := gw.handle.GetSize()
	if ww <= 0 || wh <= 0 {
		return 1, 1
	}
	fw, fh := gw.handle.GetFramebufferSize()
	return float64(fw) / float64(ww), float64(fh) / float64(wh)
}

func platformWindow(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && gw.handle != nil
}

func platformRequestClose(w *engineWindow) {
	if gw, ok := platformWindow(w); ok {
		gw.handle.SetShouldClose(true)
	}
}

// platformGetSurfaceDescriptor asks the wgpuglfw bridge for the native handles
// (HWND, Xlib, Wayland or CAMetalLayer).
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := platformWindow(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := platformWindow(w)
	return ok && !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the window and terminates GLFW. A second call returns errNotOpen.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := platformWindow(w)
	if !ok {
		return errNotOpen
	}
	gw.handle.Destroy()
	gw.handle = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages dispatches pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

func platformWaitEvents(w *engineWindow, timeout time.Duration) {
	if _, ok := platformWindow(w); ok {
		glfw.WaitEventsTimeout(timeout.Seconds())
	}
}

// sizeLimit maps a non-positive maximum to GLFW's "no limit" value.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}
