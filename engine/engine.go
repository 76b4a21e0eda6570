package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
)

// ErrMissingComponent is returned by NewEngine when the window, renderer or scene is nil.
var ErrMissingComponent = errors.New("engine requires a window, a renderer and a scene")

// engine implements the Engine interface.
// Everything runs on the window thread: events are dispatched from the window callbacks and
// one frame is built and drawn per message loop iteration.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	profiler        *profiler.Profiler // nil while profiling is off
	profileInterval time.Duration

	quitOnEscape     bool
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time

	quitOnce sync.Once
}

// Engine is the main entry point for the graph application.
// It connects the window's events to the scene and the scene's frames to the renderer.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer that draws the scene.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the graph scene.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler starts logging frame and memory statistics once per profile interval.
	// The first report covers the frames since this call.
	EnableProfiler()

	// DisableProfiler stops the reports.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frame builds and draws one frame. Run calls it once per message loop iteration.
	Frame()

	// Run starts the main loop and blocks until the window closes.
	Run()

	// Quit closes the window, ending Run. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine that drives s with events from w and draws it with r.
//
// Parameters:
//   - w: the window that produces events and hosts the surface
//   - r: the renderer bound to w's surface
//   - s: the scene to drive
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrMissingComponent if w, r or s is nil
func NewEngine(w window.Window, r renderer.Renderer, s scene.Scene, options ...EngineBuilderOption) (Engine, error) {
	if w == nil || r == nil || s == nil {
		return nil, ErrMissingComponent
	}
	e := &engine{
		window:       w,
		renderer:     r,
		scene:        s,
		quitOnEscape: true,
	}
	for _, opt := range options {
		opt(e)
	}

	w.SetEventCallback(e.handleEvent)
	w.SetUpdateCallback(e.Frame)
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

// handleEvent routes a window event to the scene. Resizes also reconfigure the surface, and an
// Escape the scene did not consume closes the window.
func (e *engine) handleEvent(ev input.Event) {
	consumed := e.scene.ProcessEvent(ev)

	switch ev := ev.(type) {
	case input.ResizedEvent:
		if err := e.renderer.Resize(int(ev.Width), int(ev.Height)); err != nil {
			common.Logger().Error("failed to resize surface", "width", ev.Width, "height", ev.Height, "error", err)
		}
	case input.KeyEvent:
		if !consumed && e.quitOnEscape && ev.Pressed && ev.Key == common.KeyEsc {
			e.Quit()
		}
	}
}

func (e *engine) Frame() {
	now := time.Now()
	if e.renderFrameLimit > 0 && !e.lastFrame.IsZero() {
		if wait := e.renderFrameLimit - now.Sub(e.lastFrame); wait > 0 {
			// Sleep in the event queue until input arrives or the frame is due.
			e.window.WaitEvents(wait)
			return
		}
	}
	e.lastFrame = now

	e.scene.Update(e.window.Size())
	if err := e.renderer.Render(e.scene.Frame()); err != nil {
		common.Logger().Error("failed to render frame", "error", err)
	}

	if e.profiler != nil {
		if stats, ok := e.profiler.Tick(time.Now()); ok {
			common.Logger().Info("profiler", "stats", stats)
		}
	}
}

func (e *engine) Run() {
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.window.RequestClose()
	})
}

func (e *engine) EnableProfiler() {
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.profileInterval)
	}
}

func (e *engine) DisableProfiler() {
	e.profiler = nil
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
