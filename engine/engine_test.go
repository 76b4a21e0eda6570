package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
)

type fakeWindow struct {
	window.Window
	width, height int
	onEvent       func(input.Event)
	onUpdate      func()
	closeRequests int
	waits         []time.Duration
}

func (w *fakeWindow) SetEventCallback(cb func(input.Event)) { w.onEvent = cb }
func (w *fakeWindow) SetUpdateCallback(cb func())           { w.onUpdate = cb }
func (w *fakeWindow) RequestClose()                         { w.closeRequests++ }
func (w *fakeWindow) WaitEvents(d time.Duration)            { w.waits = append(w.waits, d) }
func (w *fakeWindow) Size() common.Size {
	return common.Size{Width: uint32(w.width), Height: uint32(w.height)}
}

type fakeRenderer struct {
	renderer.Renderer
	frames  []*scene.Frame
	resizes [][2]int
	err     error
}

func (r *fakeRenderer) Render(f *scene.Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (*engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	w := &fakeWindow{width: 800, height: 600}
	r := &fakeRenderer{}
	s, err := scene.NewScene(scene.WithSize(common.Size{Width: 800, Height: 600}))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	e, err := NewEngine(w, r, s, options...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e.(*engine), w, r
}

func TestNewEngineRequiresComponents(t *testing.T) {
	if _, err := NewEngine(nil, nil, nil); !errors.Is(err, ErrMissingComponent) {
		t.Errorf("NewEngine(nil, nil, nil) error = %v, want ErrMissingComponent", err)
	}
}

func TestEngineFrameRendersScene(t *testing.T) {
	e, w, r := newTestEngine(t)
	if w.onUpdate == nil || w.onEvent == nil {
		t.Fatal("engine did not register window callbacks")
	}

	w.onUpdate()
	if len(r.frames) != 1 {
		t.Fatalf("rendered %d frames, want 1", len(r.frames))
	}
	if got := r.frames[0].Size; got != (common.Size{Width: 800, Height: 600}) {
		t.Errorf("frame size = %+v", got)
	}
	if r.frames[0] != e.Scene().Frame() {
		t.Error("renderer did not receive the scene's frame")
	}

	r.err = errors.New("lost device")
	w.onUpdate()
	if len(r.frames) != 2 {
		t.Errorf("render errors should not stop the loop, got %d frames", len(r.frames))
	}
}

func TestEngineFrameLimit(t *testing.T) {
	_, w, r := newTestEngine(t, WithRenderFrameLimit(1))
	w.onUpdate()
	w.onUpdate()
	if len(r.frames) != 1 {
		t.Errorf("rendered %d frames within one limit period, want 1", len(r.frames))
	}
	if len(w.waits) != 1 {
		t.Fatalf("skipped frame waited %d times, want 1", len(w.waits))
	}
	if d := w.waits[0]; d <= 0 || d > time.Second {
		t.Errorf("wait = %v, want the remainder of the 1s period", d)
	}

	_, w, _ = newTestEngine(t)
	w.onUpdate()
	w.onUpdate()
	if len(w.waits) != 0 {
		t.Errorf("uncapped loop waited %d times", len(w.waits))
	}
}

func TestEngineEvents(t *testing.T) {
	tests := []struct {
		name        string
		options     []EngineBuilderOption
		events      []input.Event
		wantClose   int
		wantResizes int
	}{
		{
			name:      "escape closes",
			events:    []input.Event{input.KeyEvent{Key: common.KeyEsc, Pressed: true}},
			wantClose: 1,
		},
		{
			name:   "escape release ignored",
			events: []input.Event{input.KeyEvent{Key: common.KeyEsc, Pressed: false}},
		},
		{
			name:    "escape disabled",
			options: []EngineBuilderOption{WithQuitOnEscape(false)},
			events:  []input.Event{input.KeyEvent{Key: common.KeyEsc, Pressed: true}},
		},
		{
			name: "escape unfocuses editor first",
			events: []input.Event{
				input.KeyEvent{Key: common.KeyF2, Pressed: true},
				input.KeyEvent{Key: common.KeyEsc, Pressed: true},
			},
		},
		{
			name:        "resize reconfigures surface",
			events:      []input.Event{input.ResizedEvent{Width: 1024, Height: 768}},
			wantResizes: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, w, r := newTestEngine(t, tt.options...)
			for _, ev := range tt.events {
				w.onEvent(ev)
			}
			if w.closeRequests != tt.wantClose {
				t.Errorf("close requests = %d, want %d", w.closeRequests, tt.wantClose)
			}
			if len(r.resizes) != tt.wantResizes {
				t.Errorf("resizes = %d, want %d", len(r.resizes), tt.wantResizes)
			}
			if tt.wantResizes > 0 && e.Scene().Size() != (common.Size{Width: 1024, Height: 768}) {
				t.Errorf("scene size = %+v", e.Scene().Size())
			}
		})
	}
}

func TestSetRenderFrameLimit(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.SetRenderFrameLimit(50)
	if e.renderFrameLimit != 20*time.Millisecond {
		t.Errorf("renderFrameLimit = %v, want 20ms", e.renderFrameLimit)
	}
	e.SetRenderFrameLimit(0)
	if e.renderFrameLimit != 0 {
		t.Errorf("renderFrameLimit = %v, want 0", e.renderFrameLimit)
	}
}

func TestProfilerToggle(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if e.profiler != nil {
		t.Fatal("profiling on by default")
	}

	e, w, _ := newTestEngine(t, WithProfiling(250*time.Millisecond))
	if e.profiler == nil {
		t.Fatal("WithProfiling did not start the profiler")
	}
	first := e.profiler
	e.EnableProfiler()
	if e.profiler != first {
		t.Error("EnableProfiler restarted a running profiler")
	}
	w.onUpdate()

	e.DisableProfiler()
	if e.profiler != nil {
		t.Error("DisableProfiler left the profiler running")
	}
	w.onUpdate()
}
