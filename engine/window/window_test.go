package window

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestBuilderOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  WindowBuilderOption
		want engineWindow
	}{
		{"title", WithTitle("plot"), engineWindow{title: "plot", width: 1280, height: 720}},
		{"size", WithSize(640, 480), engineWindow{width: 640, height: 480}},
		{"size ignores zero", WithSize(0, 480), engineWindow{width: 1280, height: 720}},
		{"min clamps", WithMinSize(-5, 10), engineWindow{minSize: extent{1, 10}, width: 1280, height: 720}},
		{"max", WithMaxSize(1920, 0), engineWindow{maxSize: extent{1920, 0}, width: 1280, height: 720}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := engineWindow{width: 1280, height: 720}
			tt.opt(&w)
			if w.title != tt.want.title && tt.want.title != "" {
				t.Errorf("title = %q, want %q", w.title, tt.want.title)
			}
			if w.width != tt.want.width || w.height != tt.want.height {
				t.Errorf("size = %dx%d, want %dx%d", w.width, w.height, tt.want.width, tt.want.height)
			}
			if w.minSize != tt.want.minSize || w.maxSize != tt.want.maxSize {
				t.Errorf("limits = %v/%v, want %v/%v", w.minSize, w.maxSize, tt.want.minSize, tt.want.maxSize)
			}
		})
	}
}

func TestSizeLimit(t *testing.T) {
	if got := sizeLimit(0); got != glfw.DontCare {
		t.Errorf("sizeLimit(0) = %d, want DontCare", got)
	}
	if got := sizeLimit(800); got != 800 {
		t.Errorf("sizeLimit(800) = %d", got)
	}
}

func TestSizeClampsNegative(t *testing.T) {
	w := &engineWindow{width: -1, height: 300}
	if got := w.Size(); got != (common.Size{Width: 0, Height: 300}) {
		t.Errorf("Size() = %+v", got)
	}
}

func TestEmitWithoutCallback(t *testing.T) {
	w := &engineWindow{}
	w.emit(input.CharEvent{Char: 'x'})

	var got []input.Event
	w.SetEventCallback(func(e input.Event) { got = append(got, e) })
	w.emit(input.CharEvent{Char: 'y'})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
}

func TestUnopenedWindow(t *testing.T) {
	w := &engineWindow{}
	if w.IsRunning() {
		t.Error("unopened window reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("unopened window has a surface descriptor")
	}
	if err := w.Close(); !errors.Is(err, errNotOpen) {
		t.Errorf("Close() = %v, want errNotOpen", err)
	}
	w.RequestClose()
	w.WaitEvents(time.Millisecond)
	w.ProcessMessages()
}
