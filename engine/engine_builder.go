package engine

import (
	"time"
)

// EngineBuilderOption configures the engine inside NewEngine.
type EngineBuilderOption func(*engine)

// WithProfiling logs frame rate, frame time spread and memory statistics every interval.
// A non-positive interval leaves profiling off.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if interval > 0 {
			e.profileInterval = interval
			e.EnableProfiler()
		}
	}
}

// WithQuitOnEscape controls whether an Escape press the scene leaves unconsumed closes the window. On by default.
func WithQuitOnEscape(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.quitOnEscape = enabled
	}
}

// WithRenderFrameLimit caps rendering at fps frames per second; 0 renders every loop iteration.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
