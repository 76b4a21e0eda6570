package renderer

import "fmt"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank. No tearing, frame rate capped to the display.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Lowest latency, may tear.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// MSAASampleCount is the number of samples per pixel of the main render pass.
// WebGPU guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4 // default
	MSAA8x  MSAASampleCount = 8
	MSAA16x MSAASampleCount = 16
)

// Valid reports whether c is one of the supported sample counts.
//
// Returns:
//   - bool: true for 1, 4, 8 or 16
func (c MSAASampleCount) Valid() bool {
	switch c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	}
	return false
}

// RendererBackend is the interface the Renderer drives. It embeds the interface of the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
