package scene

import (
	"image"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/geometry"
)

// Primitive selects how a Batch's mesh is assembled on the GPU.
type Primitive int

const (
	// PrimitiveLines draws the mesh indices as a line list (grid lines).
	PrimitiveLines Primitive = iota

	// PrimitiveTriangles draws the mesh indices as a triangle list (ribbons and point markers).
	PrimitiveTriangles
)

// Batch is one instanced draw: a template mesh repeated once per instance.
type Batch struct {
	// Key identifies the batch across frames so GPU buffers can be reused.
	Key string
	// Primitive is the assembly mode for Mesh.
	Primitive Primitive
	// Mesh is the template geometry in world units.
	Mesh geometry.Mesh
	// Instances translate and color the template; a batch with no instances is skipped.
	Instances []common.Instance
}

// Frame is everything the renderer needs to draw one frame. It holds no GPU state.
type Frame struct {
	// Size is the viewport the frame was built for.
	Size common.Size
	// Camera is the uniform for the current view-projection.
	Camera camera.GPUCameraUniform
	// Clear is the background color.
	Clear common.Color
	// Batches are drawn in order: grid lines first, then ribbons, then points.
	Batches []Batch
	// Overlay is the label and editor image composited last. It may be nil.
	Overlay *image.RGBA
	// OverlayDirty is set when Overlay was redrawn since the previous frame.
	OverlayDirty bool
}

// Keys of the fixed batches. Curve batches use curveKey.
const (
	keyGridVertical   = "grid/vertical"
	keyGridHorizontal = "grid/horizontal"
	keyPoints         = "points"
)
