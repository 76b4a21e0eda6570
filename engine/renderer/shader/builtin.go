package shader

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// InstancedSource draws a template mesh once per instance, translated by the instance offset and
// filled with the instance color. Grid lines, ribbons and point markers all use it.
//
//go:embed assets/instanced.wgsl
var InstancedSource string

// OverlaySource composites a screen-sized texture over the frame.
//
//go:embed assets/overlay.wgsl
var OverlaySource string

// Keys of the built-in shaders.
const (
	KeyInstancedVertex   = "instanced_vs"
	KeyInstancedFragment = "instanced_fs"
	KeyOverlayVertex     = "overlay_vs"
	KeyOverlayFragment   = "overlay_fs"
)

// Bindings of the overlay bind group.
const (
	OverlayTextureBinding = 0
	OverlaySamplerBinding = 1
)

// VertexLayout is slot 0 of the instanced shader: one common.Vertex per vertex.
var VertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(common.Vertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	},
}

// InstanceLayout is slot 1 of the instanced shader: one common.Instance per instance.
var InstanceLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(common.Instance{})),
	StepMode:    wgpu.VertexStepModeInstance,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(common.Instance{}.Offset)), ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(common.Instance{}.Color)), ShaderLocation: 2},
	},
}

// OverlayBindGroupLayout is group 0 of the overlay shader.
var OverlayBindGroupLayout = wgpu.BindGroupLayoutDescriptor{
	Label: "Overlay",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    OverlayTextureBinding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    OverlaySamplerBinding,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	},
}

// Instanced returns the vertex and fragment stages of the instanced shader.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
//   - error: a pre-processing error
func Instanced() (Shader, Shader, error) {
	vs, err := NewShader(KeyInstancedVertex, ShaderTypeVertex, InstancedSource, WithVertexLayouts(VertexLayout, InstanceLayout))
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader(KeyInstancedFragment, ShaderTypeFragment, InstancedSource)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}

// Overlay returns the vertex and fragment stages of the overlay shader.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
//   - error: a pre-processing error
func Overlay() (Shader, Shader, error) {
	vs, err := NewShader(KeyOverlayVertex, ShaderTypeVertex, OverlaySource)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader(KeyOverlayFragment, ShaderTypeFragment, OverlaySource, WithBindGroupLayout(0, OverlayBindGroupLayout))
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}
