package pipeline

import (
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option applied by NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment stages.
//
// Parameters:
//   - vs: the vertex stage
//   - fs: the fragment stage
//
// Returns:
//   - PipelineBuilderOption: a function that sets both shaders
func WithShaders(vs, fs shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vs
		p.fragmentShader = fs
	}
}

// WithTopology sets the primitive topology: LineList for grid lines, TriangleList for ribbons and markers.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithCullMode sets the face culling mode.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithBlend sets the blend mode of the color target.
//
// Parameters:
//   - mode: the blend mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend mode
func WithBlend(mode BlendMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = mode
	}
}

// WithDepth sets the depth mode.
func WithDepth(mode DepthMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depth = mode
	}
}
