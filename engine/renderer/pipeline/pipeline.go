package pipeline

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// BlendMode selects how a pipeline's fragments combine with the color already in the target.
type BlendMode int

const (
	// BlendNone overwrites the target.
	BlendNone BlendMode = iota

	// BlendAlpha blends straight (non-premultiplied) alpha. Grid lines fade through it.
	BlendAlpha

	// BlendPremultiplied blends colors that already carry their alpha, such as images composed with image/draw.
	BlendPremultiplied
)

// State returns the wgpu blend state for the mode, or nil for BlendNone.
//
// Returns:
//   - *wgpu.BlendState: the blend state to put on the color target
func (m BlendMode) State() *wgpu.BlendState {
	alpha := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	}
	switch m {
	case BlendAlpha:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: alpha,
		}
	case BlendPremultiplied:
		return &wgpu.BlendState{Color: alpha, Alpha: alpha}
	default:
		return nil
	}
}

// DepthMode selects the depth test and write behaviour of a pipeline.
type DepthMode int

const (
	// DepthOff neither tests nor writes depth. Draw order decides what is on top.
	DepthOff DepthMode = iota

	// DepthTest tests against existing depth without writing it.
	DepthTest

	// DepthTestWrite tests and writes depth.
	DepthTestWrite
)

// Compare returns the depth compare function for the mode.
//
// Returns:
//   - wgpu.CompareFunction: Always for DepthOff, Less otherwise
func (m DepthMode) Compare() wgpu.CompareFunction {
	if m == DepthOff {
		return wgpu.CompareFunctionAlways
	}
	return wgpu.CompareFunctionLess
}

// Writes reports whether the mode writes depth.
//
// Returns:
//   - bool: true for DepthTestWrite
func (m DepthMode) Writes() bool {
	return m == DepthTestWrite
}

type pipeline struct {
	mu *sync.Mutex

	key            string
	vertexShader   shader.Shader
	fragmentShader shader.Shader
	renderPipeline *wgpu.RenderPipeline

	topology wgpu.PrimitiveTopology
	cullMode wgpu.CullMode
	blend    BlendMode
	depth    DepthMode
}

// Pipeline pairs a vertex and a fragment shader with the fixed-function state they are drawn with.
// The GPU object is created by the renderer backend and stored back with SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the key the renderer caches this pipeline under.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Shader returns the stage of the given type, or nil.
	//
	// Parameters:
	//   - shaderType: the stage to return
	//
	// Returns:
	//   - shader.Shader: the shader for the stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// Pipeline returns the GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the registered pipeline
	Pipeline() *wgpu.RenderPipeline

	// Topology returns how vertices are assembled into primitives.
	Topology() wgpu.PrimitiveTopology

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Blend returns the blend mode of the color target.
	Blend() BlendMode

	// Depth returns the depth mode.
	Depth() DepthMode

	// SetRenderPipeline stores the GPU pipeline created by the backend.
	//
	// Parameters:
	//   - p: the created pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The configuration is kept so the pipeline can be registered again.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline. Without options it draws a triangle list with no culling,
// no blending and no depth.
//
// Parameters:
//   - key: the cache key
//   - options: functional options
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(key string, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:       &sync.Mutex{},
		key:      key,
		topology: wgpu.PrimitiveTopologyTriangleList,
		cullMode: wgpu.CullModeNone,
		blend:    BlendNone,
		depth:    DepthOff,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.key
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderPipeline
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Blend() BlendMode {
	return p.blend
}

func (p *pipeline) Depth() DepthMode {
	return p.depth
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
