package renderer

import (
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/pipeline"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipeline registers an extra pipeline when the renderer is created. A pipeline keyed
// PipelineLines, PipelineTriangles or PipelineOverlay replaces the built-in one.
//
// Parameters:
//   - p: the Pipeline to register
//
// Returns:
//   - RendererBuilderOption: a function that queues the pipeline
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineCache[p.PipelineKey()] = p
	}
}

// WithPresentMode sets the present mode the surface is first configured with.
//
// Parameters:
//   - mode: PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: a function that sets the present mode
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the sample count of the main render pass. The default is MSAA4x.
// Invalid counts are ignored.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: a function that sets the sample count
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if count.Valid() {
			r.pendingMSAA = &count
		}
	}
}

// WithForceSoftwareRenderer requests the fallback (CPU) adapter, e.g. lavapipe or SwiftShader.
// Useful on headless machines and in CI.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
