package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Keys of the built-in pipelines.
const (
	PipelineLines     = "lines"
	PipelineTriangles = "triangles"
	PipelineOverlay   = "overlay"
)

// overlayVertexCount is the number of vertices of the fullscreen triangle the overlay shader generates.
const overlayVertexCount = 3

// ErrNoSurface is returned when the window cannot provide a surface, or the surface reports no usable format.
var ErrNoSurface = errors.New("window has no surface")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	camera  bind_group_provider.BindGroupProvider
	overlay bind_group_provider.BindGroupProvider
	// overlayReady is set once the overlay bind group has been built.
	overlayReady bool
	meshes       map[string]bind_group_provider.BindGroupProvider
	clear        common.Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns every GPU resource. It turns a scene.Frame, which is plain data, into buffer
// uploads and draw calls. Batches are matched to GPU buffers by key so buffers are reused across frames.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes the present mode. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render uploads the frame's data and draws it: batches in order, then the overlay.
	// A frame with an empty size draws nothing. When the swapchain texture cannot be acquired
	// the frame is skipped and logged.
	//
	// Parameters:
	//   - frame: the frame to draw
	//
	// Returns:
	//   - error: an error if a GPU upload failed
	Render(frame *scene.Frame) error

	// Release frees every GPU resource the renderer owns, including the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window and registers the built-in pipelines.
//
// Parameters:
//   - backendType: the GPU backend implementation to use
//   - window: the window that provides the surface
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the created Renderer
//   - error: an error if the device, surface or built-in pipelines could not be created
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		meshes:        make(map[string]bind_group_provider.BindGroupProvider),
		clear:         common.ColorWhite,
	}
	for _, option := range options {
		option(r)
	}

	desc := window.SurfaceDescriptor()
	if desc == nil {
		return nil, ErrNoSurface
	}

	switch backendType {
	case BackendTypeWGPU:
		sampleCount := MSAA4x
		if r.pendingMSAA != nil {
			sampleCount = *r.pendingMSAA
		}
		b, err := newWGPURendererBackend(desc, r.forceFallbackAdapter, sampleCount)
		if err != nil {
			return nil, err
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("unsupported renderer backend %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clear)
	size := window.Size()
	if err := r.backend.ConfigureSurface(int(size.Width), int(size.Height)); err != nil {
		r.backend.Release()
		return nil, err
	}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// init registers the built-in pipelines and creates the camera and overlay providers.
func (r *renderer) init() error {
	builtins, err := builtinPipelines()
	if err != nil {
		return err
	}
	// Pipelines supplied through options replace the built-in pipeline of the same key.
	pending := make([]pipeline.Pipeline, 0, len(builtins)+len(r.pipelineCache))
	for _, p := range builtins {
		if _, ok := r.pipelineCache[p.PipelineKey()]; !ok {
			pending = append(pending, p)
		}
	}
	for _, p := range r.pipelineCache {
		pending = append(pending, p)
	}
	if err := r.RegisterPipelines(pending...); err != nil {
		return err
	}

	// The camera group must match the pipeline's merged layout, not one stage's view of it.
	lines := r.pipelineCache[PipelineLines]
	cameraLayout := mergeBindGroupLayouts(
		lines.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors(),
		lines.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptors(),
	)[0]
	r.camera = bind_group_provider.NewBindGroupProvider("Camera")
	if err := r.backend.InitBindGroup(r.camera, cameraLayout); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	r.overlay = bind_group_provider.NewBindGroupProvider("Overlay")
	if err := r.backend.InitSampler(r.overlay, shader.OverlaySamplerBinding, common.DefaultOverlaySampler()); err != nil {
		return fmt.Errorf("overlay sampler: %w", err)
	}
	return nil
}

func builtinPipelines() ([]pipeline.Pipeline, error) {
	vs, fs, err := shader.Instanced()
	if err != nil {
		return nil, err
	}
	ovs, ofs, err := shader.Overlay()
	if err != nil {
		return nil, err
	}

	flat := func(key string, topology wgpu.PrimitiveTopology, vs, fs shader.Shader, blend pipeline.BlendMode) pipeline.Pipeline {
		return pipeline.NewPipeline(key,
			pipeline.WithShaders(vs, fs),
			pipeline.WithTopology(topology),
			pipeline.WithBlend(blend),
		)
	}
	return []pipeline.Pipeline{
		flat(PipelineLines, wgpu.PrimitiveTopologyLineList, vs, fs, pipeline.BlendAlpha),
		flat(PipelineTriangles, wgpu.PrimitiveTopologyTriangleList, vs, fs, pipeline.BlendAlpha),
		// image/draw composes the overlay with premultiplied alpha
		flat(PipelineOverlay, wgpu.PrimitiveTopologyTriangleList, ovs, ofs, pipeline.BlendPremultiplied),
	}, nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if existing, ok := r.pipelineCache[p.PipelineKey()]; ok && existing.Pipeline() != nil {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %s: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) Render(frame *scene.Frame) error {
	if frame == nil || frame.Size.Empty() {
		return nil
	}
	if frame.Clear != r.clear {
		r.clear = frame.Clear
		r.backend.SetClearColor(frame.Clear)
	}

	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.camera,
		Binding:  0,
		Data:     frame.Camera.Marshal(),
	}})

	draws, err := r.uploadBatches(frame.Batches)
	if err != nil {
		return err
	}
	if err := r.uploadOverlay(frame); err != nil {
		return err
	}

	if err := r.backend.BeginFrame(); err != nil {
		common.Logger().Warn("skipping frame", "error", err)
		return nil
	}

	lines := r.Pipeline(PipelineLines)
	triangles := r.Pipeline(PipelineTriangles)
	cameraGroup := []bind_group_provider.BindGroupProvider{r.camera}
	for _, d := range draws {
		p := lines
		if d.primitive == scene.PrimitiveTriangles {
			p = triangles
		}
		r.backend.DrawCall(p, d.provider, cameraGroup)
	}
	if r.overlayReady && frame.Overlay != nil {
		r.backend.Draw(r.Pipeline(PipelineOverlay), overlayVertexCount, []bind_group_provider.BindGroupProvider{r.overlay})
	}

	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

type draw struct {
	primitive scene.Primitive
	provider  bind_group_provider.BindGroupProvider
}

// uploadBatches writes every non-empty batch into the provider matching its key and releases
// providers whose key did not appear in this frame.
func (r *renderer) uploadBatches(batches []scene.Batch) ([]draw, error) {
	seen := make(map[string]bool, len(batches))
	draws := make([]draw, 0, len(batches))
	for _, b := range batches {
		if b.Mesh.Empty() || len(b.Instances) == 0 {
			continue
		}
		p, ok := r.meshes[b.Key]
		if !ok {
			p = bind_group_provider.NewBindGroupProvider(b.Key)
			r.meshes[b.Key] = p
		}
		seen[b.Key] = true

		if err := r.backend.WriteMesh(p, common.SliceToBytes(b.Mesh.Vertices), common.SliceToBytes(b.Mesh.Indices), len(b.Mesh.Indices)); err != nil {
			return nil, fmt.Errorf("batch %s: %w", b.Key, err)
		}
		if err := r.backend.WriteInstances(p, common.SliceToBytes(b.Instances), len(b.Instances)); err != nil {
			return nil, fmt.Errorf("batch %s: %w", b.Key, err)
		}
		draws = append(draws, draw{primitive: b.Primitive, provider: p})
	}

	for key, p := range r.meshes {
		if !seen[key] {
			p.Release()
			delete(r.meshes, key)
		}
	}
	return draws, nil
}

func (r *renderer) uploadOverlay(frame *scene.Frame) error {
	img := frame.Overlay
	if img == nil || (!frame.OverlayDirty && r.overlayReady) {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil
	}
	recreated, err := r.backend.WriteTexture(r.overlay, shader.OverlayTextureBinding, common.TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	})
	if err != nil {
		return fmt.Errorf("overlay texture: %w", err)
	}
	if recreated || !r.overlayReady {
		if err := r.backend.InitBindGroup(r.overlay, shader.OverlayBindGroupLayout); err != nil {
			return fmt.Errorf("overlay bind group: %w", err)
		}
		r.overlayReady = true
	}
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.meshes {
		p.Release()
		delete(r.meshes, key)
	}
	if r.camera != nil {
		r.camera.Release()
	}
	if r.overlay != nil {
		r.overlay.Release()
	}
	for _, p := range r.pipelineCache {
		p.Release()
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
