package shader

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrEmptySource is returned by NewShader when no WGSL source is given.
var ErrEmptySource = errors.New("shader source is empty")

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// Visibility returns the wgpu shader stage matching the shader type.
func (t ShaderType) Visibility() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader is a pre-processed WGSL shader plus the layout information a pipeline needs:
// its entry point, vertex buffer layouts and bind group layout descriptors.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage this shader is compiled for.
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts in slot order. Empty for fragment shaders
	// and for vertex shaders that generate their vertices.
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors retrieves the bind group layouts, keyed by group index.
	// Entries come from @oxy:group annotations and from WithBindGroupLayout.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Module returns the shader module descriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the group annotations found in the source.
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes source and creates a Shader. The entry point defaults to
// "vs_main" for vertex shaders and "fs_main" for fragment shaders.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the pipeline stage
//   - source: the WGSL source, possibly containing @oxy: annotations
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the new shader
//   - error: ErrEmptySource or a pre-processing error
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrEmptySource)
	}
	s := &shader{
		key:        key,
		shaderType: shaderType,
		entryPoint: "vs_main",
		pp:         NewPreProcessor(),
	}
	if shaderType == ShaderTypeFragment {
		s.entryPoint = "fs_main"
	}

	processed, err := s.pp.Process(source, shaderType.Visibility())
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to pre-process source: %w", key, err)
	}
	s.source = processed
	s.bindGroupLayoutDescriptors = maps.Clone(s.pp.BindGroupLayouts())
	if s.bindGroupLayoutDescriptors == nil {
		s.bindGroupLayoutDescriptors = make(map[int]wgpu.BindGroupLayoutDescriptor)
	}

	for _, option := range options {
		option(s)
	}
	if shaderType == ShaderTypeFragment {
		s.vertexLayouts = nil
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}
