package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name.
//
// Parameters:
//   - name: the WGSL function to use as the entry point
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithVertexLayouts sets the vertex buffer layouts, one per vertex buffer slot. Ignored for fragment shaders.
//
// Parameters:
//   - layouts: the layouts in slot order
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// WithBindGroupLayout sets the layout of a bind group that annotations cannot describe,
// such as textures and samplers. It replaces any layout generated for the same group.
//
// Parameters:
//   - group: the @group index
//   - desc: the layout descriptor
//
// Returns:
//   - ShaderBuilderOption: a function that sets the bind group layout
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}
