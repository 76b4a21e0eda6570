// Package bind_group_provider holds the GPU resources the renderer creates for one bind group or one mesh.
package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Binding is the set of resources behind one binding index. At most one field is set,
// except Texture and View which travel together.
type Binding struct {
	Buffer  *wgpu.Buffer
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Sampler *wgpu.Sampler
}

func (b *Binding) release() {
	if b.View != nil {
		b.View.Release()
	}
	if b.Texture != nil {
		b.Texture.Release()
	}
	if b.Sampler != nil {
		b.Sampler.Release()
	}
	if b.Buffer != nil {
		b.Buffer.Release()
	}
	*b = Binding{}
}

// Mesh is what one instanced DrawIndexed call reads: vertex slot 0, the index buffer,
// and per-instance data on vertex slot 1. Buffers only grow; counts describe the live prefix.
type Mesh struct {
	Vertices  *wgpu.Buffer
	Indices   *wgpu.Buffer
	Instances *wgpu.Buffer

	IndexCount    int
	InstanceCount int
}

// Drawable reports whether every buffer exists and both counts are positive.
func (m *Mesh) Drawable() bool {
	return m.Vertices != nil && m.Indices != nil && m.Instances != nil &&
		m.IndexCount > 0 && m.InstanceCount > 0
}

func (m *Mesh) release() {
	for _, buf := range []*wgpu.Buffer{m.Vertices, m.Indices, m.Instances} {
		if buf != nil {
			buf.Release()
		}
	}
	*m = Mesh{}
}

// BufferWrite stages Data into the buffer at Binding of Provider, starting at Offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// BindGroupProvider owns a bind group with its layout and bindings, or a Mesh, or both.
// The renderer backend fills it in; nothing here talks to the device.
type BindGroupProvider interface {
	// Label prefixes the debug labels of every GPU object created for this provider.
	Label() string

	BindGroup() *wgpu.BindGroup
	SetBindGroup(bg *wgpu.BindGroup)
	BindGroupLayout() *wgpu.BindGroupLayout
	SetBindGroupLayout(layout *wgpu.BindGroupLayout)

	// Binding returns the resources at index, creating an empty entry on first use.
	//
	// Parameters:
	//   - index: the @binding index in the shader
	//
	// Returns:
	//   - *Binding: the entry, never nil
	Binding(index int) *Binding

	// Mesh returns the provider's mesh buffers, never nil.
	Mesh() *Mesh

	// Release frees every GPU object and leaves the provider empty but reusable.
	Release()
}

type bindGroupProvider struct {
	label    string
	group    *wgpu.BindGroup
	layout   *wgpu.BindGroupLayout
	bindings map[int]*Binding
	mesh     Mesh
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider returns an empty provider.
//
// Parameters:
//   - label: debug label, e.g. the batch key
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{label: label, bindings: make(map[int]*Binding)}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.group
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.group = bg
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.layout
}

func (p *bindGroupProvider) SetBindGroupLayout(layout *wgpu.BindGroupLayout) {
	p.layout = layout
}

func (p *bindGroupProvider) Binding(index int) *Binding {
	b, ok := p.bindings[index]
	if !ok {
		b = &Binding{}
		p.bindings[index] = b
	}
	return b
}

func (p *bindGroupProvider) Mesh() *Mesh {
	return &p.mesh
}

func (p *bindGroupProvider) Release() {
	// The group references the bindings, so it goes first.
	if p.group != nil {
		p.group.Release()
		p.group = nil
	}
	for index, b := range p.bindings {
		b.release()
		delete(p.bindings, index)
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	p.mesh.release()
}
