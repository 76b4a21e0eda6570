package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// registryEntry pairs an embedded WGSL struct with its type name and byte size.
type registryEntry struct {
	// Source is the WGSL struct definition injected by @oxy:include.
	Source string
	// Type is the WGSL type name used in generated declarations.
	Type string
	// Size is the minimum binding size of a buffer holding one struct.
	Size uint64
}

type addressSpace struct {
	syntax     string
	bufferType wgpu.BufferBindingType
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]addressSpace

	// reset at the start of every Process call
	declarations []Annotation
	layouts      map[int]wgpu.BindGroupLayoutDescriptor
}

// PreProcessor expands @oxy: annotations in WGSL source and collects the bind group
// layouts implied by group annotations.
type PreProcessor interface {
	// Process replaces annotations with WGSL. Layout entries produced by group annotations are
	// given the supplied visibility.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//   - visibility: the shader stage the source is compiled for
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if an annotation is malformed or names an unknown struct
	Process(source string, visibility wgpu.ShaderStage) (string, error)

	// Declarations returns the group annotations found by the last Process call, in source order.
	Declarations() []Annotation

	// BindGroupLayouts returns the layouts built by the last Process call, keyed by group index.
	BindGroupLayouts() map[int]wgpu.BindGroupLayoutDescriptor
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	var cameraUniform camera.GPUCameraUniform
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera: {Source: camera.GPUCameraUniformSource, Type: "CameraUniform", Size: uint64(cameraUniform.Size())},
		},
		addressSpaceRegistry: map[AnnotationArg]addressSpace{
			annotationArgUniform: {syntax: "var<uniform>", bufferType: wgpu.BufferBindingTypeUniform},
			annotationArgRead:    {syntax: "var<storage, read>", bufferType: wgpu.BufferBindingTypeReadOnlyStorage},
		},
	}
}

func (p *preProcessor) Process(source string, visibility wgpu.ShaderStage) (string, error) {
	p.declarations = nil
	p.layouts = make(map[int]wgpu.BindGroupLayoutDescriptor)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", a.Line, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			space, ok := p.addressSpaceRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown address space %q", a.Line, a.Args[0])
			}
			entry, ok := p.structRegistry[a.Args[2]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct type %q", a.Line, a.Args[2])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, space.syntax, a.Args[1], entry.Type))

			desc := p.layouts[*a.Group]
			desc.Label = fmt.Sprintf("Group %d", *a.Group)
			desc.Entries = append(desc.Entries, wgpu.BindGroupLayoutEntry{
				Binding:    uint32(*a.Binding),
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           space.bufferType,
					MinBindingSize: entry.Size,
				},
			})
			p.layouts[*a.Group] = desc
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) BindGroupLayouts() map[int]wgpu.BindGroupLayoutDescriptor {
	return p.layouts
}
