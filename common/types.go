// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is a single mesh vertex as uploaded to the GPU.
// Only the position is stored; z is always 0 for graph geometry.
type Vertex struct {
	Position [3]float32
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// Predefined colors used by the graph.
var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
	ColorRed   = Color{0.85, 0.1, 0.1, 1}
	ColorBlue  = Color{0.1, 0.3, 0.85, 1}
	ColorGreen = Color{0.1, 0.6, 0.2, 1}
)

// WithAlpha returns a copy of c with the alpha channel replaced.
//
// Parameters:
//   - a: the new alpha value
//
// Returns:
//   - Color: the modified color
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Size is a pixel extent of a window or surface.
type Size struct {
	Width  uint32
	Height uint32
}

// Empty reports whether either dimension is zero (for example a minimized window).
func (s Size) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

// Aspect returns Width / Height. The result is undefined for an empty size.
func (s Size) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// Instance is per-instance data for instanced draws (grid lines and point markers).
// Layout: offset vec4 at 0, color vec4 at 16. Stride 32 bytes.
type Instance struct {
	// Offset is the world-space translation applied to the template mesh. W is unused.
	Offset [4]float32
	// Color is the instance color; grid lines use the alpha channel for emphasis.
	Color Color
}

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level.
	MaxAnisotropy uint16
}

// Descriptor builds the sampler descriptor, filling unset fields with repeat addressing,
// linear filtering and a 0..32 LOD range.
func (s SamplerStagingData) Descriptor(label string) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   Coalesce(s.LodMaxClamp, 32),
		MaxAnisotropy: Coalesce(s.MaxAnisotropy, 1),
	}
}

// DefaultOverlaySampler returns clamp-to-edge linear sampling suitable for a screen-sized overlay.
func DefaultOverlaySampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	}
}
