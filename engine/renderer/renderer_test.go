package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestMSAASampleCountValid(t *testing.T) {
	tests := []struct {
		count MSAASampleCount
		want  bool
	}{
		{0, false},
		{MSAAOff, true},
		{2, false},
		{MSAA4x, true},
		{MSAA8x, true},
		{MSAA16x, true},
		{32, false},
	}
	for _, tt := range tests {
		if got := tt.count.Valid(); got != tt.want {
			t.Errorf("MSAASampleCount(%d).Valid() = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestPresentModeString(t *testing.T) {
	if PresentModeVSync.String() != "vsync" || PresentModeUncapped.String() != "uncapped" {
		t.Errorf("got %q, %q", PresentModeVSync, PresentModeUncapped)
	}
	if got := PresentMode(7).String(); got != "PresentMode(7)" {
		t.Errorf("unknown mode = %q", got)
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vs, fs, err := shader.Instanced()
	if err != nil {
		t.Fatalf("Instanced: %v", err)
	}
	merged := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	camera, ok := merged[0]
	if !ok || len(camera.Entries) != 1 {
		t.Fatalf("group 0 = %+v", camera)
	}
	want := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	if got := camera.Entries[0].Visibility; got != want {
		t.Errorf("camera visibility = %v, want %v", got, want)
	}

	only := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 3, Visibility: wgpu.ShaderStageFragment}}},
	}
	merged = mergeBindGroupLayouts(nil, only)
	if len(merged) != 1 || merged[1].Entries[0].Binding != 3 {
		t.Errorf("fragment-only merge = %+v", merged)
	}

	a := map[int]wgpu.BindGroupLayoutDescriptor{0: {Entries: []wgpu.BindGroupLayoutEntry{
		{Binding: 2, Visibility: wgpu.ShaderStageVertex},
		{Binding: 0, Visibility: wgpu.ShaderStageVertex},
	}}}
	b := map[int]wgpu.BindGroupLayoutDescriptor{0: {Entries: []wgpu.BindGroupLayoutEntry{
		{Binding: 1, Visibility: wgpu.ShaderStageFragment},
	}}}
	entries := mergeBindGroupLayouts(a, b)[0].Entries
	for i, e := range entries {
		if e.Binding != uint32(i) {
			t.Fatalf("entries not sorted by binding: %+v", entries)
		}
	}
}

func TestPickSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
	}{
		{"srgb preferred", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}, wgpu.TextureFormatBGRA8UnormSrgb},
		{"rgba srgb", []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb}, wgpu.TextureFormatRGBA8UnormSrgb},
		{"first fallback", []wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatBGRA8Unorm}, wgpu.TextureFormatRGBA16Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickSurfaceFormat(tt.formats); got != tt.want {
				t.Errorf("pickSurfaceFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickAlphaMode(t *testing.T) {
	if got := pickAlphaMode([]wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeAuto, wgpu.CompositeAlphaModeOpaque}); got != wgpu.CompositeAlphaModeOpaque {
		t.Errorf("got %v, want opaque", got)
	}
	if got := pickAlphaMode([]wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeInherit}); got != wgpu.CompositeAlphaModeInherit {
		t.Errorf("got %v, want inherit", got)
	}
	if got := pickAlphaMode(nil); got != wgpu.CompositeAlphaModeOpaque {
		t.Errorf("got %v for no modes, want opaque", got)
	}
}
