package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUCameraUniformSource is the WGSL declaration of CameraUniform, injected into shaders
// that reference the camera binding.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// cameraUniformSize is one mat4x4<f32>.
const cameraUniformSize = 16 * 4

// GPUCameraUniform mirrors CameraUniform in WGSL.
type GPUCameraUniform struct {
	// ViewProj is projection * view, column-major as mgl32 stores it.
	ViewProj [16]float32
}

// Size returns the uniform buffer size in bytes.
func (g *GPUCameraUniform) Size() int {
	return cameraUniformSize
}

// Marshal encodes the uniform as little-endian float32s for a buffer write.
//
// Returns:
//   - []byte: a fresh buffer of Size bytes
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, cameraUniformSize)
	for _, v := range g.ViewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
