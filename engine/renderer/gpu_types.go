package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// LitShaderSource is the WGSL module used for every mesh draw, solid and wireframe.
//
//go:embed assets/lit.wgsl
var LitShaderSource string

// SkyboxShaderSource is the WGSL module for the full-screen cube map background.
//
//go:embed assets/skybox.wgsl
var SkyboxShaderSource string

// GPUEnvironment is the per-frame environment uniform of the lit shader.
// Matches the WGSL Environment struct layout exactly.
// Size: 32 bytes.
type GPUEnvironment struct {
	FogColor   [4]float32 // offset  0: RGB fog color, alpha 1 when fog is enabled (16 bytes)
	FogNear    float32    // offset 16
	FogFar     float32    // offset 20
	Ambient    float32    // offset 24: flat ambient term applied to albedo
	EncodeSRGB float32    // offset 28: 1 when the surface is not an sRGB format
}

// Size returns the size of the GPUEnvironment struct in bytes.
func (g *GPUEnvironment) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUEnvironment struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUEnvironment) Marshal() []byte {
	buf := make([]byte, 32)
	putFloats(buf, g.FogColor[:]...)
	putFloats(buf[16:], g.FogNear, g.FogFar, g.Ambient, g.EncodeSRGB)
	return buf
}

// GPUSkyboxUniform is the uniform of the skybox shader.
// Matches the WGSL Sky struct layout exactly.
// Size: 80 bytes.
type GPUSkyboxUniform struct {
	InvViewProj [16]float32 // offset  0: inverse view-projection (64 bytes)
	Eye         [4]float32  // offset 64: camera position, w = 1 when output needs sRGB encoding
}

// Size returns the size of the GPUSkyboxUniform struct in bytes.
func (g *GPUSkyboxUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSkyboxUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUSkyboxUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf, g.InvViewProj[:]...)
	putFloats(buf[64:], g.Eye[:]...)
	return buf
}

func putFloats(buf []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
