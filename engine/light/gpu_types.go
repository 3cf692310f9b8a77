package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightSource is the WGSL definition of the Light struct. Matches GPULight.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULightBlockSource is the WGSL definition of the Lights uniform: a count header followed
// by MaxGPULights Light slots. Matches MarshalLightBlock.
//
//go:embed assets/lights.wgsl
var GPULightBlockSource string

// MaxGPULights is the number of light slots in the lighting uniform. Lights beyond this
// budget are dropped in scene order.
const MaxGPULights = 8

// GPULight is the GPU-aligned representation of a single light; it matches GPULightSource
// (48 bytes).
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position
	LightType  uint32     // offset 12: 0 = directional, 1 = point
	Color      [3]float32 // offset 16: RGB color
	Intensity  float32    // offset 28
	Direction  [3]float32 // offset 32: normalized direction the light travels (directional)
	LightRange float32    // offset 44: 0 = no cutoff
}

// Size returns the size of the GPULight struct in bytes.
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// put writes the light into buf, which must be at least 48 bytes.
func (g *GPULight) put(buf []byte) {
	le := binary.LittleEndian
	for i := 0; i < 3; i++ {
		le.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		le.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
		le.PutUint32(buf[32+i*4:], math.Float32bits(g.Direction[i]))
	}
	le.PutUint32(buf[12:], g.LightType)
	le.PutUint32(buf[28:], math.Float32bits(g.Intensity))
	le.PutUint32(buf[44:], math.Float32bits(g.LightRange))
}

// Marshal serializes the light for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.put(buf)
	return buf
}

// GPULightBlockSize is the byte size of the lighting uniform: a 16-byte header
// (count + padding) followed by MaxGPULights light slots.
const GPULightBlockSize = 16 + MaxGPULights*48

// MarshalLightBlock packs up to MaxGPULights lights behind a count header.
// Unused slots are zero.
//
// Parameters:
//   - lights: the lights to pack, in priority order
//
// Returns:
//   - []byte: GPULightBlockSize bytes
//   - int: the number of lights actually packed
func MarshalLightBlock(lights []GPULight) ([]byte, int) {
	buf := make([]byte, GPULightBlockSize)
	n := min(len(lights), MaxGPULights)
	binary.LittleEndian.PutUint32(buf[0:], uint32(n))
	for i := 0; i < n; i++ {
		lights[i].put(buf[16+i*48:])
	}
	return buf, n
}
