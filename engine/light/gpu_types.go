package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights is the number of light slots in the GPU light block. Lights beyond the
// budget are dropped.
const MaxGPULights = 8

// GPULightSize is the size of GPULight in bytes.
const GPULightSize = 64

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (WGSL uniform aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	LightType    uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color        [3]float32 // offset 16: RGB color
	Intensity    float32    // offset 28: scalar multiplier
	Direction    [3]float32 // offset 32: normalized direction (directional/spot) or unused (point)
	LightRange   float32    // offset 44: attenuation cutoff distance, 0 for none
	InnerCone    float32    // offset 48: cos(inner half-angle) for spot
	OuterCone    float32    // offset 52: cos(outer half-angle) for spot
	CastsShadows uint32     // offset 56: 1 = casts shadows, 0 = does not
	_pad         uint32     // offset 60: padding to 64-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, GPULightSize)
	putFloats(buf[0:12], g.Position[:]...)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putFloats(buf[16:32], g.Color[0], g.Color[1], g.Color[2], g.Intensity)
	putFloats(buf[32:56], g.Direction[0], g.Direction[1], g.Direction[2], g.LightRange, g.InnerCone, g.OuterCone)
	binary.LittleEndian.PutUint32(buf[56:60], g.CastsShadows)
	return buf
}

// ToGPULight converts a Light into its GPU representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	shadowVal := uint32(0)
	if l.CastsShadows() {
		shadowVal = 1
	}
	return GPULight{
		Position:     l.Position(),
		LightType:    uint32(l.Type()),
		Color:        l.Color(),
		Intensity:    l.Intensity(),
		Direction:    l.Direction(),
		LightRange:   l.Range(),
		InnerCone:    l.InnerCone(),
		OuterCone:    l.OuterCone(),
		CastsShadows: shadowVal,
	}
}

// GPUShadowDataSize is the size of GPUShadowData in bytes.
const GPUShadowDataSize = 80

// GPUShadowData is the GPU-aligned representation of the directional shadow.
//
// Layout:
//
//	mat4x4<f32> light_vp  (64 bytes, offset 0)
//	f32         bias      ( 4 bytes, offset 64)
//	u32         enabled   ( 4 bytes, offset 68)
//	vec2<f32>   texel     ( 8 bytes, offset 72)
type GPUShadowData struct {
	LightVP   [16]float32 // orthographic view-projection from the light's perspective
	Bias      float32     // depth comparison bias to reduce shadow acne
	Enabled   uint32      // 1 when a shadow caster is active
	TexelSize [2]float32  // 1.0 / shadow_map_resolution for PCF offsets
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, GPUShadowDataSize)
	putFloats(buf[0:64], s.LightVP[:]...)
	putFloats(buf[64:68], s.Bias)
	binary.LittleEndian.PutUint32(buf[68:72], s.Enabled)
	putFloats(buf[72:80], s.TexelSize[:]...)
	return buf
}

// GPULightBlockSize is the size of the marshaled light block.
const GPULightBlockSize = 16 + GPUShadowDataSize + MaxGPULights*GPULightSize

// ShadowCaster returns the first shadow-casting light, or nil when none casts.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - Light: the shadow caster or nil
func ShadowCaster(lights []Light) Light {
	for _, l := range lights {
		if l.CastsShadows() {
			return l
		}
	}
	return nil
}

// MarshalLightBlock packs the scene lights into the fixed-size uniform block:
//
//	[ambient vec3 + count u32 (16 bytes)] [GPUShadowData (80 bytes)] [GPULight × MaxGPULights]
//
// Unused light slots are zeroed.
//
// Parameters:
//   - lights: the scene's lights
//   - ambient: the ambient RGB term
//
// Returns:
//   - []byte: GPULightBlockSize bytes ready for GPU upload
func MarshalLightBlock(lights []Light, ambient mgl32.Vec3) []byte {
	buf := make([]byte, GPULightBlockSize)

	count := min(len(lights), MaxGPULights)
	putFloats(buf[0:12], ambient[:]...)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(count))

	shadow := GPUShadowData{
		Bias:      DefaultShadowBias,
		TexelSize: [2]float32{1.0 / ShadowMapResolution, 1.0 / ShadowMapResolution},
	}
	if caster := ShadowCaster(lights); caster != nil {
		shadow.LightVP = caster.ShadowViewProjection()
		shadow.Enabled = 1
	}
	copy(buf[16:16+GPUShadowDataSize], shadow.Marshal())

	offset := 16 + GPUShadowDataSize
	for _, l := range lights[:count] {
		gpu := ToGPULight(l)
		copy(buf[offset:offset+GPULightSize], gpu.Marshal())
		offset += GPULightSize
	}
	return buf
}

func putFloats(dst []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(v))
	}
}
