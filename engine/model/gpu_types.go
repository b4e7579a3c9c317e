package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSize is the stride of GPUVertex in a vertex buffer.
const GPUVertexSize = 24

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Size: 24 bytes (two tightly packed vec3<f32> attributes).
type GPUVertex struct {
	Position mgl32.Vec3 // offset  0: vertex position in model space (12 bytes)
	Normal   mgl32.Vec3 // offset 12: vertex normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	putVec3(buf[0:12], g.Position)
	putVec3(buf[12:24], g.Normal)
	return buf
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices)*GPUVertexSize bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	// GPUVertex has no padding, so the slice memory is already the buffer layout.
	return common.SliceToBytes(vertices)
}

// GPUModelDataSize is the size of GPUModelData in a uniform buffer.
const GPUModelDataSize = 96

// GPUModelData is the GPU-aligned per-draw uniform.
// Size: 96 bytes (mat4x4<f32> + vec4<f32> color + vec4<f32> flags, std140 aligned).
type GPUModelData struct {
	Model [16]float32 // offset  0: model-to-world transform (64 bytes)
	Color [4]float32  // offset 64: base RGBA color (16 bytes)
	Lit   float32     // offset 80: 1 for lit surfaces, 0 for unlit lines
	_     [3]float32  // offset 84: padding to 96 bytes
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	return common.StructToBytes(g)
}

func putVec3(dst []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v[2]))
}
