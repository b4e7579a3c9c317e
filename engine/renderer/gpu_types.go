package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/lit.wgsl
var litShaderSource string

//go:embed assets/shadow.wgsl
var shadowShaderSource string

// GPUFrameDataSize is the size of GPUFrameData in a uniform buffer.
const GPUFrameDataSize = 80

// GPUFrameData is the per-frame camera uniform.
//
// Layout:
//
//	mat4x4<f32> view_proj (64 bytes, offset 0)
//	vec4<f32>   eye       (16 bytes, offset 64, w unused)
type GPUFrameData struct {
	ViewProj mgl32.Mat4
	Eye      mgl32.Vec3
}

// Marshal serializes the frame uniform for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (f *GPUFrameData) Marshal() []byte {
	buf := make([]byte, GPUFrameDataSize)
	for i, v := range f.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range f.Eye {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(1))
	return buf
}

// meshIndexData returns the mesh's indices as uint32 bytes. Non-indexed meshes get a
// sequential index buffer so every draw is indexed.
func meshIndexData(m *model.Mesh) ([]byte, uint32) {
	indices := m.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(m.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return common.SliceToBytes(indices), uint32(len(indices))
}
