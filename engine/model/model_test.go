package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBounds(t *testing.T) {
	m := &Mesh{Positions: []mgl32.Vec3{{-1, 0, 2}, {3, 4, -2}, {0, 1, 0}}}

	box := m.ComputeBounds()
	require.NotNil(t, box)
	assert.Same(t, box, m.Bounds)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, box.Center)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, box.HalfExtents)
}

func TestComputeBoundsEmptyMesh(t *testing.T) {
	m := &Mesh{}
	assert.Nil(t, m.ComputeBounds())
	assert.Nil(t, m.Bounds)
}

func TestVerticesWithoutNormals(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}},
		Normals:   []mgl32.Vec3{{0, 1, 0}},
	}
	v := m.Vertices()
	require.Len(t, v, 2)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, v[0].Normal)
	assert.Equal(t, mgl32.Vec3{}, v[1].Normal)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, v[1].Position)
}

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{Position: mgl32.Vec3{1, 2, 3}, Normal: mgl32.Vec3{4, 5, 6}}
	assert.Equal(t, GPUVertexSize, v.Size())

	buf := MarshalVertices([]GPUVertex{v, v})
	require.Len(t, buf, 2*GPUVertexSize)
	assert.Equal(t, float32(6), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:28])))
}

func TestGPUModelDataLayout(t *testing.T) {
	d := NewModel(
		WithWorld(mgl32.Translate3D(7, 8, 9)),
		WithColor(mgl32.Vec4{0.5, 0.25, 1, 1}),
	).GPUData()
	assert.Equal(t, GPUModelDataSize, d.Size())

	buf := d.Marshal()
	require.Len(t, buf, GPUModelDataSize)
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(buf[48:52])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:72])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[80:84])))
}

func TestLineModelsAreUnlit(t *testing.T) {
	lines := NewModel(WithMesh(&Mesh{Topology: TopologyLineList}))
	assert.False(t, lines.Lit())
	assert.Equal(t, float32(0), lines.GPUData().Lit)
	assert.Equal(t, "line-list", TopologyLineList.String())

	tris := NewModel(WithName("body"))
	assert.True(t, tris.Lit())
	assert.Equal(t, mgl32.Ident4(), tris.World())
	assert.Nil(t, tris.MeshBounds().Local)
}
