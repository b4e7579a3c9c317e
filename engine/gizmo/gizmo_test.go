package gizmo

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msg string) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "%s: component %d of %v", msg, i, got)
	}
}

func TestCylinderCounts(t *testing.T) {
	m := AxisCylinder.Mesh()

	assert.Len(t, m.Positions, 11*21+20+20)
	assert.Len(t, m.Normals, len(m.Positions))
	assert.Len(t, m.Indices, 20*10*6+18*3*2)
	for _, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Positions))
	}
}

func TestCylinderShape(t *testing.T) {
	m := AxisCylinder.Mesh()
	require.NotNil(t, m.Bounds)

	assert.InDelta(t, 0, m.Bounds.Center.Y(), 1e-6)
	assert.InDelta(t, 1, m.Bounds.HalfExtents.Y(), 1e-6)
	assert.InDelta(t, 0.04, m.Bounds.HalfExtents.X(), 1e-6)
	for _, p := range m.Positions {
		r := mgl32.Vec2{p.X(), p.Z()}.Len()
		assert.InDelta(t, 0.04, r, 1e-5)
	}
}

func TestCylinderFacesPointOutward(t *testing.T) {
	m := AxisCylinder.Mesh()
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, face.Dot(centroid), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestCylinderClampsSubdivisions(t *testing.T) {
	m := Cylinder{Radius: 1, Height: 1}.Mesh()
	assert.Len(t, m.Positions, 2*4+3+3)
	assert.Len(t, m.Indices, 3*6+3+3)
}

func TestLineList(t *testing.T) {
	m := LineList("l", Segment{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, Segment{mgl32.Vec3{1, 0.02, 0}, mgl32.Vec3{1, -0.02, 0}})

	assert.Equal(t, model.TopologyLineList, m.Topology)
	assert.Equal(t, []uint32{0, 1, 2, 3}, m.Indices)
	assert.Equal(t, mgl32.Vec3{1, -0.02, 0}, m.Positions[3])
	assert.Empty(t, m.Normals)
}

func TestAxes(t *testing.T) {
	axes := Axes()
	require.Len(t, axes, 6)

	for i, a := range axes[:3] {
		assert.False(t, a.Lit(), "line %d", i)
	}
	for i, a := range axes[3:] {
		assert.True(t, a.Lit(), "cylinder %d", i)
		assert.Same(t, axes[3].Mesh(), a.Mesh())
	}
	assert.Len(t, axes[0].Mesh().Positions, 4, "x line has the arrow tick")
	assert.Len(t, axes[1].Mesh().Positions, 2)

	// Each cylinder runs from the origin two units along its axis.
	tips := []mgl32.Vec3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	for i, a := range axes[3:] {
		top := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, a.World())
		bottom := mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, a.World())
		far, near := top, bottom
		if top.Len() < bottom.Len() {
			far, near = bottom, top
		}
		assertVec3Near(t, tips[i], far, 1e-5, fmt.Sprintf("axis %d far end", i))
		assertVec3Near(t, mgl32.Vec3{}, near, 1e-5, fmt.Sprintf("axis %d near end", i))
	}

	assert.Equal(t, CylinderGreen, axes[4].Color())
	assert.Equal(t, LineRed, axes[0].Color())
}
