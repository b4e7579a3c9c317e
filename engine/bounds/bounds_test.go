package bounds

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox() *AABB {
	return &AABB{HalfExtents: mgl32.Vec3{1, 1, 1}}
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d", i)
	}
}

func TestEstimateSingleIdentityMesh(t *testing.T) {
	box, ok := Estimate([]MeshBounds{{World: mgl32.Ident4(), Local: unitBox()}})
	require.True(t, ok)

	r := math32.Sqrt(3)
	assertVec3(t, mgl32.Vec3{}, box.Center)
	assertVec3(t, mgl32.Vec3{r, r, r}, box.HalfExtents)
	assert.InDelta(t, 2*math32.Sqrt(3*r*r), box.Size(), 1e-4)
}

func TestEstimateFoldsTranslatedAndScaledMeshes(t *testing.T) {
	meshes := []MeshBounds{
		{World: mgl32.Translate3D(10, 0, 0), Local: &AABB{HalfExtents: mgl32.Vec3{1, 0, 0}}},
		{World: mgl32.Translate3D(-10, 0, 0).Mul4(mgl32.Scale3D(1, 3, 1)), Local: &AABB{HalfExtents: mgl32.Vec3{0, 1, 0}}},
	}

	box, ok := Estimate(meshes)
	require.True(t, ok)

	assertVec3(t, mgl32.Vec3{-13, -3, -3}, box.Min())
	assertVec3(t, mgl32.Vec3{11, 3, 3}, box.Max())
}

func TestEstimateIsRotationInvariant(t *testing.T) {
	local := &AABB{Center: mgl32.Vec3{0, 1, 0}, HalfExtents: mgl32.Vec3{2, 1, 0.5}}
	straight, ok := Estimate([]MeshBounds{{World: mgl32.Ident4(), Local: local}})
	require.True(t, ok)

	rot := mgl32.HomogRotate3DY(0.7).Mul4(mgl32.HomogRotate3DX(1.1))
	rotated, ok := Estimate([]MeshBounds{{World: rot, Local: local}})
	require.True(t, ok)

	assert.InDelta(t, straight.Size(), rotated.Size(), 1e-4)
}

func TestEstimateRetriesWhenAnyMeshLacksBounds(t *testing.T) {
	_, ok := Estimate([]MeshBounds{
		{World: mgl32.Ident4(), Local: unitBox()},
		{World: mgl32.Ident4(), Local: nil},
	})
	assert.False(t, ok)
}

func TestEstimateEmptySceneIsZeroSize(t *testing.T) {
	box, ok := Estimate(nil)
	require.True(t, ok)
	assert.Equal(t, float32(0), box.Size())
}

func TestMaxScale(t *testing.T) {
	assert.InDelta(t, 1.0, MaxScale(mgl32.HomogRotate3DZ(0.3)), 1e-5)
	assert.InDelta(t, 4.0, MaxScale(mgl32.Scale3D(1, 4, 2)), 1e-5)
	assert.InDelta(t, 2.0, MaxScale(mgl32.Translate3D(5, 5, 5).Mul4(mgl32.Scale3D(2, 2, 2))), 1e-5)
}

func TestFromMinMaxRoundTrip(t *testing.T) {
	b := FromMinMax(mgl32.Vec3{-1, 2, 3}, mgl32.Vec3{3, 4, 9})
	assertVec3(t, mgl32.Vec3{1, 3, 6}, b.Center)
	assertVec3(t, mgl32.Vec3{2, 1, 3}, b.HalfExtents)
	assertVec3(t, mgl32.Vec3{-1, 2, 3}, b.Min())
	assertVec3(t, mgl32.Vec3{3, 4, 9}, b.Max())
}
