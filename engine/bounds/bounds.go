// Package bounds estimates conservative world-space bounds of a loaded scene.
//
// Mesh-local boxes are pushed through their world transforms as bounding spheres,
// which stay valid under any rotation, and then converted back to axis-aligned boxes.
package bounds

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box stored as a center and half extents.
type AABB struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// FromMinMax builds an AABB from its minimum and maximum corners.
//
// Parameters:
//   - minCorner: the component-wise minimum
//   - maxCorner: the component-wise maximum
//
// Returns:
//   - AABB: the box spanning both corners
func FromMinMax(minCorner, maxCorner mgl32.Vec3) AABB {
	return AABB{
		Center:      minCorner.Add(maxCorner).Mul(0.5),
		HalfExtents: maxCorner.Sub(minCorner).Mul(0.5),
	}
}

// Min returns the minimum corner of the box.
func (b AABB) Min() mgl32.Vec3 {
	return b.Center.Sub(b.HalfExtents)
}

// Max returns the maximum corner of the box.
func (b AABB) Max() mgl32.Vec3 {
	return b.Center.Add(b.HalfExtents)
}

// Size returns the length of the box diagonal.
func (b AABB) Size() float32 {
	return b.HalfExtents.Len() * 2
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// AABB returns the smallest axis-aligned box enclosing the sphere.
func (s Sphere) AABB() AABB {
	return AABB{
		Center:      s.Center,
		HalfExtents: mgl32.Vec3{s.Radius, s.Radius, s.Radius},
	}
}

// MeshBounds pairs a mesh's world transform with its local-space box.
// Local is nil while the mesh's bounds are not yet known.
type MeshBounds struct {
	World mgl32.Mat4
	Local *AABB
}

// MaxScale returns an upper bound on how much the transform stretches any vector:
// the largest column length of its linear part.
//
// Parameters:
//   - m: the affine transform
//
// Returns:
//   - float32: the maximum axis scale
func MaxScale(m mgl32.Mat4) float32 {
	var out float32
	for c := 0; c < 3; c++ {
		out = math32.Max(out, m.Col(c).Vec3().Len())
	}
	return out
}

// WorldSphere computes the world-space bounding sphere of a local box under a transform.
//
// Parameters:
//   - world: the mesh's world transform
//   - local: the mesh's local-space box
//
// Returns:
//   - Sphere: a sphere enclosing the transformed box
func WorldSphere(world mgl32.Mat4, local AABB) Sphere {
	return Sphere{
		Center: mgl32.TransformCoordinate(local.Center, world),
		Radius: MaxScale(world) * local.HalfExtents.Len(),
	}
}

// Estimate folds every mesh into one conservative world-space box.
// It reports false when any mesh has no local bounds yet, in which case the caller
// should retry on a later frame. A scene without meshes yields a zero-size box at the origin.
//
// Parameters:
//   - meshes: the meshes of the scene
//
// Returns:
//   - AABB: the combined world-space box
//   - bool: false if any mesh is missing its bounds
func Estimate(meshes []MeshBounds) (AABB, bool) {
	for _, m := range meshes {
		if m.Local == nil {
			return AABB{}, false
		}
	}
	if len(meshes) == 0 {
		return AABB{}, true
	}

	minCorner := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxCorner := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, m := range meshes {
		box := WorldSphere(m.World, *m.Local).AABB()
		lo, hi := box.Min(), box.Max()
		for i := range 3 {
			minCorner[i] = math32.Min(minCorner[i], lo[i])
			maxCorner[i] = math32.Max(maxCorner[i], hi[i])
		}
	}
	return FromMinMax(minCorner, maxCorner), true
}
