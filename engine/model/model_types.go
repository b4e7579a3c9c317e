package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Topology is the primitive assembly mode of a mesh.
type Topology int

const (
	// TopologyTriangleList draws every three indices as a filled, lit triangle.
	TopologyTriangleList Topology = iota
	// TopologyLineList draws every two indices as an unlit line segment.
	TopologyLineList
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TopologyLineList:
		return "line-list"
	default:
		return "triangle-list"
	}
}

// Mesh is CPU-side indexed geometry in its own local space.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Positions are the vertex positions.
	Positions []mgl32.Vec3

	// Normals are per-vertex normals. May be empty for line meshes.
	Normals []mgl32.Vec3

	// Indices reference Positions. Interpreted according to Topology.
	Indices []uint32

	Topology Topology

	// Bounds is the local-space box, or nil while unknown.
	Bounds *bounds.AABB
}

// ComputeBounds scans the vertex positions and stores the resulting box on the mesh.
// A mesh without positions is left without bounds.
//
// Returns:
//   - *bounds.AABB: the computed box, or nil if the mesh has no positions
func (m *Mesh) ComputeBounds() *bounds.AABB {
	if len(m.Positions) == 0 {
		return nil
	}
	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, p := range m.Positions {
		for i := range 3 {
			lo[i] = math32.Min(lo[i], p[i])
			hi[i] = math32.Max(hi[i], p[i])
		}
	}
	box := bounds.FromMinMax(lo, hi)
	m.Bounds = &box
	return m.Bounds
}

// Vertices interleaves positions and normals into GPU vertices.
// Missing normals are written as zero vectors.
//
// Returns:
//   - []GPUVertex: one vertex per position
func (m *Mesh) Vertices() []GPUVertex {
	out := make([]GPUVertex, len(m.Positions))
	for i, p := range m.Positions {
		out[i].Position = p
		if i < len(m.Normals) {
			out[i].Normal = m.Normals[i]
		}
	}
	return out
}

// AnimationClip is a named animation discovered in an asset.
type AnimationClip struct {
	// Name is the animation identifier. Unnamed clips get a positional name.
	Name string

	// Duration is the length of the clip in seconds: the latest keyframe time of any channel.
	Duration float32

	// Channels is the number of animated node properties.
	Channels int
}
