// Package gizmo generates the static axis indicator drawn at the world origin:
// three colored axis lines and three thin colored cylinders.
package gizmo

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Segment is a line from A to B.
type Segment struct {
	A, B mgl32.Vec3
}

// LineList builds a line-list mesh with two vertices per segment.
//
// Parameters:
//   - name: the mesh name
//   - segments: the line segments
//
// Returns:
//   - *model.Mesh: the line mesh, with bounds set
func LineList(name string, segments ...Segment) *model.Mesh {
	m := &model.Mesh{Name: name, Topology: model.TopologyLineList}
	for _, s := range segments {
		n := uint32(len(m.Positions))
		m.Positions = append(m.Positions, s.A, s.B)
		m.Indices = append(m.Indices, n, n+1)
	}
	m.ComputeBounds()
	return m
}

// AxisCylinder is the shape of each axis cylinder.
var AxisCylinder = Cylinder{
	Radius:     0.04,
	Height:     2,
	Resolution: 20,
	Segments:   10,
}

// Axis colors.
var (
	LineRed   = mgl32.Vec4{1, 0, 0, 1}
	LineGreen = mgl32.Vec4{0, 1, 0, 1}
	LineBlue  = mgl32.Vec4{0, 0, 1, 1}

	CylinderRed   = mgl32.Vec4{0.96, 0.20, 0.20, 1}
	CylinderGreen = mgl32.Vec4{0.63, 0.96, 0.26, 1}
	CylinderBlue  = mgl32.Vec4{0.20, 0.20, 0.96, 1}
)

// Axes builds the gizmo: the X, Y and Z lines followed by the X, Y and Z cylinders.
// The X line carries a short vertical tick at its tip. The three cylinders share one mesh.
//
// Returns:
//   - []model.Model: six models, lines first
func Axes() []model.Model {
	origin := mgl32.Vec3{}
	cylinder := AxisCylinder.Mesh()

	return []model.Model{
		model.NewModel(
			model.WithName("axis-x-line"),
			model.WithMesh(LineList("axis-x-line",
				Segment{origin, mgl32.Vec3{1, 0, 0}},
				Segment{mgl32.Vec3{1, 0.02, 0}, mgl32.Vec3{1, -0.02, 0}},
			)),
			model.WithColor(LineRed),
		),
		model.NewModel(
			model.WithName("axis-y-line"),
			model.WithMesh(LineList("axis-y-line", Segment{origin, mgl32.Vec3{0, 1, 0}})),
			model.WithColor(LineGreen),
		),
		model.NewModel(
			model.WithName("axis-z-line"),
			model.WithMesh(LineList("axis-z-line", Segment{origin, mgl32.Vec3{0, 0, 1}})),
			model.WithColor(LineBlue),
		),
		model.NewModel(
			model.WithName("axis-x-cylinder"),
			model.WithMesh(cylinder),
			model.WithWorld(mgl32.Translate3D(1, 0, 0).Mul4(mgl32.HomogRotate3DZ(math32.Pi/2))),
			model.WithColor(CylinderRed),
		),
		model.NewModel(
			model.WithName("axis-y-cylinder"),
			model.WithMesh(cylinder),
			model.WithWorld(mgl32.Translate3D(0, 1, 0)),
			model.WithColor(CylinderGreen),
		),
		model.NewModel(
			model.WithName("axis-z-cylinder"),
			model.WithMesh(cylinder),
			model.WithWorld(mgl32.Translate3D(0, 0, 1).Mul4(mgl32.HomogRotate3DX(math32.Pi/2))),
			model.WithColor(CylinderBlue),
		),
	}
}
