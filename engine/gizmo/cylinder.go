package gizmo

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder is a capped cylinder centered on the origin with its height along the Y axis.
type Cylinder struct {
	Radius float32
	Height float32

	// Resolution is the number of radial subdivisions. Values below 3 are raised to 3.
	Resolution int

	// Segments is the number of height subdivisions. Values below 1 are raised to 1.
	Segments int
}

// Mesh builds the cylinder as an indexed triangle list.
//
// The body is a (Segments+1) x (Resolution+1) vertex grid whose seam column is duplicated.
// Each cap is a fan over its own Resolution rim vertices so that caps get flat normals.
//
// Returns:
//   - *model.Mesh: the generated mesh, with bounds set
func (c Cylinder) Mesh() *model.Mesh {
	res := max(c.Resolution, 3)
	segs := max(c.Segments, 1)
	half := c.Height / 2
	step := 2 * math32.Pi / float32(res)

	m := &model.Mesh{Name: "cylinder", Topology: model.TopologyTriangleList}

	for ring := 0; ring <= segs; ring++ {
		y := -half + c.Height*float32(ring)/float32(segs)
		for i := 0; i <= res; i++ {
			theta := float32(i) * step
			cos, sin := math32.Cos(theta), math32.Sin(theta)
			m.Positions = append(m.Positions, mgl32.Vec3{c.Radius * cos, y, c.Radius * sin})
			m.Normals = append(m.Normals, mgl32.Vec3{cos, 0, sin})
		}
	}

	stride := uint32(res + 1)
	for ring := 0; ring < segs; ring++ {
		for i := 0; i < res; i++ {
			v00 := uint32(ring)*stride + uint32(i)
			v01 := v00 + 1
			v10 := v00 + stride
			v11 := v10 + 1
			m.Indices = append(m.Indices, v00, v10, v01, v01, v10, v11)
		}
	}

	c.addCap(m, res, step, half, true)
	c.addCap(m, res, step, -half, false)

	m.ComputeBounds()
	return m
}

// addCap appends one flat cap. The top cap faces +Y and the bottom cap faces -Y.
func (c Cylinder) addCap(m *model.Mesh, res int, step, y float32, top bool) {
	normal := mgl32.Vec3{0, -1, 0}
	if top {
		normal = mgl32.Vec3{0, 1, 0}
	}

	base := uint32(len(m.Positions))
	for i := 0; i < res; i++ {
		theta := float32(i) * step
		m.Positions = append(m.Positions, mgl32.Vec3{c.Radius * math32.Cos(theta), y, c.Radius * math32.Sin(theta)})
		m.Normals = append(m.Normals, normal)
	}
	for i := uint32(1); i < uint32(res)-1; i++ {
		if top {
			m.Indices = append(m.Indices, base, base+i+1, base+i)
		} else {
			m.Indices = append(m.Indices, base, base+i, base+i+1)
		}
	}
}
