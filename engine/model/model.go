package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name  string
	mesh  *Mesh
	world mgl32.Mat4
	color mgl32.Vec4
}

// Model defines the interface for a drawable placed in the world.
// A Model pairs shared Mesh geometry with its world transform and a flat base color.
// Line meshes are drawn unlit; triangle meshes go through the lit pipeline.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the geometry drawn by this model.
	//
	// Returns:
	//   - *Mesh: the mesh
	Mesh() *Mesh

	// World retrieves the model-to-world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	World() mgl32.Mat4

	// Color retrieves the flat RGBA base color.
	//
	// Returns:
	//   - mgl32.Vec4: the base color
	Color() mgl32.Vec4

	// Lit reports whether the model is shaded by scene lights.
	//
	// Returns:
	//   - bool: true for triangle meshes
	Lit() bool

	// MeshBounds pairs the world transform with the mesh's local bounds.
	//
	// Returns:
	//   - bounds.MeshBounds: input for bounds.Estimate
	MeshBounds() bounds.MeshBounds

	// GPUData packs the per-draw uniform.
	//
	// Returns:
	//   - GPUModelData: the uniform contents
	GPUData() GPUModelData
}

var _ Model = &model{}

// NewModel creates a new Model with the given options applied.
// Without options the model has an empty mesh, identity transform and opaque white color.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mesh:  &Mesh{},
		world: mgl32.Ident4(),
		color: mgl32.Vec4{1, 1, 1, 1},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) World() mgl32.Mat4 {
	return m.world
}

func (m *model) Color() mgl32.Vec4 {
	return m.color
}

func (m *model) Lit() bool {
	return m.mesh.Topology == TopologyTriangleList
}

func (m *model) MeshBounds() bounds.MeshBounds {
	return bounds.MeshBounds{World: m.world, Local: m.mesh.Bounds}
}

func (m *model) GPUData() GPUModelData {
	data := GPUModelData{
		Model: m.world,
		Color: m.color,
	}
	if m.Lit() {
		data.Lit = 1
	}
	return data
}
