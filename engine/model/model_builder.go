package model

import "github.com/go-gl/mathgl/mgl32"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the geometry of the Model.
// Meshes may be shared between models.
//
// Parameters:
//   - mesh: the mesh to draw
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh *Mesh) ModelBuilderOption {
	return func(m *model) {
		if mesh != nil {
			m.mesh = mesh
		}
	}
}

// WithWorld is an option builder that sets the model-to-world transform.
//
// Parameters:
//   - world: the world transform
//
// Returns:
//   - ModelBuilderOption: a function that applies the transform option to a model
func WithWorld(world mgl32.Mat4) ModelBuilderOption {
	return func(m *model) {
		m.world = world
	}
}

// WithColor is an option builder that sets the flat RGBA base color.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - ModelBuilderOption: a function that applies the color option to a model
func WithColor(color mgl32.Vec4) ModelBuilderOption {
	return func(m *model) {
		m.color = color
	}
}
