package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind selects how a Projection maps view space to clip space.
type ProjectionKind int

const (
	// ProjectionPerspective is a symmetric perspective frustum.
	ProjectionPerspective ProjectionKind = iota
	// ProjectionOrthographic is a box centered on the view axis.
	ProjectionOrthographic
)

// Projection describes the camera lens.
type Projection struct {
	Kind ProjectionKind

	// Fov is the vertical field of view in radians. Perspective only.
	Fov float32

	// Aspect is width divided by height.
	Aspect float32

	Near float32
	Far  float32

	// Height is the vertical extent of the view volume in world units. Orthographic only.
	Height float32
}

// DefaultProjection returns a 60 degree perspective lens with a 16:9 aspect.
//
// Returns:
//   - Projection: the default projection
func DefaultProjection() Projection {
	return Projection{
		Kind:   ProjectionPerspective,
		Fov:    math32.Pi / 3,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
		Height: 10,
	}
}

// Perspective reports whether the projection is a perspective frustum.
func (p Projection) Perspective() bool {
	return p.Kind == ProjectionPerspective
}

// Matrix returns the view-to-clip matrix with a [0, 1] depth range.
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func (p Projection) Matrix() mgl32.Mat4 {
	if p.Perspective() {
		return common.PerspectiveZO(p.Fov, p.Aspect, p.Near, p.Far)
	}
	halfH := p.Height / 2
	halfW := halfH * p.Aspect
	return common.OrthographicZO(-halfW, halfW, -halfH, halfH, p.Near, p.Far)
}

// LiftFar raises the far plane to at least minFar. It never lowers it.
//
// Parameters:
//   - minFar: the smallest acceptable far plane distance
//
// Returns:
//   - Projection: the adjusted projection
func (p Projection) LiftFar(minFar float32) Projection {
	p.Far = math32.Max(p.Far, minFar)
	return p
}

// WithAspect returns the projection with its aspect ratio derived from a window size.
// A zero-height window leaves the aspect untouched.
//
// Parameters:
//   - metrics: the current window size
//
// Returns:
//   - Projection: the adjusted projection
func (p Projection) WithAspect(metrics WindowMetrics) Projection {
	if metrics.Height > 0 {
		p.Aspect = metrics.Width / metrics.Height
	}
	return p
}

// WindowMetrics is the drawable size of the window in pixels.
type WindowMetrics struct {
	Width  float32
	Height float32
}

// Degenerate reports whether either dimension is zero, as happens while a window is minimized.
func (m WindowMetrics) Degenerate() bool {
	return m.Width <= 0 || m.Height <= 0
}
