package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMapResolution is the width and height in texels of the shadow depth texture.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of a directional light's shadow volume.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane of the shadow volume.
const DefaultShadowNear float32 = -100.0

// DefaultShadowFar is the default far plane of the shadow volume.
const DefaultShadowFar float32 = 100.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.002

// ScaleStep is the fractional change applied by one shadow-volume key press.
const ScaleStep float32 = 0.1

// ShadowProjection is an orthographic volume in light space.
// Near and Far are distances along the light's forward axis and may be negative.
type ShadowProjection struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// DefaultShadowProjection returns a symmetric volume of DefaultShadowHalfExtent.
//
// Returns:
//   - ShadowProjection: the default volume
func DefaultShadowProjection() ShadowProjection {
	return ShadowProjection{
		Left:   -DefaultShadowHalfExtent,
		Right:  DefaultShadowHalfExtent,
		Bottom: -DefaultShadowHalfExtent,
		Top:    DefaultShadowHalfExtent,
		Near:   DefaultShadowNear,
		Far:    DefaultShadowFar,
	}
}

// ShadowProjectionFromAABB fits a volume around a scene box for a light placed at the
// box center. The box is widened to its bounding sphere, so the volume holds the whole
// scene whatever the light's rotation.
//
// Parameters:
//   - box: the scene's world-space bounds
//
// Returns:
//   - ShadowProjection: the fitted volume, symmetric about the light
func ShadowProjectionFromAABB(box bounds.AABB) ShadowProjection {
	r := box.HalfExtents.Len()
	return ShadowProjection{
		Left:   -r,
		Right:  r,
		Bottom: -r,
		Top:    r,
		Near:   -r,
		Far:    r,
	}
}

// Scale multiplies each pair of planes by the matching factor:
// X scales left/right, Y scales bottom/top and Z scales near/far.
//
// Parameters:
//   - factors: per-axis multipliers
//
// Returns:
//   - ShadowProjection: the scaled volume
func (p ShadowProjection) Scale(factors mgl32.Vec3) ShadowProjection {
	p.Left *= factors.X()
	p.Right *= factors.X()
	p.Bottom *= factors.Y()
	p.Top *= factors.Y()
	p.Near *= factors.Z()
	p.Far *= factors.Z()
	return p
}

// Matrix returns the light-view-to-clip matrix with a [0, 1] depth range.
//
// Returns:
//   - mgl32.Mat4: the orthographic projection
func (p ShadowProjection) Matrix() mgl32.Mat4 {
	return common.OrthographicZO(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
}
