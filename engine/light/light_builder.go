package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithName is an option builder that sets the light's identifier.
//
// Parameters:
//   - name: the light name
//
// Returns:
//   - LightBuilderOption: a function that applies the name option to a lightImpl
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithRotation is an option builder that sets the orientation of the light.
// The quaternion is normalized before storing.
//
// Parameters:
//   - rotation: the light orientation
//
// Returns:
//   - LightBuilderOption: a function that applies the rotation option to a lightImpl
func WithRotation(rotation mgl32.Quat) LightBuilderOption {
	return func(l *lightImpl) {
		l.rotation = normalizeQuat(rotation)
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - color: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the attenuation cutoff distance.
//
// Parameters:
//   - lightRange: the range value, zero for unlimited
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles.
// Angles are given in radians, as glTF stores them, and kept as cosines.
//
// Parameters:
//   - inner: inner cone half-angle in radians
//   - outer: outer cone half-angle in radians
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithSpotCone(inner, outer float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = math32.Cos(inner)
		l.outerCone = math32.Cos(outer)
	}
}

// WithCastsShadows is an option builder that sets whether the light renders a shadow map.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowProjection is an option builder that sets the shadow volume.
//
// Parameters:
//   - projection: the orthographic shadow volume
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow volume option to a lightImpl
func WithShadowProjection(projection ShadowProjection) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow = projection
	}
}

// withSynthesized marks the light as created by the viewer.
func withSynthesized() LightBuilderOption {
	return func(l *lightImpl) {
		l.synthesized = true
	}
}

// normalizeQuat normalizes a quaternion. Returns identity if the input has zero length.
func normalizeQuat(q mgl32.Quat) mgl32.Quat {
	if q.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}
