package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// It shines along its local -Z axis and has no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone along its local -Z axis.
	// Attenuates with both distance and angle from the cone axis.
	LightTypeSpot
)

// String returns the glTF name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "directional"
	}
}

// Forward is the local axis a directional or spot light shines along.
var Forward = mgl32.Vec3{0, 0, -1}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name         string
	lightType    LightType
	position     mgl32.Vec3
	rotation     mgl32.Quat
	color        mgl32.Vec3
	intensity    float32
	lightRange   float32
	innerCone    float32 // stored as cos(angle in radians)
	outerCone    float32 // stored as cos(angle in radians)
	castsShadows bool
	synthesized  bool
	shadow       ShadowProjection
}

// Light defines the interface for a light source in the scene.
//
// Lights come either from the loaded asset (KHR_lights_punctual) or from the viewer
// itself when the asset has no directional or point light. Orientation is stored as a
// rotation; Direction is derived from it.
type Light interface {
	// Name returns the light's identifier.
	//
	// Returns:
	//   - string: the light name
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the world-space orientation of the light.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// Direction returns the normalized direction the light shines along.
	// Meaningless for point lights.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point and spot lights.
	// Zero means unlimited.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// CastsShadows returns whether this light renders a shadow map.
	// Only directional lights are shadow casters.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Synthesized reports whether the viewer created this light because the asset had none.
	//
	// Returns:
	//   - bool: true for the fallback light
	Synthesized() bool

	// ShadowProjection returns the light-space orthographic volume used for shadow mapping.
	//
	// Returns:
	//   - ShadowProjection: the shadow volume
	ShadowProjection() ShadowProjection

	// ViewMatrix returns the world-to-light matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the light view matrix
	ViewMatrix() mgl32.Mat4

	// ShadowViewProjection returns the matrix mapping world space to the shadow map's clip space.
	//
	// Returns:
	//   - mgl32.Mat4: shadow projection times light view
	ShadowViewProjection() mgl32.Mat4

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the orientation of the light. The quaternion is normalized.
	//
	// Parameters:
	//   - rotation: the new orientation
	SetRotation(rotation mgl32.Quat)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetCastsShadows sets whether the light renders a shadow map.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetShadowProjection replaces the shadow volume.
	//
	// Parameters:
	//   - projection: the new shadow volume
	SetShadowProjection(projection ShadowProjection)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		rotation:   mgl32.QuatIdent(),
		color:      mgl32.Vec3{1, 1, 1},
		intensity:  1.0,
		innerCone:  1,       // cos(0°)
		outerCone:  0.70711, // cos(45°)
		shadow:     DefaultShadowProjection(),
		lightRange: 0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Rotation() mgl32.Quat {
	return l.rotation
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.rotation.Rotate(Forward).Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows && l.lightType == LightTypeDirectional
}

func (l *lightImpl) Synthesized() bool {
	return l.synthesized
}

func (l *lightImpl) ShadowProjection() ShadowProjection {
	return l.shadow
}

func (l *lightImpl) ViewMatrix() mgl32.Mat4 {
	p := l.position
	return l.rotation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-p.X(), -p.Y(), -p.Z()))
}

func (l *lightImpl) ShadowViewProjection() mgl32.Mat4 {
	return l.shadow.Matrix().Mul4(l.ViewMatrix())
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetRotation(rotation mgl32.Quat) {
	l.rotation = normalizeQuat(rotation)
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetShadowProjection(projection ShadowProjection) {
	l.shadow = projection
}
