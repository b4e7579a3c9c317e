package light

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AnimationPeriod is the time in seconds for an animated light to complete a full turn.
const AnimationPeriod float32 = 30

// AnimationPitch is the fixed downward tilt of an animated light, in radians.
const AnimationPitch = -math32.Pi / 4

// KeyState reports key edges for the current frame.
type KeyState interface {
	JustPressed(keyCode uint32) bool
}

// NewFallback creates the directional light spawned when an asset brings no directional
// or point light of its own. It sits at the scene center with a shadow volume fitted to the box.
//
// Parameters:
//   - box: the scene's world-space bounds
//
// Returns:
//   - Light: a shadow-casting directional light
func NewFallback(box bounds.AABB) Light {
	return NewLight(LightTypeDirectional,
		WithName("fallback"),
		WithPosition(box.Center),
		WithCastsShadows(true),
		WithShadowProjection(ShadowProjectionFromAABB(box)),
		withSynthesized(),
	)
}

// Controls applies the viewer's light keys to directional lights.
//
// Keys 5/6, 7/8 and 9/0 shrink or grow the shadow volume's width, height and depth by
// ScaleStep; only the first of them pressed in a frame takes effect. U toggles shadows and
// L toggles a slow turntable animation of the light's rotation.
type Controls struct {
	animate bool
}

// Animating reports whether the turntable animation is on.
func (c *Controls) Animating() bool {
	return c.animate
}

// Update evaluates one frame of key edges against the given lights.
// Non-directional lights are ignored.
//
// Parameters:
//   - keys: the frame's key edges
//   - seconds: time since startup, drives the animation
//   - lights: the scene's lights
func (c *Controls) Update(keys KeyState, seconds float32, lights ...Light) {
	factors, adjusted := shadowAdjustment(keys)
	toggleShadows := keys.JustPressed(common.KeyU)

	if keys.JustPressed(common.KeyL) {
		c.animate = !c.animate
		slog.Info("light animation", "enabled", c.animate)
	}

	for _, l := range lights {
		if l.Type() != LightTypeDirectional {
			continue
		}
		if adjusted {
			l.SetShadowProjection(l.ShadowProjection().Scale(factors))
		}
		if toggleShadows {
			l.SetCastsShadows(!l.CastsShadows())
			slog.Info("toggled shadows", "light", l.Name(), "enabled", l.CastsShadows())
		}
		if c.animate {
			l.SetRotation(AnimatedRotation(seconds))
		}
	}
}

// AnimatedRotation is the turntable orientation at a point in time:
// a fixed pitch of AnimationPitch under a yaw that turns once per AnimationPeriod.
//
// Parameters:
//   - seconds: time since startup
//
// Returns:
//   - mgl32.Quat: the light orientation
func AnimatedRotation(seconds float32) mgl32.Quat {
	roll := mgl32.QuatRotate(0, common.UnitZ)
	yaw := mgl32.QuatRotate(seconds*2*math32.Pi/AnimationPeriod, common.UnitY)
	pitch := mgl32.QuatRotate(AnimationPitch, common.UnitX)
	return roll.Mul(yaw).Mul(pitch).Normalize()
}

// shadowAdjustment returns the per-axis scale for the first shadow key pressed this frame.
func shadowAdjustment(keys KeyState) (mgl32.Vec3, bool) {
	steps := []struct {
		key  uint32
		axis int
		sign float32
	}{
		{common.Key5, 0, -1},
		{common.Key6, 0, 1},
		{common.Key7, 1, -1},
		{common.Key8, 1, 1},
		{common.Key9, 2, -1},
		{common.Key0, 2, 1},
	}

	factors := mgl32.Vec3{1, 1, 1}
	for _, s := range steps {
		if keys.JustPressed(s.key) {
			factors[s.axis] += s.sign * ScaleStep
			return factors, true
		}
	}
	return factors, false
}
