package camera

import "github.com/go-gl/mathgl/mgl32"

// RadiusMin is the smallest distance the eye may sit from the focus point.
const RadiusMin float32 = 0.05

// Pose is the state of a pan-orbit camera.
type Pose struct {
	// Focus is the world-space point the camera orbits and that panning translates.
	Focus mgl32.Vec3

	// Radius is the distance from Focus to the eye, never below RadiusMin.
	Radius float32

	// Orientation is the unit rotation of the camera. It carries yaw and pitch only.
	Orientation mgl32.Quat

	// UpsideDown is latched on orbit-gesture edges: true when the camera's local up
	// had a non-positive world-Y component at the time of the edge.
	UpsideDown bool
}

// DefaultPose returns a camera five units in front of the origin looking down -Z.
//
// Returns:
//   - Pose: the default pose
func DefaultPose() Pose {
	return Pose{
		Radius:      5,
		Orientation: mgl32.QuatIdent(),
	}
}

// Transform is the camera's world transform derived from a Pose.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// Transform derives the world transform: the eye sits at Radius along the
// orientation's local +Z from Focus.
//
// Returns:
//   - Transform: the derived camera transform
func (p Pose) Transform() Transform {
	offset := p.Orientation.Mat4().Mat3().Mul3x1(mgl32.Vec3{0, 0, p.Radius})
	return Transform{
		Translation: p.Focus.Add(offset),
		Rotation:    p.Orientation,
	}
}

// ViewMatrix returns the world-to-view matrix of the transform.
//
// Returns:
//   - mgl32.Mat4: the inverse of the camera's world transform
func (t Transform) ViewMatrix() mgl32.Mat4 {
	eye := t.Translation
	return t.Rotation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
}
