package camera

import "github.com/go-gl/mathgl/mgl32"

// PanOrbitControllerOption is a functional option for configuring a PanOrbitController.
type PanOrbitControllerOption func(*panOrbitControllerImpl)

// WithPose sets the initial pose.
//
// Parameters:
//   - pose: the starting pose
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the pose
func WithPose(pose Pose) PanOrbitControllerOption {
	return func(c *panOrbitControllerImpl) {
		c.pose = pose
	}
}

// WithFocus sets the initial focus point.
//
// Parameters:
//   - focus: world-space pivot
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the focus
func WithFocus(focus mgl32.Vec3) PanOrbitControllerOption {
	return func(c *panOrbitControllerImpl) {
		c.pose.Focus = focus
	}
}

// WithRadius sets the initial distance from the focus. Values below RadiusMin are clamped.
//
// Parameters:
//   - radius: distance from the focus point
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the radius
func WithRadius(radius float32) PanOrbitControllerOption {
	return func(c *panOrbitControllerImpl) {
		c.pose.Radius = radius
	}
}

// WithOrientation sets the initial orientation. It is normalized on construction.
//
// Parameters:
//   - orientation: the camera rotation
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the orientation
func WithOrientation(orientation mgl32.Quat) PanOrbitControllerOption {
	return func(c *panOrbitControllerImpl) {
		c.pose.Orientation = orientation
	}
}
