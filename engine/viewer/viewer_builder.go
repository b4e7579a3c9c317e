package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/animation"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithCamera sets the camera framed on the loaded scene. A default camera is created otherwise.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCamera(cam camera.Camera) ViewerBuilderOption {
	return func(v *viewer) {
		v.cam = cam
	}
}

// WithPlayer sets the animation player driven by Space and Enter.
//
// Parameters:
//   - p: the animation player
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPlayer(p animation.Player) ViewerBuilderOption {
	return func(v *viewer) {
		v.player = p
	}
}

// WithAmbient sets the ambient light term. The default is DefaultAmbient.
//
// Parameters:
//   - ambient: the RGB ambient color
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithAmbient(ambient mgl32.Vec3) ViewerBuilderOption {
	return func(v *viewer) {
		v.ambient = ambient
	}
}

// WithGizmo shows or hides the axis gizmo at the origin. It is shown by default.
//
// Parameters:
//   - enabled: true to draw the gizmo
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithGizmo(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.gizmoOn = enabled
	}
}
