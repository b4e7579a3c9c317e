package camera

type CameraBuilderOption func(*cameraImpl)

// WithProjection sets the camera's lens.
//
// Parameters:
//   - proj: the projection settings
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithProjection(proj Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = proj
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection.Fov = fov
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection.Near = near
		c.projection.Far = far
	}
}

// WithWindowSize sets the initial drawable size and derives the aspect ratio from it.
//
// Parameters:
//   - width, height: drawable size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the window metrics
func WithWindowSize(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.metrics = WindowMetrics{Width: width, Height: height}
		c.projection = c.projection.WithAspect(c.metrics)
	}
}

// WithController attaches an existing controller instead of a default one.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: a function that sets the controller
func WithController(ctrl PanOrbitController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
