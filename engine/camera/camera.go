package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	projection Projection
	metrics    WindowMetrics
	placed     bool

	controller PanOrbitController
}

// Camera pairs a PanOrbitController with a lens and produces the matrices the renderer needs.
type Camera interface {
	// Update forwards one input sample to the controller using the current window size
	// and projection.
	//
	// Parameters:
	//   - sample: the aggregated input for this frame
	//
	// Returns:
	//   - bool: true if the camera transform changed
	Update(sample input.Sample) bool

	// Resize records the drawable window size and adjusts the aspect ratio.
	//
	// Parameters:
	//   - width, height: drawable size in pixels
	Resize(width, height float32)

	// Metrics returns the last recorded window size.
	//
	// Returns:
	//   - WindowMetrics: the window size
	Metrics() WindowMetrics

	// Projection returns the current lens.
	//
	// Returns:
	//   - Projection: the projection settings
	Projection() Projection

	// SetProjection replaces the lens.
	//
	// Parameters:
	//   - proj: the projection settings
	SetProjection(proj Projection)

	// ApplyPlacement moves the camera to an initial framing and lifts the far plane.
	//
	// Parameters:
	//   - p: the placement to apply
	ApplyPlacement(p Placement)

	// Placed reports whether ApplyPlacement has run.
	//
	// Returns:
	//   - bool: true once the camera has been framed
	Placed() bool

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection times view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Eye returns the world-space camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Controller returns the attached controller.
	//
	// Returns:
	//   - PanOrbitController: the pan-orbit controller
	Controller() PanOrbitController
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the default projection and a default pan-orbit controller.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		projection: DefaultProjection(),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewPanOrbitController()
	}
	return c
}

func (c *cameraImpl) Update(sample input.Sample) bool {
	c.mu.Lock()
	metrics, proj := c.metrics, c.projection
	c.mu.Unlock()
	return c.controller.Update(sample, metrics, proj)
}

func (c *cameraImpl) Resize(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = WindowMetrics{Width: width, Height: height}
	c.projection = c.projection.WithAspect(c.metrics)
}

func (c *cameraImpl) Metrics() WindowMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(proj Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = proj
}

func (c *cameraImpl) ApplyPlacement(p Placement) {
	c.mu.Lock()
	c.projection = c.projection.LiftFar(p.MinFar)
	c.placed = true
	c.mu.Unlock()
	c.controller.SetPose(p.Pose)
}

func (c *cameraImpl) Placed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placed
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.controller.Transform().ViewMatrix()
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.Projection().Matrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.controller.Transform().Translation
}

func (c *cameraImpl) Controller() PanOrbitController {
	return c.controller
}
