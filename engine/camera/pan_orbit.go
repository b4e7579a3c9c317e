package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ZoomRate is the fraction of the radius removed per unit of post-gain scroll.
const ZoomRate float32 = 0.2

// panOrbitControllerImpl is the implementation of the PanOrbitController interface.
type panOrbitControllerImpl struct {
	mu *sync.Mutex

	pose      Pose
	transform Transform
}

// PanOrbitController turns per-frame input samples into a turntable camera pose.
//
// Yaw is applied about world Y and pitch about the camera's local X, so the horizon
// stays level and no roll accumulates. Each frame applies at most one of orbit, pan or zoom,
// in that priority order, and an idle sample leaves the pose untouched.
type PanOrbitController interface {
	// Update applies one input sample to the pose.
	//
	// Parameters:
	//   - sample: the aggregated input for this frame
	//   - metrics: the drawable window size in pixels
	//   - proj: the active projection, used to scale pan for perspective lenses
	//
	// Returns:
	//   - bool: true if a branch ran and the camera transform was rewritten
	Update(sample input.Sample, metrics WindowMetrics, proj Projection) bool

	// Pose returns a copy of the current pose.
	//
	// Returns:
	//   - Pose: the controller's pose
	Pose() Pose

	// SetPose replaces the pose and rewrites the transform from it. The radius is
	// clamped to RadiusMin and the orientation is normalized.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose Pose)

	// Transform returns the camera transform as of the last write.
	//
	// Returns:
	//   - Transform: the camera's world transform
	Transform() Transform
}

var _ PanOrbitController = &panOrbitControllerImpl{}

// NewPanOrbitController creates a controller starting from DefaultPose.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - PanOrbitController: the newly created controller
func NewPanOrbitController(options ...PanOrbitControllerOption) PanOrbitController {
	c := &panOrbitControllerImpl{
		mu:   &sync.Mutex{},
		pose: DefaultPose(),
	}
	for _, option := range options {
		option(c)
	}
	c.pose = sanitize(c.pose)
	c.transform = c.pose.Transform()
	return c
}

func (c *panOrbitControllerImpl) Update(sample input.Sample, metrics WindowMetrics, proj Projection) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sample.OrbitEdge {
		up := c.pose.Orientation.Rotate(common.UnitY)
		c.pose.UpsideDown = up.Y() <= 0
	}

	canDrag := !metrics.Degenerate()
	switch {
	case canDrag && sample.RotationDelta.Dot(sample.RotationDelta) > 0:
		c.orbit(sample.RotationDelta, metrics)
	case canDrag && sample.PanDelta.Dot(sample.PanDelta) > 0:
		c.pan(sample.PanDelta, metrics, proj)
	case math32.Abs(sample.Scroll) > 0:
		c.zoom(sample.Scroll)
	default:
		return false
	}

	c.transform = c.pose.Transform()
	return true
}

func (c *panOrbitControllerImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *panOrbitControllerImpl) SetPose(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = sanitize(pose)
	c.transform = c.pose.Transform()
}

func (c *panOrbitControllerImpl) Transform() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

// orbit rotates the orientation: yaw pre-multiplies, pitch post-multiplies.
// Caller must hold the mutex.
func (c *panOrbitControllerImpl) orbit(delta mgl32.Vec2, metrics WindowMetrics) {
	dx := delta.X() / metrics.Width * 2 * math32.Pi
	if c.pose.UpsideDown {
		dx = -dx
	}
	dy := delta.Y() / metrics.Height * math32.Pi

	yaw := mgl32.QuatRotate(-dx, common.UnitY)
	pitch := mgl32.QuatRotate(-dy, common.UnitX)
	c.pose.Orientation = yaw.Mul(c.pose.Orientation).Mul(pitch).Normalize()
}

// pan moves the focus in the camera's right/up plane, proportional to the radius.
// Caller must hold the mutex.
func (c *panOrbitControllerImpl) pan(delta mgl32.Vec2, metrics WindowMetrics, proj Projection) {
	if proj.Perspective() {
		delta = mgl32.Vec2{
			delta.X() * proj.Fov * proj.Aspect / metrics.Width,
			delta.Y() * proj.Fov / metrics.Height,
		}
	}
	right := c.pose.Orientation.Rotate(common.UnitX).Mul(-delta.X())
	up := c.pose.Orientation.Rotate(common.UnitY).Mul(delta.Y())
	c.pose.Focus = c.pose.Focus.Add(right.Add(up).Mul(c.pose.Radius))
}

// zoom scales the radius multiplicatively with a hard lower clamp.
// Caller must hold the mutex.
func (c *panOrbitControllerImpl) zoom(scroll float32) {
	c.pose.Radius = math32.Max(c.pose.Radius*(1-ZoomRate*scroll), RadiusMin)
}

func sanitize(p Pose) Pose {
	if p.Orientation.Len() == 0 {
		p.Orientation = mgl32.QuatIdent()
	}
	p.Orientation = p.Orientation.Normalize()
	p.Radius = math32.Max(p.Radius, RadiusMin)
	return p
}
