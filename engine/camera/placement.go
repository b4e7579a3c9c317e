package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PlacementOffset is the eye direction, relative to the scene center, per unit of scene size.
var PlacementOffset = mgl32.Vec3{0.5, 0.25, 0.5}

// FarPerSize is the minimum far plane distance per unit of scene size.
const FarPerSize float32 = 10

// Placement is the initial framing computed from the scene bounds.
type Placement struct {
	Pose Pose

	// Eye is the world-space camera position the pose resolves to.
	Eye mgl32.Vec3

	// MinFar is the far plane distance needed to keep the scene inside the frustum.
	MinFar float32
}

// PlaceInitial frames a scene: the camera looks at the box center from above and
// to the side, at a distance proportional to the box diagonal. A zero-size box
// falls back to a unit-size offset.
//
// Parameters:
//   - box: the scene's world-space bounds
//
// Returns:
//   - Placement: the pose, eye position and required far plane
func PlaceInitial(box bounds.AABB) Placement {
	size := box.Size()
	focus := box.Center

	offset := PlacementOffset.Mul(size)
	if size == 0 {
		offset = PlacementOffset
	}
	eye := focus.Add(offset)

	return Placement{
		Pose: Pose{
			Focus:       focus,
			Radius:      math32.Max(eye.Sub(focus).Len(), RadiusMin),
			Orientation: common.LookRotation(eye, focus, common.UnitY),
		},
		Eye:    eye,
		MinFar: size * FarPerSize,
	}
}
