package input

import "github.com/go-gl/mathgl/mgl32"

// ScrollGain scales raw wheel-Y values into the zoom units consumed by the camera controller.
const ScrollGain float32 = 0.05

// Sample is one frame's worth of aggregated pointer input.
// It is produced by a Sampler and consumed exactly once by the camera controller.
type Sample struct {
	// RotationDelta is the summed pointer motion while the orbit button was held without the pan modifier.
	RotationDelta mgl32.Vec2

	// PanDelta is the summed pointer motion while the orbit button was held with the pan modifier.
	PanDelta mgl32.Vec2

	// Scroll is the summed wheel-Y motion multiplied by the scroll gain.
	Scroll float32

	// OrbitEdge is true when the orbit button was pressed or released during the frame.
	OrbitEdge bool
}

// Idle reports whether the sample carries no rotation, pan, or scroll.
// An idle sample may still carry an orbit edge.
//
// Returns:
//   - bool: true if the sample has no motion of any kind
func (s Sample) Idle() bool {
	return s.RotationDelta.Dot(s.RotationDelta) == 0 &&
		s.PanDelta.Dot(s.PanDelta) == 0 &&
		s.Scroll == 0
}
