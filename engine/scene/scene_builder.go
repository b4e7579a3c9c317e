package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/animation"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithPlayer sets the animation player that receives the asset's clips.
// A private player is created when none is given.
//
// Parameters:
//   - p: the animation player
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPlayer(p animation.Player) SceneBuilderOption {
	return func(s *scene) {
		s.player = p
	}
}
