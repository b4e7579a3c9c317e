package animation

import "github.com/Carmen-Shannon/oxy-viewer/engine/model"

// PlayerBuilderOption is a function that configures a Player during construction.
type PlayerBuilderOption func(*player)

// WithClips is an option builder that starts the player on the first of the given clips.
//
// Parameters:
//   - clips: the clips to play
//
// Returns:
//   - PlayerBuilderOption: a function that applies the clips option to a player
func WithClips(clips []model.AnimationClip) PlayerBuilderOption {
	return func(p *player) {
		p.clips = clips
	}
}
