// Package animation tracks which of an asset's animation clips is playing and where in it.
//
// Keyframe evaluation is not performed; the player only keeps the clip, elapsed time and
// pause state that the viewer's Space and Enter keys drive.
package animation

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/chewxy/math32"
)

// KeyState reports key edges for the current frame.
type KeyState interface {
	JustPressed(keyCode uint32) bool
}

// player is the implementation of the Player interface.
type player struct {
	mu sync.Mutex

	clips    []model.AnimationClip
	current  int
	elapsed  float32
	paused   bool
	changing bool
}

// Player cycles through animation clips, each repeating until changed.
type Player interface {
	// SetClips replaces the clip list and starts playing the first clip from the beginning.
	//
	// Parameters:
	//   - clips: the asset's clips, may be empty
	SetClips(clips []model.AnimationClip)

	// Update applies one frame of keys and advances time.
	//
	// Space toggles pause. Enter rewinds and pauses the current clip; on the following
	// frame the next clip (wrapping) starts playing. Does nothing without clips.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - keys: the frame's key edges
	Update(dt float32, keys KeyState)

	// Current returns the active clip.
	//
	// Returns:
	//   - model.AnimationClip: the clip
	//   - bool: false when there are no clips
	Current() (model.AnimationClip, bool)

	// Paused reports whether time is frozen.
	//
	// Returns:
	//   - bool: true while paused
	Paused() bool

	// Elapsed returns the play position within the current clip, in seconds.
	//
	// Returns:
	//   - float32: seconds from the clip start
	Elapsed() float32
}

var _ Player = &player{}

// NewPlayer creates a new Player with the given options applied.
//
// Parameters:
//   - options: functional options to configure the player
//
// Returns:
//   - Player: the newly created player
func NewPlayer(options ...PlayerBuilderOption) Player {
	p := &player{}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *player) SetClips(clips []model.AnimationClip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clips = clips
	p.current, p.elapsed, p.paused, p.changing = 0, 0, false, false
	if len(clips) > 0 {
		slog.Info("playing animation", "name", clips[0].Name, "duration", clips[0].Duration)
	}
}

func (p *player) Update(dt float32, keys KeyState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clips) == 0 {
		return
	}

	if keys.JustPressed(common.KeySpace) {
		p.paused = !p.paused
	}

	if p.changing {
		p.current = (p.current + 1) % len(p.clips)
		p.elapsed, p.paused, p.changing = 0, false, false
		slog.Info("playing animation", "name", p.clips[p.current].Name, "duration", p.clips[p.current].Duration)
	}

	if keys.JustPressed(common.KeyEnter) {
		p.changing = true
		p.elapsed, p.paused = 0, true
	}

	if !p.paused {
		p.advance(dt)
	}
}

// advance moves the play position, wrapping at the clip end.
func (p *player) advance(dt float32) {
	p.elapsed += dt
	if d := p.clips[p.current].Duration; d > 0 {
		p.elapsed = math32.Mod(p.elapsed, d)
	} else {
		p.elapsed = 0
	}
}

func (p *player) Current() (model.AnimationClip, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.clips) == 0 {
		return model.AnimationClip{}, false
	}
	return p.clips[p.current], true
}

func (p *player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *player) Elapsed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elapsed
}
