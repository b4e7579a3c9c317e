package animation

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[uint32]bool

func (k fakeKeys) JustPressed(keyCode uint32) bool {
	return k[keyCode]
}

var clips = []model.AnimationClip{
	{Name: "walk", Duration: 2},
	{Name: "run", Duration: 1},
}

func current(t *testing.T, p Player) string {
	t.Helper()
	c, ok := p.Current()
	require.True(t, ok)
	return c.Name
}

func TestPlayerStartsOnFirstClip(t *testing.T) {
	p := NewPlayer(WithClips(clips))
	assert.Equal(t, "walk", current(t, p))
	assert.False(t, p.Paused())

	p.Update(0.5, fakeKeys{})
	assert.InDelta(t, 0.5, p.Elapsed(), 1e-6)
}

func TestPlayerRepeats(t *testing.T) {
	p := NewPlayer(WithClips(clips))
	p.Update(1.5, fakeKeys{})
	p.Update(1.0, fakeKeys{})
	assert.InDelta(t, 0.5, p.Elapsed(), 1e-5)
}

func TestPlayerSpaceTogglesPause(t *testing.T) {
	p := NewPlayer(WithClips(clips))
	p.Update(0.25, fakeKeys{common.KeySpace: true})
	assert.True(t, p.Paused())
	assert.Zero(t, p.Elapsed())

	p.Update(1, fakeKeys{})
	assert.Zero(t, p.Elapsed(), "paused clips hold still")

	p.Update(0.25, fakeKeys{common.KeySpace: true})
	assert.False(t, p.Paused())
	assert.InDelta(t, 0.25, p.Elapsed(), 1e-6)
}

func TestPlayerEnterCyclesOnNextFrame(t *testing.T) {
	p := NewPlayer(WithClips(clips))
	p.Update(0.7, fakeKeys{})

	p.Update(0.1, fakeKeys{common.KeyEnter: true})
	assert.Equal(t, "walk", current(t, p), "switch waits a frame")
	assert.True(t, p.Paused())
	assert.Zero(t, p.Elapsed())

	p.Update(0.1, fakeKeys{})
	assert.Equal(t, "run", current(t, p))
	assert.False(t, p.Paused())
	assert.InDelta(t, 0.1, p.Elapsed(), 1e-6)

	p.Update(0, fakeKeys{common.KeyEnter: true})
	p.Update(0, fakeKeys{})
	assert.Equal(t, "walk", current(t, p), "wraps to the first clip")
}

func TestPlayerWithoutClips(t *testing.T) {
	p := NewPlayer()
	p.Update(1, fakeKeys{common.KeySpace: true, common.KeyEnter: true})

	_, ok := p.Current()
	assert.False(t, ok)
	assert.False(t, p.Paused())
	assert.Zero(t, p.Elapsed())
}

func TestPlayerSetClipsRestarts(t *testing.T) {
	p := NewPlayer(WithClips(clips))
	p.Update(0.5, fakeKeys{common.KeyEnter: true})

	p.SetClips(clips[1:])
	assert.Equal(t, "run", current(t, p))
	assert.False(t, p.Paused())
	assert.Zero(t, p.Elapsed())
}

func TestPlayerZeroDurationClip(t *testing.T) {
	p := NewPlayer(WithClips([]model.AnimationClip{{Name: "pose"}}))
	p.Update(3, fakeKeys{})
	assert.Zero(t, p.Elapsed())
}
