package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost runs a fixed number of frames from ProcessMessages.
type fakeHost struct {
	frames int
	ran    int
	update func() bool
	resize func(width, height int)
	closed bool
	width  int
	height int
}

func (h *fakeHost) SetUpdateCallback(callback func() bool)             { h.update = callback }
func (h *fakeHost) SetResizeCallback(callback func(width, height int)) { h.resize = callback }
func (h *fakeHost) RequestClose()                                      { h.closed = true }
func (h *fakeHost) Width() int                                         { return h.width }
func (h *fakeHost) Height() int                                        { return h.height }

func (h *fakeHost) ProcessMessages() {
	for h.ran < h.frames && !h.closed {
		h.ran++
		if !h.update() {
			return
		}
	}
}

func TestStepRunsPhasesInOrder(t *testing.T) {
	var order []string
	record := func(name string) System {
		return func(float32) error {
			order = append(order, name)
			return nil
		}
	}

	e := NewEngine(WithSystem(PhaseRender, record("render")))
	e.AddSystem(PhaseUpdate, record("update-a"))
	e.AddSystem(PhasePreUpdate, record("pre"))
	e.AddSystem(PhaseUpdate, record("update-b"))
	e.AddSystem(Phase(42), record("ignored"))

	require.NoError(t, e.Step(0.016))
	assert.Equal(t, []string{"pre", "update-a", "update-b", "render"}, order)
}

func TestStepStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	rendered := false

	e := NewEngine()
	e.AddSystem(PhaseUpdate, func(float32) error { return boom })
	e.AddSystem(PhaseRender, func(float32) error { rendered = true; return nil })

	assert.ErrorIs(t, e.Step(0), boom)
	assert.False(t, rendered)
}

func TestRunDrivesFramesFromHost(t *testing.T) {
	host := &fakeHost{frames: 3, width: 640, height: 480}
	clock := time.Unix(0, 0)

	e := NewEngine(WithWindow(host))
	e.(*engine).now = func() time.Time {
		clock = clock.Add(10 * time.Millisecond)
		return clock
	}

	var sizes [][2]int
	e.AddResizeHandler(func(w, h int) { sizes = append(sizes, [2]int{w, h}) })

	var deltas []float32
	e.AddSystem(PhaseUpdate, func(dt float32) error {
		deltas = append(deltas, dt)
		return nil
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 3, host.ran)
	assert.Equal(t, [][2]int{{640, 480}}, sizes, "initial size is delivered before the first frame")
	require.Len(t, deltas, 3)
	for _, dt := range deltas {
		assert.InDelta(t, 0.01, dt, 1e-6)
	}

	host.resize(800, 600)
	assert.Equal(t, [2]int{800, 600}, sizes[1])
}

func TestRunReturnsSystemError(t *testing.T) {
	host := &fakeHost{frames: 10}
	boom := errors.New("boom")
	calls := 0

	e := NewEngine(WithWindow(host))
	e.AddSystem(PhasePreUpdate, func(float32) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, e.Run(), boom)
	assert.Equal(t, 2, host.ran)
}

func TestQuitStopsLoop(t *testing.T) {
	host := &fakeHost{frames: 10}
	e := NewEngine(WithWindow(host))
	e.AddSystem(PhaseRender, func(float32) error {
		e.Quit()
		return nil
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 1, host.ran)
	assert.True(t, host.closed)
}

func TestRunWithoutWindow(t *testing.T) {
	assert.Error(t, NewEngine().Run())
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(50)).(*engine)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestResizeHandlerCanRegisterHandlers(t *testing.T) {
	host := &fakeHost{width: 320, height: 200}
	e := NewEngine(WithWindow(host))

	var sizes [][2]int
	late := 0
	e.AddResizeHandler(func(width, height int) {
		sizes = append(sizes, [2]int{width, height})
		e.AddResizeHandler(func(int, int) { late++ })
	})

	host.resize(1024, 768)
	assert.Equal(t, [][2]int{{1024, 768}}, sizes)
	assert.Zero(t, late, "handlers added during a resize wait for the next one")

	host.resize(800, 600)
	assert.Equal(t, [][2]int{{1024, 768}, {800, 600}}, sizes)
	assert.Equal(t, 1, late)
}
