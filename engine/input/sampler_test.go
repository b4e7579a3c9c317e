package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSamplerOrbitDragFoldsIntoRotation(t *testing.T) {
	s := NewSampler()
	s.MouseButton(common.MouseButtonRight, true)
	s.MouseMotion(3, 4)
	s.MouseMotion(5, -1)

	got := s.Sample()
	assert.Equal(t, mgl32.Vec2{8, 3}, got.RotationDelta)
	assert.Equal(t, mgl32.Vec2{}, got.PanDelta)
	assert.True(t, got.OrbitEdge)
}

func TestSamplerShiftDragFoldsIntoPan(t *testing.T) {
	for _, shift := range []uint32{common.KeyLeftShift, common.KeyRightShift} {
		s := NewSampler()
		s.Key(shift, true)
		s.MouseButton(common.MouseButtonRight, true)
		s.EndFrame()

		s.MouseMotion(10, 20)
		got := s.Sample()
		assert.Equal(t, mgl32.Vec2{}, got.RotationDelta)
		assert.Equal(t, mgl32.Vec2{10, 20}, got.PanDelta)
		assert.False(t, got.OrbitEdge)
	}
}

func TestSamplerDiscardsMotionWithoutOrbitButton(t *testing.T) {
	s := NewSampler()
	s.MouseButton(common.MouseButtonLeft, true)
	s.MouseMotion(7, 7)

	got := s.Sample()
	assert.True(t, got.Idle())
	assert.False(t, got.OrbitEdge)
}

func TestSamplerAbsoluteCursorPositions(t *testing.T) {
	s := NewSampler()
	s.MouseButton(common.MouseButtonRight, true)
	s.MouseMove(100, 100)
	s.MouseMove(110, 95)
	s.MouseMove(120, 90)

	assert.Equal(t, mgl32.Vec2{20, -10}, s.Sample().RotationDelta)
}

func TestSamplerScrollGain(t *testing.T) {
	s := NewSampler()
	s.Scroll(1)
	s.Scroll(2)
	assert.InDelta(t, 0.15, s.Sample().Scroll, 1e-6)

	s = NewSampler(WithScrollGain(1))
	s.Scroll(-2)
	assert.InDelta(t, -2.0, s.Sample().Scroll, 1e-6)
}

func TestSamplerOrbitEdgeOnRelease(t *testing.T) {
	s := NewSampler()
	s.MouseButton(common.MouseButtonRight, true)
	s.EndFrame()

	assert.False(t, s.Sample().OrbitEdge, "holding the button is not an edge")

	s.MouseButton(common.MouseButtonRight, false)
	assert.True(t, s.Sample().OrbitEdge)

	s.EndFrame()
	assert.False(t, s.Sample().OrbitEdge)
}

func TestSamplerEndFrameClearsAccumulators(t *testing.T) {
	s := NewSampler()
	s.MouseButton(common.MouseButtonRight, true)
	s.MouseMotion(1, 1)
	s.Scroll(1)
	s.Key(common.KeyU, true)
	assert.True(t, s.JustPressed(common.KeyU))

	s.EndFrame()
	got := s.Sample()
	assert.True(t, got.Idle())
	assert.False(t, s.JustPressed(common.KeyU))
	assert.True(t, s.Pressed(common.KeyU))
}

func TestSamplerKeyRepeatIsNotAnEdge(t *testing.T) {
	s := NewSampler()
	s.Key(common.KeyL, true)
	s.EndFrame()
	s.Key(common.KeyL, true)
	assert.False(t, s.JustPressed(common.KeyL))
}

func TestSamplerCustomBindings(t *testing.T) {
	s := NewSampler(WithOrbitButton(common.MouseButtonMiddle), WithPanModifiers())
	s.Key(common.KeyLeftShift, true)
	s.MouseButton(common.MouseButtonMiddle, true)
	s.MouseMotion(2, 0)

	got := s.Sample()
	assert.Equal(t, mgl32.Vec2{2, 0}, got.RotationDelta, "no pan modifiers means shift is ignored")
}
