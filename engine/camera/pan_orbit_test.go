package camera

import (
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testMetrics    = WindowMetrics{Width: 1000, Height: 500}
	testProjection = Projection{Kind: ProjectionPerspective, Fov: math32.Pi / 3, Aspect: 2, Near: 0.1, Far: 100}
)

func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func assertSameRotation(t *testing.T, want, got mgl32.Quat) {
	t.Helper()
	w, g := want.Mat4(), got.Mat4()
	for i := range w {
		assert.InDelta(t, w[i], g[i], 1e-5, "matrix element %d: want %v got %v", i, want, got)
	}
}

func TestOrbitHorizontal(t *testing.T) {
	c := NewPanOrbitController()

	changed := c.Update(input.Sample{OrbitEdge: true, RotationDelta: mgl32.Vec2{500, 0}}, testMetrics, testProjection)
	require.True(t, changed)

	assertSameRotation(t, mgl32.QuatRotate(-math32.Pi, common.UnitY), c.Pose().Orientation)
	assertVec3(t, mgl32.Vec3{0, 0, -5}, c.Transform().Translation, 1e-4)
	assert.False(t, c.Pose().UpsideDown)
}

func TestOrbitVertical(t *testing.T) {
	c := NewPanOrbitController()

	c.Update(input.Sample{OrbitEdge: true, RotationDelta: mgl32.Vec2{0, 250}}, testMetrics, testProjection)

	assertSameRotation(t, mgl32.QuatRotate(-math32.Pi/2, common.UnitX), c.Pose().Orientation)
	assertVec3(t, mgl32.Vec3{0, 5, 0}, c.Transform().Translation, 1e-4)
}

func TestPanPerspective(t *testing.T) {
	c := NewPanOrbitController()

	c.Update(input.Sample{PanDelta: mgl32.Vec2{100, 100}}, testMetrics, testProjection)

	assertVec3(t, mgl32.Vec3{-1.0472, 1.0472, 0}, c.Pose().Focus, 1e-3)
	assertVec3(t, mgl32.Vec3{-1.0472, 1.0472, 5}, c.Transform().Translation, 1e-3)
	assertSameRotation(t, mgl32.QuatIdent(), c.Pose().Orientation)
}

func TestPanOrthographicIsUnscaled(t *testing.T) {
	c := NewPanOrbitController(WithRadius(2))
	ortho := Projection{Kind: ProjectionOrthographic, Aspect: 2, Near: 0.1, Far: 100, Height: 10}

	c.Update(input.Sample{PanDelta: mgl32.Vec2{0.5, 0.25}}, testMetrics, ortho)

	assertVec3(t, mgl32.Vec3{-1, 0.5, 0}, c.Pose().Focus, 1e-5)
}

func TestZoomIn(t *testing.T) {
	c := NewPanOrbitController()

	c.Update(input.Sample{Scroll: 0.05}, testMetrics, testProjection)

	assert.InDelta(t, 4.95, c.Pose().Radius, 1e-5)
	assertVec3(t, mgl32.Vec3{0, 0, 4.95}, c.Transform().Translation, 1e-5)
}

func TestZoomClamp(t *testing.T) {
	c := NewPanOrbitController(WithRadius(0.06))

	c.Update(input.Sample{Scroll: 1}, testMetrics, testProjection)

	assert.Equal(t, RadiusMin, c.Pose().Radius)
}

func TestUpsideDownInvertsHorizontalDrag(t *testing.T) {
	const drag = 5
	eyeShift := func(start Pose) float32 {
		c := NewPanOrbitController(WithPose(start))
		before := c.Transform()
		right := before.Rotation.Rotate(common.UnitX)
		c.Update(input.Sample{RotationDelta: mgl32.Vec2{drag, 0}}, testMetrics, testProjection)
		return c.Transform().Translation.Sub(before.Translation).Dot(right)
	}

	upright := Pose{Radius: 5, Orientation: mgl32.QuatIdent()}
	flipped := Pose{Radius: 5, Orientation: mgl32.QuatRotate(-math32.Pi, common.UnitX), UpsideDown: true}

	assert.Less(t, eyeShift(upright), float32(0))
	assert.Less(t, eyeShift(flipped), float32(0), "drag must move the eye the same way on screen when upside down")
}

func TestUpsideDownLargeDrag(t *testing.T) {
	start := Pose{Radius: 5, Orientation: mgl32.QuatRotate(-math32.Pi, common.UnitX), UpsideDown: true}
	c := NewPanOrbitController(WithPose(start))

	c.Update(input.Sample{RotationDelta: mgl32.Vec2{500, 0}}, testMetrics, testProjection)

	want := mgl32.QuatRotate(math32.Pi, common.UnitY).Mul(mgl32.QuatRotate(-math32.Pi, common.UnitX))
	assertSameRotation(t, want, c.Pose().Orientation)
}

func TestIdleFrameLeavesPoseUntouched(t *testing.T) {
	start := Pose{
		Focus:       mgl32.Vec3{1, 2, 3},
		Radius:      7,
		Orientation: mgl32.QuatRotate(0.4, mgl32.Vec3{1, 1, 0}.Normalize()),
		UpsideDown:  true,
	}
	c := NewPanOrbitController(WithPose(start))
	pose, transform := c.Pose(), c.Transform()

	changed := c.Update(input.Sample{}, testMetrics, testProjection)

	assert.False(t, changed)
	assert.Equal(t, pose, c.Pose())
	assert.Equal(t, transform, c.Transform())
}

func TestOrbitEdgeLatchesUpsideDown(t *testing.T) {
	c := NewPanOrbitController()

	// Tilt past the pole without an edge: the latch must hold.
	c.Update(input.Sample{RotationDelta: mgl32.Vec2{0, 400}}, testMetrics, testProjection)
	assert.LessOrEqual(t, c.Pose().Orientation.Rotate(common.UnitY).Y(), float32(0))
	assert.False(t, c.Pose().UpsideDown)

	c.Update(input.Sample{OrbitEdge: true}, testMetrics, testProjection)
	assert.True(t, c.Pose().UpsideDown)
}

func TestZeroSizeWindowSkipsDragButZooms(t *testing.T) {
	c := NewPanOrbitController()
	before := c.Pose()

	assert.False(t, c.Update(input.Sample{RotationDelta: mgl32.Vec2{10, 10}}, WindowMetrics{}, testProjection))
	assert.False(t, c.Update(input.Sample{PanDelta: mgl32.Vec2{10, 10}}, WindowMetrics{Width: 100}, testProjection))
	assert.Equal(t, before, c.Pose())

	assert.True(t, c.Update(input.Sample{RotationDelta: mgl32.Vec2{10, 10}, Scroll: 0.5}, WindowMetrics{}, testProjection))
	assert.InDelta(t, 4.5, c.Pose().Radius, 1e-5)
}

func TestOrbitTakesPriorityOverPanAndZoom(t *testing.T) {
	c := NewPanOrbitController()

	c.Update(input.Sample{
		RotationDelta: mgl32.Vec2{10, 0},
		PanDelta:      mgl32.Vec2{10, 0},
		Scroll:        1,
	}, testMetrics, testProjection)

	assert.Equal(t, mgl32.Vec3{}, c.Pose().Focus)
	assert.Equal(t, float32(5), c.Pose().Radius)
}

func TestZoomMonotonicity(t *testing.T) {
	c := NewPanOrbitController()
	prev := c.Pose().Radius
	for range 5 {
		c.Update(input.Sample{Scroll: 0.3}, testMetrics, testProjection)
		assert.Less(t, c.Pose().Radius, prev)
		prev = c.Pose().Radius
	}
	for range 5 {
		c.Update(input.Sample{Scroll: -0.3}, testMetrics, testProjection)
		assert.Greater(t, c.Pose().Radius, prev)
		prev = c.Pose().Radius
	}
}

func TestSetPoseSanitizes(t *testing.T) {
	c := NewPanOrbitController()
	c.SetPose(Pose{Radius: 0, Orientation: mgl32.Quat{W: 2}})

	assert.Equal(t, RadiusMin, c.Pose().Radius)
	assert.InDelta(t, 1, c.Pose().Orientation.Len(), 1e-6)
}

func TestRandomInputSequenceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewPanOrbitController()

	for i := range 2000 {
		var s input.Sample
		switch rng.Intn(5) {
		case 0:
			s.RotationDelta = mgl32.Vec2{rng.Float32()*200 - 100, rng.Float32()*200 - 100}
		case 1:
			s.PanDelta = mgl32.Vec2{rng.Float32()*40 - 20, rng.Float32()*40 - 20}
		case 2:
			s.Scroll = rng.Float32()*4 - 2
		case 3:
			s.RotationDelta = mgl32.Vec2{rng.Float32()*50 - 25, 0}
			s.OrbitEdge = true
		}

		prev := c.Pose()
		changed := c.Update(s, testMetrics, testProjection)
		pose, tr := c.Pose(), c.Transform()

		assert.GreaterOrEqual(t, pose.Radius, RadiusMin, "step %d", i)
		assert.InDelta(t, 1, pose.Orientation.Len(), 1e-4, "step %d", i)
		assert.InDelta(t, 0, pose.Orientation.Rotate(common.UnitX).Y(), 1e-3, "roll at step %d", i)

		if !s.OrbitEdge {
			assert.Equal(t, prev.UpsideDown, pose.UpsideDown, "latch changed without an edge at step %d", i)
		}
		if !changed {
			assert.Equal(t, prev, pose, "step %d", i)
			continue
		}

		want := pose.Focus.Add(pose.Orientation.Mat4().Mat3().Mul3x1(mgl32.Vec3{0, 0, pose.Radius}))
		assert.Equal(t, want, tr.Translation, "step %d", i)
		assert.Equal(t, pose.Orientation, tr.Rotation, "step %d", i)

		if s.PanDelta.Dot(s.PanDelta) > 0 && s.RotationDelta.Dot(s.RotationDelta) == 0 {
			forward := pose.Orientation.Rotate(common.UnitZ)
			shift := pose.Focus.Sub(prev.Focus)
			assert.InDelta(t, 0, shift.Dot(forward), float64(1e-3*(1+shift.Len())), "pan left the view plane at step %d", i)
		}
	}
}
