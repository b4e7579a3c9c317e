package scene

import (
	"errors"
	"io"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/animation"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader reports whatever state the test sets.
type fakeLoader struct {
	state loader.LoadState
	asset *loader.Asset
	err   error
	paths []string
}

func (f *fakeLoader) Load(path string) loader.Handle {
	f.paths = append(f.paths, path)
	return loader.Handle(len(f.paths) - 1)
}

func (f *fakeLoader) LoadReader(name string, _ io.Reader) loader.Handle {
	return f.Load(name)
}

func (f *fakeLoader) State(loader.Handle) loader.LoadState { return f.state }

func (f *fakeLoader) Asset(loader.Handle) *loader.Asset {
	if f.state != loader.LoadStateLoaded {
		return nil
	}
	return f.asset
}

func (f *fakeLoader) Err(loader.Handle) error { return f.err }

func (f *fakeLoader) Path(h loader.Handle) string { return f.paths[h] }

func (f *fakeLoader) Close() {}

func cube(world mgl32.Mat4) model.Model {
	box := bounds.FromMinMax(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	return model.NewModel(
		model.WithName("cube"),
		model.WithMesh(&model.Mesh{Positions: []mgl32.Vec3{{-1, -1, -1}, {1, 1, 1}}, Bounds: &box}),
		model.WithWorld(world),
	)
}

func newTestScene(t *testing.T, asset *loader.Asset) (Scene, *fakeLoader, camera.Camera) {
	t.Helper()
	ldr := &fakeLoader{state: loader.LoadStateLoading, asset: asset}
	cam := camera.NewCamera(camera.WithWindowSize(1280, 720))
	s := NewScene(ldr, cam)
	s.Load("alien.glb")
	return s, ldr, cam
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msg string) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "%s: component %d of %v", msg, i, got)
	}
}

func TestSceneLoadLifecycle(t *testing.T) {
	asset := &loader.Asset{
		Name:   "alien",
		Scenes: []loader.Scene{{Instances: []model.Model{cube(mgl32.Translate3D(2, 0, 0))}}},
	}
	s, ldr, cam := newTestScene(t, asset)
	assert.Equal(t, []string{"alien.glb"}, ldr.paths)
	assert.Equal(t, StateLoading, s.State())

	require.NoError(t, s.PreUpdate())
	assert.Equal(t, StateLoading, s.State(), "waits while the loader is busy")

	ldr.state = loader.LoadStateLoaded
	require.NoError(t, s.PreUpdate())
	assert.Equal(t, StateSpawning, s.State())
	assert.Nil(t, s.Instances(), "instances appear once ready")
	assert.False(t, cam.Placed())

	require.NoError(t, s.PreUpdate())
	assert.True(t, s.Ready())
	assert.True(t, s.Placed())
	assert.True(t, cam.Placed())
	assert.Len(t, s.Instances(), 1)

	box, ok := s.Bounds()
	require.True(t, ok)
	assertVec3Near(t, mgl32.Vec3{2, 0, 0}, box.Center, 1e-5, "scene center")

	pose := cam.Controller().Pose()
	assertVec3Near(t, box.Center, pose.Focus, 1e-5, "camera focus")
	assert.GreaterOrEqual(t, cam.Projection().Far, box.Size()*camera.FarPerSize)
}

func TestSceneSpawnsFallbackLight(t *testing.T) {
	asset := &loader.Asset{Scenes: []loader.Scene{{Instances: []model.Model{cube(mgl32.Ident4())}}}}
	s, ldr, _ := newTestScene(t, asset)
	ldr.state = loader.LoadStateLoaded

	require.NoError(t, s.PreUpdate())
	assert.False(t, s.HasLight())
	require.NoError(t, s.PreUpdate())

	assert.True(t, s.HasLight())
	lights := s.Lights()
	require.Len(t, lights, 1)
	assert.True(t, lights[0].Synthesized())
	assert.Equal(t, light.LightTypeDirectional, lights[0].Type())
	assert.True(t, lights[0].CastsShadows())

	require.NoError(t, s.PreUpdate())
	assert.Len(t, s.Lights(), 1, "fallback is added once")
}

func TestSceneKeepsAssetLight(t *testing.T) {
	bulb := light.NewLight(light.LightTypePoint, light.WithName("bulb"))
	asset := &loader.Asset{Scenes: []loader.Scene{{
		Instances: []model.Model{cube(mgl32.Ident4())},
		Lights:    []light.Light{bulb},
	}}}
	s, ldr, _ := newTestScene(t, asset)
	ldr.state = loader.LoadStateLoaded

	require.NoError(t, s.PreUpdate())
	require.NoError(t, s.PreUpdate())

	assert.True(t, s.HasLight())
	assert.Equal(t, []light.Light{bulb}, s.Lights())
}

func TestSceneRetriesPlacementUntilBoundsExist(t *testing.T) {
	pending := model.NewModel(model.WithMesh(&model.Mesh{}))
	asset := &loader.Asset{Scenes: []loader.Scene{{Instances: []model.Model{cube(mgl32.Ident4()), pending}}}}
	s, ldr, cam := newTestScene(t, asset)
	ldr.state = loader.LoadStateLoaded

	require.NoError(t, s.PreUpdate())
	require.NoError(t, s.PreUpdate())
	require.True(t, s.Ready())
	assert.False(t, s.Placed())
	assert.False(t, cam.Placed())
	assert.Empty(t, s.Lights(), "no fallback light before placement")

	pending.Mesh().Positions = []mgl32.Vec3{{0, 0, 0}}
	pending.Mesh().ComputeBounds()
	require.NoError(t, s.PreUpdate())
	assert.True(t, s.Placed())
	assert.True(t, cam.Placed())
}

func TestSceneEmptySceneStillPlaces(t *testing.T) {
	s, ldr, cam := newTestScene(t, &loader.Asset{Scenes: []loader.Scene{{}}})
	ldr.state = loader.LoadStateLoaded

	require.NoError(t, s.PreUpdate())
	require.NoError(t, s.PreUpdate())
	assert.True(t, s.Placed())
	assert.InDelta(t, camera.PlacementOffset.Len(), cam.Controller().Pose().Radius, 1e-5)
}

func TestSceneWithoutScenesIsFatal(t *testing.T) {
	s, ldr, _ := newTestScene(t, &loader.Asset{})
	ldr.state = loader.LoadStateLoaded

	err := s.PreUpdate()
	assert.ErrorIs(t, err, loader.ErrNoScenes)
	assert.Equal(t, StateFailed, s.State())
}

func TestSceneLoadFailureIsNotFatal(t *testing.T) {
	s, ldr, cam := newTestScene(t, nil)
	ldr.state = loader.LoadStateFailed
	ldr.err = errors.New("file does not exist")

	require.NoError(t, s.PreUpdate())
	assert.Equal(t, StateFailed, s.State())
	require.NoError(t, s.PreUpdate())
	assert.False(t, cam.Placed())
	assert.Nil(t, s.Instances())
}

func TestSceneHandsClipsToPlayer(t *testing.T) {
	player := animation.NewPlayer()
	ldr := &fakeLoader{state: loader.LoadStateLoaded, asset: &loader.Asset{
		Scenes:     []loader.Scene{{}},
		Animations: []model.AnimationClip{{Name: "wave", Duration: 1}},
	}}
	s := NewScene(ldr, camera.NewCamera(), WithPlayer(player))
	s.Load("wave.glb")

	require.NoError(t, s.PreUpdate())
	clip, ok := player.Current()
	require.True(t, ok)
	assert.Equal(t, "wave", clip.Name)
}

func TestNewScenePanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewScene(nil, camera.NewCamera()) })
	assert.Panics(t, func() { NewScene(&fakeLoader{}, nil) })
}
