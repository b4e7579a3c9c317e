package viewer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records what the viewer asks of it.
type fakeRenderer struct {
	uploaded     map[model.Model]bool
	forgotten    int
	lights       []light.Light
	ambient      mgl32.Vec3
	shadowPasses int
	shadowDraws  int
	draws        int
	presents     int
	width        int
	height       int
	frameErr     error
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{uploaded: make(map[model.Model]bool)}
}

func (f *fakeRenderer) Resize(width, height int)            { f.width, f.height = width, height }
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) Upload(models ...model.Model) error {
	for _, m := range models {
		f.uploaded[m] = true
	}
	return nil
}

func (f *fakeRenderer) Uploaded(m model.Model) bool { return f.uploaded[m] }

func (f *fakeRenderer) Forget(models ...model.Model) {
	for _, m := range models {
		delete(f.uploaded, m)
		f.forgotten++
	}
}

func (f *fakeRenderer) WriteFrameUniform(mgl32.Mat4, mgl32.Vec3) {}

func (f *fakeRenderer) WriteLights(lights []light.Light, ambient mgl32.Vec3) {
	f.lights, f.ambient = lights, ambient
}

func (f *fakeRenderer) BeginShadowPass() error { f.shadowPasses++; return nil }
func (f *fakeRenderer) DrawShadow(model.Model) { f.shadowDraws++ }
func (f *fakeRenderer) EndShadowPass()         {}
func (f *fakeRenderer) BeginFrame() error      { return f.frameErr }
func (f *fakeRenderer) Draw(model.Model) error { f.draws++; return nil }
func (f *fakeRenderer) EndFrame()              {}
func (f *fakeRenderer) Present()               { f.presents++ }
func (f *fakeRenderer) Release()               {}

func cubeAsset() *loader.Asset {
	box := bounds.FromMinMax(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	cube := model.NewModel(
		model.WithName("cube"),
		model.WithMesh(&model.Mesh{
			Positions: []mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, 1, 1}},
			Bounds:    &box,
		}),
	)
	return &loader.Asset{Name: "cube", Scenes: []loader.Scene{{Instances: []model.Model{cube}}}}
}

func newTestViewer(t *testing.T, asset *loader.Asset) (Viewer, *fakeRenderer, input.Sampler) {
	t.Helper()
	ldr := loader.NewLoader(loader.BackendTypeGLTF, loader.WithAsset("cube.glb", asset))
	t.Cleanup(ldr.Close)

	r := newFakeRenderer()
	sampler := input.NewSampler()
	v := NewViewer(r, sampler, ldr, WithCamera(camera.NewCamera(camera.WithWindowSize(1280, 720))))
	v.Load("cube.glb")
	return v, r, sampler
}

// readyViewer runs the two pre-update frames that take a cached asset to a placed scene.
func readyViewer(t *testing.T) (Viewer, *fakeRenderer, input.Sampler) {
	t.Helper()
	v, r, sampler := newTestViewer(t, cubeAsset())
	require.NoError(t, v.PreUpdate(0))
	require.NoError(t, v.PreUpdate(0))
	require.True(t, v.Scene().Ready())
	return v, r, sampler
}

func TestViewerUploadsAndDrawsScene(t *testing.T) {
	v, r, _ := readyViewer(t)

	assert.Len(t, r.uploaded, 7, "six gizmo models and the cube")
	assert.True(t, v.Camera().Placed())

	require.NoError(t, v.Render(0.016))
	assert.Equal(t, 7, r.draws)
	assert.Equal(t, 1, r.presents)
	assert.Equal(t, DefaultAmbient, r.ambient)

	require.Len(t, r.lights, 1)
	assert.True(t, r.lights[0].Synthesized())
	assert.Equal(t, 1, r.shadowPasses, "fallback light casts shadows")
	assert.Equal(t, 1, r.shadowDraws)
}

func TestViewerDrawsGizmoWhileLoading(t *testing.T) {
	v, r, _ := newTestViewer(t, cubeAsset())
	require.NoError(t, v.PreUpdate(0))

	require.NoError(t, v.Render(0.016))
	assert.Equal(t, 6, r.draws)
	assert.Zero(t, r.shadowPasses)
}

func TestViewerCameraWaitsForPlacement(t *testing.T) {
	v, _, sampler := newTestViewer(t, cubeAsset())
	before := v.Camera().Controller().Pose()

	sampler.MouseButton(common.MouseButtonRight, true)
	sampler.MouseMove(0, 0)
	sampler.MouseMove(50, 0)
	require.NoError(t, v.Update(0.016))
	assert.Equal(t, before, v.Camera().Controller().Pose())
	assert.True(t, sampler.Sample().Idle(), "input frame ends after update")
}

func TestViewerOrbitsAfterPlacement(t *testing.T) {
	v, _, sampler := readyViewer(t)
	before := v.Camera().Controller().Pose()

	sampler.MouseButton(common.MouseButtonRight, true)
	sampler.MouseMove(0, 0)
	sampler.MouseMove(50, 0)
	require.NoError(t, v.Update(0.016))

	after := v.Camera().Controller().Pose()
	assert.NotEqual(t, before.Orientation, after.Orientation)
	assert.Equal(t, before.Focus, after.Focus)
}

func TestViewerToggleShadows(t *testing.T) {
	v, r, sampler := readyViewer(t)

	sampler.Key(common.KeyU, true)
	require.NoError(t, v.Update(0.016))

	require.NoError(t, v.Render(0.016))
	assert.Zero(t, r.shadowPasses)
	assert.False(t, v.Scene().Lights()[0].CastsShadows())
}

func TestViewerNoScenesIsFatal(t *testing.T) {
	v, _, _ := newTestViewer(t, &loader.Asset{Name: "empty"})
	assert.ErrorIs(t, v.PreUpdate(0), loader.ErrNoScenes)
}

func TestViewerSkipsUnavailableFrame(t *testing.T) {
	v, r, _ := readyViewer(t)
	r.frameErr = errors.New("surface outdated")

	require.NoError(t, v.Render(0.016))
	assert.Zero(t, r.presents)
	assert.Zero(t, r.draws)
}

func TestViewerResize(t *testing.T) {
	v, r, _ := newTestViewer(t, cubeAsset())
	v.Resize(800, 600)

	assert.Equal(t, camera.WindowMetrics{Width: 800, Height: 600}, v.Camera().Metrics())
	assert.Equal(t, 800, r.width)
	assert.Equal(t, 600, r.height)
}

func TestViewerResizeDuringRender(t *testing.T) {
	v, r, _ := readyViewer(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			v.Resize(800+i, 600+i)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, v.Render(0.016))
		}()
	}
	wg.Wait()

	// Camera and renderer always agree on the last size applied.
	m := v.Camera().Metrics()
	assert.Equal(t, float32(r.width), m.Width)
	assert.Equal(t, float32(r.height), m.Height)
}

func TestViewerReloadForgetsScene(t *testing.T) {
	v, r, _ := readyViewer(t)
	v.Load("cube.glb")

	assert.Equal(t, 1, r.forgotten)
	assert.Len(t, r.uploaded, 6)
}

func TestViewerAttach(t *testing.T) {
	v, r, _ := newTestViewer(t, cubeAsset())
	eng := engine.NewEngine()
	v.Attach(eng)

	require.NoError(t, eng.Step(0.016))
	require.NoError(t, eng.Step(0.016))
	require.NoError(t, eng.Step(0.016))

	assert.True(t, v.Scene().Ready())
	assert.Equal(t, 3, r.presents)
}

func TestNewViewerPanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewViewer(nil, input.NewSampler(), nil) })
}
