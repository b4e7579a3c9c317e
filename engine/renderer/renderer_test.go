package renderer

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records calls instead of talking to a GPU.
type fakeBackend struct {
	meshesCreated    int
	meshesReleased   int
	instancesCreated int
	instancesFreed   int
	shadowDraws      int
	draws            []*gpuInstance
	lights           []byte
	frame            []byte
	inFrame          bool
}

func (f *fakeBackend) ConfigureSurface(int, int)  {}
func (f *fakeBackend) SetPresentMode(PresentMode) {}

func (f *fakeBackend) CreateMesh(_ string, _, _ []byte, indexCount uint32, topology model.Topology) (*gpuMesh, error) {
	f.meshesCreated++
	return &gpuMesh{indexCount: indexCount, topology: topology}, nil
}

func (f *fakeBackend) CreateInstance(_ string, mesh *gpuMesh) (*gpuInstance, error) {
	f.instancesCreated++
	return &gpuInstance{mesh: mesh}, nil
}

func (f *fakeBackend) WriteInstance(*gpuInstance, []byte) {}
func (f *fakeBackend) ReleaseInstance(*gpuInstance)       { f.instancesFreed++ }
func (f *fakeBackend) ReleaseMesh(*gpuMesh)               { f.meshesReleased++ }
func (f *fakeBackend) WriteFrame(data []byte)             { f.frame = data }
func (f *fakeBackend) WriteLights(data []byte)            { f.lights = data }
func (f *fakeBackend) BeginShadowPass() error             { return nil }
func (f *fakeBackend) DrawShadow(*gpuInstance)            { f.shadowDraws++ }
func (f *fakeBackend) EndShadowPass()                     {}
func (f *fakeBackend) BeginFrame() error                  { f.inFrame = true; return nil }
func (f *fakeBackend) EndFrame()                          { f.inFrame = false }
func (f *fakeBackend) Present()                           {}
func (f *fakeBackend) Release()                           {}

func (f *fakeBackend) Draw(inst *gpuInstance) error {
	if !f.inFrame {
		return errNoFrame
	}
	f.draws = append(f.draws, inst)
	return nil
}

func newTestRenderer() (*renderer, *fakeBackend) {
	backend := &fakeBackend{}
	return &renderer{
		mu:        &sync.Mutex{},
		backend:   backend,
		meshes:    make(map[*model.Mesh]*gpuMesh),
		instances: make(map[model.Model]*gpuInstance),
	}, backend
}

func triangle() *model.Mesh {
	return &model.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestUploadSharesMeshes(t *testing.T) {
	r, backend := newTestRenderer()
	mesh := triangle()
	a := model.NewModel(model.WithName("a"), model.WithMesh(mesh))
	b := model.NewModel(model.WithName("b"), model.WithMesh(mesh))
	empty := model.NewModel(model.WithName("empty"), model.WithMesh(&model.Mesh{}))

	require.NoError(t, r.Upload(a, b, empty))
	require.NoError(t, r.Upload(a))

	assert.Equal(t, 1, backend.meshesCreated)
	assert.Equal(t, 2, backend.instancesCreated)
	assert.True(t, r.Uploaded(a))
	assert.False(t, r.Uploaded(empty))
}

func TestForgetReleasesUnusedMeshes(t *testing.T) {
	r, backend := newTestRenderer()
	mesh := triangle()
	a := model.NewModel(model.WithMesh(mesh))
	b := model.NewModel(model.WithMesh(mesh))
	require.NoError(t, r.Upload(a, b))

	r.Forget(a)
	assert.Equal(t, 1, backend.instancesFreed)
	assert.Zero(t, backend.meshesReleased, "mesh still used by b")

	r.Forget(b)
	assert.Equal(t, 1, backend.meshesReleased)
	assert.Empty(t, r.meshes)
}

func TestDrawRequiresUpload(t *testing.T) {
	r, backend := newTestRenderer()
	m := model.NewModel(model.WithName("tri"), model.WithMesh(triangle()))

	require.NoError(t, r.BeginFrame())
	assert.Error(t, r.Draw(m))

	require.NoError(t, r.Upload(m))
	require.NoError(t, r.Draw(m))
	r.EndFrame()
	assert.Len(t, backend.draws, 1)

	assert.ErrorIs(t, r.Draw(m), errNoFrame)
}

func TestDrawShadowSkipsLines(t *testing.T) {
	r, backend := newTestRenderer()
	lines := model.NewModel(model.WithMesh(&model.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		Topology:  model.TopologyLineList,
	}))
	tri := model.NewModel(model.WithMesh(triangle()))
	require.NoError(t, r.Upload(lines, tri))

	r.DrawShadow(lines)
	r.DrawShadow(tri)
	assert.Equal(t, 1, backend.shadowDraws)
}

func TestWriteUniforms(t *testing.T) {
	r, backend := newTestRenderer()

	r.WriteFrameUniform(mgl32.Ident4(), mgl32.Vec3{1, 2, 3})
	require.Len(t, backend.frame, GPUFrameDataSize)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(backend.frame[0:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(backend.frame[72:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(backend.frame[76:])))

	r.WriteLights([]light.Light{light.NewLight(light.LightTypePoint)}, mgl32.Vec3{0.2, 0.2, 0.2})
	require.Len(t, backend.lights, light.GPULightBlockSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(backend.lights[12:]))
}

func TestMeshIndexData(t *testing.T) {
	data, count := meshIndexData(&model.Mesh{Positions: make([]mgl32.Vec3, 3)})
	assert.Equal(t, uint32(3), count)
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}, data)

	data, count = meshIndexData(&model.Mesh{Indices: []uint32{2, 1}})
	assert.Equal(t, uint32(2), count)
	assert.Equal(t, []byte{2, 0, 0, 0, 1, 0, 0, 0}, data)
}

func TestParseMSAA(t *testing.T) {
	assert.Equal(t, MSAAOff, ParseMSAA(0))
	assert.Equal(t, MSAAOff, ParseMSAA(1))
	assert.Equal(t, MSAA4x, ParseMSAA(4))
	assert.Equal(t, MSAA4x, ParseMSAA(8))
}
