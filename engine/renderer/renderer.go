package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the drawable the renderer presents to. window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// DefaultClearColor is the background behind the scene: a dark grey.
var DefaultClearColor = mgl32.Vec4{0.1, 0.1, 0.1, 1}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	meshes    map[*model.Mesh]*gpuMesh
	instances map[model.Model]*gpuInstance

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           mgl32.Vec4
}

// Renderer draws flat-colored models with the scene's lights and one shadow map.
//
// Models are uploaded once with Upload; meshes shared between models share GPU buffers.
// A frame writes the camera and light uniforms, optionally renders the shadow pass, then
// draws every model between BeginFrame and EndFrame and presents.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size. Zero sizes, as reported
	// while the window is minimized, are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required after
	// changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Upload creates GPU buffers for models that have none yet. Models without geometry are skipped.
	//
	// Parameters:
	//   - models: the models to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	Upload(models ...model.Model) error

	// Uploaded reports whether a model has GPU buffers.
	Uploaded(m model.Model) bool

	// Forget releases the GPU buffers of models, and of their meshes once no uploaded model uses them.
	//
	// Parameters:
	//   - models: the models to release
	Forget(models ...model.Model)

	// WriteFrameUniform writes the camera view-projection and eye position.
	//
	// Parameters:
	//   - viewProj: the camera's projection times view
	//   - eye: the world-space camera position
	WriteFrameUniform(viewProj mgl32.Mat4, eye mgl32.Vec3)

	// WriteLights writes the light block. Only the first light.MaxGPULights lights are used.
	//
	// Parameters:
	//   - lights: the scene's lights
	//   - ambient: the ambient RGB term
	WriteLights(lights []light.Light, ambient mgl32.Vec3)

	// BeginShadowPass starts the depth-only pass into the shadow map.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginShadowPass() error

	// DrawShadow renders an uploaded model into the shadow map. Unlit models and models
	// that were never uploaded are skipped.
	//
	// Parameters:
	//   - m: the model to draw
	DrawShadow(m model.Model)

	// EndShadowPass submits the shadow pass.
	EndShadowPass()

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw writes the model's uniform and encodes its draw.
	//
	// Parameters:
	//   - m: the model to draw
	//
	// Returns:
	//   - error: an error if the model was not uploaded or no frame is in progress
	Draw(m model.Model) error

	// EndFrame ends the current render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface to the display.
	Present()

	// Release frees all GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given surface. Panics if no GPU adapter or
// device is available.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window to present to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		meshes:      make(map[*model.Mesh]*gpuMesh),
		instances:   make(map[model.Model]*gpuInstance),
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  DefaultClearColor,
	}

	// Apply options first so config flags are available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Upload(models ...model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range models {
		if _, ok := r.instances[m]; ok {
			continue
		}
		mesh := m.Mesh()
		if mesh == nil || len(mesh.Positions) == 0 {
			continue
		}

		gm, ok := r.meshes[mesh]
		if !ok {
			indexData, indexCount := meshIndexData(mesh)
			var err error
			gm, err = r.backend.CreateMesh(m.Name(), model.MarshalVertices(mesh.Vertices()), indexData, indexCount, mesh.Topology)
			if err != nil {
				return fmt.Errorf("failed to upload mesh of %q: %w", m.Name(), err)
			}
			r.meshes[mesh] = gm
		}

		inst, err := r.backend.CreateInstance(m.Name(), gm)
		if err != nil {
			return fmt.Errorf("failed to create instance of %q: %w", m.Name(), err)
		}
		data := m.GPUData()
		r.backend.WriteInstance(inst, data.Marshal())
		r.instances[m] = inst
	}
	return nil
}

func (r *renderer) Uploaded(m model.Model) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.instances[m]
	return ok
}

func (r *renderer) Forget(models ...model.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range models {
		inst, ok := r.instances[m]
		if !ok {
			continue
		}
		r.backend.ReleaseInstance(inst)
		delete(r.instances, m)
	}

	used := make(map[*gpuMesh]bool, len(r.instances))
	for _, inst := range r.instances {
		used[inst.mesh] = true
	}
	for mesh, gm := range r.meshes {
		if !used[gm] {
			r.backend.ReleaseMesh(gm)
			delete(r.meshes, mesh)
		}
	}
}

func (r *renderer) WriteFrameUniform(viewProj mgl32.Mat4, eye mgl32.Vec3) {
	data := GPUFrameData{ViewProj: viewProj, Eye: eye}
	r.backend.WriteFrame(data.Marshal())
}

func (r *renderer) WriteLights(lights []light.Light, ambient mgl32.Vec3) {
	r.backend.WriteLights(light.MarshalLightBlock(lights, ambient))
}

func (r *renderer) BeginShadowPass() error {
	return r.backend.BeginShadowPass()
}

func (r *renderer) DrawShadow(m model.Model) {
	if !m.Lit() {
		return
	}
	r.mu.Lock()
	inst, ok := r.instances[m]
	r.mu.Unlock()
	if !ok {
		return
	}
	r.backend.DrawShadow(inst)
}

func (r *renderer) EndShadowPass() {
	r.backend.EndShadowPass()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(m model.Model) error {
	r.mu.Lock()
	inst, ok := r.instances[m]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("model %q was not uploaded", m.Name())
	}

	data := m.GPUData()
	r.backend.WriteInstance(inst, data.Marshal())
	return r.backend.Draw(inst)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for m, inst := range r.instances {
		r.backend.ReleaseInstance(inst)
		delete(r.instances, m)
	}
	for mesh, gm := range r.meshes {
		r.backend.ReleaseMesh(gm)
		delete(r.meshes, mesh)
	}
	r.backend.Release()
}
