// Package viewer ties the camera, input, scene, lights, animation and renderer into the
// per-frame systems of the scene viewer.
package viewer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/animation"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAmbient is the ambient light term: white at a fifth of full brightness.
var DefaultAmbient = mgl32.Vec3{0.2, 0.2, 0.2}

// viewer is the implementation of the Viewer interface.
type viewer struct {
	mu *sync.Mutex

	renderer renderer.Renderer
	sampler  input.Sampler
	cam      camera.Camera
	scene    scene.Scene
	player   animation.Player
	controls light.Controls

	gizmo   []model.Model
	ambient mgl32.Vec3
	gizmoOn bool

	elapsed       float32
	gizmoUploaded bool
	sceneUploaded bool
}

// Viewer shows one glTF scene under a pan-orbit camera.
//
// PreUpdate advances loading and uploads geometry once the scene is ready. Update feeds the
// frame's input to the camera, light keys and animation player. Render draws the axis gizmo
// and the scene, with a shadow pass whenever a light casts shadows.
type Viewer interface {
	// Load requests the scene file to show.
	//
	// Parameters:
	//   - path: the glTF or GLB file
	Load(path string)

	// Attach registers the viewer's systems and resize handler with an engine.
	//
	// Parameters:
	//   - eng: the engine driving the frame loop
	Attach(eng engine.Engine)

	// PreUpdate polls the scene and uploads new geometry.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: loader.ErrNoScenes when the asset has nothing to show, or an upload failure
	PreUpdate(dt float32) error

	// Update applies the frame's input and ends the input frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: always nil
	Update(dt float32) error

	// Render draws one frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: a draw failure; a surface that cannot be acquired skips the frame instead
	Render(dt float32) error

	// Resize propagates a framebuffer size to the camera and renderer.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	Resize(width, height int)

	// Camera returns the viewer's camera.
	Camera() camera.Camera

	// Scene returns the viewed scene.
	Scene() scene.Scene

	// Player returns the animation player.
	Player() animation.Player
}

var _ Viewer = &viewer{}

// NewViewer creates a Viewer drawing through r and reading input from sampler.
// Assets are loaded through ldr. All three are required and NewViewer panics if any is nil.
//
// Parameters:
//   - r: the renderer
//   - sampler: the input sampler bound to the window
//   - ldr: the asset loader
//   - options: functional options to further configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
func NewViewer(r renderer.Renderer, sampler input.Sampler, ldr loader.Loader, options ...ViewerBuilderOption) Viewer {
	if r == nil || sampler == nil || ldr == nil {
		panic("viewer: NewViewer requires a Renderer, a Sampler and a Loader")
	}

	v := &viewer{
		mu:       &sync.Mutex{},
		renderer: r,
		sampler:  sampler,
		ambient:  DefaultAmbient,
		gizmoOn:  true,
	}
	for _, option := range options {
		option(v)
	}
	if v.cam == nil {
		v.cam = camera.NewCamera()
	}
	if v.player == nil {
		v.player = animation.NewPlayer()
	}
	if v.gizmoOn {
		v.gizmo = gizmo.Axes()
	}
	v.scene = scene.NewScene(ldr, v.cam, scene.WithPlayer(v.player))
	return v
}

func (v *viewer) Load(path string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sceneUploaded {
		v.renderer.Forget(v.scene.Instances()...)
		v.sceneUploaded = false
	}
	v.scene.Load(path)
}

func (v *viewer) Attach(eng engine.Engine) {
	eng.AddResizeHandler(v.Resize)
	eng.AddSystem(engine.PhasePreUpdate, v.PreUpdate)
	eng.AddSystem(engine.PhaseUpdate, v.Update)
	eng.AddSystem(engine.PhaseRender, v.Render)
}

func (v *viewer) PreUpdate(_ float32) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.gizmoUploaded {
		if err := v.renderer.Upload(v.gizmo...); err != nil {
			return err
		}
		v.gizmoUploaded = true
	}

	if err := v.scene.PreUpdate(); err != nil {
		return err
	}

	if v.scene.Ready() && !v.sceneUploaded {
		instances := v.scene.Instances()
		if err := v.renderer.Upload(instances...); err != nil {
			return err
		}
		v.sceneUploaded = true
		slog.Debug("uploaded scene", "instances", len(instances))
	}
	return nil
}

func (v *viewer) Update(dt float32) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.sampler.EndFrame()

	v.elapsed += dt

	sample := v.sampler.Sample()
	// The camera is only controllable once it has been framed on the scene.
	if v.cam.Placed() {
		v.cam.Update(sample)
	}

	v.controls.Update(v.sampler, v.elapsed, v.scene.Lights()...)
	v.player.Update(dt, v.sampler)
	return nil
}

func (v *viewer) Render(_ float32) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	lights := v.scene.Lights()
	instances := v.scene.Instances()

	v.renderer.WriteFrameUniform(v.cam.ViewProjectionMatrix(), v.cam.Eye())
	v.renderer.WriteLights(lights, v.ambient)

	if light.ShadowCaster(lights) != nil && len(instances) > 0 {
		if err := v.renderer.BeginShadowPass(); err != nil {
			slog.Warn("skipping shadow pass", "error", err)
		} else {
			for _, inst := range instances {
				v.renderer.DrawShadow(inst)
			}
			v.renderer.EndShadowPass()
		}
	}

	if err := v.renderer.BeginFrame(); err != nil {
		slog.Warn("skipping frame", "error", err)
		return nil
	}
	for _, m := range v.gizmo {
		if err := v.renderer.Draw(m); err != nil {
			v.renderer.EndFrame()
			return err
		}
	}
	for _, inst := range instances {
		if !v.renderer.Uploaded(inst) {
			continue
		}
		if err := v.renderer.Draw(inst); err != nil {
			v.renderer.EndFrame()
			return err
		}
	}
	v.renderer.EndFrame()
	v.renderer.Present()
	return nil
}

func (v *viewer) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cam.Resize(float32(width), float32(height))
	v.renderer.Resize(width, height)
}

func (v *viewer) Camera() camera.Camera {
	return v.cam
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Player() animation.Player {
	return v.player
}
