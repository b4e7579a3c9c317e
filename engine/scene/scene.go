package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/animation"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// State is the progress of the viewed scene.
type State int

const (
	// StateIdle means nothing has been requested.
	StateIdle State = iota
	// StateLoading means the asset is being parsed.
	StateLoading
	// StateSpawning means the first scene was taken from the asset and becomes visible next frame.
	StateSpawning
	// StateReady means the scene is visible.
	StateReady
	// StateFailed means the asset could not be loaded. The viewer keeps running without a scene.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSpawning:
		return "spawning"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	loader loader.Loader
	cam    camera.Camera
	player animation.Player

	handle loader.Handle
	state  State
	asset  *loader.Asset

	instances []model.Model
	lights    []light.Light
	hasLight  bool

	placed    bool
	box       bounds.AABB
	hasBounds bool
}

// Scene drives a loaded asset from request to a framed, lit view.
//
// Each frame PreUpdate polls the loader. Once the asset arrives its first scene is spawned;
// the frame after, the scene is ready and the camera is placed as soon as every mesh
// reports bounds. When the asset carries no directional or point light a fallback light
// is added at placement time.
type Scene interface {
	// Load requests an asset. Any previous request is forgotten.
	//
	// Parameters:
	//   - path: the asset file
	Load(path string)

	// PreUpdate advances loading and placement by one frame.
	//
	// Returns:
	//   - error: loader.ErrNoScenes when the asset has nothing to show; other load
	//     failures are logged and leave the scene in StateFailed
	PreUpdate() error

	// State returns the current progress.
	State() State

	// Ready reports whether the scene is visible.
	Ready() bool

	// Placed reports whether the camera has been framed on the scene.
	Placed() bool

	// HasLight reports whether a directional or point light is present, either from the
	// asset or the fallback.
	HasLight() bool

	// Asset returns the loaded asset, or nil before it arrives.
	Asset() *loader.Asset

	// Instances returns the drawable models of the spawned scene.
	//
	// Returns:
	//   - []model.Model: the scene's models, empty until spawned
	Instances() []model.Model

	// Lights returns the scene's lights including any fallback light.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Bounds returns the world-space box used for placement.
	//
	// Returns:
	//   - bounds.AABB: the scene box
	//   - bool: false until the camera has been placed
	Bounds() (bounds.AABB, bool)
}

var _ Scene = &scene{}

// NewScene creates a Scene that loads through ldr and frames cam.
// Both are required and NewScene panics if either is nil.
//
// Parameters:
//   - ldr: the asset loader
//   - cam: the camera placed on the loaded scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(ldr loader.Loader, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if ldr == nil {
		panic("scene: NewScene requires a non-nil Loader")
	}
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		loader: ldr,
		cam:    cam,
	}
	for _, option := range options {
		option(s)
	}
	if s.player == nil {
		s.player = animation.NewPlayer()
	}
	return s
}

func (s *scene) Load(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("loading scene", "path", path)
	s.handle = s.loader.Load(path)
	s.state = StateLoading
	s.asset, s.instances, s.lights = nil, nil, nil
	s.hasLight, s.placed, s.hasBounds = false, false, false
}

func (s *scene) PreUpdate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateLoading:
		return s.checkLoad()
	case StateSpawning:
		slog.Info("scene ready", "instances", len(s.instances), "lights", len(s.lights))
		s.state = StateReady
		s.place()
	case StateReady:
		if !s.placed {
			s.place()
		}
	}
	return nil
}

// checkLoad polls the loader and spawns the first scene once the asset arrives.
func (s *scene) checkLoad() error {
	switch s.loader.State(s.handle) {
	case loader.LoadStateLoaded:
	case loader.LoadStateFailed:
		slog.Error("failed to load scene", "path", s.loader.Path(s.handle), "error", s.loader.Err(s.handle))
		s.state = StateFailed
		return nil
	default:
		return nil
	}

	asset := s.loader.Asset(s.handle)
	first, err := asset.FirstScene()
	if err != nil {
		s.state = StateFailed
		return fmt.Errorf("%s: %w", s.loader.Path(s.handle), err)
	}

	s.asset = asset
	s.hasLight = first.HasLight()
	s.instances = append([]model.Model(nil), first.Instances...)
	s.lights = append([]light.Light(nil), first.Lights...)

	slog.Info("found animations", "count", len(asset.Animations))
	s.player.SetClips(asset.Animations)

	slog.Info("spawning scene", "name", asset.Name, "has_light", s.hasLight)
	s.state = StateSpawning
	return nil
}

// place frames the camera on the scene bounds, retrying on later frames while any mesh
// lacks bounds, and adds the fallback light when the scene brought none.
func (s *scene) place() {
	meshes := make([]bounds.MeshBounds, len(s.instances))
	for i, inst := range s.instances {
		meshes[i] = inst.MeshBounds()
	}
	box, ok := bounds.Estimate(meshes)
	if !ok {
		return
	}

	p := camera.PlaceInitial(box)
	s.cam.ApplyPlacement(p)
	s.box, s.hasBounds, s.placed = box, true, true
	slog.Info("spawning a controllable 3D perspective camera",
		"center", box.Center, "size", box.Size(), "radius", p.Pose.Radius, "far", s.cam.Projection().Far)

	if !s.hasLight {
		slog.Info("spawning a directional light")
		s.lights = append(s.lights, light.NewFallback(box))
		s.hasLight = true
	}
}

func (s *scene) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *scene) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady
}

func (s *scene) Placed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placed
}

func (s *scene) HasLight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasLight
}

func (s *scene) Asset() *loader.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asset
}

func (s *scene) Instances() []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil
	}
	return s.instances
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil
	}
	return s.lights
}

func (s *scene) Bounds() (bounds.AABB, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.box, s.hasBounds
}
