package engine

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
)

// Phase is a stage of the frame. Systems run phase by phase, in registration order within a phase.
type Phase int

const (
	// PhasePreUpdate polls asynchronous work such as asset loading and scene placement.
	PhasePreUpdate Phase = iota
	// PhaseUpdate applies input to the camera, lights and animation.
	PhaseUpdate
	// PhaseRender writes uniforms and draws.
	PhaseRender

	phaseCount
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhaseRender:
		return "render"
	default:
		return "unknown"
	}
}

// System is one unit of per-frame work. A returned error stops the engine and is
// returned from Run.
type System func(deltaTime float32) error

// Host is the window the engine is driven by. window.Window satisfies it.
type Host interface {
	SetUpdateCallback(callback func() bool)
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	RequestClose()
	Width() int
	Height() int
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	host Host

	systems  [phaseCount][]System
	onResize []func(width, height int)

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	now              func() time.Time
	lastFrame        time.Time

	err  error
	quit bool
}

// Engine runs the viewer's frame loop on the window's thread.
//
// Each iteration of the window message loop is one frame: every PreUpdate system runs,
// then every Update system, then every Render system. Window events are delivered by the
// host between frames, so systems always see a consistent snapshot.
type Engine interface {
	// AddSystem registers a system for a phase.
	//
	// Parameters:
	//   - phase: the frame stage to run in
	//   - system: the function to run once per frame
	AddSystem(phase Phase, system System)

	// AddResizeHandler registers a function called with the new framebuffer size on every resize.
	//
	// Parameters:
	//   - handler: receives the width and height in pixels
	AddResizeHandler(handler func(width, height int))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs one frame: all phases in order with the given delta time.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - error: the first system error, which also stops Run
	Step(deltaTime float32) error

	// Run drives frames from the host's message loop until the window closes, Quit is
	// called, or a system fails.
	//
	// Returns:
	//   - error: the system error that stopped the loop, or nil
	Run() error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Resize events from the host are forwarded to every registered resize handler.
//
// Parameters:
//   - options: functional options for engine configuration (host, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		profiler: profiler.NewProfiler(time.Second),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.host != nil {
		e.host.SetResizeCallback(e.resize)
	}
	return e
}

func (e *engine) AddSystem(phase Phase, system System) {
	if phase < 0 || phase >= phaseCount || system == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.systems[phase] = append(e.systems[phase], system)
}

func (e *engine) AddResizeHandler(handler func(width, height int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onResize = append(e.onResize, handler)
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) resize(width, height int) {
	e.mu.Lock()
	handlers := slices.Clone(e.onResize)
	e.mu.Unlock()

	for _, h := range handlers {
		h(width, height)
	}
}

func (e *engine) Step(deltaTime float32) error {
	e.mu.Lock()
	systems := e.systems
	e.mu.Unlock()

	for phase := range phaseCount {
		for _, system := range systems[phase] {
			if err := system(deltaTime); err != nil {
				slog.Error("system failed", "phase", phase, "error", err)
				return err
			}
		}
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}

// frame is the host update callback. It returns false to stop the message loop.
func (e *engine) frame() bool {
	now := e.now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if err := e.Step(dt); err != nil {
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		return false
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.quit
}

func (e *engine) Run() error {
	if e.host == nil {
		return errors.New("engine has no window")
	}

	// Size-dependent systems see the initial framebuffer before the first frame.
	e.resize(e.host.Width(), e.host.Height())

	e.lastFrame = e.now()
	e.host.SetUpdateCallback(e.frame)
	e.host.ProcessMessages()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.mu.Lock()
	e.quit = true
	e.mu.Unlock()
	if e.host != nil {
		e.host.RequestClose()
	}
}
