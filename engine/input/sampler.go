package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// samplerImpl is the implementation of the Sampler interface.
type samplerImpl struct {
	mu *sync.Mutex

	orbitButton  int
	panModifiers []uint32
	scrollGain   float32

	// Persistent state across frames.
	buttons   map[int]bool
	keys      map[uint32]bool
	cursor    mgl32.Vec2
	hasCursor bool

	// Per-frame accumulators, cleared by EndFrame.
	motion          mgl32.Vec2
	wheel           float32
	buttonsPressed  map[int]bool
	buttonsReleased map[int]bool
	keysPressed     map[uint32]bool
}

// Sampler aggregates raw window events into per-frame input snapshots.
//
// Events may arrive at any time between frames. The host forwards them with the
// event methods, reads one Sample per frame, and then calls EndFrame to start the next
// aggregation window. Missing events simply produce zero deltas.
type Sampler interface {
	// MouseMove records an absolute cursor position. The motion delta is the
	// difference from the previously recorded position.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	MouseMove(x, y float32)

	// MouseMotion records a relative pointer motion delta directly.
	//
	// Parameters:
	//   - dx, dy: motion in pixels since the last event
	MouseMotion(dx, dy float32)

	// MouseButton records a mouse button press or release.
	//
	// Parameters:
	//   - button: the mouse button code (see common.MouseButtonRight)
	//   - pressed: true for press, false for release
	MouseButton(button int, pressed bool)

	// Scroll records a vertical wheel event.
	//
	// Parameters:
	//   - dy: raw wheel-Y delta
	Scroll(dy float32)

	// Key records a key press or release.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common.Key*)
	//   - pressed: true for press, false for release
	Key(keyCode uint32, pressed bool)

	// Sample folds the events recorded since the last EndFrame into a Sample.
	// Calling it more than once per frame returns the same result.
	//
	// Returns:
	//   - Sample: the aggregated input for this frame
	Sample() Sample

	// Pressed reports whether a key is currently held.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is down
	Pressed(keyCode uint32) bool

	// JustPressed reports whether a key went down during the current frame.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the key was pressed this frame
	JustPressed(keyCode uint32) bool

	// EndFrame discards the per-frame accumulators and edges.
	EndFrame()
}

var _ Sampler = &samplerImpl{}

// NewSampler creates a Sampler bound to the right mouse button for orbiting and
// either shift key as the pan modifier.
//
// Parameters:
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the newly created sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &samplerImpl{
		mu:              &sync.Mutex{},
		orbitButton:     common.MouseButtonRight,
		panModifiers:    []uint32{common.KeyLeftShift, common.KeyRightShift},
		scrollGain:      ScrollGain,
		buttons:         make(map[int]bool),
		keys:            make(map[uint32]bool),
		buttonsPressed:  make(map[int]bool),
		buttonsReleased: make(map[int]bool),
		keysPressed:     make(map[uint32]bool),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *samplerImpl) MouseMove(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := mgl32.Vec2{x, y}
	if s.hasCursor {
		s.motion = s.motion.Add(pos.Sub(s.cursor))
	}
	s.cursor = pos
	s.hasCursor = true
}

func (s *samplerImpl) MouseMotion(dx, dy float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motion = s.motion.Add(mgl32.Vec2{dx, dy})
}

func (s *samplerImpl) MouseButton(button int, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.buttons[button]
	s.buttons[button] = pressed
	switch {
	case pressed && !was:
		s.buttonsPressed[button] = true
	case !pressed && was:
		s.buttonsReleased[button] = true
	}
}

func (s *samplerImpl) Scroll(dy float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wheel += dy
}

func (s *samplerImpl) Key(keyCode uint32, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pressed && !s.keys[keyCode] {
		s.keysPressed[keyCode] = true
	}
	s.keys[keyCode] = pressed
}

func (s *samplerImpl) Sample() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Sample
	if s.buttons[s.orbitButton] {
		if s.panModifierHeld() {
			out.PanDelta = s.motion
		} else {
			out.RotationDelta = s.motion
		}
	}
	out.Scroll = s.wheel * s.scrollGain
	out.OrbitEdge = s.buttonsPressed[s.orbitButton] || s.buttonsReleased[s.orbitButton]
	return out
}

func (s *samplerImpl) Pressed(keyCode uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[keyCode]
}

func (s *samplerImpl) JustPressed(keyCode uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keysPressed[keyCode]
}

func (s *samplerImpl) EndFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motion = mgl32.Vec2{}
	s.wheel = 0
	clear(s.buttonsPressed)
	clear(s.buttonsReleased)
	clear(s.keysPressed)
}

// panModifierHeld reports whether any configured pan modifier key is down.
// Caller must hold the mutex.
func (s *samplerImpl) panModifierHeld() bool {
	for _, k := range s.panModifiers {
		if s.keys[k] {
			return true
		}
	}
	return false
}
