package window

import "github.com/Carmen-Shannon/oxy-viewer/engine/input"

// BindSampler forwards the window's pointer, wheel and key events to an input sampler.
// Any previously registered input callbacks are replaced.
//
// Parameters:
//   - w: the window producing events
//   - s: the sampler aggregating them into frames
func BindSampler(w Window, s input.Sampler) {
	w.SetMouseMoveCallback(s.MouseMove)
	w.SetMouseButtonCallback(s.MouseButton)
	w.SetScrollCallback(s.Scroll)
	w.SetKeyCallback(s.Key)
}
