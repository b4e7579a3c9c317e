package engine

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the host window whose message loop drives the engine.
//
// Parameters:
//   - host: the window, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(host Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = host
	}
}

// WithSystem registers a system for a phase during engine construction.
//
// Parameters:
//   - phase: the frame stage to run in
//   - system: the function to run once per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSystem(phase Phase, system System) EngineBuilderOption {
	return func(e *engine) {
		if phase < 0 || phase >= phaseCount || system == nil {
			return
		}
		e.systems[phase] = append(e.systems[phase], system)
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
