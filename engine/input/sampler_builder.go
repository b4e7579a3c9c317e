package input

// SamplerBuilderOption is a functional option for configuring a Sampler.
type SamplerBuilderOption func(*samplerImpl)

// WithOrbitButton sets the mouse button that activates the orbit gesture.
//
// Parameters:
//   - button: the mouse button code
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithOrbitButton(button int) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.orbitButton = button
	}
}

// WithPanModifiers replaces the set of keys that turn an orbit drag into a pan drag.
//
// Parameters:
//   - keyCodes: the modifier key codes
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithPanModifiers(keyCodes ...uint32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.panModifiers = append([]uint32(nil), keyCodes...)
	}
}

// WithScrollGain overrides the multiplier applied to raw wheel-Y values.
//
// Parameters:
//   - gain: the scroll multiplier
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithScrollGain(gain float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.scrollGain = gain
	}
}
