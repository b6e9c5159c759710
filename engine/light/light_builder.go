package light

// LightBuilderOption is a functional option for configuring a lightImpl.
type LightBuilderOption func(*lightImpl)

// WithDirection is an option builder that sets the direction towards the light.
//
// Parameters:
//   - x, y, z: direction components, not all zero
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = [3]float32{x, y, z}
	}
}

// WithEnabled is an option builder that sets whether the light contributes diffuse shading.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
