package assembly

import "github.com/Carmen-Shannon/oxy-aviator/common"

// AssemblyBuilderOption is a functional option for configuring an Assembly during construction.
type AssemblyBuilderOption func(*assembly)

// WithLabel sets the label used in log lines and errors.
//
// Parameters:
//   - label: the assembly label
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the label
func WithLabel(label string) AssemblyBuilderOption {
	return func(a *assembly) {
		a.label = label
	}
}

// WithScale sets the initial group scale.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the scale
func WithScale(x, y, z float32) AssemblyBuilderOption {
	return func(a *assembly) {
		a.scale = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial group rotation.
//
// Parameters:
//   - angle: rotation in radians
//   - axis: the axis to rotate about
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the rotation
func WithRotation(angle float32, axis common.Axis) AssemblyBuilderOption {
	return func(a *assembly) {
		a.angle = angle
		a.axis = axis
	}
}

// WithTranslation sets the initial group translation.
//
// Parameters:
//   - x, y, z: offset
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the translation
func WithTranslation(x, y, z float32) AssemblyBuilderOption {
	return func(a *assembly) {
		a.translation = [3]float32{x, y, z}
	}
}
