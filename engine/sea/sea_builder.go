package sea

import (
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
)

// SeaBuilderOption is a functional option for configuring a Sea during construction.
type SeaBuilderOption func(*sea)

// WithLabel sets the label of the sea mesh and node.
func WithLabel(label string) SeaBuilderOption {
	return func(s *sea) {
		s.label = label
	}
}

// WithScale sets the uniform scale of the sea node.
func WithScale(scale float32) SeaBuilderOption {
	return func(s *sea) {
		s.scale = scale
	}
}

// WithTranslation sets the translation of the sea node.
func WithTranslation(x, y, z float32) SeaBuilderOption {
	return func(s *sea) {
		s.translation = [3]float32{x, y, z}
	}
}

// WithColor sets the object color of the sea node.
func WithColor(rgb [3]float32) SeaBuilderOption {
	return func(s *sea) {
		s.color = rgb
	}
}

// WithDrawParameters sets the draw state of the sea node.
func WithDrawParameters(p renderer.DrawParameters) SeaBuilderOption {
	return func(s *sea) {
		s.params = p
	}
}

// WithAnimatorOptions forwards options to the wave animator, e.g. a seed or amplitude range.
//
// Parameters:
//   - options: the animator options
//
// Returns:
//   - SeaBuilderOption: functional option to configure the animator
func WithAnimatorOptions(options ...wave.AnimatorBuilderOption) SeaBuilderOption {
	return func(s *sea) {
		s.waveOptions = append(s.waveOptions, options...)
	}
}
