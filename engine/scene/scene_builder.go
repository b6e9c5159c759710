package scene

import "github.com/Carmen-Shannon/oxy-aviator/engine/light"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLight replaces the default light towards (2, 2, 0).
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithDrawables adds initial drawables to the scene in order.
//
// Parameters:
//   - drawables: the drawables to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDrawables(drawables ...Drawable) SceneBuilderOption {
	return func(s *scene) {
		s.drawables = append(s.drawables, drawables...)
	}
}

// WithUpdaters adds initial update steps to the scene in order.
//
// Parameters:
//   - updaters: the update steps to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdaters(updaters ...Updater) SceneBuilderOption {
	return func(s *scene) {
		s.updaters = append(s.updaters, updaters...)
	}
}
