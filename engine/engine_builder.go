package engine

import (
	"github.com/Carmen-Shannon/oxy-aviator/engine/config"
	"github.com/Carmen-Shannon/oxy-aviator/engine/scene"
)

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

// WithWindow attaches a window. Run stops when the window stops running and polls its events
// after every frame. Without a window the engine runs headless.
//
// Parameters:
//   - w: an open window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining draw order (lower draws first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithFrames stops Run after n frames. Zero runs until quit.
//
// Parameters:
//   - n: the number of frames
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrames(n int) EngineBuilderOption {
	return func(e *engine) {
		if n < 0 {
			panic("engine: WithFrames requires n >= 0")
		}
		e.maxFrames = n
	}
}

// WithConfigUpdates applies every config received on updates at the top of the next frame.
//
// Parameters:
//   - updates: typically the channel returned by config.Watch
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigUpdates(updates <-chan config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.configUpdates = updates
	}
}

// WithFrameCallback calls fn after each completed frame with the number of frames so far.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(fn func(frame int)) EngineBuilderOption {
	return func(e *engine) {
		e.onFrame = fn
	}
}
