package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the frame is cleared to. Defaults to opaque blue.
//
// Parameters:
//   - color: RGBA components in [0,1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingClearColor = &color
	}
}

// WithSize sets the initial surface size used when no SurfaceTarget is given.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithRecorder makes the headless backend record into the given Recorder so callers can
// inspect frames after the fact. Ignored by the GPU backend.
//
// Parameters:
//   - rec: the recorder to write into
//
// Returns:
//   - RendererBuilderOption: a function that applies the recorder option to a renderer
func WithRecorder(rec *Recorder) RendererBuilderOption {
	return func(r *renderer) {
		r.recorder = rec
	}
}

// WithDrawHook installs a function the headless backend calls for every draw before recording
// it. A non-nil error fails the draw. Ignored by the GPU backend.
//
// Parameters:
//   - hook: the function to call per draw
//
// Returns:
//   - RendererBuilderOption: a function that applies the draw hook option to a renderer
func WithDrawHook(hook func(cmd DrawCommand) error) RendererBuilderOption {
	return func(r *renderer) {
		r.drawHook = hook
	}
}

// WithMeshHook installs a function the headless backend calls for every mesh creation or
// update. A non-nil error fails the call. Ignored by the GPU backend.
//
// Parameters:
//   - hook: the function to call with the mesh label
//
// Returns:
//   - RendererBuilderOption: a function that applies the mesh hook option to a renderer
func WithMeshHook(hook func(label string) error) RendererBuilderOption {
	return func(r *renderer) {
		r.meshHook = hook
	}
}
