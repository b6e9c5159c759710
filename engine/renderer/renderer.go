package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/pkg/errors"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// meshes tracks every handle created through this renderer.
	meshes map[MeshHandle]struct{}

	// frame is incremented on every EndFrame so surfaces from older frames are rejected.
	frame       uint64
	frameActive bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *[4]float64
	width, height        int
	recorder             *Recorder
	drawHook             func(cmd DrawCommand) error
	meshHook             func(label string) error
}

// Renderer defines the interface for the rendering system.
//
// A frame is bracketed by BeginFrame and EndFrame. BeginFrame uploads the SceneBlock shared by
// every draw and hands out a Surface that is valid only until the matching EndFrame. Meshes are
// created once through the embedded MeshFactory and drawn by handle.
type Renderer interface {
	MeshFactory

	// BeginFrame starts a frame and uploads the per-frame scene uniforms.
	//
	// Parameters:
	//   - scene: view, perspective and light direction for the frame
	//
	// Returns:
	//   - Surface: the draw target for this frame
	//   - error: ErrFrameInProgress if the previous frame was not ended, or a backend error
	BeginFrame(scene SceneBlock) (Surface, error)

	// EndFrame finishes and submits the current frame. The Surface returned by BeginFrame is invalid afterwards.
	//
	// Returns:
	//   - error: ErrFrameNotStarted if no frame is in progress, or a backend error
	EndFrame() error

	// Present displays the last submitted frame.
	Present()

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color each frame is cleared to.
	//
	// Parameters:
	//   - color: RGBA components in [0,1]
	SetClearColor(color [4]float64)

	// BackendType returns the backend the renderer was created with.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Release frees every mesh created through the renderer, then every backend resource.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// The GPU backend requires a SurfaceTarget; the headless backend accepts nil and takes its
// size from WithSize.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - target: the surface the frames are presented to, may be nil for BackendTypeHeadless
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		meshes:      make(map[MeshHandle]struct{}),
		width:       800,
		height:      600,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}
	if target != nil {
		r.width, r.height = target.Width(), target.Height()
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend(r.recorder, r.drawHook, r.meshHook)
	case BackendTypeWGPU:
		fallthrough
	default:
		if target == nil {
			panic("renderer: NewRenderer requires a SurfaceTarget for the wgpu backend")
		}
		r.backend = newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	clearColor := [4]float64{0, 0, 1, 1}
	if r.pendingClearColor != nil {
		clearColor = *r.pendingClearColor
	}
	r.backend.SetClearColor(clearColor)

	r.backend.ConfigureSurface(r.width, r.height)
	logger.Debug("renderer: %s backend ready at %dx%d", backendType, r.width, r.height)
	return r
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) SetClearColor(color [4]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetClearColor(color)
}

func (r *renderer) CreateMesh(label string, m mesh.Mesh) (MeshHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.backend.CreateMesh(label, m)
	if err != nil {
		return nil, errors.Wrapf(err, "renderer: create mesh %q", label)
	}
	r.meshes[h] = struct{}{}
	return h, nil
}

func (r *renderer) UpdateMesh(h MeshHandle, m mesh.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meshes[h]; !ok || h == nil {
		return ErrUnknownMesh
	}
	if err := r.backend.UpdateMesh(h, m); err != nil {
		return errors.Wrapf(err, "renderer: update mesh %q", h.Label())
	}
	return nil
}

func (r *renderer) BeginFrame(scene SceneBlock) (Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameActive {
		return nil, ErrFrameInProgress
	}
	if err := r.backend.BeginFrame(scene); err != nil {
		return nil, errors.Wrap(err, "renderer: begin frame")
	}
	r.frameActive = true
	return &frameSurface{r: r, frame: r.frame}, nil
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameActive {
		return ErrFrameNotStarted
	}
	r.frameActive = false
	r.frame++
	if err := r.backend.EndFrame(); err != nil {
		return errors.Wrap(err, "renderer: end frame")
	}
	return nil
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h := range r.meshes {
		r.backend.ReleaseMesh(h)
	}
	r.meshes = make(map[MeshHandle]struct{})
	r.backend.Release()
}

func (r *renderer) draw(frame uint64, cmd DrawCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameActive || frame != r.frame {
		return ErrFrameNotStarted
	}
	if _, ok := r.meshes[cmd.Mesh]; !ok || cmd.Mesh == nil {
		return errors.Wrapf(ErrUnknownMesh, "renderer: draw %q", cmd.Label)
	}
	if err := r.backend.Draw(cmd); err != nil {
		return errors.Wrapf(err, "renderer: draw %q", cmd.Label)
	}
	return nil
}

// frameSurface is the Surface handed out by BeginFrame, bound to a single frame.
type frameSurface struct {
	r     *renderer
	frame uint64
}

var _ Surface = &frameSurface{}

func (s *frameSurface) Draw(cmd DrawCommand) error {
	return s.r.draw(s.frame, cmd)
}
