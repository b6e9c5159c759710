package renderer

import "github.com/Carmen-Shannon/oxy-aviator/engine/mesh"

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that records meshes and draw commands in memory
	// without touching a GPU.
	BackendTypeHeadless
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the contract every backend implements. The Renderer serializes access to
// it and enforces the frame protocol, so backends may assume BeginFrame, Draw and EndFrame
// arrive in order.
type RendererBackend interface {
	// ConfigureSurface (re)creates size-dependent resources.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the RGBA color the color attachment is cleared to at the start of a frame.
	//
	// Parameters:
	//   - color: RGBA components in [0,1]
	SetClearColor(color [4]float64)

	// CreateMesh uploads vertex and, for indexed meshes, index data.
	//
	// Parameters:
	//   - label: a debug label for the created resources
	//   - m: the mesh to upload
	//
	// Returns:
	//   - MeshHandle: the created handle
	//   - error: an error if the resources could not be created
	CreateMesh(label string, m mesh.Mesh) (MeshHandle, error)

	// UpdateMesh replaces the data of a handle this backend created.
	//
	// Parameters:
	//   - h: the handle to update
	//   - m: the new mesh data
	//
	// Returns:
	//   - error: an error if the upload failed
	UpdateMesh(h MeshHandle, m mesh.Mesh) error

	// ReleaseMesh frees the buffers behind a handle this backend created. The handle must not be
	// drawn or updated afterwards.
	//
	// Parameters:
	//   - h: the handle to release
	ReleaseMesh(h MeshHandle)

	// BeginFrame acquires the frame target and uploads the scene block.
	//
	// Parameters:
	//   - scene: the per-frame scene uniforms
	//
	// Returns:
	//   - error: an error if the frame could not be started
	BeginFrame(scene SceneBlock) error

	// Draw encodes one draw within the current frame.
	//
	// Parameters:
	//   - cmd: the draw command
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	Draw(cmd DrawCommand) error

	// EndFrame finishes and submits the current frame. It does not present.
	//
	// Returns:
	//   - error: an error if the frame could not be submitted
	EndFrame() error

	// Present displays the last submitted frame.
	Present()

	// Release frees every resource held by the backend.
	Release()
}
