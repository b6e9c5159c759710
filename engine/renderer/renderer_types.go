package renderer

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

var (
	// ErrFrameNotStarted is returned when a draw or EndFrame happens outside of BeginFrame/EndFrame.
	ErrFrameNotStarted = errors.New("renderer: no frame in progress")

	// ErrFrameInProgress is returned when BeginFrame is called before the previous frame ended.
	ErrFrameInProgress = errors.New("renderer: frame already in progress")

	// ErrUnknownMesh is returned when a MeshHandle was not created by the receiving renderer.
	ErrUnknownMesh = errors.New("renderer: unknown mesh handle")

	// ErrUniformCapacity is returned when a frame issues more draws than the object uniform ring holds.
	ErrUniformCapacity = errors.New("renderer: object uniform capacity exceeded")
)

// DepthTest selects the depth comparison used by a draw.
type DepthTest int

const (
	// DepthAlways disables depth testing; every fragment passes.
	DepthAlways DepthTest = iota

	// DepthLess passes fragments strictly closer than the stored depth.
	DepthLess

	// DepthLessEqual passes fragments closer than or equal to the stored depth.
	DepthLessEqual
)

func (d DepthTest) String() string {
	switch d {
	case DepthAlways:
		return "always"
	case DepthLess:
		return "less"
	case DepthLessEqual:
		return "less_equal"
	default:
		return "unknown"
	}
}

func (d DepthTest) compareFunction() wgpu.CompareFunction {
	switch d {
	case DepthLess:
		return wgpu.CompareFunctionLess
	case DepthLessEqual:
		return wgpu.CompareFunctionLessEqual
	default:
		return wgpu.CompareFunctionAlways
	}
}

// DrawParameters holds the fixed-function state requested by a single draw.
type DrawParameters struct {
	DepthTest  DepthTest
	DepthWrite bool
	// Multisample requests anti-aliasing for the draw. The sample count itself is a property of
	// the render pass configured with WithMSAA, so this flag is advisory for the GPU backend.
	Multisample bool
}

// Uniforms is the per-draw data uploaded alongside a mesh.
type Uniforms struct {
	ObjectColor [3]float32
	Model       common.Mat4
}

// SceneBlock is the per-frame data shared by every draw in the frame.
type SceneBlock struct {
	View           common.Mat4
	Perspective    common.Mat4
	LightDirection [3]float32
}

// DrawCommand is a single request to draw a mesh with its uniforms and parameters.
type DrawCommand struct {
	Label    string
	Mesh     MeshHandle
	Uniforms Uniforms
	Params   DrawParameters
}

// MeshHandle is an opaque reference to mesh data uploaded to a renderer backend.
type MeshHandle interface {
	// Label returns the debug label the mesh was created with.
	Label() string

	// VertexCount returns the number of vertices currently uploaded.
	VertexCount() int

	// IndexCount returns the number of indices currently uploaded, 0 for non-indexed meshes.
	IndexCount() int
}

// MeshFactory creates and updates backend mesh resources.
type MeshFactory interface {
	// CreateMesh uploads a mesh and returns a handle for drawing it.
	// Indexed meshes get an index buffer in addition to the vertex buffer.
	//
	// Parameters:
	//   - label: a debug label for the mesh resources
	//   - m: the mesh data to upload
	//
	// Returns:
	//   - MeshHandle: the handle referencing the uploaded mesh
	//   - error: an error if the backend could not create the resources
	CreateMesh(label string, m mesh.Mesh) (MeshHandle, error)

	// UpdateMesh replaces the data behind an existing handle.
	//
	// Parameters:
	//   - h: a handle returned by CreateMesh on the same factory
	//   - m: the new mesh data
	//
	// Returns:
	//   - error: ErrUnknownMesh for foreign handles, or a backend upload error
	UpdateMesh(h MeshHandle, m mesh.Mesh) error
}

// Surface accepts draw commands for the frame it was obtained from.
type Surface interface {
	// Draw issues a single draw command.
	//
	// Parameters:
	//   - cmd: the draw command
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	Draw(cmd DrawCommand) error
}

// SurfaceFunc adapts an ordinary function to the Surface interface.
type SurfaceFunc func(cmd DrawCommand) error

func (f SurfaceFunc) Draw(cmd DrawCommand) error {
	return f(cmd)
}

// SurfaceTarget is the presentation target a GPU backend renders into, usually a window.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}
