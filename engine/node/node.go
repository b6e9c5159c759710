package node

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type node struct {
	id    uuid.UUID
	label string
	mesh  renderer.MeshHandle

	scale       [3]float32
	angle       float32
	axis        common.Axis
	translation [3]float32
	parentModel common.Mat4

	color  [3]float32
	params renderer.DrawParameters
}

// Node defines the interface for a single drawable mesh placed in the world by a local
// scale, a single-axis rotation and a translation, applied in that order, followed by a
// parent model pushed in from outside.
//
// A Node holds no reference to its parent. Whoever groups nodes pushes the group model in
// through SetParentModel before drawing.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the node ID
	ID() uuid.UUID

	// Label returns the node's debug label, used in draw commands and errors.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Mesh returns the mesh handle the node draws.
	//
	// Returns:
	//   - renderer.MeshHandle: the mesh handle
	Mesh() renderer.MeshHandle

	// Scale returns the local scale factors.
	//
	// Returns:
	//   - [3]float32: x, y, z scale
	Scale() [3]float32

	// Rotation returns the local rotation angle in radians and its axis.
	//
	// Returns:
	//   - float32: the angle
	//   - common.Axis: the axis
	Rotation() (float32, common.Axis)

	// Translation returns the local translation.
	//
	// Returns:
	//   - [3]float32: x, y, z offset
	Translation() [3]float32

	// ParentModel returns the last parent model pushed into the node.
	//
	// Returns:
	//   - common.Mat4: the parent model, identity by default
	ParentModel() common.Mat4

	// Color returns the RGB object color.
	//
	// Returns:
	//   - [3]float32: the color
	Color() [3]float32

	// DrawParameters returns the fixed-function state used when drawing the node.
	//
	// Returns:
	//   - renderer.DrawParameters: the draw parameters
	DrawParameters() renderer.DrawParameters

	// SetScale replaces the local scale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float32)

	// SetRotation replaces the local rotation.
	//
	// Parameters:
	//   - angle: rotation in radians
	//   - axis: the axis to rotate about
	SetRotation(angle float32, axis common.Axis)

	// SetTranslation replaces the local translation.
	//
	// Parameters:
	//   - x, y, z: offset
	SetTranslation(x, y, z float32)

	// SetParentModel replaces the parent model applied after the local transform.
	//
	// Parameters:
	//   - m: the parent model
	SetParentModel(m common.Mat4)

	// SetColor replaces the object color.
	//
	// Parameters:
	//   - rgb: the color
	SetColor(rgb [3]float32)

	// SetMesh replaces the mesh handle.
	//
	// Parameters:
	//   - h: the new mesh handle
	SetMesh(h renderer.MeshHandle)

	// SetDrawParameters replaces the draw parameters.
	//
	// Parameters:
	//   - p: the draw parameters
	SetDrawParameters(p renderer.DrawParameters)

	// ComputeModel returns scale · rotate · translate · parent. It does not modify the node.
	//
	// Returns:
	//   - common.Mat4: the model matrix
	ComputeModel() common.Mat4

	// Draw issues exactly one draw command for the node on the given surface.
	//
	// Parameters:
	//   - target: the frame surface
	//
	// Returns:
	//   - error: the surface error wrapped with the node label
	Draw(target renderer.Surface) error
}

var _ Node = &node{}

// NewNode creates a Node drawing the given mesh with identity transforms, white color and
// depth-less drawing with depth writes.
//
// Parameters:
//   - mesh: the mesh handle to draw, must not be nil
//   - options: variadic list of NodeBuilderOption functions
//
// Returns:
//   - Node: the new node
func NewNode(mesh renderer.MeshHandle, options ...NodeBuilderOption) Node {
	if mesh == nil {
		panic("node: NewNode requires a mesh handle")
	}
	n := &node{
		id:          uuid.New(),
		mesh:        mesh,
		scale:       [3]float32{1, 1, 1},
		axis:        common.AxisX,
		parentModel: common.Identity(),
		color:       [3]float32{1, 1, 1},
		params: renderer.DrawParameters{
			DepthTest:   renderer.DepthLess,
			DepthWrite:  true,
			Multisample: true,
		},
	}
	for _, opt := range options {
		opt(n)
	}
	if n.label == "" {
		n.label = "node-" + n.id.String()
	}
	return n
}

func (n *node) ID() uuid.UUID {
	return n.id
}

func (n *node) Label() string {
	return n.label
}

func (n *node) Mesh() renderer.MeshHandle {
	return n.mesh
}

func (n *node) Scale() [3]float32 {
	return n.scale
}

func (n *node) Rotation() (float32, common.Axis) {
	return n.angle, n.axis
}

func (n *node) Translation() [3]float32 {
	return n.translation
}

func (n *node) ParentModel() common.Mat4 {
	return n.parentModel
}

func (n *node) Color() [3]float32 {
	return n.color
}

func (n *node) DrawParameters() renderer.DrawParameters {
	return n.params
}

func (n *node) SetScale(x, y, z float32) {
	n.scale = [3]float32{x, y, z}
}

func (n *node) SetRotation(angle float32, axis common.Axis) {
	n.angle = angle
	n.axis = axis
}

func (n *node) SetTranslation(x, y, z float32) {
	n.translation = [3]float32{x, y, z}
}

func (n *node) SetParentModel(m common.Mat4) {
	n.parentModel = m
}

func (n *node) SetColor(rgb [3]float32) {
	n.color = rgb
}

func (n *node) SetMesh(h renderer.MeshHandle) {
	if h == nil {
		panic("node: SetMesh requires a mesh handle")
	}
	n.mesh = h
}

func (n *node) SetDrawParameters(p renderer.DrawParameters) {
	n.params = p
}

func (n *node) ComputeModel() common.Mat4 {
	return common.Compose(
		common.Scale(n.scale[0], n.scale[1], n.scale[2]),
		common.Rotation(n.angle, n.axis),
		common.Translation(n.translation[0], n.translation[1], n.translation[2]),
		n.parentModel,
	)
}

func (n *node) Draw(target renderer.Surface) error {
	err := target.Draw(renderer.DrawCommand{
		Label: n.label,
		Mesh:  n.mesh,
		Uniforms: renderer.Uniforms{
			ObjectColor: n.color,
			Model:       n.ComputeModel(),
		},
		Params: n.params,
	})
	if err != nil {
		return errors.Wrapf(err, "node %s", n.label)
	}
	return nil
}
