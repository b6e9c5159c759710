package assembly

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/Carmen-Shannon/oxy-aviator/engine/node"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/pkg/errors"
)

type child struct {
	name string
	node node.Node
}

type assembly struct {
	label    string
	children []child

	scale       [3]float32
	angle       float32
	axis        common.Axis
	translation [3]float32
}

// Assembly defines the interface for a named, ordered group of nodes that move together.
//
// The group transform is composed as scale · rotate · translate with no parent of its own.
// On every Draw the group model is pushed into each child as its parent model, so children
// only ever see the group through SetParentModel.
type Assembly interface {
	// Label returns the assembly label.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Add appends a named child. Children draw in insertion order.
	//
	// Parameters:
	//   - name: the child name, unique within the assembly
	//   - n: the child node
	Add(name string, n node.Node)

	// Child looks up a child by name.
	//
	// Parameters:
	//   - name: the child name
	//
	// Returns:
	//   - node.Node: the child, or nil
	//   - bool: whether the child exists
	Child(name string) (node.Node, bool)

	// Children returns the children in draw order.
	//
	// Returns:
	//   - []node.Node: the children
	Children() []node.Node

	// Names returns the child names in draw order.
	//
	// Returns:
	//   - []string: the names
	Names() []string

	// SetScale replaces the group scale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float32)

	// SetRotation replaces the group rotation.
	//
	// Parameters:
	//   - angle: rotation in radians
	//   - axis: the axis to rotate about
	SetRotation(angle float32, axis common.Axis)

	// SetTranslation replaces the group translation.
	//
	// Parameters:
	//   - x, y, z: offset
	SetTranslation(x, y, z float32)

	// ComputeModel returns the group model scale · rotate · translate.
	//
	// Returns:
	//   - common.Mat4: the group model
	ComputeModel() common.Mat4

	// Draw pushes the group model into every child and draws them in order. A failing child
	// does not stop its siblings.
	//
	// Parameters:
	//   - target: the frame surface
	//
	// Returns:
	//   - error: the first child error, annotated with the number of failed children
	Draw(target renderer.Surface) error
}

var _ Assembly = &assembly{}

// NewAssembly creates an empty Assembly with identity group transforms.
//
// Parameters:
//   - options: variadic list of AssemblyBuilderOption functions
//
// Returns:
//   - Assembly: the new assembly
func NewAssembly(options ...AssemblyBuilderOption) Assembly {
	a := &assembly{
		label: "assembly",
		scale: [3]float32{1, 1, 1},
		axis:  common.AxisX,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *assembly) Label() string {
	return a.label
}

func (a *assembly) Add(name string, n node.Node) {
	if n == nil {
		panic("assembly: Add requires a node")
	}
	for _, c := range a.children {
		if c.name == name {
			panic("assembly: duplicate child " + name)
		}
	}
	a.children = append(a.children, child{name: name, node: n})
}

func (a *assembly) Child(name string) (node.Node, bool) {
	for _, c := range a.children {
		if c.name == name {
			return c.node, true
		}
	}
	return nil, false
}

func (a *assembly) Children() []node.Node {
	out := make([]node.Node, len(a.children))
	for i, c := range a.children {
		out[i] = c.node
	}
	return out
}

func (a *assembly) Names() []string {
	out := make([]string, len(a.children))
	for i, c := range a.children {
		out[i] = c.name
	}
	return out
}

func (a *assembly) SetScale(x, y, z float32) {
	a.scale = [3]float32{x, y, z}
}

func (a *assembly) SetRotation(angle float32, axis common.Axis) {
	a.angle = angle
	a.axis = axis
}

func (a *assembly) SetTranslation(x, y, z float32) {
	a.translation = [3]float32{x, y, z}
}

func (a *assembly) ComputeModel() common.Mat4 {
	return common.Compose(
		common.Scale(a.scale[0], a.scale[1], a.scale[2]),
		common.Rotation(a.angle, a.axis),
		common.Translation(a.translation[0], a.translation[1], a.translation[2]),
		common.Identity(),
	)
}

func (a *assembly) Draw(target renderer.Surface) error {
	model := a.ComputeModel()

	var first error
	failed := 0
	for _, c := range a.children {
		c.node.SetParentModel(model)
		if err := c.node.Draw(target); err != nil {
			logger.Warn("assembly %s: child %s failed to draw: %v", a.label, c.name, err)
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if first != nil {
		return errors.Wrapf(first, "assembly %s: %d of %d children failed", a.label, failed, len(a.children))
	}
	return nil
}
