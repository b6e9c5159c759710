package node

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
)

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithLabel sets the debug label of the Node. Without it the label is derived from the node ID.
//
// Parameters:
//   - label: the label used in draw commands and errors
//
// Returns:
//   - NodeBuilderOption: functional option to set the label
func WithLabel(label string) NodeBuilderOption {
	return func(n *node) {
		n.label = label
	}
}

// WithScale sets the initial local scale of the Node.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial local rotation of the Node.
//
// Parameters:
//   - angle: rotation in radians
//   - axis: the axis to rotate about
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(angle float32, axis common.Axis) NodeBuilderOption {
	return func(n *node) {
		n.angle = angle
		n.axis = axis
	}
}

// WithTranslation sets the initial local translation of the Node.
//
// Parameters:
//   - x, y, z: offset
//
// Returns:
//   - NodeBuilderOption: functional option to set the translation
func WithTranslation(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.translation = [3]float32{x, y, z}
	}
}

// WithColor sets the object color of the Node.
//
// Parameters:
//   - rgb: the color
//
// Returns:
//   - NodeBuilderOption: functional option to set the color
func WithColor(rgb [3]float32) NodeBuilderOption {
	return func(n *node) {
		n.color = rgb
	}
}

// WithDrawParameters sets the fixed-function state used when drawing the Node.
//
// Parameters:
//   - p: the draw parameters
//
// Returns:
//   - NodeBuilderOption: functional option to set the draw parameters
func WithDrawParameters(p renderer.DrawParameters) NodeBuilderOption {
	return func(n *node) {
		n.params = p
	}
}
