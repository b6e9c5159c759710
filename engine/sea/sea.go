package sea

import (
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/node"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
	"github.com/pkg/errors"
)

type sea struct {
	factory  renderer.MeshFactory
	animator wave.Animator
	node     node.Node
	current  mesh.Mesh

	label       string
	scale       float32
	translation [3]float32
	color       [3]float32
	params      renderer.DrawParameters
	waveOptions []wave.AnimatorBuilderOption
}

// Sea defines the interface for the animated cylinder the airplane flies over.
//
// Every Wave call advances the oscillators one step, regenerates the full cylinder from the
// displaced control points and re-uploads it through the mesh factory.
type Sea interface {
	// Node returns the node that draws the sea mesh.
	//
	// Returns:
	//   - node.Node: the sea node
	Node() node.Node

	// Animator returns the control point animator.
	//
	// Returns:
	//   - wave.Animator: the animator
	Animator() wave.Animator

	// Mesh returns the most recently generated mesh.
	//
	// Returns:
	//   - mesh.Mesh: the current mesh
	Mesh() mesh.Mesh

	// Wave advances the animation one frame and uploads the new mesh.
	//
	// Returns:
	//   - error: a generation or upload error
	Wave() error

	// Draw draws the sea node.
	//
	// Parameters:
	//   - target: the frame surface
	//
	// Returns:
	//   - error: the draw error
	Draw(target renderer.Surface) error
}

var _ Sea = &sea{}

// NewSea builds the control ring, generates and uploads the initial cylinder and wraps it in a
// node scaled by 8 and lowered to y = -9.
//
// Parameters:
//   - factory: the mesh factory used for the initial upload and every Wave
//   - options: variadic list of SeaBuilderOption functions
//
// Returns:
//   - Sea: the new sea
//   - error: an error if the initial mesh could not be generated or uploaded
func NewSea(factory renderer.MeshFactory, options ...SeaBuilderOption) (Sea, error) {
	s := &sea{
		factory:     factory,
		label:       "sea",
		scale:       8,
		translation: [3]float32{0, -9, 0},
		color:       [3]float32{0.41, 0.76, 0.76},
		params: renderer.DrawParameters{
			DepthTest:   renderer.DepthLess,
			DepthWrite:  true,
			Multisample: true,
		},
	}
	for _, opt := range options {
		opt(s)
	}

	s.animator = wave.NewAnimator(mesh.NewControlRing(), s.waveOptions...)

	m, err := mesh.GenerateCylinder(s.animator.Points())
	if err != nil {
		return nil, errors.Wrap(err, "sea: generate")
	}
	h, err := factory.CreateMesh(s.label, m)
	if err != nil {
		return nil, errors.Wrap(err, "sea: upload")
	}
	s.current = m
	s.node = node.NewNode(h,
		node.WithLabel(s.label),
		node.WithScale(s.scale, s.scale, s.scale),
		node.WithTranslation(s.translation[0], s.translation[1], s.translation[2]),
		node.WithColor(s.color),
		node.WithDrawParameters(s.params),
	)
	return s, nil
}

func (s *sea) Node() node.Node {
	return s.node
}

func (s *sea) Animator() wave.Animator {
	return s.animator
}

func (s *sea) Mesh() mesh.Mesh {
	return s.current
}

func (s *sea) Wave() error {
	points := s.animator.Step()
	m, err := mesh.GenerateCylinder(points)
	if err != nil {
		return errors.Wrap(err, "sea: generate")
	}
	if err := s.factory.UpdateMesh(s.node.Mesh(), m); err != nil {
		return errors.Wrap(err, "sea: upload")
	}
	s.current = m
	return nil
}

func (s *sea) Draw(target renderer.Surface) error {
	return s.node.Draw(target)
}
