package assembly

import (
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/node"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/pkg/errors"
)

var (
	colorRed   = [3]float32{0.95, 0.33, 0.27}
	colorWhite = [3]float32{0.85, 0.82, 0.82}
	colorBrown = [3]float32{0.35, 0.20, 0.18}
	colorDark  = [3]float32{0.14, 0.10, 0.06}
)

// Part describes one airplane part as a scaled and translated unit cube.
type Part struct {
	Name        string
	Scale       [3]float32
	Translation [3]float32
	Color       [3]float32
}

// AirplaneParts lists the airplane parts in draw order.
var AirplaneParts = []Part{
	{Name: "wing", Scale: [3]float32{0.8, 0.16, 3.0}, Color: colorRed},
	{Name: "cockpit", Scale: [3]float32{1.2, 1, 1}, Color: colorRed},
	{Name: "engine", Scale: [3]float32{0.4, 1, 1}, Translation: [3]float32{0.8, 0, 0}, Color: colorWhite},
	{Name: "tail", Scale: [3]float32{0.3, 0.4, 0.1}, Translation: [3]float32{-0.7, 0.5, 0}, Color: colorRed},
	{Name: "propeller", Scale: [3]float32{0.4, 0.2, 0.2}, Translation: [3]float32{1.2, 0, 0}, Color: colorBrown},
	{Name: "blade", Scale: [3]float32{0.02, 2.0, 0.4}, Translation: [3]float32{1.2, 0, 0}, Color: colorDark},
}

// AirplaneScale is the uniform group scale of the airplane.
const AirplaneScale = 0.2

// PartDrawParameters is the draw state shared by every airplane part.
var PartDrawParameters = renderer.DrawParameters{
	DepthTest:   renderer.DepthLessEqual,
	DepthWrite:  true,
	Multisample: true,
}

// NewAirplane uploads one cube mesh and builds the airplane assembly from AirplaneParts, every
// part sharing the same mesh handle.
//
// Parameters:
//   - factory: the mesh factory used to upload the cube
//
// Returns:
//   - Assembly: the airplane
//   - error: an error if the cube mesh could not be created
func NewAirplane(factory renderer.MeshFactory) (Assembly, error) {
	cube, err := factory.CreateMesh("airplane-cube", mesh.NewCube())
	if err != nil {
		return nil, errors.Wrap(err, "assembly: airplane")
	}

	a := NewAssembly(WithLabel("airplane"), WithScale(AirplaneScale, AirplaneScale, AirplaneScale))
	for _, p := range AirplaneParts {
		a.Add(p.Name, node.NewNode(cube,
			node.WithLabel(p.Name),
			node.WithScale(p.Scale[0], p.Scale[1], p.Scale[2]),
			node.WithTranslation(p.Translation[0], p.Translation[1], p.Translation[2]),
			node.WithColor(p.Color),
			node.WithDrawParameters(PartDrawParameters),
		))
	}
	return a, nil
}
