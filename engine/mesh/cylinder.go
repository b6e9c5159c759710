package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	// RingCount is the number of angular steps around the cylinder.
	RingCount = 40

	// RingLength is the number of control points along each ring's axis.
	RingLength = 11

	// ControlPointCount is the number of control points GenerateCylinder expects.
	ControlPointCount = RingCount * RingLength

	// CylinderTriangleCount is the number of triangles GenerateCylinder emits.
	CylinderTriangleCount = RingCount * (RingLength - 1) * 2
)

// ErrControlPointCount is returned by GenerateCylinder when the input is not ControlPointCount points.
var ErrControlPointCount = errors.New("mesh: wrong control point count")

// NewControlRing returns the undisplaced cylinder skeleton: RingCount unit circles' worth of points
// at angle i·π/20, each with RingLength points at z = -0.5 to 0.5 in steps of 0.1.
// Point (ring, k) lives at index ring*RingLength + k.
//
// Returns:
//   - [][3]float32: the control points
func NewControlRing() [][3]float32 {
	points := make([][3]float32, 0, ControlPointCount)
	step := math32.Pi / 20
	for i := 0; i < RingCount; i++ {
		s, c := math32.Sincos(step * float32(i))
		for k := -5; k <= 5; k++ {
			points = append(points, [3]float32{c, s, 0.1 * float32(k)})
		}
	}
	return points
}

// GenerateCylinder builds the closed tube as triangle soup from the control points.
// Each quad between neighbouring rings emits a front triangle and a back triangle with opposite
// winding so the tube renders from both sides without changing cull state. The last ring connects
// back to ring 0 by control point index. Every vertex of a triangle carries the same flat normal,
// the unnormalized cross product (v1-v0) × (v2-v1).
//
// Parameters:
//   - points: exactly ControlPointCount control points, indexed ring*RingLength + k
//
// Returns:
//   - Mesh: CylinderTriangleCount triangles, no indices
//   - error: ErrControlPointCount if len(points) is wrong
func GenerateCylinder(points [][3]float32) (Mesh, error) {
	if len(points) != ControlPointCount {
		return Mesh{}, errors.Wrapf(ErrControlPointCount, "got %d, want %d", len(points), ControlPointCount)
	}

	vertices := make([]Vertex, 0, CylinderTriangleCount*3)
	emit := func(a, b, c int) {
		v0, v1, v2 := mgl32.Vec3(points[a]), mgl32.Vec3(points[b]), mgl32.Vec3(points[c])
		n := v1.Sub(v0).Cross(v2.Sub(v1))
		vertices = append(vertices,
			Vertex{Position: v0, Normal: n},
			Vertex{Position: v1, Normal: n},
			Vertex{Position: v2, Normal: n},
		)
	}

	for i := 0; i < RingCount; i++ {
		for j := 0; j < RingLength-1; j++ {
			first := j + i*RingLength
			if i == RingCount-1 {
				emit(j+1, first+1, first)
				emit(first, j, j+1)
				continue
			}
			emit(first+RingLength+1, first+1, first)
			emit(first, first+RingLength, first+RingLength+1)
		}
	}

	return Mesh{Vertices: vertices}, nil
}
