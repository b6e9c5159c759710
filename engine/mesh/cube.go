package mesh

import "github.com/go-gl/mathgl/mgl32"

// NewCube returns an indexed unit cube centred on the origin with one flat normal per face.
// Faces are emitted in the order -z, +x, +z, -x, +y, -y, four vertices each.
//
// Returns:
//   - Mesh: 24 vertices, 36 indices
func NewCube() Mesh {
	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}
