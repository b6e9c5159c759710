package mesh

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the GPU vertex layout shared by every mesh: position at offset 0, normal at offset 12.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 24

// Mesh is a list of vertices drawn as a triangle list. Indices is nil for triangle soup,
// in which case every three consecutive vertices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Indexed reports whether the mesh is drawn through its index list.
func (m Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// TriangleCount returns the number of triangles the mesh draws.
//
// Returns:
//   - int: triangle count
func (m Mesh) TriangleCount() int {
	if m.Indexed() {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// Triangle returns the three vertices of triangle i, resolving indices for indexed meshes.
//
// Parameters:
//   - i: the triangle index, in [0, TriangleCount())
//
// Returns:
//   - [3]Vertex: the triangle's vertices in winding order
func (m Mesh) Triangle(i int) [3]Vertex {
	if m.Indexed() {
		return [3]Vertex{
			m.Vertices[m.Indices[i*3]],
			m.Vertices[m.Indices[i*3+1]],
			m.Vertices[m.Indices[i*3+2]],
		}
	}
	return [3]Vertex{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

// VertexBytes returns a byte view of the vertex list for GPU upload.
// The view shares memory with the mesh.
func (m Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns a byte view of the index list for GPU upload, or nil for triangle soup.
func (m Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// Positions returns a copy of every vertex position.
func (m Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// Normals returns a copy of every vertex normal.
func (m Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal
	}
	return out
}
