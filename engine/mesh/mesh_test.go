package mesh

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlRingLayout(t *testing.T) {
	points := NewControlRing()
	require.Len(t, points, ControlPointCount)

	for ring := 0; ring < RingCount; ring++ {
		s, c := math32.Sincos(math32.Pi / 20 * float32(ring))
		for k := 0; k < RingLength; k++ {
			p := points[ring*RingLength+k]
			assert.InDelta(t, float64(c), float64(p[0]), 1e-6)
			assert.InDelta(t, float64(s), float64(p[1]), 1e-6)
			assert.InDelta(t, 0.1*float64(k-5), float64(p[2]), 1e-6)
		}
	}
}

func TestGenerateCylinderCounts(t *testing.T) {
	m, err := GenerateCylinder(NewControlRing())
	require.NoError(t, err)

	assert.False(t, m.Indexed())
	assert.Equal(t, 800, m.TriangleCount())
	assert.Len(t, m.Vertices, 2400)
	assert.Len(t, m.VertexBytes(), 2400*VertexStride)
	assert.Nil(t, m.IndexBytes())
}

func TestGenerateCylinderRejectsWrongCount(t *testing.T) {
	for _, n := range []int{0, 439, 441} {
		_, err := GenerateCylinder(make([][3]float32, n))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrControlPointCount), "count %d", n)
	}
}

// distinctPoints gives every control point a unique position so each vertex can be traced back
// to the control point it was copied from.
func distinctPoints() ([][3]float32, map[[3]float32]int) {
	points := make([][3]float32, ControlPointCount)
	lookup := make(map[[3]float32]int, ControlPointCount)
	for i := range points {
		points[i] = [3]float32{float32(i), float32(i % 11), float32(i / 11)}
		lookup[points[i]] = i
	}
	return points, lookup
}

func TestGenerateCylinderWrapsLastRingToFirst(t *testing.T) {
	points, lookup := distinctPoints()
	m, err := GenerateCylinder(points)
	require.NoError(t, err)

	// Triangles are emitted ring by ring, 20 per ring.
	perRing := (RingLength - 1) * 2
	for tri := 39 * perRing; tri < 40*perRing; tri++ {
		rings := map[int]bool{}
		for _, v := range m.Triangle(tri) {
			idx, ok := lookup[v.Position]
			require.True(t, ok)
			rings[idx/RingLength] = true
		}
		assert.Equal(t, map[int]bool{39: true, 0: true}, rings, "triangle %d", tri)
	}
}

func TestGenerateCylinderQuadIndices(t *testing.T) {
	points, lookup := distinctPoints()
	m, err := GenerateCylinder(points)
	require.NoError(t, err)

	ids := func(tri int) [3]int {
		var out [3]int
		for i, v := range m.Triangle(tri) {
			out[i] = lookup[v.Position]
		}
		return out
	}

	// ring 2, j = 3: first = 25
	first := 3 + 2*RingLength
	tri := (2*(RingLength-1) + 3) * 2
	assert.Equal(t, [3]int{first + 12, first + 1, first}, ids(tri))
	assert.Equal(t, [3]int{first, first + 11, first + 12}, ids(tri+1))

	// ring 39, j = 4: first = 433
	first = 4 + 39*RingLength
	tri = (39*(RingLength-1) + 4) * 2
	assert.Equal(t, [3]int{5, first + 1, first}, ids(tri))
	assert.Equal(t, [3]int{first, 4, 5}, ids(tri+1))
}

func TestGenerateCylinderFlatNormals(t *testing.T) {
	m, err := GenerateCylinder(NewControlRing())
	require.NoError(t, err)

	for tri := 0; tri < m.TriangleCount(); tri++ {
		v := m.Triangle(tri)
		want := v[1].Position.Sub(v[0].Position).Cross(v[2].Position.Sub(v[1].Position))
		for _, vert := range v {
			assert.Equal(t, want, vert.Normal, "triangle %d", tri)
		}
	}
}

func TestGenerateCylinderDoesNotAliasInput(t *testing.T) {
	points := NewControlRing()
	m, err := GenerateCylinder(points)
	require.NoError(t, err)

	m.Vertices[0].Position = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, [3]float32{9, 9, 9}, points[RingLength+1])
	assert.Equal(t, NewControlRing(), points)
}

func TestCube(t *testing.T) {
	c := NewCube()
	require.True(t, c.Indexed())
	assert.Len(t, c.Vertices, 24)
	assert.Len(t, c.Indices, 36)
	assert.Equal(t, 12, c.TriangleCount())

	for tri := 0; tri < c.TriangleCount(); tri++ {
		v := c.Triangle(tri)
		// All three corners of a triangle share a face normal and lie on that face's plane.
		for _, vert := range v {
			assert.Equal(t, v[0].Normal, vert.Normal)
			assert.InDelta(t, 0.5, float64(vert.Position.Dot(vert.Normal)), 1e-6)
		}
	}
}

func TestCubeFacesAreCovered(t *testing.T) {
	c := NewCube()
	// The two triangles of each face together must cover all four corners.
	for face := 0; face < 6; face++ {
		seen := map[uint32]bool{}
		for _, idx := range c.Indices[face*6 : face*6+6] {
			seen[idx] = true
		}
		assert.Len(t, seen, 4, "face %d", face)

		a, b := c.Triangle(face*2), c.Triangle(face*2+1)
		areaA := a[1].Position.Sub(a[0].Position).Cross(a[2].Position.Sub(a[0].Position)).Len() / 2
		areaB := b[1].Position.Sub(b[0].Position).Cross(b[2].Position.Sub(b[0].Position)).Len() / 2
		assert.InDelta(t, 1.0, float64(areaA+areaB), 1e-6, "face %d", face)
	}
}

func TestWriteGLB(t *testing.T) {
	cyl, err := GenerateCylinder(NewControlRing())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf,
		ExportPart{Name: "sea", Mesh: cyl, Transform: common.Scale(8, 8, 8), Color: [3]float32{0.41, 0.76, 0.76}},
		ExportPart{Name: "cube", Mesh: NewCube()},
	))

	doc := &gltf.Document{}
	require.NoError(t, gltf.NewDecoder(&buf).Decode(doc))
	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, []uint32{0, 1}, doc.Scenes[0].Nodes)
	assert.Equal(t, "sea", doc.Nodes[0].Name)
	assert.Equal(t, common.Scale(8, 8, 8).Flatten(), doc.Nodes[0].Matrix)
	assert.Equal(t, common.Identity().Flatten(), doc.Nodes[1].Matrix)

	positions, err := modeler.ReadPosition(doc, doc.Accessors[doc.Meshes[0].Primitives[0].Attributes["POSITION"]], nil)
	require.NoError(t, err)
	assert.Len(t, positions, 2400)

	require.NotNil(t, doc.Meshes[1].Primitives[0].Indices)
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*doc.Meshes[1].Primitives[0].Indices], nil)
	require.NoError(t, err)
	assert.Equal(t, NewCube().Indices, indices)
}

func TestWriteGLBRejectsEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteGLB(&buf, ExportPart{Name: "empty"}))
}
