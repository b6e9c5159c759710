package loader

import (
	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// extractParts walks the nodes in document order and converts every triangle primitive of
// every node mesh into a part carrying the node matrix and the material base color.
func extractParts(doc *gltf.Document) ([]mesh.ExportPart, error) {
	var parts []mesh.ExportPart
	for nodeIdx, n := range doc.Nodes {
		if n.Mesh == nil {
			continue
		}
		if int(*n.Mesh) >= len(doc.Meshes) {
			return nil, errors.Errorf("node %d: mesh index %d out of range", nodeIdx, *n.Mesh)
		}
		gm := doc.Meshes[*n.Mesh]
		for primIdx, prim := range gm.Primitives {
			m, err := extractPrimitive(doc, prim)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d", gm.Name, primIdx)
			}
			name := n.Name
			if name == "" {
				name = gm.Name
			}
			parts = append(parts, mesh.ExportPart{
				Name:      name,
				Mesh:      m,
				Transform: common.Mat4FromFlat(n.MatrixOrDefault()),
				Color:     baseColor(doc, prim),
			})
		}
	}
	return parts, nil
}

func extractPrimitive(doc *gltf.Document, prim *gltf.Primitive) (mesh.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return mesh.Mesh{}, errors.Errorf("unsupported primitive mode %d, only triangles", prim.Mode)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return mesh.Mesh{}, errors.New("primitive has no POSITION attribute")
	}
	if int(posIdx) >= len(doc.Accessors) {
		return mesh.Mesh{}, errors.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return mesh.Mesh{}, errors.Wrap(err, "read positions")
	}

	vertices := make([]mesh.Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = p
	}
	if normIdx, ok := prim.Attributes["NORMAL"]; ok {
		if int(normIdx) >= len(doc.Accessors) {
			return mesh.Mesh{}, errors.Errorf("NORMAL accessor %d out of range", normIdx)
		}
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return mesh.Mesh{}, errors.Wrap(err, "read normals")
		}
		for i := range normals {
			if i < len(vertices) {
				vertices[i].Normal = normals[i]
			}
		}
	}

	m := mesh.Mesh{Vertices: vertices}
	if prim.Indices != nil {
		if int(*prim.Indices) >= len(doc.Accessors) {
			return mesh.Mesh{}, errors.Errorf("indices accessor %d out of range", *prim.Indices)
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return mesh.Mesh{}, errors.Wrap(err, "read indices")
		}
		for _, idx := range indices {
			if int(idx) >= len(vertices) {
				return mesh.Mesh{}, errors.Errorf("index %d out of range for %d vertices", idx, len(vertices))
			}
		}
		m.Indices = indices
	}
	return m, nil
}

func baseColor(doc *gltf.Document, prim *gltf.Primitive) [3]float32 {
	color := [3]float32{1, 1, 1}
	if prim.Material == nil || int(*prim.Material) >= len(doc.Materials) {
		return color
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color
	}
	f := pbr.BaseColorFactor
	return [3]float32{f[0], f[1], f[2]}
}
