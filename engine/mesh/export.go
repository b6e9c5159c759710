package mesh

import (
	"io"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportPart is one mesh placed in an exported scene.
type ExportPart struct {
	Name      string
	Mesh      Mesh
	Transform common.Mat4
	Color     [3]float32
}

// WriteGLB encodes the parts as a binary glTF scene, one node and one double-sided material per part.
// Transforms are written as node matrices; glTF reads them column by column,
// which matches the row-vector layout of common.Mat4.
//
// Parameters:
//   - w: the destination writer
//   - parts: the meshes to export
//
// Returns:
//   - error: an error if a part is empty or encoding fails
func WriteGLB(w io.Writer, parts ...ExportPart) error {
	doc := gltf.NewDocument()

	for _, p := range parts {
		if len(p.Mesh.Vertices) == 0 {
			return errors.Errorf("mesh: export part %q has no vertices", p.Name)
		}

		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:        p.Name,
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{p.Color[0], p.Color[1], p.Color[2], 1},
			},
		})

		attributes := map[string]uint32{
			"POSITION": modeler.WritePosition(doc, p.Mesh.Positions()),
			"NORMAL":   modeler.WriteNormal(doc, unitNormals(p.Mesh)),
		}
		primitive := &gltf.Primitive{
			Attributes: attributes,
			Material:   gltf.Index(uint32(len(doc.Materials) - 1)),
		}
		if p.Mesh.Indexed() {
			primitive.Indices = gltf.Index(modeler.WriteIndices(doc, p.Mesh.Indices))
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       p.Name,
			Primitives: []*gltf.Primitive{primitive},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		transform := p.Transform
		if transform == (common.Mat4{}) {
			transform = common.Identity()
		}
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   p.Name,
			Mesh:   gltf.Index(uint32(len(doc.Meshes) - 1)),
			Matrix: transform.Flatten(),
		})
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "mesh: encode glb")
	}
	return nil
}

// unitNormals normalizes the mesh normals, which glTF requires. Zero normals are kept as is.
func unitNormals(m Mesh) [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		if v.Normal.Len() > 0 {
			out[i] = v.Normal.Normalize()
		}
	}
	return out
}
