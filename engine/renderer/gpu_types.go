package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer/shader"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ShaderSource is the WGSL program used by the wgpu backend. Group 0 holds SceneUniform,
// group 1 holds ObjectUniform behind a dynamic offset.
//
//go:embed assets/aviator.wgsl
var ShaderSource string

const (
	// objectUniformStride is the distance between object slots in the uniform ring. It matches
	// the WebGPU default minUniformBufferOffsetAlignment.
	objectUniformStride = 256

	// objectUniformSlots is the number of draws a single frame can issue.
	objectUniformSlots = 64
)

// GPUSceneUniform is the GPU-aligned representation of the per-frame scene block.
// Size: 144 bytes.
type GPUSceneUniform struct {
	View           [16]float32 // offset   0: mat4x4<f32>
	Perspective    [16]float32 // offset  64: mat4x4<f32>
	LightDirection [4]float32  // offset 128: vec4<f32>, w = 1 when lit, 0 when the light is off
}

func newGPUSceneUniform(scene SceneBlock) GPUSceneUniform {
	return GPUSceneUniform{
		View:           scene.View.Flatten(),
		Perspective:    scene.Perspective.Flatten(),
		LightDirection: normalizeLight(scene.LightDirection),
	}
}

// Size returns the size of the GPUSceneUniform struct in bytes.
func (g *GPUSceneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUSceneUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf, 0, g.View[:])
	putFloats(buf, 64, g.Perspective[:])
	putFloats(buf, 128, g.LightDirection[:])
	return buf
}

// GPUObjectUniform is the GPU-aligned representation of the per-draw uniforms.
// Size: 144 bytes, placed every objectUniformStride bytes in the ring.
type GPUObjectUniform struct {
	Model  [16]float32 // offset   0: mat4x4<f32>
	Normal [16]float32 // offset  64: mat4x4<f32>, inverse transpose of Model
	Color  [4]float32  // offset 128: vec4<f32>, w = 1
}

func newGPUObjectUniform(u Uniforms) GPUObjectUniform {
	return GPUObjectUniform{
		Model:  u.Model.Flatten(),
		Normal: common.NormalMatrix(u.Model).Flatten(),
		Color:  [4]float32{u.ObjectColor[0], u.ObjectColor[1], u.ObjectColor[2], 1},
	}
}

// Size returns the size of the GPUObjectUniform struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf, 0, g.Model[:])
	putFloats(buf, 64, g.Normal[:])
	putFloats(buf, 128, g.Color[:])
	return buf
}

// checkShaderLayout verifies that the reflected WGSL bindings and vertex input agree with the
// Go-side uniform structs and mesh.Vertex.
func checkShaderLayout(s shader.Shader) error {
	var scene GPUSceneUniform
	var object GPUObjectUniform
	expected := []struct {
		group uint32
		size  int
	}{
		{sceneGroup, scene.Size()},
		{objectGroup, object.Size()},
	}
	for _, e := range expected {
		b, ok := s.Binding(e.group, 0)
		if !ok {
			return errors.Errorf("shader: nothing bound at group %d binding 0", e.group)
		}
		if b.AddressSpace != "uniform" {
			return errors.Errorf("shader: %s is %q, want uniform", b.Name, b.AddressSpace)
		}
		if b.Size != uint64(e.size) {
			return errors.Errorf("shader: %s is %d bytes, Go layout is %d", b.Name, b.Size, e.size)
		}
	}
	if object.Size() > objectUniformStride {
		return errors.Errorf("shader: object uniform of %d bytes exceeds stride %d", object.Size(), objectUniformStride)
	}

	layout, ok := s.VertexLayout()
	if !ok {
		return errors.New("shader: no vertex input struct")
	}
	if layout.ArrayStride != mesh.VertexStride {
		return errors.Errorf("shader: vertex stride is %d, mesh.Vertex is %d", layout.ArrayStride, mesh.VertexStride)
	}
	return nil
}

func putFloats(buf []byte, offset int, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}

func normalizeLight(d [3]float32) [4]float32 {
	l := math32.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if l == 0 {
		return [4]float32{}
	}
	return [4]float32{d[0] / l, d[1] / l, d[2] / l, 1}
}
