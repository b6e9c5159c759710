package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("default")
	d := p.Descriptor(nil, nil)

	assert.Equal(t, "default", d.Label)
	assert.Equal(t, "vs_main", d.Vertex.EntryPoint)
	require.NotNil(t, d.Fragment)
	assert.Equal(t, "fs_main", d.Fragment.EntryPoint)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, d.Primitive.Topology)
	assert.Equal(t, wgpu.CullModeNone, d.Primitive.CullMode)
	require.NotNil(t, d.DepthStencil)
	assert.Equal(t, wgpu.CompareFunctionLess, d.DepthStencil.DepthCompare)
	assert.True(t, d.DepthStencil.DepthWriteEnabled)
	assert.Equal(t, uint32(1), d.Multisample.Count)
	assert.Nil(t, p.RenderPipeline())
}

func TestOptionsReachDescriptor(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 24, StepMode: wgpu.VertexStepModeVertex}
	p := NewPipeline("sea",
		WithDepth(wgpu.CompareFunctionLessEqual, false),
		WithSampleCount(4),
		WithColorFormat(wgpu.TextureFormatRGBA8Unorm),
		WithVertexLayouts(layout),
		WithEntryPoints("vert", "frag"),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
	)
	d := p.Descriptor(nil, nil)

	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.False(t, p.DepthWriteEnabled())
	assert.False(t, d.DepthStencil.DepthWriteEnabled)
	assert.Equal(t, uint32(4), d.Multisample.Count)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, d.Fragment.Targets[0].Format)
	assert.Equal(t, []wgpu.VertexBufferLayout{layout}, d.Vertex.Buffers)
	assert.Equal(t, "vert", d.Vertex.EntryPoint)
	assert.Equal(t, "frag", d.Fragment.EntryPoint)
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
}

func TestReleaseWithoutPipeline(t *testing.T) {
	p := NewPipeline("empty")
	assert.NotPanics(t, p.Release)
	assert.Panics(t, func() { NewPipeline("bad", WithSampleCount(0)) })
}
