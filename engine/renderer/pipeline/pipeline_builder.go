package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithEntryPoints sets the vertex and fragment entry points.
//
// Parameters:
//   - vertex: the vertex entry point
//   - fragment: the fragment entry point
//
// Returns:
//   - PipelineBuilderOption: a function that sets the entry points for this pipeline
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntry, p.fragmentEntry = vertex, fragment
	}
}

// WithVertexLayouts sets the vertex buffer layouts, one per vertex buffer slot.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex layouts for this pipeline
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithColorFormat sets the format of the single color target.
//
// Parameters:
//   - format: the surface texture format
//
// Returns:
//   - PipelineBuilderOption: a function that sets the color format for this pipeline
func WithColorFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.colorFormat = format
	}
}

// WithDepth sets the depth comparison and whether depth is written.
//
// Parameters:
//   - compare: the depth comparison function
//   - write: whether passing fragments write depth
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth state for this pipeline
func WithDepth(compare wgpu.CompareFunction, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare, p.depthWrite = compare, write
	}
}

// WithSampleCount sets the multisample count, which must match the render pass attachments.
//
// Parameters:
//   - count: 1 or 4
//
// Returns:
//   - PipelineBuilderOption: a function that sets the sample count for this pipeline
func WithSampleCount(count uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		if count == 0 {
			panic("pipeline: WithSampleCount requires count > 0")
		}
		p.sampleCount = count
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}
