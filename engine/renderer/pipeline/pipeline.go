package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the fixed-function state of one render pipeline and, once created, the WebGPU object.
type pipeline struct {
	// pipelineKey is the label used for the WebGPU object and for logging.
	pipelineKey string

	vertexEntry, fragmentEntry string
	vertexLayouts              []wgpu.VertexBufferLayout

	renderPipeline *wgpu.RenderPipeline

	colorFormat  wgpu.TextureFormat
	depthFormat  wgpu.TextureFormat
	depthCompare wgpu.CompareFunction
	depthWrite   bool
	sampleCount  uint32
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
}

// Pipeline defines the interface for a render pipeline: the depth, cull, topology and
// multisample state baked into a WebGPU render pipeline, plus the created pipeline object.
type Pipeline interface {
	// PipelineKey returns the label of this pipeline.
	//
	// Returns:
	//   - string: the pipeline label
	PipelineKey() string

	// Descriptor builds the WebGPU descriptor for this pipeline's state.
	//
	// Parameters:
	//   - layout: the pipeline layout with every bind group layout
	//   - module: the shader module providing both entry points
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor to pass to Device.CreateRenderPipeline
	Descriptor(layout *wgpu.PipelineLayout, module *wgpu.ShaderModule) *wgpu.RenderPipelineDescriptor

	// DepthCompare returns the depth comparison function.
	DepthCompare() wgpu.CompareFunction

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	DepthWriteEnabled() bool

	// SampleCount returns the multisample count the pipeline renders with.
	SampleCount() uint32

	// CullMode returns the cull mode configured for this pipeline.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	Topology() wgpu.PrimitiveTopology

	// RenderPipeline returns the created WebGPU pipeline, or nil before SetRenderPipeline.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline sets the created WebGPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the WebGPU pipeline if it was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates the state for a triangle-list pipeline with depth testing (less),
// depth writes, no culling, CCW front faces and entry points vs_main and fs_main.
//
// Parameters:
//   - pipelineKey: the pipeline label
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the pipeline state, not yet created on a device
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:   pipelineKey,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
		colorFormat:   wgpu.TextureFormatBGRA8Unorm,
		depthFormat:   wgpu.TextureFormatDepth24Plus,
		depthCompare:  wgpu.CompareFunctionLess,
		depthWrite:    true,
		sampleCount:   1,
		cullMode:      wgpu.CullModeNone,
		topology:      wgpu.PrimitiveTopologyTriangleList,
		frontFace:     wgpu.FrontFaceCCW,
		writeMask:     wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Descriptor(layout *wgpu.PipelineLayout, module *wgpu.ShaderModule) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.vertexEntry,
			Buffers:    p.vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.colorFormat,
					WriteMask: p.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            p.depthFormat,
			DepthWriteEnabled: p.depthWrite,
			DepthCompare:      p.depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWrite
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
