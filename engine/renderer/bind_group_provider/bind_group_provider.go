package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed.
	// They are populated by the wgpu backend, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if this provider only holds mesh buffers.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the layout the bind group was created from. Layouts are shared between
	// the bind group and the pipeline layout, so the provider that created it owns it.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// The following fields are specific to mesh providers.

	// vertexBuffer is the GPU vertex buffer, or nil if not initialized.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer, or nil for non-indexed meshes.
	indexBuffer *wgpu.Buffer
	// vertexCount is the number of vertices uploaded, used for non-indexed draws.
	vertexCount int
	// indexCount is the number of indices uploaded, used for indexed draws.
	indexCount int
}

// BindGroupProvider holds the GPU resources behind a bind group or a mesh.
//
// The wgpu backend creates one provider for the scene uniform group, one for the object uniform
// ring, and one per mesh. Mesh providers double as the MeshHandle handed back to callers since
// they expose Label, VertexCount and IndexCount.
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer bound at the given binding index.
	// Returns nil if GPU resources have not been initialized.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer for this provider.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer for this provider.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// VertexCount returns the number of vertices uploaded to the vertex buffer.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices uploaded to the index buffer.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup sets the bind group for this provider.
	//
	// Parameters:
	//   - bg: the bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout for this provider.
	//
	// Parameters:
	//   - bgl: the bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the buffer for a binding index. A previously set buffer is released.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer sets the vertex buffer and its vertex count. A previous buffer is released
	// unless it is the same buffer.
	//
	// Parameters:
	//   - buf: the vertex buffer
	//   - count: the number of vertices it holds
	SetVertexBuffer(buf *wgpu.Buffer, count int)

	// SetIndexBuffer sets the index buffer and its index count. A previous buffer is released
	// unless it is the same buffer.
	//
	// Parameters:
	//   - buf: the index buffer
	//   - count: the number of indices it holds
	SetIndexBuffer(buf *wgpu.Buffer, count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer, count int) {
	if p.vertexBuffer != nil && p.vertexBuffer != buf {
		p.vertexBuffer.Release()
	}
	p.vertexBuffer = buf
	p.vertexCount = count
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	if p.indexBuffer != nil && p.indexBuffer != buf {
		p.indexBuffer.Release()
	}
	p.indexBuffer = buf
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.vertexCount = 0
	p.indexCount = 0
}
