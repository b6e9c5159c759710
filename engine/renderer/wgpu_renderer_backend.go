package renderer

import (
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

const (
	sceneGroup  = 0
	objectGroup = 1
)

// pipelineKey identifies a cached render pipeline by the fixed-function state it bakes in.
type pipelineKey struct {
	depthTest  DepthTest
	depthWrite bool
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass
	clearColor  wgpu.Color

	shader         shader.Shader
	vertexLayout   wgpu.VertexBufferLayout
	shaderModule   *wgpu.ShaderModule
	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[pipelineKey]pipeline.Pipeline

	// sceneProvider holds the per-frame scene uniform buffer and its bind group.
	sceneProvider bind_group_provider.BindGroupProvider
	// objectProvider holds the object uniform ring addressed by dynamic offsets.
	objectProvider bind_group_provider.BindGroupProvider
	// objectSlot is the next free slot in the object uniform ring for the current frame.
	objectSlot int

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) RendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		pipelines:   make(map[pipelineKey]pipeline.Pipeline),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initPipelineResources(); err != nil {
		panic(err)
	}

	return w
}

// initPipelineResources creates the shader module, the two bind groups and the pipeline layout
// shared by every cached pipeline.
func (b *wgpuRendererBackendImpl) initPipelineResources() error {
	refl, err := shader.NewShader(ShaderSource)
	if err != nil {
		return errors.Wrap(err, "wgpu: reflect shader")
	}
	if err := checkShaderLayout(refl); err != nil {
		return err
	}
	b.shader = refl
	b.vertexLayout, _ = refl.VertexLayout()

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "aviator",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: refl.Source(),
		},
	})
	if err != nil {
		return errors.Wrap(err, "wgpu: create shader module")
	}
	b.shaderModule = module

	sceneBinding, _ := refl.Binding(sceneGroup, 0)
	b.sceneProvider, err = b.initUniformGroup("Scene", sceneBinding.Size, sceneBinding.Size, false)
	if err != nil {
		return err
	}

	objectBinding, _ := refl.Binding(objectGroup, 0)
	b.objectProvider, err = b.initUniformGroup("Object", objectBinding.Size, objectUniformStride*objectUniformSlots, true)
	if err != nil {
		return err
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "aviator",
		BindGroupLayouts: []*wgpu.BindGroupLayout{
			b.sceneProvider.BindGroupLayout(),
			b.objectProvider.BindGroupLayout(),
		},
	})
	if err != nil {
		return errors.Wrap(err, "wgpu: create pipeline layout")
	}
	return nil
}

// initUniformGroup creates a single-binding uniform bind group. For dynamic groups the binding
// covers one slot of bindingSize bytes within a buffer of bufferSize bytes.
func (b *wgpuRendererBackendImpl) initUniformGroup(label string, bindingSize, bufferSize uint64, dynamic bool) (bind_group_provider.BindGroupProvider, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label + " Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: dynamic,
					MinBindingSize:   bindingSize,
				},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "wgpu: create %s bind group layout", label)
	}
	provider := bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithBindGroupLayout(layout))

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  bufferSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		provider.Release()
		return nil, errors.Wrapf(err, "wgpu: create %s buffer", label)
	}
	provider.SetBuffer(0, buf)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    bindingSize,
			},
		},
	})
	if err != nil {
		provider.Release()
		return nil, errors.Wrapf(err, "wgpu: create %s bind group", label)
	}
	provider.SetBindGroup(bindGroup)
	return provider, nil
}

// pipeline returns the cached pipeline for the draw parameters, creating it on first use.
func (b *wgpuRendererBackendImpl) pipeline(params DrawParameters) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{depthTest: params.DepthTest, depthWrite: params.DepthWrite}
	if p, ok := b.pipelines[key]; ok {
		return p.RenderPipeline(), nil
	}

	p := pipeline.NewPipeline("aviator "+params.DepthTest.String()+" Render Pipeline",
		pipeline.WithEntryPoints(b.shader.VertexEntryPoint(), b.shader.FragmentEntryPoint()),
		pipeline.WithVertexLayouts(b.vertexLayout),
		pipeline.WithColorFormat(*b.surfaceFormat),
		pipeline.WithDepth(params.DepthTest.compareFunction(), params.DepthWrite),
		pipeline.WithSampleCount(uint32(b.sampleCount)),
	)
	created, err := b.device.CreateRenderPipeline(p.Descriptor(b.pipelineLayout, b.shaderModule))
	if err != nil {
		return nil, errors.Wrap(err, "wgpu: create render pipeline")
	}
	p.SetRenderPipeline(created)
	b.pipelines[key] = p
	logger.Debug("wgpu: created pipeline depth=%s write=%t", params.DepthTest, params.DepthWrite)
	return created, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if b.surfaceFormat == nil {
		b.surfaceFormat = &capabilities.Formats[0]
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	var err error
	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(color [4]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: color[0], G: color[1], B: color[2], A: color[3]}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackendImpl) CreateMesh(label string, m mesh.Mesh) (MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(m.Vertices) == 0 {
		return nil, errors.New("wgpu: mesh has no vertices")
	}
	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := b.uploadMesh(provider, m); err != nil {
		provider.Release()
		return nil, err
	}
	return provider, nil
}

func (b *wgpuRendererBackendImpl) UpdateMesh(h MeshHandle, m mesh.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	provider, ok := h.(bind_group_provider.BindGroupProvider)
	if !ok {
		return ErrUnknownMesh
	}
	return b.uploadMesh(provider, m)
}

func (b *wgpuRendererBackendImpl) ReleaseMesh(h MeshHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if provider, ok := h.(bind_group_provider.BindGroupProvider); ok {
		provider.Release()
	}
}

// uploadMesh writes mesh data into the provider's buffers, reusing them when the new data fits.
func (b *wgpuRendererBackendImpl) uploadMesh(provider bind_group_provider.BindGroupProvider, m mesh.Mesh) error {
	vertexData := m.VertexBytes()
	buf, err := b.ensureBuffer(provider.VertexBuffer(), provider.Label()+" Vertex Buffer", uint64(len(vertexData)), wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, vertexData)
	provider.SetVertexBuffer(buf, len(m.Vertices))

	if !m.Indexed() {
		provider.SetIndexBuffer(nil, 0)
		return nil
	}
	indexData := m.IndexBytes()
	buf, err = b.ensureBuffer(provider.IndexBuffer(), provider.Label()+" Index Buffer", uint64(len(indexData)), wgpu.BufferUsageIndex)
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, indexData)
	provider.SetIndexBuffer(buf, len(m.Indices))
	return nil
}

func (b *wgpuRendererBackendImpl) ensureBuffer(existing *wgpu.Buffer, label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	if existing != nil && existing.GetSize() >= size {
		return existing, nil
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "wgpu: create %s", label)
	}
	return buf, nil
}

func (b *wgpuRendererBackendImpl) writeBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(scene SceneBlock) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid acquiring another one.
	// wgpu-native reports "Surface image is already acquired" when frames overlap.
	if b.frameSurface != nil {
		return errors.New("wgpu: previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return errors.Wrap(err, "wgpu: acquire surface texture")
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return errors.Wrap(err, "wgpu: create surface view")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return errors.Wrap(err, "wgpu: create command encoder")
	}

	uniform := newGPUSceneUniform(scene)
	b.writeBuffers([]bind_group_provider.BufferWrite{
		{Provider: b.sceneProvider, Binding: 0, Offset: 0, Data: uniform.Marshal()},
	})

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(sceneGroup, b.sceneProvider.BindGroup(), nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.objectSlot = 0

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(cmd DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return ErrFrameNotStarted
	}
	provider, ok := cmd.Mesh.(bind_group_provider.BindGroupProvider)
	if !ok {
		return ErrUnknownMesh
	}
	if b.objectSlot >= objectUniformSlots {
		return ErrUniformCapacity
	}

	renderPipeline, err := b.pipeline(cmd.Params)
	if err != nil {
		return err
	}

	offset := uint32(b.objectSlot * objectUniformStride)
	b.objectSlot++
	uniform := newGPUObjectUniform(cmd.Uniforms)
	b.writeBuffers([]bind_group_provider.BufferWrite{
		{Provider: b.objectProvider, Binding: 0, Offset: uint64(offset), Data: uniform.Marshal()},
	})

	b.framePass.SetPipeline(renderPipeline)
	b.framePass.SetBindGroup(objectGroup, b.objectProvider.BindGroup(), []uint32{offset})
	b.framePass.SetVertexBuffer(0, provider.VertexBuffer(), 0, wgpu.WholeSize)
	if provider.IndexCount() > 0 {
		b.framePass.SetIndexBuffer(provider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		b.framePass.DrawIndexed(uint32(provider.IndexCount()), 1, 0, 0, 0)
	} else {
		b.framePass.Draw(uint32(provider.VertexCount()), 1, 0, 0)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return ErrFrameNotStarted
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.frameSurface = nil
		b.frameView = nil
		return errors.Wrap(err, "wgpu: finish command encoder")
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
		b.shaderModule = nil
	}
	if b.sceneProvider != nil {
		b.sceneProvider.Release()
	}
	if b.objectProvider != nil {
		b.objectProvider.Release()
	}
	b.releaseAttachments()
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
