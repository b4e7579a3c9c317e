package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// errNoFrame is returned by draws issued outside BeginFrame/EndFrame.
var errNoFrame = errors.New("no frame in progress")

// gpuMesh holds the uploaded geometry of one mesh. Meshes shared between models are uploaded once.
type gpuMesh struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
	topology   model.Topology
}

// gpuInstance holds the per-model uniform and its bind group (group 1 in every pipeline).
type gpuInstance struct {
	mesh      *gpuMesh
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	// Shared layouts and pipelines.
	frameLayout    *wgpu.BindGroupLayout
	shadowLayout   *wgpu.BindGroupLayout
	modelLayout    *wgpu.BindGroupLayout
	litPipeline    *wgpu.RenderPipeline
	linePipeline   *wgpu.RenderPipeline
	shadowPipeline *wgpu.RenderPipeline

	// Per-frame resources bound at group 0.
	frameBuffer     *wgpu.Buffer
	lightBuffer     *wgpu.Buffer
	shadowTexture   *wgpu.Texture
	shadowView      *wgpu.TextureView
	shadowSampler   *wgpu.Sampler
	frameBindGroup  *wgpu.BindGroup
	shadowBindGroup *wgpu.BindGroup

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Shadow pass state. Shadow passes use their own command encoder, a Depth32Float
	// texture with no color target, and sample count 1.
	shadowEncoder *wgpu.CommandEncoder
	shadowPass    *wgpu.RenderPassEncoder
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateMesh uploads vertex and index data into new GPU buffers.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - vertexData: packed model.GPUVertex bytes
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices
	//   - topology: how the indices are assembled
	//
	// Returns:
	//   - *gpuMesh: the uploaded mesh
	//   - error: an error if buffer creation fails
	CreateMesh(label string, vertexData, indexData []byte, indexCount uint32, topology model.Topology) (*gpuMesh, error)

	// CreateInstance creates the per-model uniform buffer and bind group for a mesh.
	//
	// Parameters:
	//   - label: debug label for the buffer
	//   - mesh: the uploaded mesh the instance draws
	//
	// Returns:
	//   - *gpuInstance: the instance
	//   - error: an error if buffer or bind group creation fails
	CreateInstance(label string, mesh *gpuMesh) (*gpuInstance, error)

	// WriteInstance writes per-model uniform data.
	//
	// Parameters:
	//   - inst: the instance to update
	//   - data: packed model.GPUModelData
	WriteInstance(inst *gpuInstance, data []byte)

	// ReleaseInstance frees the instance's uniform and bind group.
	ReleaseInstance(inst *gpuInstance)

	// ReleaseMesh frees the mesh's buffers.
	ReleaseMesh(mesh *gpuMesh)

	// WriteFrame writes the camera uniform.
	WriteFrame(data []byte)

	// WriteLights writes the light block uniform.
	WriteLights(data []byte)

	// BeginShadowPass creates a command encoder and starts a depth-only pass into the shadow map.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginShadowPass() error

	// DrawShadow encodes one instance into the current shadow pass. Line meshes are skipped.
	DrawShadow(inst *gpuInstance)

	// EndShadowPass ends the shadow pass and submits it.
	EndShadowPass()

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all Draw invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes one instance into the current render pass, selecting the lit or line
	// pipeline from the mesh topology.
	//
	// Returns:
	//   - error: errNoFrame outside a frame
	Draw(inst *gpuInstance) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend requests an adapter and device for the surface and builds the
// lit, line and shadow pipelines. Panics when no adapter, device or pipeline can be created.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor mgl32.Vec4) wgpuRendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor: wgpu.Color{
			R: float64(clearColor[0]),
			G: float64(clearColor[1]),
			B: float64(clearColor[2]),
			A: float64(clearColor[3]),
		},
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	if err := b.createFrameResources(); err != nil {
		panic(err)
	}
	if err := b.createPipelines(); err != nil {
		panic(err)
	}
	return b
}

// createFrameResources creates the group 0 layouts, the frame and light uniforms, and the shadow map.
func (b *wgpuRendererBackendImpl) createFrameResources() error {
	var err error
	vertexFragment := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: vertexFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: GPUFrameDataSize},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: light.GPULightBlockSize},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame layout: %w", err)
	}

	b.shadowLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow layout: %w", err)
	}

	b.modelLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Model Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: vertexFragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: model.GPUModelDataSize},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to create model layout: %w", err)
	}

	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform",
		Size:  GPUFrameDataSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.lightBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Light Block",
		Size:  light.GPULightBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	b.shadowTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              light.ShadowMapResolution,
			Height:             light.ShadowMapResolution,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	b.shadowView, err = b.shadowTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}

	b.shadowSampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameBuffer, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.lightBuffer, Size: wgpu.WholeSize},
			{Binding: 2, TextureView: b.shadowView},
			{Binding: 3, Sampler: b.shadowSampler},
		},
	})
	if err != nil {
		return err
	}
	b.shadowBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Shadow Bind Group",
		Layout:  b.shadowLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: b.lightBuffer, Size: wgpu.WholeSize}},
	})
	return err
}

// vertexLayout describes model.GPUVertex. The shadow pipeline reads positions only.
func vertexLayout(withNormal bool) wgpu.VertexBufferLayout {
	attrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	}
	if withNormal {
		attrs = append(attrs, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// createPipelines builds the lit, line and shadow pipelines.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	lit, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "lit",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: litShaderSource},
	})
	if err != nil {
		return err
	}
	shadow, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "shadow",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shadowShaderSource},
	})
	if err != nil {
		return err
	}

	mainLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Main Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.modelLayout},
	})
	if err != nil {
		return err
	}
	shadowLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shadow Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.shadowLayout, b.modelLayout},
	})
	if err != nil {
		return err
	}

	if b.litPipeline, err = b.createMainPipeline("Lit Pipeline", lit, mainLayout, wgpu.PrimitiveTopologyTriangleList); err != nil {
		return err
	}
	if b.linePipeline, err = b.createMainPipeline("Line Pipeline", lit, mainLayout, wgpu.PrimitiveTopologyLineList); err != nil {
		return err
	}

	b.shadowPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Shadow Pipeline",
		Layout: shadowLayout,
		Vertex: wgpu.VertexState{
			Module:     shadow,
			EntryPoint: "vs_shadow",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout(false)},
		},
		// No fragment shader, depth-only pass.
		Fragment: nil,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled:   true,
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           2,
			DepthBiasSlopeScale: 2.0,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) createMainPipeline(label string, module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, topology wgpu.PrimitiveTopology) (*wgpu.RenderPipeline, error) {
	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout(true)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
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
		Label:         "Depth Texture",
		Size:          size,
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

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    storeOp,
			ClearValue: b.clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// releaseTargets frees the size-dependent render targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) CreateMesh(label string, vertexData, indexData []byte, indexCount uint32, topology model.Topology) (*gpuMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 {
		return nil, fmt.Errorf("mesh %q has no geometry", label)
	}

	vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vertex, 0, vertexData)

	index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertex.Release()
		return nil, err
	}
	b.queue.WriteBuffer(index, 0, indexData)

	return &gpuMesh{vertex: vertex, index: index, indexCount: indexCount, topology: topology}, nil
}

func (b *wgpuRendererBackendImpl) CreateInstance(label string, mesh *gpuMesh) (*gpuInstance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	uniform, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Model Uniform",
		Size:  model.GPUModelDataSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label + " Model Bind Group",
		Layout:  b.modelLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: uniform, Size: wgpu.WholeSize}},
	})
	if err != nil {
		uniform.Release()
		return nil, err
	}
	return &gpuInstance{mesh: mesh, uniform: uniform, bindGroup: bindGroup}, nil
}

func (b *wgpuRendererBackendImpl) WriteInstance(inst *gpuInstance, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(inst.uniform, 0, data)
}

func (b *wgpuRendererBackendImpl) ReleaseInstance(inst *gpuInstance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.bindGroup.Release()
	inst.uniform.Release()
}

func (b *wgpuRendererBackendImpl) ReleaseMesh(mesh *gpuMesh) {
	b.mu.Lock()
	defer b.mu.Unlock()
	mesh.vertex.Release()
	mesh.index.Release()
}

func (b *wgpuRendererBackendImpl) WriteFrame(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.frameBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) WriteLights(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.lightBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginShadowPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.shadowEncoder = encoder
	b.shadowPass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	b.shadowPass.SetPipeline(b.shadowPipeline)
	b.shadowPass.SetBindGroup(0, b.shadowBindGroup, nil)
	return nil
}

func (b *wgpuRendererBackendImpl) DrawShadow(inst *gpuInstance) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowPass == nil || inst.mesh.topology != model.TopologyTriangleList {
		return
	}
	b.shadowPass.SetBindGroup(1, inst.bindGroup, nil)
	b.shadowPass.SetVertexBuffer(0, inst.mesh.vertex, 0, wgpu.WholeSize)
	b.shadowPass.SetIndexBuffer(inst.mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.shadowPass.DrawIndexed(inst.mesh.indexCount, 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndShadowPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowEncoder == nil {
		return
	}
	b.shadowPass.End()
	b.shadowPass = nil

	commandBuffer, err := b.shadowEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.shadowEncoder.Release()
	b.shadowEncoder = nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}
	// A previous frame's surface texture still held means Present was skipped.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.frameBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(inst *gpuInstance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errNoFrame
	}
	pipeline := b.litPipeline
	if inst.mesh.topology == model.TopologyLineList {
		pipeline = b.linePipeline
	}
	b.framePass.SetPipeline(pipeline)
	b.framePass.SetBindGroup(1, inst.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, inst.mesh.vertex, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(inst.mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(inst.mesh.indexCount, 1, 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
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
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()

	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	b.frameBindGroup.Release()
	b.shadowBindGroup.Release()
	b.shadowSampler.Release()
	b.shadowView.Release()
	b.shadowTexture.Release()
	b.lightBuffer.Release()
	b.frameBuffer.Release()
	b.litPipeline.Release()
	b.linePipeline.Release()
	b.shadowPipeline.Release()
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
