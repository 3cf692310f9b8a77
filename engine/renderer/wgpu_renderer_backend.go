package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	logger *log.Logger

	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	srgbSurface          bool
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	// Pipelines are created on the first ConfigureSurface, once the surface format is known.
	lit       pipeline.Pipeline
	wireframe pipeline.Pipeline
	sky       pipeline.Pipeline

	frameProvider bind_group_provider.BindGroupProvider
	meshProviders map[scene.Mesh]bind_group_provider.BindGroupProvider
	skyProvider   bind_group_provider.BindGroupProvider
	skyCube       *texture.Cube
	skyGuard      skyboxGuard
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend requests an adapter and device compatible with the surface described
// by surfaceDescriptor. The calling goroutine is locked to its OS thread, as GLFW requires.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, from wgpuglfw
//   - forceFallbackAdapter: request a software adapter
//   - sampleCount: MSAA sample count for the main pass
//   - logger: diagnostics sink
//
// Returns:
//   - *wgpuRendererBackendImpl: the backend, unconfigured until ConfigureSurface
//   - error: an error if no adapter or device is available
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, logger *log.Logger) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:            &sync.Mutex{},
		logger:        logger,
		instance:      wgpu.CreateInstance(nil),
		presentMode:   wgpu.PresentModeFifo,
		sampleCount:   sampleCount,
		meshProviders: make(map[scene.Mesh]bind_group_provider.BindGroupProvider),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no formats")
	}
	if b.surfaceFormat == nil {
		format, srgb := pickSurfaceFormat(capabilities.Formats)
		b.surfaceFormat = &format
		b.srgbSurface = srgb
		b.logger.Debug("renderer: surface format selected", "format", format, "srgb", srgb)
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is written to the
		// swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
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
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
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
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in RenderFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.lit == nil {
		if err := b.initPipelines(); err != nil {
			return err
		}
	}
	return nil
}

// pickSurfaceFormat prefers an sRGB swapchain format so the hardware does the output encoding.
func pickSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f, true
		}
	}
	return formats[0], false
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// initPipelines creates the lit, wireframe and skybox pipelines and the per-frame bind group.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) initPipelines() error {
	var err error
	if b.lit, err = newLitPipeline(); err != nil {
		return err
	}
	if err := b.registerRenderPipeline(b.lit, nil); err != nil {
		return fmt.Errorf("register %s pipeline: %w", litPipelineKey, err)
	}
	// The wireframe pipeline reuses the lit layouts so mesh bind groups work with both.
	shared := []*wgpu.BindGroupLayout{b.lit.BindGroupLayout(frameGroup), b.lit.BindGroupLayout(meshGroup)}
	if b.wireframe, err = newWireframePipeline(); err != nil {
		return err
	}
	if err := b.registerRenderPipeline(b.wireframe, shared); err != nil {
		return fmt.Errorf("register %s pipeline: %w", wireframePipelineKey, err)
	}
	if b.sky, err = newSkyboxPipeline(); err != nil {
		return err
	}
	if err := b.registerRenderPipeline(b.sky, nil); err != nil {
		return fmt.Errorf("register %s pipeline: %w", skyboxPipelineKey, err)
	}

	b.frameProvider = bind_group_provider.NewBindGroupProvider("Frame")
	if err := b.initUniformBindGroup(b.frameProvider, b.lit, frameGroup); err != nil {
		return fmt.Errorf("init frame bind group: %w", err)
	}
	return nil
}

// registerRenderPipeline creates the shader module, layouts and render pipeline described by p.
// When shared is non-nil those layouts are used instead of creating new ones, and p does not
// take ownership of them.
func (b *wgpuRendererBackendImpl) registerRenderPipeline(p pipeline.Pipeline, shared []*wgpu.BindGroupLayout) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey() + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	layouts := shared
	owned := shared == nil
	if owned {
		descs := p.BindGroupLayoutDescriptors()
		layouts = make([]*wgpu.BindGroupLayout, len(descs))
		for g := range descs {
			layout, layoutErr := b.device.CreateBindGroupLayout(&descs[g])
			if layoutErr != nil {
				return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
			}
			layouts[g] = layout
		}
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	vertexEntry, fragmentEntry := p.EntryPoints()
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: p.WriteMask(),
					Blend:     p.BlendState(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	if owned {
		p.SetRenderPipeline(created, layouts)
	} else {
		p.SetRenderPipeline(created, nil)
	}
	return nil
}

// initUniformBindGroup creates one uniform buffer per layout entry of the given group and
// binds them. Buffers already present on the provider are kept.
func (b *wgpuRendererBackendImpl) initUniformBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error {
	desc := p.BindGroupLayoutDescriptors()[group]
	entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))

	for _, entry := range desc.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("texture binding %d has no texture view", binding)
			}
			entries = append(entries, wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv})
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			s := provider.Sampler(binding)
			if s == nil {
				return fmt.Errorf("sampler binding %d has no sampler", binding)
			}
			entries = append(entries, wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: s})
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
					Size:  entry.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			entries = append(entries, wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			})
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  p.BindGroupLayout(group),
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

// meshProvider returns the cached GPU resources for a mesh, uploading its geometry on first use.
func (b *wgpuRendererBackendImpl) meshProvider(item *DrawItem) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := b.meshProviders[item.Key]; ok {
		return p, nil
	}

	p := bind_group_provider.NewBindGroupProvider(item.Model.Name())
	if err := b.initMeshBuffers(p, item.Model); err != nil {
		p.Release()
		return nil, err
	}
	if err := b.initUniformBindGroup(p, b.lit, meshGroup); err != nil {
		p.Release()
		return nil, err
	}
	b.meshProviders[item.Key] = p
	return p, nil
}

// initMeshBuffers uploads the vertex buffer and both the triangle and line index buffers.
func (b *wgpuRendererBackendImpl) initMeshBuffers(provider bind_group_provider.BindGroupProvider, m model.Model) error {
	upload := func(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " " + label,
			Size:             uint64(len(data)),
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return nil, err
		}
		b.queue.WriteBuffer(buf, 0, data)
		return buf, nil
	}

	vb, err := upload("Vertex Buffer", wgpu.BufferUsageVertex, m.VertexData())
	if err != nil {
		return err
	}
	provider.SetVertexBuffer(vb)

	ib, err := upload("Index Buffer", wgpu.BufferUsageIndex, m.IndexData())
	if err != nil {
		return err
	}
	provider.SetIndexBuffer(ib, m.IndexCount())

	lb, err := upload("Line Index Buffer", wgpu.BufferUsageIndex, m.WireframeIndexData())
	if err != nil {
		return err
	}
	provider.SetLineIndexBuffer(lb, m.WireframeIndexCount())
	return nil
}

// skyboxProvider returns the bind group for cube, uploading it as a 6-layer texture the first
// time a given cube is seen. A different cube replaces the previous one.
func (b *wgpuRendererBackendImpl) skyboxProvider(cube *texture.Cube) (bind_group_provider.BindGroupProvider, error) {
	if b.skyProvider != nil && b.skyCube == cube {
		return b.skyProvider, nil
	}
	if b.skyProvider != nil {
		b.skyProvider.Release()
		b.skyProvider = nil
		b.skyCube = nil
	}

	size := uint32(cube.Size())
	if size == 0 {
		return nil, texture.ErrCubeFaceMismatch
	}
	provider := bind_group_provider.NewBindGroupProvider("Skybox " + cube.Name)

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: 6,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	provider.AdoptTexture(tex)

	for layer, face := range cube.GPULayerOrder() {
		b.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{Z: uint32(layer)},
				Aspect:   wgpu.TextureAspectAll,
			},
			face.Pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(face.BytesPerRow()),
				RowsPerImage: size,
			},
			&wgpu.Extent3D{
				Width:              size,
				Height:             size,
				DepthOrArrayLayers: 1,
			},
		)
	}

	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           provider.Label() + " View",
		Format:          wgpu.TextureFormatRGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 6,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		provider.Release()
		return nil, err
	}
	provider.SetTextureView(skyTextureBinding, view)

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		provider.Release()
		return nil, err
	}
	provider.SetSampler(skySamplerBinding, samp)

	if err := b.initUniformBindGroup(provider, b.sky, 0); err != nil {
		provider.Release()
		return nil, err
	}
	b.skyProvider = provider
	b.skyCube = cube
	return provider, nil
}

func (b *wgpuRendererBackendImpl) RenderFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}

	// Environment encoding depends on the surface, not the scene.
	if !b.srgbSurface {
		frame.Environment.EncodeSRGB = 1
		frame.SkyboxUniform.Eye[3] = 1
	}

	writes := []bind_group_provider.BufferWrite{
		{Provider: b.frameProvider, Binding: cameraBinding, Data: frame.Camera.Marshal()},
		{Provider: b.frameProvider, Binding: environmentBinding, Data: frame.Environment.Marshal()},
		{Provider: b.frameProvider, Binding: lightsBinding, Data: frame.Lights},
	}

	meshes := make([]bind_group_provider.BindGroupProvider, len(frame.Draws))
	for i := range frame.Draws {
		item := &frame.Draws[i]
		p, err := b.meshProvider(item)
		if err != nil {
			return fmt.Errorf("upload mesh %q: %w", item.Model.Name(), err)
		}
		meshes[i] = p
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: p, Binding: modelBinding, Data: item.ModelData.Marshal()},
			bind_group_provider.BufferWrite{Provider: p, Binding: materialBinding, Data: item.Material.Marshal()},
		)
	}

	var sky bind_group_provider.BindGroupProvider
	if frame.Skybox != nil {
		upload := func(cube *texture.Cube) error {
			var err error
			sky, err = b.skyboxProvider(cube)
			return err
		}
		if b.skyGuard.acquire(frame.Skybox, upload, b.logger) {
			writes = append(writes, bind_group_provider.BufferWrite{Provider: sky, Binding: skyUniformBinding, Data: frame.SkyboxUniform.Marshal()})
		} else {
			sky = nil
		}
	}

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// When MSAA is enabled, the MSAA texture is the color attachment View and the swapchain
	// view is the ResolveTarget. Otherwise the swapchain view is drawn to directly.
	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = b.clearValue(frame.ClearColor)

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	if sky != nil {
		pass.SetPipeline(b.sky.RenderPipeline())
		pass.SetBindGroup(0, sky.BindGroup(), nil)
		pass.Draw(3, 1, 0, 0)
	}

	pass.SetBindGroup(frameGroup, b.frameProvider.BindGroup(), nil)
	for i, item := range frame.Draws {
		p := meshes[i]
		pass.SetBindGroup(meshGroup, p.BindGroup(), nil)
		pass.SetVertexBuffer(0, p.VertexBuffer(), 0, wgpu.WholeSize)
		if item.Wireframe {
			pass.SetPipeline(b.wireframe.RenderPipeline())
			pass.SetIndexBuffer(p.LineIndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(p.LineIndexCount()), 1, 0, 0, 0)
			continue
		}
		pass.SetPipeline(b.lit.RenderPipeline())
		pass.SetIndexBuffer(p.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(p.IndexCount()), 1, 0, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

// clearValue converts the clear color to the space the attachment stores. sRGB surfaces
// expect linear values; others receive the color as given.
func (b *wgpuRendererBackendImpl) clearValue(c common.Color) wgpu.Color {
	rgb := [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}
	if b.srgbSurface {
		for i := range rgb {
			rgb[i] = common.SRGBToLinear(rgb[i])
		}
	}
	return wgpu.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: float64(c[3])}
}

// releaseTargets frees the size-dependent MSAA and depth targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
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

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, p := range b.meshProviders {
		p.Release()
		delete(b.meshProviders, k)
	}
	if b.skyProvider != nil {
		b.skyProvider.Release()
		b.skyProvider = nil
	}
	if b.frameProvider != nil {
		b.frameProvider.Release()
		b.frameProvider = nil
	}
	for _, p := range []pipeline.Pipeline{b.wireframe, b.sky, b.lit} {
		if p != nil {
			p.Release()
		}
	}
	b.releaseTargets()
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
