package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label prefixed to every GPU object created for this provider.
	label string

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// buffers holds the uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textureViews holds the GPU texture views created for this provider, keyed by binding index.
	textureViews map[int]*wgpu.TextureView
	// samplers holds the GPU samplers created for this provider, keyed by binding index.
	samplers map[int]*wgpu.Sampler
	// textures holds textures owned by this provider so they can be released with it.
	textures []*wgpu.Texture

	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer
	indexCount      int
	lineIndexBuffer *wgpu.Buffer
	lineIndexCount  int
}

// BindGroupProvider holds the GPU resources backing one bind group, plus the optional
// vertex and index buffers of the mesh drawn with it. The Renderer backend creates the
// resources and stores them here; Release frees everything the provider owns.
type BindGroupProvider interface {
	// Label returns the debug label of the provider.
	Label() string

	// BindGroup returns the GPU bind group, or nil before initialization.
	BindGroup() *wgpu.BindGroup

	// SetBindGroup sets the GPU bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// Buffer returns the buffer at the given binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// SetBuffer stores the buffer for the given binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// TextureView returns the texture view at the given binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// SetTextureView stores the texture view for the given binding.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// Sampler returns the sampler at the given binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// SetSampler stores the sampler for the given binding.
	SetSampler(binding int, s *wgpu.Sampler)

	// AdoptTexture transfers ownership of a texture to the provider.
	AdoptTexture(tex *wgpu.Texture)

	// VertexBuffer returns the mesh vertex buffer, or nil.
	VertexBuffer() *wgpu.Buffer

	// SetVertexBuffer sets the mesh vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// IndexBuffer returns the triangle-list index buffer, or nil.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of triangle-list indices.
	IndexCount() int

	// SetIndexBuffer sets the triangle-list index buffer and its index count.
	//
	// Parameters:
	//   - buf: the index buffer
	//   - count: the number of uint32 indices in buf
	SetIndexBuffer(buf *wgpu.Buffer, count int)

	// LineIndexBuffer returns the line-list index buffer used for wireframe draws, or nil.
	LineIndexBuffer() *wgpu.Buffer

	// LineIndexCount returns the number of line-list indices.
	LineIndexCount() int

	// SetLineIndexBuffer sets the line-list index buffer and its index count.
	SetLineIndexBuffer(buf *wgpu.Buffer, count int)

	// Release frees every GPU object held by the provider and clears the references.
	Release()
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: debug label used for GPU objects created for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
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

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) AdoptTexture(tex *wgpu.Texture) {
	if tex != nil {
		p.textures = append(p.textures, tex)
	}
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	p.indexBuffer = buf
	p.indexCount = count
}

func (p *bindGroupProvider) LineIndexBuffer() *wgpu.Buffer {
	return p.lineIndexBuffer
}

func (p *bindGroupProvider) LineIndexCount() int {
	return p.lineIndexCount
}

func (p *bindGroupProvider) SetLineIndexBuffer(buf *wgpu.Buffer, count int) {
	p.lineIndexBuffer = buf
	p.lineIndexCount = count
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for _, tex := range p.textures {
		tex.Release()
	}
	p.textures = nil
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	for _, buf := range []*wgpu.Buffer{p.vertexBuffer, p.indexBuffer, p.lineIndexBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	p.vertexBuffer, p.indexBuffer, p.lineIndexBuffer = nil, nil, nil
	p.indexCount, p.lineIndexCount = 0, 0
}
