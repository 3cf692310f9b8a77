package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	litPipelineKey       = "lit"
	wireframePipelineKey = "wireframe"
	skyboxPipelineKey    = "skybox"
)

// Bindings shared by the lit and wireframe pipelines.
const (
	frameGroup = 0
	meshGroup  = 1

	cameraBinding      = 0
	environmentBinding = 1
	lightsBinding      = 2

	modelBinding    = 0
	materialBinding = 1

	skyUniformBinding = 0
	skyTextureBinding = 1
	skySamplerBinding = 2
)

var meshVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(new(model.GPUVertex).Size()),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	},
}

func uniformEntry(binding uint32, size int) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: uint64(size),
		},
	}
}

func meshBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return []wgpu.BindGroupLayoutDescriptor{
		{
			Label: "Frame Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(cameraBinding, new(camera.GPUCameraUniform).Size()),
				uniformEntry(environmentBinding, new(GPUEnvironment).Size()),
				uniformEntry(lightsBinding, light.GPULightBlockSize),
			},
		},
		{
			Label: "Mesh Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(modelBinding, new(model.GPUModelData).Size()),
				uniformEntry(materialBinding, new(material.GPUMaterialParams).Size()),
			},
		},
	}
}

// providerSizes holds the uniform sizes of bindings the renderer declares by hand.
var providerSizes = map[shader.AnnotationArg]int{
	shader.AnnotationArgEnvironment: new(GPUEnvironment).Size(),
	shader.AnnotationArgSkyUniform:  new(GPUSkyboxUniform).Size(),
}

// compileShader expands the annotations in source and checks that the declared bindings and
// the layouts describe the same set of slots, with matching uniform sizes.
//
// Parameters:
//   - source: annotated WGSL source
//   - layouts: the bind group layouts the pipeline will be created with
//
// Returns:
//   - string: the expanded WGSL source
//   - error: an error naming the first mismatched binding
func compileShader(source string, layouts []wgpu.BindGroupLayoutDescriptor) (string, error) {
	pp := shader.NewPreProcessor()
	out, err := pp.Process(source)
	if err != nil {
		return "", err
	}

	declared := make(map[[2]int]bool)
	for _, d := range pp.Declarations() {
		g, b := *d.Group, *d.Binding
		declared[[2]int{g, b}] = true
		if g >= len(layouts) {
			return "", fmt.Errorf("line %d: group %d has no layout", d.Line, g)
		}
		entry, ok := findEntry(layouts[g], uint32(b))
		if !ok {
			return "", fmt.Errorf("line %d: binding %d/%d has no layout entry", d.Line, g, b)
		}

		want, sized := 0, false
		switch d.Type {
		case shader.AnnotationTypeBindingGroup:
			want, sized = pp.StructSize(d.Args[2])
		case shader.AnnotationTypeProvider:
			want, sized = providerSizes[d.Args[0]]
		}
		if sized && entry.Buffer.MinBindingSize != uint64(want) {
			return "", fmt.Errorf("line %d: binding %d/%d is %d bytes in WGSL, layout says %d",
				d.Line, g, b, want, entry.Buffer.MinBindingSize)
		}
	}

	for g, layout := range layouts {
		for _, e := range layout.Entries {
			if !declared[[2]int{g, int(e.Binding)}] {
				return "", fmt.Errorf("layout %q binding %d is not declared in the shader", layout.Label, e.Binding)
			}
		}
	}
	return out, nil
}

func findEntry(layout wgpu.BindGroupLayoutDescriptor, binding uint32) (wgpu.BindGroupLayoutEntry, bool) {
	for _, e := range layout.Entries {
		if e.Binding == binding {
			return e, true
		}
	}
	return wgpu.BindGroupLayoutEntry{}, false
}

// newLitPipeline describes the solid mesh pipeline: back-face culled triangles with CCW fronts.
func newLitPipeline() (pipeline.Pipeline, error) {
	layouts := meshBindGroupLayouts()
	src, err := compileShader(LitShaderSource, layouts)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", litPipelineKey, err)
	}
	return pipeline.NewPipeline(litPipelineKey, src,
		pipeline.WithVertexLayouts(meshVertexLayout),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
	), nil
}

// newWireframePipeline shares the lit shader and layouts but draws the line index buffer.
func newWireframePipeline() (pipeline.Pipeline, error) {
	layouts := meshBindGroupLayouts()
	src, err := compileShader(LitShaderSource, layouts)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", wireframePipelineKey, err)
	}
	return pipeline.NewPipeline(wireframePipelineKey, src,
		pipeline.WithVertexLayouts(meshVertexLayout),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
	), nil
}

func skyboxBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Skybox Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(skyUniformBinding, new(GPUSkyboxUniform).Size()),
			{
				Binding:    skyTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimensionCube,
				},
			},
			{
				Binding:    skySamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// newSkyboxPipeline draws a full-screen triangle at the far plane before any geometry.
func newSkyboxPipeline() (pipeline.Pipeline, error) {
	layout := skyboxBindGroupLayout()
	src, err := compileShader(SkyboxShaderSource, []wgpu.BindGroupLayoutDescriptor{layout})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", skyboxPipelineKey, err)
	}
	return pipeline.NewPipeline(skyboxPipelineKey, src,
		pipeline.WithBindGroupLayouts(layout),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	), nil
}
