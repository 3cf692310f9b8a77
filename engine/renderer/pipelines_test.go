package renderer

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestBuiltinPipelinesCompile(t *testing.T) {
	for name, build := range map[string]func() (pipeline.Pipeline, error){
		litPipelineKey:       newLitPipeline,
		wireframePipelineKey: newWireframePipeline,
		skyboxPipelineKey:    newSkyboxPipeline,
	} {
		p, err := build()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if strings.Contains(p.Source(), "@oxy:") {
			t.Errorf("%s: expanded source still contains annotations", name)
		}
	}
}

func TestLitShaderExpandsGPUTypes(t *testing.T) {
	src, err := compileShader(LitShaderSource, meshBindGroupLayouts())
	if err != nil {
		t.Fatalf("compileShader: %v", err)
	}
	for _, want := range []string{
		"struct Camera {",
		"struct Lights {",
		"struct VertexInput {",
		"@group(0) @binding(0) var<uniform> camera: Camera;",
		"@group(0) @binding(2) var<uniform> lights: Lights;",
		"@group(1) @binding(0) var<uniform> mesh: ModelData;",
		"@group(1) @binding(1) var<uniform> material: MaterialParams;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("expanded lit shader missing %q", want)
		}
	}
}

func TestCompileShaderRejectsMismatchedLayouts(t *testing.T) {
	src := "//@oxy:include camera\n//@oxy:group 0 0 storage_uniform camera camera"

	tests := []struct {
		name    string
		layouts []wgpu.BindGroupLayoutDescriptor
	}{
		{"no group", nil},
		{"missing binding", []wgpu.BindGroupLayoutDescriptor{{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(1, 80)}}}},
		{"wrong size", []wgpu.BindGroupLayoutDescriptor{{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, 64)}}}},
		{"undeclared entry", []wgpu.BindGroupLayoutDescriptor{{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, 80), uniformEntry(1, 32)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := compileShader(src, tt.layouts); err == nil {
				t.Error("compileShader = nil error")
			}
		})
	}

	ok := []wgpu.BindGroupLayoutDescriptor{{Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, 80)}}}
	if _, err := compileShader(src, ok); err != nil {
		t.Errorf("compileShader(matching) = %v", err)
	}
}
