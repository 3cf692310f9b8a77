// pre_processor.go implements the WGSL shader pre-processor. It replaces @oxy: annotations
// with the embedded WGSL of the engine's GPU types and generated binding declarations, and
// collects a declarations list the renderer checks against its bind group layouts.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
)

// registryEntry pairs a WGSL struct source with the struct's WGSL type name and the byte
// size of its Go counterpart.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations.
	Type string

	// Size is the byte size of the matching Go GPU type.
	Size int
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates group and provider annotations during a Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces include annotations with struct source and group annotations with
	// generated @group/@binding declarations. Provider annotations produce no output but are
	// recorded. The declarations list is reset at the start of each call.
	//
	// Parameters:
	//   - source: the raw WGSL source containing annotations
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if an annotation is malformed, references an unknown type, or
	//     includes a struct twice
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations collected during the most
	// recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation

	// StructSize returns the Go byte size registered for a struct type key.
	//
	// Parameters:
	//   - arg: the struct type key
	//
	// Returns:
	//   - int: the size in bytes
	//   - bool: false if the key is not registered
	StructSize(arg AnnotationArg) (int, bool)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU types registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:         {Source: camera.GPUCameraUniformSource, Type: "Camera", Size: new(camera.GPUCameraUniform).Size()},
			AnnotationArgVertex:         {Source: model.GPUVertexSource, Type: "VertexInput", Size: new(model.GPUVertex).Size()},
			AnnotationArgModelData:      {Source: model.GPUModelDataSource, Type: "ModelData", Size: new(model.GPUModelData).Size()},
			AnnotationArgMaterialParams: {Source: material.GPUMaterialParamsSource, Type: "MaterialParams", Size: new(material.GPUMaterialParams).Size()},
			AnnotationArgLight:          {Source: light.GPULightSource, Type: "Light", Size: new(light.GPULight).Size()},
			AnnotationArgLights:         {Source: light.GPULightBlockSource, Type: "Lights", Size: light.GPULightBlockSize},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				return "", fmt.Errorf("line %d: struct %q included twice", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(p.structRegistry[a.Args[0]].Source, "\n"))
		case AnnotationTypeBindingGroup:
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) StructSize(arg AnnotationArg) (int, bool) {
	entry, ok := p.structRegistry[arg]
	return entry.Size, ok
}
