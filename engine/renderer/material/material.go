package material

import "github.com/Carmen-Shannon/oxy-stage/common"

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor common.Color
	metallic  float32
	roughness float32
	wireframe bool
}

// Material defines the surface properties of a mesh for the lit shader: a physically based
// base color, metallic and roughness, plus a wireframe toggle that switches the draw to a
// line-list over the mesh edges.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo/diffuse RGBA color of the material.
	//
	// Returns:
	//   - common.Color: the base color as RGBA values
	BaseColor() common.Color

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Wireframe reports whether meshes using this material draw their edges only.
	Wireframe() bool

	// SetBaseColor replaces the base color.
	//
	// Parameters:
	//   - c: the new RGBA color
	SetBaseColor(c common.Color)

	// SetWireframe toggles edge-only drawing.
	SetWireframe(wireframe bool)

	// Params returns the GPU uniform block for this material.
	//
	// Returns:
	//   - GPUMaterialParams: the packed material parameters
	Params() GPUMaterialParams
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults: white, metallic 0, roughness 1, solid.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: common.Color{1, 1, 1, 1},
		metallic:  0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() common.Color {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Wireframe() bool {
	return m.wireframe
}

func (m *material) SetBaseColor(c common.Color) {
	m.baseColor = c
}

func (m *material) SetWireframe(wireframe bool) {
	m.wireframe = wireframe
}

func (m *material) Params() GPUMaterialParams {
	return GPUMaterialParams{
		BaseColor: m.baseColor,
		Metallic:  m.metallic,
		Roughness: m.roughness,
	}
}
