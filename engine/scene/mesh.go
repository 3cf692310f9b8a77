package scene

import (
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
)

// Mesh is a drawable node pairing shared geometry with a material.
type Mesh interface {
	Node

	// Model returns the geometry drawn by this mesh.
	Model() model.Model

	// Material returns the surface description.
	Material() material.Material

	// CastShadow reports whether the mesh is flagged as a shadow caster.
	CastShadow() bool

	// SetCastShadow flags the mesh as a shadow caster.
	SetCastShadow(cast bool)

	// ReceiveShadow reports whether the mesh is flagged as a shadow receiver.
	ReceiveShadow() bool

	// SetReceiveShadow flags the mesh as a shadow receiver.
	SetReceiveShadow(receive bool)
}

type mesh struct {
	node
	mdl           model.Model
	mat           material.Material
	castShadow    bool
	receiveShadow bool
}

var _ Mesh = &mesh{}

// NewMesh creates a drawable node. Panics if mdl or mat is nil.
//
// Parameters:
//   - mdl: the geometry
//   - mat: the material
//   - opts: transform options
//
// Returns:
//   - Mesh: the new mesh node
func NewMesh(mdl model.Model, mat material.Material, opts ...NodeBuilderOption) Mesh {
	if mdl == nil || mat == nil {
		panic("scene: NewMesh requires a model and a material")
	}
	m := &mesh{mdl: mdl, mat: mat}
	m.init(m, opts)
	return m
}

func (m *mesh) Model() model.Model {
	return m.mdl
}

func (m *mesh) Material() material.Material {
	return m.mat
}

func (m *mesh) CastShadow() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.castShadow
}

func (m *mesh) SetCastShadow(cast bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.castShadow = cast
}

func (m *mesh) ReceiveShadow() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.receiveShadow
}

func (m *mesh) SetReceiveShadow(receive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveShadow = receive
}
