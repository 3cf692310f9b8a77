package model

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex
	indices        []uint32
	boundingRadius float32
	vertexData     []byte
	indexData      []byte
	wireIndexData  []byte
	wireCount      int
}

// Model is immutable CPU-side mesh geometry: triangle-list vertices and indices plus the
// derived byte buffers ready for GPU upload. The same Model may back any number of meshes.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the model's vertices. Callers must not modify the slice.
	Vertices() []GPUVertex

	// Indices returns the triangle-list indices. Callers must not modify the slice.
	Indices() []uint32

	// VertexData returns the packed vertex buffer contents.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed triangle index buffer contents.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of triangle indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// WireframeIndexData returns the packed line-list index buffer covering every unique
	// triangle edge once.
	//
	// Returns:
	//   - []byte: the line index data
	WireframeIndexData() []byte

	// WireframeIndexCount returns the number of line-list indices.
	WireframeIndexCount() int

	// BoundingRadius returns the radius of the origin-centered sphere enclosing the model.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a Model from raw geometry. The vertex, index and wireframe buffers and
// the bounding radius are derived once here.
//
// Parameters:
//   - name: the model identifier
//   - vertices: the vertex list
//   - indices: triangle-list indices into vertices
//
// Returns:
//   - Model: the new model
func NewModel(name string, vertices []GPUVertex, indices []uint32) Model {
	wire := WireframeIndices(indices)
	return &model{
		name:           name,
		vertices:       vertices,
		indices:        indices,
		boundingRadius: ComputeBoundingRadius(vertices),
		vertexData:     MarshalVertices(vertices),
		indexData:      MarshalIndices(indices),
		wireIndexData:  MarshalIndices(wire),
		wireCount:      len(wire),
	}
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) WireframeIndexData() []byte {
	return m.wireIndexData
}

func (m *model) WireframeIndexCount() int {
	return m.wireCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// WireframeIndices converts triangle-list indices into line-list indices with each shared
// edge emitted once, in first-seen order.
//
// Parameters:
//   - indices: triangle-list indices; a trailing partial triangle is ignored
//
// Returns:
//   - []uint32: line-list indices
func WireframeIndices(indices []uint32) []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(indices))
	out := make([]uint32, 0, len(indices)*2)
	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := edge{a, b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		out = append(out, a, b)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return out
}
