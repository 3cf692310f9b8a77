package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
)

// Scene is the root of a node graph plus the environment applied when it is drawn:
// background color, optional skybox and fog.
// Nodes are attached during setup and the graph is read every frame by the renderer.
type Scene interface {
	Node

	// Fog returns the scene fog, or nil when fog is disabled.
	Fog() *Fog

	// SetFog replaces the scene fog; nil disables it.
	SetFog(f *Fog)

	// Skybox returns the cube texture drawn behind everything, or nil.
	Skybox() *texture.Cube

	// SetSkybox sets the cube texture drawn behind everything; nil clears it.
	SetSkybox(c *texture.Cube)

	// Traverse visits every node depth first, parents before children, starting with the
	// scene itself. Returning false from fn skips that node's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(Node) bool)

	// Meshes returns every mesh whose whole ancestor chain is visible, in traversal order.
	Meshes() []Mesh

	// Lights returns every light node whose whole ancestor chain is visible and whose
	// light is enabled, in traversal order.
	Lights() []LightNode
}

type scene struct {
	node
	envMu  sync.RWMutex
	fog    *Fog
	skybox *texture.Cube
}

var _ Scene = &scene{}

// NewScene creates an empty scene root.
//
// Parameters:
//   - opts: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: a new Scene instance
func NewScene(opts ...SceneBuilderOption) Scene {
	s := &scene{}
	s.init(s, nil)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scene) Fog() *Fog {
	s.envMu.RLock()
	defer s.envMu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(f *Fog) {
	s.envMu.Lock()
	defer s.envMu.Unlock()
	s.fog = f
}

func (s *scene) Skybox() *texture.Cube {
	s.envMu.RLock()
	defer s.envMu.RUnlock()
	return s.skybox
}

func (s *scene) SetSkybox(c *texture.Cube) {
	s.envMu.Lock()
	defer s.envMu.Unlock()
	s.skybox = c
}

func (s *scene) Traverse(fn func(Node) bool) {
	var walk func(n Node)
	walk = func(n Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(s)
}

func (s *scene) Meshes() []Mesh {
	var out []Mesh
	s.Traverse(func(n Node) bool {
		if !n.Visible() {
			return false
		}
		if m, ok := n.(Mesh); ok {
			out = append(out, m)
		}
		return true
	})
	return out
}

func (s *scene) Lights() []LightNode {
	var out []LightNode
	s.Traverse(func(n Node) bool {
		if !n.Visible() {
			return false
		}
		if l, ok := n.(LightNode); ok && l.Light().Enabled() {
			out = append(out, l)
		}
		return true
	})
	return out
}
