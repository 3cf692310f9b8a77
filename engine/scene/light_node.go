package scene

import (
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// LightNode places a light in the graph. Its world position comes from the node transform;
// a directional light shines from that position toward Target.
type LightNode interface {
	Node

	// Light returns the photometric description.
	Light() light.Light

	// Target returns the world-space point a directional light aims at.
	Target() mgl32.Vec3

	// SetTarget sets the world-space point a directional light aims at.
	SetTarget(x, y, z float32)

	// GPULight resolves the light's world placement into its uniform representation.
	//
	// Returns:
	//   - light.GPULight: the packed light
	GPULight() light.GPULight
}

type lightNode struct {
	node
	l      light.Light
	target mgl32.Vec3
}

var _ LightNode = &lightNode{}

// NewLightNode wraps a light in a scene node aimed at the origin. Panics if l is nil.
//
// Parameters:
//   - l: the light
//   - opts: transform options
//
// Returns:
//   - LightNode: the new light node
func NewLightNode(l light.Light, opts ...NodeBuilderOption) LightNode {
	if l == nil {
		panic("scene: NewLightNode requires a light")
	}
	n := &lightNode{l: l}
	n.init(n, opts)
	return n
}

func (n *lightNode) Light() light.Light {
	return n.l
}

func (n *lightNode) Target() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.target
}

func (n *lightNode) SetTarget(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = mgl32.Vec3{x, y, z}
}

func (n *lightNode) GPULight() light.GPULight {
	pos := WorldPosition(n)
	g := light.GPULight{
		Position:   pos,
		LightType:  uint32(n.l.Type()),
		Color:      n.l.Color(),
		Intensity:  n.l.Intensity(),
		LightRange: n.l.Range(),
	}
	if dir := n.Target().Sub(pos); dir.Len() > 1e-6 {
		g.Direction = dir.Normalize()
	} else {
		g.Direction = mgl32.Vec3{0, -1, 0}
	}
	return g
}
