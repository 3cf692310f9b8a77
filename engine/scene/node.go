package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNilNode is returned when a nil node is added to the graph.
	ErrNilNode = errors.New("scene: nil node")

	// ErrCycle is returned when adding a node would make it its own ancestor.
	ErrCycle = errors.New("scene: node would become its own ancestor")

	// ErrAttached is returned when a node that already has a parent is added again.
	ErrAttached = errors.New("scene: node already has a parent")
)

// Node is an element of the scene graph with a local transform relative to its parent.
// Rotation is Euler angles in radians applied in X, Y, Z order.
type Node interface {
	// Name returns the node's identifier.
	Name() string

	// SetName sets the node's identifier.
	SetName(name string)

	// Parent returns the node this node is attached to, or nil for a root.
	Parent() Node

	// Children returns a copy of the node's direct children in insertion order.
	Children() []Node

	// Add attaches child under this node.
	//
	// Parameters:
	//   - child: the node to attach; must be parentless
	//
	// Returns:
	//   - error: ErrNilNode, ErrAttached or ErrCycle when the child cannot be attached
	Add(child Node) error

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	SetPosition(x, y, z float32)

	// Rotation returns the local Euler rotation in radians.
	Rotation() mgl32.Vec3

	// SetRotation sets the local Euler rotation in radians.
	SetRotation(x, y, z float32)

	// Scale returns the local scale.
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	SetScale(x, y, z float32)

	// Visible reports whether this node and its subtree are drawn.
	Visible() bool

	// SetVisible shows or hides this node and its subtree.
	SetVisible(visible bool)

	// LocalMatrix returns the node's transform relative to its parent.
	//
	// Returns:
	//   - mgl32.Mat4: translation * rotation(X, Y, Z) * scale
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the node's transform relative to the graph root.
	//
	// Returns:
	//   - mgl32.Mat4: parent world matrix * local matrix
	WorldMatrix() mgl32.Mat4

	base() *node
}

// node is the shared implementation embedded by every concrete node type.
// self points at the outermost value so overridden methods dispatch correctly.
type node struct {
	mu       sync.RWMutex
	self     Node
	name     string
	parent   Node
	children []Node
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	visible  bool
}

func (n *node) init(self Node, opts []NodeBuilderOption) {
	n.self = self
	n.scale = mgl32.Vec3{1, 1, 1}
	n.visible = true
	for _, opt := range opts {
		opt(n)
	}
}

func (n *node) base() *node {
	return n
}

func (n *node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

func (n *node) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *node) Add(child Node) error {
	if child == nil {
		return ErrNilNode
	}
	c := child.base()
	for anc := n.self; anc != nil; anc = anc.Parent() {
		if anc.base() == c {
			return fmt.Errorf("add %q to %q: %w", child.Name(), n.Name(), ErrCycle)
		}
	}
	c.mu.Lock()
	if c.parent != nil {
		c.mu.Unlock()
		return fmt.Errorf("add %q to %q: %w", child.Name(), n.Name(), ErrAttached)
	}
	c.parent = n.self
	c.mu.Unlock()

	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()
	return nil
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) SetPosition(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = mgl32.Vec3{x, y, z}
}

func (n *node) Rotation() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *node) SetRotation(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = mgl32.Vec3{x, y, z}
}

func (n *node) Scale() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *node) SetScale(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = mgl32.Vec3{x, y, z}
}

func (n *node) Visible() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}

func (n *node) SetVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = visible
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	n.mu.RLock()
	p, r, s := n.position, n.rotation, n.scale
	n.mu.RUnlock()
	return composeTRS(p, r, s)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	local := n.self.LocalMatrix()
	if parent := n.Parent(); parent != nil {
		return parent.WorldMatrix().Mul4(local)
	}
	return local
}

// composeTRS builds translation * Rx * Ry * Rz * scale.
func composeTRS(p, r, s mgl32.Vec3) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(r.X()).
		Mul4(mgl32.HomogRotate3DY(r.Y())).
		Mul4(mgl32.HomogRotate3DZ(r.Z()))
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// WorldPosition returns the translation column of a node's world matrix.
//
// Parameters:
//   - n: the node to locate
//
// Returns:
//   - mgl32.Vec3: the node's origin in world space
func WorldPosition(n Node) mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// Group is a transform-only node used to parent other nodes.
type Group interface {
	Node
}

type group struct {
	node
}

var _ Group = &group{}

// NewGroup creates an empty transform node.
func NewGroup(opts ...NodeBuilderOption) Group {
	g := &group{}
	g.init(g, opts)
	return g
}
