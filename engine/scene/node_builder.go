package scene

import "github.com/go-gl/mathgl/mgl32"

// NodeBuilderOption configures the shared transform state of any node during construction.
type NodeBuilderOption func(*node)

// WithName sets the node's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithPosition sets the initial local translation.
//
// Parameters:
//   - x, y, z: the translation
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis, applied in X, Y, Z order
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial local scale.
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = mgl32.Vec3{x, y, z}
	}
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *node) {
		n.visible = visible
	}
}
