package scene

import (
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraNode puts a camera into the graph so other nodes (such as a headlight) can be
// parented to it. Its local transform is the inverse of the camera's view matrix; the
// node's own position, rotation and scale are ignored.
type CameraNode interface {
	Node

	// Camera returns the wrapped camera.
	Camera() camera.Camera
}

type cameraNode struct {
	node
	cam camera.Camera
}

var _ CameraNode = &cameraNode{}

// NewCameraNode wraps cam in a scene node. Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to wrap
//   - opts: node options (name, visibility)
//
// Returns:
//   - CameraNode: the new camera node
func NewCameraNode(cam camera.Camera, opts ...NodeBuilderOption) CameraNode {
	if cam == nil {
		panic("scene: NewCameraNode requires a camera")
	}
	n := &cameraNode{cam: cam}
	n.init(n, opts)
	return n
}

func (n *cameraNode) Camera() camera.Camera {
	return n.cam
}

func (n *cameraNode) LocalMatrix() mgl32.Mat4 {
	return mgl32.Mat4(n.cam.ViewMatrix()).Inv()
}
