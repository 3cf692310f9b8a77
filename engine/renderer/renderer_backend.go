package renderer

import (
	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/charmbracelet/log"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// DrawItem is one mesh that survived culling, with its uniforms resolved for this frame.
type DrawItem struct {
	// Key identifies the mesh across frames so the backend can reuse its GPU resources.
	Key       scene.Mesh
	Model     model.Model
	ModelData model.GPUModelData
	Material  material.GPUMaterialParams
	Wireframe bool
}

// Frame is everything the backend needs to draw one image.
type Frame struct {
	ClearColor  common.Color
	Camera      camera.GPUCameraUniform
	Environment GPUEnvironment
	// Lights is the packed light uniform block (light.GPULightBlockSize bytes).
	Lights     []byte
	LightCount int
	Draws      []DrawItem
	// Skybox is drawn behind all geometry when non-nil.
	Skybox        *texture.Cube
	SkyboxUniform GPUSkyboxUniform
}

// RendererBackend executes frames on a concrete GPU API.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the MSAA and depth targets at the given
	// drawing-buffer size in physical pixels.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if a render target could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RenderFrame uploads the frame's uniforms, encodes one render pass and presents it.
	//
	// Parameters:
	//   - frame: the resolved frame
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or a resource failed
	RenderFrame(frame *Frame) error

	// Release frees every GPU object owned by the backend.
	Release()
}

// skyboxGuard remembers the last cube map whose upload failed so a broken cube is neither
// retried nor reported on every frame. A different cube clears the memory.
type skyboxGuard struct {
	failed *texture.Cube
}

// acquire runs upload for cube unless that same cube failed before.
//
// Parameters:
//   - cube: the frame's cube map, non-nil
//   - upload: prepares the GPU resources for cube
//   - logger: receives one warning per failed cube
//
// Returns:
//   - bool: true when the skybox can be drawn this frame
func (g *skyboxGuard) acquire(cube *texture.Cube, upload func(*texture.Cube) error, logger *log.Logger) bool {
	if cube == g.failed {
		return false
	}
	if err := upload(cube); err != nil {
		g.failed = cube
		logger.Warn("renderer: skybox disabled", "cube", cube.Name, "err", err)
		return false
	}
	g.failed = nil
	return true
}
