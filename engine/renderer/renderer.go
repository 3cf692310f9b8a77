package renderer

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNilScene is returned by Render when no scene is given.
	ErrNilScene = errors.New("renderer: nil scene")

	// ErrNilCamera is returned by Render when no camera is given.
	ErrNilCamera = errors.New("renderer: nil camera")
)

// SurfaceSource provides the platform surface the WebGPU backend presents to.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// FrameStats reports what the most recent Render call did.
type FrameStats struct {
	Frames uint64
	Drawn  int
	Culled int
	Lights int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	backend RendererBackend
	logger  *log.Logger

	width, height int
	pixelRatio    float32
	bufferW       int
	bufferH       int
	clearColor    common.Color
	ambient       float32
	culling       bool
	stats         FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws a scene graph from a camera into the window surface.
//
// Sizes passed to SetSize are logical (window coordinates); the drawing buffer is that size
// multiplied by the pixel ratio and rounded, so a 1024×768 window at ratio 2 renders
// 2048×1536 pixels.
type Renderer interface {
	// Render draws one frame of s as seen by cam and presents it.
	//
	// Parameters:
	//   - s: the scene root
	//   - cam: the viewpoint
	//
	// Returns:
	//   - error: ErrNilScene, ErrNilCamera, or a wrapped backend failure
	Render(s scene.Scene, cam camera.Camera) error

	// SetSize sets the logical output size and reconfigures the drawing buffer.
	// Non-positive dimensions are ignored.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	SetSize(width, height int)

	// Size returns the logical output size.
	Size() (width, height int)

	// SetPixelRatio sets the physical-pixels-per-logical-pixel multiplier and reconfigures the
	// drawing buffer. Non-positive or non-finite values are ignored.
	SetPixelRatio(ratio float32)

	// PixelRatio returns the current pixel ratio.
	PixelRatio() float32

	// SetSizeAndRatio applies a logical size and pixel ratio together, so the surface is
	// reconfigured at most once. An invalid size is ignored entirely; an invalid ratio
	// keeps the current one.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	//   - ratio: pixel ratio
	SetSizeAndRatio(width, height int, ratio float32)

	// DrawingBufferSize returns the surface size in physical pixels.
	DrawingBufferSize() (width, height int)

	// SetClearColor sets the color the frame is cleared to before drawing.
	SetClearColor(c common.Color)

	// ClearColor returns the current clear color.
	ClearColor() common.Color

	// SetPresentMode switches between vsync and uncapped presentation.
	SetPresentMode(mode PresentMode)

	// Stats returns counters for the most recent frame.
	Stats() FrameStats

	// Release frees GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer presenting to the given surface. Unless WithBackend is
// given, a WebGPU backend is created for surface.
//
// Parameters:
//   - surface: the platform surface source, typically the window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no GPU adapter or device could be obtained
func NewRenderer(surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		logger:     log.Default(),
		pixelRatio: 1,
		clearColor: common.Color{0, 0, 0, 1},
		culling:    true,
		msaa:       MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		if surface == nil {
			return nil, errors.New("renderer: no surface and no backend")
		}
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.logger)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	}
	r.backend.SetPresentMode(r.presentMode)
	return r, nil
}

func (r *renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		r.logger.Warn("renderer: ignoring invalid size", "width", width, "height", height)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.reconfigure()
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	if !(ratio > 0) || math.IsInf(float64(ratio), 0) {
		r.logger.Warn("renderer: ignoring invalid pixel ratio", "ratio", ratio)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pixelRatio = ratio
	r.reconfigure()
}

func (r *renderer) SetSizeAndRatio(width, height int, ratio float32) {
	if width <= 0 || height <= 0 {
		r.logger.Warn("renderer: ignoring invalid size", "width", width, "height", height)
		return
	}
	validRatio := ratio > 0 && !math.IsInf(float64(ratio), 0)
	if !validRatio {
		r.logger.Warn("renderer: ignoring invalid pixel ratio", "ratio", ratio)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	if validRatio {
		r.pixelRatio = ratio
	}
	r.reconfigure()
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferW, r.bufferH
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.bufferW > 0 && r.bufferH > 0 {
		if err := r.backend.ConfigureSurface(r.bufferW, r.bufferH); err != nil {
			r.logger.Error("renderer: reconfigure after present mode change", "err", err)
		}
	}
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}

// reconfigure resizes the surface when the drawing-buffer size changed. Caller must hold the mutex.
func (r *renderer) reconfigure() {
	if r.width <= 0 || r.height <= 0 {
		return
	}
	w, h := DrawingBufferSize(r.width, r.height, r.pixelRatio)
	if w == r.bufferW && h == r.bufferH {
		return
	}
	if err := r.backend.ConfigureSurface(w, h); err != nil {
		r.logger.Error("renderer: configure surface", "width", w, "height", h, "err", err)
		return
	}
	r.bufferW, r.bufferH = w, h
	r.logger.Debug("renderer: surface configured", "width", w, "height", h, "ratio", r.pixelRatio)
}

// DrawingBufferSize converts a logical size to physical pixels at the given ratio.
// Each dimension is rounded to the nearest pixel and never drops below 1.
//
// Parameters:
//   - width, height: logical size
//   - ratio: pixel ratio
//
// Returns:
//   - int, int: physical width and height
func DrawingBufferSize(width, height int, ratio float32) (int, int) {
	w := int(math.Round(float64(width) * float64(ratio)))
	h := int(math.Round(float64(height) * float64(ratio)))
	return max(w, 1), max(h, 1)
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if s == nil {
		return ErrNilScene
	}
	if cam == nil {
		return ErrNilCamera
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bufferW == 0 || r.bufferH == 0 {
		return nil
	}

	frame := r.buildFrame(s, cam)
	if err := r.backend.RenderFrame(frame); err != nil {
		return fmt.Errorf("render frame %d: %w", r.stats.Frames, err)
	}
	r.stats.Frames++
	return nil
}

// buildFrame resolves the scene into backend draw data. Caller must hold the mutex.
func (r *renderer) buildFrame(s scene.Scene, cam camera.Camera) *Frame {
	viewProj := cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustum(viewProj[:])

	frame := &Frame{
		ClearColor: r.clearColor,
		Camera:     cam.Uniform(),
		Environment: GPUEnvironment{
			Ambient: r.ambient,
		},
	}

	if fog := s.Fog(); fog != nil {
		frame.Environment.FogColor = fog.Color.WithAlpha(1)
		frame.Environment.FogNear = fog.Near
		frame.Environment.FogFar = fog.Far
	}

	culled := 0
	for _, m := range s.Meshes() {
		world := m.WorldMatrix()
		if r.culling {
			center := world.Col(3).Vec3()
			if !frustum.IntersectsSphere(center, m.Model().BoundingRadius()*maxAxisScale(world)) {
				culled++
				continue
			}
		}
		mat := m.Material()
		frame.Draws = append(frame.Draws, DrawItem{
			Key:   m,
			Model: m.Model(),
			ModelData: model.GPUModelData{
				Model:  world,
				Normal: world.Inv().Transpose(),
			},
			Material:  mat.Params(),
			Wireframe: mat.Wireframe(),
		})
	}

	lightNodes := s.Lights()
	gpuLights := make([]light.GPULight, 0, len(lightNodes))
	for _, ln := range lightNodes {
		gpuLights = append(gpuLights, ln.GPULight())
	}
	frame.Lights, frame.LightCount = light.MarshalLightBlock(gpuLights)
	if len(lightNodes) > frame.LightCount && r.stats.Frames == 0 {
		r.logger.Warn("renderer: too many lights, extra lights ignored", "lights", len(lightNodes), "max", light.MaxGPULights)
	}

	if sky := s.Skybox(); sky != nil {
		frame.Skybox = sky
		eye := frame.Camera.CameraPosition
		frame.SkyboxUniform = GPUSkyboxUniform{
			InvViewProj: mgl32.Mat4(viewProj).Inv(),
			Eye:         [4]float32{eye[0], eye[1], eye[2], 0},
		}
	}

	r.stats.Drawn = len(frame.Draws)
	r.stats.Culled = culled
	r.stats.Lights = frame.LightCount
	return frame
}

// maxAxisScale returns the largest basis-vector length of m's upper 3×3.
func maxAxisScale(m mgl32.Mat4) float32 {
	return max(m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len())
}
