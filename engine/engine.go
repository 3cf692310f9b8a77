package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/loop"
	"github.com/Carmen-Shannon/oxy-stage/engine/profiler"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/Carmen-Shannon/oxy-stage/engine/viewport"
	"github.com/Carmen-Shannon/oxy-stage/engine/window"
	"github.com/charmbracelet/log"
)

// ErrSessionClosed is returned by Run after Close.
var ErrSessionClosed = errors.New("engine: session closed")

// WindowConstructor opens the host window. window.NewWindow is the default.
type WindowConstructor func(options ...window.WindowBuilderOption) (window.Window, error)

// RendererConstructor creates the renderer presenting into surface. renderer.NewRenderer is
// the default.
type RendererConstructor func(surface renderer.SurfaceSource, options ...renderer.RendererBuilderOption) (renderer.Renderer, error)

// session implements the Session interface.
// It owns every component of one stage run and wires them together.
type session struct {
	logger *log.Logger

	// Pre-creation config collected from builder options
	title         string
	width, height int
	preset        Preset
	presentMode   renderer.PresentMode
	msaa          renderer.MSAASampleCount
	forceSoftware bool
	profiling     bool
	cubeMapBase   string
	rnd           common.IntNSource
	textureLoader texture.Loader
	clearColor    common.Color
	newWindow     WindowConstructor
	newRenderer   RendererConstructor

	window    window.Window
	renderer  renderer.Renderer
	camera    camera.Camera
	stage     *Stage
	viewport  viewport.Synchronizer
	scheduler loop.Scheduler
	controls  *pointerControls
	profiler  *profiler.Profiler

	closed bool
}

// Session is one run of the stage: a window, a renderer presenting into it, the stage scene
// and camera, the viewport synchronizer and the frame scheduler.
type Session interface {
	// Window returns the host window.
	Window() window.Window

	// Renderer returns the renderer presenting into the window.
	Renderer() renderer.Renderer

	// Camera returns the stage camera.
	Camera() camera.Camera

	// Scene returns the stage scene root.
	Scene() scene.Scene

	// Synchronizer returns the viewport synchronizer.
	Synchronizer() viewport.Synchronizer

	// Scheduler returns the frame scheduler.
	Scheduler() loop.Scheduler

	// Run starts the frame loop and blocks until the window closes. Must be called on the
	// goroutine that created the session.
	//
	// Returns:
	//   - error: an error if the loop could not start
	Run() error

	// Close stops the loop and releases the renderer and window. Safe to call more than once.
	//
	// Returns:
	//   - error: an error if the window could not be closed
	Close() error
}

var _ Session = &session{}

// NewSession opens the window, creates the renderer, builds the stage and registers the
// resize and pointer handlers. The calling goroutine must be the main thread.
//
// Parameters:
//   - options: variadic list of SessionBuilderOption functions
//
// Returns:
//   - Session: the ready session
//   - error: an error if the window or GPU could not be initialized
func NewSession(options ...SessionBuilderOption) (Session, error) {
	s := &session{
		logger:      log.Default(),
		title:       "oxy-stage",
		width:       1280,
		height:      720,
		preset:      PresetFloor,
		presentMode: renderer.PresentModeVSync,
		msaa:        renderer.MSAA4x,
		clearColor:  common.Color{0, 0, 0, 1},
		newWindow:   window.NewWindow,
		newRenderer: renderer.NewRenderer,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	win, err := s.newWindow(
		window.WithTitle(s.title),
		window.WithSize(s.width, s.height),
		window.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.window = win

	if err := s.init(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) init() error {
	r, err := s.newRenderer(s.window,
		renderer.WithPresentMode(s.presentMode),
		renderer.WithMSAA(s.msaa),
		renderer.WithForceSoftwareRenderer(s.forceSoftware),
		renderer.WithClearColor(s.clearColor),
		renderer.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	s.renderer = r

	w, h := s.window.Size()
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	s.camera = NewStageCamera(aspect)

	st, err := BuildStage(s.preset, s.camera, s.rnd)
	if err != nil {
		return fmt.Errorf("build %s stage: %w", s.preset, err)
	}
	s.stage = st
	s.loadSkybox()

	s.controls = newPointerControls(s.camera.Controller(), s.camera, s.logger)
	s.controls.attach(s.window)

	s.viewport = viewport.NewSynchronizer(s.window, s.camera, s.renderer, viewport.WithLogger(s.logger))
	if err := s.viewport.Register(s.window); err != nil {
		return fmt.Errorf("register resize handler: %w", err)
	}

	opts := []loop.SchedulerBuilderOption{
		loop.WithUpdater(s.camera),
		loop.WithLogger(s.logger),
	}
	for _, a := range st.Animations {
		opts = append(opts, loop.WithAnimation(a))
	}
	if s.profiling {
		s.profiler = profiler.NewProfiler(profiler.WithLogger(s.logger))
		opts = append(opts, loop.WithProfiler(s.profiler))
	}
	s.scheduler = loop.NewScheduler(s.window, s.renderer, st.Scene, s.camera, opts...)

	s.logger.Info("session ready", "preset", s.preset, "width", w, "height", h, "ratio", s.viewport.PixelRatio())
	return nil
}

// loadSkybox loads the optional cube map. Failures are logged and the stage runs without it.
func (s *session) loadSkybox() {
	if s.cubeMapBase == "" {
		return
	}
	loader := s.textureLoader
	if loader == nil {
		loader = texture.NewLoader(texture.WithLogger(s.logger))
	}
	cube, err := loader.LoadCube(s.cubeMapBase)
	if err != nil {
		s.logger.Warn("skybox not loaded", "base", s.cubeMapBase, "err", err)
		return
	}
	s.stage.Scene.SetSkybox(cube)
	s.logger.Info("skybox loaded", "base", s.cubeMapBase, "size", cube.Size())
}

func (s *session) Window() window.Window {
	return s.window
}

func (s *session) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *session) Camera() camera.Camera {
	return s.camera
}

func (s *session) Scene() scene.Scene {
	if s.stage == nil {
		return nil
	}
	return s.stage.Scene
}

func (s *session) Synchronizer() viewport.Synchronizer {
	return s.viewport
}

func (s *session) Scheduler() loop.Scheduler {
	return s.scheduler
}

func (s *session) Run() error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	s.window.ProcessMessages()
	s.scheduler.Stop()
	s.logger.Info("session finished", "frames", s.scheduler.Frames(), "failed", s.scheduler.Failures())
	return nil
}

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.renderer != nil {
		s.renderer.Release()
	}
	if s.window != nil {
		if err := s.window.Close(); err != nil {
			return fmt.Errorf("close window: %w", err)
		}
	}
	return nil
}
