package engine

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/Carmen-Shannon/oxy-stage/engine/window"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeLoader struct {
	cube  *texture.Cube
	err   error
	bases []string
}

func (f *fakeLoader) Load(path string) (*texture.Texture, error) {
	return nil, errors.New("not used")
}

func (f *fakeLoader) LoadCube(base string) (*texture.Cube, error) {
	f.bases = append(f.bases, base)
	return f.cube, f.err
}

func (f *fakeLoader) Cached(path string) bool {
	return false
}

// fakeWindow is a headless window. ProcessMessages drains the frame queue a fixed number
// of times and returns, as if the user closed the window.
type fakeWindow struct {
	w, h       int
	density    float32
	iterations int
	events     *[]string

	resize  []func()
	frames  []func()
	move    func(x, y float32)
	running bool
	closed  bool
}

func (f *fakeWindow) OnResize(fn func()) {
	*f.events = append(*f.events, "subscribe resize")
	f.resize = append(f.resize, fn)
}

func (f *fakeWindow) RequestFrame(fn func()) {
	*f.events = append(*f.events, "request frame")
	f.frames = append(f.frames, fn)
}

func (f *fakeWindow) SetScrollCallback(func(delta float32))                                   {}
func (f *fakeWindow) SetMouseButtonCallback(func(window.MouseButton, bool, float32, float32)) {}
func (f *fakeWindow) SetMouseMoveCallback(fn func(x, y float32))                              { f.move = fn }
func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                              { return nil }
func (f *fakeWindow) IsRunning() bool                                                         { return f.running }
func (f *fakeWindow) Size() (int, int)                                                        { return f.w, f.h }
func (f *fakeWindow) PixelDensity() float32                                                   { return f.density }

func (f *fakeWindow) Close() error {
	f.closed = true
	return nil
}

func (f *fakeWindow) ProcessMessages() {
	f.running = true
	for range f.iterations {
		queued := f.frames
		f.frames = nil
		for _, fn := range queued {
			fn()
		}
	}
	f.running = false
}

type fakeBackend struct {
	events *[]string
	frames []*renderer.Frame
}

func (b *fakeBackend) ConfigureSurface(width, height int) error {
	*b.events = append(*b.events, fmt.Sprintf("configure %dx%d", width, height))
	return nil
}

func (b *fakeBackend) SetPresentMode(renderer.PresentMode) {}

func (b *fakeBackend) RenderFrame(frame *renderer.Frame) error {
	b.frames = append(b.frames, frame)
	return nil
}

func (b *fakeBackend) Release() {}

func newHeadlessSession(t *testing.T, win *fakeWindow, backend *fakeBackend) Session {
	t.Helper()
	s, err := NewSession(
		WithLogger(log.New(io.Discard)),
		WithRandom(fixedIntN(0)),
		WithWindowConstructor(func(...window.WindowBuilderOption) (window.Window, error) {
			return win, nil
		}),
		WithRendererConstructor(func(surface renderer.SurfaceSource, opts ...renderer.RendererBuilderOption) (renderer.Renderer, error) {
			if surface != win {
				t.Error("renderer surface is not the session window")
			}
			return renderer.NewRenderer(surface, append(opts, renderer.WithBackend(backend))...)
		}),
	)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestNewSessionWiresResizeBeforeFrames(t *testing.T) {
	var events []string
	win := &fakeWindow{w: 640, h: 480, density: 1, iterations: 3, events: &events}
	backend := &fakeBackend{events: &events}
	s := newHeadlessSession(t, win, backend)

	if slices.Contains(events, "request frame") {
		t.Fatalf("frame requested before Run: %v", events)
	}
	if !slices.Contains(events, "configure 640x480") {
		t.Errorf("surface not configured from the window size: %v", events)
	}
	if got := s.Camera().Aspect(); got != float32(640)/480 {
		t.Errorf("camera aspect = %v, want %v", got, float32(640)/480)
	}
	if win.move == nil {
		t.Error("pointer controls not attached to the window")
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	subscribed := slices.Index(events, "subscribe resize")
	requested := slices.Index(events, "request frame")
	if subscribed < 0 || requested < 0 || subscribed > requested {
		t.Errorf("resize handler must be registered before the first frame request: %v", events)
	}
	if !s.Scheduler().Stopped() || s.Scheduler().Frames() != 3 {
		t.Errorf("scheduler stopped=%v frames=%d, want stopped after 3", s.Scheduler().Stopped(), s.Scheduler().Frames())
	}

	win.w, win.h = 800, 400
	for _, fn := range win.resize {
		fn()
	}
	if got := s.Camera().Aspect(); got != 2 {
		t.Errorf("camera aspect after resize = %v, want 2", got)
	}
	if events[len(events)-1] != "configure 800x400" {
		t.Errorf("last event = %q, want configure 800x400", events[len(events)-1])
	}

	if err := s.Close(); err != nil || !win.closed {
		t.Errorf("Close() = %v, window closed = %v", err, win.closed)
	}
}

func TestNewSessionSteppedCameraIsRenderedCamera(t *testing.T) {
	var events []string
	win := &fakeWindow{w: 640, h: 480, density: 1, iterations: 2, events: &events}
	backend := &fakeBackend{events: &events}
	s := newHeadlessSession(t, win, backend)
	defer s.Close()

	cam := s.Camera()
	before := cam.Position()
	cam.Controller().Rotate(0.5, 0)

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(backend.frames) != 2 {
		t.Fatalf("rendered %d frames, want 2", len(backend.frames))
	}
	if cam.Position() == before {
		t.Error("camera was not updated by the frame loop")
	}
	last := backend.frames[len(backend.frames)-1].Camera
	want := cam.Uniform()
	if last.ViewProj != want.ViewProj || last.CameraPosition != want.CameraPosition {
		t.Errorf("rendered camera uniform %+v, want the session camera's %+v", last, want)
	}
}

func newTestSession(t *testing.T, loader texture.Loader, base string) *session {
	t.Helper()
	st, err := BuildStage(PresetFloor, NewStageCamera(1), fixedIntN(0))
	if err != nil {
		t.Fatalf("BuildStage: %v", err)
	}
	return &session{
		logger:        log.New(io.Discard),
		cubeMapBase:   base,
		textureLoader: loader,
		stage:         st,
	}
}

func TestLoadSkyboxSetsSceneSkybox(t *testing.T) {
	face := &texture.Texture{Name: "f", Width: 1, Height: 1, Pixels: make([]byte, 4)}
	cube := &texture.Cube{Name: "sky", Faces: [6]*texture.Texture{face, face, face, face, face, face}}
	loader := &fakeLoader{cube: cube}

	s := newTestSession(t, loader, "textures/sky_")
	s.loadSkybox()

	if len(loader.bases) != 1 || loader.bases[0] != "textures/sky_" {
		t.Errorf("LoadCube calls = %v, want [textures/sky_]", loader.bases)
	}
	if s.Scene().Skybox() != cube {
		t.Error("Scene().Skybox() was not set to the loaded cube")
	}
}

func TestLoadSkyboxFailureIsIgnored(t *testing.T) {
	loader := &fakeLoader{err: errors.New("missing face")}
	s := newTestSession(t, loader, "nowhere/")
	s.loadSkybox()

	if s.Scene().Skybox() != nil {
		t.Error("Skybox set after a failed load")
	}
}

func TestLoadSkyboxDisabledWithoutBase(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestSession(t, loader, "")
	s.loadSkybox()

	if len(loader.bases) != 0 {
		t.Errorf("LoadCube called %d times without a base", len(loader.bases))
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	s := &session{logger: log.New(io.Discard)}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := s.Run(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Run() after Close = %v, want ErrSessionClosed", err)
	}
}
