package renderer

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/charmbracelet/log"
)

type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	frames      []*Frame
	renderErr   error
	released    bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) RenderFrame(frame *Frame) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeBackend) Release() { f.released = true }

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) (Renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	opts = append([]RendererBuilderOption{WithBackend(fb), WithLogger(log.New(io.Discard))}, opts...)
	r, err := NewRenderer(nil, opts...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, fb
}

func TestDrawingBufferSize(t *testing.T) {
	tests := []struct {
		w, h  int
		ratio float32
		wantW int
		wantH int
	}{
		{1024, 768, 1, 1024, 768},
		{1024, 768, 2, 2048, 1536},
		{1001, 501, 1.5, 1502, 752},
		{1, 1, 0.25, 1, 1},
	}
	for _, tt := range tests {
		w, h := DrawingBufferSize(tt.w, tt.h, tt.ratio)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("DrawingBufferSize(%d, %d, %v) = %dx%d, want %dx%d", tt.w, tt.h, tt.ratio, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r, fb := newTestRenderer(t)

	if got := r.ClearColor(); got != (common.Color{0, 0, 0, 1}) {
		t.Errorf("ClearColor = %v, want opaque black", got)
	}
	if r.PixelRatio() != 1 {
		t.Errorf("PixelRatio = %v, want 1", r.PixelRatio())
	}
	if fb.presentMode != PresentModeVSync {
		t.Errorf("present mode = %v, want vsync", fb.presentMode)
	}
	if _, err := NewRenderer(nil); err == nil {
		t.Error("NewRenderer without surface or backend should fail")
	}
}

func TestSetSizeReconfiguresOnlyOnChange(t *testing.T) {
	r, fb := newTestRenderer(t)

	r.SetSize(800, 600)
	r.SetSize(800, 600)
	if len(fb.configured) != 1 || fb.configured[0] != [2]int{800, 600} {
		t.Fatalf("configured = %v, want one 800x600 call", fb.configured)
	}

	r.SetPixelRatio(2)
	if w, h := r.DrawingBufferSize(); w != 1600 || h != 1200 {
		t.Errorf("DrawingBufferSize = %dx%d, want 1600x1200", w, h)
	}
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %dx%d, want logical 800x600", w, h)
	}

	r.SetSize(0, 600)
	r.SetSize(800, -1)
	if len(fb.configured) != 2 {
		t.Errorf("invalid sizes should be ignored, configured = %v", fb.configured)
	}
}

func TestSetSizeAndRatioConfiguresOnce(t *testing.T) {
	r, fb := newTestRenderer(t)
	r.SetSizeAndRatio(1024, 768, 1)
	fb.configured = nil

	r.SetSizeAndRatio(800, 600, 2)
	if len(fb.configured) != 1 || fb.configured[0] != [2]int{1600, 1200} {
		t.Fatalf("configured = %v, want one 1600x1200 call", fb.configured)
	}
	if w, h := r.Size(); w != 800 || h != 600 || r.PixelRatio() != 2 {
		t.Errorf("Size = %dx%d ratio %v, want 800x600 ratio 2", w, h, r.PixelRatio())
	}

	// Same drawing buffer reached through a different split.
	r.SetSizeAndRatio(1600, 1200, 1)
	if len(fb.configured) != 1 {
		t.Errorf("unchanged drawing buffer reconfigured: %v", fb.configured)
	}

	r.SetSizeAndRatio(0, 600, 2)
	if w, _ := r.Size(); w != 1600 {
		t.Errorf("invalid size applied: width %d", w)
	}
	r.SetSizeAndRatio(640, 480, float32(math.NaN()))
	if r.PixelRatio() != 1 {
		t.Errorf("invalid ratio applied: %v", r.PixelRatio())
	}
	if w, h := r.DrawingBufferSize(); w != 640 || h != 480 {
		t.Errorf("DrawingBufferSize = %dx%d, want 640x480", w, h)
	}
}

func TestSetPixelRatioIgnoresInvalid(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.SetPixelRatio(1.5)

	for _, bad := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		r.SetPixelRatio(bad)
		if r.PixelRatio() != 1.5 {
			t.Fatalf("SetPixelRatio(%v) changed ratio to %v", bad, r.PixelRatio())
		}
	}
}

func TestRenderRejectsNilArguments(t *testing.T) {
	r, _ := newTestRenderer(t)
	cam := camera.NewCamera()

	if err := r.Render(nil, cam); !errors.Is(err, ErrNilScene) {
		t.Errorf("Render(nil scene) = %v, want ErrNilScene", err)
	}
	if err := r.Render(scene.NewScene(), nil); !errors.Is(err, ErrNilCamera) {
		t.Errorf("Render(nil camera) = %v, want ErrNilCamera", err)
	}
}

func TestRenderSkipsUntilSized(t *testing.T) {
	r, fb := newTestRenderer(t)

	if err := r.Render(scene.NewScene(), camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(fb.frames) != 0 {
		t.Errorf("frames submitted before SetSize: %d", len(fb.frames))
	}
}

func testScene(t *testing.T) (scene.Scene, scene.Mesh) {
	t.Helper()
	s := scene.NewScene(scene.WithFog(scene.DefaultFog()))

	visible := scene.NewMesh(model.NewBox(1, 1, 1), material.NewMaterial(material.WithWireframe(true)))
	behind := scene.NewMesh(model.NewBox(1, 1, 1), material.NewMaterial(), scene.WithPosition(0, 0, 50))
	sun := scene.NewLightNode(light.NewLight(light.LightTypeDirectional), scene.WithPosition(0, 2000, 0))

	for _, n := range []scene.Node{visible, behind, sun} {
		if err := s.Add(n); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return s, visible
}

func TestRenderBuildsFrame(t *testing.T) {
	r, fb := newTestRenderer(t, WithClearColor(common.Hex(0x102030)), WithAmbient(0.2))
	r.SetSize(640, 480)
	s, visible := testScene(t)
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithAspect(640.0/480.0))

	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(fb.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(fb.frames))
	}
	f := fb.frames[0]

	if f.ClearColor != common.Hex(0x102030) {
		t.Errorf("ClearColor = %v", f.ClearColor)
	}
	if len(f.Draws) != 1 || f.Draws[0].Key != visible {
		t.Fatalf("draws = %+v, want only the mesh in front of the camera", f.Draws)
	}
	if !f.Draws[0].Wireframe {
		t.Error("wireframe flag not carried from material")
	}
	if f.LightCount != 1 || len(f.Lights) != light.GPULightBlockSize {
		t.Errorf("lights = %d (%d bytes)", f.LightCount, len(f.Lights))
	}
	if f.Environment.Ambient != 0.2 {
		t.Errorf("ambient = %v, want 0.2", f.Environment.Ambient)
	}
	if f.Environment.FogNear != 1000 || f.Environment.FogFar != 10000 || f.Environment.FogColor[3] != 1 {
		t.Errorf("fog = %+v", f.Environment)
	}
	if f.Skybox != nil {
		t.Error("skybox set without a cube")
	}

	stats := r.Stats()
	if stats.Frames != 1 || stats.Drawn != 1 || stats.Culled != 1 || stats.Lights != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRenderWithoutCulling(t *testing.T) {
	r, fb := newTestRenderer(t, WithCulling(false))
	r.SetSize(640, 480)
	s, _ := testScene(t)

	if err := r.Render(s, camera.NewCamera(camera.WithPosition(0, 0, 10))); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := len(fb.frames[0].Draws); got != 2 {
		t.Errorf("draws = %d, want 2 with culling disabled", got)
	}
}

func TestRenderWrapsBackendError(t *testing.T) {
	r, fb := newTestRenderer(t)
	r.SetSize(10, 10)
	boom := errors.New("surface lost")
	fb.renderErr = boom

	err := r.Render(scene.NewScene(), camera.NewCamera())
	if !errors.Is(err, boom) {
		t.Fatalf("Render error = %v, want wrapped %v", err, boom)
	}
	if r.Stats().Frames != 0 {
		t.Error("failed frame should not be counted")
	}
}

func TestSetPresentModeReconfiguresSizedSurface(t *testing.T) {
	r, fb := newTestRenderer(t)

	r.SetPresentMode(PresentModeUncapped)
	if len(fb.configured) != 0 {
		t.Error("unsized surface should not be configured")
	}
	r.SetSize(100, 100)
	r.SetPresentMode(PresentModeVSync)
	if fb.presentMode != PresentModeVSync || len(fb.configured) != 2 {
		t.Errorf("present mode = %v, configured = %v", fb.presentMode, fb.configured)
	}

	r.Release()
	if !fb.released {
		t.Error("Release not forwarded to backend")
	}
}

func TestSkyboxGuardSkipsFailedCube(t *testing.T) {
	var g skyboxGuard
	logger := log.New(io.Discard)
	broken := &texture.Cube{Name: "broken_"}
	other := &texture.Cube{Name: "sky_"}
	uploads := map[*texture.Cube]int{}
	fail := true
	upload := func(c *texture.Cube) error {
		uploads[c]++
		if fail && c == broken {
			return errors.New("upload failed")
		}
		return nil
	}

	for range 5 {
		if g.acquire(broken, upload, logger) {
			t.Fatal("acquire() = true for a failing cube")
		}
	}
	if uploads[broken] != 1 {
		t.Errorf("failing cube uploaded %d times, want 1", uploads[broken])
	}

	if !g.acquire(other, upload, logger) || !g.acquire(other, upload, logger) {
		t.Fatal("acquire() = false for a working cube")
	}

	// Switching away forgets the failure, so the cube gets one more attempt.
	fail = false
	if !g.acquire(broken, upload, logger) {
		t.Error("acquire() = false after the cube was fixed and reselected")
	}
	if uploads[broken] != 2 {
		t.Errorf("failing cube uploaded %d times, want 2", uploads[broken])
	}
}
