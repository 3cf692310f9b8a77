package engine

import (
	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stage/engine/texture"
	"github.com/charmbracelet/log"
)

// SessionBuilderOption is a functional option applied to a session during NewSession.
type SessionBuilderOption func(*session)

// WithTitle sets the window title.
func WithTitle(title string) SessionBuilderOption {
	return func(s *session) {
		s.title = title
	}
}

// WithSize sets the initial logical window size. Non-positive values keep the default.
//
// Parameters:
//   - width: window width
//   - height: window height
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithSize(width, height int) SessionBuilderOption {
	return func(s *session) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithPreset selects the stage content. Defaults to PresetFloor.
func WithPreset(p Preset) SessionBuilderOption {
	return func(s *session) {
		s.preset = p
	}
}

// WithVSync paces frames to the display refresh when true (the default) and presents
// uncapped otherwise.
func WithVSync(vsync bool) SessionBuilderOption {
	return func(s *session) {
		if vsync {
			s.presentMode = renderer.PresentModeVSync
		} else {
			s.presentMode = renderer.PresentModeUncapped
		}
	}
}

// WithMSAA sets the anti-aliasing sample count.
func WithMSAA(count renderer.MSAASampleCount) SessionBuilderOption {
	return func(s *session) {
		s.msaa = count
	}
}

// WithForceSoftwareRenderer requests a CPU fallback GPU adapter.
func WithForceSoftwareRenderer(force bool) SessionBuilderOption {
	return func(s *session) {
		s.forceSoftware = force
	}
}

// WithProfiling enables the once-per-second FPS and memory report.
func WithProfiling(enabled bool) SessionBuilderOption {
	return func(s *session) {
		s.profiling = enabled
	}
}

// WithCubeMap sets the path prefix of six skybox faces, e.g. "textures/sky_" for
// textures/sky_FRONT.jpg and so on. Empty disables the skybox.
func WithCubeMap(base string) SessionBuilderOption {
	return func(s *session) {
		s.cubeMapBase = base
	}
}

// WithTextureLoader replaces the loader used for the skybox.
func WithTextureLoader(l texture.Loader) SessionBuilderOption {
	return func(s *session) {
		s.textureLoader = l
	}
}

// WithRandom sets the random source used to pick preset colors.
func WithRandom(rnd common.IntNSource) SessionBuilderOption {
	return func(s *session) {
		s.rnd = rnd
	}
}

// WithClearColor sets the background color behind the scene. Defaults to opaque black.
func WithClearColor(c common.Color) SessionBuilderOption {
	return func(s *session) {
		s.clearColor = c
	}
}

// WithLogger sets the logger shared by every component of the session.
func WithLogger(logger *log.Logger) SessionBuilderOption {
	return func(s *session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWindowConstructor replaces the function that opens the host window.
func WithWindowConstructor(fn WindowConstructor) SessionBuilderOption {
	return func(s *session) {
		if fn != nil {
			s.newWindow = fn
		}
	}
}

// WithRendererConstructor replaces the function that creates the renderer. The constructor
// receives the session window as its surface and the session's renderer options.
func WithRendererConstructor(fn RendererConstructor) SessionBuilderOption {
	return func(s *session) {
		if fn != nil {
			s.newRenderer = fn
		}
	}
}
