package scene

import "github.com/Carmen-Shannon/oxy-stage/engine/texture"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithFog sets the initial scene fog.
//
// Parameters:
//   - f: the fog settings, or nil for none
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(f *Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = f
	}
}

// WithSkybox sets the initial cube texture background.
func WithSkybox(c *texture.Cube) SceneBuilderOption {
	return func(s *scene) {
		s.skybox = c
	}
}

// WithSceneName sets the root node's identifier.
func WithSceneName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}
