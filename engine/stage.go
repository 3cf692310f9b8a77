package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
	"github.com/Carmen-Shannon/oxy-stage/engine/loop"
	"github.com/Carmen-Shannon/oxy-stage/engine/model"
	"github.com/Carmen-Shannon/oxy-stage/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
)

// Preset selects the content the stage is populated with.
type Preset string

const (
	// PresetFloor is the lit floor plane with a camera-mounted point light.
	PresetFloor Preset = "floor"

	// PresetCube adds a spinning, randomly colored cube above the floor.
	PresetCube Preset = "cube"
)

// ParsePreset resolves a preset name (case-insensitive).
//
// Parameters:
//   - name: "floor" or "cube"
//
// Returns:
//   - Preset: the preset
//   - error: an error naming the valid presets when name is unknown
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(name))); p {
	case PresetFloor, PresetCube:
		return p, nil
	}
	return "", fmt.Errorf("unknown preset %q (want %q or %q)", name, PresetFloor, PresetCube)
}

// Camera defaults of the stage.
const (
	CameraFovDegrees = 45
	CameraNear       = 0.01
	CameraFar        = 1000
	CameraDamping    = 0.05
)

// NewStageCamera creates the stage camera: 45 degree field of view, clip 0.01 to 1000,
// positioned at (2.5, 3, 20) looking at the origin, with damped orbit controls around the
// origin and auto-rotate off.
//
// Parameters:
//   - aspect: initial width / height
//
// Returns:
//   - camera.Camera: the camera with its orbit controller attached
func NewStageCamera(aspect float32) camera.Camera {
	ctrl := camera.NewOrbitController(
		camera.WithOrbitTarget(0, 0, 0),
		camera.WithDamping(CameraDamping),
		camera.WithRadiusBounds(0.5, CameraFar/2),
	)
	cam := camera.NewCamera(
		camera.WithFov(CameraFovDegrees*math.Pi/180),
		camera.WithAspect(aspect),
		camera.WithClip(CameraNear, CameraFar),
		camera.WithController(ctrl),
	)
	cam.SetPosition(2.5, 3, 20)
	cam.LookAt(0, 0, 0)
	return cam
}

// Stage is the populated scene graph plus the animations that move it.
type Stage struct {
	Scene      scene.Scene
	CameraNode scene.CameraNode
	Floor      scene.Mesh
	// Cube is nil for PresetFloor.
	Cube       scene.Mesh
	Animations []loop.Animation
}

// BuildStage populates a scene for the given preset. Every node is attached to the root
// before BuildStage returns.
//
// Parameters:
//   - preset: the content to build
//   - cam: the stage camera; it is added to the scene so lights can ride on it
//   - rnd: the random source used to color the cube
//
// Returns:
//   - *Stage: the scene and its animations
//   - error: an error if the preset is unknown or the graph could not be assembled
func BuildStage(preset Preset, cam camera.Camera, rnd common.IntNSource) (*Stage, error) {
	if _, err := ParsePreset(string(preset)); err != nil {
		return nil, err
	}

	st := &Stage{
		Scene: scene.NewScene(scene.WithSceneName(string(preset)), scene.WithFog(scene.DefaultFog())),
	}

	// The camera node carries a point light so the light follows the view.
	st.CameraNode = scene.NewCameraNode(cam, scene.WithName("camera"))
	headlight := scene.NewLightNode(
		light.NewLight(light.LightTypePoint,
			light.WithColor(common.MustNamedColor("aliceblue")),
			light.WithIntensity(1),
			light.WithRange(800),
			light.WithCastsShadows(true),
		),
		scene.WithName("headlight"),
	)
	if err := st.CameraNode.Add(headlight); err != nil {
		return nil, fmt.Errorf("attach headlight: %w", err)
	}

	sun := scene.NewLightNode(
		light.NewLight(light.LightTypeDirectional,
			light.WithColor(common.Hex(0xffffff)),
			light.WithIntensity(1),
			light.WithCastsShadows(true),
		),
		scene.WithName("high noon"),
		scene.WithPosition(0, 2000, 0),
	)

	st.Floor = scene.NewMesh(
		model.NewPlane(10, 10, 10, 10),
		material.NewMaterial(material.WithName("floor"), material.WithBaseColor(common.MustNamedColor("silver"))),
		scene.WithName("floor"),
		scene.WithRotation(-math.Pi/2, 0, 0),
		scene.WithPosition(0, -5, 0),
	)
	st.Floor.SetReceiveShadow(true)

	nodes := []scene.Node{st.CameraNode, sun, st.Floor}

	if preset == PresetCube {
		st.Cube = scene.NewMesh(
			model.NewBox(2, 2, 2),
			material.NewMaterial(
				material.WithName("cube"),
				material.WithBaseColor(common.RandomPaletteColor(rnd)),
				material.WithRoughness(0.4),
			),
			scene.WithName("cube"),
		)
		st.Cube.SetCastShadow(true)
		nodes = append(nodes, st.Cube)
		st.Animations = append(st.Animations, loop.Spin(st.Cube))
	}

	for _, n := range nodes {
		if err := st.Scene.Add(n); err != nil {
			return nil, fmt.Errorf("add %q: %w", n.Name(), err)
		}
	}
	return st, nil
}
