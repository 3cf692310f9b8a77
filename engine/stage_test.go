package engine

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/common"
	"github.com/Carmen-Shannon/oxy-stage/engine/light"
)

type fixedIntN int

func (f fixedIntN) IntN(n int) int {
	return int(f) % n
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"floor", PresetFloor, false},
		{" Cube ", PresetCube, false},
		{"FLOOR", PresetFloor, false},
		{"monster", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewStageCamera(t *testing.T) {
	cam := NewStageCamera(4.0 / 3.0)
	pos := cam.Position()
	if !approx(pos[0], 2.5) || !approx(pos[1], 3) || !approx(pos[2], 20) {
		t.Errorf("Position() = %v, want (2.5, 3, 20)", pos)
	}
	if cam.Controller() == nil {
		t.Fatal("Controller() = nil")
	}
	if got := cam.Aspect(); !approx(got, 4.0/3.0) {
		t.Errorf("Aspect() = %v, want 1.333", got)
	}
}

func TestBuildStageFloor(t *testing.T) {
	st, err := BuildStage(PresetFloor, NewStageCamera(1), fixedIntN(0))
	if err != nil {
		t.Fatalf("BuildStage: %v", err)
	}
	if st.Cube != nil {
		t.Error("floor preset built a cube")
	}
	if len(st.Animations) != 0 {
		t.Errorf("len(Animations) = %d, want 0", len(st.Animations))
	}

	if !st.Floor.ReceiveShadow() {
		t.Error("floor does not receive shadows")
	}
	if got := st.Floor.Position(); !approx(got[1], -5) {
		t.Errorf("floor y = %v, want -5", got[1])
	}
	if got := st.Floor.Rotation(); !approx(got[0], -math.Pi/2) {
		t.Errorf("floor rotation.x = %v, want -pi/2", got[0])
	}
	if got, want := st.Floor.Material().BaseColor(), common.MustNamedColor("silver"); got != want {
		t.Errorf("floor color = %v, want %v", got, want)
	}

	fog := st.Scene.Fog()
	if fog == nil || fog.Near != 1000 || fog.Far != 10000 {
		t.Errorf("Fog() = %+v, want near 1000 far 10000", fog)
	}

	lights := st.Scene.Lights()
	if len(lights) != 2 {
		t.Fatalf("len(Lights()) = %d, want 2", len(lights))
	}
	var sawPoint, sawSun bool
	for _, ln := range lights {
		switch ln.Light().Type() {
		case light.LightTypePoint:
			sawPoint = true
			if ln.Parent() != st.CameraNode {
				t.Error("point light is not mounted on the camera")
			}
			if got := ln.Light().Range(); got != 800 {
				t.Errorf("point range = %v, want 800", got)
			}
		case light.LightTypeDirectional:
			sawSun = true
			if got := ln.Position(); !approx(got[1], 2000) {
				t.Errorf("sun y = %v, want 2000", got[1])
			}
			if !ln.Light().CastsShadows() {
				t.Error("sun does not cast shadows")
			}
		}
	}
	if !sawPoint || !sawSun {
		t.Errorf("lights point=%v directional=%v, want both", sawPoint, sawSun)
	}
}

func TestBuildStageCube(t *testing.T) {
	st, err := BuildStage(PresetCube, NewStageCamera(1), fixedIntN(2))
	if err != nil {
		t.Fatalf("BuildStage: %v", err)
	}
	if st.Cube == nil {
		t.Fatal("cube preset has no cube")
	}
	if got, want := st.Cube.Material().BaseColor(), common.MustNamedColor(common.Palette[2]); got != want {
		t.Errorf("cube color = %v, want %v", got, want)
	}
	if len(st.Scene.Meshes()) != 2 {
		t.Errorf("len(Meshes()) = %d, want 2", len(st.Scene.Meshes()))
	}
	if len(st.Animations) != 1 {
		t.Fatalf("len(Animations) = %d, want 1", len(st.Animations))
	}

	st.Animations[0](2.5)
	if got := st.Cube.Rotation(); !approx(got[0], 2.5) || !approx(got[1], 2.5) || !approx(got[2], 2.5) {
		t.Errorf("cube rotation at t=2.5 = %v, want (2.5, 2.5, 2.5)", got)
	}
}

func TestBuildStageUnknownPreset(t *testing.T) {
	if _, err := BuildStage("monster", NewStageCamera(1), fixedIntN(0)); err == nil {
		t.Error("BuildStage(monster) = nil error")
	}
}
