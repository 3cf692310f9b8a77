package camera

import (
	"math"
	"testing"
)

func TestOrbitWithoutDampingAppliesImmediately(t *testing.T) {
	oc := NewOrbitController(WithRadius(10))
	oc.Rotate(0.3, 0.2)
	if !oc.Update() {
		t.Fatal("Update() = false, want true")
	}
	if !approx(oc.Azimuth(), 0.3) || !approx(oc.Elevation(), 0.2) {
		t.Errorf("angles = (%v, %v), want (0.3, 0.2)", oc.Azimuth(), oc.Elevation())
	}
	if oc.Update() {
		t.Error("second Update() moved without pending input")
	}
}

func TestOrbitDampingEasesOut(t *testing.T) {
	oc := NewOrbitController(WithRadius(10), WithDamping(0.05))
	oc.Rotate(1, 0)

	oc.Update()
	if !approx(oc.Azimuth(), 0.05) {
		t.Fatalf("after one step Azimuth() = %v, want 0.05", oc.Azimuth())
	}
	oc.Update()
	if !approx(oc.Azimuth(), 0.05+0.95*0.05) {
		t.Fatalf("after two steps Azimuth() = %v, want %v", oc.Azimuth(), 0.05+0.95*0.05)
	}

	for i := 0; i < 500; i++ {
		oc.Update()
	}
	if !approx(oc.Azimuth(), 1) {
		t.Errorf("Azimuth() converged to %v, want 1", oc.Azimuth())
	}
}

func TestOrbitClampsRadiusAndElevation(t *testing.T) {
	oc := NewOrbitController(
		WithRadius(10),
		WithRadiusBounds(5, 20),
		WithElevationBounds(-1, 1),
	)
	oc.Zoom(100)
	oc.Rotate(0, 3)
	oc.Update()
	if oc.Radius() != 5 {
		t.Errorf("Radius() = %v, want 5", oc.Radius())
	}
	if oc.Elevation() != 1 {
		t.Errorf("Elevation() = %v, want 1", oc.Elevation())
	}
}

func TestOrbitSetPositionDerivesSpherical(t *testing.T) {
	oc := NewOrbitController()
	oc.SetPosition(0, 0, 7)
	if !approx(oc.Radius(), 7) || !approx(oc.Azimuth(), 0) || !approx(oc.Elevation(), 0) {
		t.Errorf("spherical = (%v, %v, %v), want (7, 0, 0)", oc.Radius(), oc.Azimuth(), oc.Elevation())
	}
	oc.SetPosition(7, 0, 0)
	if !approx(oc.Azimuth(), math.Pi/2) {
		t.Errorf("Azimuth() = %v, want pi/2", oc.Azimuth())
	}
}

func TestOrbitPanMovesTargetAndPosition(t *testing.T) {
	oc := NewOrbitController(WithRadius(10), WithPanSpeed(0.1))
	oc.Pan(1, 0)
	oc.Update()

	// Looking down -Z from +Z the right axis is +X, and pan distance is panSpeed * radius.
	target := oc.Target()
	if !approx(target[0], 1) || !approx(target[1], 0) || !approx(target[2], 0) {
		t.Errorf("Target() = %v, want (1, 0, 0)", target)
	}
	pos := oc.Position()
	if !approx(pos[0], 1) || !approx(pos[2], 10) {
		t.Errorf("Position() = %v, want (1, 0, 10)", pos)
	}
}

func TestOrbitDisabledIgnoresInput(t *testing.T) {
	oc := NewOrbitController(WithRadius(10))
	oc.SetEnabled(false)
	oc.Rotate(1, 1)
	oc.Zoom(3)
	oc.Pan(1, 1)
	if oc.Update() {
		t.Error("Update() moved while input was disabled")
	}
}

func TestOrbitAutoRotate(t *testing.T) {
	oc := NewOrbitController(WithRadius(10), WithAutoRotate(1))
	oc.Update()
	want := float32(-2 * math.Pi / 3600)
	if !approx(oc.Azimuth(), want) {
		t.Errorf("Azimuth() = %v, want %v", oc.Azimuth(), want)
	}
}
