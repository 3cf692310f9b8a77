package engine

import (
	"io"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/engine/window"
	"github.com/charmbracelet/log"
)

type fakeOrbit struct {
	rotations [][2]float32
	pans      [][2]float32
	zooms     []float32
}

func (f *fakeOrbit) RotateByPixels(dx, dy float32) {
	f.rotations = append(f.rotations, [2]float32{dx, dy})
}

func (f *fakeOrbit) Pan(dx, dy float32) {
	f.pans = append(f.pans, [2]float32{dx, dy})
}

func (f *fakeOrbit) Zoom(delta float32) {
	f.zooms = append(f.zooms, delta)
}

type fakeEye struct {
	reads int
}

func (f *fakeEye) Position() [3]float32 {
	f.reads++
	return [3]float32{2.5, 3, 20}
}

func newTestControls() (*pointerControls, *fakeOrbit, *fakeEye) {
	orbit, eye := &fakeOrbit{}, &fakeEye{}
	return newPointerControls(orbit, eye, log.New(io.Discard)), orbit, eye
}

func TestPointerMoveWithoutButtonIsIgnored(t *testing.T) {
	p, orbit, _ := newTestControls()
	p.move(10, 10)
	p.move(20, 30)
	if len(orbit.rotations)+len(orbit.pans) != 0 {
		t.Errorf("rotations=%v pans=%v, want none", orbit.rotations, orbit.pans)
	}
}

func TestPointerLeftDragOrbits(t *testing.T) {
	p, orbit, _ := newTestControls()
	p.button(window.MouseButtonLeft, true, 100, 100)
	p.move(110, 95)
	p.move(112, 95)
	p.button(window.MouseButtonLeft, false, 112, 95)
	p.move(200, 200)

	want := [][2]float32{{10, -5}, {2, 0}}
	if len(orbit.rotations) != len(want) {
		t.Fatalf("rotations = %v, want %v", orbit.rotations, want)
	}
	for i := range want {
		if orbit.rotations[i] != want[i] {
			t.Errorf("rotation %d = %v, want %v", i, orbit.rotations[i], want[i])
		}
	}
	if len(orbit.pans) != 0 {
		t.Errorf("pans = %v, want none", orbit.pans)
	}
}

func TestPointerRightDragPans(t *testing.T) {
	p, orbit, _ := newTestControls()
	p.button(window.MouseButtonRight, true, 50, 50)
	p.move(60, 70)

	if len(orbit.pans) != 1 || orbit.pans[0] != [2]float32{-10, 20} {
		t.Errorf("pans = %v, want [[-10 20]]", orbit.pans)
	}
	if len(orbit.rotations) != 0 {
		t.Errorf("rotations = %v, want none", orbit.rotations)
	}
}

func TestPointerMiddleButtonIgnored(t *testing.T) {
	p, orbit, _ := newTestControls()
	p.button(window.MouseButtonMiddle, true, 0, 0)
	p.move(5, 5)
	if len(orbit.rotations)+len(orbit.pans) != 0 {
		t.Errorf("middle drag moved the camera: rotations=%v pans=%v", orbit.rotations, orbit.pans)
	}
}

func TestPointerScrollZoomsAndReadsPosition(t *testing.T) {
	p, orbit, eye := newTestControls()
	p.scroll(1)
	p.scroll(-2)
	if len(orbit.zooms) != 2 || orbit.zooms[0] != 1 || orbit.zooms[1] != -2 {
		t.Errorf("zooms = %v, want [1 -2]", orbit.zooms)
	}
	if eye.reads != 2 {
		t.Errorf("position reads = %d, want 2", eye.reads)
	}
}
