package engine

import (
	"github.com/Carmen-Shannon/oxy-stage/engine/window"
	"github.com/charmbracelet/log"
)

// orbitInput is the part of the orbit controller driven by the pointer.
type orbitInput interface {
	RotateByPixels(dx, dy float32)
	Pan(dx, dy float32)
	Zoom(delta float32)
}

// positionSource reports the eye position for the scroll debug log.
type positionSource interface {
	Position() [3]float32
}

// pointerControls translates window pointer events into orbit controller input:
// left drag orbits, right drag pans, the wheel zooms.
type pointerControls struct {
	orbit  orbitInput
	eye    positionSource
	logger *log.Logger

	orbiting bool
	panning  bool
	lastX    float32
	lastY    float32
}

func newPointerControls(orbit orbitInput, eye positionSource, logger *log.Logger) *pointerControls {
	return &pointerControls{orbit: orbit, eye: eye, logger: logger}
}

// attach registers the controls' handlers on w.
func (p *pointerControls) attach(w window.Window) {
	w.SetMouseButtonCallback(p.button)
	w.SetMouseMoveCallback(p.move)
	w.SetScrollCallback(p.scroll)
}

func (p *pointerControls) button(b window.MouseButton, pressed bool, x, y float32) {
	switch b {
	case window.MouseButtonLeft:
		p.orbiting = pressed
	case window.MouseButtonRight:
		p.panning = pressed
	default:
		return
	}
	p.lastX, p.lastY = x, y
}

func (p *pointerControls) move(x, y float32) {
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	switch {
	case p.orbiting:
		p.orbit.RotateByPixels(dx, dy)
	case p.panning:
		// Screen y grows downward; dragging down moves the view up.
		p.orbit.Pan(-dx, dy)
	}
}

func (p *pointerControls) scroll(delta float32) {
	pos := p.eye.Position()
	p.logger.Debug("camera position", "x", pos[0], "y", pos[1], "z", pos[2])
	p.orbit.Zoom(delta)
}
