package loop

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/charmbracelet/log"
)

// ErrStopped is returned by Start once the scheduler has been stopped.
var ErrStopped = errors.New("loop: scheduler stopped")

// FrameRequester runs fn once, on the host's frame thread, before the next display refresh.
type FrameRequester interface {
	RequestFrame(fn func())
}

// Submitter draws one frame of a scene from a camera.
type Submitter interface {
	Render(s scene.Scene, cam camera.Camera) error
}

// Updater is stepped once per frame before submission, e.g. orbit damping.
type Updater interface {
	Update()
}

// Ticker is called once per completed frame, e.g. a profiler.
type Ticker interface {
	Tick() bool
}

// Animation moves scene content as a function of elapsed seconds.
type Animation func(t float64)

// Spin returns an Animation that sets all three Euler angles of n to t radians.
//
// Parameters:
//   - n: the node to rotate
//
// Returns:
//   - Animation: the rotation animation
func Spin(n scene.Node) Animation {
	return func(t float64) {
		a := float32(t)
		n.SetRotation(a, a, a)
	}
}

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	requester FrameRequester
	submitter Submitter
	scene     scene.Scene
	camera    camera.Camera
	clock     Clock
	logger    *log.Logger

	animations []Animation
	updaters   []Updater
	profiler   Ticker

	started  atomic.Bool
	stopped  atomic.Bool
	frames   atomic.Uint64
	failures atomic.Uint64
}

// Scheduler drives the self-rescheduling frame callback.
//
// Each Tick reads the clock, runs the animations and updaters, submits one frame and then
// requests the next Tick. A failing frame is logged and counted; the next frame is still
// requested. After Stop nothing is submitted or requested.
type Scheduler interface {
	// Start resets the clock and requests the first frame. Calling Start on a running
	// scheduler does nothing.
	//
	// Returns:
	//   - error: ErrStopped if Stop was already called
	Start() error

	// Tick runs one frame and requests the next one.
	Tick()

	// Stop prevents any further submission or rescheduling. Safe to call more than once.
	Stop()

	// Stopped reports whether Stop has been called.
	Stopped() bool

	// Frames returns the number of ticks that ran, successful or not.
	Frames() uint64

	// Failures returns the number of ticks whose frame failed or panicked.
	Failures() uint64
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a Scheduler that renders s from cam through submitter, with frames
// paced by requester.
//
// Parameters:
//   - requester: the host frame queue
//   - submitter: the renderer
//   - s: the scene to draw
//   - cam: the viewpoint
//   - options: variadic list of SchedulerBuilderOption functions
//
// Returns:
//   - Scheduler: the scheduler, not yet started
func NewScheduler(requester FrameRequester, submitter Submitter, s scene.Scene, cam camera.Camera, options ...SchedulerBuilderOption) Scheduler {
	if requester == nil || submitter == nil || s == nil || cam == nil {
		panic("loop: NewScheduler requires a requester, submitter, scene and camera")
	}
	sc := &scheduler{
		requester: requester,
		submitter: submitter,
		scene:     s,
		camera:    cam,
		logger:    log.Default(),
	}
	for _, opt := range options {
		opt(sc)
	}
	if sc.clock == nil {
		sc.clock = NewClock()
	}
	return sc
}

func (s *scheduler) Start() error {
	if s.stopped.Load() {
		return ErrStopped
	}
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	s.clock.Start()
	s.requester.RequestFrame(s.Tick)
	return nil
}

func (s *scheduler) Tick() {
	if s.stopped.Load() {
		return
	}
	frame := s.frames.Add(1)
	if err := s.runFrame(); err != nil {
		s.failures.Add(1)
		s.logger.Error("loop: frame failed", "frame", frame, "err", err)
	}
	if s.stopped.Load() {
		return
	}
	s.requester.RequestFrame(s.Tick)
}

// runFrame runs one frame, converting a panic into an error.
func (s *scheduler) runFrame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	t := s.clock.Elapsed()
	for _, a := range s.animations {
		a(t)
	}
	for _, u := range s.updaters {
		u.Update()
	}
	if s.stopped.Load() {
		return nil
	}
	if err := s.submitter.Render(s.scene, s.camera); err != nil {
		return err
	}
	if s.profiler != nil {
		s.profiler.Tick()
	}
	return nil
}

func (s *scheduler) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.logger.Debug("loop: stopped", "frames", s.frames.Load(), "failures", s.failures.Load())
	}
}

func (s *scheduler) Stopped() bool {
	return s.stopped.Load()
}

func (s *scheduler) Frames() uint64 {
	return s.frames.Load()
}

func (s *scheduler) Failures() uint64 {
	return s.failures.Load()
}
