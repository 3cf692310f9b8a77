package loop

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-stage/engine/camera"
	"github.com/Carmen-Shannon/oxy-stage/engine/scene"
	"github.com/charmbracelet/log"
)

// fakeHost queues requested frames; run executes them one at a time like the window loop.
type fakeHost struct {
	queue []func()
}

func (h *fakeHost) RequestFrame(fn func()) { h.queue = append(h.queue, fn) }

func (h *fakeHost) run(n int) {
	for i := 0; i < n && len(h.queue) > 0; i++ {
		fn := h.queue[0]
		h.queue = h.queue[1:]
		fn()
	}
}

type fakeSubmitter struct {
	calls int
	err   error
	panic bool
	after func()
}

func (f *fakeSubmitter) Render(scene.Scene, camera.Camera) error {
	f.calls++
	if f.after != nil {
		f.after()
	}
	if f.panic {
		panic("device lost")
	}
	return f.err
}

type countingUpdater struct{ n int }

func (u *countingUpdater) Update() { u.n++ }

// fakeTime advances by step on every reading.
type fakeTime struct {
	t    time.Time
	step time.Duration
}

func (f *fakeTime) now() time.Time {
	f.t = f.t.Add(f.step)
	return f.t
}

func newTestScheduler(sub Submitter, opts ...SchedulerBuilderOption) (Scheduler, *fakeHost) {
	host := &fakeHost{}
	opts = append([]SchedulerBuilderOption{WithLogger(log.New(io.Discard))}, opts...)
	return NewScheduler(host, sub, scene.NewScene(), camera.NewCamera(), opts...), host
}

func TestClockIsNonDecreasing(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0), step: 10 * time.Millisecond}
	c := NewClock(WithNow(ft.now))
	c.Start()

	prev := c.Elapsed()
	for range 50 {
		e := c.Elapsed()
		if e < prev {
			t.Fatalf("clock went backwards: %v after %v", e, prev)
		}
		prev = e
	}

	// A source that jumps backwards must not make readings decrease.
	ft.step = -time.Second
	if e := c.Elapsed(); e < prev {
		t.Errorf("clock went backwards on source jump: %v after %v", e, prev)
	}
}

func TestClockStartsOnFirstRead(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	c := NewClock(WithNow(func() time.Time { return now }))

	if e := c.Elapsed(); e != 0 {
		t.Errorf("first reading = %v, want 0", e)
	}
	now = base.Add(1500 * time.Millisecond)
	if e := c.Elapsed(); e != 1.5 {
		t.Errorf("reading = %v, want 1.5", e)
	}
}

func TestTickRotatesCube(t *testing.T) {
	cube := scene.NewGroup()
	base := time.Unix(0, 0)
	now := base
	clk := NewClock(WithNow(func() time.Time { return now }))
	sub := &fakeSubmitter{}
	s, host := newTestScheduler(sub, WithClock(clk), WithAnimation(Spin(cube)))

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	now = base.Add(2500 * time.Millisecond)
	host.run(1)

	if got := cube.Rotation(); got != [3]float32{2.5, 2.5, 2.5} {
		t.Errorf("rotation = %v, want (2.5, 2.5, 2.5)", got)
	}
	if sub.calls != 1 {
		t.Errorf("submissions = %d, want 1", sub.calls)
	}
}

func TestTickOrderAndRescheduling(t *testing.T) {
	var order []string
	upd := &countingUpdater{}
	sub := &fakeSubmitter{after: func() { order = append(order, "render") }}
	s, host := newTestScheduler(sub,
		WithAnimation(func(float64) { order = append(order, "animate") }),
		WithUpdater(upd),
	)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err != nil || len(host.queue) != 1 {
		t.Fatalf("second Start queued %d frames, err %v", len(host.queue), err)
	}
	host.run(3)

	if s.Frames() != 3 || sub.calls != 3 || upd.n != 3 {
		t.Errorf("frames %d, submissions %d, updates %d, want 3 each", s.Frames(), sub.calls, upd.n)
	}
	if len(host.queue) != 1 {
		t.Errorf("pending frames = %d, want exactly 1", len(host.queue))
	}
	if order[0] != "animate" || order[1] != "render" {
		t.Errorf("order = %v", order)
	}
}

func TestStopHaltsSubmissionAndScheduling(t *testing.T) {
	sub := &fakeSubmitter{}
	s, host := newTestScheduler(sub)

	_ = s.Start()
	host.run(2)
	s.Stop()
	s.Stop()
	host.run(5)

	if sub.calls != 2 {
		t.Errorf("submissions after stop = %d, want 2", sub.calls)
	}
	if len(host.queue) != 0 {
		t.Errorf("frames queued after stop: %d", len(host.queue))
	}
	if !s.Stopped() {
		t.Error("Stopped() = false")
	}
	if err := s.Start(); !errors.Is(err, ErrStopped) {
		t.Errorf("Start after Stop = %v, want ErrStopped", err)
	}
}

func TestStopDuringUpdateSkipsSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	var s Scheduler
	s, host := newTestScheduler(sub, WithAnimation(func(float64) { s.Stop() }))

	_ = s.Start()
	host.run(1)
	if sub.calls != 0 || len(host.queue) != 0 {
		t.Errorf("submissions %d, queued %d, want none", sub.calls, len(host.queue))
	}
}

func TestFailedFramesStillReschedule(t *testing.T) {
	tests := []struct {
		name string
		sub  *fakeSubmitter
	}{
		{"error", &fakeSubmitter{err: errors.New("surface lost")}},
		{"panic", &fakeSubmitter{panic: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, host := newTestScheduler(tt.sub)
			_ = s.Start()
			host.run(3)

			if s.Failures() != 3 || s.Frames() != 3 {
				t.Errorf("failures %d, frames %d, want 3", s.Failures(), s.Frames())
			}
			if len(host.queue) != 1 {
				t.Errorf("failed frame did not reschedule: queued %d", len(host.queue))
			}
		})
	}
}

type countingTicker struct{ n int }

func (c *countingTicker) Tick() bool {
	c.n++
	return false
}

func TestProfilerTicksOnSuccessfulFrames(t *testing.T) {
	sub := &fakeSubmitter{}
	p := &countingTicker{}
	s, host := newTestScheduler(sub, WithProfiler(p))
	_ = s.Start()
	host.run(2)
	sub.err = errors.New("boom")
	host.run(1)

	if p.n != 2 {
		t.Errorf("profiler ticks = %d, want 2", p.n)
	}
}
