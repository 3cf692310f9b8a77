package loop

import (
	"time"

	"github.com/charmbracelet/log"
)

// ClockBuilderOption is a functional option applied to a clock during construction.
type ClockBuilderOption func(*clock)

// WithNow replaces the time source, for tests.
func WithNow(now func() time.Time) ClockBuilderOption {
	return func(c *clock) {
		if now != nil {
			c.now = now
		}
	}
}

// SchedulerBuilderOption is a functional option applied to a scheduler during construction.
type SchedulerBuilderOption func(*scheduler)

// WithClock sets the clock read at the start of every tick. Defaults to NewClock().
func WithClock(c Clock) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.clock = c
	}
}

// WithAnimation adds an animation run each tick, in the order added.
//
// Parameters:
//   - a: the animation
//
// Returns:
//   - SchedulerBuilderOption: a function that registers the animation
func WithAnimation(a Animation) SchedulerBuilderOption {
	return func(s *scheduler) {
		if a != nil {
			s.animations = append(s.animations, a)
		}
	}
}

// WithUpdater adds an updater stepped each tick after the animations.
func WithUpdater(u Updater) SchedulerBuilderOption {
	return func(s *scheduler) {
		if u != nil {
			s.updaters = append(s.updaters, u)
		}
	}
}

// WithProfiler sets a ticker called after every successful frame.
func WithProfiler(p Ticker) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.profiler = p
	}
}

// WithLogger sets the logger used for frame failures.
func WithLogger(logger *log.Logger) SchedulerBuilderOption {
	return func(s *scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}
