package loop

import (
	"sync"
	"time"
)

// clock is the implementation of the Clock interface.
type clock struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	last    float64
	started bool
}

// Clock measures seconds elapsed since Start. Readings never decrease.
type Clock interface {
	// Start resets the clock to zero.
	Start()

	// Elapsed returns the seconds since Start. The first call on an unstarted clock starts it.
	//
	// Returns:
	//   - float64: elapsed seconds, never less than the previous reading
	Elapsed() float64
}

var _ Clock = &clock{}

// NewClock creates an unstarted Clock backed by time.Now, whose readings carry the
// monotonic clock.
//
// Parameters:
//   - options: variadic list of ClockBuilderOption functions
//
// Returns:
//   - Clock: the new clock
func NewClock(options ...ClockBuilderOption) Clock {
	c := &clock{now: time.Now}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.last = 0
	c.started = true
}

func (c *clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		c.start = c.now()
		c.started = true
	}
	e := c.now().Sub(c.start).Seconds()
	if e < c.last {
		e = c.last
	}
	c.last = e
	return e
}
