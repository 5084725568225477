package animation

import "time"

// TimeSource reports elapsed seconds since the animation started. Successive
// calls never decrease.
type TimeSource interface {
	Now() float64
}

// SystemClock measures wall-clock time from its creation.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is advanced explicitly.
type ManualClock struct {
	elapsed float64
}

// Set moves the clock to t. Values earlier than the current time are ignored.
func (c *ManualClock) Set(t float64) {
	if t > c.elapsed {
		c.elapsed = t
	}
}

func (c *ManualClock) Advance(dt float64) {
	if dt > 0 {
		c.elapsed += dt
	}
}

func (c *ManualClock) Now() float64 {
	return c.elapsed
}
