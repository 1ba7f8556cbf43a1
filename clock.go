package sapling

import "time"

// Clock is the elapsed-time source the Engine advances each Update and
// paces frames against.
type Clock interface {
	// Elapsed returns the time since the clock started.
	Elapsed() time.Duration
	// Sleep blocks for roughly d.
	Sleep(d time.Duration)
}

// wallClock measures real time from its creation.
type wallClock struct {
	start time.Time
}

// NewWallClock returns a Clock backed by the system monotonic clock.
func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Elapsed() time.Duration { return time.Since(c.start) }
func (c *wallClock) Sleep(d time.Duration)  { time.Sleep(d) }

// FrameTime is the per-frame timing snapshot taken at the start of Update.
type FrameTime struct {
	// Delta is the time in seconds since the previous Update.
	Delta float64
	// Elapsed is the time in seconds since the clock started.
	Elapsed float64
	// Scale multiplies Delta; 0 freezes per-frame motion. Defaults to 1.
	Scale float64
}

// advance records a new sample from c.
func (t *FrameTime) advance(c Clock) {
	now := c.Elapsed().Seconds()
	t.Delta = (now - t.Elapsed) * t.Scale
	t.Elapsed = now
}

// pacingStep is the sleep granularity of the frame limiter.
const pacingStep = 100 * time.Microsecond

// paceFrame blocks until the clock reaches last + 1/fps.
func paceFrame(c Clock, last time.Duration, fps int) {
	target := last + time.Second/time.Duration(fps)
	for c.Elapsed() < target {
		c.Sleep(pacingStep)
	}
}
