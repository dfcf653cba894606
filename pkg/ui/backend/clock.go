package backend

import (
	"sync"
	"time"
)

// Clock is a monotonic clock measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a test clock that only moves when told to. A non-zero step
// advances it on every read, which lets wall-clock loops terminate.
type ManualClock struct {
	mu   sync.Mutex
	now  time.Duration
	step time.Duration
}

// NewManualClock creates a manual clock at origin.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current time, then applies the auto step.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now += c.step
	return now
}

// Peek returns the current time without applying the auto step.
func (c *ManualClock) Peek() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Set moves the clock to an absolute time.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// SetStep sets the auto step applied after each read.
func (c *ManualClock) SetStep(step time.Duration) {
	c.mu.Lock()
	c.step = step
	c.mu.Unlock()
}
