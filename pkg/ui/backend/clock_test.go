package backend

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	if got := c.Now(); got != 0 {
		t.Fatalf("Now() = %v, want 0", got)
	}

	c.Advance(5 * time.Millisecond)
	if got := c.Now(); got != 5*time.Millisecond {
		t.Errorf("Now() = %v, want 5ms", got)
	}

	c.SetStep(10 * time.Millisecond)
	first := c.Now()
	second := c.Now()
	if second-first != 10*time.Millisecond {
		t.Errorf("auto step = %v, want 10ms", second-first)
	}
	if c.Peek() != second+10*time.Millisecond {
		t.Errorf("Peek() = %v", c.Peek())
	}

	c.Set(time.Second)
	if c.Peek() != time.Second {
		t.Errorf("Set did not move the clock: %v", c.Peek())
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("clock went backwards: %v then %v", a, b)
	}
}
