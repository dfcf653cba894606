package effect

import (
	"image/color"
	"time"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Blink toggles an outline between two colours a fixed number of times.
type Blink struct {
	Base
	On, Off color.RGBA
	Period  time.Duration // Length of one on or off phase
	Cycles  int
}

// NewBlink creates a blink over area starting at now.
func NewBlink(seq int, area geom.Rect, on, off color.RGBA, period time.Duration, cycles int, now time.Duration) *Blink {
	return &Blink{
		Base:   NewBase(KindBlink, seq, area, now),
		On:     on,
		Off:    off,
		Period: period,
		Cycles: cycles,
	}
}

// Phase returns the zero-based phase index at now; even phases are "on".
func (b *Blink) Phase(now time.Duration) int {
	if b.Period <= 0 {
		return 2 * b.Cycles
	}
	return int(b.Elapsed(now) / b.Period)
}

// Draw paints the outline for the current phase.
func (b *Blink) Draw(s *surface.Surface, now time.Duration) bool {
	phase := b.Phase(now)
	if phase >= 2*b.Cycles {
		return false
	}
	c := b.Off
	if phase%2 == 0 {
		c = b.On
	}
	s.Outline(b.Area, c)
	return true
}
