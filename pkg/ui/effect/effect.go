// Package effect implements transient, time-driven overlays drawn on top of
// the widget tree, and the draw-ordered list that schedules them.
package effect

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Kind discriminates effect variants for bulk queries and removal.
type Kind int

const (
	KindCustom Kind = iota
	KindToast
	KindFlash
	KindBlink
)

func (k Kind) String() string {
	switch k {
	case KindToast:
		return "toast"
	case KindFlash:
		return "flash"
	case KindBlink:
		return "blink"
	default:
		return "custom"
	}
}

// Effect is one overlay animation.
type Effect interface {
	// Meta returns the scheduling state shared by all effects.
	Meta() *Base
	// Draw renders the frame for now. It returns false, without drawing,
	// once the effect has finished.
	Draw(s *surface.Surface, now time.Duration) bool
}

// Base holds the scheduling state of an effect. Embed it in concrete effects.
type Base struct {
	ID       string
	Seq      int       // Draw sequence; lower draws first
	Area     geom.Rect // Screen area the effect may touch
	Kind     Kind
	Start    time.Duration
	LastMove time.Duration
}

// NewBase creates scheduling state starting at now.
func NewBase(kind Kind, seq int, area geom.Rect, now time.Duration) Base {
	return Base{
		ID:       ulid.Make().String(),
		Seq:      seq,
		Area:     area,
		Kind:     kind,
		Start:    now,
		LastMove: now,
	}
}

// Meta implements Effect for embedding types.
func (b *Base) Meta() *Base { return b }

// Elapsed returns the running time of the effect at now.
func (b *Base) Elapsed(now time.Duration) time.Duration {
	if now < b.Start {
		return 0
	}
	return now - b.Start
}

// Shift moves the timestamps forward by d, hiding a frozen interval.
func (b *Base) Shift(d time.Duration) {
	b.Start += d
	b.LastMove += d
}

// progress returns elapsed/total clamped to [0,1].
func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}
