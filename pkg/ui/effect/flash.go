package effect

import (
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Flash outlines an area in a highlight colour that fades to a base colour.
type Flash struct {
	Base
	From, To colorful.Color
	Duration time.Duration
	Width    int // Border thickness in pixels
}

// NewFlash creates a flash over area starting at now.
func NewFlash(seq int, area geom.Rect, from, to color.RGBA, d time.Duration, now time.Duration) *Flash {
	cf, _ := colorful.MakeColor(opaque(from))
	ct, _ := colorful.MakeColor(opaque(to))
	return &Flash{
		Base:     NewBase(KindFlash, seq, area, now),
		From:     cf,
		To:       ct,
		Duration: d,
		Width:    2,
	}
}

// ColorAt returns the border colour at now.
func (f *Flash) ColorAt(now time.Duration) color.RGBA {
	c := f.From.BlendLab(f.To, progress(f.Elapsed(now), f.Duration)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Draw paints the border in the current colour.
func (f *Flash) Draw(s *surface.Surface, now time.Duration) bool {
	if f.Elapsed(now) >= f.Duration {
		return false
	}
	c := f.ColorAt(now)
	r := f.Area
	for i := 0; i < f.Width && r.Width > 0 && r.Height > 0; i++ {
		s.Outline(r, c)
		r = r.Inset(1, 1, 1, 1)
	}
	return true
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
