package transition

import (
	"math/rand/v2"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Direction is the way the old frame leaves the display.
type Direction int

const (
	Random Direction = iota
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "random"
	}
}

// PanEffect slides the old frame off the display while the new one slides in
// behind it.
type PanEffect struct {
	out      *surface.Surface
	from, to *surface.Surface
	dir      Direction
}

// NewPan prepares a pan. Random picks a direction now.
func NewPan(out, from, to *surface.Surface, dir Direction) (*PanEffect, error) {
	if out == nil {
		return nil, verrors.Contract("pan without an output surface")
	}
	if from == nil {
		from = blackLike(out)
	}
	if to == nil {
		to = blackLike(out)
	}
	if from.Format() != out.Format() || to.Format() != out.Format() {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "pan snapshots differ in pixel format")
	}
	if dir == Random {
		dir = Direction(1 + rand.IntN(4))
	}
	return &PanEffect{out: out, from: from.Clone(), to: to.Clone(), dir: dir}, nil
}

// Direction returns the resolved direction.
func (p *PanEffect) Direction() Direction { return p.dir }

// Step draws the frame at ratio in [0,1].
func (p *PanEffect) Step(ratio float64) {
	ratio = min(max(ratio, 0), 1)
	w, h := p.out.Width(), p.out.Height()
	dx, dy := 0, 0
	switch p.dir {
	case Left:
		dx = -int(ratio * float64(w))
	case Right:
		dx = int(ratio * float64(w))
	case Up:
		dy = -int(ratio * float64(h))
	case Down:
		dy = int(ratio * float64(h))
	}
	// The incoming frame trails the outgoing one by one display size.
	tx, ty := dx, dy
	switch p.dir {
	case Left:
		tx += w
	case Right:
		tx -= w
	case Up:
		ty += h
	case Down:
		ty -= h
	}

	prev := p.out.SetClip(p.out.Bounds())
	_ = p.out.Blit(p.from, p.from.Bounds(), geom.Point{X: dx, Y: dy})
	_ = p.out.Blit(p.to, p.to.Bounds(), geom.Point{X: tx, Y: ty})
	p.out.SetClip(prev)
}
