package widget

import (
	"sync"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/theme"
)

// Part identifies a decoration tile in the parts bitmap.
type Part int

const (
	PartCornerTL Part = iota
	PartCornerTR
	PartCornerBL
	PartCornerBR
	PartEdgeH
	PartEdgeV
	PartButton
	PartButtonPressed
	partCount
)

// PartSize is the side of one square tile.
const PartSize = 4

// Parts is the shared bitmap of common widget decorations. It is reference
// counted: the first Acquire builds it, the last Release frees it.
type Parts struct {
	mu     sync.Mutex
	theme  *theme.Theme
	refs   int
	bitmap *surface.Surface
	builds int
}

// NewParts creates an unloaded parts resource painted with th.
func NewParts(th *theme.Theme) *Parts {
	if th == nil {
		th = theme.DefaultTheme()
	}
	return &Parts{theme: th}
}

// Acquire takes a reference, building the bitmap on first use.
func (p *Parts) Acquire() (*surface.Surface, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refs == 0 {
		p.bitmap = buildParts(p.theme)
		p.builds++
	}
	p.refs++
	return p.bitmap, nil
}

// Release drops a reference. Releasing more than was acquired is a contract
// violation and changes nothing.
func (p *Parts) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refs == 0 {
		return verrors.Contract("release of unacquired widget parts")
	}
	p.refs--
	if p.refs == 0 {
		p.bitmap = nil
	}
	return nil
}

// Refs returns the number of outstanding references.
func (p *Parts) Refs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs
}

// Builds returns how many times the bitmap was built.
func (p *Parts) Builds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.builds
}

// Source returns the rectangle of the tile in the bitmap.
func (part Part) Source() geom.Rect {
	return geom.NewRect(int(part)*PartSize, 0, PartSize, PartSize)
}

func buildParts(th *theme.Theme) *surface.Surface {
	s := surface.New(int(partCount)*PartSize, PartSize)
	border := th.Border
	for part := Part(0); part < partCount; part++ {
		r := part.Source()
		switch part {
		case PartCornerTL:
			s.Fill(geom.NewRect(r.X, r.Y, PartSize, 1), border)
			s.Fill(geom.NewRect(r.X, r.Y, 1, PartSize), border)
		case PartCornerTR:
			s.Fill(geom.NewRect(r.X, r.Y, PartSize, 1), border)
			s.Fill(geom.NewRect(r.Right()-1, r.Y, 1, PartSize), border)
		case PartCornerBL:
			s.Fill(geom.NewRect(r.X, r.Bottom()-1, PartSize, 1), border)
			s.Fill(geom.NewRect(r.X, r.Y, 1, PartSize), border)
		case PartCornerBR:
			s.Fill(geom.NewRect(r.X, r.Bottom()-1, PartSize, 1), border)
			s.Fill(geom.NewRect(r.Right()-1, r.Y, 1, PartSize), border)
		case PartEdgeH:
			s.Fill(geom.NewRect(r.X, r.Y, PartSize, 1), border)
		case PartEdgeV:
			s.Fill(geom.NewRect(r.X, r.Y, 1, PartSize), border)
		case PartButton:
			s.Fill(r, th.SurfaceRaised)
			s.Fill(geom.NewRect(r.X, r.Y, PartSize, 1), theme.Blend(th.SurfaceRaised, th.TextPrimary, 0.25))
		case PartButtonPressed:
			s.Fill(r, th.Selection)
		}
	}
	return s
}
