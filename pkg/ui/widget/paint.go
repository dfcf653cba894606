package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Paint draws w and its visible children onto the display surface, limited
// to the area its ancestors leave visible. With updateNow the painted area
// is pushed to the host immediately.
func (w *Widget) Paint(updateNow bool) {
	s := w.tree.surface()
	if s == nil || !w.Shown() {
		return
	}
	area := w.VisibleRect()
	if area.Empty() {
		return
	}
	prev := s.SetClip(s.Clip().Intersection(area))
	w.paintSelf(s)
	w.paintChildren(s, area)
	s.SetClip(prev)
	if updateNow {
		w.tree.update(area.Intersection(s.Bounds()))
	}
}

// PaintChildren draws only the visible children of w.
func (w *Widget) PaintChildren(updateNow bool) {
	s := w.tree.surface()
	if s == nil || !w.Shown() {
		return
	}
	area := w.VisibleRect()
	if area.Empty() {
		return
	}
	prev := s.SetClip(s.Clip().Intersection(area))
	w.paintChildren(s, area)
	s.SetClip(prev)
	if updateNow {
		w.tree.update(area.Intersection(s.Bounds()))
	}
}

// PaintOn renders w onto an arbitrary surface without touching the host,
// used to prepare off-screen frames.
func (w *Widget) PaintOn(s *surface.Surface) {
	if s == nil {
		return
	}
	area := w.ScreenRect()
	prev := s.SetClip(s.Bounds().Intersection(area))
	w.paintSelf(s)
	w.paintChildren(s, area)
	s.SetClip(prev)
}

func (w *Widget) paintSelf(s *surface.Surface) {
	if p, ok := w.behavior.(Painter); ok {
		p.Paint(w, s)
	}
}

// paintChildren skips children entirely outside area and clips those that
// straddle its edge.
func (w *Widget) paintChildren(s *surface.Surface, area geom.Rect) {
	for _, c := range w.Children() {
		if !c.visible {
			continue
		}
		cr := c.ScreenRect()
		if !cr.Intersects(area) {
			continue
		}
		inner := cr.Intersection(area)
		prev := s.SetClip(s.Clip().Intersection(inner))
		c.paintSelf(s)
		c.paintChildren(s, inner)
		s.SetClip(prev)
	}
}

// repaintArea repaints the part of p covering r and pushes it to the host.
func (t *Tree) repaintArea(p *Widget, r geom.Rect) {
	s := t.surface()
	if s == nil {
		return
	}
	area := p.VisibleRect()
	r = r.Intersection(area)
	if r.Empty() {
		return
	}
	prev := s.SetClip(r)
	p.paintSelf(s)
	p.paintChildren(s, area)
	s.SetClip(prev)
	t.update(r)
}

// RepaintRect repaints the part of w covering r, for instance to erase an
// overlay, and pushes it to the host.
func (w *Widget) RepaintRect(r geom.Rect) {
	if !w.Shown() {
		return
	}
	w.tree.repaintArea(w, r)
}
