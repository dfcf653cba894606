package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// Scroller is a container whose children scroll vertically with the mouse
// wheel. Children outside the viewport are clipped by the tree.
type Scroller struct {
	Step int // Pixels per wheel notch
}

// NewScroller creates a scrolling container.
func NewScroller(t *Tree, tag Tag, r geom.Rect) *Widget {
	return t.New(KindScroller, tag, r, &Scroller{Step: RowHeight})
}

// ContentHeight returns the extent of the children below the top edge.
func ContentHeight(w *Widget) int {
	bottom := w.bounds.Y
	for _, c := range w.Children() {
		bottom = max(bottom, c.bounds.Bottom())
	}
	return bottom - w.bounds.Y
}

// ScrollBy scrolls the children by dy pixels, clamped to the content.
func (sc *Scroller) ScrollBy(w *Widget, dy int) {
	limit := max(0, ContentHeight(w)-w.bounds.Height)
	y := -w.scroll.Y + dy
	y = max(0, min(y, limit))
	w.ScrollAbsolute(w.scroll.X, -y)
}

// HandleMouse scrolls on the wheel.
func (sc *Scroller) HandleMouse(w *Widget, ev terminal.MouseEvent) Result {
	switch ev.Button {
	case terminal.MouseWheelUp:
		sc.ScrollBy(w, -sc.Step)
		return Handled()
	case terminal.MouseWheelDown:
		sc.ScrollBy(w, sc.Step)
		return Handled()
	}
	return Unhandled()
}

// Paint clears the viewport and draws a scroll thumb when content overflows.
func (sc *Scroller) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	r := w.ScreenRect()
	s.Fill(r, th.Background)
	content := ContentHeight(w)
	if content <= r.Height || r.Height <= 0 {
		return
	}
	thumbH := max(4, r.Height*r.Height/content)
	thumbY := r.Y + (-w.scroll.Y)*(r.Height-thumbH)/max(1, content-r.Height)
	s.Fill(geom.NewRect(r.Right()-2, thumbY, 2, thumbH), th.ScrollThumb)
}
