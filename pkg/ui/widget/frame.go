package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Frame is a bordered container. Its border comes from the shared parts
// bitmap, acquired while the frame is loaded.
type Frame struct {
	Title  string
	Filled bool
	parts  *surface.Surface
}

// NewFrame creates a frame widget.
func NewFrame(t *Tree, tag Tag, r geom.Rect, title string) *Widget {
	return t.New(KindFrame, tag, r, &Frame{Title: title, Filled: true})
}

// Load acquires the parts bitmap.
func (f *Frame) Load(w *Widget) error {
	bm, err := w.tree.parts.Acquire()
	if err != nil {
		return err
	}
	f.parts = bm
	return nil
}

// Unload releases the parts bitmap.
func (f *Frame) Unload(w *Widget) {
	if f.parts == nil {
		return
	}
	f.parts = nil
	_ = w.tree.parts.Release()
}

// Paint fills the body and draws the border and title.
func (f *Frame) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	r := w.ScreenRect()
	if f.Filled {
		s.Fill(r, th.Surface)
	}
	if f.parts != nil {
		DrawBorder(s, f.parts, r)
	} else {
		s.Outline(r, th.Border)
	}
	if f.Title != "" {
		title := fitText(" "+f.Title+" ", r.Width-2*PartSize)
		tr := surface.TextRect(r.X+PartSize, r.Y-surface.LineHeight/2+1, title)
		s.Fill(tr, th.Surface)
		s.DrawText(tr.X, tr.Y, title, th.TextSecondary)
	}
}

// DrawBorder tiles the border parts around r.
func DrawBorder(s *surface.Surface, parts *surface.Surface, r geom.Rect) {
	if r.Width < 2*PartSize || r.Height < 2*PartSize {
		return
	}
	for x := r.X + PartSize; x < r.Right()-PartSize; x += PartSize {
		s.BlitBlend(parts, PartEdgeH.Source(), geom.Point{X: x, Y: r.Y})
		bottom := PartEdgeH.Source()
		bottom.Height = 1
		s.BlitBlend(parts, bottom, geom.Point{X: x, Y: r.Bottom() - 1})
	}
	for y := r.Y + PartSize; y < r.Bottom()-PartSize; y += PartSize {
		s.BlitBlend(parts, PartEdgeV.Source(), geom.Point{X: r.X, Y: y})
		right := PartEdgeV.Source()
		right.Width = 1
		s.BlitBlend(parts, right, geom.Point{X: r.Right() - 1, Y: y})
	}
	s.BlitBlend(parts, PartCornerTL.Source(), geom.Point{X: r.X, Y: r.Y})
	s.BlitBlend(parts, PartCornerTR.Source(), geom.Point{X: r.Right() - PartSize, Y: r.Y})
	s.BlitBlend(parts, PartCornerBL.Source(), geom.Point{X: r.X, Y: r.Bottom() - PartSize})
	s.BlitBlend(parts, PartCornerBR.Source(), geom.Point{X: r.Right() - PartSize, Y: r.Bottom() - PartSize})
}
