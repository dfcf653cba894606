package widget

import (
	"image/color"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Align positions text horizontally within a widget.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label displays a single line of text.
type Label struct {
	Text  string
	Align Align
	Color *color.RGBA // nil uses the theme's primary text colour
}

// NewLabel creates a label widget.
func NewLabel(t *Tree, tag Tag, r geom.Rect, text string) *Widget {
	return t.New(KindLabel, tag, r, &Label{Text: text})
}

// SetLabelText replaces a label's text and repaints it.
func SetLabelText(w *Widget, text string) {
	l, ok := w.behavior.(*Label)
	if !ok || l.Text == text {
		return
	}
	l.Text = text
	w.invalidate()
}

// Paint draws the text, truncated to the widget width.
func (l *Label) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	fg := th.TextPrimary
	if l.Color != nil {
		fg = *l.Color
	}
	if !w.Active() {
		fg = th.TextMuted
	}
	drawAligned(s, w.ScreenRect(), l.Text, l.Align, fg)
}

// fitText truncates text to at most width pixels.
func fitText(text string, width int) string {
	cells := width / surface.GlyphWidth
	if cells <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= cells {
		return text
	}
	return runewidth.Truncate(text, cells, "…")
}

// drawAligned draws text vertically centred in r.
func drawAligned(s *surface.Surface, r geom.Rect, text string, align Align, c color.RGBA) {
	text = fitText(text, r.Width)
	tw := surface.TextWidth(text)
	x := r.X
	switch align {
	case AlignCenter:
		x += (r.Width - tw) / 2
	case AlignRight:
		x += r.Width - tw
	}
	y := r.Y + (r.Height-surface.LineHeight)/2
	s.DrawText(x, y, text, c)
}
