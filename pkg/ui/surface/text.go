package surface

import (
	"image"
	"image/color"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/odvcencio/vista/pkg/ui/geom"
)

var face = basicfont.Face7x13

const (
	// GlyphWidth is the advance of a single-width cell.
	GlyphWidth = 7
	// LineHeight is the height of one text line.
	LineHeight = 13
	glyphAscent = 11
)

// TextWidth returns the pixel width of text. Wide runes occupy two cells.
func TextWidth(text string) int {
	return runewidth.StringWidth(text) * GlyphWidth
}

// RuneWidth returns the pixel advance of r.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r) * GlyphWidth
}

// DrawText renders text with its top-left corner at (x, y), honouring the
// clip, and returns the pixel width consumed.
func (s *Surface) DrawText(x, y int, text string, c color.RGBA) int {
	clip := s.clip
	if clip.Empty() {
		return TextWidth(text)
	}
	dst, ok := s.img.SubImage(clip.Image()).(*image.RGBA)
	if !ok {
		return TextWidth(text)
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(s.encode(c)),
		Face: face,
	}
	pen := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if pen < clip.Right() && pen+w > clip.X {
			d.Dot = fixed.P(pen, y+glyphAscent)
			d.DrawString(string(r))
		}
		pen += w
	}
	return pen - x
}

// TextRect returns the rectangle occupied by text drawn at (x, y).
func TextRect(x, y int, text string) geom.Rect {
	return geom.NewRect(x, y, TextWidth(text), LineHeight)
}
