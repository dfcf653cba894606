package widget

import (
	"image"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Image paints a decoded image scaled to the widget bounds.
type Image struct {
	Src image.Image
}

// NewImage creates an image widget.
func NewImage(t *Tree, tag Tag, r geom.Rect, src image.Image) *Widget {
	return t.New(KindImage, tag, r, &Image{Src: src})
}

// Paint scales the image into place.
func (im *Image) Paint(w *Widget, s *surface.Surface) {
	if im.Src == nil {
		return
	}
	s.DrawScaled(im.Src, w.ScreenRect())
}
