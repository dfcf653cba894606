// Package surface provides lockable 32-bit pixel buffers with a clip stack,
// the drawing target shared by widgets, effects and transitions.
package surface

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/geom"
)

// Format describes the byte order of a 32-bit pixel.
type Format int

const (
	FormatRGBA8888 Format = iota
	FormatBGRA8888
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatBGRA8888:
		return "BGRA8888"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BytesPerPixel is the size of one pixel for every supported format.
const BytesPerPixel = 4

// Surface is a 32-bit pixel buffer. Drawing operations honour the current
// clip rectangle; direct pixel access goes through Lock/Unlock.
type Surface struct {
	img    *image.RGBA
	format Format
	clip   geom.Rect
	locks  int
}

// New allocates a cleared RGBA surface.
func New(w, h int) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Surface{img: img, format: FormatRGBA8888, clip: geom.NewRect(0, 0, w, h)}
}

// FromPixels wraps an existing pixel buffer supplied by the host.
// The buffer is shared, not copied.
func FromPixels(pix []byte, w, h, pitch int, format Format) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "surface dimensions must be positive").
			WithContext("width", w).WithContext("height", h)
	}
	if pitch < w*BytesPerPixel {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "pitch shorter than a row").
			WithContext("pitch", pitch).WithContext("width", w)
	}
	if len(pix) < pitch*(h-1)+w*BytesPerPixel {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "pixel buffer too small").
			WithContext("len", len(pix))
	}
	if format != FormatRGBA8888 && format != FormatBGRA8888 {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "unsupported pixel format").
			WithContext("format", format.String())
	}
	img := &image.RGBA{Pix: pix, Stride: pitch, Rect: image.Rect(0, 0, w, h)}
	return &Surface{img: img, format: format, clip: geom.NewRect(0, 0, w, h)}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the full surface rectangle.
func (s *Surface) Bounds() geom.Rect { return geom.NewRect(0, 0, s.Width(), s.Height()) }

// Pitch returns the number of bytes between vertically adjacent pixels.
func (s *Surface) Pitch() int { return s.img.Stride }

// Format returns the pixel byte order.
func (s *Surface) Format() Format { return s.format }

// SameLayout reports whether both surfaces share pitch, dimensions and format,
// which is what byte-wise pixel operations require.
func (s *Surface) SameLayout(other *Surface) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Pitch() == other.Pitch() &&
		s.Width() == other.Width() &&
		s.Height() == other.Height() &&
		s.format == other.format
}

// Lock grants direct access to the pixel bytes. Locks nest.
func (s *Surface) Lock() []byte {
	s.locks++
	return s.img.Pix
}

// Unlock releases one Lock. Unlocking an unlocked surface is a contract
// violation and leaves the surface unchanged.
func (s *Surface) Unlock() error {
	if s.locks == 0 {
		return verrors.Contract("unlock of an unlocked surface")
	}
	s.locks--
	return nil
}

// Locked reports whether the pixels are currently locked.
func (s *Surface) Locked() bool { return s.locks > 0 }

// Clip returns the active clip rectangle.
func (s *Surface) Clip() geom.Rect { return s.clip }

// SetClip installs a new clip rectangle, limited to the surface bounds,
// and returns the previous one so callers can restore it.
func (s *Surface) SetClip(r geom.Rect) geom.Rect {
	prev := s.clip
	s.clip = r.Intersection(s.Bounds())
	return prev
}

// ResetClip clips to the full surface.
func (s *Surface) ResetClip() {
	s.clip = s.Bounds()
}

// RGBA returns the backing image. Its bytes follow Format().
func (s *Surface) RGBA() *image.RGBA { return s.img }

// encode converts a colour to the byte order of the surface so that writes
// through the RGBA view land in the right channels.
func (s *Surface) encode(c color.RGBA) color.RGBA {
	if s.format == FormatBGRA8888 {
		c.R, c.B = c.B, c.R
	}
	return c
}

// At returns the colour of the pixel at (x, y).
func (s *Surface) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(s.img.Rect) {
		return color.RGBA{}
	}
	return s.encode(s.img.RGBAAt(x, y))
}

// Set writes one pixel, honouring the clip.
func (s *Surface) Set(x, y int, c color.RGBA) {
	if !s.clip.Contains(x, y) {
		return
	}
	s.img.SetRGBA(x, y, s.encode(c))
}

// Fill paints r with c, honouring the clip.
func (s *Surface) Fill(r geom.Rect, c color.RGBA) {
	r = r.Intersection(s.clip)
	if r.Empty() {
		return
	}
	xdraw.Draw(s.img, r.Image(), image.NewUniform(s.encode(c)), image.Point{}, xdraw.Src)
}

// Clear fills the whole surface with c regardless of the clip.
func (s *Surface) Clear(c color.RGBA) {
	prev := s.clip
	s.clip = s.Bounds()
	s.Fill(s.clip, c)
	s.clip = prev
}

// Outline draws a one-pixel rectangle border.
func (s *Surface) Outline(r geom.Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	s.Fill(geom.NewRect(r.X, r.Y, r.Width, 1), c)
	s.Fill(geom.NewRect(r.X, r.Bottom()-1, r.Width, 1), c)
	s.Fill(geom.NewRect(r.X, r.Y, 1, r.Height), c)
	s.Fill(geom.NewRect(r.Right()-1, r.Y, 1, r.Height), c)
}

// Blit copies sr from src to dp on s, honouring the clip.
// Both surfaces must share a pixel format.
func (s *Surface) Blit(src *Surface, sr geom.Rect, dp geom.Point) error {
	if src == nil {
		return verrors.Contract("blit from nil surface")
	}
	if src.format != s.format {
		return verrors.New(verrors.ErrCodeSurfaceInvalid, "blit between pixel formats").
			WithContext("src", src.format.String()).WithContext("dst", s.format.String())
	}
	sr = sr.Intersection(src.Bounds())
	dr := geom.NewRect(dp.X, dp.Y, sr.Width, sr.Height)
	clipped := dr.Intersection(s.clip)
	if clipped.Empty() {
		return nil
	}
	sp := image.Pt(sr.X+clipped.X-dr.X, sr.Y+clipped.Y-dr.Y)
	xdraw.Draw(s.img, clipped.Image(), src.img, sp, xdraw.Src)
	return nil
}

// BlitBlend composites sr from src over s using alpha.
func (s *Surface) BlitBlend(src *Surface, sr geom.Rect, dp geom.Point) {
	if src == nil || src.format != s.format {
		return
	}
	sr = sr.Intersection(src.Bounds())
	dr := geom.NewRect(dp.X, dp.Y, sr.Width, sr.Height)
	clipped := dr.Intersection(s.clip)
	if clipped.Empty() {
		return
	}
	sp := image.Pt(sr.X+clipped.X-dr.X, sr.Y+clipped.Y-dr.Y)
	xdraw.Draw(s.img, clipped.Image(), src.img, sp, xdraw.Over)
}

// DrawScaled scales an arbitrary image into dst, honouring the clip.
func (s *Surface) DrawScaled(img image.Image, dst geom.Rect) {
	if img == nil || dst.Empty() {
		return
	}
	visible := dst.Intersection(s.clip)
	if visible.Empty() {
		return
	}
	// Scale into a scratch image of the full destination size, then copy the
	// visible part so clipping never distorts the scale factor.
	scratch := image.NewRGBA(image.Rect(0, 0, dst.Width, dst.Height))
	xdraw.ApproxBiLinear.Scale(scratch, scratch.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	if s.format == FormatBGRA8888 {
		swapRB(scratch.Pix)
	}
	sp := image.Pt(visible.X-dst.X, visible.Y-dst.Y)
	xdraw.Draw(s.img, visible.Image(), scratch, sp, xdraw.Over)
}

// Clone returns a deep copy with the same layout.
func (s *Surface) Clone() *Surface {
	pix := make([]byte, len(s.img.Pix))
	copy(pix, s.img.Pix)
	img := &image.RGBA{Pix: pix, Stride: s.img.Stride, Rect: s.img.Rect}
	return &Surface{img: img, format: s.format, clip: s.Bounds()}
}

// CopyFrom overwrites every pixel with src. Layouts must match.
func (s *Surface) CopyFrom(src *Surface) error {
	if !s.SameLayout(src) {
		return verrors.New(verrors.ErrCodeSurfaceInvalid, "copy between different layouts")
	}
	copy(s.img.Pix, src.img.Pix)
	return nil
}

func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += BytesPerPixel {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
