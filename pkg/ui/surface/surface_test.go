package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/geom"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestFill_HonoursClip(t *testing.T) {
	s := New(10, 10)
	prev := s.SetClip(geom.NewRect(2, 2, 3, 3))
	s.Fill(s.Bounds(), red)
	s.SetClip(prev)

	assert.Equal(t, red, s.At(2, 2))
	assert.Equal(t, red, s.At(4, 4))
	assert.Equal(t, color.RGBA{}, s.At(5, 5), "pixels outside the clip stay untouched")
	assert.Equal(t, color.RGBA{}, s.At(1, 2))
	assert.Equal(t, s.Bounds(), s.Clip(), "previous clip restored")
}

func TestSetClip_LimitedToBounds(t *testing.T) {
	s := New(8, 8)
	s.SetClip(geom.NewRect(-4, -4, 100, 6))
	assert.Equal(t, geom.NewRect(0, 0, 8, 2), s.Clip())
}

func TestUnlock_Unbalanced(t *testing.T) {
	s := New(2, 2)

	err := s.Unlock()
	require.Error(t, err)
	assert.True(t, verrors.IsContract(err))

	pix := s.Lock()
	assert.Len(t, pix, 2*2*BytesPerPixel)
	s.Lock()
	assert.True(t, s.Locked())
	require.NoError(t, s.Unlock())
	assert.True(t, s.Locked(), "locks nest")
	require.NoError(t, s.Unlock())
	assert.False(t, s.Locked())
}

func TestBlit_ClipsSourceAndDestination(t *testing.T) {
	src := New(4, 4)
	src.Fill(src.Bounds(), blue)
	dst := New(6, 6)

	require.NoError(t, dst.Blit(src, src.Bounds(), geom.Point{X: 4, Y: 4}))

	assert.Equal(t, blue, dst.At(4, 4))
	assert.Equal(t, blue, dst.At(5, 5))
	assert.Equal(t, color.RGBA{}, dst.At(3, 3))
}

func TestBlit_FormatMismatch(t *testing.T) {
	pix := make([]byte, 4*4*BytesPerPixel)
	bgra, err := FromPixels(pix, 4, 4, 4*BytesPerPixel, FormatBGRA8888)
	require.NoError(t, err)

	err = New(4, 4).Blit(bgra, bgra.Bounds(), geom.Point{})
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid))
}

func TestFromPixels_BGRAStoresSwappedBytes(t *testing.T) {
	pix := make([]byte, 2*1*BytesPerPixel)
	s, err := FromPixels(pix, 2, 1, 2*BytesPerPixel, FormatBGRA8888)
	require.NoError(t, err)

	s.Fill(s.Bounds(), red)

	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0, 255, 255}, pix)
	assert.Equal(t, red, s.At(1, 0), "At decodes back to logical colour")
}

func TestFromPixels_Validation(t *testing.T) {
	_, err := FromPixels(make([]byte, 16), 0, 1, 4, FormatRGBA8888)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid))

	_, err = FromPixels(make([]byte, 16), 4, 1, 8, FormatRGBA8888)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid), "short pitch")

	_, err = FromPixels(make([]byte, 8), 2, 2, 8, FormatRGBA8888)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid), "short buffer")

	s, err := FromPixels(make([]byte, 40), 2, 2, 20, FormatRGBA8888)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Pitch())
}

func TestSameLayoutAndCopy(t *testing.T) {
	a := New(3, 3)
	b := New(3, 3)
	c := New(3, 4)

	assert.True(t, a.SameLayout(b))
	assert.False(t, a.SameLayout(c))
	assert.False(t, a.SameLayout(nil))

	b.Fill(b.Bounds(), white)
	require.NoError(t, a.CopyFrom(b))
	assert.Equal(t, white, a.At(1, 1))
	assert.Error(t, a.CopyFrom(c))
}

func TestClone_IsIndependent(t *testing.T) {
	a := New(2, 2)
	a.Fill(a.Bounds(), red)
	b := a.Clone()
	b.Fill(b.Bounds(), blue)

	assert.Equal(t, red, a.At(0, 0))
	assert.Equal(t, blue, b.At(0, 0))
}

func TestOutline(t *testing.T) {
	s := New(5, 5)
	s.Outline(geom.NewRect(0, 0, 5, 5), white)

	assert.Equal(t, white, s.At(0, 0))
	assert.Equal(t, white, s.At(4, 2))
	assert.Equal(t, color.RGBA{}, s.At(2, 2))
}

func TestDrawScaled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, red)

	s := New(4, 4)
	s.DrawScaled(img, geom.NewRect(0, 0, 4, 4))
	assert.Equal(t, red, s.At(3, 3))
}

func TestDrawText_ClippedAndMeasured(t *testing.T) {
	s := New(40, 20)
	s.SetClip(geom.NewRect(0, 0, 7, 20))

	w := s.DrawText(0, 0, "AB", white)
	assert.Equal(t, 2*GlyphWidth, w)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 7; x < 40; x++ {
			if s.At(x, y) != (color.RGBA{}) {
				lit++
			}
		}
	}
	assert.Zero(t, lit, "glyphs outside the clip are not drawn")

	assert.Equal(t, 2*GlyphWidth, TextWidth("世"), "wide runes take two cells")
	assert.Equal(t, geom.NewRect(1, 2, 3*GlyphWidth, LineHeight), TextRect(1, 2, "abc"))
}
