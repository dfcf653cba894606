package transition

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

type recordingPresenter struct {
	frames []*surface.Surface
}

func (p *recordingPresenter) Present(s *surface.Surface, _ geom.Rect) {
	p.frames = append(p.frames, s.Clone())
}

func solid(w, h int, c color.RGBA) *surface.Surface {
	s := surface.New(w, h)
	s.Clear(c)
	return s
}

func noise(w, h int) *surface.Surface {
	s := surface.New(w, h)
	pix := s.Lock()
	for i := range pix {
		pix[i] = byte(i*37 + 11)
	}
	_ = s.Unlock()
	return s
}

func pixels(s *surface.Surface) []byte {
	pix := s.Lock()
	defer s.Unlock()
	out := make([]byte, len(pix))
	copy(out, pix)
	return out
}

func TestIncrementFade_ExtremesAreBitExact(t *testing.T) {
	from := noise(8, 6)
	to := solid(8, 6, color.RGBA{R: 200, G: 17, B: 255, A: 255})
	out := surface.New(8, 6)

	fade, err := NewFade(out, from, to)
	require.NoError(t, err)

	fade.IncrementFade(0)
	assert.Equal(t, pixels(from), pixels(out))

	fade.IncrementFade(1)
	assert.Equal(t, pixels(to), pixels(out))

	fade.IncrementFade(-0.5)
	assert.Equal(t, pixels(from), pixels(out))
	fade.IncrementFade(1.5)
	assert.Equal(t, pixels(to), pixels(out))
	assert.False(t, out.Locked())
}

func TestIncrementFade_IntegerBlend(t *testing.T) {
	from := solid(2, 2, color.RGBA{R: 255, G: 0, B: 100, A: 255})
	to := solid(2, 2, color.RGBA{R: 0, G: 255, B: 100, A: 255})
	out := surface.New(2, 2)
	fade, err := NewFade(out, from, to)
	require.NoError(t, err)

	fade.IncrementFade(0.5)

	r := uint32(0.5 * 255)
	want := color.RGBA{
		R: byte(((255 - r) * 255) >> 8),
		G: byte((r * 255) >> 8),
		B: byte(((255-r)*100 + r*100) >> 8),
		A: byte(((255-r)*255 + r*255) >> 8),
	}
	assert.Equal(t, want, out.At(1, 1))
}

func TestNewFade_NilIsBlack(t *testing.T) {
	out := surface.New(3, 3)
	fade, err := NewFade(out, nil, solid(3, 3, color.RGBA{R: 9, A: 255}))
	require.NoError(t, err)

	fade.IncrementFade(0)
	assert.Equal(t, color.RGBA{A: 255}, out.At(2, 2))
}

func TestNewFade_RejectsLayoutMismatch(t *testing.T) {
	out := surface.New(4, 4)
	_, err := NewFade(out, surface.New(4, 4), surface.New(5, 4))
	require.Error(t, err)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid))

	bgra, err := surface.FromPixels(make([]byte, 4*4*4), 4, 4, 16, surface.FormatBGRA8888)
	require.NoError(t, err)
	_, err = NewFade(out, bgra, nil)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeSurfaceInvalid))
}

func TestPan_EndsOnTarget(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for _, dir := range []Direction{Left, Right, Up, Down} {
		t.Run(dir.String(), func(t *testing.T) {
			out := surface.New(10, 4)
			pan, err := NewPan(out, solid(10, 4, red), solid(10, 4, blue), dir)
			require.NoError(t, err)

			pan.Step(0)
			assert.Equal(t, red, out.At(5, 2))
			pan.Step(1)
			assert.Equal(t, blue, out.At(0, 0))
			assert.Equal(t, blue, out.At(9, 3))
		})
	}
}

func TestPan_HalfwayLeft(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	out := surface.New(10, 2)
	pan, err := NewPan(out, solid(10, 2, red), solid(10, 2, blue), Left)
	require.NoError(t, err)

	pan.Step(0.5)
	assert.Equal(t, red, out.At(4, 0))
	assert.Equal(t, blue, out.At(5, 0))
}

func TestPan_RandomResolvesDirection(t *testing.T) {
	pan, err := NewPan(surface.New(2, 2), nil, nil, Random)
	require.NoError(t, err)
	assert.NotEqual(t, Random, pan.Direction())
}

func TestPlayer_FadeRunsOnWallClock(t *testing.T) {
	clock := backend.NewManualClock()
	clock.SetStep(10 * time.Millisecond)
	presenter := &recordingPresenter{}
	player := NewPlayer(Options{
		Presenter: presenter,
		Clock:     clock,
		Fade:      100 * time.Millisecond,
	})
	from := solid(4, 4, color.RGBA{R: 255, A: 255})
	to := solid(4, 4, color.RGBA{G: 255, A: 255})
	out := from.Clone()

	require.NoError(t, player.Play(Fade, out, from, to, Random))

	require.NotEmpty(t, presenter.frames)
	assert.Less(t, len(presenter.frames), 20)
	assert.Equal(t, pixels(to), pixels(presenter.frames[len(presenter.frames)-1]))
	assert.Equal(t, pixels(to), pixels(out))
}

func TestPlayer_FrameSpacingSleeps(t *testing.T) {
	clock := backend.NewManualClock()
	var slept []time.Duration
	player := NewPlayer(Options{
		Clock: clock,
		Frame: 16 * time.Millisecond,
		Pan:   40 * time.Millisecond,
		Sleep: func(d time.Duration) {
			slept = append(slept, d)
			clock.Advance(d)
		},
	})
	out := surface.New(4, 4)

	require.NoError(t, player.Play(Pan, out, nil, solid(4, 4, color.RGBA{B: 1, A: 255}), Up))

	assert.Equal(t, []time.Duration{16 * time.Millisecond, 16 * time.Millisecond, 16 * time.Millisecond}, slept)
}

func TestPlayer_Cut(t *testing.T) {
	presenter := &recordingPresenter{}
	player := NewPlayer(Options{Presenter: presenter, Clock: backend.NewManualClock()})
	out := surface.New(3, 3)
	to := noise(3, 3)

	require.NoError(t, player.Play(Cut, out, nil, to, Random))
	assert.Equal(t, pixels(to), pixels(out))
	assert.Len(t, presenter.frames, 1)

	require.NoError(t, player.Play(Cut, out, to, nil, Random))
	assert.Equal(t, color.RGBA{A: 255}, out.At(0, 0))
}

func TestPlayer_RequiresOutput(t *testing.T) {
	player := NewPlayer(Options{Clock: backend.NewManualClock()})
	err := player.Play(Cut, nil, nil, nil, Random)
	assert.True(t, verrors.IsContract(err))
}

func TestSelector_ResetsAfterTake(t *testing.T) {
	sel := NewSelector(Fade)
	sel.SetPan(Down)

	kind, dir := sel.Take()
	assert.Equal(t, Pan, kind)
	assert.Equal(t, Down, dir)

	kind, dir = sel.Take()
	assert.Equal(t, Fade, kind)
	assert.Equal(t, Random, dir)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Cut ")
	require.NoError(t, err)
	assert.Equal(t, Cut, k)

	_, err = ParseKind("wipe")
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeConfigInvalid))
}
