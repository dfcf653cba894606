package effect

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

type stubEffect struct {
	Base
	life  time.Duration
	draws int
}

func newStub(kind Kind, seq int, area geom.Rect, life, now time.Duration) *stubEffect {
	return &stubEffect{Base: NewBase(kind, seq, area, now), life: life}
}

func (e *stubEffect) Draw(_ *surface.Surface, now time.Duration) bool {
	if e.Elapsed(now) >= e.life {
		return false
	}
	e.draws++
	return true
}

type recordingOwner struct {
	repaints []geom.Rect
	updates  []geom.Rect
}

func (o *recordingOwner) RepaintRect(r geom.Rect) { o.repaints = append(o.repaints, r) }
func (o *recordingOwner) UpdateRect(r geom.Rect)  { o.updates = append(o.updates, r) }

func newTestList() (*List, *backend.ManualClock, *recordingOwner) {
	clock := backend.NewManualClock()
	owner := &recordingOwner{}
	return NewList(owner, clock, nil, nil), clock, owner
}

func TestAddEffect_OrdersBySequenceStable(t *testing.T) {
	l, _, _ := newTestList()
	first := newStub(KindCustom, 5, geom.ZeroRect, time.Second, 0)
	high := newStub(KindCustom, 1, geom.ZeroRect, time.Second, 0)
	second := newStub(KindCustom, 5, geom.ZeroRect, time.Second, 0)

	l.AddEffect(first)
	l.AddEffect(high)
	l.AddEffect(second)

	got := l.Effects()
	require.Len(t, got, 3)
	assert.Same(t, high, got[0])
	assert.Same(t, first, got[1])
	assert.Same(t, second, got[2])
}

func TestDrawEffects_FreezeThenUnfreezeWithoutElapsedTime(t *testing.T) {
	l, clock, _ := newTestList()
	clock.Set(50 * time.Millisecond)
	e := newStub(KindCustom, 0, geom.NewRect(0, 0, 1, 1), time.Second, 10*time.Millisecond)
	l.AddEffect(e)
	s := surface.New(4, 4)

	l.DrawEffects(s, true)
	assert.True(t, l.Frozen())
	l.DrawEffects(s, false)

	assert.False(t, l.Frozen())
	assert.Equal(t, 10*time.Millisecond, e.Start, "zero frozen time shifts nothing")
	assert.Equal(t, 40*time.Millisecond, e.Elapsed(clock.Peek()))
}

func TestDrawEffects_FrozenIntervalIsSkipped(t *testing.T) {
	l, clock, _ := newTestList()
	e := newStub(KindCustom, 0, geom.NewRect(0, 0, 1, 1), time.Second, 0)
	l.AddEffect(e)
	s := surface.New(4, 4)

	clock.Set(100 * time.Millisecond)
	l.DrawEffects(s, false)
	require.Equal(t, 1, e.draws)

	l.DrawEffects(s, true)
	clock.Advance(5 * time.Second)
	l.DrawEffects(s, true)
	assert.Equal(t, 1, e.draws, "frozen effects do not advance")

	l.DrawEffects(s, false)
	assert.Equal(t, 5*time.Second, e.Start)
	assert.Equal(t, 100*time.Millisecond, e.Elapsed(clock.Peek()))
	assert.Equal(t, 2, e.draws, "still running after a long freeze")
}

func TestDrawEffects_FinishedRepaintRunningUpdates(t *testing.T) {
	l, clock, owner := newTestList()
	shortArea := geom.NewRect(0, 0, 2, 2)
	longArea := geom.NewRect(5, 5, 2, 2)
	short := newStub(KindFlash, 0, shortArea, 10*time.Millisecond, 0)
	long := newStub(KindBlink, 1, longArea, time.Second, 0)
	l.AddEffect(short)
	l.AddEffect(long)
	s := surface.New(10, 10)

	clock.Set(20 * time.Millisecond)
	l.DrawEffects(s, false)

	assert.Equal(t, []geom.Rect{shortArea}, owner.repaints)
	assert.Equal(t, []geom.Rect{longArea}, owner.updates)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 20*time.Millisecond, long.LastMove)
}

func TestRemoveEffectsOfType_SingleRepaint(t *testing.T) {
	l, _, owner := newTestList()
	l.AddEffect(newStub(KindToast, 0, geom.NewRect(0, 0, 2, 2), time.Second, 0))
	l.AddEffect(newStub(KindFlash, 0, geom.NewRect(9, 9, 1, 1), time.Second, 0))
	l.AddEffect(newStub(KindToast, 0, geom.NewRect(4, 4, 2, 2), time.Second, 0))

	assert.True(t, l.ContainsEffectOfType(KindToast))
	assert.Equal(t, 2, l.RemoveEffectsOfType(KindToast))

	assert.False(t, l.ContainsEffectOfType(KindToast))
	assert.True(t, l.ContainsEffectOfType(KindFlash))
	assert.Equal(t, []geom.Rect{geom.NewRect(0, 0, 6, 6)}, owner.repaints)

	assert.Equal(t, 0, l.RemoveEffectsOfType(KindBlink))
	assert.Len(t, owner.repaints, 1, "nothing removed, no repaint")
}

func TestRemoveByID(t *testing.T) {
	l, _, owner := newTestList()
	e := newStub(KindCustom, 0, geom.NewRect(1, 1, 1, 1), time.Second, 0)
	l.AddEffect(e)

	assert.True(t, l.Remove(e.ID))
	assert.False(t, l.Remove(e.ID))
	assert.Equal(t, []geom.Rect{geom.NewRect(1, 1, 1, 1)}, owner.repaints)
	assert.NotEmpty(t, e.ID)
}

func TestFlash_BlendsToBase(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	f := NewFlash(0, geom.NewRect(0, 0, 6, 6), white, black, 100*time.Millisecond, 0)

	assert.Equal(t, white, f.ColorAt(0))
	assert.Equal(t, black, f.ColorAt(100*time.Millisecond))

	s := surface.New(8, 8)
	assert.True(t, f.Draw(s, 0))
	assert.Equal(t, white, s.At(0, 0))
	assert.Equal(t, white, s.At(1, 1), "two pixel border")
	assert.False(t, f.Draw(s, 100*time.Millisecond))
}

func TestBlink_Phases(t *testing.T) {
	on := color.RGBA{R: 255, A: 255}
	off := color.RGBA{B: 255, A: 255}
	b := NewBlink(0, geom.NewRect(0, 0, 4, 4), on, off, 10*time.Millisecond, 2, 0)
	s := surface.New(4, 4)

	require.True(t, b.Draw(s, 5*time.Millisecond))
	assert.Equal(t, on, s.At(0, 0))
	require.True(t, b.Draw(s, 15*time.Millisecond))
	assert.Equal(t, off, s.At(0, 0))
	require.True(t, b.Draw(s, 39*time.Millisecond))
	assert.False(t, b.Draw(s, 40*time.Millisecond))
}
