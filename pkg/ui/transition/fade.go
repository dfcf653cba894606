package transition

import (
	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// FadeEffect cross-fades two pixel snapshots into an output surface.
type FadeEffect struct {
	out      *surface.Surface
	from, to []byte
}

// NewFade captures both snapshots. They must share pitch, dimensions and
// channel layout with out; a nil snapshot is a black frame.
func NewFade(out, from, to *surface.Surface) (*FadeEffect, error) {
	if out == nil {
		return nil, verrors.Contract("fade without an output surface")
	}
	if from == nil {
		from = blackLike(out)
	}
	if to == nil {
		to = blackLike(out)
	}
	if !out.SameLayout(from) || !out.SameLayout(to) {
		return nil, verrors.New(verrors.ErrCodeSurfaceInvalid, "fade snapshots differ in layout").
			WithContext("from", from.Format().String()).
			WithContext("to", to.Format().String())
	}
	return &FadeEffect{
		out:  out,
		from: snapshot(from),
		to:   snapshot(to),
	}, nil
}

// IncrementFade writes the blend at ratio in [0,1] into the output. Every
// channel is ((255-r)*from + r*to) >> 8 with r = ratio*255; the endpoints
// copy their snapshot exactly.
func (f *FadeEffect) IncrementFade(ratio float64) {
	pix := f.out.Lock()
	defer f.out.Unlock()

	switch {
	case ratio <= 0:
		copy(pix, f.from)
		return
	case ratio >= 1:
		copy(pix, f.to)
		return
	}
	r := uint32(ratio * 255)
	inv := 255 - r
	n := min(len(pix), len(f.from), len(f.to))
	for i := 0; i < n; i++ {
		pix[i] = byte((inv*uint32(f.from[i]) + r*uint32(f.to[i])) >> 8)
	}
}

func snapshot(s *surface.Surface) []byte {
	pix := s.Lock()
	defer s.Unlock()
	out := make([]byte, len(pix))
	copy(out, pix)
	return out
}
