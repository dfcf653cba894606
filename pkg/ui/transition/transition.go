// Package transition animates the display between two rendered snapshots.
package transition

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Kind selects a transition.
type Kind int

const (
	Fade Kind = iota
	Pan
	Cut
)

// Default is the transition a selector resets to after use.
const Default = Fade

func (k Kind) String() string {
	switch k {
	case Fade:
		return "fade"
	case Pan:
		return "pan"
	case Cut:
		return "cut"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a configuration name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fade", "":
		return Fade, nil
	case "pan":
		return Pan, nil
	case "cut":
		return Cut, nil
	default:
		return Fade, verrors.New(verrors.ErrCodeConfigInvalid, fmt.Sprintf("unknown transition %q", name))
	}
}

// Presenter pushes finished frames to the host.
type Presenter interface {
	Present(s *surface.Surface, r geom.Rect)
}

// Options configures a Player.
type Options struct {
	Presenter Presenter
	Clock     backend.Clock
	Frame     time.Duration // Minimum spacing between frames; zero runs flat out
	Fade      time.Duration
	Pan       time.Duration
	Logger    *logging.Logger
	Metrics   *telemetry.Metrics
	// Sleep waits between frames. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Player plays transitions onto an output surface.
type Player struct {
	presenter Presenter
	clock     backend.Clock
	frame     time.Duration
	fade      time.Duration
	pan       time.Duration
	sleep     func(time.Duration)
	log       *logging.Logger
	metrics   *telemetry.Metrics
}

// NewPlayer creates a player.
func NewPlayer(opts Options) *Player {
	clock := opts.Clock
	if clock == nil {
		clock = backend.NewSystemClock()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Player{
		presenter: opts.Presenter,
		clock:     clock,
		frame:     opts.Frame,
		fade:      opts.Fade,
		pan:       opts.Pan,
		sleep:     sleep,
		log:       opts.Logger.WithCategory(logging.CategoryTransition),
		metrics:   opts.Metrics,
	}
}

// Play animates out from the from snapshot to the to snapshot. A nil
// snapshot stands for a black frame. out is left holding exactly to.
func (p *Player) Play(kind Kind, out, from, to *surface.Surface, dir Direction) error {
	if out == nil {
		return verrors.Contract("transition without an output surface")
	}
	start := p.clock.Now()
	var err error
	switch kind {
	case Cut:
		err = p.cut(out, to)
	case Pan:
		var pan *PanEffect
		pan, err = NewPan(out, from, to, dir)
		if err == nil {
			p.run(p.pan, out, pan.Step)
		}
	default:
		kind = Fade
		var fade *FadeEffect
		fade, err = NewFade(out, from, to)
		if err == nil {
			p.run(p.fade, out, fade.IncrementFade)
		}
	}
	if err != nil {
		p.log.Error("transition failed", "kind", kind.String(), "error", err)
		return err
	}
	elapsed := p.clock.Now() - start
	p.metrics.TransitionPlayed(kind.String(), elapsed)
	p.log.Debug("transition played", "kind", kind.String(), "elapsed", elapsed)
	return nil
}

func (p *Player) cut(out, to *surface.Surface) error {
	if to == nil {
		out.Clear(black)
	} else if err := out.CopyFrom(to); err != nil {
		return err
	}
	p.present(out)
	return nil
}

// run drives step from 0 to 1 over d of wall-clock time, independent of how
// fast frames can be produced. The last frame is always step(1).
func (p *Player) run(d time.Duration, out *surface.Surface, step func(ratio float64)) {
	start := p.clock.Now()
	for d > 0 {
		frameStart := p.clock.Now()
		elapsed := frameStart - start
		if elapsed >= d {
			break
		}
		step(float64(elapsed) / float64(d))
		p.present(out)
		if p.frame > 0 {
			if wait := frameStart + p.frame - p.clock.Now(); wait > 0 {
				p.sleep(wait)
			}
		}
	}
	step(1)
	p.present(out)
}

func (p *Player) present(out *surface.Surface) {
	if p.presenter != nil {
		p.presenter.Present(out, out.Bounds())
	}
}

var black = color.RGBA{A: 0xff}

// blackLike returns an opaque black surface with the layout of ref.
func blackLike(ref *surface.Surface) *surface.Surface {
	s := ref.Clone()
	s.Clear(black)
	return s
}
