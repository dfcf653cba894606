package effect

import (
	"time"

	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
)

// Owner is the handler whose display the effects draw on.
type Owner interface {
	// RepaintRect redraws the widgets under r, erasing effect pixels.
	RepaintRect(r geom.Rect)
	// UpdateRect pushes r to the host without repainting.
	UpdateRect(r geom.Rect)
}

// List keeps effects sorted by draw sequence, stable on ties.
type List struct {
	effects  []Effect
	owner    Owner
	clock    backend.Clock
	frozen   bool
	frozenAt time.Duration
	log      *logging.Logger
	metrics  *telemetry.Metrics
}

// NewList creates an empty list drawing for owner.
func NewList(owner Owner, clock backend.Clock, log *logging.Logger, metrics *telemetry.Metrics) *List {
	if clock == nil {
		clock = backend.NewSystemClock()
	}
	return &List{
		owner:   owner,
		clock:   clock,
		log:     log.WithCategory(logging.CategoryEffect),
		metrics: metrics,
	}
}

// SetOwner changes the owner notified about repaints.
func (l *List) SetOwner(o Owner) { l.owner = o }

// Clock returns the clock effects are timed against.
func (l *List) Clock() backend.Clock { return l.clock }

// AddEffect inserts e after every effect with a lower or equal sequence.
func (l *List) AddEffect(e Effect) {
	seq := e.Meta().Seq
	i := len(l.effects)
	for i > 0 && l.effects[i-1].Meta().Seq > seq {
		i--
	}
	l.effects = append(l.effects, nil)
	copy(l.effects[i+1:], l.effects[i:])
	l.effects[i] = e
	l.log.Debug("effect added", "id", e.Meta().ID, "kind", e.Meta().Kind.String(), "seq", seq)
	l.metrics.SetEffectsActive(len(l.effects))
}

// DrawEffects advances every effect by one frame. With freeze set nothing
// advances; the first call after a frozen stretch shifts every effect by the
// frozen duration so animations resume where they stopped. Finished effects
// are removed and their area repainted; running ones update their area.
func (l *List) DrawEffects(s *surface.Surface, freeze bool) {
	now := l.clock.Now()
	if freeze {
		if !l.frozen {
			l.frozen = true
			l.frozenAt = now
		}
		return
	}
	if l.frozen {
		l.unfreeze(now)
	}
	if len(l.effects) == 0 || s == nil {
		return
	}

	kept := l.effects[:0]
	removed := 0
	for _, e := range l.effects {
		b := e.Meta()
		if e.Draw(s, now) {
			b.LastMove = now
			kept = append(kept, e)
			l.update(b.Area)
			continue
		}
		removed++
		l.repaint(b.Area)
	}
	for i := len(kept); i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = kept
	if removed > 0 {
		l.metrics.SetEffectsActive(len(l.effects))
	}
}

func (l *List) unfreeze(now time.Duration) {
	shift := now - l.frozenAt
	for _, e := range l.effects {
		e.Meta().Shift(shift)
	}
	l.frozen = false
	l.log.Debug("effects unfrozen", "shift", shift, "count", len(l.effects))
}

// Freeze stops time for the effects until the next unfrozen draw.
func (l *List) Freeze() {
	if !l.frozen {
		l.frozen = true
		l.frozenAt = l.clock.Now()
	}
}

// Frozen reports whether the list is paused.
func (l *List) Frozen() bool { return l.frozen }

// RemoveEffectsOfType removes every effect of kind, repainting their
// combined area once.
func (l *List) RemoveEffectsOfType(kind Kind) int {
	var area geom.Rect
	kept := l.effects[:0]
	removed := 0
	for _, e := range l.effects {
		if e.Meta().Kind == kind {
			area = area.Union(e.Meta().Area)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = kept
	if removed > 0 {
		l.repaint(area)
		l.metrics.SetEffectsActive(len(l.effects))
	}
	return removed
}

// ContainsEffectOfType reports whether any effect of kind is scheduled.
func (l *List) ContainsEffectOfType(kind Kind) bool {
	for _, e := range l.effects {
		if e.Meta().Kind == kind {
			return true
		}
	}
	return false
}

// Remove deletes the effect with id and repaints its area.
func (l *List) Remove(id string) bool {
	for i, e := range l.effects {
		if e.Meta().ID == id {
			l.effects = append(l.effects[:i], l.effects[i+1:]...)
			l.repaint(e.Meta().Area)
			l.metrics.SetEffectsActive(len(l.effects))
			return true
		}
	}
	return false
}

// Clear drops every effect without repainting.
func (l *List) Clear() {
	l.effects = nil
	l.frozen = false
	l.metrics.SetEffectsActive(0)
}

// Len returns the number of scheduled effects.
func (l *List) Len() int { return len(l.effects) }

// Effects returns the effects in draw order.
func (l *List) Effects() []Effect {
	out := make([]Effect, len(l.effects))
	copy(out, l.effects)
	return out
}

func (l *List) repaint(r geom.Rect) {
	if l.owner != nil && !r.Empty() {
		l.owner.RepaintRect(r)
	}
}

func (l *List) update(r geom.Rect) {
	if l.owner != nil && !r.Empty() {
		l.owner.UpdateRect(r)
	}
}
