// Package handler runs event-handler widgets: screens and dialogs that own a
// focus list, animated widgets and effects, and consume host events until
// they deactivate. Nested activations form an explicit stack in a Driver.
package handler

import (
	"time"

	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/ui/effect"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// Handler is the event-handling state attached to a screen or dialog root.
type Handler struct {
	driver *Driver
	root   *widget.Widget
	logic  any
	base   any // Built-in behaviour consulted after logic

	focus    *FocusList
	animated []widget.ID
	effects  *effect.List

	active       bool
	deactivating bool

	pressed   widget.ID
	lastClick struct {
		tag widget.Tag
		at  time.Duration
		ok  bool
	}

	log *logging.Logger
}

// New creates a handler with a fresh root widget of kind. Its logic may
// implement any of the callback interfaces in this package, and
// widget.Painter to draw the root background.
func New(d *Driver, kind widget.Kind, tag widget.Tag, r geom.Rect, logic any) *Handler {
	var b widget.Behavior = backdrop{}
	if p, ok := logic.(widget.Painter); ok {
		b = p
	}
	h := &Handler{
		driver: d,
		logic:  logic,
		focus:  NewFocusList(d.tree),
		log:    d.log,
	}
	h.root = d.tree.New(kind, tag, r, b)
	h.root.SetRegistrar(h)
	h.effects = effect.NewList(h, d.clock, d.rawLog, d.metrics)
	return h
}

// SetFallback installs built-in behaviour consulted after the logic.
func (h *Handler) SetFallback(b any) { h.base = b }

// Root returns the handler's root widget.
func (h *Handler) Root() *widget.Widget { return h.root }

// Tree returns the widget arena.
func (h *Handler) Tree() *widget.Tree { return h.driver.tree }

// Driver returns the driver the handler runs on.
func (h *Handler) Driver() *Driver { return h.driver }

// Logic returns the callback implementation.
func (h *Handler) Logic() any { return h.logic }

// Focus returns the focus list.
func (h *Handler) Focus() *FocusList { return h.focus }

// Effects returns the overlay effects drawn while the handler is on top.
func (h *Handler) Effects() *effect.List { return h.effects }

// AddWidget adds w below the root.
func (h *Handler) AddWidget(w *widget.Widget, loadNow bool) error {
	return h.root.AddWidget(w, loadNow)
}

// Widget finds a visible descendant by tag.
func (h *Handler) Widget(tag widget.Tag) *widget.Widget {
	return h.root.GetWidget(tag, true)
}

// Active reports whether the handler's polling loop is running.
func (h *Handler) Active() bool { return h.active }

// IsDeactivating reports whether Deactivate was called during the current
// activation. Callbacks check it to skip work after the loop was told to end.
func (h *Handler) IsDeactivating() bool { return h.deactivating }

// Deactivate ends the polling loop after the current dispatch. Repeated
// calls are no-ops.
func (h *Handler) Deactivate() {
	if h.deactivating {
		return
	}
	h.deactivating = true
	h.log.Debug("handler deactivating", "handler", h.root.String())
}

// Activate runs the polling loop until the handler deactivates.
func (h *Handler) Activate() error {
	return h.driver.Run(h)
}

// SetForActivate lets the logic prepare for, or veto, activation.
func (h *Handler) SetForActivate() bool {
	ok := true
	h.each(func(x any) {
		if a, is := x.(Activator); is && ok {
			ok = a.SetForActivate(h)
		}
	})
	return ok
}

// RegisterWidget implements widget.Registrar.
func (h *Handler) RegisterWidget(w *widget.Widget) {
	if _, ok := w.Behavior().(widget.Focuser); ok {
		h.focus.Register(w)
	}
	if widget.IsAnimated(w) {
		for _, id := range h.animated {
			if id == w.ID() {
				return
			}
		}
		h.animated = append(h.animated, w.ID())
	}
}

// UnregisterWidget implements widget.Registrar.
func (h *Handler) UnregisterWidget(w *widget.Widget) {
	h.focus.Unregister(w)
	for i, id := range h.animated {
		if id == w.ID() {
			h.animated = append(h.animated[:i], h.animated[i+1:]...)
			break
		}
	}
	if h.pressed == w.ID() {
		h.pressed = widget.NoID
	}
}

// Animated returns the number of registered animated widgets.
func (h *Handler) Animated() int { return len(h.animated) }

// RepaintRect implements effect.Owner.
func (h *Handler) RepaintRect(r geom.Rect) {
	h.root.RepaintRect(r)
}

// UpdateRect implements effect.Owner.
func (h *Handler) UpdateRect(r geom.Rect) {
	if d := h.driver.tree.Display(); d != nil {
		d.Update(r)
	}
}

// Paint repaints the whole handler and pushes it to the host.
func (h *Handler) Paint() {
	h.root.Paint(true)
}

// animate advances every shown animated widget.
func (h *Handler) animate(now time.Duration) {
	for _, id := range h.animated {
		w := h.driver.tree.Get(id)
		if w == nil || !w.Shown() {
			continue
		}
		if a, ok := w.Behavior().(widget.Animator); ok {
			a.Animate(w, now)
		}
	}
}

// each calls fn with the logic, then the built-in behaviour.
func (h *Handler) each(fn func(any)) {
	if h.logic != nil {
		fn(h.logic)
	}
	if h.base != nil {
		fn(h.base)
	}
}

// backdrop fills a screen with the theme background and frames dialogs.
type backdrop struct{}

func (backdrop) Paint(w *widget.Widget, s *surface.Surface) {
	th := w.Tree().Theme()
	r := w.ScreenRect()
	if w.Kind() == widget.KindDialog {
		s.Fill(r, th.SurfaceRaised)
		s.Outline(r, th.BorderFocus)
		return
	}
	s.Fill(r, th.Background)
}
