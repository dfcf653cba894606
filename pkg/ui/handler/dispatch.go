package handler

import (
	"time"

	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// Dispatch routes one host event to the handler's widgets and logic.
func (h *Handler) Dispatch(ev terminal.Event) {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		h.driver.metrics.EventDispatched("key")
		h.dispatchKey(e)
	case terminal.MouseEvent:
		h.driver.metrics.EventDispatched("mouse")
		h.dispatchMouse(e)
	case terminal.PasteEvent:
		h.driver.metrics.EventDispatched("paste")
		h.dispatchPaste(e)
	case terminal.QuitEvent:
		h.driver.metrics.EventDispatched("quit")
		h.quit()
	}
}

// BetweenEvents runs the idle work of one loop iteration.
func (h *Handler) BetweenEvents(now time.Duration) {
	h.animate(now)
	h.each(func(x any) {
		if b, ok := x.(BetweenEventsHandler); ok {
			b.OnBetweenEvents(h, now)
		}
	})
}

func (h *Handler) dispatchKey(ev terminal.KeyEvent) {
	if ev.Released {
		h.each(func(x any) {
			if k, ok := x.(KeyUpHandler); ok {
				k.OnKeyUp(h, ev)
			}
		})
		return
	}
	h.log.Debug("key", "handler", h.root.String(), "key", int(ev.Key), "rune", string(ev.Rune))
	h.handleKeyDown(ev)
	h.each(func(x any) {
		if o, ok := x.(KeyDownObserver); ok {
			o.AfterKeyDown(h, ev)
		}
	})
}

func (h *Handler) handleKeyDown(ev terminal.KeyEvent) {
	// A focused text field sees keys before hotkeys so typing never
	// triggers them.
	focused := h.focus.Current()
	if focused != nil && !focused.Active() {
		focused = nil
	}
	editing := focused != nil && focused.Kind() == widget.KindTextBox
	if editing && h.offerKey(focused, ev) {
		return
	}

	if tag, ok := h.root.GetHotkeyTag(ev.Code()); ok {
		w := h.root.GetWidget(tag, true)
		switch {
		case w == nil:
			h.log.Debug("hotkey without target", "tag", int(tag))
		case !w.Active():
			h.log.Debug("hotkey target inactive", "tag", int(tag), "widget", w.String())
		default:
			h.log.Debug("hotkey", "tag", int(tag), "widget", w.String())
			h.click(w)
			return
		}
	}

	switch ev.Key {
	case terminal.KeyTab:
		if ev.Shift {
			h.focus.FocusPrev()
		} else {
			h.focus.FocusNext()
		}
		return
	case terminal.KeyBacktab:
		h.focus.FocusPrev()
		return
	}

	if focused != nil && !editing && h.offerKey(focused, ev) {
		return
	}

	handled := false
	h.each(func(x any) {
		if k, ok := x.(KeyDownHandler); ok && !handled && !h.deactivating {
			handled = k.OnKeyDown(h, ev)
		}
	})
}

func (h *Handler) dispatchMouse(ev terminal.MouseEvent) {
	switch ev.Action {
	case terminal.MouseMove:
		h.each(func(x any) {
			if m, ok := x.(MouseMotionHandler); ok {
				m.OnMouseMotion(h, ev)
			}
		})
	case terminal.MousePress:
		h.mousePress(ev)
	case terminal.MouseRelease:
		h.mouseRelease(ev)
	}
}

func (h *Handler) hit(x, y int) *widget.Widget {
	w := h.root.GetWidgetContainingCoords(x, y, widget.KindAny)
	if w == h.root {
		return nil
	}
	return w
}

func (h *Handler) mousePress(ev terminal.MouseEvent) {
	target := h.hit(ev.X, ev.Y)
	if ev.Button == terminal.MouseWheelUp || ev.Button == terminal.MouseWheelDown {
		h.bubbleMouse(target, ev)
		return
	}
	if target != nil {
		h.focus.SetFocus(target)
		h.pressed = target.ID()
		h.bubbleMouse(target, ev)
	} else {
		h.pressed = widget.NoID
	}
	h.each(func(x any) {
		if m, ok := x.(MouseDownHandler); ok && !h.deactivating {
			m.OnMouseDown(h, target, ev)
		}
	})
}

func (h *Handler) mouseRelease(ev terminal.MouseEvent) {
	pressed := h.driver.tree.Get(h.pressed)
	h.pressed = widget.NoID
	if pressed == nil {
		return
	}
	if mh, ok := pressed.Behavior().(widget.MouseHandler); ok {
		h.apply(pressed, mh.HandleMouse(pressed, ev))
	}

	over := h.hit(ev.X, ev.Y)
	if over != pressed {
		h.each(func(x any) {
			if d, ok := x.(DragUpHandler); ok && !h.deactivating {
				d.OnDragUp(h, pressed, over)
			}
		})
		return
	}

	now := h.driver.clock.Now()
	if h.isDoubleClick(pressed, now) {
		h.lastClick.ok = false
		double := false
		h.each(func(x any) {
			if d, ok := x.(DoubleClickHandler); ok && !h.deactivating {
				double = true
				d.OnDoubleClick(h, pressed)
			}
		})
		if double {
			return
		}
	} else {
		h.lastClick.tag = pressed.Tag()
		h.lastClick.at = now
		h.lastClick.ok = pressed.Tag() != widget.NoTag
	}
	if clickable(pressed) {
		h.click(pressed)
	}
}

func (h *Handler) isDoubleClick(w *widget.Widget, now time.Duration) bool {
	return h.lastClick.ok &&
		w.Tag() != widget.NoTag &&
		h.lastClick.tag == w.Tag() &&
		now-h.lastClick.at <= h.driver.doubleClick
}

// bubbleMouse offers ev to w and then its ancestors below the root until
// one handles it.
func (h *Handler) bubbleMouse(w *widget.Widget, ev terminal.MouseEvent) {
	for cur := w; cur != nil && cur != h.root; cur = cur.Parent() {
		mh, ok := cur.Behavior().(widget.MouseHandler)
		if !ok {
			continue
		}
		res := mh.HandleMouse(cur, ev)
		h.apply(cur, res)
		if res.Handled {
			return
		}
	}
}

func (h *Handler) dispatchPaste(ev terminal.PasteEvent) {
	w := h.focus.Current()
	if w == nil || !w.Active() {
		return
	}
	if tb, ok := w.Behavior().(*widget.TextBox); ok {
		h.apply(w, tb.Insert(w, ev.Text))
	}
}

func (h *Handler) quit() {
	handled := false
	h.each(func(x any) {
		if q, ok := x.(QuitHandler); ok && !handled {
			handled = true
			q.OnQuit(h)
		}
	})
	if !handled {
		h.Deactivate()
	}
}

// offerKey passes ev to w's key handler and applies the result. It reports
// whether w consumed the key.
func (h *Handler) offerKey(w *widget.Widget, ev terminal.KeyEvent) bool {
	kh, ok := w.Behavior().(widget.KeyHandler)
	if !ok {
		return false
	}
	res := kh.HandleKey(w, ev)
	h.apply(w, res)
	return res.Handled
}

// click reports an activated widget to the logic.
func (h *Handler) click(w *widget.Widget) {
	h.log.Debug("click", "widget", w.String())
	h.each(func(x any) {
		if c, ok := x.(ClickHandler); ok && !h.deactivating {
			c.OnClick(h, w)
		}
	})
}

// apply executes the commands of a widget callback. Commands run whether or
// not the event was consumed.
func (h *Handler) apply(src *widget.Widget, res widget.Result) {
	for _, cmd := range res.Commands {
		if h.deactivating {
			return
		}
		switch c := cmd.(type) {
		case widget.Click:
			target := src
			if target == nil || target.Tag() != c.Tag {
				target = h.root.GetWidget(c.Tag, true)
			}
			if target != nil {
				h.click(target)
			}
		case widget.SelectChange:
			h.each(func(x any) {
				if s, ok := x.(SelectChangeHandler); ok {
					s.OnSelectChange(h, src, c.Index)
				}
			})
		case widget.TextChange:
			h.each(func(x any) {
				if t, ok := x.(TextChangeHandler); ok {
					t.OnTextChange(h, src, c.Text)
				}
			})
		case widget.Submit:
			h.each(func(x any) {
				if s, ok := x.(SubmitHandler); ok {
					s.OnSubmit(h, src, c.Text)
				}
			})
		case widget.FocusNext:
			h.focus.FocusNext()
		case widget.FocusPrev:
			h.focus.FocusPrev()
		}
	}
}

// clickable widgets report OnClick when pressed and released in place.
func clickable(w *widget.Widget) bool {
	switch w.Kind() {
	case widget.KindButton, widget.KindImage:
		return w.Active()
	default:
		return false
	}
}
