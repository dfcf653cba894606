package handler

import (
	"time"

	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// Handler logic implements any subset of the interfaces below. Missing
// callbacks are no-ops, except that a quit without a QuitHandler
// deactivates the handler.

// Activator may veto activation.
type Activator interface {
	SetForActivate(h *Handler) bool
}

// ClickHandler is told about buttons activated by mouse, keyboard or hotkey.
type ClickHandler interface {
	OnClick(h *Handler, w *widget.Widget)
}

// KeyDownHandler sees key presses no widget consumed. It reports whether
// it handled the key.
type KeyDownHandler interface {
	OnKeyDown(h *Handler, ev terminal.KeyEvent) bool
}

// KeyUpHandler sees key releases on hosts that report them.
type KeyUpHandler interface {
	OnKeyUp(h *Handler, ev terminal.KeyEvent)
}

// KeyDownObserver runs after every key press, whoever handled it.
type KeyDownObserver interface {
	AfterKeyDown(h *Handler, ev terminal.KeyEvent)
}

// MouseDownHandler is told about pointer presses. w is the deepest widget
// hit, or nil when the press missed the handler.
type MouseDownHandler interface {
	OnMouseDown(h *Handler, w *widget.Widget, ev terminal.MouseEvent)
}

// MouseMotionHandler sees pointer motion.
type MouseMotionHandler interface {
	OnMouseMotion(h *Handler, ev terminal.MouseEvent)
}

// SelectChangeHandler is told about list selection changes.
type SelectChangeHandler interface {
	OnSelectChange(h *Handler, w *widget.Widget, index int)
}

// TextChangeHandler is told about edited text boxes.
type TextChangeHandler interface {
	OnTextChange(h *Handler, w *widget.Widget, text string)
}

// SubmitHandler is told about Enter in a text box.
type SubmitHandler interface {
	OnSubmit(h *Handler, w *widget.Widget, text string)
}

// DoubleClickHandler is told about two clicks on the same tag within the
// double-click interval. Without it the second click is a plain click.
type DoubleClickHandler interface {
	OnDoubleClick(h *Handler, w *widget.Widget)
}

// DragUpHandler is told when the pointer is released over a different
// widget than the one it was pressed on. to is nil outside the handler.
type DragUpHandler interface {
	OnDragUp(h *Handler, from, to *widget.Widget)
}

// BetweenEventsHandler runs whenever the event wait times out.
type BetweenEventsHandler interface {
	OnBetweenEvents(h *Handler, now time.Duration)
}

// QuitHandler decides what a host quit request means.
type QuitHandler interface {
	OnQuit(h *Handler)
}

// DeactivateHandler runs once the polling loop has ended.
type DeactivateHandler interface {
	OnDeactivate(h *Handler)
}
