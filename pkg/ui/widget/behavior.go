package widget

import (
	"time"

	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// Behavior is the variant-specific part of a widget. It implements any of
// the optional capability interfaces below; absent capabilities are no-ops.
type Behavior any

// Initializer runs once when the widget is created.
type Initializer interface {
	Init(w *Widget)
}

// Painter draws the widget itself. Children are painted afterwards by the tree.
type Painter interface {
	Paint(w *Widget, s *surface.Surface)
}

// Loader acquires external resources.
type Loader interface {
	Load(w *Widget) error
}

// Unloader releases what Load acquired.
type Unloader interface {
	Unload(w *Widget)
}

// Destroyer runs when the widget is freed.
type Destroyer interface {
	Destroy(w *Widget)
}

// Focuser marks widgets that take keyboard focus.
type Focuser interface {
	AcceptsFocus(w *Widget) bool
}

// FocusNotifier is told when focus arrives or leaves.
type FocusNotifier interface {
	FocusChanged(w *Widget, focused bool)
}

// KeyHandler consumes key events while the widget has focus.
type KeyHandler interface {
	HandleKey(w *Widget, ev terminal.KeyEvent) Result
}

// MouseHandler consumes pointer events that hit the widget. Unhandled
// events bubble to the parent.
type MouseHandler interface {
	HandleMouse(w *Widget, ev terminal.MouseEvent) Result
}

// Animator is polled every frame while registered with a handler.
type Animator interface {
	Animate(w *Widget, now time.Duration)
}

// Registrar is implemented by event handlers; it tracks focusable and
// animated descendants.
type Registrar interface {
	RegisterWidget(w *Widget)
	UnregisterWidget(w *Widget)
}

// Result is returned from event callbacks.
type Result struct {
	Handled  bool      // Was the event consumed?
	Commands []Command // Notifications for the enclosing handler
}

// Handled returns a result indicating the event was consumed.
func Handled() Result {
	return Result{Handled: true}
}

// Unhandled returns a result indicating the event was not consumed.
func Unhandled() Result {
	return Result{}
}

// WithCommands returns a handled result carrying commands.
func WithCommands(cmds ...Command) Result {
	return Result{Handled: true, Commands: cmds}
}

// Command is a notification emitted by a widget for its handler.
type Command interface {
	isCommand()
}

// Click reports that a widget was activated from the keyboard.
type Click struct {
	Tag Tag
}

func (Click) isCommand() {}

// SelectChange reports a new selection in a list.
type SelectChange struct {
	Tag   Tag
	Index int
}

func (SelectChange) isCommand() {}

// TextChange reports edited text box content.
type TextChange struct {
	Tag  Tag
	Text string
}

func (TextChange) isCommand() {}

// Submit reports Enter pressed in a text box.
type Submit struct {
	Tag  Tag
	Text string
}

func (Submit) isCommand() {}

// FocusNext requests focus move to the next focusable widget.
type FocusNext struct{}

func (FocusNext) isCommand() {}

// FocusPrev requests focus move to the previous focusable widget.
type FocusPrev struct{}

func (FocusPrev) isCommand() {}

// CanFocus reports whether w currently accepts focus: it must be active
// and its behavior must ask for focus.
func CanFocus(w *Widget) bool {
	if w == nil || w.destroyed {
		return false
	}
	f, ok := w.behavior.(Focuser)
	if !ok || !f.AcceptsFocus(w) {
		return false
	}
	return w.Active()
}

// IsAnimated reports whether w should be polled every frame.
func IsAnimated(w *Widget) bool {
	_, ok := w.behavior.(Animator)
	return ok
}
