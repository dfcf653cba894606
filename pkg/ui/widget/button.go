package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// Button is a pressable control. Pointer clicks are routed by the handler;
// Enter and Space click the focused button.
type Button struct {
	Text    string
	pressed bool
	parts   *surface.Surface
}

// NewButton creates a button widget.
func NewButton(t *Tree, tag Tag, r geom.Rect, text string) *Widget {
	return t.New(KindButton, tag, r, &Button{Text: text})
}

// AcceptsFocus implements Focuser.
func (b *Button) AcceptsFocus(*Widget) bool { return true }

// Pressed reports whether the pointer is held on the button.
func (b *Button) Pressed() bool { return b.pressed }

// Load acquires the shared parts bitmap.
func (b *Button) Load(w *Widget) error {
	bm, err := w.tree.parts.Acquire()
	if err != nil {
		return err
	}
	b.parts = bm
	return nil
}

// Unload releases the parts bitmap.
func (b *Button) Unload(w *Widget) {
	if b.parts == nil {
		return
	}
	b.parts = nil
	_ = w.tree.parts.Release()
}

// HandleKey clicks on Enter or Space.
func (b *Button) HandleKey(w *Widget, ev terminal.KeyEvent) Result {
	if ev.Released {
		return Unhandled()
	}
	if ev.Key == terminal.KeyEnter || (ev.Key == terminal.KeyRune && ev.Rune == ' ') {
		return WithCommands(Click{Tag: w.tag})
	}
	return Unhandled()
}

// HandleMouse tracks the pressed state for painting. The click itself is
// reported by the handler, so the event is left unhandled.
func (b *Button) HandleMouse(w *Widget, ev terminal.MouseEvent) Result {
	var pressed bool
	switch {
	case ev.Action == terminal.MousePress && ev.Button == terminal.MouseLeft:
		pressed = true
	case ev.Action == terminal.MouseRelease:
		pressed = false
	default:
		return Unhandled()
	}
	if b.pressed != pressed {
		b.pressed = pressed
		w.invalidate()
	}
	return Unhandled()
}

// Paint draws the bevel, border and caption.
func (b *Button) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	r := w.ScreenRect()
	tile := PartButton
	if b.pressed {
		tile = PartButtonPressed
	}
	if b.parts != nil {
		src := tile.Source()
		s.DrawScaled(b.parts.RGBA().SubImage(src.Image()), r)
	} else {
		s.Fill(r, th.SurfaceRaised)
	}
	border := th.Border
	if w.focused {
		border = th.BorderFocus
	}
	s.Outline(r, border)
	fg := th.TextPrimary
	if !w.Active() {
		fg = th.TextMuted
	}
	drawAligned(s, r.Inset(0, 2, 0, 2), b.Text, AlignCenter, fg)
}
