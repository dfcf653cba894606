package widget

import (
	"unicode"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// TextBox is a single-line text entry field.
type TextBox struct {
	Placeholder string
	MaxLen      int // Zero means unlimited

	text   []rune
	cursor int
	first  int // First visible rune
}

// NewTextBox creates a text box widget.
func NewTextBox(t *Tree, tag Tag, r geom.Rect, maxLen int) *Widget {
	return t.New(KindTextBox, tag, r, &TextBox{MaxLen: maxLen})
}

// TextOf returns the content of a text box widget, or "" for other kinds.
func TextOf(w *Widget) string {
	if tb, ok := w.behavior.(*TextBox); ok {
		return tb.Text()
	}
	return ""
}

// SetTextOf replaces the content of a text box widget.
func SetTextOf(w *Widget, text string) {
	if tb, ok := w.behavior.(*TextBox); ok {
		tb.SetText(text)
		tb.scrollToCursor(w.bounds.Width)
		w.invalidate()
	}
}

// Text returns the current content.
func (tb *TextBox) Text() string { return string(tb.text) }

// SetText replaces the content and moves the cursor to the end.
func (tb *TextBox) SetText(text string) {
	tb.text = []rune(text)
	if tb.MaxLen > 0 && len(tb.text) > tb.MaxLen {
		tb.text = tb.text[:tb.MaxLen]
	}
	tb.cursor = len(tb.text)
	tb.first = 0
}

// CursorPos returns the cursor position in runes.
func (tb *TextBox) CursorPos() int { return tb.cursor }

// AcceptsFocus implements Focuser.
func (tb *TextBox) AcceptsFocus(*Widget) bool { return true }

// HandleKey edits the content.
func (tb *TextBox) HandleKey(w *Widget, ev terminal.KeyEvent) Result {
	if ev.Released {
		return Unhandled()
	}
	changed := false
	switch ev.Key {
	case terminal.KeyEnter:
		return WithCommands(Submit{Tag: w.tag, Text: tb.Text()})

	case terminal.KeyBackspace:
		if tb.cursor > 0 {
			tb.text = append(tb.text[:tb.cursor-1], tb.text[tb.cursor:]...)
			tb.cursor--
			changed = true
		}

	case terminal.KeyDelete:
		if tb.cursor < len(tb.text) {
			tb.text = append(tb.text[:tb.cursor], tb.text[tb.cursor+1:]...)
			changed = true
		}

	case terminal.KeyLeft:
		if ev.Ctrl {
			tb.cursor = tb.wordBoundaryLeft()
		} else if tb.cursor > 0 {
			tb.cursor--
		}

	case terminal.KeyRight:
		if ev.Ctrl {
			tb.cursor = tb.wordBoundaryRight()
		} else if tb.cursor < len(tb.text) {
			tb.cursor++
		}

	case terminal.KeyHome:
		tb.cursor = 0

	case terminal.KeyEnd:
		tb.cursor = len(tb.text)

	case terminal.KeyRune:
		if ev.Ctrl || ev.Alt || !unicode.IsPrint(ev.Rune) {
			return Unhandled()
		}
		if tb.MaxLen > 0 && len(tb.text) >= tb.MaxLen {
			return Handled()
		}
		tb.text = append(tb.text, 0)
		copy(tb.text[tb.cursor+1:], tb.text[tb.cursor:])
		tb.text[tb.cursor] = ev.Rune
		tb.cursor++
		changed = true

	default:
		return Unhandled()
	}

	tb.scrollToCursor(w.bounds.Width)
	w.invalidate()
	if changed {
		return WithCommands(TextChange{Tag: w.tag, Text: tb.Text()})
	}
	return Handled()
}

// Insert adds pasted text at the cursor, honouring MaxLen.
func (tb *TextBox) Insert(w *Widget, text string) Result {
	inserted := false
	for _, r := range text {
		if !unicode.IsPrint(r) {
			continue
		}
		if tb.MaxLen > 0 && len(tb.text) >= tb.MaxLen {
			break
		}
		tb.text = append(tb.text, 0)
		copy(tb.text[tb.cursor+1:], tb.text[tb.cursor:])
		tb.text[tb.cursor] = r
		tb.cursor++
		inserted = true
	}
	if !inserted {
		return Handled()
	}
	tb.scrollToCursor(w.bounds.Width)
	w.invalidate()
	return WithCommands(TextChange{Tag: w.tag, Text: tb.Text()})
}

func (tb *TextBox) wordBoundaryLeft() int {
	pos := tb.cursor
	for pos > 0 && unicode.IsSpace(tb.text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(tb.text[pos-1]) {
		pos--
	}
	return pos
}

func (tb *TextBox) wordBoundaryRight() int {
	pos := tb.cursor
	for pos < len(tb.text) && !unicode.IsSpace(tb.text[pos]) {
		pos++
	}
	for pos < len(tb.text) && unicode.IsSpace(tb.text[pos]) {
		pos++
	}
	return pos
}

// scrollToCursor keeps the cursor inside the visible text area.
func (tb *TextBox) scrollToCursor(width int) {
	inner := width - 2*textPad
	if tb.cursor < tb.first {
		tb.first = tb.cursor
	}
	for tb.first < tb.cursor && surface.TextWidth(string(tb.text[tb.first:tb.cursor]))+surface.GlyphWidth > inner {
		tb.first++
	}
}

const textPad = 3

// Paint draws the field, its text or placeholder, and the caret when focused.
func (tb *TextBox) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	r := w.ScreenRect()
	s.Fill(r, th.SurfaceDim)
	border := th.Border
	if w.focused {
		border = th.BorderFocus
	}
	s.Outline(r, border)

	inner := r.Inset(0, textPad, 0, textPad)
	ty := r.Y + (r.Height-surface.LineHeight)/2
	prev := s.SetClip(s.Clip().Intersection(inner))
	defer s.SetClip(prev)

	if len(tb.text) == 0 && tb.Placeholder != "" && !w.focused {
		s.DrawText(inner.X, ty, tb.Placeholder, th.TextMuted)
		return
	}
	fg := th.TextPrimary
	if !w.Active() {
		fg = th.TextMuted
	}
	visible := string(tb.text[tb.first:])
	s.DrawText(inner.X, ty, visible, fg)
	if w.focused {
		cx := inner.X + surface.TextWidth(string(tb.text[tb.first:tb.cursor]))
		s.Fill(geom.NewRect(cx, ty, 1, surface.LineHeight), th.Accent)
	}
}
