package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// RowHeight is the height of one list row in pixels.
const RowHeight = surface.LineHeight + 2

// List shows selectable rows of text, scrolling to keep the selection
// visible.
type List struct {
	items    []string
	selected int // -1 when nothing is selected
	top      int // First visible row
}

// NewList creates a list widget.
func NewList(t *Tree, tag Tag, r geom.Rect, items []string) *Widget {
	l := &List{selected: -1}
	l.items = append(l.items, items...)
	return t.New(KindList, tag, r, l)
}

// ListOf returns the list behavior of w, or nil.
func ListOf(w *Widget) *List {
	l, _ := w.behavior.(*List)
	return l
}

// Items returns a copy of the rows.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// SetItems replaces the rows and clears the selection.
func (l *List) SetItems(w *Widget, items []string) {
	l.items = append(l.items[:0], items...)
	l.selected = -1
	l.top = 0
	w.invalidate()
}

// Selected returns the selected row index, or -1.
func (l *List) Selected() int { return l.selected }

// SelectedText returns the selected row, or "".
func (l *List) SelectedText() string {
	if l.selected < 0 || l.selected >= len(l.items) {
		return ""
	}
	return l.items[l.selected]
}

// Select changes the selection without notifying the handler.
func (l *List) Select(w *Widget, index int) {
	l.selectIndex(w, index)
}

// selectIndex clamps and applies a selection; it reports whether it changed.
func (l *List) selectIndex(w *Widget, index int) bool {
	if len(l.items) == 0 {
		return false
	}
	index = max(0, min(index, len(l.items)-1))
	if index == l.selected {
		return false
	}
	l.selected = index
	l.ensureVisible(w)
	w.invalidate()
	return true
}

func (l *List) visibleRows(w *Widget) int {
	return max(1, w.bounds.Height/RowHeight)
}

func (l *List) ensureVisible(w *Widget) {
	rows := l.visibleRows(w)
	if l.selected < l.top {
		l.top = l.selected
	}
	if l.selected >= l.top+rows {
		l.top = l.selected - rows + 1
	}
}

// AcceptsFocus implements Focuser.
func (l *List) AcceptsFocus(*Widget) bool { return true }

// HandleKey moves the selection.
func (l *List) HandleKey(w *Widget, ev terminal.KeyEvent) Result {
	if ev.Released {
		return Unhandled()
	}
	target := l.selected
	switch ev.Key {
	case terminal.KeyUp:
		target--
	case terminal.KeyDown:
		target++
	case terminal.KeyPageUp:
		target -= l.visibleRows(w)
	case terminal.KeyPageDown:
		target += l.visibleRows(w)
	case terminal.KeyHome:
		target = 0
	case terminal.KeyEnd:
		target = len(l.items) - 1
	case terminal.KeyEnter:
		if l.selected >= 0 {
			return WithCommands(Click{Tag: w.tag})
		}
		return Unhandled()
	default:
		return Unhandled()
	}
	if l.selectIndex(w, target) {
		return WithCommands(SelectChange{Tag: w.tag, Index: l.selected})
	}
	return Handled()
}

// HandleMouse selects the row under the pointer and scrolls on the wheel.
func (l *List) HandleMouse(w *Widget, ev terminal.MouseEvent) Result {
	switch {
	case ev.Button == terminal.MouseWheelUp:
		l.scrollRows(w, -1)
		return Handled()
	case ev.Button == terminal.MouseWheelDown:
		l.scrollRows(w, 1)
		return Handled()
	case ev.Button == terminal.MouseLeft && ev.Action == terminal.MousePress:
		row := l.top + (ev.Y-w.ScreenRect().Y)/RowHeight
		if row < 0 || row >= len(l.items) {
			return Unhandled()
		}
		if l.selectIndex(w, row) {
			return Result{Commands: []Command{SelectChange{Tag: w.tag, Index: l.selected}}}
		}
	}
	return Unhandled()
}

func (l *List) scrollRows(w *Widget, delta int) {
	maxTop := max(0, len(l.items)-l.visibleRows(w))
	top := max(0, min(l.top+delta, maxTop))
	if top != l.top {
		l.top = top
		w.invalidate()
	}
}

// Top returns the first visible row.
func (l *List) Top() int { return l.top }

// Paint draws the visible rows with the selection highlighted.
func (l *List) Paint(w *Widget, s *surface.Surface) {
	th := w.tree.theme
	r := w.ScreenRect()
	s.Fill(r, th.Surface)
	border := th.Border
	if w.focused {
		border = th.BorderFocus
	}
	fg := th.TextPrimary
	if !w.Active() {
		fg = th.TextMuted
	}
	rows := l.visibleRows(w)
	for i := 0; i < rows && l.top+i < len(l.items); i++ {
		idx := l.top + i
		row := geom.NewRect(r.X+1, r.Y+i*RowHeight, r.Width-2, RowHeight)
		if idx == l.selected {
			s.Fill(row, th.Selection)
		}
		drawAligned(s, row.Inset(0, 2, 0, 2), l.items[idx], AlignLeft, fg)
	}
	s.Outline(r, border)
}
