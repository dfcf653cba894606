package handler

import "github.com/odvcencio/vista/pkg/ui/widget"

// FocusList tracks the focusable widgets of one handler in registration
// order. At most one of them is focused at a time.
type FocusList struct {
	tree    *widget.Tree
	ids     []widget.ID
	current int // Index of focused widget, -1 if none
}

// NewFocusList creates an empty focus list over tree.
func NewFocusList(tree *widget.Tree) *FocusList {
	return &FocusList{tree: tree, current: -1}
}

// Register adds a widget to the list.
// The first focusable widget receives focus if nothing is focused.
func (f *FocusList) Register(w *widget.Widget) {
	for _, id := range f.ids {
		if id == w.ID() {
			return
		}
	}
	f.ids = append(f.ids, w.ID())

	if f.current == -1 && widget.CanFocus(w) {
		f.focusIndex(len(f.ids) - 1)
	}
}

// Unregister removes a widget from the list.
// If it was focused, focus moves to the first available widget.
func (f *FocusList) Unregister(w *widget.Widget) {
	for i, id := range f.ids {
		if id != w.ID() {
			continue
		}
		if f.current == i {
			w.SetFocused(false)
			f.current = -1
		} else if f.current > i {
			f.current--
		}
		f.ids = append(f.ids[:i], f.ids[i+1:]...)

		if f.current == -1 && len(f.ids) > 0 {
			f.FocusFirst()
		}
		return
	}
}

// Current returns the focused widget, or nil.
func (f *FocusList) Current() *widget.Widget {
	if f.current >= 0 && f.current < len(f.ids) {
		return f.tree.Get(f.ids[f.current])
	}
	return nil
}

// SetFocus focuses a specific widget.
// Returns true if focus changed.
func (f *FocusList) SetFocus(w *widget.Widget) bool {
	for i, id := range f.ids {
		if id == w.ID() && widget.CanFocus(w) {
			return f.focusIndex(i)
		}
	}
	return false
}

// FocusFirst focuses the first focusable widget.
func (f *FocusList) FocusFirst() bool {
	for i := range f.ids {
		if widget.CanFocus(f.at(i)) {
			return f.focusIndex(i)
		}
	}
	return false
}

// FocusLast focuses the last focusable widget.
func (f *FocusList) FocusLast() bool {
	for i := len(f.ids) - 1; i >= 0; i-- {
		if widget.CanFocus(f.at(i)) {
			return f.focusIndex(i)
		}
	}
	return false
}

// FocusNext moves focus to the next focusable widget, wrapping around.
// Returns true if focus changed.
func (f *FocusList) FocusNext() bool {
	n := len(f.ids)
	if n == 0 {
		return false
	}
	start := f.current
	for i := 1; i <= n; i++ {
		idx := ((start+i)%n + n) % n
		if widget.CanFocus(f.at(idx)) {
			return f.focusIndex(idx)
		}
	}
	return false
}

// FocusPrev moves focus to the previous focusable widget, wrapping around.
// Returns true if focus changed.
func (f *FocusList) FocusPrev() bool {
	n := len(f.ids)
	if n == 0 {
		return false
	}
	start := f.current
	if start < 0 {
		start = n
	}
	for i := 1; i <= n; i++ {
		idx := (start - i + n) % n
		if widget.CanFocus(f.at(idx)) {
			return f.focusIndex(idx)
		}
	}
	return false
}

// ClearFocus removes focus from the current widget.
func (f *FocusList) ClearFocus() {
	if w := f.Current(); w != nil {
		w.SetFocused(false)
	}
	f.current = -1
}

// Count returns the number of registered widgets.
func (f *FocusList) Count() int {
	return len(f.ids)
}

func (f *FocusList) at(i int) *widget.Widget {
	return f.tree.Get(f.ids[i])
}

// focusIndex changes focus to the widget at index i.
func (f *FocusList) focusIndex(i int) bool {
	if i == f.current {
		return false
	}
	if cur := f.Current(); cur != nil {
		cur.SetFocused(false)
	}
	f.current = i
	if w := f.Current(); w != nil {
		w.SetFocused(true)
	}
	return true
}
