package widget

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
)

// Kind discriminates widget variants.
type Kind int

const (
	KindAny Kind = iota // Hit-test filter matching every kind
	KindScreen
	KindDialog
	KindButton
	KindLabel
	KindTextBox
	KindList
	KindFrame
	KindImage
	KindScroller
	KindContainer
)

var kindNames = [...]string{
	KindAny:       "any",
	KindScreen:    "screen",
	KindDialog:    "dialog",
	KindButton:    "button",
	KindLabel:     "label",
	KindTextBox:   "textbox",
	KindList:      "list",
	KindFrame:     "frame",
	KindImage:     "image",
	KindScroller:  "scroller",
	KindContainer: "container",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsHandler reports whether the kind runs its own event loop.
func (k Kind) IsHandler() bool {
	return k == KindScreen || k == KindDialog
}

// Tag is an application-chosen identifier used to route events and look up
// widgets. Tags are unique among siblings except NoTag.
type Tag int

// Reserved tags. OK and Cancel are carried by the matching dialog buttons;
// Escape and Quit are only ever deactivation values.
const (
	NoTag     Tag = 0
	TagOK     Tag = 1
	TagCancel Tag = 2
	TagEscape Tag = -1
	TagQuit   Tag = -2
)

// Widget is a node of the tree. After it is added to a parent, its stored
// bounds are in display coordinates; the effective on-screen position also
// includes the children scroll offset of every ancestor.
type Widget struct {
	id       ID
	tree     *Tree
	kind     Kind
	tag      Tag
	bounds   geom.Rect
	scroll   geom.Point // Displaces descendants, not this widget
	visible  bool
	enabled  bool
	focused  bool
	loaded   bool
	parent   ID
	children []ID

	hotkeys   *Hotkeys
	behavior  Behavior
	registrar Registrar

	destroyed bool
}

// ID returns the widget handle.
func (w *Widget) ID() ID { return w.id }

// Tree returns the owning arena.
func (w *Widget) Tree() *Tree { return w.tree }

// Kind returns the widget variant.
func (w *Widget) Kind() Kind { return w.kind }

// Tag returns the routing tag.
func (w *Widget) Tag() Tag { return w.tag }

// Behavior returns the variant-specific behavior, or nil.
func (w *Widget) Behavior() Behavior { return w.behavior }

// Bounds returns the stored rectangle.
func (w *Widget) Bounds() geom.Rect { return w.bounds }

// Destroyed reports whether the widget was freed.
func (w *Widget) Destroyed() bool { return w.destroyed }

// Parent returns the parent widget, or nil for roots and detached widgets.
func (w *Widget) Parent() *Widget { return w.tree.Get(w.parent) }

// Children returns the direct children in list order.
func (w *Widget) Children() []*Widget {
	out := make([]*Widget, 0, len(w.children))
	for _, id := range w.children {
		if c := w.tree.Get(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildIDs returns a copy of the child handle list.
func (w *Widget) ChildIDs() []ID {
	out := make([]ID, len(w.children))
	copy(out, w.children)
	return out
}

// Root returns the topmost ancestor.
func (w *Widget) Root() *Widget {
	cur := w
	for p := cur.Parent(); p != nil; p = cur.Parent() {
		cur = p
	}
	return cur
}

// IsAncestorOf reports whether w is a strict ancestor of other.
func (w *Widget) IsAncestorOf(other *Widget) bool {
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == w {
			return true
		}
	}
	return false
}

// Visible reports the widget's own visibility flag.
func (w *Widget) Visible() bool { return w.visible }

// Enabled reports the widget's own enabled flag.
func (w *Widget) Enabled() bool { return w.enabled }

// Focused reports whether the widget holds keyboard focus.
func (w *Widget) Focused() bool { return w.focused }

// Loaded reports whether Load completed for the widget.
func (w *Widget) Loaded() bool { return w.loaded }

// Shown reports whether the widget and every ancestor are visible.
func (w *Widget) Shown() bool {
	for cur := w; cur != nil; cur = cur.Parent() {
		if !cur.visible {
			return false
		}
	}
	return true
}

// Active reports whether the widget can take input: shown and enabled up
// the whole ancestor chain.
func (w *Widget) Active() bool {
	for cur := w; cur != nil; cur = cur.Parent() {
		if !cur.visible || !cur.enabled {
			return false
		}
	}
	return true
}

// SetVisible changes visibility and repaints the affected area.
func (w *Widget) SetVisible(v bool) {
	if w.visible == v {
		return
	}
	w.visible = v
	w.invalidate()
}

// Show makes the widget visible.
func (w *Widget) Show() { w.SetVisible(true) }

// Hide makes the widget invisible.
func (w *Widget) Hide() { w.SetVisible(false) }

// SetEnabled changes whether the widget accepts input.
func (w *Widget) SetEnabled(v bool) {
	if w.enabled == v {
		return
	}
	w.enabled = v
	w.invalidate()
}

// Enable allows input.
func (w *Widget) Enable() { w.SetEnabled(true) }

// Disable blocks input; disabled widgets paint muted.
func (w *Widget) Disable() { w.SetEnabled(false) }

// SetFocused is called by the focus list of the enclosing handler.
func (w *Widget) SetFocused(v bool) {
	if w.focused == v {
		return
	}
	w.focused = v
	if f, ok := w.behavior.(FocusNotifier); ok {
		f.FocusChanged(w, v)
	}
	w.invalidate()
}

// SetRegistrar marks w as an event handler: descendants added below it are
// offered to r for focus and animation tracking.
func (w *Widget) SetRegistrar(r Registrar) { w.registrar = r }

// Registrar returns the handler registrar, or nil.
func (w *Widget) Registrar() Registrar { return w.registrar }

// NearestRegistrar returns the registrar of w or its closest ancestor.
func (w *Widget) NearestRegistrar() Registrar {
	for cur := w; cur != nil; cur = cur.Parent() {
		if cur.registrar != nil {
			return cur.registrar
		}
	}
	return nil
}

// Hotkeys returns the widget's hotkey table, creating it on first use.
func (w *Widget) Hotkeys() *Hotkeys {
	if w.hotkeys == nil {
		w.hotkeys = NewHotkeys()
	}
	return w.hotkeys
}

// invalidate repaints the widget's area when it belongs to a shown screen
// or dialog.
func (w *Widget) invalidate() {
	if w.tree.display == nil || w.destroyed {
		return
	}
	root := w.Root()
	if !root.kind.IsHandler() || !root.visible {
		return
	}
	if p := w.Parent(); p != nil {
		if p.Shown() {
			p.Paint(true)
		}
		return
	}
	w.Paint(true)
}
