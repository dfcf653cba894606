package widget

import (
	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// AddWidget appends child to w's children. The child's bounds, given relative
// to w, are translated to display coordinates together with its subtree.
// When loadNow is set the child subtree is loaded; if that fails the child
// is destroyed and the load error returned. Finally the child subtree is
// offered to the nearest enclosing handler for focus and animation tracking.
func (w *Widget) AddWidget(child *Widget, loadNow bool) error {
	t := w.tree
	switch {
	case child == nil || child.destroyed:
		return t.Contract("add of a nil or destroyed widget to %s", w)
	case w.destroyed:
		return t.Contract("add to destroyed widget %s", w)
	case child.tree != t:
		return t.Contract("add of %s from another tree", child)
	case child == w || child.IsAncestorOf(w):
		return t.Contract("add of %s would create a cycle", child)
	case child.parent != NoID:
		return t.Contract("%s already has parent #%d", child, child.parent)
	case child.tag == TagEscape || child.tag == TagQuit:
		return t.Contract("%s uses a reserved deactivation tag", child)
	}
	if child.tag != NoTag {
		for _, sib := range w.Children() {
			if sib.tag == child.tag {
				return t.Contract("duplicate tag %d under %s", child.tag, w)
			}
		}
	}

	child.translate(w.bounds.X, w.bounds.Y)
	child.parent = w.id
	w.children = append(w.children, child.id)

	if loadNow {
		if err := child.Load(); err != nil {
			w.detach(child)
			t.destroy(child)
			t.log.Warn("widget load failed", "parent", w.String(), "error", err)
			return err
		}
	}

	if r := w.NearestRegistrar(); r != nil {
		child.walkRegistrable(r.RegisterWidget)
	}
	return nil
}

// RemoveWidget unregisters, unloads and destroys a direct child.
func (w *Widget) RemoveWidget(child *Widget) error {
	if child == nil || child.parent != w.id || child.destroyed {
		return w.tree.Contract("%v is not a child of %s", child, w)
	}
	if r := w.NearestRegistrar(); r != nil {
		child.walkRegistrable(r.UnregisterWidget)
	}
	child.Unload()
	w.detach(child)
	w.tree.destroy(child)
	return nil
}

// RemoveAll removes every child.
func (w *Widget) RemoveAll() {
	for _, c := range w.Children() {
		_ = w.RemoveWidget(c)
	}
}

// Destroy unloads and frees w and its subtree, detaching it from its parent.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	if p := w.Parent(); p != nil {
		_ = p.RemoveWidget(w)
		return
	}
	w.Unload()
	w.tree.destroy(w)
}

func (w *Widget) detach(child *Widget) {
	for i, id := range w.children {
		if id == child.id {
			w.children = append(w.children[:i], w.children[i+1:]...)
			break
		}
	}
	child.parent = NoID
}

// walkRegistrable visits w's subtree in pre-order without descending into
// nested handlers, which register their own descendants.
func (w *Widget) walkRegistrable(fn func(*Widget)) {
	fn(w)
	if w.registrar != nil {
		return
	}
	for _, c := range w.Children() {
		c.walkRegistrable(fn)
	}
}

// Load acquires resources for w and its subtree. Already loaded widgets are
// skipped. On failure the widgets loaded by this call are unloaded again.
func (w *Widget) Load() error {
	var done []*Widget
	err := w.walk(func(cur *Widget) error {
		if cur.loaded {
			return nil
		}
		if l, ok := cur.behavior.(Loader); ok {
			if err := l.Load(cur); err != nil {
				return verrors.Wrap(err, verrors.ErrCodeResourceLoad, "load "+cur.String())
			}
		}
		cur.loaded = true
		done = append(done, cur)
		return nil
	})
	if err != nil {
		for i := len(done) - 1; i >= 0; i-- {
			done[i].unloadSelf()
		}
	}
	return err
}

// Unload releases resources of w and its subtree, children first.
func (w *Widget) Unload() {
	for _, c := range w.Children() {
		c.Unload()
	}
	w.unloadSelf()
}

func (w *Widget) unloadSelf() {
	if !w.loaded {
		return
	}
	if u, ok := w.behavior.(Unloader); ok {
		u.Unload(w)
	}
	w.loaded = false
}

// walk visits w's subtree depth first, stopping at the first error.
func (w *Widget) walk(fn func(*Widget) error) error {
	if err := fn(w); err != nil {
		return err
	}
	for _, c := range w.Children() {
		if err := c.walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits w and its descendants depth first in child-list order.
func (w *Widget) Walk(fn func(*Widget)) {
	_ = w.walk(func(cur *Widget) error {
		fn(cur)
		return nil
	})
}

// GetWidget searches the subtree depth first for tag. With visibleOnly,
// hidden branches are pruned.
func (w *Widget) GetWidget(tag Tag, visibleOnly bool) *Widget {
	for _, c := range w.Children() {
		if visibleOnly && !c.visible {
			continue
		}
		if c.tag == tag {
			return c
		}
		if found := c.GetWidget(tag, visibleOnly); found != nil {
			return found
		}
	}
	return nil
}

// GetWidgetContainingCoords returns the most deeply nested visible, enabled
// widget of the given kind containing (x, y). Siblings are tested in list
// order and the first match wins. Points outside an ancestor's visible area
// never hit its descendants. w itself is returned when no descendant matches.
func (w *Widget) GetWidgetContainingCoords(x, y int, kind Kind) *Widget {
	if !w.visible || !w.enabled {
		return nil
	}
	area := w.ScreenRect()
	if !area.Contains(x, y) {
		return nil
	}
	if hit := w.hitChildren(x, y, kind, area); hit != nil {
		return hit
	}
	if kind == KindAny || w.kind == kind {
		return w
	}
	return nil
}

func (w *Widget) hitChildren(x, y int, kind Kind, clip geom.Rect) *Widget {
	for _, c := range w.Children() {
		if !c.visible || !c.enabled {
			continue
		}
		area := c.ScreenRect().Intersection(clip)
		if !area.Contains(x, y) {
			continue
		}
		if hit := c.hitChildren(x, y, kind, area); hit != nil {
			return hit
		}
		if kind == KindAny || c.kind == kind {
			return c
		}
	}
	return nil
}

// EffectiveOffset returns the sum of the children scroll offsets of every
// ancestor of w.
func (w *Widget) EffectiveOffset() geom.Point {
	var off geom.Point
	for p := w.Parent(); p != nil; p = p.Parent() {
		off = off.Add(p.scroll)
	}
	return off
}

// ScreenRect returns where w appears on the display.
func (w *Widget) ScreenRect() geom.Rect {
	off := w.EffectiveOffset()
	return w.bounds.Translate(off.X, off.Y)
}

// VisibleRect returns the part of w's screen rect left uncovered by the
// clipping of its ancestors. Empty when w is scrolled out of view.
func (w *Widget) VisibleRect() geom.Rect {
	r := w.ScreenRect()
	for p := w.Parent(); p != nil && !r.Empty(); p = p.Parent() {
		r = r.Intersection(p.ScreenRect())
	}
	return r
}

// ScrollOffset returns the children scroll offset of w.
func (w *Widget) ScrollOffset() geom.Point { return w.scroll }

// Scroll displaces every descendant by (dx, dy) without changing their
// stored bounds.
func (w *Widget) Scroll(dx, dy int) {
	w.ScrollAbsolute(w.scroll.X+dx, w.scroll.Y+dy)
}

// ScrollAbsolute sets the children scroll offset.
func (w *Widget) ScrollAbsolute(x, y int) {
	if w.scroll.X == x && w.scroll.Y == y {
		return
	}
	w.scroll = geom.Point{X: x, Y: y}
	w.invalidate()
}

// Move places w at (x, y) in display coordinates, moving the subtree by the
// same delta.
func (w *Widget) Move(x, y int) {
	w.MoveBy(x-w.bounds.X, y-w.bounds.Y)
}

// MoveBy shifts w and its subtree.
func (w *Widget) MoveBy(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	old := w.ScreenRect()
	w.translate(dx, dy)
	if p := w.Parent(); p != nil && p.Shown() && w.visible {
		w.tree.repaintArea(p, old.Union(w.ScreenRect()))
	}
}

func (w *Widget) translate(dx, dy int) {
	w.bounds = w.bounds.Translate(dx, dy)
	for _, c := range w.Children() {
		c.translate(dx, dy)
	}
}

// Resize changes the size of w. Children keep their positions.
func (w *Widget) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if w.bounds.Width == width && w.bounds.Height == height {
		return
	}
	old := w.ScreenRect()
	w.bounds.Width, w.bounds.Height = width, height
	if p := w.Parent(); p != nil && p.Shown() && w.visible {
		w.tree.repaintArea(p, old.Union(w.ScreenRect()))
	}
}

// Center places w in the middle of its parent.
func (w *Widget) Center() error {
	p := w.Parent()
	if p == nil {
		return w.tree.Contract("center of parentless %s", w)
	}
	pb := p.bounds
	w.Move(pb.X+(pb.Width-w.bounds.Width)/2, pb.Y+(pb.Height-w.bounds.Height)/2)
	return nil
}

// CenterHorizontally centers w across its parent's width.
func (w *Widget) CenterHorizontally() error {
	p := w.Parent()
	if p == nil {
		return w.tree.Contract("center of parentless %s", w)
	}
	w.Move(p.bounds.X+(p.bounds.Width-w.bounds.Width)/2, w.bounds.Y)
	return nil
}

// AddHotkey maps key to tag on w. A repeated key keeps its position and
// takes the new tag.
func (w *Widget) AddHotkey(key terminal.Keycode, tag Tag) {
	w.Hotkeys().Add(key, tag)
}

// GetHotkeyTag resolves key against w's table, then its children in list
// order. Inactive widgets and their subtrees are skipped.
func (w *Widget) GetHotkeyTag(key terminal.Keycode) (Tag, bool) {
	if !w.visible || !w.enabled {
		return NoTag, false
	}
	if w.hotkeys != nil {
		if tag, ok := w.hotkeys.Lookup(key); ok {
			return tag, true
		}
	}
	for _, c := range w.Children() {
		if c.registrar != nil {
			continue
		}
		if tag, ok := c.GetHotkeyTag(key); ok {
			return tag, true
		}
	}
	return NoTag, false
}
