// Package widget implements the visual widget tree: an arena of nodes
// addressed by stable handles, with ownership, hit-testing, clipped painting
// and hotkey lookup.
package widget

import (
	"fmt"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/theme"
)

// ID is a stable handle to a widget in a Tree. The zero ID is never issued.
type ID uint32

// NoID is the invalid handle.
const NoID ID = 0

// Display is the drawing target of a tree.
type Display interface {
	// Surface returns the surface widgets paint onto.
	Surface() *surface.Surface
	// Update pushes a rectangle of the surface to the host.
	Update(r geom.Rect)
}

// Options configures a Tree.
type Options struct {
	Display Display
	Theme   *theme.Theme
	Parts   *Parts
	Logger  *logging.Logger
	Metrics *telemetry.Metrics
}

// Tree is the arena owning every widget node. Nodes refer to their parent
// and children by ID; destroying a node frees its whole subtree.
type Tree struct {
	nodes   map[ID]*Widget
	next    ID
	display Display
	theme   *theme.Theme
	parts   *Parts
	log     *logging.Logger
	metrics *telemetry.Metrics
}

// NewTree creates an empty widget arena.
func NewTree(opts Options) *Tree {
	th := opts.Theme
	if th == nil {
		th = theme.DefaultTheme()
	}
	parts := opts.Parts
	if parts == nil {
		parts = NewParts(th)
	}
	return &Tree{
		nodes:   make(map[ID]*Widget),
		display: opts.Display,
		theme:   th,
		parts:   parts,
		log:     opts.Logger.WithCategory(logging.CategoryWidget),
		metrics: opts.Metrics,
	}
}

// New creates a detached widget. r is relative to the parent the widget
// will later be added to; for roots it is in display coordinates.
// A nil behavior gives a plain container. Screens and dialogs start hidden
// until their handler shows them.
func (t *Tree) New(kind Kind, tag Tag, r geom.Rect, b Behavior) *Widget {
	t.next++
	w := &Widget{
		id:       t.next,
		tree:     t,
		kind:     kind,
		tag:      tag,
		bounds:   r,
		visible:  !kind.IsHandler(),
		enabled:  true,
		behavior: b,
	}
	t.nodes[w.id] = w
	if init, ok := b.(Initializer); ok {
		init.Init(w)
	}
	return w
}

// Get returns the widget with the given handle, or nil when it was destroyed.
func (t *Tree) Get(id ID) *Widget {
	if id == NoID {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of live widgets.
func (t *Tree) Len() int { return len(t.nodes) }

// Display returns the drawing target, which may be nil for headless trees.
func (t *Tree) Display() Display { return t.display }

// SetDisplay replaces the drawing target.
func (t *Tree) SetDisplay(d Display) { t.display = d }

// Theme returns the palette widgets paint with.
func (t *Tree) Theme() *theme.Theme { return t.theme }

// Parts returns the shared decoration resource.
func (t *Tree) Parts() *Parts { return t.parts }

// Logger returns the widget-category logger.
func (t *Tree) Logger() *logging.Logger { return t.log }

// Metrics returns the metrics sink, which may be nil.
func (t *Tree) Metrics() *telemetry.Metrics { return t.metrics }

// Contract reports a programming error: it is logged, counted and returned.
// The caller leaves its state untouched.
func (t *Tree) Contract(format string, args ...any) error {
	err := verrors.Contract(format, args...)
	t.log.Error("contract violation", "error", err.Message)
	t.metrics.ContractViolation()
	return err
}

func (t *Tree) surface() *surface.Surface {
	if t.display == nil {
		return nil
	}
	return t.display.Surface()
}

func (t *Tree) update(r geom.Rect) {
	if t.display != nil && !r.Empty() {
		t.display.Update(r)
	}
}

// destroy frees a detached subtree.
func (t *Tree) destroy(w *Widget) {
	for _, cid := range w.children {
		if c := t.nodes[cid]; c != nil {
			t.destroy(c)
		}
	}
	if d, ok := w.behavior.(Destroyer); ok {
		d.Destroy(w)
	}
	w.children = nil
	w.parent = NoID
	w.destroyed = true
	delete(t.nodes, w.id)
}

func (w *Widget) String() string {
	return fmt.Sprintf("%s#%d(tag=%d)", w.kind, w.id, w.tag)
}
