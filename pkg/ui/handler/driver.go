package handler

import (
	"time"

	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

const (
	DefaultEventTimeout = 30 * time.Millisecond
	DefaultDoubleClick  = 350 * time.Millisecond
)

// Options configures a Driver.
type Options struct {
	Backend      backend.Backend
	Tree         *widget.Tree
	EventTimeout time.Duration // Wait before a between-events tick
	DoubleClick  time.Duration
	// Resize is called for host resize events before the top handler
	// repaints. Resizes never reach handler logic.
	Resize  func(ev terminal.ResizeEvent)
	Logger  *logging.Logger
	Metrics *telemetry.Metrics
}

// Driver owns the stack of active handlers. Only the top of the stack
// receives events; handlers below it are suspended with their effects
// frozen until they are on top again.
type Driver struct {
	backend     backend.Backend
	tree        *widget.Tree
	clock       backend.Clock
	timeout     time.Duration
	doubleClick time.Duration
	resize      func(ev terminal.ResizeEvent)
	stack       []*Handler

	rawLog  *logging.Logger
	log     *logging.Logger
	metrics *telemetry.Metrics
}

// NewDriver creates a driver reading events from opts.Backend.
func NewDriver(opts Options) *Driver {
	timeout := opts.EventTimeout
	if timeout <= 0 {
		timeout = DefaultEventTimeout
	}
	dbl := opts.DoubleClick
	if dbl <= 0 {
		dbl = DefaultDoubleClick
	}
	var clock backend.Clock
	if opts.Backend != nil {
		clock = opts.Backend.Clock()
	}
	if clock == nil {
		clock = backend.NewSystemClock()
	}
	return &Driver{
		backend:     opts.Backend,
		tree:        opts.Tree,
		clock:       clock,
		timeout:     timeout,
		doubleClick: dbl,
		resize:      opts.Resize,
		rawLog:      opts.Logger,
		log:         opts.Logger.WithCategory(logging.CategoryDispatch),
		metrics:     opts.Metrics,
	}
}

// Tree returns the widget arena handlers are built in.
func (d *Driver) Tree() *widget.Tree { return d.tree }

// Clock returns the clock events and effects are timed against.
func (d *Driver) Clock() backend.Clock { return d.clock }

// Backend returns the event source.
func (d *Driver) Backend() backend.Backend { return d.backend }

// Depth returns the number of active handlers.
func (d *Driver) Depth() int { return len(d.stack) }

// Top returns the handler receiving events, or nil.
func (d *Driver) Top() *Handler {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// Stack returns the active handlers, bottom first.
func (d *Driver) Stack() []*Handler {
	out := make([]*Handler, len(d.stack))
	copy(out, d.stack)
	return out
}

// Below returns the nearest active handler under h whose root is of kind,
// or nil.
func (d *Driver) Below(h *Handler, kind widget.Kind) *Handler {
	idx := d.index(h)
	for i := idx - 1; i >= 0; i-- {
		if kind == widget.KindAny || d.stack[i].root.Kind() == kind {
			return d.stack[i]
		}
	}
	return nil
}

func (d *Driver) index(h *Handler) int {
	for i, x := range d.stack {
		if x == h {
			return i
		}
	}
	return -1
}

// Push makes h the top of the stack. The previous top's effects freeze.
// Pushing a handler that is already active is a contract violation.
func (d *Driver) Push(h *Handler) error {
	if h == nil {
		return d.tree.Contract("push of a nil handler")
	}
	if h.active || d.index(h) >= 0 {
		return d.tree.Contract("re-entrant activation of %s", h.root)
	}
	if prev := d.Top(); prev != nil {
		prev.effects.Freeze()
	}
	h.active = true
	h.deactivating = false
	h.pressed = widget.NoID
	d.stack = append(d.stack, h)
	d.metrics.SetHandlerDepth(len(d.stack))
	d.log.Debug("handler pushed", "handler", h.root.String(), "depth", len(d.stack))
	return nil
}

// Pop removes the top handler. The handler below resumes with its effects
// shifted past the time it spent suspended.
func (d *Driver) Pop() *Handler {
	h := d.Top()
	if h == nil {
		return nil
	}
	d.stack[len(d.stack)-1] = nil
	d.stack = d.stack[:len(d.stack)-1]
	h.active = false
	d.metrics.SetHandlerDepth(len(d.stack))
	d.log.Debug("handler popped", "handler", h.root.String(), "depth", len(d.stack))
	h.each(func(x any) {
		if dh, ok := x.(DeactivateHandler); ok {
			dh.OnDeactivate(h)
		}
	})
	return h
}

// Step runs one iteration of the top handler's polling loop: wait for an
// event or time out, dispatch, then draw effects. A handler that
// deactivated during the step is popped. Step reports whether any handler
// is still active.
func (d *Driver) Step() bool {
	h := d.Top()
	if h == nil {
		return false
	}
	if !h.deactivating {
		var ev terminal.Event
		if d.backend != nil {
			ev = d.backend.PollEvent(d.timeout)
		}
		switch e := ev.(type) {
		case nil:
			h.BetweenEvents(d.clock.Now())
		case terminal.ResizeEvent:
			d.handleResize(e)
		default:
			h.Dispatch(ev)
		}
	}
	if d.Top() == h {
		if h.deactivating {
			d.Pop()
		} else {
			h.effects.DrawEffects(d.surface(), false)
		}
	}
	return len(d.stack) > 0
}

// Run pushes h and steps until h is no longer active. Nested Run calls from
// inside a callback stack handlers; the outer loop resumes when the inner
// handler pops.
func (d *Driver) Run(h *Handler) error {
	if err := d.Push(h); err != nil {
		return err
	}
	for h.active {
		d.Step()
	}
	return nil
}

func (d *Driver) handleResize(ev terminal.ResizeEvent) {
	d.metrics.EventDispatched("resize")
	d.log.Info("host resized", "width", ev.Width, "height", ev.Height)
	if d.resize != nil {
		d.resize(ev)
	}
	for _, h := range d.stack {
		if h.root.Visible() {
			h.root.Paint(false)
		}
	}
	if disp := d.tree.Display(); disp != nil {
		if s := disp.Surface(); s != nil {
			disp.Update(s.Bounds())
		}
	}
}

func (d *Driver) surface() *surface.Surface {
	if disp := d.tree.Display(); disp != nil {
		return disp.Surface()
	}
	return nil
}
