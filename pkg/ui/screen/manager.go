package screen

import (
	"fmt"
	"image/color"
	"slices"
	"sync"

	verrors "github.com/odvcencio/vista/pkg/errors"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/transition"
)

// Options configures a Manager.
type Options struct {
	Driver *handler.Driver
	Player *transition.Player
	// DefaultTransition is what the selector resets to after each use.
	DefaultTransition transition.Kind
	// ReduceAnimation replaces every transition with a cut.
	ReduceAnimation bool
	Logger          *logging.Logger
	Metrics         *telemetry.Metrics
}

// Manager loads screens on demand, activates them one at a time and
// resolves where to go when each one deactivates.
type Manager struct {
	driver  *handler.Driver
	player  *transition.Player
	reduce  bool
	log     *logging.Logger
	metrics *telemetry.Metrics

	factories map[ID]Factory

	// mu guards the navigation state read by State from other goroutines.
	mu         sync.RWMutex
	loaded     map[ID]*Screen
	order      []ID // Load order
	stack      []ID // Return stack; stack[0] is always None
	selector   *transition.Selector
	current    ID
	activating bool
}

// NewManager creates a manager with an empty return stack.
func NewManager(opts Options) *Manager {
	return &Manager{
		driver:    opts.Driver,
		player:    opts.Player,
		reduce:    opts.ReduceAnimation,
		log:       opts.Logger.WithCategory(logging.CategoryScreen),
		metrics:   opts.Metrics,
		factories: make(map[ID]Factory),
		loaded:    make(map[ID]*Screen),
		stack:     []ID{None},
		selector:  transition.NewSelector(opts.DefaultTransition),
		current:   None,
	}
}

// Driver returns the handler driver screens run on.
func (m *Manager) Driver() *handler.Driver { return m.driver }

// Register installs the factory for id. Reserved ids are rejected.
func (m *Manager) Register(id ID, f Factory) error {
	if id.Reserved() || id == "" {
		return m.contract("cannot register reserved screen id %q", id)
	}
	if f == nil {
		return m.contract("nil factory for screen %q", id)
	}
	m.factories[id] = f
	return nil
}

// Run activates first and returns when navigation reaches None.
func (m *Manager) Run(first ID) error {
	return m.ActivateScreen(first)
}

// ActivateScreen activates id and keeps navigating until a screen leaves
// with destination None. Every screen is unloaded before it returns.
// Calling it again while it runs is a contract violation.
func (m *Manager) ActivateScreen(id ID) error {
	m.mu.Lock()
	if m.activating {
		m.mu.Unlock()
		return m.contract("re-entrant activation of screen %q", id)
	}
	m.activating = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.activating = false
		m.current = None
		m.mu.Unlock()
		m.UnloadAll()
	}()

	next := id
	for next != None {
		if next == Return {
			next = m.popReturn()
			continue
		}
		s, err := m.load(next)
		if err != nil {
			m.log.Warn("screen load failed, returning", "screen", string(next), "error", err)
			next = m.popReturn()
			continue
		}
		dest, entered, err := m.run(s)
		if err != nil {
			return err
		}
		switch {
		case dest == None || dest == Return || !entered:
			next = dest
		default:
			m.pushReturn(s.id)
			next = dest
		}
		m.log.Info("screen left", "screen", string(s.id), "destination", string(dest), "return_stack", m.ReturnStack())
	}
	m.log.Info("navigation finished")
	return nil
}

// run shows s and blocks until it deactivates, returning its destination.
// A vetoed activation never enters the loop: it reports the destination
// the screen chose in SetForActivate, Return by default, with entered false.
func (m *Manager) run(s *Screen) (dest ID, entered bool, err error) {
	s.destination = Return
	if !s.SetForActivate() {
		m.log.Info("screen activation vetoed", "screen", string(s.id), "destination", string(s.destination))
		return s.destination, false, nil
	}

	m.mu.Lock()
	prev := m.loaded[m.current]
	m.current = s.id
	m.mu.Unlock()

	m.present(prev, s)
	if prev != nil && prev != s {
		prev.Root().Hide()
	}
	s.Root().Show()
	s.Focus().FocusFirst()
	m.metrics.ScreenActivated(string(s.id))
	m.log.Info("screen activated", "screen", string(s.id))

	if err := s.Activate(); err != nil {
		return None, true, err
	}
	return s.destination, true, nil
}

// present renders s off-screen and plays the selected transition from what
// is currently displayed.
func (m *Manager) present(prev, s *Screen) {
	kind, dir := m.takeTransition()
	disp := m.driver.Tree().Display()
	if disp == nil || disp.Surface() == nil || m.player == nil {
		return
	}
	out := disp.Surface()
	var from *surface.Surface
	if prev != nil {
		from = out.Clone()
	}
	to := out.Clone()
	to.Clear(color.RGBA{A: 0xff})
	s.Root().PaintOn(to)

	if m.reduce {
		kind = transition.Cut
	}
	if err := m.player.Play(kind, out, from, to, dir); err != nil {
		m.log.Warn("transition failed, cutting", "kind", kind.String(), "error", err)
		_ = out.CopyFrom(to)
	}
	disp.Update(out.Bounds())
}

func (m *Manager) takeTransition() (transition.Kind, transition.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selector.Take()
}

// SetTransition arms the transition for the next screen change only.
func (m *Manager) SetTransition(k transition.Kind) {
	m.mu.Lock()
	m.selector.Set(k)
	m.mu.Unlock()
}

// SetPan arms a pan in direction d for the next screen change only.
func (m *Manager) SetPan(d transition.Direction) {
	m.mu.Lock()
	m.selector.SetPan(d)
	m.mu.Unlock()
}

// load returns the loaded instance of id, building it on first use.
func (m *Manager) load(id ID) (*Screen, error) {
	m.mu.RLock()
	s := m.loaded[id]
	m.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	f, ok := m.factories[id]
	if !ok {
		return nil, verrors.New(verrors.ErrCodeScreenUnknown, fmt.Sprintf("screen %q is not registered", id))
	}
	s, err := f(m)
	if err != nil {
		return nil, verrors.Wrap(err, verrors.ErrCodeScreenLoad, "building screen").WithContext("screen", string(id))
	}
	if s == nil {
		return nil, verrors.New(verrors.ErrCodeScreenLoad, "factory returned no screen").WithContext("screen", string(id))
	}
	if err := s.Root().Load(); err != nil {
		s.Root().Destroy()
		return nil, verrors.Wrap(err, verrors.ErrCodeScreenLoad, "loading screen").WithContext("screen", string(id))
	}

	m.mu.Lock()
	m.loaded[id] = s
	m.order = append(m.order, id)
	m.mu.Unlock()
	m.log.Debug("screen loaded", "screen", string(id))
	return s, nil
}

// IsLoaded reports whether id has a live instance.
func (m *Manager) IsLoaded(id ID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded[id] != nil
}

// Screen returns the loaded instance of id, or nil.
func (m *Manager) Screen(id ID) *Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded[id]
}

// UnloadScreen unloads and destroys id. The active screen cannot be
// unloaded.
func (m *Manager) UnloadScreen(id ID) error {
	m.mu.Lock()
	s := m.loaded[id]
	if s == nil {
		m.mu.Unlock()
		return nil
	}
	if s.Active() {
		m.mu.Unlock()
		return m.contract("cannot unload active screen %q", id)
	}
	delete(m.loaded, id)
	m.order = slices.DeleteFunc(m.order, func(x ID) bool { return x == id })
	m.mu.Unlock()

	s.Root().Destroy()
	m.log.Debug("screen unloaded", "screen", string(id))
	return nil
}

// UnloadAll unloads every inactive screen in reverse load order.
func (m *Manager) UnloadAll() {
	m.mu.RLock()
	ids := slices.Clone(m.order)
	m.mu.RUnlock()
	for i := len(ids) - 1; i >= 0; i-- {
		_ = m.UnloadScreen(ids[i])
	}
}

// ReturnStack returns the return stack, bottom first.
func (m *Manager) ReturnStack() []ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.stack)
}

// InsertReturnScreen pushes id as the next "return" target. It must differ
// from the current top.
func (m *Manager) InsertReturnScreen(id ID) error {
	if id == Return || id == "" {
		return m.contract("invalid return screen %q", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stack[len(m.stack)-1] == id {
		return m.contract("return screen %q is already on top", id)
	}
	m.stack = append(m.stack, id)
	return nil
}

// ChangeReturnScreen replaces the top of the return stack.
func (m *Manager) ChangeReturnScreen(id ID) error {
	if id.Reserved() || id == "" {
		return m.contract("invalid return screen %q", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 1 {
		return m.contract("no return screen to change")
	}
	m.stack[len(m.stack)-1] = id
	return nil
}

// RemoveReturnScreen pops the top of the return stack.
func (m *Manager) RemoveReturnScreen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 1 {
		return m.contract("no return screen to remove")
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// ClearReturnScreens pops until only None is left.
func (m *Manager) ClearReturnScreens() {
	m.mu.Lock()
	m.stack = m.stack[:1]
	m.mu.Unlock()
}

func (m *Manager) pushReturn(id ID) {
	m.mu.Lock()
	if m.stack[len(m.stack)-1] != id {
		m.stack = append(m.stack, id)
	}
	m.mu.Unlock()
}

// popReturn pops the top of the return stack. An empty stack yields None.
func (m *Manager) popReturn() ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 1 {
		return None
	}
	id := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return id
}

func (m *Manager) contract(format string, args ...any) error {
	return m.driver.Tree().Contract(format, args...)
}
