// Package runtime wires a backend, a display surface, the widget tree, the
// handler driver and the screen manager into a runnable application.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/odvcencio/vista/pkg/config"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/screen"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/theme"
	"github.com/odvcencio/vista/pkg/ui/transition"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// AppConfig configures an App.
type AppConfig struct {
	Backend backend.Backend
	Config  *config.Config // Defaults to config.DefaultConfig
	Theme   *theme.Theme   // Defaults to the configured theme
	Logger  *logging.Logger
	Metrics *telemetry.Metrics
}

// App owns the display surface and everything drawing onto it. It is the
// widget.Display of its tree: updates are presented straight to the backend.
type App struct {
	backend backend.Backend
	cfg     *config.Config
	theme   *theme.Theme
	log     *logging.Logger
	metrics *telemetry.Metrics

	surface *surface.Surface
	tree    *widget.Tree
	driver  *handler.Driver
	player  *transition.Player
	manager *screen.Manager

	mu      sync.Mutex
	running bool
}

// NewApp creates an application for cfg. The display surface takes the
// backend's pixel size.
func NewApp(cfg AppConfig) (*App, error) {
	if cfg.Backend == nil {
		return nil, errors.New("backend is required")
	}
	conf := cfg.Config
	if conf == nil {
		conf = config.DefaultConfig()
	}
	th := cfg.Theme
	if th == nil {
		var err error
		if th, err = theme.ByName(conf.Display.Theme); err != nil {
			return nil, err
		}
	}
	kind, err := transition.ParseKind(conf.Transition())
	if err != nil {
		return nil, err
	}

	w, h := cfg.Backend.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("backend reports an empty display (%dx%d)", w, h)
	}

	a := &App{
		backend: cfg.Backend,
		cfg:     conf,
		theme:   th,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		surface: surface.New(w, h),
	}
	if a.log == nil {
		a.log = logging.Nop()
	}

	a.tree = widget.NewTree(widget.Options{
		Display: a,
		Theme:   th,
		Logger:  a.log,
		Metrics: a.metrics,
	})
	a.driver = handler.NewDriver(handler.Options{
		Backend:      a.backend,
		Tree:         a.tree,
		EventTimeout: conf.Timing.EventTimeout(),
		DoubleClick:  conf.Timing.DoubleClick(),
		Resize:       a.onResize,
		Logger:       a.log,
		Metrics:      a.metrics,
	})

	clock := a.backend.Clock()
	var sleep func(time.Duration)
	if mc, ok := clock.(*backend.ManualClock); ok {
		sleep = mc.Advance
	}
	a.player = transition.NewPlayer(transition.Options{
		Presenter: a.backend,
		Clock:     clock,
		Frame:     conf.Timing.Frame(),
		Fade:      conf.Timing.Fade(),
		Pan:       conf.Timing.Pan(),
		Logger:    a.log,
		Metrics:   a.metrics,
		Sleep:     sleep,
	})
	a.manager = screen.NewManager(screen.Options{
		Driver:            a.driver,
		Player:            a.player,
		DefaultTransition: kind,
		ReduceAnimation:   conf.Navigation.ReduceAnimation,
		Logger:            a.log,
		Metrics:           a.metrics,
	})
	return a, nil
}

// Surface returns the display surface.
func (a *App) Surface() *surface.Surface { return a.surface }

// Update presents r of the display surface to the host.
func (a *App) Update(r geom.Rect) {
	r = r.Intersection(a.surface.Bounds())
	if r.Empty() {
		return
	}
	a.backend.Present(a.surface, r)
}

// Tree returns the widget arena.
func (a *App) Tree() *widget.Tree { return a.tree }

// Driver returns the handler driver.
func (a *App) Driver() *handler.Driver { return a.driver }

// Manager returns the screen manager.
func (a *App) Manager() *screen.Manager { return a.manager }

// Player returns the transition player.
func (a *App) Player() *transition.Player { return a.player }

// Theme returns the active palette.
func (a *App) Theme() *theme.Theme { return a.theme }

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Register installs a screen factory.
func (a *App) Register(id screen.ID, f screen.Factory) error {
	return a.manager.Register(id, f)
}

// Post sends an event to the event loop.
func (a *App) Post(ev terminal.Event) error {
	return a.backend.PostEvent(ev)
}

// Running reports whether Run is in progress.
func (a *App) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Run initializes the backend and navigates from first until a screen exits
// with destination None. Cancelling ctx posts a host quit.
func (a *App) Run(ctx context.Context, first screen.ID) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return a.tree.Contract("app is already running")
	}
	a.running = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.surface.Clear(a.theme.Background)
	a.Update(a.surface.Bounds())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.log.Info("context cancelled, requesting quit")
			if err := a.backend.PostEvent(terminal.QuitEvent{}); err != nil {
				a.log.Warn("posting quit failed", "error", err)
			}
		case <-done:
		}
	}()

	a.log.Info("app started", "first_screen", string(first), "width", a.surface.Width(), "height", a.surface.Height())
	if err := a.manager.Run(first); err != nil {
		return err
	}
	a.log.Info("app stopped")
	return ctx.Err()
}

// onResize only logs: the surface keeps its pixel size and the backend
// rescales it to the new host size on the repaint that follows.
func (a *App) onResize(ev terminal.ResizeEvent) {
	a.log.WithCategory(logging.CategorySurface).Debug("host resized", "cols", ev.Width, "rows", ev.Height)
}
