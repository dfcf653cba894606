package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/vista/pkg/config"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/ui/backend/sim"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/runtime"
	"github.com/odvcencio/vista/pkg/ui/screen"
	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

func TestParseStartupOptions(t *testing.T) {
	opts, err := parseStartupOptions([]string{"-config", "vista.yaml", "-screen", "game"})
	require.NoError(t, err)
	assert.Equal(t, "vista.yaml", opts.configPath)
	assert.Equal(t, "game", opts.firstScreen)

	opts, err = parseStartupOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, string(screenTitle), opts.firstScreen)

	_, err = parseStartupOptions([]string{"extra"})
	assert.Error(t, err)
	_, err = parseStartupOptions([]string{"-nope"})
	assert.Error(t, err)
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, _, err := newLogger(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func newDemo(t *testing.T) (*runtime.App, *sim.Backend) {
	t.Helper()
	cfg := config.DefaultConfig()
	be := sim.New(cfg.Display.Width, cfg.Display.Height)
	app, err := runtime.NewApp(runtime.AppConfig{Backend: be, Config: cfg, Logger: logging.Nop()})
	require.NoError(t, err)
	require.NoError(t, registerScreens(app))
	// Idle polls end in a host quit so a stuck test still terminates.
	be.SetMaxIdlePolls(50)
	return app, be
}

func TestDemo_PlayBackAndQuit(t *testing.T) {
	app, be := newDemo(t)

	be.InjectKeyRune('p')
	be.InjectKey(terminal.KeyEscape, 0)
	be.InjectKeyRune('q')
	be.InjectKey(terminal.KeyEnter, 0)

	require.NoError(t, app.Run(context.Background(), screenTitle))
	assert.Equal(t, []screen.ID{screen.None}, app.Manager().ReturnStack())
	assert.Equal(t, 0, app.Tree().Len())
}

func TestDemo_QuitDeclinedKeepsRunning(t *testing.T) {
	app, be := newDemo(t)

	// Escape declines the first confirmation, the host quit is confirmed.
	be.InjectKeyRune('q')
	be.InjectKey(terminal.KeyEscape, 0)
	be.InjectQuit()
	be.InjectKey(terminal.KeyEnter, 0)

	require.NoError(t, app.Run(context.Background(), screenTitle))
	assert.Zero(t, be.Pending())
}

func TestConfirm_ButtonResult(t *testing.T) {
	app, be := newDemo(t)
	var got widget.Tag
	require.NoError(t, app.Register("once", func(m *screen.Manager) (*screen.Screen, error) {
		p := &oneShot{}
		p.s = screen.New(m, "once", p)
		p.run = func() {
			be.InjectKey(terminal.KeyTab, 0)
			be.InjectKey(terminal.KeyEnter, 0)
			tag, err := confirm(app, "Sure?")
			require.NoError(t, err)
			got = tag
		}
		return p.s, nil
	}))

	require.NoError(t, app.Run(context.Background(), "once"))
	assert.Equal(t, widget.TagCancel, got)
}

func TestAskName_BlankNameCancels(t *testing.T) {
	tests := []struct {
		name   string
		typed  string
		want   string
		wantOK bool
	}{
		{name: "spaces only", typed: "   "},
		{name: "trimmed", typed: " Ada ", want: "Ada", wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, be := newDemo(t)
			var (
				got string
				ok  bool
			)
			require.NoError(t, app.Register("ask", func(m *screen.Manager) (*screen.Screen, error) {
				p := &oneShot{}
				p.s = screen.New(m, "ask", p)
				p.run = func() {
					be.InjectKeyString(tt.typed)
					be.InjectKey(terminal.KeyEnter, 0)
					var err error
					got, ok, err = askName(app, "")
					require.NoError(t, err)
				}
				return p.s, nil
			}))

			require.NoError(t, app.Run(context.Background(), "ask"))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

// oneShot runs one action on its first tick and exits.
type oneShot struct {
	s   *screen.Screen
	run func()
	ran bool
}

func (p *oneShot) OnBetweenEvents(*handler.Handler, time.Duration) {
	if !p.ran {
		p.ran = true
		p.run()
	}
	p.s.GoTo(screen.None)
}
