package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/odvcencio/vista/pkg/ui/effect"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/runtime"
	"github.com/odvcencio/vista/pkg/ui/screen"
	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/transition"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

const (
	screenTitle   screen.ID = "title"
	screenGame    screen.ID = "game"
	screenOptions screen.ID = "options"
)

// Widget tags, unique per parent.
const (
	tagPlay widget.Tag = iota + 10
	tagOptions
	tagQuit
	tagBack
	tagFlash
	tagBlink
	tagToast
	tagRename
	tagLevels
	tagPlayer
	tagTransitions
	tagLogo
)

// registerScreens installs the demo screens on app.
func registerScreens(app *runtime.App) error {
	sess := &session{player: "Player One"}
	for id, f := range map[screen.ID]screen.Factory{
		screenTitle:   func(m *screen.Manager) (*screen.Screen, error) { return newTitle(app, m) },
		screenGame:    func(m *screen.Manager) (*screen.Screen, error) { return newGame(app, m, sess) },
		screenOptions: func(m *screen.Manager) (*screen.Screen, error) { return newOptions(app, m) },
	} {
		if err := app.Register(id, f); err != nil {
			return err
		}
	}
	return nil
}

// session is state shared between screens for one run.
type session struct {
	player string
	level  string
}

// title is the first screen: play, options or quit.
type title struct {
	s          *screen.Screen
	app        *runtime.App
	confirming bool
}

func newTitle(app *runtime.App, m *screen.Manager) (*screen.Screen, error) {
	t := &title{app: app}
	t.s = screen.New(m, screenTitle, t)
	r := t.s.Root().Bounds()

	logo := widget.NewImage(app.Tree(), tagLogo, geom.NewRect(0, 8, 64, 32), logoImage(64, 32))
	if err := t.s.AddWidget(logo, false); err != nil {
		return nil, err
	}
	if err := logo.CenterHorizontally(); err != nil {
		return nil, err
	}

	y := 48
	for _, b := range []struct {
		tag  widget.Tag
		text string
		key  rune
	}{
		{tagPlay, "Play", 'p'},
		{tagOptions, "Options", 'o'},
		{tagQuit, "Quit", 'q'},
	} {
		btn := widget.NewButton(app.Tree(), b.tag, geom.NewRect((r.Width-96)/2, y, 96, 20), b.text)
		if err := t.s.AddWidget(btn, false); err != nil {
			return nil, err
		}
		t.s.Root().AddHotkey(terminal.RuneKey(b.key), b.tag)
		y += 26
	}
	return t.s, nil
}

func (t *title) OnClick(h *handler.Handler, w *widget.Widget) {
	m := t.s.Manager()
	switch w.Tag() {
	case tagPlay:
		m.SetPan(transition.Left)
		t.s.GoTo(screenGame)
	case tagOptions:
		t.s.GoTo(screenOptions)
	case tagQuit:
		t.confirmQuit()
	}
}

// OnQuit asks first. A second quit while the question is open exits.
func (t *title) OnQuit(*handler.Handler) {
	if t.confirming {
		t.s.GoTo(screen.None)
		return
	}
	t.confirmQuit()
}

func (t *title) confirmQuit() {
	t.confirming = true
	defer func() { t.confirming = false }()
	tag, err := confirm(t.app, "Really quit?")
	if err != nil {
		t.app.Tree().Logger().Error("confirm dialog failed", "error", err)
		t.s.GoTo(screen.None)
		return
	}
	if tag == widget.TagOK || tag == widget.TagQuit {
		t.s.GoTo(screen.None)
	}
}

// game shows effects, a level list and the player name.
type game struct {
	s       *screen.Screen
	app     *runtime.App
	sess    *session
	toaster *effect.Toaster
	name    *widget.Widget
	seq     int
}

func newGame(app *runtime.App, m *screen.Manager, sess *session) (*screen.Screen, error) {
	g := &game{app: app, sess: sess}
	g.s = screen.New(m, screenGame, g)
	r := g.s.Root().Bounds()
	tree := app.Tree()

	g.name = widget.NewLabel(tree, tagPlayer, geom.NewRect(8, 6, r.Width-16, 16), "")
	levels := widget.NewFrame(tree, widget.NoTag, geom.NewRect(8, 26, 140, r.Height-34), "Levels")
	list := widget.NewList(tree, tagLevels, geom.NewRect(4, 16, 132, r.Height-56),
		[]string{"Meadow", "Caverns", "Harbor", "Citadel", "Summit", "Archive", "Foundry", "Observatory"})
	if err := levels.AddWidget(list, false); err != nil {
		return nil, err
	}

	children := []*widget.Widget{g.name, levels}
	y := 26
	for _, b := range []struct {
		tag  widget.Tag
		text string
	}{
		{tagFlash, "Flash"},
		{tagBlink, "Blink"},
		{tagToast, "Toast"},
		{tagRename, "Rename"},
		{tagBack, "Back"},
	} {
		children = append(children, widget.NewButton(tree, b.tag, geom.NewRect(r.Width-104, y, 96, 20), b.text))
		y += 26
	}
	for _, c := range children {
		if err := g.s.AddWidget(c, false); err != nil {
			return nil, err
		}
	}
	g.s.Root().AddHotkey(terminal.SpecialKey(terminal.KeyEscape), tagBack)

	g.toaster = effect.NewToaster(g.s.Effects(), tree.Theme(), r)
	g.toaster.SetMaxCount(3)
	g.refresh()
	return g.s, nil
}

func (g *game) SetForActivate(*handler.Handler) bool {
	g.refresh()
	return true
}

func (g *game) refresh() {
	text := "Player: " + g.sess.player
	if g.sess.level != "" {
		text += "  Level: " + g.sess.level
	}
	widget.SetLabelText(g.name, text)
}

func (g *game) OnClick(h *handler.Handler, w *widget.Widget) {
	now := h.Driver().Clock().Now()
	th := g.app.Theme()
	g.seq++
	switch w.Tag() {
	case tagFlash:
		h.Effects().AddEffect(effect.NewFlash(g.seq, w.ScreenRect(), th.Accent, th.SurfaceRaised, 300*time.Millisecond, now))
	case tagBlink:
		h.Effects().AddEffect(effect.NewBlink(g.seq, w.ScreenRect(), th.Accent, th.Background, 120*time.Millisecond, 4, now))
	case tagToast:
		g.toaster.Info("Hello", fmt.Sprintf("%d effects running", h.Effects().Len()))
	case tagRename:
		g.rename()
	case tagBack:
		g.s.Manager().SetPan(transition.Right)
		g.s.GoTo(screen.Return)
	}
}

func (g *game) OnSelectChange(h *handler.Handler, w *widget.Widget, index int) {
	g.sess.level = widget.ListOf(w).SelectedText()
	g.refresh()
}

func (g *game) OnDoubleClick(h *handler.Handler, w *widget.Widget) {
	if w.Tag() != tagLevels {
		return
	}
	g.toaster.Success("Level", "Entering "+widget.ListOf(w).SelectedText())
}

func (g *game) rename() {
	name, ok, err := askName(g.app, g.sess.player)
	if err != nil {
		g.toaster.Error("Rename", err.Error())
		return
	}
	if ok {
		g.sess.player = name
		g.refresh()
	}
}

// options picks the transition used for the next screen change.
type options struct {
	s   *screen.Screen
	app *runtime.App
}

var transitionNames = []string{"fade", "pan", "cut"}

func newOptions(app *runtime.App, m *screen.Manager) (*screen.Screen, error) {
	o := &options{app: app}
	o.s = screen.New(m, screenOptions, o)
	r := o.s.Root().Bounds()
	tree := app.Tree()

	heading := widget.NewLabel(tree, widget.NoTag, geom.NewRect(8, 6, r.Width-16, 16), "Next transition")
	list := widget.NewList(tree, tagTransitions, geom.NewRect(8, 26, 120, 3*widget.RowHeight+4), transitionNames)
	back := widget.NewButton(tree, tagBack, geom.NewRect(8, r.Height-28, 96, 20), "Back")
	for _, c := range []*widget.Widget{heading, list, back} {
		if err := o.s.AddWidget(c, false); err != nil {
			return nil, err
		}
	}
	o.s.Root().AddHotkey(terminal.SpecialKey(terminal.KeyEscape), tagBack)
	return o.s, nil
}

func (o *options) OnSelectChange(h *handler.Handler, w *widget.Widget, index int) {
	kind, err := transition.ParseKind(transitionNames[index])
	if err != nil {
		return
	}
	o.s.Manager().SetTransition(kind)
}

func (o *options) OnClick(h *handler.Handler, w *widget.Widget) {
	if w.Tag() == tagBack {
		o.s.GoTo(screen.Return)
	}
}

// logoImage draws a diagonal gradient.
func logoImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(96 + 128*y/max(h-1, 1)),
				B: 200,
				A: 0xff,
			})
		}
	}
	return img
}
