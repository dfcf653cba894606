package main

import (
	"strings"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/runtime"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

const tagName widget.Tag = 7

// centered returns a w x h rectangle centered on the display.
func centered(app *runtime.App, w, h int) geom.Rect {
	b := app.Surface().Bounds()
	return geom.NewRect(b.X+(b.Width-w)/2, b.Y+(b.Height-h)/2, w, h)
}

// runDialog displays dl over whatever is on top and destroys it afterwards.
func runDialog(dl *handler.Dialog) (widget.Tag, error) {
	defer dl.Root().Destroy()
	if err := dl.Root().Load(); err != nil {
		return widget.NoTag, err
	}
	return dl.Display()
}

// confirm asks a yes/no question. It returns widget.TagOK, widget.TagCancel,
// widget.TagEscape or widget.TagQuit.
func confirm(app *runtime.App, question string) (widget.Tag, error) {
	tree := app.Tree()
	dl := handler.NewDialog(app.Driver(), widget.NoTag, centered(app, 200, 72), nil)
	for _, c := range []*widget.Widget{
		widget.NewLabel(tree, widget.NoTag, geom.NewRect(8, 8, 184, 16), question),
		widget.NewButton(tree, widget.TagOK, geom.NewRect(8, 42, 88, 20), "Yes"),
		widget.NewButton(tree, widget.TagCancel, geom.NewRect(104, 42, 88, 20), "No"),
	} {
		if err := dl.AddWidget(c, false); err != nil {
			dl.Root().Destroy()
			return widget.NoTag, err
		}
	}
	return runDialog(dl)
}

// askName prompts for a player name. OK stays disabled while the text box
// is empty, and a name made only of spaces counts as cancelled.
func askName(app *runtime.App, current string) (string, bool, error) {
	tree := app.Tree()
	dl := handler.NewDialog(app.Driver(), widget.NoTag, centered(app, 220, 92), nil)
	box := widget.NewTextBox(tree, tagName, geom.NewRect(8, 26, 204, 20), 24)
	widget.SetTextOf(box, current)
	for _, c := range []*widget.Widget{
		widget.NewLabel(tree, widget.NoTag, geom.NewRect(8, 6, 204, 16), "Player name"),
		box,
		widget.NewButton(tree, widget.TagOK, geom.NewRect(8, 62, 98, 20), "OK"),
		widget.NewButton(tree, widget.TagCancel, geom.NewRect(114, 62, 98, 20), "Cancel"),
	} {
		if err := dl.AddWidget(c, false); err != nil {
			dl.Root().Destroy()
			return "", false, err
		}
	}
	dl.SetRequiredText(tagName)
	defer dl.Root().Destroy()
	if err := dl.Root().Load(); err != nil {
		return "", false, err
	}

	tag, err := dl.Display()
	if err != nil || tag != widget.TagOK {
		return "", false, err
	}
	name := strings.TrimSpace(widget.TextOf(box))
	if name == "" {
		return "", false, nil
	}
	return name, true, nil
}
