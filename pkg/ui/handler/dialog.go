package handler

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/terminal"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// Dialog is a modal handler that returns a deactivation value from Display.
// Clicking a tagged widget closes the dialog with that tag, Escape closes
// it with TagEscape and a host quit closes it with TagQuit.
type Dialog struct {
	*Handler

	result      widget.Tag
	okTag       widget.Tag
	required    widget.Tag
	forwardQuit bool
}

// NewDialog creates a hidden dialog. r is in display coordinates.
func NewDialog(d *Driver, tag widget.Tag, r geom.Rect, logic any) *Dialog {
	dl := &Dialog{
		Handler:     New(d, widget.KindDialog, tag, r, logic),
		okTag:       widget.TagOK,
		forwardQuit: true,
	}
	dl.base = (*dialogBase)(dl)
	return dl
}

// SetRequiredText makes the OK button depend on the text box tagged tag:
// it is disabled while the box is empty. NoTag removes the requirement.
func (dl *Dialog) SetRequiredText(tag widget.Tag) { dl.required = tag }

// SetOKTag changes which button the required text gates.
func (dl *Dialog) SetOKTag(tag widget.Tag) { dl.okTag = tag }

// SetForwardQuit controls whether a host quit is first offered to the
// screen below for confirmation.
func (dl *Dialog) SetForwardQuit(v bool) { dl.forwardQuit = v }

// Result returns the deactivation value of the last Display.
func (dl *Dialog) Result() widget.Tag { return dl.result }

// Close ends the dialog with tag.
func (dl *Dialog) Close(tag widget.Tag) {
	dl.result = tag
	dl.Deactivate()
}

// Display shows the dialog and runs it until it closes, returning the
// deactivation value. A vetoed activation returns NoTag. The gated OK
// button is enabled again and the dialog hidden before returning.
func (dl *Dialog) Display() (widget.Tag, error) {
	h := dl.Handler
	if h.active {
		return widget.NoTag, h.Tree().Contract("dialog %s is already displayed", h.root)
	}
	dl.result = widget.NoTag
	h.root.Show()
	if !h.SetForActivate() {
		h.log.Debug("dialog activation vetoed", "dialog", h.root.String())
		dl.hide()
		return widget.NoTag, nil
	}
	h.focus.FocusFirst()
	dl.updateGate()
	h.Paint()

	err := h.Activate()

	if ok := dl.okButton(); ok != nil {
		ok.Enable()
	}
	dl.hide()
	h.log.Debug("dialog closed", "dialog", h.root.String(), "result", int(dl.result))
	return dl.result, err
}

func (dl *Dialog) hide() {
	area := dl.root.ScreenRect()
	dl.root.Hide()
	if top := dl.driver.Top(); top != nil {
		top.RepaintRect(area)
	}
}

func (dl *Dialog) okButton() *widget.Widget {
	if dl.okTag == widget.NoTag {
		return nil
	}
	return dl.root.GetWidget(dl.okTag, false)
}

// updateGate enables OK exactly when the required text box has content.
func (dl *Dialog) updateGate() {
	if dl.required == widget.NoTag {
		return
	}
	ok := dl.okButton()
	box := dl.root.GetWidget(dl.required, false)
	if ok == nil || box == nil {
		return
	}
	ok.SetEnabled(widget.TextOf(box) != "")
}

// dialogBase is the built-in dialog behaviour, consulted after the logic.
type dialogBase Dialog

func (b *dialogBase) dialog() *Dialog { return (*Dialog)(b) }

// OnClick closes the dialog with the tag of a clicked button. Clicks
// reported by other kinds, such as a list row picked with Enter, stay open.
func (b *dialogBase) OnClick(h *Handler, w *widget.Widget) {
	if w.Kind() == widget.KindButton && w.Active() && w.Tag() != widget.NoTag && !h.deactivating {
		b.dialog().Close(w.Tag())
	}
}

func (b *dialogBase) OnKeyDown(h *Handler, ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyEscape:
		b.dialog().Close(widget.TagEscape)
		return true
	case terminal.KeyEnter:
		if ok := b.dialog().okButton(); ok != nil && ok.Active() {
			b.dialog().Close(ok.Tag())
			return true
		}
	}
	return false
}

func (b *dialogBase) OnSubmit(h *Handler, _ *widget.Widget, _ string) {
	if ok := b.dialog().okButton(); ok != nil && ok.Active() && !h.deactivating {
		b.dialog().Close(ok.Tag())
	}
}

func (b *dialogBase) AfterKeyDown(*Handler, terminal.KeyEvent) { b.dialog().updateGate() }

func (b *dialogBase) OnTextChange(*Handler, *widget.Widget, string) { b.dialog().updateGate() }

// OnQuit offers the quit to the screen below. The dialog closes with
// TagQuit once that screen agreed by deactivating, or at once when there
// is no screen to ask.
func (b *dialogBase) OnQuit(h *Handler) {
	dl := b.dialog()
	if dl.forwardQuit {
		if screen := h.driver.Below(h, widget.KindScreen); screen != nil {
			screen.quit()
			if !screen.deactivating {
				h.log.Debug("quit declined", "screen", screen.root.String())
				return
			}
		}
	}
	dl.Close(widget.TagQuit)
}
