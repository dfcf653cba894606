// Package terminal provides the host input event types consumed by event handlers.
package terminal

import "unicode"

// Event represents a host input event.
type Event interface {
	eventMarker()
}

// KeyEvent represents a key press or release.
type KeyEvent struct {
	Key      Key
	Rune     rune
	Alt      bool
	Ctrl     bool
	Shift    bool
	Released bool // Key-up; hosts without key-up reporting never set it
}

func (KeyEvent) eventMarker() {}

// Code returns the hotkey identifier of the event.
func (e KeyEvent) Code() Keycode {
	if e.Key == KeyRune {
		return RuneKey(e.Rune)
	}
	return SpecialKey(e.Key)
}

// ResizeEvent indicates the host display size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a pointer event in surface pixel coordinates.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) eventMarker() {}

// PasteEvent represents bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// QuitEvent is the host's request to close the application.
type QuitEvent struct{}

func (QuitEvent) eventMarker() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBacktab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlC
	KeyCtrlD
	KeyCtrlQ
	KeyCtrlZ
)

// Keycode identifies a key independent of modifiers; it keys hotkey tables.
type Keycode struct {
	Key  Key
	Rune rune
}

// RuneKey returns the keycode of a character key. Letters are case-folded
// so that 'Q' and 'q' share a hotkey.
func RuneKey(r rune) Keycode {
	return Keycode{Key: KeyRune, Rune: unicode.ToLower(r)}
}

// SpecialKey returns the keycode of a non-character key.
func SpecialKey(k Key) Keycode {
	return Keycode{Key: k}
}
