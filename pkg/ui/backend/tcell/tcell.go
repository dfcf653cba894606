// Package tcell provides a Backend implementation using tcell. The pixel
// surface is presented with upper-half-block cells, two pixels per cell.
package tcell

import (
	"image"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

const upperHalfBlock = '▀'

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen        tcell.Screen
	width, height int // display surface size in pixels
	clock         backend.Clock

	events chan terminal.Event
	done   chan struct{}
	once   sync.Once

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder

	buttons tcell.ButtonMask
}

// New creates a tcell backend presenting a width x height pixel surface.
func New(width, height int) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, width, height), nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen, width, height int) *Backend {
	return &Backend{
		screen: screen,
		width:  width,
		height: height,
		clock:  backend.NewSystemClock(),
		events: make(chan terminal.Event, 256),
		done:   make(chan struct{}),
	}
}

// Init initializes the backend and starts the input pump.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	b.screen.HideCursor()
	go b.pump()
	return nil
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.once.Do(func() {
		close(b.done)
		b.screen.Fini()
	})
}

// Size returns the display surface dimensions.
func (b *Backend) Size() (width, height int) {
	return b.width, b.height
}

// Clock returns the system monotonic clock.
func (b *Backend) Clock() backend.Clock {
	return b.clock
}

// Present draws the surface onto the terminal and shows it. The whole frame
// is rescaled because cells cover several surface pixels.
func (b *Backend) Present(s *surface.Surface, _ geom.Rect) {
	PaintHalfBlocks(b.screen, s)
	b.screen.Show()
}

// PollEvent waits up to timeout for the next event.
func (b *Backend) PollEvent(timeout time.Duration) terminal.Event {
	if timeout <= 0 {
		select {
		case ev := <-b.events:
			return ev
		default:
			return nil
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-b.events:
		return ev
	case <-timer.C:
		return nil
	case <-b.done:
		return terminal.QuitEvent{}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	select {
	case b.events <- ev:
		return nil
	default:
		return errQueueFull
	}
}

// Beep emits an audible bell.
func (b *Backend) Beep() {
	b.screen.Beep()
}

type queueError string

func (e queueError) Error() string { return string(e) }

const errQueueFull = queueError("event queue full")

func (b *Backend) pump() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		converted := b.convert(ev)
		if converted == nil {
			continue
		}
		select {
		case b.events <- converted:
		case <-b.done:
			return
		}
	}
}

// convert runs the bracketed paste state machine and maps tcell events.
func (b *Backend) convert(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			b.inPaste = true
			b.pasteBuffer.Reset()
			return nil
		}
		if e.End() {
			b.inPaste = false
			text := b.pasteBuffer.String()
			b.pasteBuffer.Reset()
			if text != "" {
				return terminal.PasteEvent{Text: text}
			}
		}
		return nil

	case *tcell.EventKey:
		if b.inPaste {
			switch e.Key() {
			case tcell.KeyRune:
				b.pasteBuffer.WriteRune(e.Rune())
			case tcell.KeyEnter:
				b.pasteBuffer.WriteRune('\n')
			case tcell.KeyTab:
				b.pasteBuffer.WriteRune('\t')
			}
			return nil
		}
		if e.Key() == tcell.KeyCtrlC {
			return terminal.QuitEvent{}
		}
		return convertKeyEvent(e)

	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}

	case *tcell.EventMouse:
		cx, cy := e.Position()
		cols, rows := b.screen.Size()
		x, y := CellToPixel(cx, cy, cols, rows, b.width, b.height)
		buttons := e.Buttons()
		action := mouseAction(b.buttons, buttons)
		button := convertMouseButton(buttons)
		if action == terminal.MouseRelease {
			button = convertMouseButton(b.buttons)
		}
		if buttons&(tcell.WheelUp|tcell.WheelDown) == 0 {
			b.buttons = buttons
		}
		mods := e.Modifiers()
		return terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: button,
			Action: action,
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
	default:
		return nil
	}
}

// PaintHalfBlocks scales s to the terminal grid (two pixel rows per cell)
// and writes one upper-half-block per cell.
func PaintHalfBlocks(screen tcell.Screen, s *surface.Surface) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 || s == nil || s.Width() == 0 || s.Height() == 0 {
		return
	}
	grid := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.NearestNeighbor.Scale(grid, grid.Bounds(), s.RGBA(), s.RGBA().Bounds(), xdraw.Src, nil)
	bgra := s.Format() == surface.FormatBGRA8888

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := grid.RGBAAt(x, y*2)
			bottom := grid.RGBAAt(x, y*2+1)
			if bgra {
				top.R, top.B = top.B, top.R
				bottom.R, bottom.B = bottom.B, bottom.R
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
}

// CellToPixel maps a terminal cell to the surface pixel at its centre.
func CellToPixel(cx, cy, cols, rows, width, height int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x := (cx*2 + 1) * width / (cols * 2)
	y := (cy*2 + 1) * height / (rows * 2)
	return x, y
}

func convertKeyEvent(e *tcell.EventKey) terminal.KeyEvent {
	mods := e.Modifiers()
	key := convertKey(e.Key())
	if key == terminal.KeyTab && mods&tcell.ModShift != 0 {
		key = terminal.KeyBacktab
	}
	return terminal.KeyEvent{
		Key:   key,
		Rune:  e.Rune(),
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
}

// convertKey converts tcell.Key to terminal.Key.
func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyInsert:
		return terminal.KeyInsert
	case tcell.KeyDelete:
		return terminal.KeyDelete
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyBacktab:
		return terminal.KeyBacktab
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyCtrlD:
		return terminal.KeyCtrlD
	case tcell.KeyCtrlQ:
		return terminal.KeyCtrlQ
	case tcell.KeyCtrlZ:
		return terminal.KeyCtrlZ
	case tcell.KeyF1:
		return terminal.KeyF1
	case tcell.KeyF2:
		return terminal.KeyF2
	case tcell.KeyF3:
		return terminal.KeyF3
	case tcell.KeyF4:
		return terminal.KeyF4
	case tcell.KeyF5:
		return terminal.KeyF5
	case tcell.KeyF6:
		return terminal.KeyF6
	case tcell.KeyF7:
		return terminal.KeyF7
	case tcell.KeyF8:
		return terminal.KeyF8
	case tcell.KeyF9:
		return terminal.KeyF9
	case tcell.KeyF10:
		return terminal.KeyF10
	case tcell.KeyF11:
		return terminal.KeyF11
	case tcell.KeyF12:
		return terminal.KeyF12
	default:
		return terminal.KeyNone
	}
}

// convertMouseButton converts tcell button mask to terminal.MouseButton.
func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseMiddle
	case buttons&tcell.Button3 != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

// mouseAction derives press/release/move from the previous button state;
// terminals only report the current mask.
func mouseAction(prev, cur tcell.ButtonMask) terminal.MouseAction {
	const pressMask = tcell.Button1 | tcell.Button2 | tcell.Button3
	if cur&(tcell.WheelUp|tcell.WheelDown) != 0 {
		return terminal.MousePress // Wheel events are instantaneous
	}
	switch {
	case cur&pressMask != 0 && prev&pressMask == 0:
		return terminal.MousePress
	case cur&pressMask == 0 && prev&pressMask != 0:
		return terminal.MouseRelease
	default:
		return terminal.MouseMove
	}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
