// Package sim provides a deterministic backend for tests. Events come from an
// injected queue and time comes from a manual clock.
package sim

import (
	"image/color"
	"sync"
	"time"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/vista/pkg/ui/backend"
	"github.com/odvcencio/vista/pkg/ui/backend/tcell"
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

// Backend is a testable backend using tcell's simulation screen. Each
// terminal cell shows exactly two surface pixels.
type Backend struct {
	screen tcellv2.SimulationScreen
	clock  *backend.ManualClock

	mu            sync.Mutex
	width, height int
	queue         []terminal.Event
	last          *surface.Surface
	presents      int
	presented     []geom.Rect
	beeps         int
	idlePolls     int
	maxIdlePolls  int
}

// New creates a new simulation backend with the given pixel dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, (height+1)/2)

	return &Backend{
		screen: screen,
		clock:  backend.NewManualClock(),
		width:  width,
		height: height,
	}
}

// Init initializes the simulation screen.
func (s *Backend) Init() error {
	return s.screen.Init()
}

// Fini releases the simulation screen.
func (s *Backend) Fini() {
	s.screen.Fini()
}

// Size returns the pixel dimensions.
func (s *Backend) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Clock returns the manual clock driving the backend.
func (s *Backend) Clock() backend.Clock {
	return s.clock
}

// ManualClock exposes the clock for tests that need to move time.
func (s *Backend) ManualClock() *backend.ManualClock {
	return s.clock
}

// Present records a copy of the surface and paints it on the simulation screen.
func (s *Backend) Present(src *surface.Surface, r geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = src.Clone()
	s.presents++
	s.presented = append(s.presented, r)
	tcell.PaintHalfBlocks(s.screen, src)
	s.screen.Show()
}

// PollEvent pops the next queued event. When the queue is empty the clock
// advances by timeout and nil is returned, as a real host would after idling.
func (s *Backend) PollEvent(timeout time.Duration) terminal.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		s.idlePolls = 0
		return ev
	}
	s.clock.Advance(timeout)
	s.idlePolls++
	if s.maxIdlePolls > 0 && s.idlePolls > s.maxIdlePolls {
		s.idlePolls = 0
		return terminal.QuitEvent{}
	}
	return nil
}

// PostEvent appends an event to the queue.
func (s *Backend) PostEvent(ev terminal.Event) error {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	return nil
}

// Beep counts bell requests.
func (s *Backend) Beep() {
	s.mu.Lock()
	s.beeps++
	s.mu.Unlock()
}

// SetMaxIdlePolls makes PollEvent report a quit after n consecutive empty
// polls. Zero disables the limit.
func (s *Backend) SetMaxIdlePolls(n int) {
	s.mu.Lock()
	s.maxIdlePolls = n
	s.mu.Unlock()
}

// Pending returns the number of queued events.
func (s *Backend) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// InjectKey queues a key press.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune queues a regular character keypress.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString queues a string as a sequence of key events.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectMouse queues a pointer event.
func (s *Backend) InjectMouse(x, y int, button terminal.MouseButton, action terminal.MouseAction) {
	_ = s.PostEvent(terminal.MouseEvent{X: x, Y: y, Button: button, Action: action})
}

// InjectClick queues a left press and release at (x, y).
func (s *Backend) InjectClick(x, y int) {
	s.InjectMouse(x, y, terminal.MouseLeft, terminal.MousePress)
	s.InjectMouse(x, y, terminal.MouseLeft, terminal.MouseRelease)
}

// InjectQuit queues a host quit request.
func (s *Backend) InjectQuit() {
	_ = s.PostEvent(terminal.QuitEvent{})
}

// InjectResize resizes the display and queues a resize event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.screen.SetSize(width, (height+1)/2)
	s.mu.Unlock()
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// LastFrame returns a copy of the most recently presented surface, or nil.
func (s *Backend) LastFrame() *surface.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	return s.last.Clone()
}

// Presents returns how many times Present was called.
func (s *Backend) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

// PresentedRects returns the update rectangles passed to Present, in order.
func (s *Backend) PresentedRects() []geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]geom.Rect, len(s.presented))
	copy(out, s.presented)
	return out
}

// Beeps returns the number of bell requests.
func (s *Backend) Beeps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beeps
}

// CaptureCell returns the colours of the two pixels shown by a cell.
func (s *Backend) CaptureCell(x, y int) (top, bottom color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _, style, _ := s.screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return convertTcellColor(fg), convertTcellColor(bg)
}

func convertTcellColor(tc tcellv2.Color) color.RGBA {
	if tc == tcellv2.ColorDefault {
		return color.RGBA{}
	}
	r, g, b := tc.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
