// Package screen implements full-display event handlers and the manager
// that navigates between them with a return-screen stack and transitions.
package screen

import (
	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/handler"
	"github.com/odvcencio/vista/pkg/ui/widget"
)

// ID names a screen.
type ID string

const (
	// None as a destination exits the application.
	None ID = "none"
	// Return as a destination goes back to the top of the return stack.
	Return ID = "return"
)

// Reserved reports whether id is None or Return.
func (id ID) Reserved() bool { return id == None || id == Return }

// Factory builds a screen and its widget tree. The manager loads the
// returned tree before first activation.
type Factory func(m *Manager) (*Screen, error)

// Screen is a handler covering the whole display. When it deactivates, its
// destination tells the manager where to go next.
type Screen struct {
	*handler.Handler

	id          ID
	destination ID
	manager     *Manager
}

// New creates a hidden screen sized to the display. logic receives the
// handler callbacks; a host quit without a logic QuitHandler exits.
func New(m *Manager, id ID, logic any) *Screen {
	var r geom.Rect
	if d := m.driver.Tree().Display(); d != nil && d.Surface() != nil {
		r = d.Surface().Bounds()
	}
	s := &Screen{
		Handler:     handler.New(m.driver, widget.KindScreen, widget.NoTag, r, logic),
		id:          id,
		destination: Return,
		manager:     m,
	}
	s.SetFallback(screenBase{s})
	return s
}

// ID returns the screen id.
func (s *Screen) ID() ID { return s.id }

// Manager returns the manager that owns the screen.
func (s *Screen) Manager() *Manager { return s.manager }

// Destination returns where navigation goes after the screen deactivates.
func (s *Screen) Destination() ID { return s.destination }

// SetDestination changes the destination without deactivating.
func (s *Screen) SetDestination(id ID) { s.destination = id }

// GoTo sets the destination and deactivates the screen.
func (s *Screen) GoTo(id ID) {
	s.destination = id
	s.Deactivate()
}

// screenBase exits the application on a host quit.
type screenBase struct{ s *Screen }

func (b screenBase) OnQuit(*handler.Handler) { b.s.GoTo(None) }
