// Package backend defines the host rendering and input layer.
// This abstraction allows swapping between tcell (real terminals) and
// simulation backends (testing), so dispatch can be driven by injected events.
package backend

import (
	"time"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

//go:generate mockgen -package=mock -destination=mock/backend.go github.com/odvcencio/vista/pkg/ui/backend Backend,Clock

// Backend is the host abstraction layer.
// Implementations present pixel surfaces and deliver input events.
type Backend interface {
	// Init initializes the backend (enters alt screen, raw mode, etc).
	Init() error

	// Fini cleans up the backend (restores host state).
	Fini()

	// Size returns the display surface dimensions in pixels.
	Size() (width, height int)

	// Present pushes the area r of s to the host display.
	Present(s *surface.Surface, r geom.Rect)

	// PollEvent waits up to timeout for the next event.
	// Returns nil when no event arrived in time.
	PollEvent(timeout time.Duration) terminal.Event

	// PostEvent injects an event into the event queue.
	// Useful for testing and for posting internal events.
	PostEvent(ev terminal.Event) error

	// Clock returns the monotonic clock events and animations are timed by.
	Clock() Clock

	// Beep emits an audible bell.
	Beep()
}
