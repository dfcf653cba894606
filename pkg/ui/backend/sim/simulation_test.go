package sim

import (
	"image/color"
	"testing"
	"time"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

func TestBackend_PresentPaintsHalfBlocks(t *testing.T) {
	sim := New(4, 4)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	s := surface.New(4, 4)
	s.Fill(geom.NewRect(0, 0, 4, 1), red)
	s.Fill(geom.NewRect(0, 1, 4, 1), blue)
	sim.Present(s, s.Bounds())

	top, bottom := sim.CaptureCell(0, 0)
	if top != red {
		t.Errorf("top = %v, want %v", top, red)
	}
	if bottom != blue {
		t.Errorf("bottom = %v, want %v", bottom, blue)
	}
	if sim.Presents() != 1 {
		t.Errorf("Presents = %d, want 1", sim.Presents())
	}
}

func TestBackend_LastFrameIsACopy(t *testing.T) {
	sim := New(2, 2)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	s := surface.New(2, 2)
	white := color.RGBA{255, 255, 255, 255}
	s.Clear(white)
	sim.Present(s, s.Bounds())
	s.Clear(color.RGBA{A: 255})

	frame := sim.LastFrame()
	if frame == nil {
		t.Fatal("LastFrame returned nil")
	}
	if got := frame.At(1, 1); got != white {
		t.Errorf("frame pixel = %v, want %v", got, white)
	}
}

func TestBackend_PollEventQueueOrder(t *testing.T) {
	sim := New(10, 10)
	sim.InjectKeyString("ab")
	sim.InjectClick(3, 4)

	want := []terminal.Event{
		terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'},
		terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'b'},
		terminal.MouseEvent{X: 3, Y: 4, Button: terminal.MouseLeft, Action: terminal.MousePress},
		terminal.MouseEvent{X: 3, Y: 4, Button: terminal.MouseLeft, Action: terminal.MouseRelease},
	}
	for i, w := range want {
		if got := sim.PollEvent(time.Millisecond); got != w {
			t.Errorf("event %d = %#v, want %#v", i, got, w)
		}
	}
	if sim.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sim.Pending())
	}
}

func TestBackend_IdlePollAdvancesClock(t *testing.T) {
	sim := New(10, 10)
	before := sim.ManualClock().Peek()

	if ev := sim.PollEvent(30 * time.Millisecond); ev != nil {
		t.Fatalf("expected nil event, got %#v", ev)
	}
	if got := sim.ManualClock().Peek() - before; got != 30*time.Millisecond {
		t.Errorf("clock advanced %v, want 30ms", got)
	}
}

func TestBackend_MaxIdlePolls(t *testing.T) {
	sim := New(10, 10)
	sim.SetMaxIdlePolls(2)

	if ev := sim.PollEvent(time.Millisecond); ev != nil {
		t.Fatalf("first poll = %#v", ev)
	}
	if ev := sim.PollEvent(time.Millisecond); ev != nil {
		t.Fatalf("second poll = %#v", ev)
	}
	if _, ok := sim.PollEvent(time.Millisecond).(terminal.QuitEvent); !ok {
		t.Error("third idle poll should report quit")
	}
}

func TestBackend_InjectResize(t *testing.T) {
	sim := New(80, 48)
	sim.InjectResize(40, 24)

	w, h := sim.Size()
	if w != 40 || h != 24 {
		t.Errorf("Size = %dx%d, want 40x24", w, h)
	}
	if ev, ok := sim.PollEvent(0).(terminal.ResizeEvent); !ok || ev.Width != 40 || ev.Height != 24 {
		t.Errorf("unexpected event %#v", ev)
	}
}

func TestBackend_Beep(t *testing.T) {
	sim := New(1, 1)
	sim.Beep()
	sim.Beep()
	if sim.Beeps() != 2 {
		t.Errorf("Beeps = %d, want 2", sim.Beeps())
	}
}
