package tcell

import (
	"image/color"
	"testing"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/vista/pkg/ui/geom"
	"github.com/odvcencio/vista/pkg/ui/surface"
	"github.com/odvcencio/vista/pkg/ui/terminal"
)

func TestCellToPixel(t *testing.T) {
	tests := []struct {
		name         string
		cx, cy       int
		wantX, wantY int
	}{
		{"origin", 0, 0, 2, 4},
		{"middle", 40, 12, 162, 100},
		{"last cell", 79, 23, 318, 188},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := CellToPixel(tt.cx, tt.cy, 80, 24, 320, 192)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CellToPixel = (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMouseAction(t *testing.T) {
	if got := mouseAction(tcellv2.ButtonNone, tcellv2.Button1); got != terminal.MousePress {
		t.Errorf("press = %v", got)
	}
	if got := mouseAction(tcellv2.Button1, tcellv2.Button1); got != terminal.MouseMove {
		t.Errorf("drag = %v", got)
	}
	if got := mouseAction(tcellv2.Button1, tcellv2.ButtonNone); got != terminal.MouseRelease {
		t.Errorf("release = %v", got)
	}
	if got := mouseAction(tcellv2.ButtonNone, tcellv2.WheelUp); got != terminal.MousePress {
		t.Errorf("wheel = %v", got)
	}
}

func TestConvertEvent_CtrlCIsQuit(t *testing.T) {
	b := NewWithScreen(tcellv2.NewSimulationScreen(""), 10, 10)
	ev := b.convert(tcellv2.NewEventKey(tcellv2.KeyCtrlC, 0, tcellv2.ModCtrl))
	if _, ok := ev.(terminal.QuitEvent); !ok {
		t.Errorf("Ctrl-C converted to %#v", ev)
	}
}

func TestConvertEvent_ShiftTabIsBacktab(t *testing.T) {
	b := NewWithScreen(tcellv2.NewSimulationScreen(""), 10, 10)
	ev, ok := b.convert(tcellv2.NewEventKey(tcellv2.KeyTab, 0, tcellv2.ModShift)).(terminal.KeyEvent)
	if !ok || ev.Key != terminal.KeyBacktab {
		t.Errorf("Shift-Tab converted to %#v", ev)
	}
}

func TestConvertEvent_PasteCollectsText(t *testing.T) {
	b := NewWithScreen(tcellv2.NewSimulationScreen(""), 10, 10)
	if ev := b.convert(tcellv2.NewEventPaste(true)); ev != nil {
		t.Fatalf("paste start produced %#v", ev)
	}
	for _, r := range "hi" {
		if ev := b.convert(tcellv2.NewEventKey(tcellv2.KeyRune, r, 0)); ev != nil {
			t.Fatalf("key inside paste produced %#v", ev)
		}
	}
	ev := b.convert(tcellv2.NewEventPaste(false))
	if p, ok := ev.(terminal.PasteEvent); !ok || p.Text != "hi" {
		t.Errorf("paste end produced %#v", ev)
	}
}

func TestPaintHalfBlocks_SwapsBGRA(t *testing.T) {
	screen := tcellv2.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(2, 1)

	pix := make([]byte, 2*2*surface.BytesPerPixel)
	s, err := surface.FromPixels(pix, 2, 2, 2*surface.BytesPerPixel, surface.FormatBGRA8888)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	red := color.RGBA{R: 255, A: 255}
	s.Fill(geom.NewRect(0, 0, 2, 2), red)

	PaintHalfBlocks(screen, s)

	mainc, _, style, _ := screen.GetContent(0, 0)
	if mainc != upperHalfBlock {
		t.Errorf("rune = %q, want %q", mainc, upperHalfBlock)
	}
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("fg = (%d,%d,%d), want red", r, g, b)
	}
}
