package terminal

import "testing"

func TestKeyConstants(t *testing.T) {
	keys := []Key{
		KeyNone, KeyRune, KeyEnter, KeyBackspace, KeyTab, KeyBacktab, KeyEscape,
		KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyDelete, KeyInsert,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
		KeyCtrlC, KeyCtrlD, KeyCtrlQ, KeyCtrlZ,
	}

	seen := make(map[Key]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key constant: %d", k)
		}
		seen[k] = true
	}
}

func TestEventInterface(t *testing.T) {
	var _ Event = KeyEvent{}
	var _ Event = ResizeEvent{}
	var _ Event = MouseEvent{}
	var _ Event = PasteEvent{}
	var _ Event = QuitEvent{}
}

func TestKeyEvent_Code(t *testing.T) {
	upper := KeyEvent{Key: KeyRune, Rune: 'Q', Shift: true}
	lower := KeyEvent{Key: KeyRune, Rune: 'q'}
	if upper.Code() != lower.Code() {
		t.Errorf("expected case-folded codes to match: %+v vs %+v", upper.Code(), lower.Code())
	}

	esc := KeyEvent{Key: KeyEscape}
	if esc.Code() != SpecialKey(KeyEscape) {
		t.Errorf("Code() = %+v, want escape", esc.Code())
	}
	if esc.Code() == RuneKey(0) {
		t.Error("special key must not collide with rune keys")
	}
}
