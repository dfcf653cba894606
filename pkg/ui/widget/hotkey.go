package widget

import "github.com/odvcencio/vista/pkg/ui/terminal"

// Hotkeys is an ordered key to tag mapping. Adding an existing key replaces
// its tag in place.
type Hotkeys struct {
	keys  []terminal.Keycode
	index map[terminal.Keycode]Tag
}

// NewHotkeys creates an empty table.
func NewHotkeys() *Hotkeys {
	return &Hotkeys{index: make(map[terminal.Keycode]Tag)}
}

// Add maps key to tag; the last write wins.
func (h *Hotkeys) Add(key terminal.Keycode, tag Tag) {
	if _, ok := h.index[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.index[key] = tag
}

// Remove deletes key from the table.
func (h *Hotkeys) Remove(key terminal.Keycode) {
	if _, ok := h.index[key]; !ok {
		return
	}
	delete(h.index, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

// Lookup returns the tag mapped to key.
func (h *Hotkeys) Lookup(key terminal.Keycode) (Tag, bool) {
	if h == nil {
		return NoTag, false
	}
	tag, ok := h.index[key]
	return tag, ok
}

// Keys returns the mapped keys in insertion order.
func (h *Hotkeys) Keys() []terminal.Keycode {
	out := make([]terminal.Keycode, len(h.keys))
	copy(out, h.keys)
	return out
}

// Len returns the number of mappings.
func (h *Hotkeys) Len() int { return len(h.keys) }
