package screen

import "slices"

// State is a snapshot of the navigation state.
type State struct {
	Current        ID     `json:"current"`
	ReturnStack    []ID   `json:"return_stack"`
	Loaded         []ID   `json:"loaded"`
	NextTransition string `json:"next_transition"`
	Activating     bool   `json:"activating"`
}

// State returns a snapshot safe to read from any goroutine.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		Current:        m.current,
		ReturnStack:    slices.Clone(m.stack),
		Loaded:         slices.Clone(m.order),
		NextTransition: m.selector.Peek().String(),
		Activating:     m.activating,
	}
}
