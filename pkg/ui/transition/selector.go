package transition

// Selector holds the one-shot choice of the next transition. Every read
// through Take resets it to Default.
type Selector struct {
	next      Kind
	direction Direction
	fallback  Kind
}

// NewSelector creates a selector that resets to fallback.
func NewSelector(fallback Kind) *Selector {
	return &Selector{next: fallback, fallback: fallback}
}

// Set arms the next transition.
func (s *Selector) Set(k Kind) {
	s.next = k
	s.direction = Random
}

// SetPan arms a pan in a fixed direction.
func (s *Selector) SetPan(d Direction) {
	s.next = Pan
	s.direction = d
}

// Peek returns the armed transition without consuming it.
func (s *Selector) Peek() Kind { return s.next }

// Take returns the armed transition and resets the selector.
func (s *Selector) Take() (Kind, Direction) {
	k, d := s.next, s.direction
	s.next = s.fallback
	s.direction = Random
	return k, d
}
