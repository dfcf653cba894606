package geom

import (
	"image"
	"testing"
)

func TestRect_Contains(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{29, 19, true},
		{30, 10, false},
		{10, 20, false},
		{9, 15, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRect_Intersection(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	if got := a.Intersection(b); got != NewRect(5, 5, 5, 5) {
		t.Errorf("Intersection = %+v", got)
	}
	if got := a.Intersection(NewRect(20, 20, 5, 5)); got != ZeroRect {
		t.Errorf("disjoint Intersection = %+v, want zero", got)
	}
	if !a.Intersects(b) {
		t.Error("a should intersect b")
	}
}

func TestRect_ContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 100, 50)
	if !outer.ContainsRect(NewRect(10, 10, 90, 40)) {
		t.Error("inner rect touching the edges should be contained")
	}
	if outer.ContainsRect(NewRect(90, 10, 20, 10)) {
		t.Error("rect crossing the right edge should not be contained")
	}
	if !outer.ContainsRect(ZeroRect) {
		t.Error("empty rect is trivially contained")
	}
}

func TestRect_Union(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 5, 20)
	if got := a.Union(b); got != NewRect(0, 0, 25, 25) {
		t.Errorf("Union = %+v", got)
	}
	if got := ZeroRect.Union(b); got != b {
		t.Errorf("Union with empty = %+v", got)
	}
}

func TestRect_ImageRoundTrip(t *testing.T) {
	r := NewRect(3, 4, 5, 6)
	if got := r.Image(); got != image.Rect(3, 4, 8, 10) {
		t.Errorf("Image() = %v", got)
	}
	if got := FromImage(r.Image()); got != r {
		t.Errorf("FromImage = %+v", got)
	}
}

func TestRect_Inset(t *testing.T) {
	r := NewRect(0, 0, 10, 4)
	if got := r.Inset(1, 2, 1, 2); got != NewRect(2, 1, 6, 2) {
		t.Errorf("Inset = %+v", got)
	}
	if got := r.Inset(3, 0, 3, 0); got.Height != 0 {
		t.Errorf("over-inset height = %d, want 0", got.Height)
	}
}

func TestPoint_AddSub(t *testing.T) {
	p := Point{X: 3, Y: 4}.Add(Point{X: 1, Y: -2})
	if p != (Point{X: 4, Y: 2}) {
		t.Errorf("Add = %+v", p)
	}
	if q := p.Sub(Point{X: 4, Y: 2}); q != (Point{}) {
		t.Errorf("Sub = %+v", q)
	}
}
