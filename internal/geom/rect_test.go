package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(60, 45), true},
		{"top-left corner inclusive", Pt(10, 20), true},
		{"bottom-right corner inclusive", Pt(110, 70), true},
		{"left of rect", Pt(9, 45), false},
		{"below rect", Pt(60, 71), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 20, Height: 10}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 25, Height: 15}
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}

	// Empty rects don't drag the union to the origin.
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %v, want %v", got, b)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("a.Union(empty) = %v, want %v", got, a)
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if got := r.Center(); got != Pt(60, 45) {
		t.Errorf("Center = %v, want (60,45)", got)
	}
}

func TestRectFromPoints(t *testing.T) {
	got := RectFromPoints(Pt(5, 10), Pt(-3, 4), Pt(7, -2))
	want := Rect{X: -3, Y: -2, Width: 10, Height: 12}
	if got != want {
		t.Errorf("RectFromPoints = %v, want %v", got, want)
	}

	if got := RectFromPoints(); got != (Rect{}) {
		t.Errorf("RectFromPoints() = %v, want zero rect", got)
	}

	// Single point yields a zero-size rect at that point.
	if got := RectFromPoints(Pt(3, 4)); got != (Rect{X: 3, Y: 4}) {
		t.Errorf("RectFromPoints(single) = %v", got)
	}
}
