package shape

import (
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

func TestCloneIsDeep(t *testing.T) {
	crop := geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	s := Shape{
		ID:   "g",
		Kind: KindGroup,
		Children: []Shape{
			{
				ID:     "b",
				Kind:   KindBrushPath,
				Points: []geom.Point{{X: 1, Y: 1}},
			},
			{
				ID:   "i",
				Kind: KindImage,
				Box:  Box{Width: 10, Height: 10, ScaleX: 1, ScaleY: 1},
				Crop: &crop,
			},
		},
	}

	c := s.Clone()
	c.Children[0].Points[0] = geom.Pt(99, 99)
	c.Children[1].Crop.X = 77

	if s.Children[0].Points[0] != geom.Pt(1, 1) {
		t.Error("Clone shares Points with original")
	}
	if s.Children[1].Crop.X != 1 {
		t.Error("Clone shares Crop with original")
	}
}

func TestNormalizeRepairsNegativeSize(t *testing.T) {
	s := Shape{
		ID:   "a",
		Kind: KindRect,
		Box:  Box{X: 0, Y: 0, Width: -100, Height: -50, ScaleX: 1, ScaleY: 1},
	}
	got := s.Normalize()
	if got.Box.Width != 100 || got.Box.Height != 50 {
		t.Errorf("Normalize size = %vx%v, want 100x50", got.Box.Width, got.Box.Height)
	}
}

func TestIsClosed(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
		want bool
	}{
		{
			name: "closed brush path",
			s: Shape{Kind: KindBrushPath, Points: []geom.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}, {X: 0, Y: 0},
			}},
			want: true,
		},
		{
			name: "open brush path",
			s: Shape{Kind: KindBrushPath, Points: []geom.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8},
			}},
			want: false,
		},
		{
			name: "two points never closed",
			s: Shape{Kind: KindBrushPath, Points: []geom.Point{
				{X: 0, Y: 0}, {X: 0, Y: 0},
			}},
			want: false,
		},
		{
			name: "box kind never closed",
			s:    Shape{Kind: KindRect},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsClosed(); got != tt.want {
				t.Errorf("IsClosed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathPoints(t *testing.T) {
	v := Shape{
		Kind: KindVectorPath,
		Anchors: []Anchor{
			{Point: geom.Pt(0, 0)},
			{Point: geom.Pt(10, 5)},
		},
	}
	got := v.PathPoints()
	if len(got) != 2 || got[1] != geom.Pt(10, 5) {
		t.Errorf("PathPoints = %v", got)
	}

	if pts := (Shape{Kind: KindRect}).PathPoints(); pts != nil {
		t.Errorf("box PathPoints = %v, want nil", pts)
	}
}
