package geom

import (
	"math"
	"testing"
)

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		s, o   Segment
		wantP  Point
		wantT  float64
		wantOK bool
	}{
		{
			name:   "perpendicular cross at midpoint",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 0)},
			o:      Segment{A: Pt(5, -5), B: Pt(5, 5)},
			wantP:  Pt(5, 0),
			wantT:  0.5,
			wantOK: true,
		},
		{
			name:   "diagonal cross",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 10)},
			o:      Segment{A: Pt(0, 10), B: Pt(10, 0)},
			wantP:  Pt(5, 5),
			wantT:  0.5,
			wantOK: true,
		},
		{
			name:   "crossing at segment start",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 0)},
			o:      Segment{A: Pt(0, -5), B: Pt(0, 5)},
			wantP:  Pt(0, 0),
			wantT:  0,
			wantOK: true,
		},
		{
			name:   "lines cross beyond segment end",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 0)},
			o:      Segment{A: Pt(20, -5), B: Pt(20, 5)},
			wantOK: false,
		},
		{
			name:   "parallel never intersect",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 0)},
			o:      Segment{A: Pt(0, 1), B: Pt(10, 1)},
			wantOK: false,
		},
		{
			name:   "collinear overlap reports none",
			s:      Segment{A: Pt(0, 0), B: Pt(10, 0)},
			o:      Segment{A: Pt(5, 0), B: Pt(15, 0)},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, tp, ok := tt.s.Intersect(tt.o)
			if ok != tt.wantOK {
				t.Fatalf("Intersect ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !pointsClose(p, tt.wantP) {
				t.Errorf("Intersect point = %v, want %v", p, tt.wantP)
			}
			if math.Abs(tp-tt.wantT) > eps {
				t.Errorf("Intersect t = %v, want %v", tp, tt.wantT)
			}
		})
	}
}

func TestSegmentAt(t *testing.T) {
	s := Segment{A: Pt(0, 0), B: Pt(10, 20)}
	if got := s.At(0.25); !pointsClose(got, Pt(2.5, 5)) {
		t.Errorf("At(0.25) = %v, want (2.5,5)", got)
	}
	if got := s.Length(); math.Abs(got-math.Hypot(10, 20)) > eps {
		t.Errorf("Length = %v", got)
	}
}
