package geom

import "math"

// Segment is a straight line segment between two world points.
type Segment struct {
	A Point
	B Point
}

// segEpsilon merges near-identical parameters and guards the parallel case.
const segEpsilon = 1e-9

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// At returns the point at parameter t along the segment.
func (s Segment) At(t float64) Point {
	return s.A.Lerp(s.B, t)
}

// Intersect computes the proper intersection of two segments. It returns the
// intersection point, the parameter along s (0 at s.A, 1 at s.B), and whether
// a proper intersection exists. Parallel and collinear pairs report none:
// a collinear overlap has no single crossing point, and the callers that cut
// paths treat grazing contact as no crossing.
func (s Segment) Intersect(o Segment) (Point, float64, bool) {
	d1 := s.B.Sub(s.A)
	d2 := o.B.Sub(o.A)

	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < segEpsilon {
		return Point{}, 0, false
	}

	w := o.A.Sub(s.A)
	t := (w.X*d2.Y - w.Y*d2.X) / denom
	u := (w.X*d1.Y - w.Y*d1.X) / denom

	if t < -segEpsilon || t > 1+segEpsilon || u < -segEpsilon || u > 1+segEpsilon {
		return Point{}, 0, false
	}

	t = clamp01(t)
	return s.At(t), t, true
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
