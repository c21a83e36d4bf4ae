// Package geom provides the 2D primitives the editor core is built on:
// points in world units, axis-aligned rectangles, and line segments.
package geom

import "math"

// Point is a position or displacement in world units. Pure value, no identity.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Length returns the distance from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the angle of the vector p in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// RotateAbout rotates p around center by angle radians.
func (p Point) RotateAbout(center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Lerp linearly interpolates from p to q. t is unconstrained, so values
// outside [0, 1] extrapolate along the same line.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// SnapAngle keeps p's distance from origin but rounds its angle about origin
// to the nearest 45 degree increment. Used for constrained line drawing.
func (p Point) SnapAngle(origin Point) Point {
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	r := math.Hypot(dx, dy)
	if r == 0 {
		return p
	}
	const step = math.Pi / 4
	angle := math.Round(math.Atan2(dy, dx)/step) * step
	sin, cos := math.Sincos(angle)
	return Point{X: origin.X + r*cos, Y: origin.Y + r*sin}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
