package shape

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

// LocalToWorld maps an offset from the box's center into world space by
// applying skew, then scale, then rotation, then translating to the center.
func (b Box) LocalToWorld(off geom.Point) geom.Point {
	// Shear: x' = x + skewX*y, y' = y + skewY*x.
	sheared := geom.Pt(off.X+b.SkewX*off.Y, off.Y+b.SkewY*off.X)
	scaled := geom.Pt(sheared.X*b.ScaleX, sheared.Y*b.ScaleY)

	sin, cos := math.Sincos(b.Rotation)
	rotated := geom.Pt(scaled.X*cos-scaled.Y*sin, scaled.X*sin+scaled.Y*cos)

	c := b.Center()
	return geom.Pt(c.X+rotated.X, c.Y+rotated.Y)
}

// WorldToLocal inverts LocalToWorld: it maps a world point into the box's
// un-rotated, un-scaled, un-skewed local frame as an offset from the center.
// Near-zero scale and a degenerate shear matrix are epsilon-guarded, so the
// result is always finite.
func (b Box) WorldToLocal(p geom.Point) geom.Point {
	c := b.Center()
	derot := p.RotateAbout(c, -b.Rotation).Sub(c)
	descaled := geom.Pt(derot.X/nonZero(b.ScaleX), derot.Y/nonZero(b.ScaleY))

	// Inverse shear: det(K) = 1 - skewX*skewY.
	det := nonZero(1 - b.SkewX*b.SkewY)
	return geom.Pt(
		(descaled.X-b.SkewX*descaled.Y)/det,
		(descaled.Y-b.SkewY*descaled.X)/det,
	)
}

// Bounds computes the shape's axis-aligned world bounding box, accounting for
// rotation, scale, and skew. Group bounds are the union of the children's
// bounds; a group has no size of its own.
func Bounds(s Shape) geom.Rect {
	switch s.Kind {
	case KindVectorPath:
		pts := make([]geom.Point, 0, len(s.Anchors)*3)
		for _, a := range s.Anchors {
			pts = append(pts, a.Point, a.HandleIn, a.HandleOut)
		}
		return geom.RectFromPoints(pts...)
	case KindBrushPath:
		return geom.RectFromPoints(s.Points...)
	case KindGroup:
		var out geom.Rect
		first := true
		for _, c := range s.Children {
			b := Bounds(c)
			if first {
				out = b
				first = false
			} else {
				out = out.Union(b)
			}
		}
		return out
	default:
		corners := [4]Handle{HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft}
		pts := make([]geom.Point, 4)
		for i, h := range corners {
			pts[i] = s.Box.LocalToWorld(h.Offset(s.Box.Width, s.Box.Height))
		}
		return geom.RectFromPoints(pts...)
	}
}

// SelectionBounds returns the union of the bounds of the given shapes.
func SelectionBounds(shapes []Shape) geom.Rect {
	var out geom.Rect
	first := true
	for _, s := range shapes {
		b := Bounds(s)
		if first {
			out = b
			first = false
		} else {
			out = out.Union(b)
		}
	}
	return out
}
