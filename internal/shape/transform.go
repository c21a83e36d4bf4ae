package shape

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

// minScale is the smallest magnitude used in place of a near-zero scale or
// offset denominator. Substituting it keeps every transform total over its
// domain; it is a numerical-stability policy, not an error path.
const minScale = 1e-9

// SkewLimit bounds the shear factors on both axes.
const SkewLimit = 50.0

// nonZero clamps v's magnitude to at least minScale, preserving its sign.
// A zero value is treated as positive.
func nonZero(v float64) float64 {
	if v >= 0 && v < minScale {
		return minScale
	}
	if v < 0 && v > -minScale {
		return -minScale
	}
	return v
}

func clampSkew(v float64) float64 {
	if v > SkewLimit {
		return SkewLimit
	}
	if v < -SkewLimit {
		return -SkewLimit
	}
	return v
}

// Move translates the shape by (dx, dy). Box shapes move their origin, path
// shapes move every point and handle, groups recurse into their children.
func Move(s Shape, dx, dy float64) Shape {
	out := s.Clone()
	switch s.Kind {
	case KindVectorPath:
		for i := range out.Anchors {
			out.Anchors[i].Point.X += dx
			out.Anchors[i].Point.Y += dy
			out.Anchors[i].HandleIn.X += dx
			out.Anchors[i].HandleIn.Y += dy
			out.Anchors[i].HandleOut.X += dx
			out.Anchors[i].HandleOut.Y += dy
		}
	case KindBrushPath:
		for i := range out.Points {
			out.Points[i].X += dx
			out.Points[i].Y += dy
		}
	case KindGroup:
		for i := range out.Children {
			out.Children[i] = Move(out.Children[i], dx, dy)
		}
	default:
		out.Box.X += dx
		out.Box.Y += dy
	}
	return out
}

// Rotate rotates the shape about center by angle radians. Box shapes orbit
// their own center and accumulate the angle into Rotation; paths rotate every
// point and handle; group children each rotate about the same center, which
// keeps their relative layout and orientation intact without a separate group
// rotation field.
func Rotate(s Shape, center geom.Point, angle float64) Shape {
	out := s.Clone()
	switch s.Kind {
	case KindVectorPath:
		for i := range out.Anchors {
			out.Anchors[i].Point = out.Anchors[i].Point.RotateAbout(center, angle)
			out.Anchors[i].HandleIn = out.Anchors[i].HandleIn.RotateAbout(center, angle)
			out.Anchors[i].HandleOut = out.Anchors[i].HandleOut.RotateAbout(center, angle)
		}
	case KindBrushPath:
		for i := range out.Points {
			out.Points[i] = out.Points[i].RotateAbout(center, angle)
		}
	case KindGroup:
		for i := range out.Children {
			out.Children[i] = Rotate(out.Children[i], center, angle)
		}
	default:
		c := out.Box.Center().RotateAbout(center, angle)
		out.Box.Rotation += angle
		out.Box.X = c.X - out.Box.Width/2
		out.Box.Y = c.Y - out.Box.Height/2
	}
	return out
}

// Scale scales the shape about pivot. Width and height absorb the factor
// magnitudes; the factor signs accumulate into ScaleX/ScaleY so mirroring
// survives (two flips cancel visually but the state is preserved). Group
// children scale with the same pivot and factors, so both relative layout
// and individual sizes scale together.
func Scale(s Shape, pivot geom.Point, factorX, factorY float64) Shape {
	factorX = nonZero(factorX)
	factorY = nonZero(factorY)

	scalePoint := func(p geom.Point) geom.Point {
		return geom.Pt(
			pivot.X+(p.X-pivot.X)*factorX,
			pivot.Y+(p.Y-pivot.Y)*factorY,
		)
	}

	out := s.Clone()
	switch s.Kind {
	case KindVectorPath:
		for i := range out.Anchors {
			out.Anchors[i].Point = scalePoint(out.Anchors[i].Point)
			out.Anchors[i].HandleIn = scalePoint(out.Anchors[i].HandleIn)
			out.Anchors[i].HandleOut = scalePoint(out.Anchors[i].HandleOut)
		}
	case KindBrushPath:
		for i := range out.Points {
			out.Points[i] = scalePoint(out.Points[i])
		}
	case KindGroup:
		for i := range out.Children {
			out.Children[i] = Scale(out.Children[i], pivot, factorX, factorY)
		}
	default:
		c := scalePoint(out.Box.Center())
		out.Box.Width *= math.Abs(factorX)
		out.Box.Height *= math.Abs(factorY)
		if factorX < 0 {
			out.Box.ScaleX = -out.Box.ScaleX
		}
		if factorY < 0 {
			out.Box.ScaleY = -out.Box.ScaleY
		}
		out.Box.X = c.X - out.Box.Width/2
		out.Box.Y = c.Y - out.Box.Height/2
	}
	return out
}

// Skew recovers a new shear factor from a dragged edge handle. The pointer is
// brought into the shape's de-rotated local frame, the current scale's
// contribution is divided out (sign-safe, epsilon-guarded), and the factor is
// solved against the handle's un-skewed half-extent offset. Top and bottom
// handles edit SkewX only, left and right edit SkewY only; corner handles are
// reserved for resize and leave skew untouched. The result is clamped to
// [-SkewLimit, SkewLimit]; a non-finite result preserves the existing skew.
func Skew(s Shape, h Handle, pointer geom.Point) Shape {
	out := s.Clone()
	if !s.Kind.IsBox() {
		return out
	}

	center := out.Box.Center()
	local := pointer.RotateAbout(center, -out.Box.Rotation).Sub(center)
	local.X /= nonZero(out.Box.ScaleX)
	local.Y /= nonZero(out.Box.ScaleY)

	off := h.Offset(out.Box.Width, out.Box.Height)

	switch h {
	case HandleTop, HandleBottom:
		skewX := local.X / nonZero(off.Y)
		if !math.IsNaN(skewX) && !math.IsInf(skewX, 0) {
			out.Box.SkewX = clampSkew(skewX)
		}
	case HandleLeft, HandleRight:
		skewY := local.Y / nonZero(off.X)
		if !math.IsNaN(skewY) && !math.IsInf(skewY, 0) {
			out.Box.SkewY = clampSkew(skewY)
		}
	}
	return out
}
