package shape

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

// Handle names one of the eight drag affordances on a selection: four
// corners and four edges.
type Handle string

const (
	HandleTopLeft     Handle = "top-left"
	HandleTop         Handle = "top"
	HandleTopRight    Handle = "top-right"
	HandleRight       Handle = "right"
	HandleBottomRight Handle = "bottom-right"
	HandleBottom      Handle = "bottom"
	HandleBottomLeft  Handle = "bottom-left"
	HandleLeft        Handle = "left"
)

// Handles lists all handles in clockwise order starting at top-left.
var Handles = []Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// IsCorner reports whether the handle is one of the four corners.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft:
		return true
	}
	return false
}

// Offset returns the handle's local offset from the shape's center for a
// shape of the given width and height.
func (h Handle) Offset(width, height float64) geom.Point {
	hw, hh := width/2, height/2
	switch h {
	case HandleTopLeft:
		return geom.Pt(-hw, -hh)
	case HandleTop:
		return geom.Pt(0, -hh)
	case HandleTopRight:
		return geom.Pt(hw, -hh)
	case HandleRight:
		return geom.Pt(hw, 0)
	case HandleBottomRight:
		return geom.Pt(hw, hh)
	case HandleBottom:
		return geom.Pt(0, hh)
	case HandleBottomLeft:
		return geom.Pt(-hw, hh)
	case HandleLeft:
		return geom.Pt(-hw, 0)
	}
	return geom.Point{}
}

// Opposite returns the handle across the center, used as the fixed anchor
// when resizing.
func (h Handle) Opposite() Handle {
	switch h {
	case HandleTopLeft:
		return HandleBottomRight
	case HandleTop:
		return HandleBottom
	case HandleTopRight:
		return HandleBottomLeft
	case HandleRight:
		return HandleLeft
	case HandleBottomRight:
		return HandleTopLeft
	case HandleBottom:
		return HandleTop
	case HandleBottomLeft:
		return HandleTopRight
	case HandleLeft:
		return HandleRight
	}
	return h
}

// compass angle of each handle in 45 degree steps, counting clockwise from
// HandleRight at 0 (screen coordinates, y down).
var handleSteps = map[Handle]int{
	HandleRight:       0,
	HandleBottomRight: 1,
	HandleBottom:      2,
	HandleBottomLeft:  3,
	HandleLeft:        4,
	HandleTopLeft:     5,
	HandleTop:         6,
	HandleTopRight:    7,
}

var stepHandles = [8]Handle{
	HandleRight, HandleBottomRight, HandleBottom, HandleBottomLeft,
	HandleLeft, HandleTopLeft, HandleTop, HandleTopRight,
}

// RotateResizeHandle returns the handle whose compass direction is closest to
// h's direction rotated by rotation radians, snapped to the nearest 45 degree
// bucket. Resize cursors and active-handle highlighting use this to stay
// visually correct on rotated shapes.
func RotateResizeHandle(h Handle, rotation float64) Handle {
	base, ok := handleSteps[h]
	if !ok {
		return h
	}
	steps := int(math.Round(rotation / (math.Pi / 4)))
	idx := ((base+steps)%8 + 8) % 8
	return stepHandles[idx]
}

// HandlePositions returns the world position of every handle of a box shape,
// accounting for its rotation, scale, and skew.
func HandlePositions(b Box) map[Handle]geom.Point {
	out := make(map[Handle]geom.Point, len(Handles))
	for _, h := range Handles {
		out[h] = b.LocalToWorld(h.Offset(b.Width, b.Height))
	}
	return out
}
