package editor

import (
	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// DragKind identifies the active drag operation.
type DragKind string

const (
	DragIdle   DragKind = "idle"
	DragMove   DragKind = "move"
	DragResize DragKind = "resize"
	DragScale  DragKind = "scale"
	DragRotate DragKind = "rotate"
	DragCrop   DragKind = "crop"
)

// Axis is the move drag's axis lock.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// DragState is the single tagged drag variant. Exactly one operation is
// active at a time (or none), so simultaneous move+resize is unrepresentable.
// Each variant keeps the snapshots captured at pointer-down; live shapes are
// always recomputed from those originals plus the accumulated delta, never by
// mutating the live values in small increments.
type DragState struct {
	Kind DragKind

	// move, scale, rotate
	ShapeIDs  []string
	Originals []shape.Shape

	// resize, crop
	ShapeID  string
	Handle   shape.Handle
	Original shape.Shape

	// move
	InitialPointer geom.Point
	InitialBounds  geom.Rect
	AxisLock       Axis

	// resize
	SkewMode bool

	// scale
	Pivot geom.Point

	// rotate
	Center       geom.Point
	InitialAngle float64

	// crop
	OriginalCrop geom.Rect
}

// idleDrag is the zero drag state.
var idleDrag = DragState{Kind: DragIdle}

// Active reports whether a drag operation is in progress.
func (d DragState) Active() bool {
	return d.Kind != DragIdle && d.Kind != ""
}

// axisLockMargin is how dominant the perpendicular delta must become before a
// sticky axis lock switches axes.
const axisLockMargin = 2.0

// chooseAxisLock picks the locked axis for the given delta. The lock is
// sticky: once chosen it only switches when the perpendicular delta exceeds
// the locked one by axisLockMargin.
func chooseAxisLock(current Axis, delta geom.Point) Axis {
	ax, ay := abs(delta.X), abs(delta.Y)
	switch current {
	case AxisX:
		if ay > ax*axisLockMargin {
			return AxisY
		}
		return AxisX
	case AxisY:
		if ax > ay*axisLockMargin {
			return AxisX
		}
		return AxisY
	default:
		if ay > ax {
			return AxisY
		}
		return AxisX
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
