// Package editor implements the interactive selection core: a drag state
// machine that turns pointer events into move, resize, scale, rotate, and
// crop operations on the shape collection, plus lasso-based path cutting.
//
// All state is owned by a single logical thread. Pointer-move events are
// coalesced into one pending slot and drained once per frame by Tick, so
// recomputation cost is bounded under fast pointer motion without dropping
// the final position.
package editor

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

// Modifiers are the modifier-key flags supplied by the input layer.
type Modifiers struct {
	Shift bool `json:"shift"` // axis lock on move, angle snap on rotate
	Alt   bool `json:"alt"`   // skew on edge handles
	Crop  bool `json:"crop"`  // crop mode on image/frame handles
}

// SnapFunc maps a world point to the nearest grid intersection. It is applied
// to transform inputs (reference pointer positions) only, never re-applied to
// shape outputs, so shapes keep their exact computed position even off-grid.
type SnapFunc func(geom.Point) geom.Point

const (
	// handleHitRadius is the pick distance for selection handles, in world
	// units (the view layer converts screen tolerances upstream).
	handleHitRadius = 8.0
	// rotateHandleOffset pushes the rotate zones outward from the selection
	// corners so they don't collide with the resize handles.
	rotateHandleOffset = 16.0
	// rotateSnapStep is the angle-snap increment when shift is held.
	rotateSnapStep = 15 * math.Pi / 180
	// minCropSize keeps crop rectangles from collapsing.
	minCropSize = 1.0
)

type pointerSample struct {
	pos  geom.Point
	mods Modifiers
}

// Editor owns the live shape collection, the current selection, and the drag
// state machine.
type Editor struct {
	shapes    []shape.Shape
	selection []string
	snap      SnapFunc
	drag      DragState
	pending   *pointerSample
}

// New creates an editor. snap may be nil to disable grid snapping.
func New(snap SnapFunc) *Editor {
	return &Editor{snap: snap}
}

// SetShapes replaces the shape collection (e.g. on document load).
func (e *Editor) SetShapes(shapes []shape.Shape) {
	e.shapes = make([]shape.Shape, len(shapes))
	for i, s := range shapes {
		e.shapes[i] = s.Clone()
	}
	e.drag = idleDrag
	e.pending = nil
	e.selection = nil
}

// Shapes returns the live (possibly mid-drag) shape collection.
func (e *Editor) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(e.shapes))
	for i, s := range e.shapes {
		out[i] = s.Clone()
	}
	return out
}

// AddShape appends a shape created by a tool command.
func (e *Editor) AddShape(s shape.Shape) {
	e.shapes = append(e.shapes, s.Normalize())
}

// RemoveShape deletes a shape by id. It reports whether the shape existed.
func (e *Editor) RemoveShape(id string) bool {
	for i, s := range e.shapes {
		if s.ID == id {
			e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
			e.selection = removeID(e.selection, id)
			return true
		}
	}
	return false
}

// Selection returns the selected shape ids.
func (e *Editor) Selection() []string {
	out := make([]string, len(e.selection))
	copy(out, e.selection)
	return out
}

// SetSelection replaces the selection, dropping ids that don't resolve.
func (e *Editor) SetSelection(ids []string) {
	e.selection = e.selection[:0]
	for _, id := range ids {
		if _, ok := e.shapeByID(id); ok {
			e.selection = append(e.selection, id)
		}
	}
}

// Drag returns the current drag state.
func (e *Editor) Drag() DragState {
	return e.drag
}

// SelectionBounds returns the world bounding box of the current selection,
// used for outlines and handle placement.
func (e *Editor) SelectionBounds() geom.Rect {
	return shape.SelectionBounds(e.selectedShapes())
}

// HitTest returns the id of the topmost shape whose bounds contain p, or "".
func (e *Editor) HitTest(p geom.Point) string {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if shape.Bounds(e.shapes[i]).Contains(p) {
			return e.shapes[i].ID
		}
	}
	return ""
}

// PointerDown starts a drag or updates the selection. Handle hits on the
// current selection take priority over shape bodies.
func (e *Editor) PointerDown(p geom.Point, mods Modifiers) {
	// A conflicting pointer-down discards the drag in progress and restores
	// the pre-drag snapshot.
	if e.drag.Active() {
		e.Cancel()
	}

	if len(e.selection) > 0 {
		if e.beginHandleDrag(p, mods) {
			return
		}
	}

	id := e.HitTest(p)
	if id == "" {
		e.selection = nil
		return
	}

	if e.isSelected(id) && !mods.Shift {
		e.beginMove(p)
		return
	}

	if mods.Shift {
		if e.isSelected(id) {
			e.selection = removeID(e.selection, id)
		} else {
			e.selection = append(e.selection, id)
		}
	} else {
		e.selection = []string{id}
	}
}

// PointerMove queues a pointer sample. Samples arriving between frames
// overwrite each other; Tick applies only the latest.
func (e *Editor) PointerMove(p geom.Point, mods Modifiers) {
	e.pending = &pointerSample{pos: p, mods: mods}
}

// Tick drains the pending pointer sample and applies the active drag. It
// reports whether the live shape set changed.
func (e *Editor) Tick() bool {
	if e.pending == nil {
		return false
	}
	s := *e.pending
	e.pending = nil

	if !e.drag.Active() {
		return false
	}

	// A dragged shape deleted out from under the drag aborts the whole
	// operation; surviving shapes are restored to their snapshots.
	if !e.dragTargetsExist() {
		e.restoreOriginals()
		e.drag = idleDrag
		return true
	}

	switch e.drag.Kind {
	case DragMove:
		e.tickMove(s)
	case DragResize:
		e.tickResize(s)
	case DragScale:
		e.tickScale(s)
	case DragRotate:
		e.tickRotate(s)
	case DragCrop:
		e.tickCrop(s)
	}
	return true
}

// PointerUp commits the live shape set as the new document state and returns
// to idle, dropping all captured snapshots.
func (e *Editor) PointerUp() {
	e.Tick() // apply the final coalesced sample before committing
	e.drag = idleDrag
	e.pending = nil
}

// CutWithLasso cuts every path shape crossed by the lasso polyline,
// replacing affected paths with their kept fragments. Invoked at drag-release
// time by lasso-cut tools; ids of fully removed paths drop out of the
// selection.
func (e *Editor) CutWithLasso(lasso []geom.Point) {
	e.shapes = Cut(lasso, e.shapes, typeid.NewShapeID)
	e.SetSelection(e.selection)
}

// Cancel discards the in-progress drag and restores the pre-drag shapes.
func (e *Editor) Cancel() {
	if e.drag.Active() {
		e.restoreOriginals()
	}
	e.drag = idleDrag
	e.pending = nil
}

// --- pointer-down dispatch ---

// beginHandleDrag hit-tests the selection's handles and enters the matching
// drag state. Returns false if no handle was hit.
func (e *Editor) beginHandleDrag(p geom.Point, mods Modifiers) bool {
	selected := e.selectedShapes()
	if len(selected) == 0 {
		return false
	}

	// Single box shape: its own (possibly rotated/skewed) handles drive
	// resize, skew, and crop.
	if len(selected) == 1 && selected[0].Kind.IsBox() {
		s := selected[0]
		if h, ok := nearestHandle(shape.HandlePositions(s.Box), p); ok {
			switch {
			case mods.Crop && (s.Kind == shape.KindImage || s.Kind == shape.KindFrame):
				e.drag = DragState{
					Kind:         DragCrop,
					ShapeID:      s.ID,
					Handle:       h,
					Original:     s.Clone(),
					OriginalCrop: cropOrFull(s),
				}
			default:
				e.drag = DragState{
					Kind:           DragResize,
					ShapeID:        s.ID,
					Handle:         h,
					Original:       s.Clone(),
					InitialPointer: e.snapPoint(p),
					SkewMode:       mods.Alt && !h.IsCorner(),
				}
			}
			return true
		}
	} else {
		// Multi-selection (or a single path/group): bounding-box handles
		// drive a proportional scale about the opposite corner or edge.
		bounds := shape.SelectionBounds(selected)
		if h, ok := nearestHandle(bboxHandlePositions(bounds), p); ok {
			pivot := bounds.Center().Add(h.Opposite().Offset(bounds.Width, bounds.Height))
			e.drag = DragState{
				Kind:           DragScale,
				ShapeIDs:       e.Selection(),
				Originals:      cloneShapes(selected),
				Handle:         h,
				Pivot:          pivot,
				InitialPointer: e.snapPoint(p),
				InitialBounds:  bounds,
			}
			return true
		}
	}

	// Rotate zones sit just outside the selection's bounding-box corners.
	bounds := shape.SelectionBounds(selected)
	if e.hitRotateZone(bounds, p) {
		center := bounds.Center()
		e.drag = DragState{
			Kind:         DragRotate,
			ShapeIDs:     e.Selection(),
			Originals:    cloneShapes(selected),
			Center:       center,
			InitialAngle: p.Sub(center).Angle(),
		}
		return true
	}

	return false
}

func (e *Editor) beginMove(p geom.Point) {
	e.drag = DragState{
		Kind:           DragMove,
		ShapeIDs:       e.Selection(),
		Originals:      cloneShapes(e.selectedShapes()),
		InitialPointer: p,
		InitialBounds:  e.SelectionBounds(),
	}
}

// --- per-frame drag application ---

func (e *Editor) tickMove(s pointerSample) {
	// Snapping applies to the current pointer, not the delta, so it stays
	// stable relative to the grid rather than to the drag's start offset.
	delta := e.snapPoint(s.pos).Sub(e.drag.InitialPointer)

	if s.mods.Shift {
		e.drag.AxisLock = chooseAxisLock(e.drag.AxisLock, delta)
		if e.drag.AxisLock == AxisX {
			delta.Y = 0
		} else {
			delta.X = 0
		}
	} else {
		e.drag.AxisLock = AxisNone
	}

	for _, orig := range e.drag.Originals {
		e.replaceShape(shape.Move(orig, delta.X, delta.Y))
	}
}

func (e *Editor) tickResize(s pointerSample) {
	cur := e.snapPoint(s.pos)
	if e.drag.SkewMode {
		e.replaceShape(shape.Skew(e.drag.Original, e.drag.Handle, cur))
		return
	}
	e.replaceShape(resizeBox(e.drag.Original, e.drag.Handle, cur))
}

func (e *Editor) tickScale(s pointerSample) {
	cur := e.snapPoint(s.pos)
	fx := safeDiv(cur.X-e.drag.Pivot.X, e.drag.InitialPointer.X-e.drag.Pivot.X)
	fy := safeDiv(cur.Y-e.drag.Pivot.Y, e.drag.InitialPointer.Y-e.drag.Pivot.Y)

	// Edge handles scale a single axis.
	switch e.drag.Handle {
	case shape.HandleLeft, shape.HandleRight:
		fy = 1
	case shape.HandleTop, shape.HandleBottom:
		fx = 1
	}

	for _, orig := range e.drag.Originals {
		e.replaceShape(shape.Scale(orig, e.drag.Pivot, fx, fy))
	}
}

func (e *Editor) tickRotate(s pointerSample) {
	delta := s.pos.Sub(e.drag.Center).Angle() - e.drag.InitialAngle

	if s.mods.Shift {
		// Snap the resulting absolute angle when a single box shape is
		// rotated, otherwise snap the shared delta.
		if len(e.drag.Originals) == 1 && e.drag.Originals[0].Kind.IsBox() {
			abs := e.drag.Originals[0].Box.Rotation + delta
			delta = math.Round(abs/rotateSnapStep)*rotateSnapStep - e.drag.Originals[0].Box.Rotation
		} else {
			delta = math.Round(delta/rotateSnapStep) * rotateSnapStep
		}
	}

	for _, orig := range e.drag.Originals {
		e.replaceShape(shape.Rotate(orig, e.drag.Center, delta))
	}
}

func (e *Editor) tickCrop(s pointerSample) {
	orig := e.drag.Original
	b := orig.Box

	// Pointer in the shape's local frame, shifted to [0..w] x [0..h].
	local := b.WorldToLocal(s.pos).Add(geom.Pt(b.Width/2, b.Height/2))
	local.X = clampRange(local.X, 0, b.Width)
	local.Y = clampRange(local.Y, 0, b.Height)

	rect := e.drag.OriginalCrop
	left, top := rect.X, rect.Y
	right, bottom := rect.X+rect.Width, rect.Y+rect.Height

	switch e.drag.Handle {
	case shape.HandleLeft, shape.HandleTopLeft, shape.HandleBottomLeft:
		left = math.Min(local.X, right-minCropSize)
	case shape.HandleRight, shape.HandleTopRight, shape.HandleBottomRight:
		right = math.Max(local.X, left+minCropSize)
	}
	switch e.drag.Handle {
	case shape.HandleTop, shape.HandleTopLeft, shape.HandleTopRight:
		top = math.Min(local.Y, bottom-minCropSize)
	case shape.HandleBottom, shape.HandleBottomLeft, shape.HandleBottomRight:
		bottom = math.Max(local.Y, top+minCropSize)
	}

	live := orig.Clone()
	live.Crop = &geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
	e.replaceShape(live)
}

// --- helpers ---

// resizeBox recomputes a box shape from a dragged handle, anchored at the
// opposite handle so that edge or corner stays fixed in world space. The
// pointer is solved in the original's un-skewed local frame; a drag past the
// anchor mirrors the geometry by flipping the scale sign instead of clamping
// size to zero.
func resizeBox(orig shape.Shape, h shape.Handle, pointer geom.Point) shape.Shape {
	out := orig.Clone()
	b := orig.Box

	pl := b.WorldToLocal(pointer)
	anchor := h.Opposite()
	aOff := anchor.Offset(b.Width, b.Height)

	newW, newH := b.Width, b.Height
	sx, sy := b.ScaleX, b.ScaleY
	centerLocal := geom.Point{}

	if side := handleSideX(h); side != 0 {
		span := pl.X - aOff.X
		newW = abs(span)
		if span*side < 0 {
			sx = -sx
		}
		centerLocal.X = aOff.X + span/2
	}
	if side := handleSideY(h); side != 0 {
		span := pl.Y - aOff.Y
		newH = abs(span)
		if span*side < 0 {
			sy = -sy
		}
		centerLocal.Y = aOff.Y + span/2
	}

	// Map the new center back through the original frame; the anchor's world
	// position is invariant under this construction.
	c := b.LocalToWorld(centerLocal)
	out.Box.Width = newW
	out.Box.Height = newH
	out.Box.ScaleX = sx
	out.Box.ScaleY = sy
	out.Box.X = c.X - newW/2
	out.Box.Y = c.Y - newH/2
	return out
}

// handleSideX is the handle's horizontal direction: +1 on the right side,
// -1 on the left, 0 for top/bottom.
func handleSideX(h shape.Handle) float64 {
	switch h {
	case shape.HandleTopRight, shape.HandleRight, shape.HandleBottomRight:
		return 1
	case shape.HandleTopLeft, shape.HandleLeft, shape.HandleBottomLeft:
		return -1
	}
	return 0
}

func handleSideY(h shape.Handle) float64 {
	switch h {
	case shape.HandleBottomLeft, shape.HandleBottom, shape.HandleBottomRight:
		return 1
	case shape.HandleTopLeft, shape.HandleTop, shape.HandleTopRight:
		return -1
	}
	return 0
}

func nearestHandle(positions map[shape.Handle]geom.Point, p geom.Point) (shape.Handle, bool) {
	var best shape.Handle
	bestDist := math.Inf(1)
	for h, pos := range positions {
		if d := pos.Distance(p); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, bestDist <= handleHitRadius
}

func bboxHandlePositions(r geom.Rect) map[shape.Handle]geom.Point {
	c := r.Center()
	out := make(map[shape.Handle]geom.Point, len(shape.Handles))
	for _, h := range shape.Handles {
		out[h] = c.Add(h.Offset(r.Width, r.Height))
	}
	return out
}

func (e *Editor) hitRotateZone(bounds geom.Rect, p geom.Point) bool {
	c := bounds.Center()
	corners := []shape.Handle{
		shape.HandleTopLeft, shape.HandleTopRight,
		shape.HandleBottomRight, shape.HandleBottomLeft,
	}
	for _, h := range corners {
		off := h.Offset(bounds.Width, bounds.Height)
		// Push the zone diagonally outward from the corner.
		dir := geom.Pt(sign(off.X), sign(off.Y))
		zone := c.Add(off).Add(dir.Mul(rotateHandleOffset))
		if zone.Distance(p) <= handleHitRadius {
			return true
		}
	}
	return false
}

func (e *Editor) snapPoint(p geom.Point) geom.Point {
	if e.snap == nil {
		return p
	}
	return e.snap(p)
}

func (e *Editor) shapeByID(id string) (shape.Shape, bool) {
	for _, s := range e.shapes {
		if s.ID == id {
			return s, true
		}
	}
	return shape.Shape{}, false
}

func (e *Editor) isSelected(id string) bool {
	for _, sel := range e.selection {
		if sel == id {
			return true
		}
	}
	return false
}

func (e *Editor) selectedShapes() []shape.Shape {
	out := make([]shape.Shape, 0, len(e.selection))
	for _, id := range e.selection {
		if s, ok := e.shapeByID(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func (e *Editor) replaceShape(s shape.Shape) {
	for i := range e.shapes {
		if e.shapes[i].ID == s.ID {
			e.shapes[i] = s
			return
		}
	}
}

func (e *Editor) dragTargetsExist() bool {
	check := func(id string) bool {
		_, ok := e.shapeByID(id)
		return ok
	}
	switch e.drag.Kind {
	case DragResize, DragCrop:
		return check(e.drag.ShapeID)
	default:
		for _, id := range e.drag.ShapeIDs {
			if !check(id) {
				return false
			}
		}
		return true
	}
}

func (e *Editor) restoreOriginals() {
	if e.drag.Original.ID != "" {
		e.replaceShape(e.drag.Original.Clone())
	}
	for _, orig := range e.drag.Originals {
		e.replaceShape(orig.Clone())
	}
}

func cropOrFull(s shape.Shape) geom.Rect {
	if s.Crop != nil {
		return *s.Crop
	}
	return geom.Rect{X: 0, Y: 0, Width: s.Box.Width, Height: s.Box.Height}
}

func cloneShapes(shapes []shape.Shape) []shape.Shape {
	out := make([]shape.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func safeDiv(num, den float64) float64 {
	const eps = 1e-9
	if den >= 0 && den < eps {
		den = eps
	} else if den < 0 && den > -eps {
		den = -eps
	}
	return num / den
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
