package editor

import (
	"sort"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// Cut splits every path shape crossed by the lasso polyline into sub-paths,
// discarding the runs covered by the lasso. Intersections are ordered by
// their parametric position along the path's cumulative arc length, and the
// runs between consecutive intersections alternate kept/discarded starting
// with kept. On a closed path the alternation wraps across the closure seam:
// with an even crossing count the two runs meeting at the seam carry the same
// kept parity and both survive, sharing the seam point as separate fragments,
// so a mid-cut loop always splits into at least two pieces.
//
// Non-path shapes pass through unchanged, as do paths with no intersections.
// A lasso or path with fewer than 2 points is a no-op. Fragments inherit the
// original's style and receive ids from newID; fragments with fewer than 2
// points are dropped.
func Cut(lasso []geom.Point, shapes []shape.Shape, newID func() string) []shape.Shape {
	if len(lasso) < 2 {
		return shapes
	}

	out := make([]shape.Shape, 0, len(shapes))
	for _, s := range shapes {
		if !s.Kind.IsPath() {
			out = append(out, s)
			continue
		}
		out = append(out, cutPath(lasso, s, newID)...)
	}
	return out
}

// pathCut is one lasso crossing, positioned by arc length from the path start.
type pathCut struct {
	t     float64 // cumulative arc length at the crossing
	seg   int     // index of the path segment containing it
	point geom.Point
}

func cutPath(lasso []geom.Point, s shape.Shape, newID func() string) []shape.Shape {
	pts := s.PathPoints()
	if len(pts) < 2 {
		return []shape.Shape{s}
	}

	cuts := collectCuts(lasso, pts)
	if len(cuts) == 0 {
		return []shape.Shape{s}
	}

	fragments := splitAnchors(pathAnchors(s), cuts)

	// Alternate kept/discarded, starting with the run before the first
	// intersection. On a closed path with an even crossing count the runs
	// meeting at the seam land on the same parity, so the alternation wraps
	// consistently; the seam-adjacent kept runs stay separate fragments
	// joined at the seam point rather than collapsing into one arc.
	kept := make([][]shape.Anchor, 0, (len(fragments)+1)/2)
	for i, frag := range fragments {
		if i%2 == 0 {
			kept = append(kept, frag)
		}
	}

	result := make([]shape.Shape, 0, len(kept))
	for _, frag := range kept {
		if len(frag) < 2 {
			continue
		}
		result = append(result, fragmentShape(s, frag, newID()))
	}
	return result
}

// collectCuts intersects every path segment with every lasso segment and
// returns the crossings sorted by arc length, with near-duplicates (vertex
// grazes, collinear touches) merged.
func collectCuts(lasso []geom.Point, pts []geom.Point) []pathCut {
	var cuts []pathCut
	var arc float64
	for i := 0; i < len(pts)-1; i++ {
		seg := geom.Segment{A: pts[i], B: pts[i+1]}
		segLen := seg.Length()
		for j := 0; j < len(lasso)-1; j++ {
			ls := geom.Segment{A: lasso[j], B: lasso[j+1]}
			if p, t, ok := seg.Intersect(ls); ok {
				cuts = append(cuts, pathCut{t: arc + t*segLen, seg: i, point: p})
			}
		}
		arc += segLen
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].t < cuts[j].t })

	eps := 1e-9 * (1 + arc)
	dedup := cuts[:0]
	for _, c := range cuts {
		if len(dedup) > 0 && c.t-dedup[len(dedup)-1].t < eps {
			continue
		}
		dedup = append(dedup, c)
	}
	return dedup
}

// pathAnchors returns the path as anchors; brush points become flat anchors.
func pathAnchors(s shape.Shape) []shape.Anchor {
	if s.Kind == shape.KindVectorPath {
		anchors := make([]shape.Anchor, len(s.Anchors))
		copy(anchors, s.Anchors)
		return anchors
	}
	anchors := make([]shape.Anchor, len(s.Points))
	for i, p := range s.Points {
		anchors[i] = flatAnchor(p)
	}
	return anchors
}

func flatAnchor(p geom.Point) shape.Anchor {
	return shape.Anchor{Point: p, HandleIn: p, HandleOut: p}
}

// splitAnchors walks the path once, emitting a new fragment at every cut.
// Cut points become flat anchors shared as the end of one fragment and the
// start of the next.
func splitAnchors(anchors []shape.Anchor, cuts []pathCut) [][]shape.Anchor {
	var fragments [][]shape.Anchor
	current := []shape.Anchor{anchors[0]}
	next := 0

	for i := 0; i < len(anchors)-1; i++ {
		for next < len(cuts) && cuts[next].seg == i {
			cutAnchor := flatAnchor(cuts[next].point)
			current = append(current, cutAnchor)
			fragments = append(fragments, current)
			current = []shape.Anchor{cutAnchor}
			next++
		}
		current = append(current, anchors[i+1])
	}
	fragments = append(fragments, current)
	return fragments
}

// fragmentShape builds a new path shape of the original's kind and style.
func fragmentShape(orig shape.Shape, frag []shape.Anchor, id string) shape.Shape {
	out := shape.Shape{
		ID:    id,
		Kind:  orig.Kind,
		Style: orig.Style,
	}
	if orig.Kind == shape.KindVectorPath {
		out.Anchors = frag
		return out
	}
	out.Points = make([]geom.Point, len(frag))
	for i, a := range frag {
		out.Points[i] = a.Point
	}
	return out
}
