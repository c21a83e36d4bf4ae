// Package shape holds the drawable shape model and the pure transform
// primitives (move, rotate, scale, skew) the editor applies during drags.
//
// Shape is a closed tagged union: a Kind tag selects which payload fields are
// meaningful, and every transform switches over the kind exhaustively. Group
// children are owned by value, so transforming a group never aliases a shape
// referenced elsewhere in a document.
package shape

import "github.com/drawdeck/drawdeck/backend-go/internal/geom"

// Kind identifies a shape variant.
type Kind string

const (
	KindRect       Kind = "rect"
	KindEllipse    Kind = "ellipse"
	KindImage      Kind = "image"
	KindFrame      Kind = "frame"
	KindText       Kind = "text"
	KindPolygon    Kind = "polygon"
	KindVectorPath Kind = "vector-path"
	KindBrushPath  Kind = "brush-path"
	KindGroup      Kind = "group"
)

// IsBox reports whether the kind carries box geometry
// (position, size, rotation, scale, skew).
func (k Kind) IsBox() bool {
	switch k {
	case KindRect, KindEllipse, KindImage, KindFrame, KindText, KindPolygon:
		return true
	}
	return false
}

// IsPath reports whether the kind is a path variant (cuttable by a lasso).
func (k Kind) IsPath() bool {
	return k == KindVectorPath || k == KindBrushPath
}

// Box is the geometric state shared by all box-shaped kinds. (X, Y) is the
// unrotated, unscaled top-left corner; Rotation is in radians about the
// shape's own center; ScaleX/ScaleY default to 1 and go negative to mirror;
// SkewX/SkewY are shear factors clamped to [-50, 50].
type Box struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	SkewX    float64 `json:"skewX"`
	SkewY    float64 `json:"skewY"`
}

// Center returns the box's own center in world space.
func (b Box) Center() geom.Point {
	return geom.Pt(b.X+b.Width/2, b.Y+b.Height/2)
}

// Anchor is a control point on a vector path. Handle positions are absolute
// canvas coordinates, not offsets from the anchor point.
type Anchor struct {
	Point     geom.Point `json:"point"`
	HandleIn  geom.Point `json:"handleIn"`
	HandleOut geom.Point `json:"handleOut"`
}

// Style carries the visual attributes of a shape. The transform core passes
// it through untouched.
type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// Shape is one drawable element. Exactly one payload group is meaningful
// depending on Kind: Box for box kinds, Anchors for vector paths, Points for
// brush paths, Children for groups.
type Shape struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Style Style  `json:"style"`

	Box      Box          `json:"box,omitzero"`
	Anchors  []Anchor     `json:"anchors,omitempty"`
	Points   []geom.Point `json:"points,omitempty"`
	Children []Shape      `json:"children,omitempty"`

	// Crop is the visible sub-rectangle of image and frame shapes, in the
	// shape's local unscaled units. Nil means uncropped.
	Crop *geom.Rect `json:"crop,omitempty"`
}

// closeTolerance decides when a brush path's endpoints coincide.
const closeTolerance = 1e-6

// IsClosed reports whether a path shape's first and last points coincide.
func (s Shape) IsClosed() bool {
	switch s.Kind {
	case KindBrushPath:
		if len(s.Points) < 3 {
			return false
		}
		return s.Points[0].Distance(s.Points[len(s.Points)-1]) <= closeTolerance
	case KindVectorPath:
		if len(s.Anchors) < 3 {
			return false
		}
		return s.Anchors[0].Point.Distance(s.Anchors[len(s.Anchors)-1].Point) <= closeTolerance
	}
	return false
}

// PathPoints returns the polyline of a path shape. Vector paths contribute
// their anchor points (segments are treated as straight chords). Non-path
// kinds return nil.
func (s Shape) PathPoints() []geom.Point {
	switch s.Kind {
	case KindBrushPath:
		return s.Points
	case KindVectorPath:
		pts := make([]geom.Point, len(s.Anchors))
		for i, a := range s.Anchors {
			pts[i] = a.Point
		}
		return pts
	}
	return nil
}

// Clone returns a deep copy. Transform primitives always operate on copies so
// captured drag snapshots stay pristine.
func (s Shape) Clone() Shape {
	out := s
	if s.Anchors != nil {
		out.Anchors = make([]Anchor, len(s.Anchors))
		copy(out.Anchors, s.Anchors)
	}
	if s.Points != nil {
		out.Points = make([]geom.Point, len(s.Points))
		copy(out.Points, s.Points)
	}
	if s.Children != nil {
		out.Children = make([]Shape, len(s.Children))
		for i, c := range s.Children {
			out.Children[i] = c.Clone()
		}
	}
	if s.Crop != nil {
		crop := *s.Crop
		out.Crop = &crop
	}
	return out
}

// Normalize folds negative width/height into their absolute values. Invalid
// sizes are repaired, never rejected.
func (s Shape) Normalize() Shape {
	out := s.Clone()
	if out.Kind.IsBox() {
		if out.Box.Width < 0 {
			out.Box.Width = -out.Box.Width
		}
		if out.Box.Height < 0 {
			out.Box.Height = -out.Box.Height
		}
	}
	for i := range out.Children {
		out.Children[i] = out.Children[i].Normalize()
	}
	return out
}
