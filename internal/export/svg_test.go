package export

import (
	"strings"
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

func TestSVGHeaderAndBackground(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	out := string(SVG(doc))

	if !strings.Contains(out, `viewBox="0 0 1280 720"`) {
		t.Errorf("missing viewBox: %s", out)
	}
	if !strings.Contains(out, `fill="#1a1a2e"`) {
		t.Errorf("missing background fill: %s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("unterminated svg document")
	}
}

func TestSVGRect(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	doc.Shapes = []shape.Shape{{
		ID:    "r",
		Kind:  shape.KindRect,
		Box:   shape.Box{X: 10, Y: 20, Width: 100, Height: 50, ScaleX: 1, ScaleY: 1},
		Style: shape.Style{Fill: "#ff0000"},
	}}

	out := string(SVG(doc))

	// Drawn centered in a translated local frame.
	if !strings.Contains(out, `<rect x="-50" y="-25" width="100" height="50"`) {
		t.Errorf("rect geometry missing: %s", out)
	}
	if !strings.Contains(out, `translate(60 45)`) {
		t.Errorf("rect transform missing: %s", out)
	}
	if !strings.Contains(out, `fill="#ff0000"`) {
		t.Errorf("rect fill missing: %s", out)
	}
	// Identity scale and rotation are omitted.
	if strings.Contains(out, "rotate(") || strings.Contains(out, "scale(") {
		t.Errorf("identity transform emitted: %s", out)
	}
}

func TestSVGTransformChain(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	doc.Shapes = []shape.Shape{{
		ID:   "e",
		Kind: shape.KindEllipse,
		Box: shape.Box{
			X: 0, Y: 0, Width: 100, Height: 50,
			Rotation: 1.5, ScaleX: 2, ScaleY: 1, SkewX: 0.5,
		},
	}}

	out := string(SVG(doc))

	if !strings.Contains(out, `<ellipse rx="50" ry="25"`) {
		t.Errorf("ellipse radii missing: %s", out)
	}
	if !strings.Contains(out, "rotate(") {
		t.Errorf("rotation missing: %s", out)
	}
	if !strings.Contains(out, "scale(2 1)") {
		t.Errorf("scale missing: %s", out)
	}
	if !strings.Contains(out, "matrix(1 0 0.5 1 0 0)") {
		t.Errorf("shear missing: %s", out)
	}
}

func TestSVGBrushPath(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	doc.Shapes = []shape.Shape{{
		ID:     "b",
		Kind:   shape.KindBrushPath,
		Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}},
		Style:  shape.Style{Stroke: "#fff", StrokeWidth: 3},
	}}

	out := string(SVG(doc))

	if !strings.Contains(out, `<polyline points="0,0 10,5 20,0"`) {
		t.Errorf("polyline missing: %s", out)
	}
	if !strings.Contains(out, `stroke-width="3"`) {
		t.Errorf("stroke width missing: %s", out)
	}
}

func TestSVGVectorPath(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	doc.Shapes = []shape.Shape{{
		ID:   "v",
		Kind: shape.KindVectorPath,
		Anchors: []shape.Anchor{
			{Point: geom.Pt(0, 0), HandleIn: geom.Pt(0, 0), HandleOut: geom.Pt(5, -10)},
			{Point: geom.Pt(20, 0), HandleIn: geom.Pt(15, -10), HandleOut: geom.Pt(20, 0)},
		},
		Style: shape.Style{Stroke: "#abc"},
	}}

	out := string(SVG(doc))

	if !strings.Contains(out, `d="M 0 0 C 5 -10 15 -10 20 0"`) {
		t.Errorf("path data missing: %s", out)
	}
}

func TestSVGGroupNests(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	doc.Shapes = []shape.Shape{{
		ID:   "g",
		Kind: shape.KindGroup,
		Children: []shape.Shape{
			{ID: "c", Kind: shape.KindRect, Box: shape.Box{Width: 10, Height: 10, ScaleX: 1, ScaleY: 1}},
		},
	}}

	out := string(SVG(doc))

	gOpen := strings.Index(out, "<g")
	rect := strings.Index(out, "<rect x=")
	gClose := strings.Index(out, "</g>")
	if gOpen == -1 || rect == -1 || gClose == -1 || !(gOpen < rect && rect < gClose) {
		t.Errorf("group nesting wrong: %s", out)
	}
}

func TestSVGCroppedImage(t *testing.T) {
	doc := document.NewEmptyDocument("d", "t")
	crop := geom.Rect{X: 10, Y: 5, Width: 60, Height: 30}
	doc.Shapes = []shape.Shape{{
		ID:   "i",
		Kind: shape.KindImage,
		Box:  shape.Box{X: 0, Y: 0, Width: 100, Height: 50, ScaleX: 1, ScaleY: 1},
		Crop: &crop,
	}}

	out := string(SVG(doc))

	// Crop shifts into the centered frame: x = 10-50, y = 5-25.
	if !strings.Contains(out, `<rect x="-40" y="-20" width="60" height="30"`) {
		t.Errorf("cropped rect missing: %s", out)
	}
}
