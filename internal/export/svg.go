// Package export renders documents to standalone SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// SVG renders the document as a standalone SVG image.
func SVG(doc *document.Document) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		doc.Width, doc.Height, doc.Width, doc.Height)
	b.WriteByte('\n')

	if doc.Background != "" {
		fmt.Fprintf(&b, `<rect width="%d" height="%d" fill=%q/>`, doc.Width, doc.Height, doc.Background)
		b.WriteByte('\n')
	}

	for _, s := range doc.Shapes {
		writeShape(&b, s)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writeShape(b *strings.Builder, s shape.Shape) {
	switch {
	case s.Kind == shape.KindGroup:
		fmt.Fprintf(b, "<g%s>\n", styleAttrs(s.Style))
		for _, c := range s.Children {
			writeShape(b, c)
		}
		b.WriteString("</g>\n")

	case s.Kind == shape.KindVectorPath:
		writeVectorPath(b, s)

	case s.Kind == shape.KindBrushPath:
		writeBrushPath(b, s)

	case s.Kind.IsBox():
		writeBox(b, s)
	}
}

// writeBox emits the element in a local frame centered on the box, carried by
// a transform that mirrors the shape model: translate, rotate, scale, shear.
func writeBox(b *strings.Builder, s shape.Shape) {
	box := s.Box
	c := box.Center()
	hw, hh := box.Width/2, box.Height/2

	var tf strings.Builder
	fmt.Fprintf(&tf, "translate(%g %g)", c.X, c.Y)
	if box.Rotation != 0 {
		fmt.Fprintf(&tf, " rotate(%g)", box.Rotation*180/math.Pi)
	}
	if box.ScaleX != 1 || box.ScaleY != 1 {
		fmt.Fprintf(&tf, " scale(%g %g)", box.ScaleX, box.ScaleY)
	}
	if box.SkewX != 0 || box.SkewY != 0 {
		fmt.Fprintf(&tf, " matrix(1 %g %g 1 0 0)", box.SkewY, box.SkewX)
	}

	switch s.Kind {
	case shape.KindEllipse:
		fmt.Fprintf(b, `<ellipse rx="%g" ry="%g" transform=%q%s/>`, hw, hh, tf.String(), styleAttrs(s.Style))
	default:
		// Image and text payloads live outside the document body, so box
		// kinds other than ellipse render as their bounding rectangle.
		x, y, w, h := -hw, -hh, box.Width, box.Height
		if s.Crop != nil {
			x, y = s.Crop.X-hw, s.Crop.Y-hh
			w, h = s.Crop.Width, s.Crop.Height
		}
		fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" transform=%q%s/>`,
			x, y, w, h, tf.String(), styleAttrs(s.Style))
	}
	b.WriteByte('\n')
}

func writeVectorPath(b *strings.Builder, s shape.Shape) {
	if len(s.Anchors) < 2 {
		return
	}

	var d strings.Builder
	fmt.Fprintf(&d, "M %g %g", s.Anchors[0].Point.X, s.Anchors[0].Point.Y)
	for i := 1; i < len(s.Anchors); i++ {
		prev, cur := s.Anchors[i-1], s.Anchors[i]
		fmt.Fprintf(&d, " C %g %g %g %g %g %g",
			prev.HandleOut.X, prev.HandleOut.Y,
			cur.HandleIn.X, cur.HandleIn.Y,
			cur.Point.X, cur.Point.Y)
	}
	if s.IsClosed() {
		d.WriteString(" Z")
	}

	fmt.Fprintf(b, `<path d=%q%s/>`, d.String(), styleAttrs(s.Style))
	b.WriteByte('\n')
}

func writeBrushPath(b *strings.Builder, s shape.Shape) {
	if len(s.Points) < 2 {
		return
	}

	var pts strings.Builder
	for i, p := range s.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%g,%g", p.X, p.Y)
	}

	fmt.Fprintf(b, `<polyline points=%q%s/>`, pts.String(), styleAttrs(s.Style))
	b.WriteByte('\n')
}

func styleAttrs(st shape.Style) string {
	var b strings.Builder
	if st.Fill != "" {
		fmt.Fprintf(&b, " fill=%q", st.Fill)
	} else {
		b.WriteString(` fill="none"`)
	}
	if st.Stroke != "" {
		fmt.Fprintf(&b, " stroke=%q", st.Stroke)
		if st.StrokeWidth > 0 {
			fmt.Fprintf(&b, ` stroke-width="%g"`, st.StrokeWidth)
		}
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%g"`, st.Opacity)
	}
	return b.String()
}
