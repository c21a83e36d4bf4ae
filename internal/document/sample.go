package document

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

// NewSampleDocument builds a small document with one of each shape family,
// used by the playground and by manual testing.
func NewSampleDocument(docID string) *Document {
	doc := NewEmptyDocument(docID, "Untitled")

	doc.Shapes = []shape.Shape{
		{
			ID:   typeid.NewShapeID(),
			Kind: shape.KindRect,
			Box: shape.Box{
				X: 120, Y: 100, Width: 200, Height: 140,
				ScaleX: 1, ScaleY: 1,
			},
			Style: shape.Style{Fill: "#e94560", Opacity: 1},
		},
		{
			ID:   typeid.NewShapeID(),
			Kind: shape.KindEllipse,
			Box: shape.Box{
				X: 420, Y: 160, Width: 160, Height: 160,
				Rotation: math.Pi / 6, ScaleX: 1, ScaleY: 1,
			},
			Style: shape.Style{Fill: "#0f3460", Stroke: "#e0e0e0", StrokeWidth: 2, Opacity: 1},
		},
		{
			ID:   typeid.NewShapeID(),
			Kind: shape.KindBrushPath,
			Points: []geom.Point{
				{X: 200, Y: 420}, {X: 260, Y: 380}, {X: 330, Y: 440},
				{X: 410, Y: 390}, {X: 480, Y: 430},
			},
			Style: shape.Style{Stroke: "#f5f5f5", StrokeWidth: 3, Opacity: 1},
		},
		{
			ID:   typeid.NewShapeID(),
			Kind: shape.KindGroup,
			Children: []shape.Shape{
				{
					ID:   typeid.NewShapeID(),
					Kind: shape.KindRect,
					Box: shape.Box{
						X: 700, Y: 120, Width: 90, Height: 90,
						ScaleX: 1, ScaleY: 1,
					},
					Style: shape.Style{Fill: "#533483", Opacity: 1},
				},
				{
					ID:   typeid.NewShapeID(),
					Kind: shape.KindRect,
					Box: shape.Box{
						X: 760, Y: 180, Width: 90, Height: 90,
						ScaleX: 1, ScaleY: 1,
					},
					Style: shape.Style{Fill: "#533483", Opacity: 0.7},
				},
			},
		},
	}

	return doc
}
