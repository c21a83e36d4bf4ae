package document

import (
	"encoding/json"
	"fmt"

	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// Document is the persistent state of one drawing: canvas metadata plus the
// shape collection in painter's order (index 0 at the back).
type Document struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Version    int           `json:"version"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Background string        `json:"background"`
	Shapes     []shape.Shape `json:"shapes"`
}

// NewEmptyDocument creates a blank document for a new drawing.
func NewEmptyDocument(docID, name string) *Document {
	return &Document{
		ID:         docID,
		Name:       name,
		Version:    1,
		Width:      1280,
		Height:     720,
		Background: "#1a1a2e",
		Shapes:     []shape.Shape{},
	}
}

// Parse decodes a document from JSON and validates its shapes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	for i, s := range doc.Shapes {
		if err := validateShape(s); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return &doc, nil
}

// Encode serializes the document to JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

func validateShape(s shape.Shape) error {
	if s.ID == "" {
		return fmt.Errorf("missing shape id")
	}
	switch s.Kind {
	case shape.KindRect, shape.KindEllipse, shape.KindImage, shape.KindFrame,
		shape.KindText, shape.KindPolygon, shape.KindVectorPath,
		shape.KindBrushPath:
	case shape.KindGroup:
		for i, c := range s.Children {
			if err := validateShape(c); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}
