package session

import (
	"encoding/json"

	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// Message is the websocket envelope. Payload shape depends on Type.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Server to client
	TypeWelcome    = "welcome"
	TypeDocSync    = "doc.sync"
	TypeShapesLive = "shapes.live"
	TypeBounds     = "bounds"
	TypeError      = "error"

	// Client to server
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypePointerCancel = "pointer.cancel"
	TypeSelectionSet  = "selection.set"
	TypeLassoCut      = "lasso.cut"
	TypeShapeCreate   = "shape.create"
	TypeShapeDelete   = "shape.delete"
)

type WelcomePayload struct {
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	ClientID   string `json:"clientId"`
}

type PointerPayload struct {
	Point     geom.Point       `json:"point"`
	Modifiers editor.Modifiers `json:"modifiers"`
}

type SelectionPayload struct {
	ShapeIDs []string `json:"shapeIds"`
}

type LassoPayload struct {
	Points []geom.Point `json:"points"`
}

type ShapeCreatePayload struct {
	Shape shape.Shape `json:"shape"`
}

type ShapeDeletePayload struct {
	ShapeID string `json:"shapeId"`
}

type ShapesLivePayload struct {
	Shapes    []shape.Shape `json:"shapes"`
	Selection []string      `json:"selection"`
}

type BoundsPayload struct {
	Bounds geom.Rect `json:"bounds"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func mustEnvelope(msgType string, payload interface{}) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		return &Message{Type: TypeError, Payload: json.RawMessage(`{"message":"encode failed"}`)}
	}
	return &Message{Type: msgType, Payload: data}
}
