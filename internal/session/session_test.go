package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

// testSession builds a session with one directly attached client, bypassing
// the websocket transport. Messages are handled synchronously.
func testSession(t *testing.T, shapes []shape.Shape) (*Session, *Client) {
	t.Helper()

	doc := document.NewEmptyDocument("doc_test", "test")
	doc.Shapes = shapes

	sess := newSession("doc_test", doc, nil,
		func(ctx context.Context, docID string, d *document.Document) error { return nil },
		func(*Session) {})

	client := &Client{send: make(chan []byte, 256), UserID: "user_test", ClientID: "client_test"}
	sess.clients[client] = true
	return sess, client
}

func rawMessage(t *testing.T, msgType string, payload interface{}) *Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &Message{Type: msgType, Payload: data}
}

// lastOfType drains the client's send buffer and returns the newest message of
// the given type, decoded into dst.
func lastOfType(t *testing.T, c *Client, msgType string, dst interface{}) bool {
	t.Helper()
	found := false
	for {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal envelope: %v", err)
			}
			if msg.Type == msgType {
				if err := json.Unmarshal(msg.Payload, dst); err != nil {
					t.Fatalf("unmarshal payload: %v", err)
				}
				found = true
			}
		default:
			return found
		}
	}
}

func testRect(id string, x, y, w, h float64) shape.Shape {
	return shape.Shape{
		ID:   id,
		Kind: shape.KindRect,
		Box:  shape.Box{X: x, Y: y, Width: w, Height: h, ScaleX: 1, ScaleY: 1},
	}
}

func TestShapeCreateBroadcastsLiveShapes(t *testing.T) {
	sess, client := testSession(t, nil)

	sess.handle(client, rawMessage(t, TypeShapeCreate, ShapeCreatePayload{
		Shape: testRect("shape_new", 0, 0, 50, 50),
	}))

	var live ShapesLivePayload
	if !lastOfType(t, client, TypeShapesLive, &live) {
		t.Fatal("no shapes.live broadcast after shape.create")
	}
	if len(live.Shapes) != 1 || live.Shapes[0].ID != "shape_new" {
		t.Errorf("live shapes = %+v", live.Shapes)
	}
	if !sess.dirty {
		t.Error("session not marked dirty after a mutation")
	}
}

func TestShapeDeleteUnknownIDNoBroadcast(t *testing.T) {
	sess, client := testSession(t, []shape.Shape{testRect("a", 0, 0, 10, 10)})

	sess.handle(client, rawMessage(t, TypeShapeDelete, ShapeDeletePayload{ShapeID: "ghost"}))

	var live ShapesLivePayload
	if lastOfType(t, client, TypeShapesLive, &live) {
		t.Error("deleting an unknown shape must not broadcast")
	}
}

func TestPointerDragThroughSession(t *testing.T) {
	sess, client := testSession(t, []shape.Shape{testRect("a", 0, 0, 100, 50)})
	sess.ed.SetSelection([]string{"a"})

	sess.handle(client, rawMessage(t, TypePointerDown, PointerPayload{Point: geom.Pt(50, 25)}))
	sess.handle(client, rawMessage(t, TypePointerMove, PointerPayload{Point: geom.Pt(70, 35)}))
	// pointer.up applies the final coalesced sample and commits.
	sess.handle(client, &Message{Type: TypePointerUp})

	var live ShapesLivePayload
	if !lastOfType(t, client, TypeShapesLive, &live) {
		t.Fatal("no shapes.live broadcast after pointer up")
	}
	if live.Shapes[0].Box.X != 20 || live.Shapes[0].Box.Y != 10 {
		t.Errorf("shape at (%v,%v), want (20,10)", live.Shapes[0].Box.X, live.Shapes[0].Box.Y)
	}
}

func TestSelectionSetBroadcastsBounds(t *testing.T) {
	sess, client := testSession(t, []shape.Shape{testRect("a", 10, 20, 100, 50)})

	sess.handle(client, rawMessage(t, TypeSelectionSet, SelectionPayload{ShapeIDs: []string{"a"}}))

	var bounds BoundsPayload
	if !lastOfType(t, client, TypeBounds, &bounds) {
		t.Fatal("no bounds broadcast after selection.set")
	}
	want := geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if bounds.Bounds != want {
		t.Errorf("bounds = %v, want %v", bounds.Bounds, want)
	}
}

func TestLassoCutThroughSession(t *testing.T) {
	path := shape.Shape{
		ID:     "p",
		Kind:   shape.KindBrushPath,
		Points: []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}},
	}
	sess, client := testSession(t, []shape.Shape{path})

	sess.handle(client, rawMessage(t, TypeLassoCut, LassoPayload{
		Points: []geom.Point{{X: 10, Y: 5}, {X: 10, Y: -5}},
	}))

	var live ShapesLivePayload
	if !lastOfType(t, client, TypeShapesLive, &live) {
		t.Fatal("no shapes.live broadcast after lasso.cut")
	}
	if len(live.Shapes) != 1 || live.Shapes[0].ID == "p" {
		t.Errorf("expected one fresh fragment, got %+v", live.Shapes)
	}
}

func TestUnknownMessageTypeSendsError(t *testing.T) {
	sess, client := testSession(t, nil)

	sess.handle(client, &Message{Type: "bogus.type"})

	var errPayload ErrorPayload
	if !lastOfType(t, client, TypeError, &errPayload) {
		t.Fatal("no error reply for unknown message type")
	}
}

func TestInvalidPayloadSendsError(t *testing.T) {
	sess, client := testSession(t, nil)

	sess.handle(client, &Message{Type: TypePointerDown, Payload: json.RawMessage(`"nope"`)})

	var errPayload ErrorPayload
	if !lastOfType(t, client, TypeError, &errPayload) {
		t.Fatal("no error reply for invalid payload")
	}
}

func TestDetachedClientMessagesDropped(t *testing.T) {
	sess, client := testSession(t, nil)
	other := &Client{send: make(chan []byte, 256), UserID: "user_other", ClientID: "client_other"}
	sess.clients[other] = true

	// Detach the first client the way the session loop does; messages it
	// queued beforehand are still in flight.
	delete(sess.clients, client)
	close(client.send)

	// An error reply here would hit the closed send channel.
	sess.handle(client, &Message{Type: "bogus.type"})
	sess.handle(client, rawMessage(t, TypeShapeCreate, ShapeCreatePayload{
		Shape: testRect("shape_stale", 0, 0, 10, 10),
	}))

	if got := sess.ed.Shapes(); len(got) != 0 {
		t.Errorf("stale message mutated the document: %+v", got)
	}
	var live ShapesLivePayload
	if lastOfType(t, other, TypeShapesLive, &live) {
		t.Error("stale message must not broadcast")
	}
}

func TestPersistSkipsCleanSessions(t *testing.T) {
	saves := 0
	doc := document.NewEmptyDocument("doc_test", "test")
	sess := newSession("doc_test", doc, editor.GridSnapper(0),
		func(ctx context.Context, docID string, d *document.Document) error {
			saves++
			return nil
		},
		func(*Session) {})

	sess.persist()
	if saves != 0 {
		t.Errorf("clean session saved %d snapshots, want 0", saves)
	}

	sess.dirty = true
	sess.persist()
	if saves != 1 {
		t.Errorf("dirty session saved %d snapshots, want 1", saves)
	}
	if len(sess.doc.Shapes) != 0 {
		t.Errorf("persist corrupted the document: %+v", sess.doc.Shapes)
	}
}
