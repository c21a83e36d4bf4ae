package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
)

type inbound struct {
	client *Client
	msg    *Message
}

// Session is one open document. A single goroutine owns the editor and the
// document; clients feed it input through the inbox and receive live shape
// broadcasts on each frame that changed anything.
type Session struct {
	docID string
	doc   *document.Document
	ed    *editor.Editor

	inbox    chan inbound
	attachCh chan *Client
	detachCh chan *Client
	stop     chan struct{}
	stopped  chan struct{}

	clients map[*Client]bool
	dirty   bool

	save    SaveFunc
	onEmpty func(*Session)
}

func newSession(docID string, doc *document.Document, snap editor.SnapFunc, save SaveFunc, onEmpty func(*Session)) *Session {
	ed := editor.New(snap)
	ed.SetShapes(doc.Shapes)

	return &Session{
		docID:    docID,
		doc:      doc,
		ed:       ed,
		inbox:    make(chan inbound, 64),
		attachCh: make(chan *Client),
		detachCh: make(chan *Client),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
		clients:  make(map[*Client]bool),
		save:     save,
		onEmpty:  onEmpty,
	}
}

// run is the session goroutine. tickRate is frames per second.
func (s *Session) run(tickRate int) {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer func() {
		ticker.Stop()
		s.persist()
		close(s.stopped)
	}()

	for {
		select {
		case c := <-s.attachCh:
			s.clients[c] = true
			c.Send(mustEnvelope(TypeWelcome, WelcomePayload{DocumentID: s.docID, UserID: c.UserID, ClientID: c.ClientID}))
			c.Send(s.syncMessage())
			slog.Info("client joined", "user", c.UserID, "client", c.ClientID, "document", s.docID)

		case c := <-s.detachCh:
			if !s.clients[c] {
				continue
			}
			delete(s.clients, c)
			close(c.send)
			slog.Info("client left", "user", c.UserID, "document", s.docID)
			if len(s.clients) == 0 {
				s.onEmpty(s)
				return
			}

		case in := <-s.inbox:
			s.handle(in.client, in.msg)

		case <-ticker.C:
			if s.ed.Tick() {
				s.dirty = true
				s.broadcastLive()
			}

		case <-s.stop:
			return
		}
	}
}

// attach hands the client to the session goroutine. It reports false when the
// session already stopped, in which case the caller must find a live one.
func (s *Session) attach(c *Client) bool {
	select {
	case s.attachCh <- c:
		return true
	case <-s.stopped:
		return false
	}
}

func (s *Session) detach(c *Client) {
	select {
	case s.detachCh <- c:
	case <-s.stopped:
	}
}

func (s *Session) deliver(c *Client, msg *Message) {
	select {
	case s.inbox <- inbound{client: c, msg: msg}:
	case <-s.stopped:
	}
}

func (s *Session) handle(c *Client, msg *Message) {
	// Messages can sit in the inbox behind the client's detach. Replying to
	// a detached client would write to its closed send channel, so stale
	// messages are dropped.
	if !s.clients[c] {
		return
	}

	switch msg.Type {
	case TypePointerDown:
		var p PointerPayload
		if !decode(c, msg, &p) {
			return
		}
		s.ed.PointerDown(p.Point, p.Modifiers)
		s.dirty = true
		s.broadcastLive()

	case TypePointerMove:
		var p PointerPayload
		if !decode(c, msg, &p) {
			return
		}
		// Coalesced inside the editor; drained by the frame ticker.
		s.ed.PointerMove(p.Point, p.Modifiers)

	case TypePointerUp:
		s.ed.PointerUp()
		s.dirty = true
		s.broadcastLive()

	case TypePointerCancel:
		s.ed.Cancel()
		s.broadcastLive()

	case TypeSelectionSet:
		var p SelectionPayload
		if !decode(c, msg, &p) {
			return
		}
		s.ed.SetSelection(p.ShapeIDs)
		s.broadcastBounds()

	case TypeLassoCut:
		var p LassoPayload
		if !decode(c, msg, &p) {
			return
		}
		s.ed.CutWithLasso(p.Points)
		s.dirty = true
		s.broadcastLive()

	case TypeShapeCreate:
		var p ShapeCreatePayload
		if !decode(c, msg, &p) {
			return
		}
		s.ed.AddShape(p.Shape)
		s.dirty = true
		s.broadcastLive()

	case TypeShapeDelete:
		var p ShapeDeletePayload
		if !decode(c, msg, &p) {
			return
		}
		if s.ed.RemoveShape(p.ShapeID) {
			s.dirty = true
			s.broadcastLive()
		}

	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", c.UserID)
		c.Send(mustEnvelope(TypeError, ErrorPayload{Message: "unknown message type: " + msg.Type}))
	}
}

func (s *Session) syncMessage() *Message {
	return mustEnvelope(TypeDocSync, ShapesLivePayload{
		Shapes:    s.ed.Shapes(),
		Selection: s.ed.Selection(),
	})
}

func (s *Session) broadcastLive() {
	msg := mustEnvelope(TypeShapesLive, ShapesLivePayload{
		Shapes:    s.ed.Shapes(),
		Selection: s.ed.Selection(),
	})
	for c := range s.clients {
		c.Send(msg)
	}
	s.broadcastBounds()
}

func (s *Session) broadcastBounds() {
	msg := mustEnvelope(TypeBounds, BoundsPayload{Bounds: s.ed.SelectionBounds()})
	for c := range s.clients {
		c.Send(msg)
	}
}

// persist writes the live shapes back to the document and saves a snapshot.
// Runs on the session goroutine, after the loop has exited.
func (s *Session) persist() {
	if !s.dirty {
		return
	}
	s.doc.Shapes = s.ed.Shapes()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.save(ctx, s.docID, s.doc); err != nil {
		slog.Error("save snapshot failed", "error", err, "document", s.docID)
		return
	}
	slog.Info("snapshot saved", "document", s.docID)
}

func decode(c *Client, msg *Message, dst interface{}) bool {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		slog.Warn("invalid payload", "type", msg.Type, "error", err, "user", c.UserID)
		c.Send(mustEnvelope(TypeError, ErrorPayload{Message: "invalid payload for " + msg.Type}))
		return false
	}
	return true
}
