package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
)

// LoadFunc loads the latest persisted document body.
type LoadFunc func(ctx context.Context, docID string) (*document.Document, error)

// SaveFunc persists a new snapshot of the document.
type SaveFunc func(ctx context.Context, docID string, doc *document.Document) error

// Manager tracks the open sessions, one per document. Sessions are created on
// first join and torn down, saving a snapshot, when the last client leaves or
// the server shuts down.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	load     LoadFunc
	save     SaveFunc
	snap     editor.SnapFunc
	tickRate int
	origins  []string
}

func NewManager(load LoadFunc, save SaveFunc, snap editor.SnapFunc, tickRate int, allowedOrigins []string) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		load:     load,
		save:     save,
		snap:     snap,
		tickRate: tickRate,
		origins:  allowedOrigins,
	}
}

// Join upgrades the request to a websocket and attaches the user to the
// document's session, creating it if this is the first client.
func (m *Manager) Join(w http.ResponseWriter, r *http.Request, docID, userID string) error {
	// Resolve the session before upgrading so load failures surface as plain
	// HTTP errors.
	if _, err := m.getOrCreate(r.Context(), docID); err != nil {
		return err
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: m.origins,
	})
	if err != nil {
		return fmt.Errorf("websocket accept: %w", err)
	}

	client := newClient(nil, conn, userID)
	if err := m.attachClient(r.Context(), client, docID); err != nil {
		conn.Close(websocket.StatusInternalError, "session unavailable")
		return err
	}

	// The pumps outlive the HTTP handler's context.
	ctx := context.Background()
	go client.writePump(ctx)
	client.readPump(ctx)
	return nil
}

// attachClient attaches to the live session for docID. The looked-up session
// can stop between lookup and attach when its last client leaves; the dead
// entry is dropped and the attach retried against a fresh session.
func (m *Manager) attachClient(ctx context.Context, c *Client, docID string) error {
	for {
		sess, err := m.getOrCreate(ctx, docID)
		if err != nil {
			return err
		}
		c.session = sess
		if sess.attach(c) {
			return nil
		}
		m.remove(sess)
	}
}

func (m *Manager) getOrCreate(ctx context.Context, docID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[docID]; ok {
		return sess, nil
	}

	doc, err := m.load(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	sess := newSession(docID, doc, m.snap, m.save, m.remove)
	m.sessions[docID] = sess
	go sess.run(m.tickRate)
	return sess, nil
}

func (m *Manager) remove(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[sess.docID] == sess {
		delete(m.sessions, sess.docID)
	}
}

// Shutdown stops every open session and waits for their snapshots to be
// written.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		close(sess.stop)
	}
	for _, sess := range sessions {
		select {
		case <-sess.stopped:
		case <-ctx.Done():
			return
		}
	}
}
