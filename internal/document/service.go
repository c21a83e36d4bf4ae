package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drawdeck/drawdeck/backend-go/internal/store"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrForbidden = errors.New("forbidden")
)

// Service owns document CRUD and snapshot access. Documents have a single
// owner; there is no shared membership.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Info is the API representation of a document's metadata.
type Info struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Info, error) {
	docID := typeid.NewDocumentID()

	dbDoc, err := s.store.CreateDocument(ctx, docID, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	// Seed the initial snapshot with an empty drawing.
	emptyDoc := NewEmptyDocument(docID, name)
	docJSON, err := emptyDoc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode empty document: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, typeid.NewSnapshotID(), docID, 1, docJSON)
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbDocToInfo(dbDoc), nil
}

func (s *Service) Get(ctx context.Context, docID, userID string) (*Info, error) {
	dbDoc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	if dbDoc.OwnerID != userID {
		return nil, ErrForbidden
	}

	return dbDocToInfo(dbDoc), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Info, error) {
	dbDocs, err := s.store.ListDocumentsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]Info, len(dbDocs))
	for i, d := range dbDocs {
		docs[i] = *dbDocToInfo(d)
	}

	return docs, nil
}

func (s *Service) Delete(ctx context.Context, docID, userID string) error {
	dbDoc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get document: %w", err)
	}

	if dbDoc.OwnerID != userID {
		return ErrForbidden
	}

	return s.store.DeleteDocument(ctx, docID)
}

// GetLatestSnapshot returns the newest persisted document body.
func (s *Service) GetLatestSnapshot(ctx context.Context, docID, userID string) (json.RawMessage, error) {
	if _, err := s.Get(ctx, docID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

// SaveSnapshot persists a new version of the document body.
func (s *Service) SaveSnapshot(ctx context.Context, docID string, doc *Document) error {
	docJSON, err := doc.Encode()
	if err != nil {
		return err
	}

	nextVersion := int32(1)
	if current, err := s.store.GetLatestSnapshot(ctx, docID); err == nil {
		nextVersion = current.Version + 1
	}

	if _, err := s.store.CreateSnapshot(ctx, typeid.NewSnapshotID(), docID, nextVersion, docJSON); err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := s.store.TouchDocument(ctx, docID); err != nil {
		return fmt.Errorf("touch document: %w", err)
	}

	return nil
}

// LoadLatest loads and parses the newest snapshot without an ownership check,
// for the session layer which authorizes separately.
func (s *Service) LoadLatest(ctx context.Context, docID string) (*Document, error) {
	snap, err := s.store.GetLatestSnapshot(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return Parse(snap.Document)
}

// IsOwner reports whether userID owns the document.
func (s *Service) IsOwner(ctx context.Context, docID, userID string) (bool, error) {
	dbDoc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("get document: %w", err)
	}
	return dbDoc.OwnerID == userID, nil
}

func dbDocToInfo(d store.Document) *Info {
	return &Info{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: d.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
