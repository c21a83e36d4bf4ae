package document

import (
	"strings"
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	doc := NewSampleDocument("doc_test")

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.ID != doc.ID || got.Name != doc.Name || got.Version != doc.Version {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if got.Width != doc.Width || got.Height != doc.Height {
		t.Errorf("canvas mismatch: %dx%d", got.Width, got.Height)
	}
	if len(got.Shapes) != len(doc.Shapes) {
		t.Fatalf("shapes = %d, want %d", len(got.Shapes), len(doc.Shapes))
	}
	for i := range doc.Shapes {
		if got.Shapes[i].ID != doc.Shapes[i].ID || got.Shapes[i].Kind != doc.Shapes[i].Kind {
			t.Errorf("shape %d: got %s/%s want %s/%s",
				i, got.Shapes[i].ID, got.Shapes[i].Kind, doc.Shapes[i].ID, doc.Shapes[i].Kind)
		}
	}
}

func TestParseRejectsInvalidShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "not json",
			body:    "{",
			wantErr: "unmarshal",
		},
		{
			name:    "missing shape id",
			body:    `{"id":"d","shapes":[{"kind":"rect"}]}`,
			wantErr: "missing shape id",
		},
		{
			name:    "unknown kind",
			body:    `{"id":"d","shapes":[{"id":"s","kind":"blob"}]}`,
			wantErr: "unknown shape kind",
		},
		{
			name:    "invalid group child",
			body:    `{"id":"d","shapes":[{"id":"g","kind":"group","children":[{"kind":"rect"}]}]}`,
			wantErr: "child 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if err == nil {
				t.Fatal("Parse accepted invalid document")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewEmptyDocument(t *testing.T) {
	doc := NewEmptyDocument("doc_x", "My Drawing")

	if doc.ID != "doc_x" || doc.Name != "My Drawing" {
		t.Errorf("metadata = %q/%q", doc.ID, doc.Name)
	}
	if doc.Version != 1 {
		t.Errorf("version = %d, want 1", doc.Version)
	}
	if doc.Shapes == nil || len(doc.Shapes) != 0 {
		t.Errorf("shapes = %v, want empty non-nil", doc.Shapes)
	}
}

func TestSampleDocumentValidates(t *testing.T) {
	doc := NewSampleDocument("doc_s")
	for i, s := range doc.Shapes {
		if err := validateShape(s); err != nil {
			t.Errorf("sample shape %d invalid: %v", i, err)
		}
	}
	// One of each family is present.
	kinds := map[shape.Kind]bool{}
	for _, s := range doc.Shapes {
		kinds[s.Kind] = true
	}
	for _, want := range []shape.Kind{shape.KindRect, shape.KindEllipse, shape.KindBrushPath, shape.KindGroup} {
		if !kinds[want] {
			t.Errorf("sample document missing %s", want)
		}
	}
}
