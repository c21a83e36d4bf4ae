package typeid

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"user", NewUserID, PrefixUser},
		{"document", NewDocumentID, PrefixDocument},
		{"shape", NewShapeID, PrefixShape},
		{"snapshot", NewSnapshotID, PrefixSnapshot},
		{"asset", NewAssetID, PrefixAsset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix+"_") {
				t.Errorf("id = %q, want prefix %q", id, tt.prefix)
			}
			if err := Validate(id, tt.prefix); err != nil {
				t.Errorf("Validate(%q): %v", id, err)
			}
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewShapeID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateRejectsWrongPrefix(t *testing.T) {
	id := NewUserID()
	if err := Validate(id, PrefixShape); err == nil {
		t.Error("user id validated as shape id")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not a typeid", PrefixUser); err == nil {
		t.Error("garbage id validated")
	}
}
