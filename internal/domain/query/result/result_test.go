package result

import (
	"slices"
	"testing"

	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

func TestNew(t *testing.T) {
	a := domdoc.Reconstruct("a", map[string]any{"name": "a"})
	b := domdoc.Reconstruct("b", map[string]any{"name": "b"})

	s := New("list", []domdoc.Document{a, b})

	if s.Collection() != "list" {
		t.Errorf("Collection() = %q", s.Collection())
	}
	if s.Size() != 2 || s.Empty() {
		t.Errorf("Size() = %d, Empty() = %v", s.Size(), s.Empty())
	}
	if s.Doc(1).ID() != "b" {
		t.Errorf("Doc(1).ID() = %q", s.Doc(1).ID())
	}
	if !slices.Equal(s.IDs(), []string{"a", "b"}) {
		t.Errorf("IDs() = %v", s.IDs())
	}
}

func TestNew_CopiesInput(t *testing.T) {
	docs := []domdoc.Document{domdoc.Reconstruct("a", nil)}
	s := New("list", docs)

	docs[0] = domdoc.Reconstruct("z", nil)
	if s.Doc(0).ID() != "a" {
		t.Error("snapshot aliases the caller's slice")
	}

	out := s.Docs()
	out[0] = domdoc.Reconstruct("z", nil)
	if s.Doc(0).ID() != "a" {
		t.Error("Docs() exposes internal slice")
	}
}

func TestEmpty(t *testing.T) {
	s := Empty("missing")
	if !s.Empty() || s.Size() != 0 || len(s.IDs()) != 0 {
		t.Errorf("Empty() snapshot = %+v", s)
	}
	if s.Collection() != "missing" {
		t.Errorf("Collection() = %q", s.Collection())
	}
}
