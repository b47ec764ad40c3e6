package batch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/firemock/internal/domain"
)

func TestNewSet(t *testing.T) {
	w, err := NewSet("list", "a", map[string]any{"n": 1}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Op() != OpSet || w.Path() != "list/a" {
		t.Errorf("write = %s %s", w.Op(), w.Path())
	}
	if w.Data()["n"] != 1.0 {
		t.Errorf("data not normalized: %#v", w.Data())
	}

	m, _ := NewSet("list", "a", nil, true)
	if m.Op() != OpMerge {
		t.Errorf("op = %s, want merge", m.Op())
	}
}

func TestNewSet_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		id         string
		data       map[string]any
		want       error
	}{
		{"empty collection", "", "a", nil, domain.ErrValidation},
		{"empty id", "list", "", nil, domain.ErrInvalidDocumentID},
		{"bad value", "list", "a", map[string]any{"c": make(chan int)}, domain.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.collection, tt.id, tt.data, false)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewDelete(t *testing.T) {
	w, err := NewDelete("list", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Op() != OpDelete || w.Data() != nil {
		t.Errorf("write = %s data %v", w.Op(), w.Data())
	}
	if _, err := NewDelete("list", "a/b"); !errors.Is(err, domain.ErrInvalidDocumentID) {
		t.Errorf("expected ErrInvalidDocumentID, got %v", err)
	}
}

func TestResults(t *testing.T) {
	w, _ := NewSet("list", "a", nil, false)

	ok := NewOK(w, true)
	if ok.Status() != StatusOK || !ok.Created() || ok.Err() != nil || ok.Path() != "list/a" {
		t.Errorf("ok result = %+v", ok)
	}

	boom := errors.New("boom")
	failed := NewError(w, boom)
	if failed.Status() != StatusError || !errors.Is(failed.Err(), boom) || failed.Op() != OpSet {
		t.Errorf("error result = %+v", failed)
	}
}
