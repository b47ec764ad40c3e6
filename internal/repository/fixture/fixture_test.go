package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

const listFixture = `
list:
  docs:
    c:
      data: {name: c}
    b:
      data: {name: b}
    a:
      data: {name: a}
`

// recordingWriter captures Set calls in order.
type recordingWriter struct {
	paths []string
	docs  []domdoc.Document
	err   error
}

func (w *recordingWriter) Set(_ context.Context, path string, doc domdoc.Document) (bool, error) {
	if w.err != nil {
		return false, w.err
	}
	w.paths = append(w.paths, path+"/"+doc.ID())
	w.docs = append(w.docs, doc)
	return true, nil
}

func docIDs(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Doc.ID()
	}
	return out
}

func TestParse_PreservesLiteralOrder(t *testing.T) {
	db, err := Parse([]byte(listFixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(db.Collections) != 1 || db.Collections[0].Name != "list" {
		t.Fatalf("collections = %+v", db.Collections)
	}
	if got := docIDs(db.Collections[0].Docs); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("doc order = %v, want [c b a]", got)
	}
}

func TestParse_JSON(t *testing.T) {
	src := `{"list": {"docs": {"a": {"data": {"name": "a", "values": [2, 5, 6]}}, "b": {"data": {"value": 2.5}}}}}`

	db, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	docs := db.Collections[0].Docs
	if got := docIDs(docs); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("doc order = %v", got)
	}
	values, _ := docs[0].Doc.Field("values")
	if !value.Equal(values, []any{2.0, 5.0, 6.0}) {
		t.Errorf("values = %#v", values)
	}
	v, _ := docs[1].Doc.Field("value")
	if v != 2.5 {
		t.Errorf("value = %#v", v)
	}
}

func TestParse_NestedData(t *testing.T) {
	src := `
people:
  docs:
    p1:
      data:
        name: Ada
        address: {city: London, zip: null}
        active: true
`
	db, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	doc := db.Collections[0].Docs[0].Doc
	if v, _ := doc.Field("address.city"); v != "London" {
		t.Errorf("address.city = %v", v)
	}
	if v, ok := doc.Field("address.zip"); !ok || v != nil {
		t.Errorf("address.zip = %v, %v; want present null", v, ok)
	}
	if v, _ := doc.Field("active"); v != true {
		t.Errorf("active = %v", v)
	}
}

func TestParse_SubCollections(t *testing.T) {
	src := `
users:
  docs:
    u1:
      data: {name: ann}
      collections:
        posts:
          docs:
            p2: {data: {title: second}}
            p1: {data: {title: first}}
    u2:
      data: {name: bob}
`
	db, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w := &recordingWriter{}
	n, err := Load(context.Background(), w, db)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 4 {
		t.Errorf("Load wrote %d docs, want 4", n)
	}
	want := []string{"users/u1", "users/u1/posts/p2", "users/u1/posts/p1", "users/u2"}
	if !slices.Equal(w.paths, want) {
		t.Errorf("paths = %v, want %v", w.paths, want)
	}
}

func TestParse_EmptyShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cols int
	}{
		{"empty input", "", 0},
		{"null document", "~", 0},
		{"empty collection", "list:", 1},
		{"null docs", "list: {docs: null}", 1},
		{"doc without data", "list: {docs: {a: {}}}", 1},
		{"doc with null body", "list: {docs: {a: null}}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(db.Collections) != tt.cols {
				t.Errorf("collections = %d, want %d", len(db.Collections), tt.cols)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"root is a list", "- a\n- b", "mapping of collection names"},
		{"collection is scalar", "list: 5", "collection must be a mapping"},
		{"unknown collection key", "list: {documents: {}}", `unknown collection key "documents"`},
		{"docs is a list", "list: {docs: [a, b]}", "docs must be a mapping"},
		{"doc is scalar", "list: {docs: {a: 1}}", "document must be a mapping"},
		{"data is scalar", "list: {docs: {a: {data: 1}}}", "data must be a mapping"},
		{"unknown doc key", "list: {docs: {a: {fields: {}}}}", `unknown document key "fields"`},
		{"duplicate id", "list:\n  docs:\n    a: {}\n    a: {}\n", "duplicate"},
		{"slash in collection", "\"a/b\": {docs: {}}", "invalid collection name"},
		{"slash in id", "list: {docs: {\"a/b\": {}}}", "must not contain"},
		{"syntax", "list: {docs: [", "parse fixture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, domain.ErrInvalidFixture) {
				t.Fatalf("expected ErrInvalidFixture, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ReportsLine(t *testing.T) {
	src := "list:\n  docs:\n    a:\n      data: 7\n"
	_, err := Parse([]byte(src))
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error to mention line 4, got %v", err)
	}
}

func TestParse_Anchors(t *testing.T) {
	src := `
list:
  docs:
    a:
      data: &base {name: a, value: 1}
    b:
      data: *base
`
	db, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := docIDs(db.Collections[0].Docs); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("ids = %v", got)
	}
	if v, _ := db.Collections[0].Docs[1].Doc.Field("value"); v != 1.0 {
		t.Errorf("aliased value = %v", v)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(listFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	db, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(db.Collections[0].Docs) != 3 {
		t.Errorf("docs = %d, want 3", len(db.Collections[0].Docs))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromMap(t *testing.T) {
	db, err := FromMap(map[string]any{
		"list": map[string]any{
			"docs": map[string]any{
				"b": map[string]any{"data": map[string]any{"name": "b"}},
				"a": map[string]any{
					"data": map[string]any{"name": "a"},
					"collections": map[string]any{
						"sub": map[string]any{"docs": map[string]any{"x": nil}},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}

	w := &recordingWriter{}
	if _, err := Load(context.Background(), w, db); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"list/a", "list/a/sub/x", "list/b"}
	if !slices.Equal(w.paths, want) {
		t.Errorf("paths = %v, want %v", w.paths, want)
	}
}

func TestFromMap_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{"collection scalar", map[string]any{"list": 1}},
		{"unknown collection key", map[string]any{"list": map[string]any{"rows": nil}}},
		{"docs scalar", map[string]any{"list": map[string]any{"docs": "x"}}},
		{"doc scalar", map[string]any{"list": map[string]any{"docs": map[string]any{"a": 1}}}},
		{"data scalar", map[string]any{"list": map[string]any{"docs": map[string]any{"a": map[string]any{"data": 1}}}}},
		{"unknown doc key", map[string]any{"list": map[string]any{"docs": map[string]any{"a": map[string]any{"x": 1}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.in)
			if !errors.Is(err, domain.ErrInvalidFixture) {
				t.Errorf("expected ErrInvalidFixture, got %v", err)
			}
		})
	}
}

func TestLoad_WriterError(t *testing.T) {
	db, _ := Parse([]byte(listFixture))
	boom := errors.New("boom")

	n, err := Load(context.Background(), &recordingWriter{err: boom}, db)
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}
