package plan

import (
	"testing"

	"github.com/kailas-cloud/firemock/internal/domain/query/order"
)

type fields map[string]any

func (f fields) Field(path string) (any, bool) {
	v, ok := f[path]
	return v, ok
}

func values(docs []fields) []any {
	out := make([]any, len(docs))
	for i, d := range docs {
		out[i] = d["value"]
	}
	return out
}

func TestApply_Ascending(t *testing.T) {
	sorted := []fields{{}, {"value": 1.0}, {"value": 2.0}, {"value": 3.0}, {"value": 4.0}, {"value": 4.0}}
	o, _ := order.New("value", order.Asc)
	c, _ := NewCursor(3)

	got := Apply(sorted, c, o)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(got), values(got))
	}
	if got[0]["value"] != 3.0 {
		t.Errorf("first value = %v, want 3", got[0]["value"])
	}
}

func TestApply_Descending(t *testing.T) {
	sorted := []fields{{"value": 4.0}, {"value": 3.0}, {"value": 2.0}, {"value": 1.0}, {}}
	o, _ := order.New("value", order.Desc)
	c, _ := NewCursor(2)

	got := Apply(sorted, c, o)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(got), values(got))
	}
	if got[0]["value"] != 2.0 {
		t.Errorf("first value = %v, want 2", got[0]["value"])
	}
	if _, ok := got[2]["value"]; ok {
		t.Error("missing-field document must stay on the inclusive side when descending")
	}
}

func TestApply_BoundaryBetweenValues(t *testing.T) {
	sorted := []fields{{"value": 1.0}, {"value": 5.0}, {"value": 9.0}}
	o, _ := order.New("value", order.Asc)
	c, _ := NewCursor(4)

	got := Apply(sorted, c, o)
	if len(got) != 2 || got[0]["value"] != 5.0 {
		t.Errorf("got %v, want [5 9]", values(got))
	}
}

func TestApply_PastEnd(t *testing.T) {
	sorted := []fields{{"value": 1.0}, {"value": 2.0}}
	o, _ := order.New("value", order.Asc)
	c, _ := NewCursor(10)

	if got := Apply(sorted, c, o); len(got) != 0 {
		t.Errorf("got %v, want empty", values(got))
	}
}

func TestCursor_Admits(t *testing.T) {
	asc, _ := order.New("name", order.Asc)
	desc, _ := order.New("name", order.Desc)
	c, _ := NewCursor("b")

	if !c.Admits(fields{"name": "b"}, asc) || !c.Admits(fields{"name": "b"}, desc) {
		t.Error("boundary value must be admitted in both directions")
	}
	if c.Admits(fields{"name": "a"}, asc) {
		t.Error("asc: a < b must not be admitted")
	}
	if c.Admits(fields{"name": "c"}, desc) {
		t.Error("desc: c > b must not be admitted")
	}
	if c.Boundary() != "b" {
		t.Errorf("Boundary() = %v", c.Boundary())
	}
}
