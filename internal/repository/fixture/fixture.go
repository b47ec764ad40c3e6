// Package fixture turns a nested literal database description into typed
// collections and documents, and loads them into a document store.
//
// The literal shape is
//
//	<collection>:
//	  docs:
//	    <id>:
//	      data: {...}
//	      collections:
//	        <sub-collection>: {docs: ...}
//
// Key order in the literal is the insertion order of the loaded documents.
package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/firemock/internal/domain"
	domdoc "github.com/kailas-cloud/firemock/internal/domain/document"
)

// Database is a parsed fixture: top-level collections in literal order.
type Database struct {
	Collections []Collection
}

// Collection is a named collection with its documents in literal order.
type Collection struct {
	Name string
	Docs []Document
}

// Document is a fixture document with optional nested sub-collections.
type Document struct {
	Doc         domdoc.Document
	Collections []Collection
}

// Parse parses a YAML (or JSON) fixture, preserving key order.
func Parse(data []byte) (Database, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Database{}, fmt.Errorf("parse fixture: %w: %w", domain.ErrInvalidFixture, err)
	}
	if root.Kind == 0 {
		return Database{}, nil
	}
	node := resolve(&root)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Database{}, nil
		}
		node = resolve(node.Content[0])
	}
	if node.Tag == "!!null" {
		return Database{}, nil
	}

	cols, err := parseCollections(node, "")
	if err != nil {
		return Database{}, err
	}
	return Database{Collections: cols}, nil
}

// ParseFile reads and parses a fixture file.
func ParseFile(path string) (Database, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Database{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	db, err := Parse(data)
	if err != nil {
		return Database{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return db, nil
}

func parseCollections(node *yaml.Node, parent string) ([]Collection, error) {
	if node.Kind != yaml.MappingNode {
		return nil, invalid(node, parent, "expected a mapping of collection names")
	}
	cols := make([]Collection, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		path := join(parent, name)
		if name == "" || strings.Contains(name, "/") {
			return nil, invalid(node.Content[i], path, fmt.Sprintf("invalid collection name %q", name))
		}
		col, err := parseCollection(resolve(node.Content[i+1]), name, path)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func parseCollection(node *yaml.Node, name, path string) (Collection, error) {
	col := Collection{Name: name}
	if node.Tag == "!!null" {
		return col, nil
	}
	if node.Kind != yaml.MappingNode {
		return Collection{}, invalid(node, path, "collection must be a mapping with a docs key")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key != "docs" {
			return Collection{}, invalid(node.Content[i], path, fmt.Sprintf("unknown collection key %q", key))
		}
		docs, err := parseDocs(resolve(node.Content[i+1]), path)
		if err != nil {
			return Collection{}, err
		}
		col.Docs = docs
	}
	return col, nil
}

func parseDocs(node *yaml.Node, path string) ([]Document, error) {
	if node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalid(node, path, "docs must be a mapping of document ids")
	}
	docs := make([]Document, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		if seen[id] {
			return nil, invalid(node.Content[i], path, fmt.Sprintf("duplicate document id %q", id))
		}
		seen[id] = true
		doc, err := parseDoc(resolve(node.Content[i+1]), id, join(path, id))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseDoc(node *yaml.Node, id, path string) (Document, error) {
	var (
		data map[string]any
		subs []Collection
	)
	if node.Tag != "!!null" {
		if node.Kind != yaml.MappingNode {
			return Document{}, invalid(node, path, "document must be a mapping with data and collections keys")
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val := resolve(node.Content[i+1])
			switch key {
			case "data":
				if val.Tag == "!!null" {
					continue
				}
				if val.Kind != yaml.MappingNode {
					return Document{}, invalid(val, path, "data must be a mapping")
				}
				if err := val.Decode(&data); err != nil {
					return Document{}, invalid(val, path, err.Error())
				}
			case "collections":
				if val.Tag == "!!null" {
					continue
				}
				cols, err := parseCollections(val, path)
				if err != nil {
					return Document{}, err
				}
				subs = cols
			default:
				return Document{}, invalid(node.Content[i], path, fmt.Sprintf("unknown document key %q", key))
			}
		}
	}

	doc, err := domdoc.New(id, data)
	if err != nil {
		return Document{}, invalid(node, path, err.Error())
	}
	return Document{Doc: doc, Collections: subs}, nil
}

// FromMap builds a Database from Go maps in the same shape as the literal.
// Go maps carry no order, so collections and documents are ordered by name.
func FromMap(m map[string]any) (Database, error) {
	cols, err := collectionsFromMap(m, "")
	if err != nil {
		return Database{}, err
	}
	return Database{Collections: cols}, nil
}

func collectionsFromMap(m map[string]any, parent string) ([]Collection, error) {
	names := sortedKeys(m)
	cols := make([]Collection, 0, len(names))
	for _, name := range names {
		path := join(parent, name)
		col := Collection{Name: name}
		switch raw := m[name].(type) {
		case nil:
		case map[string]any:
			for key := range raw {
				if key != "docs" {
					return nil, fmt.Errorf("%s: unknown collection key %q: %w", path, key, domain.ErrInvalidFixture)
				}
			}
			docs, err := docsFromMap(raw["docs"], path)
			if err != nil {
				return nil, err
			}
			col.Docs = docs
		default:
			return nil, fmt.Errorf("%s: collection must be a mapping, got %T: %w", path, raw, domain.ErrInvalidFixture)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func docsFromMap(raw any, path string) ([]Document, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: docs must be a mapping, got %T: %w", path, raw, domain.ErrInvalidFixture)
	}
	docs := make([]Document, 0, len(m))
	for _, id := range sortedKeys(m) {
		docPath := join(path, id)
		var entry map[string]any
		if m[id] != nil {
			entry, ok = m[id].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: document must be a mapping, got %T: %w", docPath, m[id], domain.ErrInvalidFixture)
			}
		}

		var data map[string]any
		var subs []Collection
		for key, v := range entry {
			switch key {
			case "data":
				if v == nil {
					continue
				}
				d, ok := v.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%s: data must be a mapping, got %T: %w", docPath, v, domain.ErrInvalidFixture)
				}
				data = d
			case "collections":
				if v == nil {
					continue
				}
				sm, ok := v.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%s: collections must be a mapping, got %T: %w", docPath, v, domain.ErrInvalidFixture)
				}
				cols, err := collectionsFromMap(sm, docPath)
				if err != nil {
					return nil, err
				}
				subs = cols
			default:
				return nil, fmt.Errorf("%s: unknown document key %q: %w", docPath, key, domain.ErrInvalidFixture)
			}
		}

		doc, err := domdoc.New(id, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", docPath, domain.ErrInvalidFixture, err)
		}
		docs = append(docs, Document{Doc: doc, Collections: subs})
	}
	return docs, nil
}

// Writer is the store contract the loader writes through.
type Writer interface {
	Set(ctx context.Context, collectionPath string, doc domdoc.Document) (bool, error)
}

// Load writes every document of db into w in literal order, depth first.
// Returns the number of documents written.
func Load(ctx context.Context, w Writer, db Database) (int, error) {
	return loadCollections(ctx, w, db.Collections, "")
}

func loadCollections(ctx context.Context, w Writer, cols []Collection, parent string) (int, error) {
	n := 0
	for _, col := range cols {
		path := join(parent, col.Name)
		for _, d := range col.Docs {
			if _, err := w.Set(ctx, path, d.Doc); err != nil {
				return n, fmt.Errorf("load %s/%s: %w", path, d.Doc.ID(), err)
			}
			n++
			sub, err := loadCollections(ctx, w, d.Collections, join(path, d.Doc.ID()))
			n += sub
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func invalid(n *yaml.Node, path, msg string) error {
	if path == "" {
		return fmt.Errorf("line %d: %s: %w", n.Line, msg, domain.ErrInvalidFixture)
	}
	return fmt.Errorf("line %d: %s: %s: %w", n.Line, path, msg, domain.ErrInvalidFixture)
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
