package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
)

// =============================================================================
// Node-link JSON
// =============================================================================

// Document is the node-link serialization of a [Graph].
type Document struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

// NodeRecord is one entry of [Document.Nodes].
type NodeRecord struct {
	ID     int `json:"id"`
	Degree int `json:"degree,omitempty"` // informational, ignored on read
}

// EdgeRecord is one entry of [Document.Edges].
type EdgeRecord struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ToDocument converts g to its node-link form. Nodes are emitted in
// ascending order and edges with From < To, so output is deterministic.
func ToDocument(g *Graph) Document {
	doc := Document{
		Nodes: make([]NodeRecord, 0, g.NodeCount()),
		Edges: make([]EdgeRecord, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeRecord{ID: id, Degree: g.Degree(id)})
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, EdgeRecord{From: e.U, To: e.V})
	}
	return doc
}

// FromDocument validates doc and builds a [Graph]. Node identities must be
// exactly 0..N-1 in any order.
func FromDocument(doc Document) (*Graph, error) {
	n := len(doc.Nodes)
	present := make([]bool, n)
	for _, nr := range doc.Nodes {
		if nr.ID < 0 || nr.ID >= n {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidGraph, ErrNodeOutOfRange, "node id %d with %d nodes", nr.ID, n)
		}
		if present[nr.ID] {
			return nil, gwerrors.New(gwerrors.ErrCodeInvalidGraph, "duplicate node id %d", nr.ID)
		}
		present[nr.ID] = true
	}

	edges := make([]Edge, len(doc.Edges))
	for i, er := range doc.Edges {
		edges[i] = Edge{U: er.From, V: er.To}
	}
	return New(n, edges)
}

// MarshalGraph converts g to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to a JSON file at path.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeAndClose(g, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAndClose closes w and returns the close error if the write succeeded.
func writeAndClose(g *Graph, w io.WriteCloser) error {
	if err := WriteGraph(g, w); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// ReadGraph decodes a node-link JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidInput, err, "decode graph")
	}
	return FromDocument(doc)
}

// ReadGraphFile reads a node-link JSON graph from path.
func ReadGraphFile(path string) (*Graph, error) {
	if err := gwerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
