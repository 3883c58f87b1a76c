// Package graphml serializes graphs in the GraphML interchange format,
// gzip-compressed. Only the features the pipeline emits are supported:
// string node attributes declared up front, every node carrying a value
// for every declared attribute.
package graphml

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const xmlns = "http://graphml.graphdrawing.org/xmlns"

// Graph accumulates nodes and edges for serialization. The zero value
// is not usable; call New.
type Graph struct {
	directed bool
	attrs    []string
	nodes    [][]string
	edges    [][2]int64
}

// New returns an empty graph. directed selects the edgedefault of the
// emitted document.
func New(directed bool) *Graph {
	return &Graph{directed: directed}
}

// DeclareNodeAttrs fixes the node attribute names, in emission order.
// Must be called before the first AddNode.
func (g *Graph) DeclareNodeAttrs(names ...string) {
	g.attrs = append(g.attrs, names...)
}

// AddNode appends a node with one value per declared attribute and
// returns its index.
func (g *Graph) AddNode(values ...string) (int64, error) {
	if len(values) != len(g.attrs) {
		return 0, fmt.Errorf("node has %d attribute values, graph declares %d", len(values), len(g.attrs))
	}
	g.nodes = append(g.nodes, values)
	return int64(len(g.nodes) - 1), nil
}

// AddEdge appends an edge between node indices.
func (g *Graph) AddEdge(u, v int64) {
	g.edges = append(g.edges, [2]int64{u, v})
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type xmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type xmlGraph struct {
	ID          string    `xml:"id,attr"`
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlDoc struct {
	XMLName xml.Name `xml:"graphml"`
	XMLNS   string   `xml:"xmlns,attr"`
	Keys    []xmlKey `xml:"key"`
	Graph   xmlGraph `xml:"graph"`
}

// Write emits the GraphML document, uncompressed.
func (g *Graph) Write(w io.Writer) error {
	doc := xmlDoc{
		XMLNS: xmlns,
		Graph: xmlGraph{ID: "G", EdgeDefault: "undirected"},
	}
	if g.directed {
		doc.Graph.EdgeDefault = "directed"
	}
	for i, name := range g.attrs {
		doc.Keys = append(doc.Keys, xmlKey{
			ID:   fmt.Sprintf("d%d", i),
			For:  "node",
			Name: name,
			Type: "string",
		})
	}
	for i, values := range g.nodes {
		node := xmlNode{ID: fmt.Sprintf("n%d", i)}
		for j, v := range values {
			node.Data = append(node.Data, xmlData{Key: fmt.Sprintf("d%d", j), Value: v})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for _, e := range g.edges {
		doc.Graph.Edges = append(doc.Graph.Edges, xmlEdge{
			Source: fmt.Sprintf("n%d", e[0]),
			Target: fmt.Sprintf("n%d", e[1]),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding graphml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteGz writes the gzip-compressed document to path.
func (g *Graph) WriteGz(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := g.Write(zw); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing gzip stream: %w", err)
	}
	return f.Close()
}
