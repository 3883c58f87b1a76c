package citegraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/matsen/cocite/internal/dataset"
	"github.com/matsen/cocite/internal/graphml"
	"github.com/matsen/cocite/internal/idmap"
)

// AuthorGraph is the undirected author co-citation projection. It is
// simple: self-links and repeated pairs emitted by the projection
// collapse into at most one edge, discarding multiplicity.
type AuthorGraph struct {
	G   *simple.UndirectedGraph
	IDs *idmap.Map
}

// BuildAuthorGraph projects the paper graph onto authors. Every person
// id becomes a vertex, in table order, whether or not any edge reaches
// it. For each authorship row the paper's undirected neighborhood is
// collected and an edge is emitted from the row's author to every
// author of every neighboring paper. A self-citing paper is in its own
// neighborhood, so its co-authors end up linked. Authorship rows and
// author lists must resolve against the person and paper tables; a miss
// is a data error because both tables were filtered together upstream.
func BuildAuthorGraph(pg *PaperGraph, persons []string, auths []dataset.Authorship) (*AuthorGraph, error) {
	ag := &AuthorGraph{G: simple.NewUndirectedGraph(), IDs: idmap.New()}
	for i, id := range persons {
		n := ag.IDs.Add(id)
		if n != int64(i) {
			return nil, fmt.Errorf("duplicate person id %q", id)
		}
		ag.G.AddNode(simple.Node(n))
	}

	for _, a := range auths {
		src, ok := ag.IDs.Node(a.AuthorID)
		if !ok {
			return nil, fmt.Errorf("authorship row (%s, %s): %w", a.AuthorID, a.PaperID, ErrUnknownAuthor)
		}
		p, ok := pg.IDs.Node(a.PaperID)
		if !ok {
			return nil, fmt.Errorf("authorship row (%s, %s): %w", a.AuthorID, a.PaperID, ErrUnknownPaper)
		}
		for _, q := range pg.Neighborhood(p) {
			for _, co := range pg.Authors[q] {
				dst, ok := ag.IDs.Node(co)
				if !ok {
					qid, _ := pg.IDs.DomainID(q)
					return nil, fmt.Errorf("author %q on paper %q: %w", co, qid, ErrUnknownAuthor)
				}
				if src == dst {
					continue
				}
				ag.G.SetEdge(simple.Edge{F: simple.Node(src), T: simple.Node(dst)})
			}
		}
	}
	return ag, nil
}

// GraphML renders the author graph with the author id as the only node
// attribute.
func (ag *AuthorGraph) GraphML() (*graphml.Graph, error) {
	doc := graphml.New(false)
	doc.DeclareNodeAttrs("id")
	for _, id := range ag.IDs.IDs() {
		if _, err := doc.AddNode(id); err != nil {
			return nil, err
		}
	}
	for _, e := range UndirectedEdges(ag.G) {
		doc.AddEdge(e[0], e[1])
	}
	return doc, nil
}
