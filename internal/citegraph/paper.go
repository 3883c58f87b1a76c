// Package citegraph builds the citation graphs: the directed
// paper-to-paper citation graph, the undirected author co-citation
// projection, and the largest connected component of the latter.
//
// Node indices are dense and assigned in insertion order, so the gonum
// node id doubles as the index into the attribute slices and into the
// persisted id maps. Each graph carries its own idmap.Map; node ids are
// never meaningful across graphs.
package citegraph

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/matsen/cocite/internal/dataset"
	"github.com/matsen/cocite/internal/graphml"
	"github.com/matsen/cocite/internal/idmap"
)

// ErrUnknownPaper reports an authorship row naming a paper id absent
// from the paper graph. The authorship table is filtered against the
// paper table upstream, so a miss here means corrupt inputs.
var ErrUnknownPaper = errors.New("unknown paper id")

// ErrUnknownAuthor reports an author id absent from the person table.
var ErrUnknownAuthor = errors.New("unknown author id")

// PaperGraph is the directed citation graph. Venues and Authors are
// parallel to node indices; Authors holds author ids in authorship-row
// order. SelfCite marks papers that cite themselves: simple graphs hold
// no loops, so the mark stands in for the loop edge.
type PaperGraph struct {
	G        *simple.DirectedGraph
	IDs      *idmap.Map
	Venues   []string
	Authors  [][]string
	SelfCite map[int64]bool
}

// BuildPaperGraph constructs the citation graph from the filtered
// tables. Vertices follow paper-table order, which fixes the id map.
// Reference rows with an endpoint outside the paper set are dropped;
// the count of dropped rows is returned for the stage summary. A row
// citing its own paper sets the vertex's SelfCite mark instead of
// adding an edge. Duplicate rows collapse and count as dropped; the
// graph keeps no multiplicities.
func BuildPaperGraph(papers []dataset.Paper, auths []dataset.Authorship, refs []dataset.Reference) (*PaperGraph, int, error) {
	pg := &PaperGraph{
		G:        simple.NewDirectedGraph(),
		IDs:      idmap.New(),
		Venues:   make([]string, 0, len(papers)),
		Authors:  make([][]string, len(papers)),
		SelfCite: make(map[int64]bool),
	}

	for _, p := range papers {
		n := pg.IDs.Add(p.ID)
		if int(n) != len(pg.Venues) {
			return nil, 0, fmt.Errorf("duplicate paper id %q", p.ID)
		}
		pg.G.AddNode(simple.Node(n))
		pg.Venues = append(pg.Venues, p.Venue)
	}

	for _, a := range auths {
		n, ok := pg.IDs.Node(a.PaperID)
		if !ok {
			return nil, 0, fmt.Errorf("authorship row (%s, %s): %w", a.AuthorID, a.PaperID, ErrUnknownPaper)
		}
		pg.Authors[n] = append(pg.Authors[n], a.AuthorID)
	}

	dropped := 0
	for _, ref := range refs {
		from, okFrom := pg.IDs.Node(ref.PaperID)
		to, okTo := pg.IDs.Node(ref.RefID)
		if !okFrom || !okTo {
			dropped++
			continue
		}
		if from == to {
			if pg.SelfCite[from] {
				dropped++
			}
			pg.SelfCite[from] = true
			continue
		}
		if pg.G.HasEdgeFromTo(from, to) {
			dropped++
			continue
		}
		pg.G.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return pg, dropped, nil
}

// Edges returns every citation pair sorted by source then target,
// self-citations included as (n, n).
func (pg *PaperGraph) Edges() [][2]int64 {
	edges := DirectedEdges(pg.G)
	for n := range pg.SelfCite {
		edges = append(edges, [2]int64{n, n})
	}
	sortEdges(edges)
	return edges
}

// Neighborhood returns the undirected neighborhood of a paper node:
// every paper it cites plus every paper citing it, ascending. A paper
// marked self-citing is part of its own neighborhood.
func (pg *PaperGraph) Neighborhood(node int64) []int64 {
	var out []int64
	if pg.SelfCite[node] {
		out = append(out, node)
	}
	for it := pg.G.From(node); it.Next(); {
		out = append(out, it.Node().ID())
	}
	for it := pg.G.To(node); it.Next(); {
		out = append(out, it.Node().ID())
	}
	sortInt64s(out)
	return out
}

// GraphML renders the paper graph with id, venue and author_ids node
// attributes, author lists joined with "|".
func (pg *PaperGraph) GraphML() (*graphml.Graph, error) {
	doc := graphml.New(true)
	doc.DeclareNodeAttrs("id", "venue", "author_ids")
	for n, id := range pg.IDs.IDs() {
		if _, err := doc.AddNode(id, pg.Venues[n], strings.Join(pg.Authors[n], "|")); err != nil {
			return nil, err
		}
	}
	for _, e := range pg.Edges() {
		doc.AddEdge(e[0], e[1])
	}
	return doc, nil
}

const paperSnapshotVersion = 2

type paperSnapshot struct {
	Version   int
	PaperIDs  []string
	Venues    []string
	Authors   [][]string
	Edges     [][2]int64
	SelfLoops []int64
}

// Save persists the paper graph as a versioned binary snapshot. Loop
// edges travel as the sorted SelfLoops list so the bytes stay stable
// across runs.
func (pg *PaperGraph) Save(path string) error {
	var loops []int64
	for n := range pg.SelfCite {
		loops = append(loops, n)
	}
	sortInt64s(loops)

	snap := paperSnapshot{
		Version:   paperSnapshotVersion,
		PaperIDs:  pg.IDs.IDs(),
		Venues:    pg.Venues,
		Authors:   pg.Authors,
		Edges:     DirectedEdges(pg.G),
		SelfLoops: loops,
	}
	return saveGob(path, snap)
}

// LoadPaperGraph restores a snapshot written by Save.
func LoadPaperGraph(path string) (*PaperGraph, error) {
	var snap paperSnapshot
	if err := loadGob(path, &snap); err != nil {
		return nil, err
	}
	if snap.Version != paperSnapshotVersion {
		return nil, fmt.Errorf("paper graph snapshot %s: unsupported version %d", path, snap.Version)
	}

	pg := &PaperGraph{
		G:        simple.NewDirectedGraph(),
		IDs:      idmap.New(),
		Venues:   snap.Venues,
		Authors:  snap.Authors,
		SelfCite: make(map[int64]bool, len(snap.SelfLoops)),
	}
	if pg.Authors == nil {
		pg.Authors = make([][]string, len(snap.PaperIDs))
	}
	for _, id := range snap.PaperIDs {
		pg.G.AddNode(simple.Node(pg.IDs.Add(id)))
	}
	for _, e := range snap.Edges {
		pg.G.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
	}
	for _, n := range snap.SelfLoops {
		pg.SelfCite[n] = true
	}
	return pg, nil
}
