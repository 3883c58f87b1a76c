package citegraph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matsen/cocite/internal/graphml"
	"github.com/matsen/cocite/internal/idmap"
)

// LCC is the largest connected component of the author graph, relabeled
// onto a fresh dense node-id space. IDs maps author ids to LCC-local
// node ids; parent-graph node ids do not survive extraction.
type LCC struct {
	G   *simple.UndirectedGraph
	IDs *idmap.Map
}

// LargestComponent extracts the LCC. Ties on vertex count go to the
// component whose smallest member node id is lowest, and members are
// relabeled 0..k-1 in ascending parent-node-id order, so the result does
// not depend on component enumeration order. An isolated vertex is a
// component of size one; an empty graph yields an empty LCC.
func LargestComponent(ag *AuthorGraph) (*LCC, error) {
	var best []int64
	for _, comp := range topo.ConnectedComponents(ag.G) {
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		sortInt64s(ids)
		if best == nil || len(ids) > len(best) || (len(ids) == len(best) && ids[0] < best[0]) {
			best = ids
		}
	}

	lcc := &LCC{G: simple.NewUndirectedGraph(), IDs: idmap.New()}
	if best == nil {
		return lcc, nil
	}

	local := make(map[int64]int64, len(best))
	for i, parent := range best {
		id, err := ag.IDs.DomainID(parent)
		if err != nil {
			return nil, fmt.Errorf("component member %d: %w", parent, err)
		}
		lcc.IDs.Add(id)
		local[parent] = int64(i)
		lcc.G.AddNode(simple.Node(int64(i)))
	}
	for _, e := range UndirectedEdges(ag.G) {
		u, okU := local[e[0]]
		v, okV := local[e[1]]
		if okU && okV {
			lcc.G.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		}
	}
	return lcc, nil
}

// GraphML renders the LCC with the author id as the only node attribute.
func (l *LCC) GraphML() (*graphml.Graph, error) {
	doc := graphml.New(false)
	doc.DeclareNodeAttrs("id")
	for _, id := range l.IDs.IDs() {
		if _, err := doc.AddNode(id); err != nil {
			return nil, err
		}
	}
	for _, e := range UndirectedEdges(l.G) {
		doc.AddEdge(e[0], e[1])
	}
	return doc, nil
}

// WriteEdgeList writes one "u v" line per edge, ascending source then
// target. This is the plain-text handoff format for external tools.
func WriteEdgeList(path string, g *simple.UndirectedGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating edge list: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range UndirectedEdges(g) {
		fmt.Fprintf(w, "%d %d\n", e[0], e[1])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing edge list: %w", err)
	}
	return f.Close()
}

// ReadEdgeList reads node-id pairs written by WriteEdgeList.
func ReadEdgeList(path string) ([][2]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge list: %w", err)
	}
	defer f.Close()

	var edges [][2]int64
	s := bufio.NewScanner(f)
	for line := 1; s.Scan(); line++ {
		fields := strings.Fields(s.Text())
		if len(fields) != 2 {
			return nil, fmt.Errorf("edge list %s line %d: want 2 fields, got %d", path, line, len(fields))
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge list %s line %d: %w", path, line, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge list %s line %d: %w", path, line, err)
		}
		edges = append(edges, [2]int64{u, v})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list %s: %w", path, err)
	}
	return edges, nil
}
