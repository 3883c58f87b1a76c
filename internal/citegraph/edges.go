package citegraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Graph iteration order in gonum is map order. Every serialized edge
// list goes through one of these helpers so artifacts are byte-stable
// across runs.

// DirectedEdges returns every (from, to) pair sorted by source then
// target.
func DirectedEdges(g *simple.DirectedGraph) [][2]int64 {
	var edges [][2]int64
	for it := g.Edges(); it.Next(); {
		e := it.Edge()
		edges = append(edges, [2]int64{e.From().ID(), e.To().ID()})
	}
	sortEdges(edges)
	return edges
}

// UndirectedEdges returns every edge once as (low, high), sorted.
func UndirectedEdges(g *simple.UndirectedGraph) [][2]int64 {
	var edges [][2]int64
	for it := g.Edges(); it.Next(); {
		e := it.Edge()
		u, v := e.From().ID(), e.To().ID()
		if u > v {
			u, v = v, u
		}
		edges = append(edges, [2]int64{u, v})
	}
	sortEdges(edges)
	return edges
}

func sortEdges(edges [][2]int64) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
}

func sortInt64s(s []int64) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
