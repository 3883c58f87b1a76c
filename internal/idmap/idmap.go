// Package idmap maintains the bijection between domain identifiers and
// dense graph node indices. Every graph in the pipeline carries its own
// Map; translating through the wrong map is the classic failure mode, so
// the persisted CSV names its id column after the domain (paper_id,
// author_id) to keep files self-describing.
package idmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrUnknownID reports a lookup of an id the map has never seen.
var ErrUnknownID = errors.New("unknown id")

// Map assigns dense int64 node indices to string domain ids in insertion
// order. The zero value is not usable; call New.
type Map struct {
	nodes map[string]int64
	ids   []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{nodes: make(map[string]int64)}
}

// Add returns the node index for id, assigning the next free index on
// first sight.
func (m *Map) Add(id string) int64 {
	if n, ok := m.nodes[id]; ok {
		return n
	}
	n := int64(len(m.ids))
	m.nodes[id] = n
	m.ids = append(m.ids, id)
	return n
}

// Node returns the node index for id, if assigned.
func (m *Map) Node(id string) (int64, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// DomainID returns the domain id for a node index.
func (m *Map) DomainID(node int64) (string, error) {
	if node < 0 || node >= int64(len(m.ids)) {
		return "", fmt.Errorf("node %d: %w", node, ErrUnknownID)
	}
	return m.ids[node], nil
}

// Len returns the number of mapped ids.
func (m *Map) Len() int {
	return len(m.ids)
}

// IDs returns the domain ids in node-index order. The slice is shared;
// callers must not modify it.
func (m *Map) IDs() []string {
	return m.ids
}

// WriteCSV persists the map as a two-column CSV in node-index order.
// idColumn names the first column (e.g. "paper_id"); the second is
// always "node_id".
func (m *Map) WriteCSV(path, idColumn string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating id map: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{idColumn, "node_id"}); err != nil {
		return fmt.Errorf("writing id map header: %w", err)
	}
	for n, id := range m.ids {
		if err := w.Write([]string{id, strconv.Itoa(n)}); err != nil {
			return fmt.Errorf("writing id map row %d: %w", n, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing id map: %w", err)
	}
	return f.Close()
}

// ReadCSV restores a map written by WriteCSV. Node ids in the file must
// be exactly 0..n-1 in row order; anything else means the file was not
// produced by this pipeline and is rejected.
func ReadCSV(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening id map: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading id map header: %w", err)
	}
	if header[1] != "node_id" {
		return nil, fmt.Errorf("id map %s: unexpected header %q", path, header)
	}

	m := New()
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading id map %s: %w", path, err)
		}
		node, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id map %s: bad node id %q: %w", path, rec[1], err)
		}
		if got := m.Add(rec[0]); got != node {
			return nil, fmt.Errorf("id map %s: id %q maps to %d, file says %d", path, rec[0], got, node)
		}
	}
	return m, nil
}
