package groundtruth

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

const snapshotVersion = 1

// snapshot is the venue-tagged LCC: the graph structure plus the venue
// assignment, in one versioned binary artifact.
type snapshot struct {
	Version    int
	AuthorIDs  []string
	NodeVenues [][]int
	Edges      [][2]int64
}

// SaveSnapshot persists the venue-tagged LCC. authorIDs is the LCC id
// map in node order; edges are LCC-local node-id pairs.
func SaveSnapshot(path string, authorIDs []string, t *Truth, edges [][2]int64) error {
	if len(authorIDs) != len(t.NodeVenues) {
		return fmt.Errorf("id map has %d nodes, venue assignment has %d", len(authorIDs), len(t.NodeVenues))
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	zw := gzip.NewWriter(f)
	err = gob.NewEncoder(zw).Encode(snapshot{
		Version:    snapshotVersion,
		AuthorIDs:  authorIDs,
		NodeVenues: t.NodeVenues,
		Edges:      edges,
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing gzip stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot restores a snapshot written by SaveSnapshot. The venue
// name table is not part of the snapshot; pair it with the venue id
// map when names matter.
func LoadSnapshot(path string) (authorIDs []string, nodeVenues [][]int, edges [][2]int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer zr.Close()

	var snap snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, nil, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, nil, nil, fmt.Errorf("snapshot %s: unsupported version %d", path, snap.Version)
	}
	return snap.AuthorIDs, snap.NodeVenues, snap.Edges, nil
}
