// Package groundtruth derives venue-based community labels for the LCC
// of the author co-citation graph. An author belongs to every venue any
// of their papers appeared in, so the labeling is multi-label: the
// communities overlap and do not partition the vertex set.
package groundtruth

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/matsen/cocite/internal/dataset"
	"github.com/matsen/cocite/internal/idmap"
)

// ErrUnknownPaper reports an authorship row naming a paper absent from
// the paper table.
var ErrUnknownPaper = errors.New("unknown paper id")

// Truth is the venue assignment over the LCC. Venues holds venue names
// by venue id (lexicographic order); NodeVenues holds each LCC node's
// ascending venue-id set, indexed by node id.
type Truth struct {
	Venues     []string
	NodeVenues [][]int
}

// Build joins authorship rows with paper venues, restricted to authors
// in the LCC id map. Venue ids number the distinct venue names of that
// restricted join in lexicographic order, so every venue id has at
// least one member. Rows for authors outside the LCC are skipped; rows
// naming an unknown paper are a data error.
func Build(lccIDs *idmap.Map, auths []dataset.Authorship, venueByPaper map[string]string) (*Truth, error) {
	nodeVenueNames := make([]map[string]bool, lccIDs.Len())
	venueSeen := make(map[string]bool)

	for _, a := range auths {
		node, ok := lccIDs.Node(a.AuthorID)
		if !ok {
			continue
		}
		venue, ok := venueByPaper[a.PaperID]
		if !ok {
			return nil, fmt.Errorf("authorship row (%s, %s): %w", a.AuthorID, a.PaperID, ErrUnknownPaper)
		}
		if nodeVenueNames[node] == nil {
			nodeVenueNames[node] = make(map[string]bool)
		}
		nodeVenueNames[node][venue] = true
		venueSeen[venue] = true
	}

	venues := make([]string, 0, len(venueSeen))
	for v := range venueSeen {
		venues = append(venues, v)
	}
	sort.Strings(venues)
	venueID := make(map[string]int, len(venues))
	for i, v := range venues {
		venueID[v] = i
	}

	truth := &Truth{Venues: venues, NodeVenues: make([][]int, lccIDs.Len())}
	for node, names := range nodeVenueNames {
		ids := make([]int, 0, len(names))
		for name := range names {
			ids = append(ids, venueID[name])
		}
		sort.Ints(ids)
		truth.NodeVenues[node] = ids
	}
	return truth, nil
}

// Communities inverts the node assignment: for each venue id, the
// ascending list of member node ids.
func (t *Truth) Communities() [][]int64 {
	members := make([][]int64, len(t.Venues))
	for node, venues := range t.NodeVenues {
		for _, v := range venues {
			members[v] = append(members[v], int64(node))
		}
	}
	return members
}

// WriteVenueIDMap persists the venue numbering (venue_id,venue_name).
func (t *Truth) WriteVenueIDMap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating venue id map: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"venue_id", "venue_name"}); err != nil {
		return err
	}
	for i, v := range t.Venues {
		if err := w.Write([]string{strconv.Itoa(i), v}); err != nil {
			return fmt.Errorf("writing venue %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing venue id map: %w", err)
	}
	return f.Close()
}

// WriteCommunities writes one line per venue id ascending, each line
// the venue's member node ids space-separated ascending.
func (t *Truth) WriteCommunities(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating community file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, members := range t.Communities() {
		writeInt64Line(w, members)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing community file: %w", err)
	}
	return f.Close()
}

// WriteAuthorVenues writes one line per LCC node id ascending, each
// line that author's venue ids space-separated ascending. Authors with
// no venues get an empty line so line numbers stay aligned with node
// ids.
func (t *Truth) WriteAuthorVenues(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating author venue file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, venues := range t.NodeVenues {
		for i, v := range venues {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.Itoa(v))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing author venue file: %w", err)
	}
	return f.Close()
}

func writeInt64Line(w *bufio.Writer, xs []int64) {
	for i, x := range xs {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.FormatInt(x, 10))
	}
	w.WriteByte('\n')
}
