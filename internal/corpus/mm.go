package corpus

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// mmBanner is the exact header line consumers of the corpus files
// expect; changing it breaks downstream parsers.
const mmBanner = "%%MatrixMarket matrix coordinate real general"

// WriteMatrix serializes a corpus in Matrix Market coordinate format:
// banner, dimensions line (documents, terms, entries), then one
// "doc term weight" triple per line. Coordinates are 1-indexed.
// Integral weights print without a decimal point, fractional ones as
// shortest round-trip floats.
func WriteMatrix(path string, numTerms int, bags [][]Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating matrix: %w", err)
	}
	defer f.Close()

	nnz := 0
	for _, bag := range bags {
		nnz += len(bag)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, mmBanner)
	fmt.Fprintf(w, "%d %d %d\n", len(bags), numTerms, nnz)
	for doc, bag := range bags {
		for _, e := range bag {
			fmt.Fprintf(w, "%d %d %s\n", doc+1, e.ID+1, formatWeight(e.Weight))
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing matrix: %w", err)
	}
	return f.Close()
}

func formatWeight(w float64) string {
	if w == math.Trunc(w) && math.Abs(w) < 1e15 {
		return strconv.FormatInt(int64(w), 10)
	}
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// ReadMatrix restores a corpus written by WriteMatrix. Entries may
// appear in any order; documents without entries come back empty.
func ReadMatrix(path string) (numTerms int, bags [][]Entry, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("opening matrix: %w", err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	if !s.Scan() {
		return 0, nil, fmt.Errorf("matrix %s: missing banner", path)
	}
	if banner := strings.TrimSpace(s.Text()); banner != mmBanner {
		return 0, nil, fmt.Errorf("matrix %s: unsupported banner %q", path, banner)
	}

	// Dimensions follow the banner, after optional % comments.
	var numDocs, nnz int
	for {
		if !s.Scan() {
			return 0, nil, fmt.Errorf("matrix %s: missing dimensions", path)
		}
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if _, err := fmt.Sscanf(line, "%d %d %d", &numDocs, &numTerms, &nnz); err != nil {
			return 0, nil, fmt.Errorf("matrix %s: bad dimensions %q: %w", path, line, err)
		}
		break
	}

	bags = make([][]Entry, numDocs)
	seen := 0
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return 0, nil, fmt.Errorf("matrix %s: bad entry %q", path, line)
		}
		doc, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, nil, fmt.Errorf("matrix %s: bad document index %q: %w", path, fields[0], err)
		}
		term, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, nil, fmt.Errorf("matrix %s: bad term index %q: %w", path, fields[1], err)
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, nil, fmt.Errorf("matrix %s: bad weight %q: %w", path, fields[2], err)
		}
		if doc < 1 || doc > numDocs || term < 1 || term > numTerms {
			return 0, nil, fmt.Errorf("matrix %s: entry (%d, %d) outside %dx%d", path, doc, term, numDocs, numTerms)
		}
		bags[doc-1] = append(bags[doc-1], Entry{ID: term - 1, Weight: weight})
		seen++
	}
	if err := s.Err(); err != nil {
		return 0, nil, fmt.Errorf("reading matrix %s: %w", path, err)
	}
	if seen != nnz {
		return 0, nil, fmt.Errorf("matrix %s: %d entries, dimensions promise %d", path, seen, nnz)
	}
	return numTerms, bags, nil
}
