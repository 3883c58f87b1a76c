// Package toolfmt converts pipeline artifacts into the tab-separated
// shapes external community-detection tools consume. The transforms are
// purely syntactic; ids and ordering pass through untouched except for
// the dropped CSV header and the documented Matrix Market index shift.
package toolfmt

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EdgeListToTSV rewrites a whitespace-separated edge list with single
// tabs between fields.
func EdgeListToTSV(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening edge list: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	s := bufio.NewScanner(in)
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", dst, err)
	}
	return out.Close()
}

// CSVToTSV rewrites a CSV file with tab separators, dropping the header
// row; the consumers expect bare feature rows.
func CSVToTSV(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	r := csv.NewReader(in)
	w := bufio.NewWriter(out)
	if _, err := r.Read(); err != nil && err != io.EOF {
		return fmt.Errorf("reading %s header: %w", src, err)
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", src, err)
		}
		fmt.Fprintln(w, strings.Join(rec, "\t"))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", dst, err)
	}
	return out.Close()
}

// MatrixToPresenceTSV projects a Matrix Market corpus onto 0-indexed
// "doc<TAB>term" presence pairs: the banner and dimensions lines are
// skipped, weights are discarded, and both coordinates shift down by
// one because Matrix Market counts from 1 while the consumers count
// from 0.
func MatrixToPresenceTSV(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening matrix: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	s := bufio.NewScanner(in)
	for line := 1; s.Scan(); line++ {
		if line <= 2 {
			continue
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return fmt.Errorf("matrix %s line %d: want at least 2 fields, got %d", src, line, len(fields))
		}
		doc, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("matrix %s line %d: %w", src, line, err)
		}
		term, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("matrix %s line %d: %w", src, line, err)
		}
		if doc < 1 || term < 1 {
			return fmt.Errorf("matrix %s line %d: coordinates (%d, %d) not 1-indexed", src, line, doc, term)
		}
		fmt.Fprintf(w, "%d\t%d\n", doc-1, term-1)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", dst, err)
	}
	return out.Close()
}
