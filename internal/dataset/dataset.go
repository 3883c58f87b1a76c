// Package dataset reads and writes the bibliographic tables: papers,
// authorship rows, persons, and citation references. All tables are CSV
// with a required header row; the header is validated on read so that a
// column drift in the upstream snapshot fails loudly instead of
// shifting fields.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrHeader reports an input CSV whose header row does not match the
// documented column contract.
var ErrHeader = errors.New("unexpected header")

// Paper is one publication record.
type Paper struct {
	ID       string
	Title    string
	Venue    string
	Year     int
	Abstract string
}

// Authorship links an author to a paper they wrote.
type Authorship struct {
	AuthorID string
	PaperID  string
}

// Person is one row of the person table: the author id plus whatever
// extra columns the snapshot carries (names, affiliations).
type Person struct {
	ID    string
	Extra []string
}

// PersonTable pairs the person rows with their source header so the
// filtered table writes back the same columns it read.
type PersonTable struct {
	Header []string
	Rows   []Person
}

// IDs returns the id column in row order.
func (t *PersonTable) IDs() []string {
	ids := make([]string, len(t.Rows))
	for i, p := range t.Rows {
		ids[i] = p.ID
	}
	return ids
}

// Reference is a directed citation from PaperID to RefID.
type Reference struct {
	PaperID string
	RefID   string
}

var (
	paperHeader      = []string{"id", "title", "venue", "year", "abstract"}
	authorshipHeader = []string{"author_id", "paper_id"}
	referenceHeader  = []string{"paper_id", "ref_id"}
)

func checkHeader(path string, got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%s: %w: got %v, want %v", path, ErrHeader, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%s: %w: got %v, want %v", path, ErrHeader, got, want)
		}
	}
	return nil
}

// ReadPapers loads a paper table (columns id,title,venue,year,abstract).
func ReadPapers(path string) ([]Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening paper table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(paperHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading paper header: %w", err)
	}
	if err := checkHeader(path, header, paperHeader); err != nil {
		return nil, err
	}

	var papers []Paper
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		year, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad year %q: %w", path, line, rec[3], err)
		}
		papers = append(papers, Paper{
			ID:       rec[0],
			Title:    rec[1],
			Venue:    rec[2],
			Year:     year,
			Abstract: rec[4],
		})
	}
	return papers, nil
}

// WritePapers writes a paper table with the standard header.
func WritePapers(path string, papers []Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating paper table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(paperHeader); err != nil {
		return err
	}
	for _, p := range papers {
		rec := []string{p.ID, p.Title, p.Venue, strconv.Itoa(p.Year), p.Abstract}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing paper %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing paper table: %w", err)
	}
	return f.Close()
}

// ReadAuthorships loads an authorship table (columns author_id,paper_id).
func ReadAuthorships(path string) ([]Authorship, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening authorship table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(authorshipHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading authorship header: %w", err)
	}
	if err := checkHeader(path, header, authorshipHeader); err != nil {
		return nil, err
	}

	var rows []Authorship
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, Authorship{AuthorID: rec[0], PaperID: rec[1]})
	}
	return rows, nil
}

// WriteAuthorships writes an authorship table with the standard header.
func WriteAuthorships(path string, rows []Authorship) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating authorship table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(authorshipHeader); err != nil {
		return err
	}
	for _, a := range rows {
		if err := w.Write([]string{a.AuthorID, a.PaperID}); err != nil {
			return fmt.Errorf("writing authorship row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing authorship table: %w", err)
	}
	return f.Close()
}

// ReadPersons loads the person table. Only the leading id column is
// interpreted; extra columns (names, affiliations) ride along so a
// filtered table keeps them. The header must start with "id".
func ReadPersons(path string) (*PersonTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening person table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading person header: %w", err)
	}
	if len(header) == 0 || header[0] != "id" {
		return nil, fmt.Errorf("%s: %w: got %v, want leading id column", path, ErrHeader, header)
	}

	table := &PersonTable{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var extra []string
		if len(rec) > 1 {
			extra = rec[1:]
		}
		table.Rows = append(table.Rows, Person{ID: rec[0], Extra: extra})
	}
	return table, nil
}

// WritePersons writes the person table, header and pass-through columns
// included.
func WritePersons(path string, table *PersonTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating person table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		return err
	}
	for _, p := range table.Rows {
		if err := w.Write(append([]string{p.ID}, p.Extra...)); err != nil {
			return fmt.Errorf("writing person %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing person table: %w", err)
	}
	return f.Close()
}

// ReadReferences loads a citation table (columns paper_id,ref_id).
func ReadReferences(path string) ([]Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(referenceHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading reference header: %w", err)
	}
	if err := checkHeader(path, header, referenceHeader); err != nil {
		return nil, err
	}

	var refs []Reference
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		refs = append(refs, Reference{PaperID: rec[0], RefID: rec[1]})
	}
	return refs, nil
}

// WriteReferences writes a citation table with the standard header.
func WriteReferences(path string, refs []Reference) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating reference table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(referenceHeader); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := w.Write([]string{ref.PaperID, ref.RefID}); err != nil {
			return fmt.Errorf("writing reference row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing reference table: %w", err)
	}
	return f.Close()
}

// WriteList writes one value per line as a headerless CSV column, the
// shape of the venue and year listing files.
func WriteList(path string, values []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, v := range values {
		if err := w.Write([]string{v}); err != nil {
			return fmt.Errorf("writing listing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing listing: %w", err)
	}
	return f.Close()
}
