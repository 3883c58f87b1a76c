// Package corpus turns per-author token vectors into bag-of-words
// corpuses: a term dictionary with dense ids, term-frequency bags, and
// TF-IDF weighted bags, serialized in Matrix Market coordinate format.
package corpus

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one (term id, weight) pair of a bag-of-words document.
// Weights are raw counts in TF bags and floats after TF-IDF.
type Entry struct {
	ID     int
	Weight float64
}

// Dictionary maps terms to dense ids assigned in first-encounter order
// and tracks per-term document frequencies. The zero value is not
// usable; call NewDictionary.
type Dictionary struct {
	ids     map[string]int
	terms   []string
	docFreq []int
	numDocs int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{ids: make(map[string]int)}
}

// Tokens splits a "|"-joined document into its tokens, dropping empty
// segments.
func Tokens(doc string) []string {
	if doc == "" {
		return nil
	}
	var tokens []string
	for _, tok := range strings.Split(doc, "|") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// AddDoc registers one document's tokens: new terms get the next free
// id, and each distinct term's document frequency is bumped once.
func (d *Dictionary) AddDoc(tokens []string) {
	d.numDocs++
	seen := make(map[int]bool)
	for _, tok := range tokens {
		id, ok := d.ids[tok]
		if !ok {
			id = len(d.terms)
			d.ids[tok] = id
			d.terms = append(d.terms, tok)
			d.docFreq = append(d.docFreq, 0)
		}
		if !seen[id] {
			seen[id] = true
			d.docFreq[id]++
		}
	}
}

// ID returns the id assigned to term.
func (d *Dictionary) ID(term string) (int, bool) {
	id, ok := d.ids[term]
	return id, ok
}

// Term returns the term with the given id.
func (d *Dictionary) Term(id int) (string, error) {
	if id < 0 || id >= len(d.terms) {
		return "", fmt.Errorf("term id %d out of range [0,%d)", id, len(d.terms))
	}
	return d.terms[id], nil
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}

// NumDocs returns the number of documents seen by AddDoc.
func (d *Dictionary) NumDocs() int {
	return d.numDocs
}

// DocFreq returns the number of documents containing the term.
func (d *Dictionary) DocFreq(id int) int {
	if id < 0 || id >= len(d.docFreq) {
		return 0
	}
	return d.docFreq[id]
}

// Doc2Bow converts a token list to a bag of (term id, count) entries,
// ascending by term id. Tokens missing from the dictionary are skipped.
func (d *Dictionary) Doc2Bow(tokens []string) []Entry {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if id, ok := d.ids[tok]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	bag := make([]Entry, 0, len(counts))
	for id, n := range counts {
		bag = append(bag, Entry{ID: id, Weight: n})
	}
	sort.Slice(bag, func(i, j int) bool { return bag[i].ID < bag[j].ID })
	return bag
}

// WriteCSV persists the id-to-term table (columns term_id,term) in
// ascending id order.
func (d *Dictionary) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating term id map: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"term_id", "term"}); err != nil {
		return err
	}
	for id, term := range d.terms {
		if err := w.Write([]string{strconv.Itoa(id), term}); err != nil {
			return fmt.Errorf("writing term %d: %w", id, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing term id map: %w", err)
	}
	return f.Close()
}

const dictVersion = 1

type dictFile struct {
	Version int
	Terms   []string
	DocFreq []int
	NumDocs int
}

// Save persists the dictionary as a versioned binary file, written to a
// temp file and renamed into place.
func (d *Dictionary) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	zw := gzip.NewWriter(f)
	err = gob.NewEncoder(zw).Encode(dictFile{
		Version: dictVersion,
		Terms:   d.terms,
		DocFreq: d.docFreq,
		NumDocs: d.numDocs,
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding dictionary: %w", err)
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

// LoadDictionary restores a dictionary written by Save.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	defer zr.Close()

	var file dictFile
	if err := gob.NewDecoder(zr).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding dictionary: %w", err)
	}
	if file.Version != dictVersion {
		return nil, fmt.Errorf("dictionary %s: unsupported version %d", path, file.Version)
	}

	d := NewDictionary()
	d.terms = file.Terms
	d.docFreq = file.DocFreq
	d.numDocs = file.NumDocs
	for id, term := range d.terms {
		d.ids[term] = id
	}
	return d, nil
}
