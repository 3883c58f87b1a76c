package repdoc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/cocite/internal/dataset"
	"github.com/matsen/cocite/internal/multimap"
)

// Doc pairs a domain id (paper or author) with document text. For raw
// documents Text is free text; for vectorized documents it is the
// "|"-joined token vector.
type Doc struct {
	ID   string
	Text string
}

// BuildPaperDocs concatenates title and abstract per paper, in table
// order.
func BuildPaperDocs(papers []dataset.Paper) []Doc {
	docs := make([]Doc, len(papers))
	for i, p := range papers {
		docs[i] = Doc{ID: p.ID, Text: p.Title + " " + p.Abstract}
	}
	return docs
}

// VectorizeDocs runs every document through the vectorizer, keeping
// order. The resulting Text is the "|"-joined token vector.
func VectorizeDocs(docs []Doc) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		out[i] = Doc{ID: d.ID, Text: strings.Join(Vectorize(d.Text), "|")}
	}
	return out
}

// JoinAuthors builds the per-author document table from the authorship
// rows and a paper-vector lookup. Authors appear in first-authorship
// order, each with the vectors of their papers "|"-concatenated in row
// order; empty paper vectors contribute nothing but the author row
// still exists.
func JoinAuthors(auths []dataset.Authorship, lookup func(paperID string) (string, error)) ([]Doc, error) {
	byAuthor := multimap.New()
	for _, a := range auths {
		doc, err := lookup(a.PaperID)
		if err != nil {
			return nil, fmt.Errorf("authorship row (%s, %s): %w", a.AuthorID, a.PaperID, err)
		}
		if doc == "" {
			byAuthor.AddKey(a.AuthorID)
			continue
		}
		byAuthor.Add(a.AuthorID, doc)
	}

	docs := make([]Doc, 0, byAuthor.Len())
	for _, id := range byAuthor.Keys() {
		docs = append(docs, Doc{ID: id, Text: strings.Join(byAuthor.Get(id), "|")})
	}
	return docs, nil
}

// WriteDocs persists documents as a two-column CSV. idColumn names the
// first column (paper_id or author_id); the second is always "doc".
func WriteDocs(path, idColumn string, docs []Doc) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating document table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{idColumn, "doc"}); err != nil {
		return err
	}
	for _, d := range docs {
		if err := w.Write([]string{d.ID, d.Text}); err != nil {
			return fmt.Errorf("writing document %s: %w", d.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing document table: %w", err)
	}
	return f.Close()
}

// ReadDocs loads a document table written by WriteDocs. idColumn must
// match the header's first column.
func ReadDocs(path, idColumn string) ([]Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading document header: %w", err)
	}
	if header[0] != idColumn || header[1] != "doc" {
		return nil, fmt.Errorf("%s: %w: got %v, want [%s doc]", path, dataset.ErrHeader, header, idColumn)
	}

	var docs []Doc
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, Doc{ID: rec[0], Text: rec[1]})
	}
	return docs, nil
}
