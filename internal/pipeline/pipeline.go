// Package pipeline wires the stages together: each stage reads its
// inputs from the range directory, fully materializes its outputs
// there, and returns a summary for the CLI. Stages never pass state in
// memory, so any stage can be re-run alone once its input files exist.
package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/matsen/cocite/internal/citegraph"
	"github.com/matsen/cocite/internal/config"
	"github.com/matsen/cocite/internal/corpus"
	"github.com/matsen/cocite/internal/dataset"
	"github.com/matsen/cocite/internal/groundtruth"
	"github.com/matsen/cocite/internal/idmap"
	"github.com/matsen/cocite/internal/repdoc"
	"github.com/matsen/cocite/internal/toolfmt"
)

// FilterResult summarizes the dataset filter stage.
type FilterResult struct {
	OutDir      string `json:"out_dir"`
	Papers      int    `json:"papers"`
	Authorships int    `json:"authorships"`
	Persons     int    `json:"persons"`
	Refs        int    `json:"refs"`
	Venues      int    `json:"venues"`
	Years       int    `json:"years"`
}

// Filter reads the raw tables, keeps the papers inside the configured
// year range, restricts the dependent tables to them, and writes the
// filtered tables plus the venue and year listings.
func Filter(cfg *config.Config) (*FilterResult, error) {
	papers, err := dataset.ReadPapers(cfg.InputPath(config.RawPaperFile))
	if err != nil {
		return nil, err
	}
	auths, err := dataset.ReadAuthorships(cfg.InputPath(config.RawAuthorFile))
	if err != nil {
		return nil, err
	}
	persons, err := dataset.ReadPersons(cfg.InputPath(config.RawPersonFile))
	if err != nil {
		return nil, err
	}
	refs, err := dataset.ReadReferences(cfg.InputPath(config.RawRefsFile))
	if err != nil {
		return nil, err
	}

	papers = dataset.FilterYears(papers, cfg.Years.Start, cfg.Years.End)
	paperIDs := dataset.IDSet(papers)
	auths = dataset.RestrictAuthorships(auths, paperIDs)
	persons = dataset.RestrictPersons(persons, dataset.AuthorIDSet(auths))
	refs = dataset.RestrictReferences(refs, paperIDs)

	dir := cfg.RangeDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating range directory: %w", err)
	}

	if err := dataset.WritePapers(cfg.RangePath(config.PaperFile), papers); err != nil {
		return nil, err
	}
	if err := dataset.WriteAuthorships(cfg.RangePath(config.AuthorFile), auths); err != nil {
		return nil, err
	}
	if err := dataset.WritePersons(cfg.RangePath(config.PersonFile), persons); err != nil {
		return nil, err
	}
	if err := dataset.WriteReferences(cfg.RangePath(config.RefsFile), refs); err != nil {
		return nil, err
	}

	venues := dataset.Venues(papers)
	if err := dataset.WriteList(cfg.RangePath(config.VenueFile), venues); err != nil {
		return nil, err
	}
	years := dataset.Years(papers)
	lines := make([]string, len(years))
	for i, y := range years {
		lines[i] = strconv.Itoa(y)
	}
	if err := dataset.WriteList(cfg.RangePath(config.YearFile), lines); err != nil {
		return nil, err
	}

	return &FilterResult{
		OutDir:      dir,
		Papers:      len(papers),
		Authorships: len(auths),
		Persons:     len(persons.Rows),
		Refs:        len(refs),
		Venues:      len(venues),
		Years:       len(years),
	}, nil
}

// RepdocsResult summarizes the representative-document stage.
type RepdocsResult struct {
	PaperDocs  int `json:"paper_docs"`
	AuthorDocs int `json:"author_docs"`
}

// Repdocs builds the per-paper documents and token vectors, then joins
// them per author through the disposable SQLite store.
func Repdocs(cfg *config.Config) (*RepdocsResult, error) {
	papers, err := dataset.ReadPapers(cfg.RangePath(config.PaperFile))
	if err != nil {
		return nil, err
	}
	auths, err := dataset.ReadAuthorships(cfg.RangePath(config.AuthorFile))
	if err != nil {
		return nil, err
	}

	docs := repdoc.BuildPaperDocs(papers)
	if err := repdoc.WriteDocs(cfg.RangePath(config.PaperDocFile), "paper_id", docs); err != nil {
		return nil, err
	}
	vectors := repdoc.VectorizeDocs(docs)
	if err := repdoc.WriteDocs(cfg.RangePath(config.PaperVectorFile), "paper_id", vectors); err != nil {
		return nil, err
	}

	store, err := repdoc.OpenStore(cfg.JoinDBPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.Put(vectors); err != nil {
		return nil, err
	}

	authorDocs, err := repdoc.JoinAuthors(auths, store.Doc)
	if err != nil {
		return nil, err
	}
	if err := repdoc.WriteDocs(cfg.RangePath(config.AuthorDocFile), "author_id", authorDocs); err != nil {
		return nil, err
	}

	return &RepdocsResult{PaperDocs: len(docs), AuthorDocs: len(authorDocs)}, nil
}

// PapersResult summarizes the paper citation graph stage.
type PapersResult struct {
	Vertices    int `json:"vertices"`
	Edges       int `json:"edges"`
	RefsDropped int `json:"refs_dropped"`
}

// Papers builds the directed citation graph from the filtered tables
// and persists its id map, binary snapshot and GraphML rendering.
func Papers(cfg *config.Config) (*PapersResult, error) {
	papers, err := dataset.ReadPapers(cfg.RangePath(config.PaperFile))
	if err != nil {
		return nil, err
	}
	auths, err := dataset.ReadAuthorships(cfg.RangePath(config.AuthorFile))
	if err != nil {
		return nil, err
	}
	refs, err := dataset.ReadReferences(cfg.RangePath(config.RefsFile))
	if err != nil {
		return nil, err
	}

	pg, dropped, err := citegraph.BuildPaperGraph(papers, auths, refs)
	if err != nil {
		return nil, err
	}

	if err := pg.IDs.WriteCSV(cfg.RangePath(config.PaperIDMapFile), "paper_id"); err != nil {
		return nil, err
	}
	if err := pg.Save(cfg.RangePath(config.PaperGraphBinFile)); err != nil {
		return nil, err
	}
	doc, err := pg.GraphML()
	if err != nil {
		return nil, err
	}
	if err := doc.WriteGz(cfg.RangePath(config.PaperGraphXMLFile)); err != nil {
		return nil, err
	}

	return &PapersResult{
		Vertices:    pg.IDs.Len(),
		Edges:       len(pg.Edges()),
		RefsDropped: dropped,
	}, nil
}

// AuthorsResult summarizes the author projection and LCC stage.
type AuthorsResult struct {
	Vertices    int `json:"vertices"`
	Edges       int `json:"edges"`
	LCCVertices int `json:"lcc_vertices"`
	LCCEdges    int `json:"lcc_edges"`
}

// Authors projects the paper graph onto authors, extracts the largest
// connected component, and persists both graphs with their id maps and
// the LCC edge list.
func Authors(cfg *config.Config) (*AuthorsResult, error) {
	pg, err := citegraph.LoadPaperGraph(cfg.RangePath(config.PaperGraphBinFile))
	if err != nil {
		return nil, err
	}
	persons, err := dataset.ReadPersons(cfg.RangePath(config.PersonFile))
	if err != nil {
		return nil, err
	}
	auths, err := dataset.ReadAuthorships(cfg.RangePath(config.AuthorFile))
	if err != nil {
		return nil, err
	}

	ag, err := citegraph.BuildAuthorGraph(pg, persons.IDs(), auths)
	if err != nil {
		return nil, err
	}
	if err := ag.IDs.WriteCSV(cfg.RangePath(config.AuthorIDMapFile), "author_id"); err != nil {
		return nil, err
	}
	doc, err := ag.GraphML()
	if err != nil {
		return nil, err
	}
	if err := doc.WriteGz(cfg.RangePath(config.AuthorGraphXMLFile)); err != nil {
		return nil, err
	}

	lcc, err := citegraph.LargestComponent(ag)
	if err != nil {
		return nil, err
	}
	if err := lcc.IDs.WriteCSV(cfg.RangePath(config.LCCIDMapFile), "author_id"); err != nil {
		return nil, err
	}
	lccDoc, err := lcc.GraphML()
	if err != nil {
		return nil, err
	}
	if err := lccDoc.WriteGz(cfg.RangePath(config.LCCGraphXMLFile)); err != nil {
		return nil, err
	}
	if err := citegraph.WriteEdgeList(cfg.RangePath(config.LCCEdgeListFile), lcc.G); err != nil {
		return nil, err
	}

	return &AuthorsResult{
		Vertices:    ag.IDs.Len(),
		Edges:       len(citegraph.UndirectedEdges(ag.G)),
		LCCVertices: lcc.IDs.Len(),
		LCCEdges:    len(citegraph.UndirectedEdges(lcc.G)),
	}, nil
}

// CommunitiesResult summarizes the ground-truth stage.
type CommunitiesResult struct {
	Venues   int `json:"venues"`
	Assigned int `json:"assigned"`
}

// Communities derives the venue ground truth over the LCC and persists
// the venue id map, the community and author-venue listings, and the
// venue-tagged binary snapshot.
func Communities(cfg *config.Config) (*CommunitiesResult, error) {
	lccIDs, err := idmap.ReadCSV(cfg.RangePath(config.LCCIDMapFile))
	if err != nil {
		return nil, err
	}
	auths, err := dataset.ReadAuthorships(cfg.RangePath(config.AuthorFile))
	if err != nil {
		return nil, err
	}
	papers, err := dataset.ReadPapers(cfg.RangePath(config.PaperFile))
	if err != nil {
		return nil, err
	}

	venueByPaper := make(map[string]string, len(papers))
	for _, p := range papers {
		venueByPaper[p.ID] = p.Venue
	}

	truth, err := groundtruth.Build(lccIDs, auths, venueByPaper)
	if err != nil {
		return nil, err
	}
	if err := truth.WriteVenueIDMap(cfg.RangePath(config.VenueIDMapFile)); err != nil {
		return nil, err
	}
	if err := truth.WriteCommunities(cfg.RangePath(config.GroundTruthFile)); err != nil {
		return nil, err
	}
	if err := truth.WriteAuthorVenues(cfg.RangePath(config.AuthorVenuesFile)); err != nil {
		return nil, err
	}

	edges, err := citegraph.ReadEdgeList(cfg.RangePath(config.LCCEdgeListFile))
	if err != nil {
		return nil, err
	}
	if err := groundtruth.SaveSnapshot(cfg.RangePath(config.LCCGraphBinFile), lccIDs.IDs(), truth, edges); err != nil {
		return nil, err
	}

	assigned := 0
	for _, venues := range truth.NodeVenues {
		if len(venues) > 0 {
			assigned++
		}
	}
	return &CommunitiesResult{Venues: len(truth.Venues), Assigned: assigned}, nil
}

// CorpusResult summarizes the corpus stage.
type CorpusResult struct {
	Documents int `json:"documents"`
	Terms     int `json:"terms"`
}

// Corpus builds the term dictionary and TF corpus over the LCC authors'
// documents, then re-reads the TF corpus from disk to fit and write the
// TF-IDF corpus.
func Corpus(cfg *config.Config) (*CorpusResult, error) {
	lccIDs, err := idmap.ReadCSV(cfg.RangePath(config.LCCIDMapFile))
	if err != nil {
		return nil, err
	}
	all, err := repdoc.ReadDocs(cfg.RangePath(config.AuthorDocFile), "author_id")
	if err != nil {
		return nil, err
	}

	var docs []repdoc.Doc
	for _, d := range all {
		if _, ok := lccIDs.Node(d.ID); ok {
			docs = append(docs, d)
		}
	}

	dict := corpus.NewDictionary()
	for _, d := range docs {
		dict.AddDoc(corpus.Tokens(d.Text))
	}
	bags := make([][]corpus.Entry, len(docs))
	for i, d := range docs {
		bags[i] = dict.Doc2Bow(corpus.Tokens(d.Text))
	}

	if err := dict.Save(cfg.RangePath(config.DictionaryFile)); err != nil {
		return nil, err
	}
	if err := dict.WriteCSV(cfg.RangePath(config.TermIDMapFile)); err != nil {
		return nil, err
	}
	if err := corpus.WriteMatrix(cfg.RangePath(config.TFCorpusFile), dict.Len(), bags); err != nil {
		return nil, err
	}

	numTerms, tf, err := corpus.ReadMatrix(cfg.RangePath(config.TFCorpusFile))
	if err != nil {
		return nil, err
	}
	model := corpus.Fit(tf)
	if err := corpus.WriteMatrix(cfg.RangePath(config.TFIDFFile), numTerms, model.TransformAll(tf)); err != nil {
		return nil, err
	}

	return &CorpusResult{Documents: len(docs), Terms: dict.Len()}, nil
}

// ExportResult summarizes the tool-format stage.
type ExportResult struct {
	Files []string `json:"files"`
}

// Export converts the edge list, term id map and TF corpus into the
// tab-separated files external tools consume.
func Export(cfg *config.Config) (*ExportResult, error) {
	conversions := []struct {
		src, dst string
		fn       func(src, dst string) error
	}{
		{config.LCCEdgeListFile, config.EdgeListTSVFile, toolfmt.EdgeListToTSV},
		{config.TermIDMapFile, config.TermIDMapTSVFile, toolfmt.CSVToTSV},
		{config.TFCorpusFile, config.PresenceTSVFile, toolfmt.MatrixToPresenceTSV},
	}

	res := &ExportResult{}
	for _, c := range conversions {
		if err := c.fn(cfg.RangePath(c.src), cfg.RangePath(c.dst)); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, c.dst)
	}
	return res, nil
}

// RunResult aggregates every stage summary of a full pipeline run.
type RunResult struct {
	Filter      *FilterResult      `json:"filter"`
	Repdocs     *RepdocsResult     `json:"repdocs"`
	Papers      *PapersResult      `json:"papers"`
	Authors     *AuthorsResult     `json:"authors"`
	Communities *CommunitiesResult `json:"communities"`
	Corpus      *CorpusResult      `json:"corpus"`
	Export      *ExportResult      `json:"export"`
}

// Run executes every stage in order, stopping at the first failure.
func Run(cfg *config.Config) (*RunResult, error) {
	res := &RunResult{}
	var err error

	if res.Filter, err = Filter(cfg); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if res.Repdocs, err = Repdocs(cfg); err != nil {
		return nil, fmt.Errorf("repdocs: %w", err)
	}
	if res.Papers, err = Papers(cfg); err != nil {
		return nil, fmt.Errorf("papers: %w", err)
	}
	if res.Authors, err = Authors(cfg); err != nil {
		return nil, fmt.Errorf("authors: %w", err)
	}
	if res.Communities, err = Communities(cfg); err != nil {
		return nil, fmt.Errorf("communities: %w", err)
	}
	if res.Corpus, err = Corpus(cfg); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if res.Export, err = Export(cfg); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return res, nil
}
