// Package config handles pipeline configuration and artifact paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config describes one pipeline run: where the raw CSV snapshot lives,
// where derived artifacts go, and the year range to filter to.
type Config struct {
	DataDir string    `yaml:"data_dir"`           // Directory containing the raw input CSVs
	OutDir  string    `yaml:"out_dir,omitempty"`  // Root for derived output; defaults to DataDir
	Years   YearRange `yaml:"years"`
}

// YearRange is the inclusive publication-year window.
type YearRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// DefaultConfigFile is the config file name looked up in the working
// directory when --config is not given.
const DefaultConfigFile = "cocite.yml"

// Raw input file names, relative to DataDir.
const (
	RawPaperFile  = "paper-with-venue-and-year.csv"
	RawAuthorFile = "author.csv"
	RawPersonFile = "person.csv"
	RawRefsFile   = "refs.csv"
)

// Derived artifact file names, relative to the range directory.
const (
	PaperFile  = "paper.csv"
	AuthorFile = "author.csv"
	PersonFile = "person.csv"
	RefsFile   = "refs.csv"
	VenueFile  = "venue.csv"
	YearFile   = "year.csv"

	PaperDocFile    = "repdoc-by-paper.csv"
	PaperVectorFile = "repdoc-by-paper-vectors.csv"
	AuthorDocFile   = "repdoc-by-author-vectors.csv"

	PaperIDMapFile     = "paper-id-to-node-id-map.csv"
	PaperGraphBinFile  = "paper-citation-graph.gob.gz"
	PaperGraphXMLFile  = "paper-citation-graph.graphml.gz"
	AuthorIDMapFile    = "author-id-to-node-id-map.csv"
	AuthorGraphXMLFile = "author-cocitation-graph.graphml.gz"

	LCCGraphXMLFile = "lcc-author-cocitation-graph.graphml.gz"
	LCCGraphBinFile = "lcc-author-cocitation-graph.gob.gz"
	LCCEdgeListFile = "lcc-author-cocitation-graph-edgelist.txt"
	LCCIDMapFile    = "lcc-author-id-to-node-id-map.csv"

	VenueIDMapFile     = "lcc-venue-id-map.csv"
	GroundTruthFile    = "lcc-ground-truth-by-venue.txt"
	AuthorVenuesFile   = "lcc-author-venues.txt"

	DictionaryFile = "lcc-repdoc-corpus.dict"
	TermIDMapFile  = "lcc-repdoc-corpus-term-id-map.csv"
	TFCorpusFile   = "lcc-repdoc-corpus-tf.mm"
	TFIDFFile      = "lcc-repdoc-corpus-tfidf.mm"

	EdgeListTSVFile  = "lcc-author-cocitation-graph-edgelist.tsv"
	TermIDMapTSVFile = "lcc-repdoc-corpus-term-id-map.tsv"
	PresenceTSVFile  = "lcc-repdoc-corpus-author-term-presence.tsv"
)

// CacheDirName is the subdirectory of the range directory holding
// disposable intermediate state (the repdoc join database).
const CacheDirName = "cache"

// JoinDBFile is the ephemeral SQLite database used for the repdoc join.
const JoinDBFile = "repdocs.db"

// Load reads configuration from path, falling back to built-in defaults
// when the file does not exist, then applies environment overrides.
// Pass "" to use DefaultConfigFile in the working directory.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Missing default config is fine; env/flags may supply everything.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays COCITE_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("COCITE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("COCITE_OUT_DIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("COCITE_START_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Years.Start = n
		}
	}
	if v := os.Getenv("COCITE_END_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Years.End = n
		}
	}
}

// Validate checks that the config describes a runnable pipeline.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is not set (config file, COCITE_DATA_DIR, or --data-dir)")
	}
	if c.Years.Start == 0 || c.Years.End == 0 {
		return fmt.Errorf("year range is not set (years.start/years.end)")
	}
	if c.Years.End < c.Years.Start {
		return fmt.Errorf("year range %d-%d is inverted", c.Years.Start, c.Years.End)
	}
	return nil
}

// OutRoot returns the output root, defaulting to the data directory.
func (c *Config) OutRoot() string {
	if c.OutDir != "" {
		return c.OutDir
	}
	return c.DataDir
}

// RangeDir returns the per-range output directory, e.g. out/2011-to-2014.
// Every derived artifact lives under it; stages receive this path
// explicitly instead of changing the working directory.
func (c *Config) RangeDir() string {
	return filepath.Join(c.OutRoot(), fmt.Sprintf("%d-to-%d", c.Years.Start, c.Years.End))
}

// CacheDir returns the disposable cache directory under the range dir.
func (c *Config) CacheDir() string {
	return filepath.Join(c.RangeDir(), CacheDirName)
}

// JoinDBPath returns the path of the ephemeral repdoc join database.
func (c *Config) JoinDBPath() string {
	return filepath.Join(c.CacheDir(), JoinDBFile)
}

// InputPath returns the path of a raw input file.
func (c *Config) InputPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// RangePath returns the path of a derived artifact.
func (c *Config) RangePath(name string) string {
	return filepath.Join(c.RangeDir(), name)
}
