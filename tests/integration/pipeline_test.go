// Package integration provides integration tests for cocite commands.
package integration

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	cociteBinary     string
	cociteBinaryOnce sync.Once
	cociteBinaryErr  error
)

// getCociteBinary builds the cocite binary once and returns its path.
func getCociteBinary(t *testing.T) string {
	t.Helper()
	cociteBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			cociteBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		// Build cocite to a temp location
		tmpDir, err := os.MkdirTemp("", "cocite-test-*")
		if err != nil {
			cociteBinaryErr = err
			return
		}
		cociteBinary = filepath.Join(tmpDir, "cocite")

		cmd := exec.Command("go", "build", "-o", cociteBinary, "./cmd/cocite")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			cociteBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if cociteBinaryErr != nil {
		t.Fatalf("failed to build cocite: %v", cociteBinaryErr)
	}
	return cociteBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// setupDataDir creates a raw snapshot with three papers inside the
// 2011-2014 window, one outside it, and one reference surviving the
// filter.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"paper-with-venue-and-year.csv": "id,title,venue,year,abstract\n" +
			"P1,Graph Clustering,KDD,2012,We cluster graphs\n" +
			"P2,Community Detection,WWW,2013,Detecting communities in networks\n" +
			"P3,Old Methods,KDD,2011,Classic clustering survey\n" +
			"P4,Out of Range,ICML,2005,Ancient\n",
		"author.csv": "author_id,paper_id\nA1,P1\nA2,P2\nA1,P3\nA9,P4\n",
		"person.csv": "id,name\nA1,Ada\nA2,Grace\nA9,Zed\n",
		"refs.csv":   "paper_id,ref_id\nP1,P2\nP1,P4\nP4,P1\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// runCocite executes the cocite command with given args and returns its
// combined output and exit code. The COCITE_* variables are cleared so
// ambient settings cannot leak into the run.
func runCocite(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	bin := getCociteBinary(t)
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"COCITE_DATA_DIR=", "COCITE_OUT_DIR=", "COCITE_START_YEAR=", "COCITE_END_YEAR=")
	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("running cocite %v: %v\nOutput: %s", args, err, output)
	}
	return string(output), exitErr.ExitCode()
}

func TestFilterCommand(t *testing.T) {
	dataDir := setupDataDir(t)
	outDir := t.TempDir()

	output, code := runCocite(t, dataDir, "filter",
		"--data-dir", dataDir, "--out-dir", outDir,
		"--start", "2011", "--end", "2014")
	if code != 0 {
		t.Fatalf("filter exited %d\nOutput: %s", code, output)
	}

	var result struct {
		OutDir  string `json:"out_dir"`
		Papers  int    `json:"papers"`
		Persons int    `json:"persons"`
		Refs    int    `json:"refs"`
		Venues  int    `json:"venues"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if result.Papers != 3 || result.Persons != 2 || result.Refs != 1 || result.Venues != 2 {
		t.Errorf("filter summary = %+v, want 3 papers, 2 persons, 1 ref, 2 venues", result)
	}
	if want := filepath.Join(outDir, "2011-to-2014"); result.OutDir != want {
		t.Errorf("out_dir = %q, want %q", result.OutDir, want)
	}

	// The filtered person table keeps its pass-through columns.
	data, err := os.ReadFile(filepath.Join(outDir, "2011-to-2014", "person.csv"))
	if err != nil {
		t.Fatalf("filtered person table: %v", err)
	}
	if want := "id,name\nA1,Ada\nA2,Grace\n"; string(data) != want {
		t.Errorf("person.csv = %q, want %q", data, want)
	}
}

func TestRunCommand(t *testing.T) {
	dataDir := setupDataDir(t)
	outDir := t.TempDir()

	output, code := runCocite(t, dataDir, "run",
		"--data-dir", dataDir, "--out-dir", outDir,
		"--start", "2011", "--end", "2014")
	if code != 0 {
		t.Fatalf("run exited %d\nOutput: %s", code, output)
	}

	var result struct {
		Filter struct {
			Papers int `json:"papers"`
		} `json:"filter"`
		Authors struct {
			LCCVertices int `json:"lcc_vertices"`
			LCCEdges    int `json:"lcc_edges"`
		} `json:"authors"`
		Corpus struct {
			Documents int `json:"documents"`
		} `json:"corpus"`
		Export struct {
			Files []string `json:"files"`
		} `json:"export"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse run output: %v\nOutput: %s", err, output)
	}
	if result.Filter.Papers != 3 {
		t.Errorf("filter papers = %d, want 3", result.Filter.Papers)
	}
	if result.Authors.LCCVertices != 2 || result.Authors.LCCEdges != 1 {
		t.Errorf("lcc = %d vertices, %d edges; want 2 and 1",
			result.Authors.LCCVertices, result.Authors.LCCEdges)
	}
	if result.Corpus.Documents != 2 {
		t.Errorf("corpus documents = %d, want 2", result.Corpus.Documents)
	}
	if len(result.Export.Files) != 3 {
		t.Errorf("export files = %v, want 3 entries", result.Export.Files)
	}

	rangeDir := filepath.Join(outDir, "2011-to-2014")
	for _, name := range []string{
		"paper-citation-graph.gob.gz",
		"lcc-author-cocitation-graph-edgelist.tsv",
		"lcc-repdoc-corpus-author-term-presence.tsv",
		"lcc-repdoc-corpus-tfidf.mm",
	} {
		if _, err := os.Stat(filepath.Join(rangeDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	// The term id map export carries no header row.
	data, err := os.ReadFile(filepath.Join(rangeDir, "lcc-repdoc-corpus-term-id-map.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); !strings.HasPrefix(got, "0\t") {
		t.Errorf("term id map tsv starts %q, want the first term row", got)
	}
}

func TestConfigPrecedence(t *testing.T) {
	// A cocite.yml in the working directory supplies the defaults and
	// flags override it field by field.
	workDir := t.TempDir()
	content := "data_dir: /data/from/file\nout_dir: /out/from/file\nyears:\n  start: 2001\n  end: 2010\n"
	if err := os.WriteFile(filepath.Join(workDir, "cocite.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	output, code := runCocite(t, workDir, "config", "--start", "2006")
	if code != 0 {
		t.Fatalf("config exited %d\nOutput: %s", code, output)
	}

	var result struct {
		DataDir   string `json:"data_dir"`
		StartYear int    `json:"start_year"`
		EndYear   int    `json:"end_year"`
		RangeDir  string `json:"range_dir"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse config output: %v\nOutput: %s", err, output)
	}
	if result.DataDir != "/data/from/file" {
		t.Errorf("data_dir = %q, want the config file value", result.DataDir)
	}
	if result.StartYear != 2006 || result.EndYear != 2010 {
		t.Errorf("years = %d-%d, want 2006-2010", result.StartYear, result.EndYear)
	}
	if want := filepath.Join("/out/from/file", "2006-to-2010"); result.RangeDir != want {
		t.Errorf("range_dir = %q, want %q", result.RangeDir, want)
	}
}

func TestHumanOutput(t *testing.T) {
	dataDir := setupDataDir(t)

	output, code := runCocite(t, dataDir, "filter", "--human",
		"--data-dir", dataDir, "--out-dir", t.TempDir(),
		"--start", "2011", "--end", "2014")
	if code != 0 {
		t.Fatalf("filter --human exited %d\nOutput: %s", code, output)
	}
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("--human still printed JSON: %q", output)
	}
	if !strings.Contains(output, "3 papers") {
		t.Errorf("human summary missing the paper count: %q", output)
	}
}

func TestMissingConfigurationExitCode(t *testing.T) {
	// No data dir from any source: the command must fail with the
	// config exit code and a JSON error envelope.
	output, code := runCocite(t, t.TempDir(), "filter", "--start", "2011", "--end", "2014")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2\nOutput: %s", code, output)
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(output), &errResp); err != nil {
		t.Fatalf("failed to parse error output: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(errResp.Error, "data_dir") {
		t.Errorf("error = %q, want mention of data_dir", errResp.Error)
	}
}

func TestMissingInputExitCode(t *testing.T) {
	// The data dir exists but holds no tables: a data error, not a
	// config one.
	output, code := runCocite(t, t.TempDir(), "filter",
		"--data-dir", t.TempDir(), "--out-dir", t.TempDir(),
		"--start", "2011", "--end", "2014")
	if code != 3 {
		t.Fatalf("exit code = %d, want 3\nOutput: %s", code, output)
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(output), &errResp); err != nil {
		t.Fatalf("failed to parse error output: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(errResp.Error, "paper") {
		t.Errorf("error = %q, want mention of the missing paper table", errResp.Error)
	}
}
