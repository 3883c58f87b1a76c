package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores the package-level flag state after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, dataDir, outDir = "", "", ""
		startYear, endYear = 0, 0
	})
	// Neutralize any ambient overrides; empty values are ignored.
	t.Setenv("COCITE_DATA_DIR", "")
	t.Setenv("COCITE_OUT_DIR", "")
	t.Setenv("COCITE_START_YEAR", "")
	t.Setenv("COCITE_END_YEAR", "")
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cocite.yml")
	content := "data_dir: /data/raw\nyears:\n  start: 2005\n  end: 2010\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	configPath = path
	outDir = filepath.Join(dir, "out")
	startYear = 2006

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DataDir != "/data/raw" {
		t.Errorf("DataDir = %q, want the file value", cfg.DataDir)
	}
	if cfg.OutDir != outDir {
		t.Errorf("OutDir = %q, want the flag value %q", cfg.OutDir, outDir)
	}
	if cfg.Years.Start != 2006 {
		t.Errorf("Years.Start = %d, want the flag value 2006", cfg.Years.Start)
	}
	if cfg.Years.End != 2010 {
		t.Errorf("Years.End = %d, want the file value 2010", cfg.Years.End)
	}
}

func TestLoadConfigRejectsIncomplete(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "absent.yml")
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig succeeded with an explicit missing config file")
	}

	configPath = ""
	startYear, endYear = 2011, 2014
	// No data dir from any source.
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig succeeded without a data dir")
	}
}
