package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cocite.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// clearEnv neutralizes ambient COCITE_* variables; empty values are
// ignored by the override logic.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COCITE_DATA_DIR", "")
	t.Setenv("COCITE_OUT_DIR", "")
	t.Setenv("COCITE_START_YEAR", "")
	t.Setenv("COCITE_END_YEAR", "")
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
data_dir: /data/dblp
out_dir: /data/out
years:
  start: 2011
  end: 2014
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/data/dblp" {
		t.Errorf("DataDir = %q, want /data/dblp", cfg.DataDir)
	}
	if cfg.OutDir != "/data/out" {
		t.Errorf("OutDir = %q, want /data/out", cfg.OutDir)
	}
	if cfg.Years.Start != 2011 || cfg.Years.End != 2014 {
		t.Errorf("Years = %+v, want 2011-2014", cfg.Years)
	}
}

func TestLoadMissingDefaultIsFine(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	orig, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no default file: %v", err)
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", cfg.DataDir)
	}
}

func TestLoadMissingExplicitFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Load of missing explicit path succeeded")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
data_dir: /data/dblp
years:
  start: 2011
  end: 2014
`)
	clearEnv(t)
	t.Setenv("COCITE_DATA_DIR", "/env/dblp")
	t.Setenv("COCITE_START_YEAR", "1999")
	t.Setenv("COCITE_END_YEAR", "2002")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/env/dblp" {
		t.Errorf("DataDir = %q, want env override /env/dblp", cfg.DataDir)
	}
	if cfg.Years.Start != 1999 || cfg.Years.End != 2002 {
		t.Errorf("Years = %+v, want 1999-2002", cfg.Years)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "complete",
			cfg:  Config{DataDir: "/d", Years: YearRange{Start: 2011, End: 2014}},
		},
		{
			name:    "missing data dir",
			cfg:     Config{Years: YearRange{Start: 2011, End: 2014}},
			wantErr: true,
		},
		{
			name:    "missing years",
			cfg:     Config{DataDir: "/d"},
			wantErr: true,
		},
		{
			name:    "inverted range",
			cfg:     Config{DataDir: "/d", Years: YearRange{Start: 2014, End: 2011}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRangeDir(t *testing.T) {
	cfg := Config{DataDir: "/d", Years: YearRange{Start: 2011, End: 2014}}
	want := filepath.Join("/d", "2011-to-2014")
	if got := cfg.RangeDir(); got != want {
		t.Errorf("RangeDir() = %q, want %q", got, want)
	}

	cfg.OutDir = "/out"
	want = filepath.Join("/out", "2011-to-2014")
	if got := cfg.RangeDir(); got != want {
		t.Errorf("RangeDir() with out_dir = %q, want %q", got, want)
	}
}
