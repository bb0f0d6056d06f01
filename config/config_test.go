package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.K != 7 || c.Threshold != 0.6 || c.MaxWindow != 5000 || c.Threads != 1 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.json")
	body := `{"Input":"in.fa","Output":"out.tsv","Threads":4,"K":11,"Compress":true}`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJSON(p)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg.Input != "in.fa" || cfg.Output != "out.tsv" || cfg.Threads != 4 || cfg.K != 11 || !cfg.Compress {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// Fields not present in the file should keep their defaults.
	if cfg.Threshold != 0.6 || cfg.MaxWindow != 5000 {
		t.Fatalf("unset fields should retain defaults, got %+v", cfg)
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON("/does/not/exist.json"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.toml")
	body := "Input = \"in.fa\"\nOutput = \"out.tsv\"\nThreads = 2\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTOML(p)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if cfg.Input != "in.fa" || cfg.Output != "out.tsv" || cfg.Threads != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.K != 7 {
		t.Fatalf("unset K should retain default, got %d", cfg.K)
	}
}
