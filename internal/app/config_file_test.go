package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeConfig(t, "config.yml", `
search:
  file: fixtures/results.json
  ua: custom-agent/1.0
max:
  results: 7
  excerptChars: 500
fetch:
  timeout: 3s
concurrency: 4
verbose: true
`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Search.File != "fixtures/results.json" || fc.Search.UA != "custom-agent/1.0" {
		t.Fatalf("search section not parsed: %+v", fc.Search)
	}
	if fc.Max.Results != 7 || fc.Max.ExcerptChars != 500 {
		t.Fatalf("max section not parsed: %+v", fc.Max)
	}
	if time.Duration(fc.Fetch.Timeout) != 3*time.Second {
		t.Fatalf("timeout not parsed: %v", fc.Fetch.Timeout)
	}
	if fc.Concurrency != 4 || !fc.Verbose {
		t.Fatalf("top-level fields not parsed: %+v", fc)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"wiki": {"api": "https://wiki.example/api"}, "max": {"fetches": 2}}`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Wiki.API != "https://wiki.example/api" || fc.Max.Fetches != 2 {
		t.Fatalf("json config not parsed: %+v", fc)
	}
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestApply_OnlySetValuesOverride(t *testing.T) {
	cfg := Config{MaxResults: 9, SearchUserAgent: "from-flag"}
	var fc FileConfig
	fc.Max.ExcerptChars = 640
	fc.Search.UA = "" // unset in file

	fc.Apply(&cfg)
	if cfg.MaxResults != 9 {
		t.Fatalf("unset file value clobbered flag value: %d", cfg.MaxResults)
	}
	if cfg.MaxExcerptChars != 640 {
		t.Fatalf("set file value not applied: %d", cfg.MaxExcerptChars)
	}
	if cfg.SearchUserAgent != "from-flag" {
		t.Fatalf("empty file value clobbered flag value: %q", cfg.SearchUserAgent)
	}
}
