package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CutoffDate != "2025-01-05" {
		t.Errorf("default cutoff = %q", cfg.CutoffDate)
	}
	if cfg.Cutoff() != time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC) {
		t.Errorf("parsed cutoff = %v", cfg.Cutoff())
	}
	if cfg.Speeds.CampusRadiusMeters != 750 {
		t.Errorf("default campus radius = %v", cfg.Speeds.CampusRadiusMeters)
	}
	if cfg.Socrata.Domain != "data.ny.gov" || cfg.Socrata.RowLimit != 100000 {
		t.Errorf("socrata defaults = %+v", cfg.Socrata)
	}
	if len(cfg.CBD.Routes) == 0 || len(cfg.Violators.Routes) == 0 {
		t.Error("route list defaults missing")
	}
	if !cfg.CBD.Zone.Contains(40.73, -73.99) {
		t.Error("default CBD zone should cover lower Manhattan")
	}
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
cutoffDate: "2024-11-01"
paths:
  rawDir: /tmp/raw
speeds:
  campusRadiusMeters: 500
  preYear: "2023"
`)
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CutoffDate != "2024-11-01" {
		t.Errorf("cutoff = %q", cfg.CutoffDate)
	}
	if cfg.Paths.RawDir != "/tmp/raw" {
		t.Errorf("rawDir = %q", cfg.Paths.RawDir)
	}
	if cfg.Speeds.CampusRadiusMeters != 500 {
		t.Errorf("radius = %v", cfg.Speeds.CampusRadiusMeters)
	}
	if cfg.Speeds.PreYear != "2023" || cfg.Speeds.PostYear != "2025" {
		t.Errorf("years = %q/%q", cfg.Speeds.PreYear, cfg.Speeds.PostYear)
	}
	// Untouched sections still get defaults.
	if cfg.Socrata.Dataset != "kh8p-hcbm" {
		t.Errorf("dataset = %q", cfg.Socrata.Dataset)
	}
}

func TestLoadAppConfig_InvalidCutoff(t *testing.T) {
	path := writeConfig(t, `cutoffDate: "January 5th"`)
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected a validation error for a malformed cutoff date")
	}
}

func TestLoadAppConfig_InvalidYear(t *testing.T) {
	path := writeConfig(t, `
speeds:
  preYear: "24"
`)
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected a validation error for a 2-digit year")
	}
}
