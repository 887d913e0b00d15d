package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mediawatch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	Reset()
	defer Reset()

	cfg, err := Load(writeConfig(t, "app:\n  debug: false\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Sheets.Brand != "主品牌-盈米基金" {
		t.Errorf("Expected default brand sheet, got %q", cfg.Sheets.Brand)
	}
	if cfg.Layout.Columns.Summary != 23 {
		t.Errorf("Expected summary column 23, got %d", cfg.Layout.Columns.Summary)
	}
	if cfg.Layout.OfficialColumns.Link != 7 {
		t.Errorf("Expected official link column 7, got %d", cfg.Layout.OfficialColumns.Link)
	}
	if cfg.Report.Counts["total"] != 1774 {
		t.Errorf("Expected default total count 1774, got %d", cfg.Report.Counts["total"])
	}
	if got := cfg.Report.Competitor.LabelMap()["E大"]; got != "ETF拯救世界（E大）" {
		t.Errorf("Expected E大 label to keep its case, got %q", got)
	}
	if cfg.Report.Industry.LabelFallback {
		t.Error("Expected industry labels not to fall back to the sheet name")
	}
	if cfg.Output.Format != "docx" {
		t.Errorf("Expected docx output by default, got %q", cfg.Output.Format)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	Reset()
	defer Reset()

	path := writeConfig(t, `
classifier:
  authoritative_media: ["新华网", ""]
  repost_sites: ["转载网"]
sheets:
  brand: "Brand"
  competitor: ["CompA", "CompB"]
report:
  counts:
    total: 10
output:
  format: Markdown
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Classifier.AuthoritativeMedia) != 1 {
		t.Errorf("Expected blank tokens to be dropped, got %v", cfg.Classifier.AuthoritativeMedia)
	}
	if cfg.Sheets.Brand != "Brand" || len(cfg.Sheets.Competitor) != 2 {
		t.Errorf("Unexpected sheets: %+v", cfg.Sheets)
	}
	if cfg.Report.Counts["total"] != 10 {
		t.Errorf("Expected overridden total 10, got %d", cfg.Report.Counts["total"])
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Expected lower-cased format, got %q", cfg.Output.Format)
	}
	if cfg.App.ConfigFile != path {
		t.Errorf("Expected config file %s, got %s", path, cfg.App.ConfigFile)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	Reset()
	defer Reset()

	path := writeConfig(t, `
classifier:
  authoritative_media: []
layout:
  columns:
    summary: -1
output:
  format: pdf
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"authoritative_media", "layout.columns.summary", "pdf"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got %v", want, err)
		}
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	Reset()
	defer Reset()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestDebugForcesDebugLevel(t *testing.T) {
	Reset()
	defer Reset()

	cfg, err := Load(writeConfig(t, "app:\n  debug: true\nlogging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestGetters(t *testing.T) {
	Reset()
	defer Reset()

	if _, err := Load(writeConfig(t, "app:\n  debug: true\nsheets:\n  brand: Brand\nlayout:\n  header_rows: 2\n")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if GetSheets().Brand != "Brand" {
		t.Errorf("Expected brand sheet Brand, got %q", GetSheets().Brand)
	}
	if GetLayout().HeaderRows != 2 {
		t.Errorf("Expected 2 header rows, got %d", GetLayout().HeaderRows)
	}
	if !IsDebugMode() || GetLogging().Level != "debug" {
		t.Errorf("Expected debug mode with debug logging, got %+v", GetLogging())
	}
}
