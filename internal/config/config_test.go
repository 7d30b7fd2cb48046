package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/report")

	if cfg.OutputFile != "index.html" {
		t.Errorf("OutputFile = %q, want index.html", cfg.OutputFile)
	}
	if cfg.ArchiveDir != "archive" {
		t.Errorf("ArchiveDir = %q, want archive", cfg.ArchiveDir)
	}
	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, want origin", cfg.Remote)
	}
	if cfg.LogFile == "" {
		t.Error("expected non-empty default log file")
	}
}

func TestPaths(t *testing.T) {
	cfg := Default("/srv/report")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"output", cfg.OutputPath(), "/srv/report/index.html"},
		{"archive", cfg.ArchivePath("2026-02-14"), "/srv/report/archive/2026-02-14.html"},
		{"template", cfg.TemplatePath(), "/srv/report/template.html"},
		{"daily", cfg.DailyPath(), "/srv/report/data/daily.json"},
		{"sources", cfg.SourcesPath(), "/srv/report/sources.json"},
		{"lock", cfg.LockPath(), "/srv/report/.dailyctl/update.lock"},
		{"db", cfg.DBPath(), "/srv/report/.dailyctl/history.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoadOrDefault_Missing(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadOrDefault(dir)
	if cfg.RepoRoot != dir {
		t.Errorf("RepoRoot = %q, want %q", cfg.RepoRoot, dir)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	in := Default(dir)
	in.UpdateCommand = []string{"python3", "scripts/update_techneme.py"}
	in.Branch = "main"
	if err := SaveConfig(dir, in); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	out, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(out.UpdateCommand) != 2 || out.UpdateCommand[0] != "python3" {
		t.Errorf("UpdateCommand = %v, want [python3 scripts/update_techneme.py]", out.UpdateCommand)
	}
	if out.Branch != "main" {
		t.Errorf("Branch = %q, want main", out.Branch)
	}
}

func TestLoadConfig_BadJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".dailyctl"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".dailyctl", "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadConfig_RelativeFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".dailyctl"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	raw := `{"version":"1.0","archive_dir":"snapshots"}`
	if err := os.WriteFile(filepath.Join(dir, ".dailyctl", "config.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ArchiveDir != "snapshots" {
		t.Errorf("ArchiveDir = %q, want snapshots", cfg.ArchiveDir)
	}
	if cfg.OutputFile != "index.html" {
		t.Errorf("OutputFile = %q, want default index.html", cfg.OutputFile)
	}
}
