package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when a field (or the whole config file) is absent.
const (
	DefaultOutputFile   = "index.html"
	DefaultArchiveDir   = "archive"
	DefaultDataDir      = "data"
	DefaultTemplateFile = "template.html"
	DefaultSourcesFile  = "sources.json"
	DefaultRemote       = "origin"
)

// Config is the flat dailyctl configuration for one report repository.
type Config struct {
	Version          string   `json:"version"`
	RepoRoot         string   `json:"repo_root,omitempty"`         // defaults to the directory the config was loaded from
	OutputFile       string   `json:"output_file,omitempty"`       // live published page, relative to repo root
	ArchiveDir       string   `json:"archive_dir,omitempty"`       // dated snapshots, relative to repo root
	DataDir          string   `json:"data_dir,omitempty"`          // JSON data files, relative to repo root
	TemplateFile     string   `json:"template_file,omitempty"`     // page template, relative to repo root
	SourcesFile      string   `json:"sources_file,omitempty"`      // fetch sources config, relative to repo root
	LogFile          string   `json:"log_file,omitempty"`          // absolute path, outside the repo
	UpdateCommand    []string `json:"update_command,omitempty"`    // external update routine, argv form
	ValidatorCommand []string `json:"validator_command,omitempty"` // optional external validator, argv form
	Remote           string   `json:"remote,omitempty"`            // push target
	Branch           string   `json:"branch,omitempty"`            // empty = current branch
}

// Default returns a config with all defaults applied for a repo root.
func Default(root string) *Config {
	cfg := &Config{Version: "1.0", RepoRoot: root}
	cfg.applyDefaults(root)
	return cfg
}

// LoadConfig reads .dailyctl/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".dailyctl", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults(dir)
	return &cfg, nil
}

// LoadOrDefault reads the config if present and falls back to defaults
// otherwise. Commands that only read the tree (verify, render, status)
// work without an explicit config.
func LoadOrDefault(dir string) *Config {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return Default(dir)
	}
	return cfg
}

// SaveConfig writes config.json into <dir>/.dailyctl/.
func SaveConfig(dir string, cfg *Config) error {
	ctlDir := filepath.Join(dir, ".dailyctl")
	if err := os.MkdirAll(ctlDir, 0755); err != nil {
		return fmt.Errorf("failed to create .dailyctl dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(ctlDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults(dir string) {
	if c.RepoRoot == "" {
		c.RepoRoot = dir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = DefaultArchiveDir
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.TemplateFile == "" {
		c.TemplateFile = DefaultTemplateFile
	}
	if c.SourcesFile == "" {
		c.SourcesFile = DefaultSourcesFile
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.LogFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.LogFile = filepath.Join(home, ".dailyctl", "update.log")
		} else {
			c.LogFile = filepath.Join(c.RepoRoot, ".dailyctl", "update.log")
		}
	}
}

// OutputPath returns the absolute path of the live published page.
func (c *Config) OutputPath() string {
	return filepath.Join(c.RepoRoot, c.OutputFile)
}

// ArchivePath returns the absolute path of the snapshot for a date.
func (c *Config) ArchivePath(date string) string {
	return filepath.Join(c.RepoRoot, c.ArchiveDir, date+".html")
}

// ArchiveDirPath returns the absolute path of the archive directory.
func (c *Config) ArchiveDirPath() string {
	return filepath.Join(c.RepoRoot, c.ArchiveDir)
}

// TemplatePath returns the absolute path of the page template.
func (c *Config) TemplatePath() string {
	return filepath.Join(c.RepoRoot, c.TemplateFile)
}

// DataPath returns the absolute path of a file in the data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.RepoRoot, c.DataDir, name)
}

// DailyPath returns the absolute path of the daily report data file.
func (c *Config) DailyPath() string {
	return c.DataPath("daily.json")
}

// SourcesPath returns the absolute path of the fetch sources config.
func (c *Config) SourcesPath() string {
	return filepath.Join(c.RepoRoot, c.SourcesFile)
}

// LockPath returns the path of the update lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.RepoRoot, ".dailyctl", "update.lock")
}

// DBPath returns the path of the run history database.
func (c *Config) DBPath() string {
	return filepath.Join(c.RepoRoot, ".dailyctl", "history.db")
}
