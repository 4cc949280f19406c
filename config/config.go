// Package config loads and validates the run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// The two published CSV exports of the dataset. Only URL B is fetched; URL A
// is recorded in the ledger as metadata about the publication.
const (
	DefaultURLA = "https://www.bundesnetzagentur.de/_tools/SVG/js2/_functions/csv_export.html?view=renderCSV&id=870304"
	DefaultURLB = "https://www.bundesnetzagentur.de/_tools/SVG/js2/_functions/csv_export.html?view=renderCSV&id=870306"
)

// Config is the complete run configuration.
type Config struct {
	Source     SourceConfig     `json:"source" yaml:"source"`
	Data       DataConfig       `json:"data" yaml:"data"`
	Projection ProjectionConfig `json:"projection" yaml:"projection"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}

// SourceConfig describes where the dataset comes from.
type SourceConfig struct {
	URLA           string `json:"url_a" yaml:"url_a"`
	URLB           string `json:"url_b" yaml:"url_b"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// DataConfig describes the data directory layout.
type DataConfig struct {
	Dir         string `json:"dir" yaml:"dir"`
	CacheFile   string `json:"cache_file" yaml:"cache_file"`
	LedgerFile  string `json:"ledger_file" yaml:"ledger_file"`
	HistoryFile string `json:"history_file" yaml:"history_file"`
	LogFile     string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// ProjectionConfig holds the engine parameters.
type ProjectionConfig struct {
	MinimumPct   float64 `json:"minimum_pct" yaml:"minimum_pct"`
	LookbackDays int     `json:"lookback_days" yaml:"lookback_days"`
}

// ReportConfig controls the README patching step.
type ReportConfig struct {
	ReadmePath string `json:"readme_path" yaml:"readme_path"`
	Heading    string `json:"heading" yaml:"heading"`
	SkipReadme bool   `json:"skip_readme" yaml:"skip_readme"`
}

// Default returns the configuration matching the published analysis.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URLA:           DefaultURLA,
			URLB:           DefaultURLB,
			TimeoutSeconds: 20,
		},
		Data: DataConfig{
			Dir:         "./data",
			CacheFile:   "bnetza_cache.csv",
			LedgerFile:  "projections.csv",
			HistoryFile: "projections.sqlite",
		},
		Projection: ProjectionConfig{
			MinimumPct:   20.0,
			LookbackDays: 30,
		},
		Report: ReportConfig{
			ReadmePath: "README.md",
			Heading:    "## Aktuelle Projektion",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback)
// and applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to a file (YAML unless the path ends
// in .json).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv loads a local .env file if present and applies GASSPEICHER_*
// overrides on top of the file values.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("GASSPEICHER_SOURCE_URL"); v != "" {
		c.Source.URLB = v
	}
	if v := os.Getenv("GASSPEICHER_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("GASSPEICHER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Source.TimeoutSeconds = n
		}
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.Source.URLB == "" {
		return fmt.Errorf("source.url_b is required")
	}
	if c.Source.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.CacheFile == "" {
		return fmt.Errorf("data.cache_file is required")
	}
	if c.Data.LedgerFile == "" {
		return fmt.Errorf("data.ledger_file is required")
	}
	if c.Projection.MinimumPct < 0 || c.Projection.MinimumPct >= 100 {
		return fmt.Errorf("projection.minimum_pct must be in [0, 100)")
	}
	if c.Projection.LookbackDays <= 0 {
		return fmt.Errorf("projection.lookback_days must be positive")
	}
	return nil
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// CachePath is the cache file location inside the data directory.
func (c *Config) CachePath() string {
	return filepath.Join(c.Data.Dir, c.Data.CacheFile)
}

// LedgerPath is the CSV ledger location inside the data directory.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Data.Dir, c.Data.LedgerFile)
}

// HistoryPath is the SQLite history location, empty when disabled.
func (c *Config) HistoryPath() string {
	if c.Data.HistoryFile == "" {
		return ""
	}
	return filepath.Join(c.Data.Dir, c.Data.HistoryFile)
}
