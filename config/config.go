package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Display  DisplayConfig  `yaml:"display"`
	History  HistoryConfig  `yaml:"history"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the backing-store connection configuration.
// The production_plan table is provisioned upstream; this application
// never creates or migrates it.
type DatabaseConfig struct {
	Path                  string `yaml:"path"`
	BusyTimeoutMS         int    `yaml:"busy_timeout_ms"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
	MaxOpenConns          int    `yaml:"max_open_conns"`
	MaxIdleConns          int    `yaml:"max_idle_conns"`
}

// DisplayConfig holds the presentation metadata handed to the UI:
// color mappings, the enumerated notes choices, and the production
// line set used by the unprocessed-machine matrix.
type DisplayConfig struct {
	Lines         string            `yaml:"lines"`
	Colors        map[string]string `yaml:"colors"`
	NotesChoices  []string          `yaml:"notes_choices"`
	RestrictNotes bool              `yaml:"restrict_notes"`
	ShardCount    int               `yaml:"shard_count"`
}

// HistoryConfig bounds the undo/redo operation log.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// Color looks up a display color by key, falling back to the documented default.
func (d *DisplayConfig) Color(key string) (string, bool) {
	if c, ok := d.Colors[key]; ok && c != "" {
		return c, true
	}
	c, ok := defaultColors[key]
	return c, ok
}

var defaultColors = map[string]string{
	"instruction_1":    "#FF9999",
	"instruction_2":    "#99CCFF",
	"instruction_3":    "#99FF99",
	"instruction_4":    "#FFCC99",
	"set_fg_today":     "#0000FF",
	"set_fg_other_day": "#FFFF00",
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database.path must be configured")
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8733
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.BusyTimeoutMS <= 0 {
		cfg.Database.BusyTimeoutMS = 5000
	}
	if cfg.Database.ConnectTimeoutSeconds <= 0 {
		cfg.Database.ConnectTimeoutSeconds = 5
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 1
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 1
	}

	if cfg.Display.Lines == "" {
		cfg.Display.Lines = "ABCDEF"
	}
	if cfg.Display.ShardCount <= 0 {
		cfg.Display.ShardCount = 3
	}

	if cfg.History.Limit <= 0 {
		cfg.History.Limit = 100
	}

	return &cfg, nil
}
