// Package config loads the yaml configuration for the diff service.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kvit-s/tracediff/internal/diff"
)

type Config struct {
	Engine struct {
		MaxContentKB         int `yaml:"max_content_kb"`
		MaxLineKB            int `yaml:"max_line_kb"`
		MaxEdits             int `yaml:"max_edits"`
		MaxCommandKB         int `yaml:"max_command_kb"`
		MaxAffectedFiles     int `yaml:"max_affected_files"`
		FullDiffThresholdKB  int `yaml:"full_diff_threshold_kb"`
		SummaryLineThreshold int `yaml:"summary_line_threshold"`
		WindowLines          int `yaml:"window_lines"`
	} `yaml:"engine"`

	Sessions struct {
		Root           string `yaml:"root"`             // base dir for session logs
		CacheTTLSecs   int    `yaml:"cache_ttl_secs"`   // locator cache TTL
		RetryAttempts  int    `yaml:"retry_attempts"`   // log resolution attempts
		RetryBackoffMS int    `yaml:"retry_backoff_ms"` // linear backoff step
	} `yaml:"sessions"`

	Log struct {
		Path        string `yaml:"path"`        // empty disables logging
		Development bool   `yaml:"development"` // readable output instead of JSON
	} `yaml:"log"`
}

// Default returns a configuration that works with no file present.
func Default() *Config {
	cfg := &Config{}

	cfg.Engine.MaxContentKB = 10 * 1024
	cfg.Engine.MaxLineKB = 100
	cfg.Engine.MaxEdits = 1000
	cfg.Engine.MaxCommandKB = 100
	cfg.Engine.MaxAffectedFiles = 100
	cfg.Engine.FullDiffThresholdKB = 1024
	cfg.Engine.SummaryLineThreshold = 1000
	cfg.Engine.WindowLines = 400

	if home, err := os.UserHomeDir(); err == nil {
		cfg.Sessions.Root = filepath.Join(home, ".tracediff", "sessions")
	} else {
		cfg.Sessions.Root = ".tracediff/sessions"
	}
	cfg.Sessions.CacheTTLSecs = 300
	cfg.Sessions.RetryAttempts = 3
	cfg.Sessions.RetryBackoffMS = 50

	return cfg
}

// Load reads the config at path over the defaults. A missing file is not an
// error: the defaults are returned so the binary runs unconfigured.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.MaxEdits < 1 {
		return fmt.Errorf("engine.max_edits must be >= 1")
	}
	if c.Engine.MaxContentKB < 1 {
		return fmt.Errorf("engine.max_content_kb must be >= 1")
	}
	if c.Sessions.RetryAttempts < 1 {
		return fmt.Errorf("sessions.retry_attempts must be >= 1")
	}
	return nil
}

// EngineLimits maps the config onto the engine's admission ceilings.
func (c *Config) EngineLimits() diff.Limits {
	return diff.Limits{
		MaxContentBytes:      c.Engine.MaxContentKB * 1024,
		MaxLineBytes:         c.Engine.MaxLineKB * 1024,
		MaxEdits:             c.Engine.MaxEdits,
		MaxCommandBytes:      c.Engine.MaxCommandKB * 1024,
		MaxAffectedFiles:     c.Engine.MaxAffectedFiles,
		FullDiffThreshold:    c.Engine.FullDiffThresholdKB * 1024,
		SummaryLineThreshold: c.Engine.SummaryLineThreshold,
		WindowLines:          c.Engine.WindowLines,
	}
}
