// Package config provides configuration loading for leakgate.
//
// Precedence (highest to lowest): LEAKGATE_* environment variables, the
// YAML config file, hardcoded defaults. Repo-level rule customization lives
// in .leakgate.toml and is handled by the rules package, not here.
package config

import (
	"fmt"

	"github.com/adamaslan/leakgate/internal/scan"
)

// Config is the tool configuration.
type Config struct {
	Scan   ScanConfig   `koanf:"scan"`
	Rules  RulesConfig  `koanf:"rules"`
	Log    LogConfig    `koanf:"log"`
	Output OutputConfig `koanf:"output"`
}

// ScanConfig controls the scanning engine.
type ScanConfig struct {
	// Workers > 1 enables the parallel matching mode.
	Workers int `koanf:"workers"`

	// MaxFileSize in bytes; larger staged files are skipped.
	MaxFileSize int64 `koanf:"max_file_size"`

	// Width is the display width finding snippets are truncated to.
	Width int `koanf:"width"`

	// Extended enables the gitleaks advisory tier.
	Extended bool `koanf:"extended"`
}

// RulesConfig points at rule customization.
type RulesConfig struct {
	// Path overrides where the project rules file is looked up.
	// Empty means <repo root>/.leakgate.toml.
	Path string `koanf:"path"`

	// Replace treats the project rules file as the whole ruleset
	// instead of merging it over the built-ins.
	Replace bool `koanf:"replace"`
}

// LogConfig controls diagnostic logging (always stderr).
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Color is auto, always, or never.
	Color string `koanf:"color"`

	// Report, when set, additionally writes a JSON report to this path.
	Report string `koanf:"report"`
}

// ScanOptions maps the config onto engine options.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{
		Width:       c.Scan.Width,
		Workers:     c.Scan.Workers,
		MaxFileSize: c.Scan.MaxFileSize,
		Extended:    c.Scan.Extended,
	}
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 1
	}
	if cfg.Scan.MaxFileSize == 0 {
		cfg.Scan.MaxFileSize = scan.DefaultMaxFileSize
	}
	if cfg.Scan.Width == 0 {
		cfg.Scan.Width = scan.DefaultWidth
	}
	if cfg.Log.Level == "" {
		// Warn keeps hook output clean; findings are report output, not logs.
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Scan.Workers < 1 || c.Scan.Workers > 64 {
		return fmt.Errorf("scan.workers must be between 1 and 64, got %d", c.Scan.Workers)
	}
	if c.Scan.Width < 16 || c.Scan.Width > 512 {
		return fmt.Errorf("scan.width must be between 16 and 512, got %d", c.Scan.Width)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size must not be negative, got %d", c.Scan.MaxFileSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always, or never; got %q", c.Output.Color)
	}
	return nil
}
