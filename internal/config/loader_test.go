package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamaslan/leakgate/internal/scan"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults when no file exists", func(t *testing.T) {
		// Point the default config dir at an empty location.
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, 1, cfg.Scan.Workers)
		assert.Equal(t, int64(scan.DefaultMaxFileSize), cfg.Scan.MaxFileSize)
		assert.Equal(t, scan.DefaultWidth, cfg.Scan.Width)
		assert.False(t, cfg.Scan.Extended)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "auto", cfg.Output.Color)
	})

	t.Run("yaml file values apply", func(t *testing.T) {
		path := writeConfig(t, `
scan:
  workers: 4
  width: 100
  extended: true
log:
  level: debug
output:
  color: never
  report: /tmp/leakgate-report.json
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 4, cfg.Scan.Workers)
		assert.Equal(t, 100, cfg.Scan.Width)
		assert.True(t, cfg.Scan.Extended)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "never", cfg.Output.Color)
		assert.Equal(t, "/tmp/leakgate-report.json", cfg.Output.Report)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "scan:\n  workers: 2\n")
		t.Setenv("LEAKGATE_SCAN_WORKERS", "8")
		t.Setenv("LEAKGATE_SCAN_MAX_FILE_SIZE", "2048")
		t.Setenv("LEAKGATE_LOG_LEVEL", "info")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8, cfg.Scan.Workers)
		assert.Equal(t, int64(2048), cfg.Scan.MaxFileSize)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "scan: [not a map")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		path := writeConfig(t, "# "+strings.Repeat("x", maxConfigFileSize)+"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Scan.Workers = 0 }},
		{"too many workers", func(c *Config) { c.Scan.Workers = 128 }},
		{"width too narrow", func(c *Config) { c.Scan.Width = 4 }},
		{"negative file size", func(c *Config) { c.Scan.MaxFileSize = -1 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown color mode", func(c *Config) { c.Output.Color = "sometimes" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScanOptions(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Scan.Workers = 4
	cfg.Scan.Extended = true

	opts := cfg.ScanOptions()
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, scan.DefaultWidth, opts.Width)
	assert.Equal(t, int64(scan.DefaultMaxFileSize), opts.MaxFileSize)
	assert.True(t, opts.Extended)
}
