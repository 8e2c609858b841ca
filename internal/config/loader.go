package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "LEAKGATE_"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/leakgate/config.yaml on Unix.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(dir, "leakgate", "config.yaml"), nil
}

// Load reads configuration from a YAML file, then overrides with
// LEAKGATE_* environment variables.
//
// Environment variables use an underscore separator and are uppercased;
// the transformer splits on the first underscore after the prefix into
// section.field_name:
//
//	LEAKGATE_SCAN_WORKERS       -> scan.workers
//	LEAKGATE_SCAN_MAX_FILE_SIZE -> scan.max_file_size
//	LEAKGATE_LOG_LEVEL          -> log.level
//
// An empty path means the default location; a missing default file is
// fine, a missing explicit file is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		// Stat through the open descriptor so the size check and the read
		// see the same file.
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat config file: %w", err)
		}
		if info.Size() > maxConfigFileSize {
			f.Close()
			return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No user config; defaults plus environment apply.
	default:
		return nil, fmt.Errorf("opening config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
