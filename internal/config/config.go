// Package config loads optional overrides for the tools' fixed endpoints.
// With no config file present every value matches the built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout         = 30 * time.Second
	DefaultContext7BaseURL = "https://context7.com/api/v1"
	DefaultUserAgent       = "notmcp/1.0"
	DefaultLogLevel        = "info"

	dirName  = ".notmcp"
	fileName = "config.yaml"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel        string
	Timeout         time.Duration
	Context7BaseURL string
	UserAgent       string
}

// File represents the structure of a config file. Empty fields leave the
// lower-precedence value in place.
type File struct {
	LogLevel string `yaml:"log_level"`
	Timeout  string `yaml:"timeout"`
	Context7 struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"context7"`
	HTTPGet struct {
		UserAgent string `yaml:"user_agent"`
	} `yaml:"http_get"`
}

// Default returns the configuration used when no file overrides anything.
func Default() Config {
	return Config{
		LogLevel:        DefaultLogLevel,
		Timeout:         DefaultTimeout,
		Context7BaseURL: DefaultContext7BaseURL,
		UserAgent:       DefaultUserAgent,
	}
}

// LoadFile loads a config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &f, nil
}

// Apply overlays the non-empty fields of f onto c.
func (c *Config) Apply(f *File) error {
	if f.LogLevel != "" {
		if _, err := parseLevel(f.LogLevel); err != nil {
			return err
		}
		c.LogLevel = f.LogLevel
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.Timeout = d
	}
	if f.Context7.BaseURL != "" {
		c.Context7BaseURL = strings.TrimRight(f.Context7.BaseURL, "/")
	}
	if f.HTTPGet.UserAgent != "" {
		c.UserAgent = f.HTTPGet.UserAgent
	}
	return nil
}

// Load resolves the configuration. It applies, in order: the defaults,
// ~/.notmcp/config.yaml, .notmcp/config.yaml under workDir, and explicitPath.
// Missing global and repo files are skipped; a missing explicit file is an error.
func Load(workDir, explicitPath string) (Config, error) {
	cfg := Default()

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, dirName, fileName))
	}
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, dirName, fileName))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := cfg.applyPath(path); err != nil {
			return Config{}, err
		}
	}

	if explicitPath != "" {
		if err := cfg.applyPath(explicitPath); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func (c *Config) applyPath(path string) error {
	f, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Apply(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, must be debug, info, warn, or error", s)
	}
}
