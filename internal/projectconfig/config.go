// Package projectconfig provides the Config struct and loader for
// .arena.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = ".arena.yaml"

// Default values for project configuration. New() references them; no other
// code should duplicate them.
const (
	DefaultServerURL  = "http://localhost:8800"
	DefaultTimeoutSec = 120
	DefaultDataDir    = ".arena"
	DefaultSessionLog = false
)

// ServerConfig holds completion server settings.
type ServerConfig struct {
	URL        string `yaml:"url,omitempty"`
	TimeoutSec int    `yaml:"timeout,omitempty"`
}

// DefaultsConfig holds default round parameters.
type DefaultsConfig struct {
	Models   []string `yaml:"models,omitempty"`
	Category string   `yaml:"category,omitempty"`
}

// Config is the project-level configuration.
type Config struct {
	Server     ServerConfig   `yaml:"server,omitempty"`
	DataDir    string         `yaml:"data_dir,omitempty"`
	SessionLog bool           `yaml:"session_log,omitempty"`
	Defaults   DefaultsConfig `yaml:"defaults,omitempty"`
	// Generation carries free-form generation options (max_tokens,
	// temperature, top_p) passed through to the completion server.
	Generation map[string]any `yaml:"generation,omitempty"`

	// Dir is the directory the config file was found in, or the working
	// directory when no file exists. Not serialized.
	Dir string `yaml:"-"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			URL:        DefaultServerURL,
			TimeoutSec: DefaultTimeoutSec,
		},
		DataDir:    DefaultDataDir,
		SessionLog: DefaultSessionLog,
	}
}

// Load searches for .arena.yaml starting at startDir and walking up toward
// the filesystem root. When no file is found, defaults are returned with
// Dir set to startDir; a present but unparsable file is an error.
func Load(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return parse(data, dir)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			cfg := New()
			cfg.Dir, _ = filepath.Abs(startDir)
			return cfg, nil
		}
		dir = parent
	}
}

// LoadFile loads a specific config file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(data, filepath.Dir(path))
}

func parse(data []byte, dir string) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	cfg.Dir = dir
	return cfg, nil
}

// DataPath returns the absolute data directory for this config.
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(c.Dir, c.DataDir)
}

// SessionLogPath returns where the session JSONL log lives.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.DataPath(), "session.jsonl")
}
