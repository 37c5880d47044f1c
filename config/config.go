// Package config provides CLI configuration management for the sdnscreen
// command-line tool. It supports loading configuration from YAML files,
// environment variables, and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/screenline/sdnscreen/pkg/resolve"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
)

// DataBackend selects where reference data is loaded from.
type DataBackend string

const (
	// BackendCSV loads the flat tables from a directory of CSV files.
	BackendCSV DataBackend = "csv"
	// BackendSDNXML flattens an SDN XML export on load.
	BackendSDNXML DataBackend = "sdnxml"
	// BackendPostgres loads the tables from a Postgres snapshot.
	BackendPostgres DataBackend = "postgres"
)

// Default configuration values.
const (
	DefaultConfigDir    = ".sdnscreen"
	DefaultConfigFile   = "config.yaml"
	DefaultOutputFormat = OutputFormatText
)

// Config holds the CLI configuration.
type Config struct {
	// Backend selects the reference data source.
	Backend DataBackend `yaml:"backend"`

	// DataDir is the directory holding the reference CSV tables.
	DataDir string `yaml:"data_dir"`

	// SDNFile is the path to an SDN XML export (backend sdnxml).
	SDNFile string `yaml:"sdn_file"`

	// Threshold is the fuzzy-match threshold for interactive search.
	Threshold int `yaml:"threshold"`

	// SourceThreshold is the fuzzy-match threshold when cross-referencing a
	// new external source.
	SourceThreshold int `yaml:"source_threshold"`

	// Workers is the batch resolution fan-out (1 = sequential).
	Workers int `yaml:"workers"`

	// Output is the default output format.
	Output OutputFormat `yaml:"output"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:         BackendCSV,
		DataDir:         filepath.Join(configDir(), "data"),
		Threshold:       resolve.DefaultThreshold,
		SourceThreshold: resolve.DefaultSourceThreshold,
		Workers:         1,
		Output:          DefaultOutputFormat,
	}
}

// configDir returns the configuration directory, honoring
// SDNSCREEN_CONFIG_DIR.
func configDir() string {
	if dir := os.Getenv("SDNSCREEN_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// ConfigPath returns the path of the active config file.
func ConfigPath() string {
	return filepath.Join(configDir(), DefaultConfigFile)
}

// Load reads the configuration: defaults, then the YAML file at path (or
// the default location when path is empty; a missing file is not an error),
// then environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from SDNSCREEN_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SDNSCREEN_BACKEND"); v != "" {
		cfg.Backend = DataBackend(v)
	}
	if v := os.Getenv("SDNSCREEN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SDNSCREEN_SDN_FILE"); v != "" {
		cfg.SDNFile = v
	}
	if v := os.Getenv("SDNSCREEN_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Threshold = n
		}
	}
	if v := os.Getenv("SDNSCREEN_SOURCE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SourceThreshold = n
		}
	}
	if v := os.Getenv("SDNSCREEN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SDNSCREEN_OUTPUT"); v != "" {
		cfg.Output = OutputFormat(v)
	}
	if v := os.Getenv("SDNSCREEN_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCSV, BackendSDNXML, BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q (want csv, sdnxml, or postgres)", c.Backend)
	}
	switch c.Output {
	case OutputFormatText, OutputFormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range [0,100]", c.Threshold)
	}
	if c.SourceThreshold < 0 || c.SourceThreshold > 100 {
		return fmt.Errorf("source threshold %d out of range [0,100]", c.SourceThreshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Backend == BackendSDNXML && strings.TrimSpace(c.SDNFile) == "" {
		return fmt.Errorf("backend sdnxml requires sdn_file")
	}
	return nil
}
