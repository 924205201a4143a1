// Package config loads pvtstat configuration from YAML with defaults,
// flag merging and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history configuration.
type HistoryConfig struct {
	// Enabled records each analysis run in the history database.
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database.
	DBPath string `yaml:"db_path"`
}

// Config represents pvtstat configuration options.
type Config struct {
	// DataExt is the data-file extension to scan for.
	DataExt string `yaml:"data_ext"`

	// Policy controls malformed-row handling (strict or lenient).
	Policy string `yaml:"policy"`

	// Format is the default output format (table, json, csv, markdown, html).
	Format string `yaml:"format"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// ConditionOrder is the preferred ordering of condition subdirectories.
	ConditionOrder []string `yaml:"condition_order"`

	// History contains run-history configuration.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		DataExt:        ".txt",
		Policy:         "strict",
		Format:         "table",
		LogLevel:       "info",
		ConditionOrder: []string{"a1", "b1", "a2", "b2"},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".pvtstat/history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge non-zero values over defaults.
	if fileCfg.DataExt != "" {
		cfg.DataExt = fileCfg.DataExt
	}
	if fileCfg.Policy != "" {
		cfg.Policy = fileCfg.Policy
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if len(fileCfg.ConditionOrder) > 0 {
		cfg.ConditionOrder = fileCfg.ConditionOrder
	}

	// The history section needs presence detection: enabled=false in the
	// file must not be confused with the section being absent.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, exists := rawMap["history"]; exists && section != nil {
			sectionMap, _ := section.(map[string]interface{})
			if _, exists := sectionMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := sectionMap["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pvtstat/config.yaml in the
// specified directory. A missing directory or file yields defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".pvtstat", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, so flags take
// precedence over the config file.
func (c *Config) MergeWithFlags(dataExt, policy, format, logLevel *string, historyEnabled *bool) {
	if dataExt != nil {
		c.DataExt = *dataExt
	}
	if policy != nil {
		c.Policy = *policy
	}
	if format != nil {
		c.Format = *format
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if historyEnabled != nil {
		c.History.Enabled = *historyEnabled
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.DataExt == "" {
		return fmt.Errorf("data_ext cannot be empty")
	}

	validPolicies := map[string]bool{"strict": true, "lenient": true}
	if !validPolicies[c.Policy] {
		return fmt.Errorf("invalid policy %q, must be strict or lenient", c.Policy)
	}

	validFormats := map[string]bool{
		"table":    true,
		"json":     true,
		"csv":      true,
		"markdown": true,
		"html":     true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format %q, must be one of: table, json, csv, markdown, html", c.Format)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
