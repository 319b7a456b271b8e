// Package config holds the rule tables and runtime settings for a cleanup run.
// Defaults are compiled in; a YAML file can override individual tables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for siteclean.
type Config struct {
	Logging Logging     `yaml:"logging"`
	Rules   *AssetRules `yaml:"rules"`
}

// Logging configures slog output.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info", Format: "text"},
		Rules:   DefaultAssetRules(),
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error: the defaults are returned so the tool works with zero configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// yaml replaces slice fields wholesale when present; rebuild lookup sets
	// and re-normalize enums after any override.
	cfg.Logging.Level = string(NormalizeLogLevel(cfg.Logging.Level))
	cfg.Logging.Format = string(NormalizeLogFormat(cfg.Logging.Format))
	if cfg.Rules == nil {
		cfg.Rules = DefaultAssetRules()
	}
	cfg.Rules.index()
	return cfg, nil
}
