// Package config loads pipeline configuration from files and the
// environment.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the pipeline parameters.
type Config struct {
	Input       string        `json:"input"`       // observations file
	Column      string        `json:"column"`      // CSV column; empty means whitespace text input
	Bins        int           `json:"bins"`        // discretization resolution
	Samples     int           `json:"samples"`     // sampler batch size
	Steps       int           `json:"steps"`       // forecast horizon (matrix-power exponent)
	Observation *float64      `json:"observation"` // conditioning point; nil means the series' last value
	Seed        int64         `json:"seed"`        // random seed; 0 seeds from the clock
	Workers     int           `json:"workers"`     // sampling workers; 1 samples sequentially
	Output      string        `json:"output"`      // optional file to write samples to
	Logging     LoggingConfig `json:"logging"`
}

// LoggingConfig configures the pipeline logger.
type LoggingConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

// Load reads configuration from path (yaml or json by extension), applies
// MCM_-prefixed environment overrides ("__" maps to a key separator, e.g.
// MCM_LOGGING__LEVEL), and fills defaults. An empty path skips the file and
// still honors the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("MCM_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mcm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills unset fields with the pipeline defaults.
func (c *Config) SetDefaults() {
	if c.Bins == 0 {
		c.Bins = 50
	}
	if c.Samples == 0 {
		c.Samples = 2000
	}
	if c.Steps == 0 {
		c.Steps = 1
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks parameter ranges before the pipeline runs.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", c.Bins)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must be non-negative, got %d", c.Samples)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Observation != nil && (math.IsNaN(*c.Observation) || math.IsInf(*c.Observation, 0)) {
		return fmt.Errorf("observation must be finite")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
