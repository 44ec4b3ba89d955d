package cli

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the optional tfm.yaml analyzer configuration. Flags given on
// the command line take precedence over config values.
type Config struct {
	States              []string `mapstructure:"states"`
	Format              string   `mapstructure:"format"`
	MinFailures         int      `mapstructure:"min_failures"`
	Baseline            string   `mapstructure:"baseline"`
	RegressionThreshold float64  `mapstructure:"regression_threshold"`
	SlowThresholdMS     float64  `mapstructure:"slow_threshold_ms"`
}

// LoadConfig reads and decodes a YAML config file. The YAML is parsed
// into a generic map first and then decoded weakly, so "min_failures: 2"
// and "min_failures: '2'" both work.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Apply copies config values into options that the user did not set
// explicitly. changed reports whether a given flag was set.
func (c *Config) Apply(opts *AnalyzeOptions, changed func(string) bool) {
	if len(c.States) > 0 && !changed("states") {
		opts.States = c.States
	}
	if c.Format != "" && !changed("format") {
		opts.Format = c.Format
	}
	if c.MinFailures > 0 && !changed("min-failures") {
		opts.MinFailures = c.MinFailures
	}
	if c.Baseline != "" && !changed("baseline") {
		opts.Baseline = c.Baseline
	}
	if c.RegressionThreshold > 0 && !changed("regression-threshold") {
		opts.RegressionThreshold = c.RegressionThreshold
	}
	if c.SlowThresholdMS > 0 && !changed("slow-threshold") {
		opts.SlowThresholdMS = c.SlowThresholdMS
	}
}
