package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors Config with TOML field names. Zero values mean "keep the
// default", so a partial file only overrides what it mentions.
type tomlConfig struct {
	Thresholds struct {
		Complexity         int     `toml:"complexity"`
		Nesting            int     `toml:"nesting"`
		FunctionLines      int     `toml:"function_lines"`
		MaintainabilityMin float64 `toml:"maintainability_min"`
		ErrorPenalty       int     `toml:"error_penalty"`
	} `toml:"thresholds"`
	Weights struct {
		Size              float64 `toml:"size"`
		Complexity        float64 `toml:"complexity"`
		Comment           float64 `toml:"comment"`
		SizeDecayLines    float64 `toml:"size_decay_lines"`
		DensityDecay      float64 `toml:"density_decay"`
		CommentSaturation float64 `toml:"comment_saturation"`
	} `toml:"weights"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Workers int      `toml:"workers"`
	Watch   struct {
		DebounceMs int `toml:"debounce_ms"`
	} `toml:"watch"`
}

// LoadTOML loads configuration from an astrolabe.toml file
func LoadTOML(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tc tomlConfig
	if err := toml.Unmarshal(content, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	cfg := Default()
	if tc.Thresholds.Complexity > 0 {
		cfg.Thresholds.Complexity = tc.Thresholds.Complexity
	}
	if tc.Thresholds.Nesting > 0 {
		cfg.Thresholds.Nesting = tc.Thresholds.Nesting
	}
	if tc.Thresholds.FunctionLines > 0 {
		cfg.Thresholds.FunctionLines = tc.Thresholds.FunctionLines
	}
	if tc.Thresholds.MaintainabilityMin > 0 {
		cfg.Thresholds.MaintainabilityMin = tc.Thresholds.MaintainabilityMin
	}
	if tc.Thresholds.ErrorPenalty > 0 {
		cfg.Thresholds.ErrorPenalty = tc.Thresholds.ErrorPenalty
	}
	if tc.Weights.Size > 0 {
		cfg.Weights.Size = tc.Weights.Size
	}
	if tc.Weights.Complexity > 0 {
		cfg.Weights.Complexity = tc.Weights.Complexity
	}
	if tc.Weights.Comment > 0 {
		cfg.Weights.Comment = tc.Weights.Comment
	}
	if tc.Weights.SizeDecayLines > 0 {
		cfg.Weights.SizeDecayLines = tc.Weights.SizeDecayLines
	}
	if tc.Weights.DensityDecay > 0 {
		cfg.Weights.DensityDecay = tc.Weights.DensityDecay
	}
	if tc.Weights.CommentSaturation > 0 {
		cfg.Weights.CommentSaturation = tc.Weights.CommentSaturation
	}
	if len(tc.Include) > 0 {
		cfg.Include = tc.Include
	}
	if len(tc.Exclude) > 0 {
		cfg.Exclude = tc.Exclude
	}
	if tc.Workers > 0 {
		cfg.Workers = tc.Workers
	}
	if tc.Watch.DebounceMs > 0 {
		cfg.Watch.DebounceMs = tc.Watch.DebounceMs
	}

	return cfg, nil
}
