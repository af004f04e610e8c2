package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolabe-dev/astrolabe/internal/errors"
)

func TestValidate_DefaultsPass(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero complexity threshold", func(c *Config) { c.Thresholds.Complexity = 0 }},
		{"negative nesting threshold", func(c *Config) { c.Thresholds.Nesting = -1 }},
		{"zero function lines", func(c *Config) { c.Thresholds.FunctionLines = 0 }},
		{"maintainability min above 100", func(c *Config) { c.Thresholds.MaintainabilityMin = 120 }},
		{"negative error penalty", func(c *Config) { c.Thresholds.ErrorPenalty = -5 }},
		{"weights not summing to one", func(c *Config) { c.Weights.Size = 0.9 }},
		{"zero size decay", func(c *Config) { c.Weights.SizeDecayLines = 0 }},
		{"negative density decay", func(c *Config) { c.Weights.DensityDecay = -1 }},
		{"comment saturation above one", func(c *Config) { c.Weights.CommentSaturation = 1.5 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var configErr *errors.ConfigError
			assert.ErrorAs(t, err, &configErr)
		})
	}
}

func TestValidate_WeightToleranceAllowsRoundingNoise(t *testing.T) {
	cfg := Default()
	cfg.Weights.Size = 0.3501
	cfg.Weights.Complexity = 0.4499
	assert.NoError(t, cfg.Validate())
}
