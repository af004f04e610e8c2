package config

import (
	"fmt"
	"math"

	"github.com/astrolabe-dev/astrolabe/internal/errors"
)

// Validate checks that configuration values keep the scoring model sane.
// Thresholds must be positive and the factor weights must sum to 1.
func (c *Config) Validate() error {
	if c.Thresholds.Complexity < 1 {
		return errors.NewConfigError("thresholds.complexity",
			fmt.Sprintf("%d", c.Thresholds.Complexity),
			fmt.Errorf("must be at least 1"))
	}
	if c.Thresholds.Nesting < 1 {
		return errors.NewConfigError("thresholds.nesting",
			fmt.Sprintf("%d", c.Thresholds.Nesting),
			fmt.Errorf("must be at least 1"))
	}
	if c.Thresholds.FunctionLines < 1 {
		return errors.NewConfigError("thresholds.function_lines",
			fmt.Sprintf("%d", c.Thresholds.FunctionLines),
			fmt.Errorf("must be at least 1"))
	}
	if c.Thresholds.MaintainabilityMin < 0 || c.Thresholds.MaintainabilityMin > 100 {
		return errors.NewConfigError("thresholds.maintainability_min",
			fmt.Sprintf("%g", c.Thresholds.MaintainabilityMin),
			fmt.Errorf("must be between 0 and 100"))
	}
	if c.Thresholds.ErrorPenalty < 0 {
		return errors.NewConfigError("thresholds.error_penalty",
			fmt.Sprintf("%d", c.Thresholds.ErrorPenalty),
			fmt.Errorf("must not be negative"))
	}

	sum := c.Weights.Size + c.Weights.Complexity + c.Weights.Comment
	if math.Abs(sum-1.0) > 0.001 {
		return errors.NewConfigError("weights",
			fmt.Sprintf("%g+%g+%g", c.Weights.Size, c.Weights.Complexity, c.Weights.Comment),
			fmt.Errorf("factor weights must sum to 1, got %g", sum))
	}
	if c.Weights.SizeDecayLines <= 0 {
		return errors.NewConfigError("weights.size_decay_lines",
			fmt.Sprintf("%g", c.Weights.SizeDecayLines),
			fmt.Errorf("must be positive"))
	}
	if c.Weights.DensityDecay <= 0 {
		return errors.NewConfigError("weights.density_decay",
			fmt.Sprintf("%g", c.Weights.DensityDecay),
			fmt.Errorf("must be positive"))
	}
	if c.Weights.CommentSaturation <= 0 || c.Weights.CommentSaturation > 1 {
		return errors.NewConfigError("weights.comment_saturation",
			fmt.Sprintf("%g", c.Weights.CommentSaturation),
			fmt.Errorf("must be in (0, 1]"))
	}

	if c.Workers < 0 {
		return errors.NewConfigError("workers",
			fmt.Sprintf("%d", c.Workers),
			fmt.Errorf("must not be negative"))
	}
	if c.Watch.DebounceMs < 0 {
		return errors.NewConfigError("watch.debounce_ms",
			fmt.Sprintf("%d", c.Watch.DebounceMs),
			fmt.Errorf("must not be negative"))
	}

	return nil
}
