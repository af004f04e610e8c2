package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/astrolabe-dev/astrolabe/internal/errors"
)

// Default scoring constants. These are product decisions, fixed at build time
// and locked by tests; changing one changes every report the tool produces.
const (
	// Maintainability factor shape
	DefaultSizeDecayLines     = 250.0 // size factor halves roughly every 173 lines
	DefaultDensityDecay       = 8.0   // decay rate applied to decision points per line
	DefaultCommentSaturation  = 0.3   // comment/code ratio beyond which no further credit
	DefaultSizeWeight         = 0.35
	DefaultComplexityWeight   = 0.45
	DefaultCommentWeight      = 0.20
	DefaultErrorPenalty       = 10 // quality points removed per error-severity issue
	DefaultComplexityLimit    = 10
	DefaultNestingLimit       = 5
	DefaultFunctionLineLimit  = 80
	DefaultMaintainabilityMin = 40.0
)

// Config is the immutable configuration one analysis run consumes. Loaded
// once at startup, validated, then passed by value into the pipeline; nothing
// mutates it afterwards.
type Config struct {
	Version    int
	Thresholds Thresholds
	Weights    Weights
	Include    []string
	Exclude    []string
	Workers    int // 0 = one worker per CPU
	Watch      Watch
}

// Thresholds are the issue-detection limits (spec'd per rule, not per file)
type Thresholds struct {
	Complexity         int     // per-unit cyclomatic complexity limit
	Nesting            int     // per-unit max nesting depth limit
	FunctionLines      int     // per-unit line span limit
	MaintainabilityMin float64 // file-level maintainability floor
	ErrorPenalty       int     // quality deduction per error-severity issue
}

// Weights shape the maintainability index. The three factor weights must sum
// to 1.
type Weights struct {
	Size       float64
	Complexity float64
	Comment    float64

	SizeDecayLines    float64
	DensityDecay      float64
	CommentSaturation float64
}

// Watch controls the file-watch command
type Watch struct {
	DebounceMs int
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Version: 1,
		Thresholds: Thresholds{
			Complexity:         DefaultComplexityLimit,
			Nesting:            DefaultNestingLimit,
			FunctionLines:      DefaultFunctionLineLimit,
			MaintainabilityMin: DefaultMaintainabilityMin,
			ErrorPenalty:       DefaultErrorPenalty,
		},
		Weights: Weights{
			Size:              DefaultSizeWeight,
			Complexity:        DefaultComplexityWeight,
			Comment:           DefaultCommentWeight,
			SizeDecayLines:    DefaultSizeDecayLines,
			DensityDecay:      DefaultDensityDecay,
			CommentSaturation: DefaultCommentSaturation,
		},
		Include: []string{},
		Exclude: []string{},
		Watch:   Watch{DebounceMs: 300},
	}
}

// Load reads configuration from an explicit path, or falls back to
// .astrolabe.kdl / astrolabe.toml in the current directory. An explicit path
// that does not exist is an error; a missing implicit candidate just means
// defaults apply.
func Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.NewConfigError("path", path, err)
		}
		return loadFile(path)
	}
	for _, candidate := range []string{".astrolabe.kdl", "astrolabe.toml"} {
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	var cfg *Config
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = LoadTOML(path)
	default:
		cfg, err = LoadKDL(path)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
