package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL loads configuration from a .astrolabe.kdl file.
//
// Example:
//
//	thresholds {
//	    complexity 10
//	    nesting 5
//	    function_lines 80
//	    maintainability_min 40.0
//	    error_penalty 10
//	}
//	weights {
//	    size 0.35
//	    complexity 0.45
//	    comment 0.20
//	}
//	include "src/**/*.go"
//	exclude "**/vendor/**" "**/testdata/**"
//	workers 4
//	watch {
//	    debounce_ms 300
//	}
func LoadKDL(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "thresholds":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "complexity":
					if v, ok := firstIntArg(cn); ok {
						cfg.Thresholds.Complexity = v
					}
				case "nesting":
					if v, ok := firstIntArg(cn); ok {
						cfg.Thresholds.Nesting = v
					}
				case "function_lines":
					if v, ok := firstIntArg(cn); ok {
						cfg.Thresholds.FunctionLines = v
					}
				case "maintainability_min":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Thresholds.MaintainabilityMin = v
					}
				case "error_penalty":
					if v, ok := firstIntArg(cn); ok {
						cfg.Thresholds.ErrorPenalty = v
					}
				}
			}
		case "weights":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "size":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.Size = v
					}
				case "complexity":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.Complexity = v
					}
				case "comment":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.Comment = v
					}
				case "size_decay_lines":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.SizeDecayLines = v
					}
				case "density_decay":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.DensityDecay = v
					}
				case "comment_saturation":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Weights.CommentSaturation = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = append(cfg.Exclude, collectStringArgs(n)...)
		case "workers":
			if v, ok := firstIntArg(n); ok {
				cfg.Workers = v
			}
		case "watch":
			for _, cn := range n.Children {
				if nodeName(cn) == "debounce_ms" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
