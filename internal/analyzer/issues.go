package analyzer

import (
	"fmt"
	"sort"

	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// detectIssues applies the threshold rules to finished metrics. Pure: no rule
// mutates the metrics, and the same input always yields the same ordered
// sequence (ascending line, then error before warning before info).
func detectIssues(t config.Thresholds, m *types.FileMetrics, errorLines []int) []types.Issue {
	var issues []types.Issue

	for _, u := range m.Functions {
		if u.Complexity > t.Complexity {
			severity := types.SeverityWarning
			if u.Complexity >= 2*t.Complexity {
				severity = types.SeverityError
			}
			issues = append(issues, types.Issue{
				Kind:       types.IssueHighComplexity,
				Severity:   severity,
				Path:       m.Path,
				Line:       u.StartLine,
				Message:    fmt.Sprintf("%s has cyclomatic complexity %d (limit %d)", unitLabel(u), u.Complexity, t.Complexity),
				Suggestion: "Consider breaking into smaller functions",
			})
		}

		if u.MaxNesting > t.Nesting {
			severity := types.SeverityWarning
			if u.MaxNesting >= 2*t.Nesting {
				severity = types.SeverityError
			}
			issues = append(issues, types.Issue{
				Kind:       types.IssueDeepNesting,
				Severity:   severity,
				Path:       m.Path,
				Line:       u.StartLine,
				Message:    fmt.Sprintf("%s nests %d levels deep (limit %d)", unitLabel(u), u.MaxNesting, t.Nesting),
				Suggestion: "Consider extracting nested logic into separate functions",
			})
		}

		// The implicit file unit spans the whole file and is not a function
		if !u.FileScope && u.Lines() > t.FunctionLines {
			severity := types.SeverityInfo
			if u.Lines() >= 2*t.FunctionLines {
				severity = types.SeverityWarning
			}
			issues = append(issues, types.Issue{
				Kind:       types.IssueLongFunction,
				Severity:   severity,
				Path:       m.Path,
				Line:       u.StartLine,
				Message:    fmt.Sprintf("%s spans %d lines (limit %d)", unitLabel(u), u.Lines(), t.FunctionLines),
				Suggestion: "Consider breaking into smaller functions",
			})
		}
	}

	// Emitted once per file, not per unit
	if m.MaintainabilityIndex < t.MaintainabilityMin {
		severity := types.SeverityWarning
		if m.MaintainabilityIndex < t.MaintainabilityMin/2 {
			severity = types.SeverityError
		}
		issues = append(issues, types.Issue{
			Kind:       types.IssueLowMaintainability,
			Severity:   severity,
			Path:       m.Path,
			Line:       1,
			Message:    fmt.Sprintf("maintainability index %.1f is below %.1f", m.MaintainabilityIndex, t.MaintainabilityMin),
			Suggestion: "Reduce file size and complexity, or document the code",
		})
	}

	for _, line := range dedupeLines(errorLines) {
		issues = append(issues, types.Issue{
			Kind:     types.IssueSyntaxError,
			Severity: types.SeverityError,
			Path:     m.Path,
			Line:     line,
			Message:  "Syntax error",
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		if issues[i].Severity != issues[j].Severity {
			return issues[i].Severity < issues[j].Severity
		}
		return issues[i].Kind < issues[j].Kind
	})

	return issues
}

func unitLabel(u *types.FunctionUnit) string {
	if u.FileScope {
		return "top-level code"
	}
	if u.Name == "" {
		return fmt.Sprintf("anonymous function at line %d", u.StartLine)
	}
	return fmt.Sprintf("function %q", u.Name)
}

func dedupeLines(lines []int) []int {
	if len(lines) == 0 {
		return nil
	}
	sorted := make([]int, len(lines))
	copy(sorted, lines)
	sort.Ints(sorted)
	out := sorted[:1]
	for _, l := range sorted[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}
