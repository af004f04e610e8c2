// Package report renders analysis results for machine and human consumption.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/astrolabe-dev/astrolabe/internal/analyzer"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// FormatterOptions controls report output
type FormatterOptions struct {
	Format      string // "text" or "json"
	ShowUnits   bool   // include the per-function table in text output
	ShowDetails bool   // include suggestions under each issue
}

// Formatter renders analysis reports
type Formatter struct {
	options FormatterOptions
}

// NewFormatter creates a formatter with the given options
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Format == "" {
		options.Format = "text"
	}
	return &Formatter{options: options}
}

// Breakdown buckets issues by severity
type Breakdown struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// jsonReport is the machine-readable report shape
type jsonReport struct {
	Path                 string                `json:"path"`
	Language             string                `json:"language"`
	LinesOfCode          int                   `json:"lines_of_code"`
	CommentLines         int                   `json:"comment_lines"`
	CyclomaticComplexity int                   `json:"cyclomatic_complexity"`
	MaintainabilityIndex float64               `json:"maintainability_index"`
	QualityScore         int                   `json:"quality_score"`
	Rating               string                `json:"rating"`
	Summary              string                `json:"summary"`
	Breakdown            Breakdown             `json:"breakdown"`
	Functions            []*types.FunctionUnit `json:"functions"`
	Issues               []types.Issue         `json:"issues"`
}

// Format renders one report in the configured format
func (f *Formatter) Format(r *analyzer.Report) (string, error) {
	switch f.options.Format {
	case "json":
		return f.formatJSON(r)
	default:
		return f.formatText(r), nil
	}
}

func (f *Formatter) formatJSON(r *analyzer.Report) (string, error) {
	breakdown := countBySeverity(r.Issues)
	out := jsonReport{
		Path:                 r.Metrics.Path,
		Language:             r.Metrics.Language,
		LinesOfCode:          r.Metrics.LinesOfCode,
		CommentLines:         r.Metrics.CommentLines,
		CyclomaticComplexity: r.Metrics.CyclomaticComplexity,
		MaintainabilityIndex: r.Metrics.MaintainabilityIndex,
		QualityScore:         r.Metrics.QualityScore,
		Rating:               Rating(r.Metrics.QualityScore),
		Summary:              Summary(r.Metrics.QualityScore, breakdown),
		Breakdown:            breakdown,
		Functions:            r.Metrics.Functions,
		Issues:               r.Issues,
	}
	content, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(content), nil
}

func (f *Formatter) formatText(r *analyzer.Report) string {
	var sb strings.Builder
	m := r.Metrics
	breakdown := countBySeverity(r.Issues)

	fmt.Fprintf(&sb, "%s (%s)\n", m.Path, m.Language)
	fmt.Fprintf(&sb, "  lines of code:         %d\n", m.LinesOfCode)
	fmt.Fprintf(&sb, "  comment lines:         %d\n", m.CommentLines)
	fmt.Fprintf(&sb, "  cyclomatic complexity: %d\n", m.CyclomaticComplexity)
	fmt.Fprintf(&sb, "  maintainability index: %.1f\n", m.MaintainabilityIndex)
	fmt.Fprintf(&sb, "  quality score:         %d/100 (%s)\n", m.QualityScore, Rating(m.QualityScore))
	fmt.Fprintf(&sb, "  %s\n", Summary(m.QualityScore, breakdown))

	if f.options.ShowUnits && len(m.Functions) > 0 {
		sb.WriteString("\n  functions:\n")
		for _, u := range m.Functions {
			name := u.Name
			if u.FileScope {
				name = "(file)"
			} else if name == "" {
				name = "(anonymous)"
			}
			fmt.Fprintf(&sb, "    %-30s lines %d-%d  complexity %d  nesting %d\n",
				name, u.StartLine, u.EndLine, u.Complexity, u.MaxNesting)
		}
	}

	if len(r.Issues) > 0 {
		fmt.Fprintf(&sb, "\n  issues (%d):\n", len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(&sb, "    %s:%d [%s] %s\n", issue.Path, issue.Line, issue.Severity, issue.Message)
			if f.options.ShowDetails && issue.Suggestion != "" {
				fmt.Fprintf(&sb, "      suggestion: %s\n", issue.Suggestion)
			}
		}
	}

	return sb.String()
}

func countBySeverity(issues []types.Issue) Breakdown {
	var b Breakdown
	for _, issue := range issues {
		switch issue.Severity {
		case types.SeverityError:
			b.Errors++
		case types.SeverityWarning:
			b.Warnings++
		default:
			b.Info++
		}
	}
	return b
}

// Rating maps a quality score onto the five-band scale
func Rating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

// Summary produces the one-line human summary for a report
func Summary(score int, b Breakdown) string {
	switch {
	case b.Errors > 0:
		return fmt.Sprintf("Code has %d critical issues that need immediate attention", b.Errors)
	case b.Warnings > 5:
		return "Multiple warnings detected - consider addressing them"
	case score >= 90:
		return "Excellent code quality with minimal issues"
	case score >= 75:
		return "Good code quality with room for minor improvements"
	default:
		return "Code needs improvement in several areas"
	}
}
