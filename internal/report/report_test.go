package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolabe-dev/astrolabe/internal/analyzer"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

func sampleReport() *analyzer.Report {
	return &analyzer.Report{
		Metrics: &types.FileMetrics{
			Path:                 "pkg/thing.go",
			Language:             "go",
			LinesOfCode:          120,
			CommentLines:         14,
			CyclomaticComplexity: 9,
			MaintainabilityIndex: 71.4,
			QualityScore:         71,
			Functions: []*types.FunctionUnit{
				{Name: "thing.go", StartLine: 1, EndLine: 140, FileScope: true, Complexity: 1},
				{Name: "Build", StartLine: 10, EndLine: 60, Complexity: 8, MaxNesting: 3},
			},
		},
		Issues: []types.Issue{
			{
				Kind:       types.IssueDeepNesting,
				Severity:   types.SeverityWarning,
				Path:       "pkg/thing.go",
				Line:       10,
				Message:    `function "Build" nests 6 levels deep (limit 5)`,
				Suggestion: "Consider extracting nested logic into separate functions",
			},
		},
	}
}

func TestRating_Bands(t *testing.T) {
	cases := map[int]string{
		100: "Excellent",
		90:  "Excellent",
		89:  "Good",
		75:  "Good",
		74:  "Fair",
		60:  "Fair",
		59:  "Poor",
		40:  "Poor",
		39:  "Critical",
		0:   "Critical",
	}
	for score, want := range cases {
		assert.Equal(t, want, Rating(score), "score %d", score)
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Code has 2 critical issues that need immediate attention",
		Summary(50, Breakdown{Errors: 2}))
	assert.Equal(t, "Multiple warnings detected - consider addressing them",
		Summary(95, Breakdown{Warnings: 6}))
	assert.Equal(t, "Excellent code quality with minimal issues",
		Summary(95, Breakdown{}))
	assert.Equal(t, "Good code quality with room for minor improvements",
		Summary(80, Breakdown{Warnings: 2}))
	assert.Equal(t, "Code needs improvement in several areas",
		Summary(50, Breakdown{}))
}

func TestFormat_JSONFieldNames(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: "json"}).Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	for _, key := range []string{
		"path", "language", "lines_of_code", "comment_lines",
		"cyclomatic_complexity", "maintainability_index", "quality_score",
		"rating", "summary", "breakdown", "functions", "issues",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "Fair", decoded["rating"])
	assert.Equal(t, float64(9), decoded["cyclomatic_complexity"])

	breakdown, ok := decoded["breakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), breakdown["warnings"])
}

func TestFormat_Text(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{}).Format(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "pkg/thing.go (go)")
	assert.Contains(t, out, "maintainability index: 71.4")
	assert.Contains(t, out, "quality score:         71/100 (Fair)")
	assert.Contains(t, out, "issues (1):")
	assert.Contains(t, out, "pkg/thing.go:10 [warning]")
	assert.NotContains(t, out, "suggestion:", "suggestions are opt-in")
	assert.NotContains(t, out, "functions:", "the unit table is opt-in")
}

func TestFormat_TextWithUnitsAndSuggestions(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{
		ShowUnits:   true,
		ShowDetails: true,
	}).Format(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "(file)")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "suggestion: Consider extracting nested logic")
}

func TestFormat_DefaultsToText(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: ""}).Format(sampleReport())
	require.NoError(t, err)
	assert.False(t, json.Valid([]byte(out)))
}
