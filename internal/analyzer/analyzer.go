// Package analyzer turns a raw parse tree into language-independent quality
// metrics. The pipeline is a strict one-way sequence: normalize (using the
// per-language classifier table), compute complexity, score maintainability,
// then detect issues. One run owns all of its state; analyzing files
// concurrently needs no coordination here.
package analyzer

import (
	"path/filepath"

	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/errors"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// Report is the result of analyzing one file
type Report struct {
	Metrics *types.FileMetrics `json:"metrics"`
	Issues  []types.Issue      `json:"issues"`
}

// Analyzer runs the metrics pipeline with a fixed configuration. Safe for
// concurrent use; each Analyze call is independent.
type Analyzer struct {
	cfg *config.Config
}

// New creates an analyzer with the given configuration
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze runs the full pipeline for one file. The raw tree is borrowed
// read-only; root may be nil for empty input, which yields the documented
// empty metrics (0 lines, complexity 1, maintainability 100) and no issues.
// Languages without a classifier table fail fast with no partial report.
func (a *Analyzer) Analyze(l lang.Language, path string, root *types.RawNode, source []byte) (*Report, error) {
	table, ok := lang.TableFor(l)
	if !ok {
		return nil, errors.NewUnsupportedLanguageError(string(l), "")
	}

	totalLines := countLines(source)
	norm := normalize(table, filepath.Base(path), root, totalLines)
	loc, commentLines := countLOC(source, norm.Comments)

	for _, u := range norm.Units {
		u.Complexity = Complexity(u)
	}

	metrics := &types.FileMetrics{
		Path:                 path,
		Language:             string(l),
		LinesOfCode:          loc,
		CommentLines:         commentLines,
		CyclomaticComplexity: FileComplexity(norm.Units),
		Functions:            norm.Units,
	}
	metrics.MaintainabilityIndex = maintainabilityIndex(a.cfg.Weights, loc, metrics.CyclomaticComplexity, commentLines)

	issues := detectIssues(a.cfg.Thresholds, metrics, norm.ErrorLines)

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == types.SeverityError {
			errorCount++
		}
	}
	metrics.QualityScore = qualityScore(metrics.MaintainabilityIndex, errorCount, a.cfg.Thresholds.ErrorPenalty)

	return &Report{Metrics: metrics, Issues: issues}, nil
}
