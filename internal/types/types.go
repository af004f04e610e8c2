package types

// SemanticCategory is the closed set of node meanings the analyzer understands.
// Every grammar-specific node kind resolves to exactly one category; kinds the
// per-language tables don't know about resolve to CategoryOther and stay out of
// the metrics.
type SemanticCategory uint8

const (
	CategoryOther SemanticCategory = iota
	CategoryBranch
	CategoryLoop
	CategoryBooleanCombinator
	CategoryExceptionHandler
	CategoryFunctionBoundary
	CategoryComment
	CategoryStatement
)

// String returns the category name for display and debugging
func (c SemanticCategory) String() string {
	switch c {
	case CategoryBranch:
		return "branch"
	case CategoryLoop:
		return "loop"
	case CategoryBooleanCombinator:
		return "boolean_combinator"
	case CategoryExceptionHandler:
		return "exception_handler"
	case CategoryFunctionBoundary:
		return "function_boundary"
	case CategoryComment:
		return "comment"
	case CategoryStatement:
		return "statement"
	default:
		return "other"
	}
}

// RawNode is the analyzer's read-only view of one parse tree node. The parser
// layer owns the underlying tree; RawNode carries just the fields the metrics
// pipeline needs. Children are ordered by source position and their spans are
// contained within the parent's span (subtrees violating that are skipped
// during normalization).
type RawNode struct {
	// Kind is the grammar-specific node kind string, e.g. "if_statement"
	Kind string

	// Operator is the operator token for overloaded expression kinds
	// (a binary_expression is only a decision point when its operator
	// short-circuits). Empty for everything else.
	Operator string

	// Name is the best-effort declared name, populated for nodes that carry
	// a "name" field in the grammar. Empty for anonymous constructs.
	Name string

	StartByte uint32
	EndByte   uint32

	// StartLine and EndLine are 1-based, inclusive
	StartLine int
	EndLine   int

	Children []*RawNode
}

// LineSpan returns the number of source lines the node covers
func (n *RawNode) LineSpan() int {
	if n.EndLine < n.StartLine {
		return 0
	}
	return n.EndLine - n.StartLine + 1
}

// FunctionUnit is the normalized, language-independent representation of one
// function body (or the implicit whole-file unit). Immutable once the
// normalizer finishes it.
type FunctionUnit struct {
	Name           string `json:"name"`
	StartLine      int    `json:"start_line"`
	EndLine        int    `json:"end_line"`
	DecisionPoints int    `json:"decision_points"`
	MaxNesting     int    `json:"max_nesting"`
	CommentLines   int    `json:"comment_lines"`
	Statements     int    `json:"statements"`

	// FileScope marks the implicit whole-file unit that holds top-level code
	FileScope bool `json:"file_scope,omitempty"`

	// Complexity is 1 + DecisionPoints, filled by the complexity calculator
	Complexity int `json:"cyclomatic_complexity"`
}

// Lines returns the unit's line span length
func (u *FunctionUnit) Lines() int {
	if u.EndLine < u.StartLine {
		return 0
	}
	return u.EndLine - u.StartLine + 1
}

// FileMetrics is the final per-file report produced by one analysis run.
// MaintainabilityIndex and QualityScore are pure functions of the other
// fields; running the pipeline twice on the same tree yields identical values.
type FileMetrics struct {
	Path                 string          `json:"path"`
	Language             string          `json:"language"`
	LinesOfCode          int             `json:"lines_of_code"`
	CommentLines         int             `json:"comment_lines"`
	CyclomaticComplexity int             `json:"cyclomatic_complexity"`
	MaintainabilityIndex float64         `json:"maintainability_index"`
	QualityScore         int             `json:"quality_score"`
	Functions            []*FunctionUnit `json:"functions"`
}
